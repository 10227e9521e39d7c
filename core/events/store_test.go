package events

import (
	"testing"

	db "github.com/tendermint/tm-db"

	"github.com/tokenvault/tokenvault-go/core/types"
)

func TestIEventsDB(t *testing.T) {
	t.Parallel()
	store := NewEventsStore(db.NewMemDB())

	addr := types.HexToAddress("Vx04bea23efb5f2f98822e7f6350103eb7f038b358")
	reason := types.StrToLockReason("vesting")

	store.AddEvent(&LockedEvent{
		Address: addr,
		Reason:  reason,
		Amount:  "111497225000000000000",
		Release: 3600,
	})
	if err := store.CommitEvents(12); err != nil {
		t.Fatal(err)
	}

	store.AddEvent(&UnlockedEvent{
		Address: addr,
		Reason:  reason,
		Amount:  "891977800000000000000",
	})
	store.AddEvent(&FrozenEvent{Address: addr})
	if err := store.CommitEvents(14); err != nil {
		t.Fatal(err)
	}

	store.AddEvent(&PausedEvent{})
	store.AddEvent(&OwnershipTransferredEvent{PreviousOwner: addr, NewOwner: types.Address{2}})
	if err := store.CommitEvents(11); err != nil {
		t.Fatal(err)
	}

	loaded := store.LoadEvents(12)
	if len(loaded) != 1 {
		t.Fatalf("count of events not equal 1, got %d", len(loaded))
	}
	locked, ok := loaded[0].(*LockedEvent)
	if !ok {
		t.Fatal("event is not LockedEvent")
	}
	if locked.Amount != "111497225000000000000" || locked.Release != 3600 || locked.AddressString() != addr.String() {
		t.Fatal("event is not correct")
	}

	loaded = store.LoadEvents(14)
	if len(loaded) != 2 {
		t.Fatalf("count of events not equal 2, got %d", len(loaded))
	}
	if loaded[0].Type() != TypeUnlockedEvent || loaded[1].Type() != TypeFrozenEvent {
		t.Fatal("event order is not correct")
	}

	loaded = store.LoadEvents(11)
	if len(loaded) != 2 {
		t.Fatalf("count of events not equal 2, got %d", len(loaded))
	}
	transferred, ok := loaded[1].(*OwnershipTransferredEvent)
	if !ok {
		t.Fatal("event is not OwnershipTransferredEvent")
	}
	if transferred.NewOwner != (types.Address{2}) {
		t.Fatal("event is not correct")
	}
}

// a committed empty block is distinguishable from a height never committed
func TestLoadEventsEmptyVsMissing(t *testing.T) {
	t.Parallel()
	store := NewEventsStore(db.NewMemDB())

	if err := store.CommitEvents(5); err != nil {
		t.Fatal(err)
	}

	if events := store.LoadEvents(5); events == nil || len(events) != 0 {
		t.Fatal("committed empty block must load as empty, not nil")
	}
	if events := store.LoadEvents(6); events != nil {
		t.Fatal("missing height must load as nil")
	}
}

// pending events are dropped from memory once committed
func TestCommitClearsPending(t *testing.T) {
	t.Parallel()
	store := NewEventsStore(db.NewMemDB())

	store.AddEvent(&UnpausedEvent{})
	if err := store.CommitEvents(1); err != nil {
		t.Fatal(err)
	}
	if err := store.CommitEvents(2); err != nil {
		t.Fatal(err)
	}

	if events := store.LoadEvents(2); len(events) != 0 {
		t.Fatal("events must not leak into the next block")
	}
}
