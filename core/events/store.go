package events

import (
	"encoding/binary"
	"sync"

	"github.com/tendermint/go-amino"
	db "github.com/tendermint/tm-db"
)

// IEventsDB collects events emitted while executing a block and persists
// them keyed by block height.
type IEventsDB interface {
	AddEvent(event Event)
	LoadEvents(height uint32) Events
	CommitEvents(height uint32) error
	Close() error
}

type eventsStore struct {
	cdc *amino.Codec
	db  db.DB

	pending Events
	lock    sync.Mutex
}

func NewEventsStore(db db.DB) IEventsDB {
	cdc := amino.NewCodec()
	cdc.RegisterInterface((*Event)(nil), nil)
	cdc.RegisterConcrete(&LockedEvent{}, TypeLockedEvent, nil)
	cdc.RegisterConcrete(&UnlockedEvent{}, TypeUnlockedEvent, nil)
	cdc.RegisterConcrete(&FrozenEvent{}, TypeFrozenEvent, nil)
	cdc.RegisterConcrete(&UnfrozenEvent{}, TypeUnfrozenEvent, nil)
	cdc.RegisterConcrete(&PausedEvent{}, TypePausedEvent, nil)
	cdc.RegisterConcrete(&UnpausedEvent{}, TypeUnpausedEvent, nil)
	cdc.RegisterConcrete(&OwnershipTransferredEvent{}, TypeOwnershipTransferredEvent, nil)

	return &eventsStore{cdc: cdc, db: db}
}

func (store *eventsStore) AddEvent(event Event) {
	store.lock.Lock()
	defer store.lock.Unlock()

	store.pending = append(store.pending, event)
}

func (store *eventsStore) CommitEvents(height uint32) error {
	store.lock.Lock()
	defer store.lock.Unlock()

	events := store.pending
	if events == nil {
		events = Events{}
	}

	data, err := store.cdc.MarshalBinaryBare(events)
	if err != nil {
		return err
	}

	if err := store.db.Set(heightKey(height), data); err != nil {
		return err
	}

	store.pending = nil
	return nil
}

func (store *eventsStore) LoadEvents(height uint32) Events {
	data, err := store.db.Get(heightKey(height))
	if err != nil {
		panic(err)
	}
	if data == nil {
		return nil
	}

	events := Events{}
	if len(data) > 0 {
		if err := store.cdc.UnmarshalBinaryBare(data, &events); err != nil {
			panic(err)
		}
	}
	if events == nil {
		events = Events{}
	}

	return events
}

func (store *eventsStore) Close() error {
	return store.db.Close()
}

// MockEvents is a no-op event store for tests.
type MockEvents struct{}

func (e MockEvents) AddEvent(event Event)            {}
func (e MockEvents) LoadEvents(height uint32) Events { return nil }
func (e MockEvents) CommitEvents(height uint32) error {
	return nil
}
func (e MockEvents) Close() error { return nil }

func heightKey(height uint32) []byte {
	key := make([]byte, 4)
	binary.BigEndian.PutUint32(key, height)
	return key
}
