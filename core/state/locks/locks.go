package locks

import (
	"fmt"
	"math/big"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/cosmos/iavl"
	"github.com/tendermint/go-amino"

	eventsdb "github.com/tokenvault/tokenvault-go/core/events"
	"github.com/tokenvault/tokenvault-go/core/state/bus"
	"github.com/tokenvault/tokenvault-go/core/types"
)

const mainPrefix = byte('l')

var cdc = amino.NewCodec()

// RLocks is the read-only view of the lock ledger.
type RLocks interface {
	Export(state *types.AppState)
	GetLocks(address types.Address) *Model
	Reasons(address types.Address) []types.LockReason
	TokensLocked(address types.Address, reason types.LockReason) *big.Int
	TokensLockedAtTime(address types.Address, reason types.LockReason, time uint64) *big.Int
	TokensUnlockable(address types.Address, reason types.LockReason, now uint64) *big.Int
	GetUnlockableTokens(address types.Address, now uint64) *big.Int
	TotalLocked(address types.Address) *big.Int
	HasActiveLock(address types.Address, reason types.LockReason) bool
}

// Locks is the escrow sub-ledger: per account, per reason records of
// funds removed from available balance until a release time.
type Locks struct {
	list  map[types.Address]*Model
	dirty map[types.Address]struct{}

	bus *bus.Bus
	db  atomic.Value

	lock sync.RWMutex
}

func NewLocks(stateBus *bus.Bus, db *iavl.ImmutableTree) *Locks {
	immutableTree := atomic.Value{}
	if db != nil {
		immutableTree.Store(db)
	}

	return &Locks{bus: stateBus, db: immutableTree, list: map[types.Address]*Model{}, dirty: map[types.Address]struct{}{}}
}

func (l *Locks) immutableTree() *iavl.ImmutableTree {
	db := l.db.Load()
	if db == nil {
		return nil
	}
	return db.(*iavl.ImmutableTree)
}

func (l *Locks) SetImmutableTree(immutableTree *iavl.ImmutableTree) {
	l.db.Store(immutableTree)
}

func (l *Locks) Commit(db *iavl.MutableTree, version int64) error {
	dirty := l.getOrderedDirty()
	for _, address := range dirty {
		locks := l.getFromMap(address)
		path := getPath(address)

		l.lock.Lock()
		delete(l.dirty, address)
		l.lock.Unlock()

		locks.lock.RLock()
		data, err := cdc.MarshalBinaryBare(locks)
		locks.lock.RUnlock()
		if err != nil {
			return fmt.Errorf("can't encode object at %x: %v", address[:], err)
		}

		if len(data) == 0 {
			db.Remove(path)
		} else {
			db.Set(path, data)
		}
	}

	return nil
}

// Lock creates the record for (address, reason). The caller has already
// debited the account's available balance; the escrow delta keeps the
// conservation sum intact.
func (l *Locks) Lock(address types.Address, reason types.LockReason, value *big.Int, release uint64) {
	l.GetOrNew(address).set(reason, value, release)
	l.bus.Checker().AddAmount(big.NewInt(0).Set(value))

	l.bus.Events().AddEvent(&eventsdb.LockedEvent{
		Address: address,
		Reason:  reason,
		Amount:  value.String(),
		Release: release,
	})
}

// ExtendLock replaces the record's release time outright. Amount is
// unchanged; the Locked event is re-emitted with the new release.
func (l *Locks) ExtendLock(address types.Address, reason types.LockReason, release uint64) {
	locks := l.get(address)
	item := locks.setRelease(reason, release)

	l.bus.Events().AddEvent(&eventsdb.LockedEvent{
		Address: address,
		Reason:  reason,
		Amount:  item.value().String(),
		Release: release,
	})
}

// IncreaseLockAmount adds value to the existing record. The caller has
// already debited the account's available balance.
func (l *Locks) IncreaseLockAmount(address types.Address, reason types.LockReason, value *big.Int) {
	locks := l.get(address)
	item := locks.addAmount(reason, value)
	l.bus.Checker().AddAmount(big.NewInt(0).Set(value))

	l.bus.Events().AddEvent(&eventsdb.LockedEvent{
		Address: address,
		Reason:  reason,
		Amount:  item.value().String(),
		Release: item.Release,
	})
}

// ImportLock restores a record during import without emitting. The escrow
// delta is still reported so the checker can verify the snapshot.
func (l *Locks) ImportLock(address types.Address, reason types.LockReason, value *big.Int, release uint64) {
	l.GetOrNew(address).set(reason, value, release)
	l.bus.Checker().AddAmount(big.NewInt(0).Set(value))
}

// RealizeUnlocks claims every matured record of the address, credits the
// summed amount back to available balance and emits Unlocked events. It
// returns the realized amount. This is the only mutating unlock path.
func (l *Locks) RealizeUnlocks(address types.Address, now uint64) *big.Int {
	total := big.NewInt(0)

	locks := l.get(address)
	if locks == nil {
		return total
	}

	for _, item := range locks.items() {
		if item.Claimed || item.Release > now {
			continue
		}

		value := item.value()
		total.Add(total, value)
		locks.claim(item.Reason)

		l.bus.Events().AddEvent(&eventsdb.UnlockedEvent{
			Address: address,
			Reason:  item.Reason,
			Amount:  value.String(),
		})
	}

	if total.Sign() == 0 {
		return total
	}

	l.bus.Checker().AddAmount(big.NewInt(0).Neg(total))
	l.bus.Accounts().AddBalance(address, total)

	return total
}

// TokensLocked returns the unclaimed amount for (address, reason). An
// unclaimed but matured record still reports as locked until realized.
func (l *Locks) TokensLocked(address types.Address, reason types.LockReason) *big.Int {
	locks := l.get(address)
	if locks == nil {
		return big.NewInt(0)
	}

	item := locks.item(reason)
	if item == nil || item.Claimed {
		return big.NewInt(0)
	}

	return item.value()
}

// TokensLockedAtTime returns the amount that will still be locked at the
// given time, for forward-looking projections.
func (l *Locks) TokensLockedAtTime(address types.Address, reason types.LockReason, time uint64) *big.Int {
	locks := l.get(address)
	if locks == nil {
		return big.NewInt(0)
	}

	item := locks.item(reason)
	if item == nil || item.Claimed || item.Release <= time {
		return big.NewInt(0)
	}

	return item.value()
}

// TokensUnlockable returns the matured, unclaimed amount for
// (address, reason).
func (l *Locks) TokensUnlockable(address types.Address, reason types.LockReason, now uint64) *big.Int {
	locks := l.get(address)
	if locks == nil {
		return big.NewInt(0)
	}

	item := locks.item(reason)
	if item == nil || item.Claimed || item.Release > now {
		return big.NewInt(0)
	}

	return item.value()
}

// GetUnlockableTokens sums TokensUnlockable over every reason the address
// has used.
func (l *Locks) GetUnlockableTokens(address types.Address, now uint64) *big.Int {
	total := big.NewInt(0)

	locks := l.get(address)
	if locks == nil {
		return total
	}

	for _, item := range locks.items() {
		if item.Claimed || item.Release > now {
			continue
		}
		total.Add(total, item.value())
	}

	return total
}

// TotalLocked sums every unclaimed amount of the address, matured or not.
func (l *Locks) TotalLocked(address types.Address) *big.Int {
	total := big.NewInt(0)

	locks := l.get(address)
	if locks == nil {
		return total
	}

	for _, item := range locks.items() {
		if item.Claimed {
			continue
		}
		total.Add(total, item.value())
	}

	return total
}

// HasActiveLock reports whether an unclaimed record exists for
// (address, reason), regardless of its release time.
func (l *Locks) HasActiveLock(address types.Address, reason types.LockReason) bool {
	return l.TokensLocked(address, reason).Sign() == 1
}

// Reasons returns the reasons the address has ever used, in insertion
// order.
func (l *Locks) Reasons(address types.Address) []types.LockReason {
	locks := l.get(address)
	if locks == nil {
		return nil
	}

	items := locks.items()
	reasons := make([]types.LockReason, 0, len(items))
	for _, item := range items {
		reasons = append(reasons, item.Reason)
	}

	return reasons
}

func (l *Locks) GetLocks(address types.Address) *Model {
	return l.get(address)
}

func (l *Locks) GetOrNew(address types.Address) *Model {
	locks := l.get(address)
	if locks == nil {
		locks = &Model{
			address:   address,
			markDirty: l.markDirty,
		}
		l.setToMap(address, locks)
	}

	return locks
}

func (l *Locks) get(address types.Address) *Model {
	if locks := l.getFromMap(address); locks != nil {
		return locks
	}

	tree := l.immutableTree()
	if tree == nil {
		return nil
	}

	_, enc := tree.Get(getPath(address))
	if len(enc) == 0 {
		return nil
	}

	locks := &Model{}
	if err := cdc.UnmarshalBinaryBare(enc, locks); err != nil {
		panic(fmt.Sprintf("failed to decode locks at address %s: %s", address.String(), err))
	}

	locks.address = address
	locks.markDirty = l.markDirty

	l.setToMap(address, locks)

	return locks
}

func (l *Locks) markDirty(address types.Address) {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.dirty[address] = struct{}{}
}

func (l *Locks) getOrderedDirty() []types.Address {
	l.lock.Lock()
	keys := make([]types.Address, 0, len(l.dirty))
	for k := range l.dirty {
		keys = append(keys, k)
	}
	l.lock.Unlock()

	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].Compare(keys[j]) == -1
	})

	return keys
}

func (l *Locks) Export(state *types.AppState) {
	l.immutableTree().IterateRange([]byte{mainPrefix}, []byte{mainPrefix + 1}, true, func(key []byte, value []byte) bool {
		if len(key[1:]) != types.AddressLength {
			return false
		}

		address := types.BytesToAddress(key[1:])

		locks := &Model{}
		if err := cdc.UnmarshalBinaryBare(value, locks); err != nil {
			panic(fmt.Sprintf("failed to decode locks at address %s: %s", address.String(), err))
		}

		for _, item := range locks.List {
			if item.Claimed {
				continue
			}

			state.Locks = append(state.Locks, types.Lock{
				Address: address,
				Reason:  item.Reason,
				Value:   item.value().String(),
				Release: item.Release,
			})
		}

		return false
	})
}

func (l *Locks) getFromMap(address types.Address) *Model {
	l.lock.RLock()
	defer l.lock.RUnlock()

	return l.list[address]
}

func (l *Locks) setToMap(address types.Address, model *Model) {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.list[address] = model
}

func getPath(address types.Address) []byte {
	return append([]byte{mainPrefix}, address[:]...)
}
