package locks

import (
	"math/big"
	"sync"

	"github.com/tokenvault/tokenvault-go/core/types"
)

// Item is a single persisted lock record. Value is the amount in raw
// big-endian bytes. A claimed item stays in the list as a tombstone so
// the reason's history survives until the next lock reuses it.
type Item struct {
	Reason  types.LockReason
	Value   []byte
	Release uint64
	Claimed bool
}

func (item *Item) value() *big.Int {
	return big.NewInt(0).SetBytes(item.Value)
}

// Model holds every lock record of one address, in insertion order.
type Model struct {
	List []Item

	address   types.Address
	markDirty func(address types.Address)
	lock      sync.RWMutex
}

func (model *Model) Address() types.Address {
	return model.address
}

// set writes a fresh record for the reason, replacing any claimed
// tombstone occupying the same slot.
func (model *Model) set(reason types.LockReason, value *big.Int, release uint64) {
	model.lock.Lock()
	defer model.lock.Unlock()

	item := Item{
		Reason:  reason,
		Value:   value.Bytes(),
		Release: release,
	}

	if i := model.index(reason); i != -1 {
		model.List[i] = item
	} else {
		model.List = append(model.List, item)
	}

	model.markDirty(model.address)
}

func (model *Model) setRelease(reason types.LockReason, release uint64) *Item {
	model.lock.Lock()
	defer model.lock.Unlock()

	i := model.index(reason)
	model.List[i].Release = release
	model.markDirty(model.address)

	item := model.List[i]
	return &item
}

func (model *Model) addAmount(reason types.LockReason, value *big.Int) *Item {
	model.lock.Lock()
	defer model.lock.Unlock()

	i := model.index(reason)
	model.List[i].Value = big.NewInt(0).Add(model.List[i].value(), value).Bytes()
	model.markDirty(model.address)

	item := model.List[i]
	return &item
}

func (model *Model) claim(reason types.LockReason) {
	model.lock.Lock()
	defer model.lock.Unlock()

	i := model.index(reason)
	model.List[i].Claimed = true
	model.markDirty(model.address)
}

// item returns a copy of the record for the reason, or nil.
func (model *Model) item(reason types.LockReason) *Item {
	model.lock.RLock()
	defer model.lock.RUnlock()

	i := model.index(reason)
	if i == -1 {
		return nil
	}

	item := model.List[i]
	return &item
}

// items returns a snapshot of the list.
func (model *Model) items() []Item {
	model.lock.RLock()
	defer model.lock.RUnlock()

	items := make([]Item, len(model.List))
	copy(items, model.List)
	return items
}

// index must be called with the lock held.
func (model *Model) index(reason types.LockReason) int {
	for i := range model.List {
		if model.List[i].Reason == reason {
			return i
		}
	}
	return -1
}
