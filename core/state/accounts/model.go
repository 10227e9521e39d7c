package accounts

import (
	"math/big"
	"sort"
	"sync"

	"github.com/tokenvault/tokenvault-go/core/types"
)

// Model is the in-memory form of a single account: the persisted frozen
// flag plus cached balance and allowances.
type Model struct {
	Frozen bool

	address    types.Address
	balance    *big.Int
	allowances map[types.Address]*big.Int

	dirtyBalance    bool
	dirtyAllowances map[types.Address]struct{}
	isDirty         bool // frozen flag
	isNew           bool

	markDirty func(types.Address)
	lock      sync.RWMutex
}

func (model *Model) Address() types.Address {
	return model.address
}

func (model *Model) setFrozen(frozen bool) {
	model.lock.Lock()
	defer model.lock.Unlock()

	model.Frozen = frozen
	model.isDirty = true
	model.markDirty(model.address)
}

func (model *Model) getBalance() *big.Int {
	model.lock.RLock()
	defer model.lock.RUnlock()

	return model.balance
}

func (model *Model) setBalance(amount *big.Int) {
	model.lock.Lock()
	model.balance = amount
	model.dirtyBalance = true
	model.lock.Unlock()

	model.markDirty(model.address)
}

func (model *Model) isBalanceDirty() bool {
	model.lock.RLock()
	defer model.lock.RUnlock()

	return model.dirtyBalance
}

func (model *Model) getAllowance(spender types.Address) *big.Int {
	model.lock.RLock()
	defer model.lock.RUnlock()

	allowance := model.allowances[spender]
	if allowance == nil {
		return big.NewInt(0)
	}

	return allowance
}

func (model *Model) setAllowance(spender types.Address, amount *big.Int) {
	model.lock.Lock()
	model.allowances[spender] = amount
	model.dirtyAllowances[spender] = struct{}{}
	model.lock.Unlock()

	model.markDirty(model.address)
}

func (model *Model) hasDirtyAllowances() bool {
	model.lock.RLock()
	defer model.lock.RUnlock()

	return len(model.dirtyAllowances) > 0
}

func (model *Model) getOrderedDirtyAllowances() []types.Address {
	model.lock.RLock()
	keys := make([]types.Address, 0, len(model.dirtyAllowances))
	for k := range model.dirtyAllowances {
		keys = append(keys, k)
	}
	model.lock.RUnlock()

	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].Compare(keys[j]) == 1
	})

	return keys
}

func (model *Model) IsFrozen() bool {
	model.lock.RLock()
	defer model.lock.RUnlock()

	return model.Frozen
}
