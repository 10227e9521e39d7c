package accounts

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

const mainPrefix = byte('a')
const balancePrefix = byte('b')
const allowancePrefix = byte('w')

var cdc = amino.NewCodec()

// RAccounts is the read-only view of the balance store and freeze registry.
type RAccounts interface {
	Export(state *types.AppState)
	GetAccount(address types.Address) *Model
	GetBalance(address types.Address) *big.Int
	GetAllowance(owner types.Address, spender types.Address) *big.Int
	IsFrozen(address types.Address) bool
}

// Accounts keeps available balances, per-account frozen flags and
// spending allowances.
type Accounts struct {
	list  map[types.Address]*Model
	dirty map[types.Address]struct{}

	db  atomic.Value
	bus *bus.Bus

	lock sync.RWMutex
}

func NewAccounts(stateBus *bus.Bus, db *iavl.ImmutableTree) *Accounts {
	immutableTree := atomic.Value{}
	if db != nil {
		immutableTree.Store(db)
	}
	accounts := &Accounts{db: immutableTree, bus: stateBus, list: map[types.Address]*Model{}, dirty: map[types.Address]struct{}{}}
	accounts.bus.SetAccounts(NewBus(accounts))

	return accounts
}

func (a *Accounts) immutableTree() *iavl.ImmutableTree {
	db := a.db.Load()
	if db == nil {
		return nil
	}
	return db.(*iavl.ImmutableTree)
}

func (a *Accounts) SetImmutableTree(immutableTree *iavl.ImmutableTree) {
	a.db.Store(immutableTree)
}

func (a *Accounts) Commit(db *iavl.MutableTree, version int64) error {
	accounts := a.getOrderedDirtyAccounts()
	for _, address := range accounts {
		account := a.getFromMap(address)
		a.lock.Lock()
		delete(a.dirty, address)
		a.lock.Unlock()

		// save info (frozen flag)
		if a.isNewOrDirty(account) {
			account.lock.Lock()
			account.isDirty = false
			account.isNew = false
			data, err := cdc.MarshalBinaryBare(account)
			account.lock.Unlock()
			if err != nil {
				return fmt.Errorf("can't encode object at %x: %v", address[:], err)
			}

			path := append([]byte{mainPrefix}, address[:]...)
			if len(data) == 0 {
				db.Remove(path)
			} else {
				db.Set(path, data)
			}
		}

		// save balance
		if account.isBalanceDirty() {
			path := append([]byte{mainPrefix}, address[:]...)
			path = append(path, balancePrefix)

			balance := account.getBalance()
			switch balance.Sign() {
			case 0:
				db.Remove(path)
			case 1:
				db.Set(path, balance.Bytes())
			case -1:
				panic(fmt.Sprintf("Address %s has negative balance: %s", account.address.String(), balance))
			}

			account.lock.Lock()
			account.dirtyBalance = false
			account.lock.Unlock()
		}

		// save allowances
		if account.hasDirtyAllowances() {
			for _, spender := range account.getOrderedDirtyAllowances() {
				path := append([]byte{mainPrefix}, address[:]...)
				path = append(path, allowancePrefix)
				path = append(path, spender[:]...)

				allowance := account.getAllowance(spender)
				if allowance.Sign() == 0 {
					db.Remove(path)
				} else {
					db.Set(path, allowance.Bytes())
				}
			}

			account.lock.Lock()
			account.dirtyAllowances = map[types.Address]struct{}{}
			account.lock.Unlock()
		}
	}

	return nil
}

func (a *Accounts) isNewOrDirty(account *Model) bool {
	account.lock.RLock()
	defer account.lock.RUnlock()

	return account.isDirty || account.isNew
}

func (a *Accounts) getOrderedDirtyAccounts() []types.Address {
	a.lock.RLock()
	keys := make([]types.Address, 0, len(a.dirty))
	for k := range a.dirty {
		keys = append(keys, k)
	}
	a.lock.RUnlock()

	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].Compare(keys[j]) == 1
	})

	return keys
}

// GetBalance returns the raw available balance, excluding any escrowed
// funds and ignoring matured locks.
func (a *Accounts) GetBalance(address types.Address) *big.Int {
	account := a.getOrNew(address)

	account.lock.RLock()
	balance := account.balance
	account.lock.RUnlock()

	if balance == nil {
		balance = big.NewInt(0)

		path := append([]byte{mainPrefix}, address[:]...)
		path = append(path, balancePrefix)

		if tree := a.immutableTree(); tree != nil {
			_, enc := tree.Get(path)
			if len(enc) != 0 {
				balance = big.NewInt(0).SetBytes(enc)
			}
		}

		account.lock.Lock()
		account.balance = balance
		account.lock.Unlock()
	}

	return big.NewInt(0).Set(balance)
}

func (a *Accounts) AddBalance(address types.Address, amount *big.Int) {
	balance := a.GetBalance(address)
	a.SetBalance(address, big.NewInt(0).Add(balance, amount))
}

func (a *Accounts) SubBalance(address types.Address, amount *big.Int) {
	balance := big.NewInt(0).Sub(a.GetBalance(address), amount)
	a.SetBalance(address, balance)
}

func (a *Accounts) SetBalance(address types.Address, amount *big.Int) {
	account := a.getOrNew(address)
	oldBalance := a.GetBalance(address)
	a.bus.Checker().AddAmount(big.NewInt(0).Sub(amount, oldBalance))

	account.setBalance(amount)
}

// GetAllowance returns the remaining amount spender may transfer on
// owner's behalf.
func (a *Accounts) GetAllowance(owner types.Address, spender types.Address) *big.Int {
	account := a.getOrNew(owner)

	account.lock.RLock()
	allowance, ok := account.allowances[spender]
	account.lock.RUnlock()

	if !ok {
		allowance = big.NewInt(0)

		path := append([]byte{mainPrefix}, owner[:]...)
		path = append(path, allowancePrefix)
		path = append(path, spender[:]...)

		if tree := a.immutableTree(); tree != nil {
			_, enc := tree.Get(path)
			if len(enc) != 0 {
				allowance = big.NewInt(0).SetBytes(enc)
			}
		}

		account.lock.Lock()
		account.allowances[spender] = allowance
		account.lock.Unlock()
	}

	return big.NewInt(0).Set(allowance)
}

func (a *Accounts) SetAllowance(owner types.Address, spender types.Address, amount *big.Int) {
	account := a.getOrNew(owner)
	account.setAllowance(spender, amount)
}

func (a *Accounts) SubAllowance(owner types.Address, spender types.Address, amount *big.Int) {
	allowance := big.NewInt(0).Sub(a.GetAllowance(owner, spender), amount)
	a.SetAllowance(owner, spender, allowance)
}

// IsFrozen reports whether the address is blocked from participating in
// transfers.
func (a *Accounts) IsFrozen(address types.Address) bool {
	account := a.getOrNew(address)

	account.lock.RLock()
	defer account.lock.RUnlock()

	return account.Frozen
}

// SetFrozen toggles the freeze flag. Repeating the current state is a
// no-op and emits nothing.
func (a *Accounts) SetFrozen(address types.Address, frozen bool) {
	account := a.getOrNew(address)
	if account.IsFrozen() == frozen {
		return
	}
	account.setFrozen(frozen)

	if frozen {
		a.bus.Events().AddEvent(&eventsdb.FrozenEvent{Address: address})
	} else {
		a.bus.Events().AddEvent(&eventsdb.UnfrozenEvent{Address: address})
	}
}

// ImportFrozen restores the flag during import without emitting.
func (a *Accounts) ImportFrozen(address types.Address, frozen bool) {
	if !frozen {
		return
	}
	a.getOrNew(address).setFrozen(true)
}

func (a *Accounts) get(address types.Address) *Model {
	if account := a.getFromMap(address); account != nil {
		return account
	}

	tree := a.immutableTree()
	if tree == nil {
		return nil
	}

	path := append([]byte{mainPrefix}, address[:]...)
	_, enc := tree.Get(path)
	if len(enc) == 0 {
		return nil
	}

	account := &Model{}
	if err := cdc.UnmarshalBinaryBare(enc, account); err != nil {
		panic(fmt.Sprintf("failed to decode account at address %s: %s", address.String(), err))
	}

	account.address = address
	account.allowances = map[types.Address]*big.Int{}
	account.dirtyAllowances = map[types.Address]struct{}{}
	account.markDirty = a.markDirty

	a.setToMap(address, account)
	return account
}

func (a *Accounts) getOrNew(address types.Address) *Model {
	account := a.get(address)
	if account == nil {
		account = &Model{
			address:         address,
			allowances:      map[types.Address]*big.Int{},
			dirtyAllowances: map[types.Address]struct{}{},
			markDirty:       a.markDirty,
			isNew:           true,
		}
		a.setToMap(address, account)
	}

	return account
}

func (a *Accounts) markDirty(addr types.Address) {
	a.lock.Lock()
	defer a.lock.Unlock()

	a.dirty[addr] = struct{}{}
}

func (a *Accounts) Export(state *types.AppState) {
	balances := map[types.Address]*big.Int{}
	frozen := map[types.Address]bool{}
	var addresses []types.Address

	appendAddress := func(address types.Address) {
		if _, ok := balances[address]; ok {
			return
		}
		if _, ok := frozen[address]; ok {
			return
		}
		addresses = append(addresses, address)
	}

	a.immutableTree().IterateRange([]byte{mainPrefix}, []byte{mainPrefix + 1}, true, func(key []byte, value []byte) bool {
		path := key[1:]

		switch {
		case len(path) == types.AddressLength:
			address := types.BytesToAddress(path)
			account := &Model{}
			if err := cdc.UnmarshalBinaryBare(value, account); err != nil {
				panic(fmt.Sprintf("failed to decode account at address %s: %s", address.String(), err))
			}
			appendAddress(address)
			frozen[address] = account.Frozen
		case len(path) == types.AddressLength+1 && path[types.AddressLength] == balancePrefix:
			address := types.BytesToAddress(path[:types.AddressLength])
			appendAddress(address)
			balances[address] = big.NewInt(0).SetBytes(value)
		}

		return false
	})

	sort.SliceStable(addresses, func(i, j int) bool {
		return addresses[i].Compare(addresses[j]) == -1
	})

	for _, address := range addresses {
		balance := balances[address]
		if balance == nil {
			balance = big.NewInt(0)
		}

		state.Accounts = append(state.Accounts, types.Account{
			Address: address,
			Balance: balance.String(),
			Frozen:  frozen[address],
		})
	}
}

func (a *Accounts) GetAccount(address types.Address) *Model {
	return a.getOrNew(address)
}

func (a *Accounts) getFromMap(address types.Address) *Model {
	a.lock.RLock()
	defer a.lock.RUnlock()

	return a.list[address]
}

func (a *Accounts) setToMap(address types.Address, model *Model) {
	a.lock.Lock()
	defer a.lock.Unlock()

	a.list[address] = model
}
