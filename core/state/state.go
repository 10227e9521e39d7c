package state

import (
	"log"
	"math/big"
	"sync"

	"github.com/cosmos/iavl"
	db "github.com/tendermint/tm-db"

	eventsdb "github.com/tokenvault/tokenvault-go/core/events"
	"github.com/tokenvault/tokenvault-go/core/state/accounts"
	"github.com/tokenvault/tokenvault-go/core/state/app"
	"github.com/tokenvault/tokenvault-go/core/state/bus"
	"github.com/tokenvault/tokenvault-go/core/state/checker"
	"github.com/tokenvault/tokenvault-go/core/state/locks"
	"github.com/tokenvault/tokenvault-go/core/state/token"
	"github.com/tokenvault/tokenvault-go/core/types"
	"github.com/tokenvault/tokenvault-go/helpers"
	"github.com/tokenvault/tokenvault-go/tree"
)

type Interface interface {
	isValue_State()
}

// CheckState is the read-only view over a State. Transactions in check
// mode and API queries run against it.
type CheckState struct {
	state *State
}

func NewCheckState(state *State) *CheckState {
	return &CheckState{state: state}
}

func (cs *CheckState) isValue_State() {}

func (cs *CheckState) Export() types.AppState {
	appState := new(types.AppState)
	cs.App().Export(appState)
	cs.Token().Export(appState)
	cs.Accounts().Export(appState)
	cs.Locks().Export(appState)

	return *appState
}

func (cs *CheckState) App() app.RApp {
	return cs.state.App
}

func (cs *CheckState) Accounts() accounts.RAccounts {
	return cs.state.Accounts
}

func (cs *CheckState) Locks() locks.RLocks {
	return cs.state.Locks
}

func (cs *CheckState) Token() token.RToken {
	return cs.state.Token
}

// BalanceOf is the spendable projection: the raw available balance plus
// every matured, unclaimed lock. It equals the available balance the
// account would hold right after realization, without mutating anything.
func (cs *CheckState) BalanceOf(address types.Address, now uint64) *big.Int {
	balance := cs.state.Accounts.GetBalance(address)
	return balance.Add(balance, cs.state.Locks.GetUnlockableTokens(address, now))
}

// TotalBalanceOf adds every unclaimed lock, matured or not, to the raw
// available balance. Summed over all accounts it equals total supply.
func (cs *CheckState) TotalBalanceOf(address types.Address) *big.Int {
	balance := cs.state.Accounts.GetBalance(address)
	return balance.Add(balance, cs.state.Locks.TotalLocked(address))
}

// State is the mutable ledger: every keeper plus the versioned tree they
// persist into.
type State struct {
	App      *app.App
	Accounts *accounts.Accounts
	Locks    *locks.Locks
	Token    *token.Token
	Checker  *checker.Checker

	db             db.DB
	events         eventsdb.IEventsDB
	tree           tree.MTree
	keepLastStates int64

	bus            *bus.Bus
	lock           sync.RWMutex
	height         int64
	initialVersion int64
}

func (s *State) isValue_State() {}

func NewState(height uint64, db db.DB, events eventsdb.IEventsDB, cacheSize int, keepLastStates int64, initialVersion uint64) (*State, error) {
	iavlTree, err := tree.NewMutableTree(height, db, cacheSize, initialVersion)
	if err != nil {
		return nil, err
	}

	state, err := newStateForTree(iavlTree.GetLastImmutable(), events, db, keepLastStates)
	if err != nil {
		return nil, err
	}

	state.tree = iavlTree
	state.height = int64(height)
	state.initialVersion = int64(initialVersion)

	return state, nil
}

func NewCheckStateAtHeight(height uint64, db db.DB) (*CheckState, error) {
	iavlTree, err := tree.NewImmutableTree(height, db)
	if err != nil {
		return nil, err
	}
	return newCheckStateForTree(iavlTree.GetLastImmutable(), nil, db, 0)
}

func (s *State) Tree() tree.MTree {
	return s.tree
}

func (s *State) Lock() {
	s.lock.Lock()
}

func (s *State) Unlock() {
	s.lock.Unlock()
}

func (s *State) RLock() {
	s.lock.RLock()
}

func (s *State) RUnlock() {
	s.lock.RUnlock()
}

// Check verifies the conservation invariant over the deltas accumulated
// since the last commit.
func (s *State) Check() error {
	return s.Checker.Check()
}

func (s *State) Commit() ([]byte, error) {
	s.Checker.Reset()

	hash, version, err := s.tree.Commit(
		s.Accounts,
		s.App,
		s.Locks,
		s.Token,
	)
	if err != nil {
		return hash, err
	}

	s.height = version

	if s.events != nil {
		if err := s.events.CommitEvents(uint32(version)); err != nil {
			return hash, err
		}
	}

	versionToDelete := version - s.keepLastStates - 1
	if versionToDelete < s.initialVersion {
		return hash, nil
	}

	if err := s.tree.DeleteVersion(versionToDelete); err != nil {
		log.Printf("DeleteVersion %d error: %s\n", versionToDelete, err)
	}

	return hash, nil
}

// Import restores a full ledger snapshot. Events are not emitted; the
// checker deltas cancel exactly when the snapshot conserves funds.
func (s *State) Import(state types.AppState) error {
	s.App.SetOwner(state.Owner)
	s.App.SetPausedQuiet(state.Paused)

	volume := helpers.StringToBigInt(state.Token.Volume)
	maxSupply := helpers.StringToBigInt(state.Token.MaxSupply)
	s.Token.Create(state.Token.Name, state.Token.Symbol, volume, maxSupply, state.Token.Mintable, state.Token.Burnable)

	for _, a := range state.Accounts {
		s.Accounts.SetBalance(a.Address, helpers.StringToBigInt(a.Balance))
		s.Accounts.ImportFrozen(a.Address, a.Frozen)
	}

	for _, l := range state.Locks {
		s.Locks.ImportLock(l.Address, l.Reason, helpers.StringToBigInt(l.Value), l.Release)
	}

	return nil
}

func (s *State) Export() types.AppState {
	state, err := NewCheckStateAtHeight(uint64(s.tree.Version()), s.db)
	if err != nil {
		log.Panicf("Create new state at height %d failed: %s", s.tree.Version(), err)
	}

	return state.Export()
}

func newCheckStateForTree(immutableTree *iavl.ImmutableTree, events eventsdb.IEventsDB, db db.DB, keepLastStates int64) (*CheckState, error) {
	stateForTree, err := newStateForTree(immutableTree, events, db, keepLastStates)
	if err != nil {
		return nil, err
	}

	return NewCheckState(stateForTree), nil
}

func newStateForTree(immutableTree *iavl.ImmutableTree, events eventsdb.IEventsDB, db db.DB, keepLastStates int64) (*State, error) {
	stateBus := bus.NewBus()
	stateBus.SetEvents(events)

	stateChecker := checker.NewChecker(stateBus)

	appState := app.NewApp(stateBus, immutableTree)

	accountsState := accounts.NewAccounts(stateBus, immutableTree)

	locksState := locks.NewLocks(stateBus, immutableTree)

	tokenState := token.NewToken(stateBus, immutableTree)

	state := &State{
		App:      appState,
		Accounts: accountsState,
		Locks:    locksState,
		Token:    tokenState,
		Checker:  stateChecker,

		height:         immutableTree.Version(),
		bus:            stateBus,
		db:             db,
		events:         events,
		keepLastStates: keepLastStates,
	}

	return state, nil
}
