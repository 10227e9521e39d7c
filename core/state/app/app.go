package app

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cosmos/iavl"
	"github.com/tendermint/go-amino"

	eventsdb "github.com/tokenvault/tokenvault-go/core/events"
	"github.com/tokenvault/tokenvault-go/core/state/bus"
	"github.com/tokenvault/tokenvault-go/core/types"
)

const mainPrefix = byte('d')

var cdc = amino.NewCodec()

// RApp is the read-only view of the access gate: the owner address and
// the global pause flag.
type RApp interface {
	Export(state *types.AppState)
	Owner() types.Address
	IsPaused() bool
}

// App keeps the ledger-wide control state.
type App struct {
	model *Model

	bus *bus.Bus
	db  atomic.Value

	lock sync.RWMutex
}

func NewApp(stateBus *bus.Bus, db *iavl.ImmutableTree) *App {
	immutableTree := atomic.Value{}
	if db != nil {
		immutableTree.Store(db)
	}

	return &App{bus: stateBus, db: immutableTree}
}

func (a *App) immutableTree() *iavl.ImmutableTree {
	db := a.db.Load()
	if db == nil {
		return nil
	}
	return db.(*iavl.ImmutableTree)
}

func (a *App) SetImmutableTree(immutableTree *iavl.ImmutableTree) {
	a.db.Store(immutableTree)
}

func (a *App) Commit(db *iavl.MutableTree, version int64) error {
	model := a.getOrNew()
	if !model.isDirty() {
		return nil
	}

	model.lock.Lock()
	model.dirty = false
	data, err := cdc.MarshalBinaryBare(model)
	model.lock.Unlock()
	if err != nil {
		return fmt.Errorf("can't encode app state: %v", err)
	}

	db.Set([]byte{mainPrefix}, data)

	return nil
}

func (a *App) Owner() types.Address {
	return a.getOrNew().owner()
}

func (a *App) SetOwner(owner types.Address) {
	a.getOrNew().setOwner(owner)
}

// TransferOwnership reassigns the owner and records the handover.
func (a *App) TransferOwnership(newOwner types.Address) {
	model := a.getOrNew()
	previous := model.owner()
	model.setOwner(newOwner)

	a.bus.Events().AddEvent(&eventsdb.OwnershipTransferredEvent{
		PreviousOwner: previous,
		NewOwner:      newOwner,
	})
}

func (a *App) IsPaused() bool {
	return a.getOrNew().isPaused()
}

// SetPaused flips the pause flag. A call that does not change the flag
// emits nothing, matching the frozen registry.
func (a *App) SetPaused(paused bool) {
	model := a.getOrNew()
	if model.isPaused() == paused {
		return
	}
	model.setPaused(paused)

	if paused {
		a.bus.Events().AddEvent(&eventsdb.PausedEvent{})
	} else {
		a.bus.Events().AddEvent(&eventsdb.UnpausedEvent{})
	}
}

// SetPausedQuiet restores the flag during import without emitting.
func (a *App) SetPausedQuiet(paused bool) {
	a.getOrNew().setPaused(paused)
}

func (a *App) getOrNew() *Model {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.model != nil {
		return a.model
	}

	model := &Model{}
	if tree := a.immutableTree(); tree != nil {
		_, enc := tree.Get([]byte{mainPrefix})
		if len(enc) != 0 {
			if err := cdc.UnmarshalBinaryBare(enc, model); err != nil {
				panic(fmt.Sprintf("failed to decode app state: %s", err))
			}
		}
	}

	a.model = model
	return model
}

func (a *App) Export(state *types.AppState) {
	model := a.getOrNew()

	state.Owner = model.owner()
	state.Paused = model.isPaused()
}
