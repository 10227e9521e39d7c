package app

import (
	"sync"

	"github.com/tokenvault/tokenvault-go/core/types"
)

type Model struct {
	OwnerAddress types.Address
	Paused       bool

	dirty bool
	lock  sync.RWMutex
}

func (model *Model) owner() types.Address {
	model.lock.RLock()
	defer model.lock.RUnlock()

	return model.OwnerAddress
}

func (model *Model) setOwner(owner types.Address) {
	model.lock.Lock()
	defer model.lock.Unlock()

	model.OwnerAddress = owner
	model.dirty = true
}

func (model *Model) isPaused() bool {
	model.lock.RLock()
	defer model.lock.RUnlock()

	return model.Paused
}

func (model *Model) setPaused(paused bool) {
	model.lock.Lock()
	defer model.lock.Unlock()

	model.Paused = paused
	model.dirty = true
}

func (model *Model) isDirty() bool {
	model.lock.RLock()
	defer model.lock.RUnlock()

	return model.dirty
}
