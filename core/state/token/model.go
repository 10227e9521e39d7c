package token

import (
	"math/big"
	"sync"
)

// Model is the persisted token descriptor. Amounts are stored as raw
// big-endian bytes.
type Model struct {
	TokenName   string
	TokenSymbol string
	Vol         []byte
	Max         []byte
	IsMintable  bool
	IsBurnable  bool

	dirty bool
	lock  sync.RWMutex
}

func (model *Model) name() string {
	model.lock.RLock()
	defer model.lock.RUnlock()

	return model.TokenName
}

func (model *Model) symbol() string {
	model.lock.RLock()
	defer model.lock.RUnlock()

	return model.TokenSymbol
}

func (model *Model) volume() *big.Int {
	model.lock.RLock()
	defer model.lock.RUnlock()

	return big.NewInt(0).SetBytes(model.Vol)
}

func (model *Model) maxSupply() *big.Int {
	model.lock.RLock()
	defer model.lock.RUnlock()

	return big.NewInt(0).SetBytes(model.Max)
}

func (model *Model) mintable() bool {
	model.lock.RLock()
	defer model.lock.RUnlock()

	return model.IsMintable
}

func (model *Model) burnable() bool {
	model.lock.RLock()
	defer model.lock.RUnlock()

	return model.IsBurnable
}

func (model *Model) setInfo(name, symbol string, maxSupply *big.Int, mintable, burnable bool) {
	model.lock.Lock()
	defer model.lock.Unlock()

	model.TokenName = name
	model.TokenSymbol = symbol
	model.Max = maxSupply.Bytes()
	model.IsMintable = mintable
	model.IsBurnable = burnable
	model.dirty = true
}

func (model *Model) setVolume(volume *big.Int) {
	model.lock.Lock()
	defer model.lock.Unlock()

	model.Vol = volume.Bytes()
	model.dirty = true
}

func (model *Model) isDirty() bool {
	model.lock.RLock()
	defer model.lock.RUnlock()

	return model.dirty
}
