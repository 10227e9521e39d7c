package token

import (
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/cosmos/iavl"
	"github.com/tendermint/go-amino"

	"github.com/tokenvault/tokenvault-go/core/state/bus"
	"github.com/tokenvault/tokenvault-go/core/types"
)

const mainPrefix = byte('t')

var cdc = amino.NewCodec()

// RToken is the read-only view of the token descriptor.
type RToken interface {
	Export(state *types.AppState)
	Name() string
	Symbol() string
	Volume() *big.Int
	MaxSupply() *big.Int
	IsMintable() bool
	IsBurnable() bool
}

// Token keeps the single token's descriptor and its circulating volume.
type Token struct {
	model *Model

	bus *bus.Bus
	db  atomic.Value

	lock sync.RWMutex
}

func NewToken(stateBus *bus.Bus, db *iavl.ImmutableTree) *Token {
	immutableTree := atomic.Value{}
	if db != nil {
		immutableTree.Store(db)
	}

	return &Token{bus: stateBus, db: immutableTree}
}

func (t *Token) immutableTree() *iavl.ImmutableTree {
	db := t.db.Load()
	if db == nil {
		return nil
	}
	return db.(*iavl.ImmutableTree)
}

func (t *Token) SetImmutableTree(immutableTree *iavl.ImmutableTree) {
	t.db.Store(immutableTree)
}

func (t *Token) Commit(db *iavl.MutableTree, version int64) error {
	model := t.getOrNew()
	if !model.isDirty() {
		return nil
	}

	model.lock.Lock()
	model.dirty = false
	data, err := cdc.MarshalBinaryBare(model)
	model.lock.Unlock()
	if err != nil {
		return fmt.Errorf("can't encode token: %v", err)
	}

	db.Set([]byte{mainPrefix}, data)

	return nil
}

// Create sets the token descriptor. Existing volume is replaced; the
// volume delta is reported so conservation holds across genesis import.
func (t *Token) Create(name, symbol string, volume, maxSupply *big.Int, mintable, burnable bool) {
	model := t.getOrNew()
	old := model.volume()

	model.setInfo(name, symbol, maxSupply, mintable, burnable)
	model.setVolume(volume)

	t.bus.Checker().AddVolume(big.NewInt(0).Sub(volume, old))
}

func (t *Token) Name() string {
	return t.getOrNew().name()
}

func (t *Token) Symbol() string {
	return t.getOrNew().symbol()
}

// Volume returns the current total supply.
func (t *Token) Volume() *big.Int {
	return t.getOrNew().volume()
}

// MaxSupply returns the supply cap, zero meaning uncapped.
func (t *Token) MaxSupply() *big.Int {
	return t.getOrNew().maxSupply()
}

func (t *Token) IsMintable() bool {
	return t.getOrNew().mintable()
}

func (t *Token) IsBurnable() bool {
	return t.getOrNew().burnable()
}

func (t *Token) AddVolume(amount *big.Int) {
	model := t.getOrNew()
	model.setVolume(big.NewInt(0).Add(model.volume(), amount))
	t.bus.Checker().AddVolume(big.NewInt(0).Set(amount))
}

func (t *Token) SubVolume(amount *big.Int) {
	model := t.getOrNew()
	model.setVolume(big.NewInt(0).Sub(model.volume(), amount))
	t.bus.Checker().AddVolume(big.NewInt(0).Neg(amount))
}

func (t *Token) getOrNew() *Model {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.model != nil {
		return t.model
	}

	model := &Model{}
	if tree := t.immutableTree(); tree != nil {
		_, enc := tree.Get([]byte{mainPrefix})
		if len(enc) != 0 {
			if err := cdc.UnmarshalBinaryBare(enc, model); err != nil {
				panic(fmt.Sprintf("failed to decode token: %s", err))
			}
		}
	}

	t.model = model
	return model
}

func (t *Token) Export(state *types.AppState) {
	model := t.getOrNew()

	state.Token = types.Token{
		Name:      model.name(),
		Symbol:    model.symbol(),
		Volume:    model.volume().String(),
		MaxSupply: model.maxSupply().String(),
		Mintable:  model.mintable(),
		Burnable:  model.burnable(),
	}
}
