package accounts

import (
	"math/big"

	"github.com/tokenvault/tokenvault-go/core/types"
)

type Bus struct {
	accounts *Accounts
}

func NewBus(accounts *Accounts) *Bus {
	return &Bus{accounts: accounts}
}

func (b *Bus) AddBalance(address types.Address, value *big.Int) {
	b.accounts.AddBalance(address, value)
}
