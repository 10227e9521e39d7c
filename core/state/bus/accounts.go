package bus

import (
	"math/big"

	"github.com/tokenvault/tokenvault-go/core/types"
)

type Accounts interface {
	AddBalance(types.Address, *big.Int)
}
