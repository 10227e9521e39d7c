package bus

import (
	"math/big"
)

type Checker interface {
	AddAmount(*big.Int, ...string)
	AddVolume(*big.Int)
}
