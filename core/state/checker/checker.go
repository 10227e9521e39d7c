package checker

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/tokenvault/tokenvault-go/core/state/bus"
)

// Checker accumulates the deltas every balance or escrow mutation produces
// and the deltas the token supply produces, and verifies they match. The
// conservation invariant Σ totalBalanceOf(account) == totalSupply holds
// exactly when the two sums are equal.
type Checker struct {
	delta       *big.Int
	volumeDelta *big.Int

	lock sync.RWMutex
}

func NewChecker(bus *bus.Bus) *Checker {
	checker := &Checker{
		delta:       big.NewInt(0),
		volumeDelta: big.NewInt(0),
	}
	bus.SetChecker(checker)

	return checker
}

// AddAmount records a change of funds held by accounts or lock escrow.
func (c *Checker) AddAmount(value *big.Int, msg ...string) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.delta.Add(c.delta, value)
}

// AddVolume records a change of the token's total supply.
func (c *Checker) AddVolume(value *big.Int) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.volumeDelta.Add(c.volumeDelta, value)
}

// Reset resets checker data
func (c *Checker) Reset() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.delta = big.NewInt(0)
	c.volumeDelta = big.NewInt(0)
}

func (c *Checker) Check() error {
	c.lock.RLock()
	defer c.lock.RUnlock()

	if c.delta.Cmp(c.volumeDelta) != 0 {
		return fmt.Errorf("invariants error: %s", big.NewInt(0).Sub(c.volumeDelta, c.delta).String())
	}

	return nil
}
