package bus

import (
	"github.com/tokenvault/tokenvault-go/core/events"
)

// Bus wires keepers to each other through narrow interfaces, so that the
// lock ledger can credit balances and report conservation deltas without
// importing the keepers directly.
type Bus struct {
	accounts Accounts
	checker  Checker
	events   events.IEventsDB
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Accounts() Accounts {
	return b.accounts
}

func (b *Bus) SetAccounts(accounts Accounts) {
	b.accounts = accounts
}

func (b *Bus) Checker() Checker {
	return b.checker
}

func (b *Bus) SetChecker(checker Checker) {
	b.checker = checker
}

func (b *Bus) Events() events.IEventsDB {
	return b.events
}

func (b *Bus) SetEvents(events events.IEventsDB) {
	b.events = events
}
