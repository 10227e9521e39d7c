package types

import (
	"fmt"

	"github.com/tokenvault/tokenvault-go/helpers"
)

// AppState is the JSON import/export form of the whole ledger.
type AppState struct {
	Note     string    `json:"note"`
	Owner    Address   `json:"owner"`
	Paused   bool      `json:"paused"`
	Token    Token     `json:"token"`
	Accounts []Account `json:"accounts,omitempty"`
	Locks    []Lock    `json:"locks,omitempty"`
}

type Token struct {
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	Volume    string `json:"volume"`
	MaxSupply string `json:"max_supply"`
	Mintable  bool   `json:"mintable"`
	Burnable  bool   `json:"burnable"`
}

type Account struct {
	Address Address `json:"address"`
	Balance string  `json:"balance"`
	Frozen  bool    `json:"frozen,omitempty"`
}

type Lock struct {
	Address Address    `json:"address"`
	Reason  LockReason `json:"reason"`
	Value   string     `json:"value"`
	Release uint64     `json:"release"`
}

// Verify performs basic consistency checks on the state. The conservation
// invariant itself is re-established by the checker on import.
func (s *AppState) Verify() error {
	if s.Owner.IsZero() {
		return fmt.Errorf("owner address is not set")
	}

	if !helpers.IsValidBigInt(s.Token.Volume) {
		return fmt.Errorf("token volume is not valid BigInt")
	}

	if !helpers.IsValidBigInt(s.Token.MaxSupply) {
		return fmt.Errorf("token max supply is not valid BigInt")
	}

	accounts := map[Address]struct{}{}
	for _, acc := range s.Accounts {
		if _, exists := accounts[acc.Address]; exists {
			return fmt.Errorf("duplicated account %s", acc.Address.String())
		}
		accounts[acc.Address] = struct{}{}

		if acc.Address.IsZero() {
			return fmt.Errorf("account address is null")
		}

		if !helpers.IsValidBigInt(acc.Balance) {
			return fmt.Errorf("balance of account %s is not valid", acc.Address.String())
		}
	}

	locks := map[string]struct{}{}
	for _, lock := range s.Locks {
		key := lock.Address.String() + lock.Reason.String()
		if _, exists := locks[key]; exists {
			return fmt.Errorf("duplicated lock %s for account %s", lock.Reason.String(), lock.Address.String())
		}
		locks[key] = struct{}{}

		if lock.Address.IsZero() {
			return fmt.Errorf("lock account address is null")
		}

		if !helpers.IsValidBigInt(lock.Value) {
			return fmt.Errorf("lock value of account %s is not valid", lock.Address.String())
		}

		if helpers.StringToBigInt(lock.Value).Sign() != 1 {
			return fmt.Errorf("lock value of account %s is not positive", lock.Address.String())
		}
	}

	return nil
}
