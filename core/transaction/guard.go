package transaction

import (
	"fmt"
	"math/big"

	"github.com/tokenvault/tokenvault-go/core/code"
	"github.com/tokenvault/tokenvault-go/core/state"
	"github.com/tokenvault/tokenvault-go/core/types"
)

// participant is an address checked against the freeze registry, labeled
// with its role in the operation.
type participant struct {
	address types.Address
	role    string
}

// checkGuard runs the fixed-order pre-transfer chain: the pause flag
// first, then every participant against the freeze registry. Pause must
// short-circuit before freeze, and freeze before any unlock realization.
func checkGuard(checkState *state.CheckState, participants ...participant) *Response {
	if checkState.App().IsPaused() {
		return &Response{
			Code: code.SystemPaused,
			Log:  "System is paused",
			Info: EncodeError(code.NewSystemPaused()),
		}
	}

	for _, p := range participants {
		if checkState.Accounts().IsFrozen(p.address) {
			return &Response{
				Code: code.AccountFrozen,
				Log:  fmt.Sprintf("Account %s is frozen as %s", p.address.String(), p.role),
				Info: EncodeError(code.NewAccountFrozen(p.address.String(), p.role)),
			}
		}
	}

	return nil
}

// checkSpendable validates the balance against the spendable projection,
// which already counts matured unclaimed locks. Deliver mode realizes
// those locks before moving funds, so projection and post-realization
// balance agree.
func checkSpendable(checkState *state.CheckState, address types.Address, value *big.Int, now uint64) *Response {
	spendable := checkState.BalanceOf(address, now)
	if spendable.Cmp(value) < 0 {
		return &Response{
			Code: code.InsufficientFunds,
			Log:  fmt.Sprintf("Insufficient funds for account %s. Wanted %s, available %s", address.String(), value.String(), spendable.String()),
			Info: EncodeError(code.NewInsufficientFunds(address.String(), value.String(), spendable.String())),
		}
	}

	return nil
}

// hasActiveLockAt reports whether (address, reason) would still hold an
// active record after realization at the given time.
func hasActiveLockAt(checkState *state.CheckState, address types.Address, reason types.LockReason, now uint64) bool {
	return checkState.Locks().TokensLockedAtTime(address, reason, now).Sign() == 1
}

func checkAmount(value *big.Int) *Response {
	if value == nil || value.Sign() != 1 {
		return &Response{
			Code: code.ZeroAmount,
			Log:  "Amount must be positive",
			Info: EncodeError(code.NewZeroAmount()),
		}
	}

	return nil
}

func checkNotNull(address types.Address) *Response {
	if address.IsZero() {
		return &Response{
			Code: code.NullAddress,
			Log:  "Address is null",
			Info: EncodeError(code.NewNullAddress()),
		}
	}

	return nil
}
