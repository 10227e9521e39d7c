package transaction

import (
	"fmt"
	"math/big"

	abcTypes "github.com/tendermint/tendermint/abci/types"

	"github.com/tokenvault/tokenvault-go/core/code"
	"github.com/tokenvault/tokenvault-go/core/state"
	"github.com/tokenvault/tokenvault-go/core/types"
)

// BatchLockData locks funds for several accounts in one atomic operation.
// Parallel arrays; the whole batch is validated before anything moves, so
// the first failing element fails everything with its index in the detail.
type BatchLockData struct {
	Addresses []types.Address
	Reasons   []types.LockReason
	Values    []*big.Int
	Releases  []uint64
}

func (data BatchLockData) TxType() TxType {
	return TypeBatchLock
}

func (data BatchLockData) RequiresOwner() bool {
	return true
}

func (data BatchLockData) String() string {
	return fmt.Sprintf("BATCH LOCK count:%d", len(data.Addresses))
}

func (data BatchLockData) basicCheck(tx *Transaction) *Response {
	n := len(data.Addresses)
	if n == 0 || len(data.Reasons) != n || len(data.Values) != n || len(data.Releases) != n {
		return &Response{
			Code: code.InvalidBatchLength,
			Log:  "Batch arrays must be non-empty and of equal length",
			Info: EncodeError(code.NewInvalidBatchLength()),
		}
	}

	return nil
}

func (data BatchLockData) Run(tx *Transaction, context state.Interface, now uint64) Response {
	var checkState *state.CheckState
	var isCheck bool
	if checkState, isCheck = context.(*state.CheckState); !isCheck {
		checkState = state.NewCheckState(context.(*state.State))
	}

	if response := data.basicCheck(tx); response != nil {
		return *response
	}

	if response := checkGuard(checkState); response != nil {
		return *response
	}

	// validation pass over the whole batch, tracking the debits and locks
	// earlier elements would apply
	pendingDebit := map[types.Address]*big.Int{}
	pendingLock := map[types.Address]map[types.LockReason]bool{}

	for i := 0; i < len(data.Addresses); i++ {
		address, reason, value := data.Addresses[i], data.Reasons[i], data.Values[i]

		if address.IsZero() {
			return Response{
				Code: code.NullAddress,
				Log:  fmt.Sprintf("Address is null at index %d", i),
				Info: EncodeError(code.NewNullAddress()),
			}
		}
		if value == nil || value.Sign() != 1 {
			return Response{
				Code: code.ZeroAmount,
				Log:  fmt.Sprintf("Amount must be positive at index %d", i),
				Info: EncodeError(code.NewZeroAmount()),
			}
		}
		if checkState.Accounts().IsFrozen(address) {
			return Response{
				Code: code.AccountFrozen,
				Log:  fmt.Sprintf("Account %s is frozen as %s at index %d", address.String(), code.RoleSender, i),
				Info: EncodeError(code.NewAccountFrozen(address.String(), code.RoleSender)),
			}
		}
		if hasActiveLockAt(checkState, address, reason, now) || pendingLock[address][reason] {
			return Response{
				Code: code.LockAlreadyActive,
				Log:  fmt.Sprintf("Account %s already has an active lock for reason %s at index %d", address.String(), reason.String(), i),
				Info: EncodeError(code.NewBatchLockAlreadyActive(address.String(), reason.String(), i)),
			}
		}

		debit := pendingDebit[address]
		if debit == nil {
			debit = big.NewInt(0)
		}
		spendable := big.NewInt(0).Sub(checkState.BalanceOf(address, now), debit)
		if spendable.Cmp(value) < 0 {
			return Response{
				Code: code.InsufficientFunds,
				Log:  fmt.Sprintf("Insufficient funds for account %s at index %d. Wanted %s, available %s", address.String(), i, value.String(), spendable.String()),
				Info: EncodeError(code.NewInsufficientFunds(address.String(), value.String(), spendable.String())),
			}
		}

		pendingDebit[address] = debit.Add(debit, value)
		if pendingLock[address] == nil {
			pendingLock[address] = map[types.LockReason]bool{}
		}
		pendingLock[address][reason] = true
	}

	var tags []abcTypes.EventAttribute
	if deliverState, ok := context.(*state.State); ok {
		for i := 0; i < len(data.Addresses); i++ {
			address := data.Addresses[i]
			deliverState.Locks.RealizeUnlocks(address, now)
			deliverState.Accounts.SubBalance(address, data.Values[i])
			deliverState.Locks.Lock(address, data.Reasons[i], data.Values[i], data.Releases[i])
		}

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.count"), Value: []byte(fmt.Sprintf("%d", len(data.Addresses)))},
		}
	}

	return Response{
		Code: code.OK,
		Tags: tags,
	}
}
