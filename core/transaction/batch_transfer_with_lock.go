package transaction

import (
	"fmt"
	"math/big"

	abcTypes "github.com/tendermint/tendermint/abci/types"

	"github.com/tokenvault/tokenvault-go/core/code"
	"github.com/tokenvault/tokenvault-go/core/state"
	"github.com/tokenvault/tokenvault-go/core/types"
)

// BatchTransferWithLockData funds several recipients' escrows from the
// sender in one atomic operation. Same batch rules as BatchLockData.
type BatchTransferWithLockData struct {
	Tos      []types.Address
	Reasons  []types.LockReason
	Values   []*big.Int
	Releases []uint64
}

func (data BatchTransferWithLockData) TxType() TxType {
	return TypeBatchTransferWithLock
}

func (data BatchTransferWithLockData) RequiresOwner() bool {
	return false
}

func (data BatchTransferWithLockData) String() string {
	return fmt.Sprintf("BATCH TRANSFER WITH LOCK count:%d", len(data.Tos))
}

func (data BatchTransferWithLockData) basicCheck(tx *Transaction) *Response {
	n := len(data.Tos)
	if n == 0 || len(data.Reasons) != n || len(data.Values) != n || len(data.Releases) != n {
		return &Response{
			Code: code.InvalidBatchLength,
			Log:  "Batch arrays must be non-empty and of equal length",
			Info: EncodeError(code.NewInvalidBatchLength()),
		}
	}

	return nil
}

func (data BatchTransferWithLockData) Run(tx *Transaction, context state.Interface, now uint64) Response {
	sender := tx.Sender
	var checkState *state.CheckState
	var isCheck bool
	if checkState, isCheck = context.(*state.CheckState); !isCheck {
		checkState = state.NewCheckState(context.(*state.State))
	}

	if response := data.basicCheck(tx); response != nil {
		return *response
	}

	if response := checkGuard(checkState,
		participant{sender, code.RoleSender},
	); response != nil {
		return *response
	}

	total := big.NewInt(0)
	pendingLock := map[types.Address]map[types.LockReason]bool{}

	for i := 0; i < len(data.Tos); i++ {
		to, reason, value := data.Tos[i], data.Reasons[i], data.Values[i]

		if to.IsZero() {
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
		if checkState.Accounts().IsFrozen(to) {
			return Response{
				Code: code.AccountFrozen,
				Log:  fmt.Sprintf("Account %s is frozen as %s at index %d", to.String(), code.RoleReceiver, i),
				Info: EncodeError(code.NewAccountFrozen(to.String(), code.RoleReceiver)),
			}
		}
		if hasActiveLockAt(checkState, to, reason, now) || pendingLock[to][reason] {
			return Response{
				Code: code.LockAlreadyActive,
				Log:  fmt.Sprintf("Account %s already has an active lock for reason %s at index %d", to.String(), reason.String(), i),
				Info: EncodeError(code.NewBatchLockAlreadyActive(to.String(), reason.String(), i)),
			}
		}

		total.Add(total, value)
		if pendingLock[to] == nil {
			pendingLock[to] = map[types.LockReason]bool{}
		}
		pendingLock[to][reason] = true
	}

	if response := checkSpendable(checkState, sender, total, now); response != nil {
		return *response
	}

	var tags []abcTypes.EventAttribute
	if deliverState, ok := context.(*state.State); ok {
		deliverState.Locks.RealizeUnlocks(sender, now)
		for i := 0; i < len(data.Tos); i++ {
			to := data.Tos[i]
			deliverState.Locks.RealizeUnlocks(to, now)
			deliverState.Accounts.SubBalance(sender, data.Values[i])
			deliverState.Locks.Lock(to, data.Reasons[i], data.Values[i], data.Releases[i])
		}

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.count"), Value: []byte(fmt.Sprintf("%d", len(data.Tos)))},
			{Key: []byte("tx.value"), Value: []byte(total.String())},
		}
	}

	return Response{
		Code: code.OK,
		Tags: tags,
	}
}
