package transaction

import (
	"encoding/hex"
	"fmt"
	"math/big"

	abcTypes "github.com/tendermint/tendermint/abci/types"

	"github.com/tokenvault/tokenvault-go/core/code"
	"github.com/tokenvault/tokenvault-go/core/state"
	"github.com/tokenvault/tokenvault-go/core/types"
)

// TransferWithLockData moves funds from the sender straight into the
// recipient's escrow: the amount never appears as the recipient's
// available balance.
type TransferWithLockData struct {
	To      types.Address
	Reason  types.LockReason
	Value   *big.Int
	Release uint64
}

func (data TransferWithLockData) TxType() TxType {
	return TypeTransferWithLock
}

func (data TransferWithLockData) RequiresOwner() bool {
	return false
}

func (data TransferWithLockData) String() string {
	return fmt.Sprintf("TRANSFER WITH LOCK to:%s reason:%s value:%s release:%d",
		data.To.String(), data.Reason.String(), data.Value.String(), data.Release)
}

func (data TransferWithLockData) basicCheck(tx *Transaction) *Response {
	if response := checkNotNull(data.To); response != nil {
		return response
	}

	return checkAmount(data.Value)
}

func (data TransferWithLockData) Run(tx *Transaction, context state.Interface, now uint64) Response {
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
		participant{data.To, code.RoleReceiver},
	); response != nil {
		return *response
	}

	if hasActiveLockAt(checkState, data.To, data.Reason, now) {
		return Response{
			Code: code.LockAlreadyActive,
			Log:  fmt.Sprintf("Account %s already has an active lock for reason %s", data.To.String(), data.Reason.String()),
			Info: EncodeError(code.NewLockAlreadyActive(data.To.String(), data.Reason.String())),
		}
	}

	if response := checkSpendable(checkState, sender, data.Value, now); response != nil {
		return *response
	}

	var tags []abcTypes.EventAttribute
	if deliverState, ok := context.(*state.State); ok {
		deliverState.Locks.RealizeUnlocks(sender, now)
		deliverState.Locks.RealizeUnlocks(data.To, now)
		deliverState.Accounts.SubBalance(sender, data.Value)
		deliverState.Locks.Lock(data.To, data.Reason, data.Value, data.Release)

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.to"), Value: []byte(hex.EncodeToString(data.To[:])), Index: true},
			{Key: []byte("tx.reason"), Value: []byte(data.Reason.String())},
			{Key: []byte("tx.value"), Value: []byte(data.Value.String())},
			{Key: []byte("tx.release"), Value: []byte(fmt.Sprintf("%d", data.Release))},
		}
	}

	return Response{
		Code: code.OK,
		Tags: tags,
	}
}
