package transaction

import (
	"encoding/hex"
	"fmt"

	abcTypes "github.com/tendermint/tendermint/abci/types"

	"github.com/tokenvault/tokenvault-go/core/code"
	"github.com/tokenvault/tokenvault-go/core/state"
	"github.com/tokenvault/tokenvault-go/core/types"
)

// ExtendLockData replaces the record's release time outright. Matured
// unclaimed records are not realized first, so an expired lock can be
// re-extended before anything claims it.
type ExtendLockData struct {
	Address types.Address
	Reason  types.LockReason
	Release uint64
}

func (data ExtendLockData) TxType() TxType {
	return TypeExtendLock
}

func (data ExtendLockData) RequiresOwner() bool {
	return true
}

func (data ExtendLockData) String() string {
	return fmt.Sprintf("EXTEND LOCK address:%s reason:%s release:%d",
		data.Address.String(), data.Reason.String(), data.Release)
}

func (data ExtendLockData) Run(tx *Transaction, context state.Interface, now uint64) Response {
	var checkState *state.CheckState
	var isCheck bool
	if checkState, isCheck = context.(*state.CheckState); !isCheck {
		checkState = state.NewCheckState(context.(*state.State))
	}

	if response := checkNotNull(data.Address); response != nil {
		return *response
	}

	if response := checkGuard(checkState); response != nil {
		return *response
	}

	if checkState.Locks().TokensLocked(data.Address, data.Reason).Sign() != 1 {
		return Response{
			Code: code.NoActiveLock,
			Log:  fmt.Sprintf("Account %s has no active lock for reason %s", data.Address.String(), data.Reason.String()),
			Info: EncodeError(code.NewNoActiveLock(data.Address.String(), data.Reason.String())),
		}
	}

	var tags []abcTypes.EventAttribute
	if deliverState, ok := context.(*state.State); ok {
		deliverState.Locks.ExtendLock(data.Address, data.Reason, data.Release)

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.address"), Value: []byte(hex.EncodeToString(data.Address[:])), Index: true},
			{Key: []byte("tx.reason"), Value: []byte(data.Reason.String())},
			{Key: []byte("tx.release"), Value: []byte(fmt.Sprintf("%d", data.Release))},
		}
	}

	return Response{
		Code: code.OK,
		Tags: tags,
	}
}
