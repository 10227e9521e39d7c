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

// LockData moves part of the target account's available balance into
// escrow under the given reason until the release time.
type LockData struct {
	Address types.Address
	Reason  types.LockReason
	Value   *big.Int
	Release uint64
}

func (data LockData) TxType() TxType {
	return TypeLock
}

func (data LockData) RequiresOwner() bool {
	return true
}

func (data LockData) String() string {
	return fmt.Sprintf("LOCK address:%s reason:%s value:%s release:%d",
		data.Address.String(), data.Reason.String(), data.Value.String(), data.Release)
}

func (data LockData) basicCheck(tx *Transaction) *Response {
	if response := checkNotNull(data.Address); response != nil {
		return response
	}

	return checkAmount(data.Value)
}

func (data LockData) Run(tx *Transaction, context state.Interface, now uint64) Response {
	var checkState *state.CheckState
	var isCheck bool
	if checkState, isCheck = context.(*state.CheckState); !isCheck {
		checkState = state.NewCheckState(context.(*state.State))
	}

	if response := data.basicCheck(tx); response != nil {
		return *response
	}

	if response := checkGuard(checkState,
		participant{data.Address, code.RoleSender},
	); response != nil {
		return *response
	}

	// a matured unclaimed record does not block: realization precedes the
	// new lock in deliver mode
	if hasActiveLockAt(checkState, data.Address, data.Reason, now) {
		return Response{
			Code: code.LockAlreadyActive,
			Log:  fmt.Sprintf("Account %s already has an active lock for reason %s", data.Address.String(), data.Reason.String()),
			Info: EncodeError(code.NewLockAlreadyActive(data.Address.String(), data.Reason.String())),
		}
	}

	if response := checkSpendable(checkState, data.Address, data.Value, now); response != nil {
		return *response
	}

	var tags []abcTypes.EventAttribute
	if deliverState, ok := context.(*state.State); ok {
		deliverState.Locks.RealizeUnlocks(data.Address, now)
		deliverState.Accounts.SubBalance(data.Address, data.Value)
		deliverState.Locks.Lock(data.Address, data.Reason, data.Value, data.Release)

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.address"), Value: []byte(hex.EncodeToString(data.Address[:])), Index: true},
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
