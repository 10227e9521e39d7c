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

// IncreaseLockAmountData moves more of the target's available balance
// into an existing escrow record. Matured records are realized first, so
// a lock whose release has already passed reads as NoActiveLock here.
type IncreaseLockAmountData struct {
	Address types.Address
	Reason  types.LockReason
	Value   *big.Int
}

func (data IncreaseLockAmountData) TxType() TxType {
	return TypeIncreaseLockAmount
}

func (data IncreaseLockAmountData) RequiresOwner() bool {
	return true
}

func (data IncreaseLockAmountData) String() string {
	return fmt.Sprintf("INCREASE LOCK AMOUNT address:%s reason:%s value:%s",
		data.Address.String(), data.Reason.String(), data.Value.String())
}

func (data IncreaseLockAmountData) basicCheck(tx *Transaction) *Response {
	if response := checkNotNull(data.Address); response != nil {
		return response
	}

	return checkAmount(data.Value)
}

func (data IncreaseLockAmountData) Run(tx *Transaction, context state.Interface, now uint64) Response {
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

	if !hasActiveLockAt(checkState, data.Address, data.Reason, now) {
		return Response{
			Code: code.NoActiveLock,
			Log:  fmt.Sprintf("Account %s has no active lock for reason %s", data.Address.String(), data.Reason.String()),
			Info: EncodeError(code.NewNoActiveLock(data.Address.String(), data.Reason.String())),
		}
	}

	if response := checkSpendable(checkState, data.Address, data.Value, now); response != nil {
		return *response
	}

	var tags []abcTypes.EventAttribute
	if deliverState, ok := context.(*state.State); ok {
		deliverState.Locks.RealizeUnlocks(data.Address, now)
		deliverState.Accounts.SubBalance(data.Address, data.Value)
		deliverState.Locks.IncreaseLockAmount(data.Address, data.Reason, data.Value)

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.address"), Value: []byte(hex.EncodeToString(data.Address[:])), Index: true},
			{Key: []byte("tx.reason"), Value: []byte(data.Reason.String())},
			{Key: []byte("tx.value"), Value: []byte(data.Value.String())},
		}
	}

	return Response{
		Code: code.OK,
		Tags: tags,
	}
}
