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

type SendFromData struct {
	From  types.Address
	To    types.Address
	Value *big.Int
}

func (data SendFromData) TxType() TxType {
	return TypeSendFrom
}

func (data SendFromData) RequiresOwner() bool {
	return false
}

func (data SendFromData) String() string {
	return fmt.Sprintf("SEND FROM from:%s to:%s value:%s", data.From.String(), data.To.String(), data.Value.String())
}

func (data SendFromData) basicCheck(tx *Transaction) *Response {
	if response := checkNotNull(data.From); response != nil {
		return response
	}
	if response := checkNotNull(data.To); response != nil {
		return response
	}

	return checkAmount(data.Value)
}

func (data SendFromData) Run(tx *Transaction, context state.Interface, now uint64) Response {
	spender := tx.Sender
	var checkState *state.CheckState
	var isCheck bool
	if checkState, isCheck = context.(*state.CheckState); !isCheck {
		checkState = state.NewCheckState(context.(*state.State))
	}

	if response := data.basicCheck(tx); response != nil {
		return *response
	}

	if response := checkGuard(checkState,
		participant{data.From, code.RoleSender},
		participant{data.To, code.RoleReceiver},
		participant{spender, code.RoleSpender},
	); response != nil {
		return *response
	}

	allowance := checkState.Accounts().GetAllowance(data.From, spender)
	if allowance.Cmp(data.Value) < 0 {
		return Response{
			Code: code.InsufficientAllowance,
			Log:  fmt.Sprintf("Insufficient allowance for spender %s of account %s. Wanted %s, allowed %s", spender.String(), data.From.String(), data.Value.String(), allowance.String()),
			Info: EncodeError(code.NewInsufficientAllowance(data.From.String(), spender.String(), data.Value.String(), allowance.String())),
		}
	}

	if response := checkSpendable(checkState, data.From, data.Value, now); response != nil {
		return *response
	}

	var tags []abcTypes.EventAttribute
	if deliverState, ok := context.(*state.State); ok {
		deliverState.Locks.RealizeUnlocks(data.From, now)
		deliverState.Locks.RealizeUnlocks(data.To, now)
		deliverState.Accounts.SubAllowance(data.From, spender, data.Value)
		deliverState.Accounts.SubBalance(data.From, data.Value)
		deliverState.Accounts.AddBalance(data.To, data.Value)

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.sender"), Value: []byte(hex.EncodeToString(data.From[:])), Index: true},
			{Key: []byte("tx.to"), Value: []byte(hex.EncodeToString(data.To[:])), Index: true},
			{Key: []byte("tx.value"), Value: []byte(data.Value.String())},
		}
	}

	return Response{
		Code: code.OK,
		Tags: tags,
	}
}
