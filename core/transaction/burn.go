package transaction

import (
	"fmt"
	"math/big"

	abcTypes "github.com/tendermint/tendermint/abci/types"

	"github.com/tokenvault/tokenvault-go/core/code"
	"github.com/tokenvault/tokenvault-go/core/state"
)

// BurnData destroys the sender's available funds. Open to any holder.
type BurnData struct {
	Value *big.Int
}

func (data BurnData) TxType() TxType {
	return TypeBurn
}

func (data BurnData) RequiresOwner() bool {
	return false
}

func (data BurnData) String() string {
	return fmt.Sprintf("BURN value:%s", data.Value.String())
}

func (data BurnData) basicCheck(tx *Transaction, checkState *state.CheckState) *Response {
	if response := checkAmount(data.Value); response != nil {
		return response
	}

	if !checkState.Token().IsBurnable() {
		return &Response{
			Code: code.TokenNotBurnable,
			Log:  fmt.Sprintf("Token %s is not burnable", checkState.Token().Symbol()),
			Info: EncodeError(code.NewTokenNotBurnable(checkState.Token().Symbol())),
		}
	}

	return nil
}

func (data BurnData) Run(tx *Transaction, context state.Interface, now uint64) Response {
	sender := tx.Sender
	var checkState *state.CheckState
	var isCheck bool
	if checkState, isCheck = context.(*state.CheckState); !isCheck {
		checkState = state.NewCheckState(context.(*state.State))
	}

	if response := data.basicCheck(tx, checkState); response != nil {
		return *response
	}

	if response := checkGuard(checkState,
		participant{sender, code.RoleSender},
	); response != nil {
		return *response
	}

	if response := checkSpendable(checkState, sender, data.Value, now); response != nil {
		return *response
	}

	var tags []abcTypes.EventAttribute
	if deliverState, ok := context.(*state.State); ok {
		deliverState.Locks.RealizeUnlocks(sender, now)
		deliverState.Accounts.SubBalance(sender, data.Value)
		deliverState.Token.SubVolume(data.Value)

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.value"), Value: []byte(data.Value.String())},
		}
	}

	return Response{
		Code: code.OK,
		Tags: tags,
	}
}
