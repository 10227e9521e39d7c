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

// ApproveData sets the spender's allowance outright. Zero value revokes.
type ApproveData struct {
	Spender types.Address
	Value   *big.Int
}

func (data ApproveData) TxType() TxType {
	return TypeApprove
}

func (data ApproveData) RequiresOwner() bool {
	return false
}

func (data ApproveData) String() string {
	return fmt.Sprintf("APPROVE spender:%s value:%s", data.Spender.String(), data.Value.String())
}

func (data ApproveData) basicCheck(tx *Transaction) *Response {
	if response := checkNotNull(data.Spender); response != nil {
		return response
	}

	if data.Value == nil || data.Value.Sign() == -1 {
		return &Response{
			Code: code.ZeroAmount,
			Log:  "Amount must not be negative",
			Info: EncodeError(code.NewZeroAmount()),
		}
	}

	return nil
}

func (data ApproveData) Run(tx *Transaction, context state.Interface, now uint64) Response {
	sender := tx.Sender
	var checkState *state.CheckState
	var isCheck bool
	if checkState, isCheck = context.(*state.CheckState); !isCheck {
		checkState = state.NewCheckState(context.(*state.State))
	}

	if response := data.basicCheck(tx); response != nil {
		return *response
	}

	// not a transfer: pause-gated but no freeze roles
	if response := checkGuard(checkState); response != nil {
		return *response
	}

	var tags []abcTypes.EventAttribute
	if deliverState, ok := context.(*state.State); ok {
		deliverState.Accounts.SetAllowance(sender, data.Spender, data.Value)

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.spender"), Value: []byte(hex.EncodeToString(data.Spender[:])), Index: true},
			{Key: []byte("tx.value"), Value: []byte(data.Value.String())},
		}
	}

	return Response{
		Code: code.OK,
		Tags: tags,
	}
}
