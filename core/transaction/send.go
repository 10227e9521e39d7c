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

type SendData struct {
	To    types.Address
	Value *big.Int
}

func (data SendData) TxType() TxType {
	return TypeSend
}

func (data SendData) RequiresOwner() bool {
	return false
}

func (data SendData) String() string {
	return fmt.Sprintf("SEND to:%s value:%s", data.To.String(), data.Value.String())
}

func (data SendData) basicCheck(tx *Transaction) *Response {
	if response := checkNotNull(data.To); response != nil {
		return response
	}

	return checkAmount(data.Value)
}

func (data SendData) Run(tx *Transaction, context state.Interface, now uint64) Response {
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

	if response := checkSpendable(checkState, sender, data.Value, now); response != nil {
		return *response
	}

	var tags []abcTypes.EventAttribute
	if deliverState, ok := context.(*state.State); ok {
		deliverState.Locks.RealizeUnlocks(sender, now)
		deliverState.Locks.RealizeUnlocks(data.To, now)
		deliverState.Accounts.SubBalance(sender, data.Value)
		deliverState.Accounts.AddBalance(data.To, data.Value)

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.to"), Value: []byte(hex.EncodeToString(data.To[:])), Index: true},
			{Key: []byte("tx.value"), Value: []byte(data.Value.String())},
		}
	}

	return Response{
		Code: code.OK,
		Tags: tags,
	}
}
