package transaction

import (
	"encoding/hex"
	"fmt"

	abcTypes "github.com/tendermint/tendermint/abci/types"

	"github.com/tokenvault/tokenvault-go/core/code"
	"github.com/tokenvault/tokenvault-go/core/state"
	"github.com/tokenvault/tokenvault-go/core/types"
)

type UnfreezeData struct {
	Address types.Address
}

func (data UnfreezeData) TxType() TxType {
	return TypeUnfreeze
}

func (data UnfreezeData) RequiresOwner() bool {
	return true
}

func (data UnfreezeData) String() string {
	return fmt.Sprintf("UNFREEZE address:%s", data.Address.String())
}

func (data UnfreezeData) Run(tx *Transaction, context state.Interface, now uint64) Response {
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

	var tags []abcTypes.EventAttribute
	if deliverState, ok := context.(*state.State); ok {
		deliverState.Accounts.SetFrozen(data.Address, false)

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.address"), Value: []byte(hex.EncodeToString(data.Address[:])), Index: true},
		}
	}

	return Response{
		Code: code.OK,
		Tags: tags,
	}
}
