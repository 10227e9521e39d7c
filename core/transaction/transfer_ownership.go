package transaction

import (
	"encoding/hex"
	"fmt"

	abcTypes "github.com/tendermint/tendermint/abci/types"

	"github.com/tokenvault/tokenvault-go/core/code"
	"github.com/tokenvault/tokenvault-go/core/state"
	"github.com/tokenvault/tokenvault-go/core/types"
)

type TransferOwnershipData struct {
	NewOwner types.Address
}

func (data TransferOwnershipData) TxType() TxType {
	return TypeTransferOwnership
}

func (data TransferOwnershipData) RequiresOwner() bool {
	return true
}

func (data TransferOwnershipData) String() string {
	return fmt.Sprintf("TRANSFER OWNERSHIP new_owner:%s", data.NewOwner.String())
}

func (data TransferOwnershipData) Run(tx *Transaction, context state.Interface, now uint64) Response {
	var checkState *state.CheckState
	var isCheck bool
	if checkState, isCheck = context.(*state.CheckState); !isCheck {
		checkState = state.NewCheckState(context.(*state.State))
	}

	if response := checkNotNull(data.NewOwner); response != nil {
		return *response
	}

	if response := checkGuard(checkState); response != nil {
		return *response
	}

	var tags []abcTypes.EventAttribute
	if deliverState, ok := context.(*state.State); ok {
		deliverState.App.TransferOwnership(data.NewOwner)

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.new_owner"), Value: []byte(hex.EncodeToString(data.NewOwner[:])), Index: true},
		}
	}

	return Response{
		Code: code.OK,
		Tags: tags,
	}
}
