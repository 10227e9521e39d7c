package transaction

import (
	"encoding/hex"
	"fmt"

	abcTypes "github.com/tendermint/tendermint/abci/types"

	"github.com/tokenvault/tokenvault-go/core/code"
	"github.com/tokenvault/tokenvault-go/core/state"
	"github.com/tokenvault/tokenvault-go/core/types"
)

// FreezeData blocks the account from participating in transfers in any
// role. Idempotent on an already frozen account.
type FreezeData struct {
	Address types.Address
}

func (data FreezeData) TxType() TxType {
	return TypeFreeze
}

func (data FreezeData) RequiresOwner() bool {
	return true
}

func (data FreezeData) String() string {
	return fmt.Sprintf("FREEZE address:%s", data.Address.String())
}

func (data FreezeData) Run(tx *Transaction, context state.Interface, now uint64) Response {
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
		deliverState.Accounts.SetFrozen(data.Address, true)

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.address"), Value: []byte(hex.EncodeToString(data.Address[:])), Index: true},
		}
	}

	return Response{
		Code: code.OK,
		Tags: tags,
	}
}
