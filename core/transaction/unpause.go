package transaction

import (
	"github.com/tokenvault/tokenvault-go/core/code"
	"github.com/tokenvault/tokenvault-go/core/state"
)

// UnpauseData clears the global pause flag. The only operation accepted
// while the ledger is paused.
type UnpauseData struct{}

func (data UnpauseData) TxType() TxType {
	return TypeUnpause
}

func (data UnpauseData) RequiresOwner() bool {
	return true
}

func (data UnpauseData) String() string {
	return "UNPAUSE"
}

func (data UnpauseData) Run(tx *Transaction, context state.Interface, now uint64) Response {
	if deliverState, ok := context.(*state.State); ok {
		deliverState.App.SetPaused(false)
	}

	return Response{
		Code: code.OK,
	}
}
