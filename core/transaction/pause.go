package transaction

import (
	"github.com/tokenvault/tokenvault-go/core/code"
	"github.com/tokenvault/tokenvault-go/core/state"
)

// PauseData sets the global pause flag. Pausing an already paused ledger
// fails with SystemPaused like every other mutating operation.
type PauseData struct{}

func (data PauseData) TxType() TxType {
	return TypePause
}

func (data PauseData) RequiresOwner() bool {
	return true
}

func (data PauseData) String() string {
	return "PAUSE"
}

func (data PauseData) Run(tx *Transaction, context state.Interface, now uint64) Response {
	var checkState *state.CheckState
	var isCheck bool
	if checkState, isCheck = context.(*state.CheckState); !isCheck {
		checkState = state.NewCheckState(context.(*state.State))
	}

	if response := checkGuard(checkState); response != nil {
		return *response
	}

	if deliverState, ok := context.(*state.State); ok {
		deliverState.App.SetPaused(true)
	}

	return Response{
		Code: code.OK,
	}
}
