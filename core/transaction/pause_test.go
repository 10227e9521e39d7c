package transaction

import (
	"math/big"
	"testing"

	"github.com/tokenvault/tokenvault-go/core/code"
	"github.com/tokenvault/tokenvault-go/core/types"
)

func TestPauseBlocksTransfers(t *testing.T) {
	t.Parallel()
	cState := getState()

	pause := NewTransaction(owner, PauseData{})
	if response := NewExecutor().RunTx(cState, pause, 0); response.Code != 0 {
		t.Fatalf("response code is not 0. Error: %s", response.Log)
	}
	if !cState.App.IsPaused() {
		t.Fatal("ledger must be paused")
	}

	send := NewTransaction(holder, SendData{To: owner, Value: big.NewInt(1)})
	if response := NewExecutor().RunTx(cState, send, 0); response.Code != code.SystemPaused {
		t.Fatalf("response code is not %d, got %d", code.SystemPaused, response.Code)
	}

	approve := NewTransaction(holder, ApproveData{Spender: owner, Value: big.NewInt(1)})
	if response := NewExecutor().RunTx(cState, approve, 0); response.Code != code.SystemPaused {
		t.Fatalf("response code is not %d, got %d", code.SystemPaused, response.Code)
	}

	// owner-gated operations are paused too
	mint := NewTransaction(owner, MintData{To: holder, Value: big.NewInt(1)})
	if response := NewExecutor().RunTx(cState, mint, 0); response.Code != code.SystemPaused {
		t.Fatalf("response code is not %d, got %d", code.SystemPaused, response.Code)
	}
	freeze := NewTransaction(owner, FreezeData{Address: holder})
	if response := NewExecutor().RunTx(cState, freeze, 0); response.Code != code.SystemPaused {
		t.Fatalf("response code is not %d, got %d", code.SystemPaused, response.Code)
	}

	if err := checkState(cState); err != nil {
		t.Error(err)
	}
}

// pause precedes the freeze check: a frozen sender on a paused ledger
// reads SystemPaused
func TestPausePrecedesFreeze(t *testing.T) {
	t.Parallel()
	cState := getState()
	cState.Accounts.SetFrozen(holder, true)
	cState.App.SetPaused(true)

	tx := NewTransaction(holder, SendData{To: owner, Value: big.NewInt(1)})
	response := NewExecutor().RunTx(cState, tx, 0)
	if response.Code != code.SystemPaused {
		t.Fatalf("response code is not %d, got %d", code.SystemPaused, response.Code)
	}
}

func TestPauseWhilePaused(t *testing.T) {
	t.Parallel()
	cState := getState()
	cState.App.SetPaused(true)

	tx := NewTransaction(owner, PauseData{})
	response := NewExecutor().RunTx(cState, tx, 0)
	if response.Code != code.SystemPaused {
		t.Fatalf("response code is not %d, got %d", code.SystemPaused, response.Code)
	}
}

// unpause is the only mutating operation accepted while paused
func TestUnpauseWhilePaused(t *testing.T) {
	t.Parallel()
	cState := getState()
	cState.App.SetPaused(true)

	tx := NewTransaction(owner, UnpauseData{})
	if response := NewExecutor().RunTx(cState, tx, 0); response.Code != 0 {
		t.Fatalf("response code is not 0. Error: %s", response.Log)
	}
	if cState.App.IsPaused() {
		t.Fatal("ledger must be unpaused")
	}

	send := NewTransaction(holder, SendData{To: owner, Value: big.NewInt(1)})
	if response := NewExecutor().RunTx(cState, send, 0); response.Code != 0 {
		t.Fatalf("response code is not 0. Error: %s", response.Log)
	}

	if err := checkState(cState); err != nil {
		t.Error(err)
	}
}

func TestPauseNotOwner(t *testing.T) {
	t.Parallel()
	cState := getState()

	tx := NewTransaction(holder, PauseData{})
	if response := NewExecutor().RunTx(cState, tx, 0); response.Code != code.Unauthorized {
		t.Fatalf("response code is not %d, got %d", code.Unauthorized, response.Code)
	}

	unpause := NewTransaction(holder, UnpauseData{})
	if response := NewExecutor().RunTx(cState, unpause, 0); response.Code != code.Unauthorized {
		t.Fatalf("response code is not %d, got %d", code.Unauthorized, response.Code)
	}
}

func TestTransferOwnershipTx(t *testing.T) {
	t.Parallel()
	cState := getState()

	newOwner := types.Address{0xc}
	tx := NewTransaction(owner, TransferOwnershipData{NewOwner: newOwner})
	if response := NewExecutor().RunTx(cState, tx, 0); response.Code != 0 {
		t.Fatalf("response code is not 0. Error: %s", response.Log)
	}

	if cState.App.Owner() != newOwner {
		t.Fatal("owner must be replaced")
	}

	// the previous owner loses the gate immediately
	mint := NewTransaction(owner, MintData{To: holder, Value: big.NewInt(1)})
	if response := NewExecutor().RunTx(cState, mint, 0); response.Code != code.Unauthorized {
		t.Fatalf("response code is not %d, got %d", code.Unauthorized, response.Code)
	}
	mint = NewTransaction(newOwner, MintData{To: holder, Value: big.NewInt(1)})
	if response := NewExecutor().RunTx(cState, mint, 0); response.Code != 0 {
		t.Fatalf("response code is not 0. Error: %s", response.Log)
	}

	if err := checkState(cState); err != nil {
		t.Error(err)
	}
}

func TestTransferOwnershipToNull(t *testing.T) {
	t.Parallel()
	cState := getState()

	tx := NewTransaction(owner, TransferOwnershipData{NewOwner: types.Address{}})
	response := NewExecutor().RunTx(cState, tx, 0)
	if response.Code != code.NullAddress {
		t.Fatalf("response code is not %d, got %d", code.NullAddress, response.Code)
	}
}
