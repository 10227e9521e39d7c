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

type MintData struct {
	To    types.Address
	Value *big.Int
}

func (data MintData) TxType() TxType {
	return TypeMint
}

func (data MintData) RequiresOwner() bool {
	return true
}

func (data MintData) String() string {
	return fmt.Sprintf("MINT to:%s value:%s", data.To.String(), data.Value.String())
}

func (data MintData) basicCheck(tx *Transaction, checkState *state.CheckState) *Response {
	if response := checkNotNull(data.To); response != nil {
		return response
	}
	if response := checkAmount(data.Value); response != nil {
		return response
	}

	if !checkState.Token().IsMintable() {
		return &Response{
			Code: code.TokenNotMintable,
			Log:  fmt.Sprintf("Token %s is not mintable", checkState.Token().Symbol()),
			Info: EncodeError(code.NewTokenNotMintable(checkState.Token().Symbol())),
		}
	}

	volume := checkState.Token().Volume()
	maxSupply := checkState.Token().MaxSupply()
	if maxSupply.Sign() == 1 && big.NewInt(0).Add(volume, data.Value).Cmp(maxSupply) == 1 {
		return &Response{
			Code: code.SupplyOverflow,
			Log:  fmt.Sprintf("Minting %s overflows max supply %s, volume %s", data.Value.String(), maxSupply.String(), volume.String()),
			Info: EncodeError(code.NewSupplyOverflow(data.Value.String(), volume.String(), maxSupply.String())),
		}
	}

	return nil
}

func (data MintData) Run(tx *Transaction, context state.Interface, now uint64) Response {
	var checkState *state.CheckState
	var isCheck bool
	if checkState, isCheck = context.(*state.CheckState); !isCheck {
		checkState = state.NewCheckState(context.(*state.State))
	}

	if response := data.basicCheck(tx, checkState); response != nil {
		return *response
	}

	if response := checkGuard(checkState,
		participant{data.To, code.RoleReceiver},
	); response != nil {
		return *response
	}

	var tags []abcTypes.EventAttribute
	if deliverState, ok := context.(*state.State); ok {
		deliverState.Locks.RealizeUnlocks(data.To, now)
		deliverState.Token.AddVolume(data.Value)
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
