package transaction

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	abcTypes "github.com/tendermint/tendermint/abci/types"

	"github.com/tokenvault/tokenvault-go/core/code"
	"github.com/tokenvault/tokenvault-go/core/state"
)

// Response represents standard response from operation delivery/check
type Response struct {
	Code uint32                    `json:"code,omitempty"`
	Data []byte                    `json:"data,omitempty"`
	Log  string                    `json:"log,omitempty"`
	Info string                    `json:"-"`
	Tags []abcTypes.EventAttribute `json:"tags,omitempty"`
}

type Executor struct{}

func NewExecutor() *Executor {
	return &Executor{}
}

// RunTx executes the operation in the given context. A *state.CheckState
// context validates only; a *state.State context validates and applies.
// The owner gate runs before the operation's own checks, so an
// unauthorized caller learns nothing about pause or lock state.
func (e *Executor) RunTx(context state.Interface, tx *Transaction, now uint64) Response {
	if tx.Sender.IsZero() {
		return Response{
			Code: code.NullAddress,
			Log:  "Sender address is null",
			Info: EncodeError(code.NewNullAddress()),
		}
	}

	if tx.decodedData == nil {
		return Response{
			Code: code.UnknownOperation,
			Log:  fmt.Sprintf("Unknown operation type %d", tx.Type),
			Info: EncodeError(code.NewUnknownOperation(fmt.Sprintf("%d", tx.Type))),
		}
	}

	var checkState *state.CheckState
	var isCheck bool
	if checkState, isCheck = context.(*state.CheckState); !isCheck {
		checkState = state.NewCheckState(context.(*state.State))
	}

	if tx.decodedData.RequiresOwner() {
		if owner := checkState.App().Owner(); tx.Sender != owner {
			return Response{
				Code: code.Unauthorized,
				Log:  fmt.Sprintf("Operation is available only to the owner %s", owner.String()),
				Info: EncodeError(code.NewUnauthorized(tx.Sender.String(), owner.String())),
			}
		}
	}

	response := tx.decodedData.Run(tx, context, now)

	if isCheck {
		response.Tags = nil
	} else if response.Code == code.OK {
		response.Tags = append(response.Tags,
			abcTypes.EventAttribute{Key: []byte("tx.from"), Value: []byte(hex.EncodeToString(tx.Sender[:])), Index: true},
			abcTypes.EventAttribute{Key: []byte("tx.type"), Value: []byte(hex.EncodeToString([]byte{byte(tx.decodedData.TxType())})), Index: true},
		)
	}

	return response
}

// EncodeError encodes error details to json
func EncodeError(data interface{}) string {
	marshaled, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	return string(marshaled)
}
