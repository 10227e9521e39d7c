package transaction

import (
	"github.com/tokenvault/tokenvault-go/core/state"
	"github.com/tokenvault/tokenvault-go/core/types"
)

type TxType byte

const (
	TypeSend                  TxType = 0x01
	TypeSendFrom              TxType = 0x02
	TypeApprove               TxType = 0x03
	TypeMint                  TxType = 0x04
	TypeBurn                  TxType = 0x05
	TypeLock                  TxType = 0x06
	TypeTransferWithLock      TxType = 0x07
	TypeExtendLock            TxType = 0x08
	TypeIncreaseLockAmount    TxType = 0x09
	TypeBatchLock             TxType = 0x0A
	TypeBatchTransferWithLock TxType = 0x0B
	TypeFreeze                TxType = 0x0C
	TypeUnfreeze              TxType = 0x0D
	TypePause                 TxType = 0x0E
	TypeUnpause               TxType = 0x0F
	TypeTransferOwnership     TxType = 0x10
)

// Data is a single operation's payload. Run validates preconditions
// against the check state and, when the context is a deliver state,
// applies the mutation. The supplied time drives every lock maturity
// decision; the ledger holds no clock.
type Data interface {
	TxType() TxType
	String() string
	RequiresOwner() bool
	Run(tx *Transaction, context state.Interface, now uint64) Response
}

// Transaction is the envelope around an operation: who invokes it and
// what it does.
type Transaction struct {
	Sender types.Address
	Type   TxType

	decodedData Data
}

func NewTransaction(sender types.Address, data Data) *Transaction {
	return &Transaction{
		Sender:      sender,
		Type:        data.TxType(),
		decodedData: data,
	}
}

func (tx *Transaction) GetDecodedData() Data {
	return tx.decodedData
}
