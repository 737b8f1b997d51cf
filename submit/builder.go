package submit

import (
	"fmt"

	"github.com/stellar/go/amount"
	"github.com/stellar/go/clients/horizonclient"
	hProtocol "github.com/stellar/go/protocols/horizon"
	"github.com/stellar/go/strkey"
	"github.com/stellar/go/txnbuild"
	"github.com/stellar/go/xdr"

	"github.com/MrunalGhorpade13/stellar-split/errclass"
	"github.com/MrunalGhorpade13/stellar-split/split"
	"github.com/MrunalGhorpade13/stellar-split/stellarnet"
)

// txTimeout bounds how long a built envelope stays valid for signing and
// submission.
const txTimeout = 300

// Builder turns a logical operation into an unsigned base64 transaction
// envelope for the given source account.
type Builder interface {
	BuildTransaction(op Operation, sourceAddress string) (string, error)
}

// loadSourceAccount fetches the source account record, whose sequence number
// anchors the new envelope.
func loadSourceAccount(horizon horizonclient.ClientInterface, address string) (*hProtocol.Account, error) {
	account, err := horizon.AccountDetail(horizonclient.AccountRequest{AccountID: address})
	if err != nil {
		if hErr := horizonclient.GetError(err); hErr != nil && hErr.Problem.Status == 404 {
			return nil, &errclass.InsufficientBalanceError{}
		}

		return nil, fmt.Errorf("failed to load source account %s: %w", address, err)
	}

	return &account, nil
}

// buildEnvelope assembles and encodes a single-operation transaction.
func buildEnvelope(sourceAccount *hProtocol.Account, op txnbuild.Operation, memo txnbuild.Memo) (string, error) {
	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        sourceAccount,
		IncrementSequenceNum: true,
		Operations:           []txnbuild.Operation{op},
		BaseFee:              txnbuild.MinBaseFee,
		Memo:                 memo,
		Preconditions:        txnbuild.Preconditions{TimeBounds: txnbuild.NewTimeout(txTimeout)},
	})
	if err != nil {
		return "", fmt.Errorf("failed to build transaction: %w", err)
	}

	envelope, err := tx.Base64()
	if err != nil {
		return "", fmt.Errorf("failed to encode transaction envelope: %w", err)
	}

	return envelope, nil
}

// ContractBuilder builds invocations of the split contract's create_bill and
// mark_paid functions.
type ContractBuilder struct {
	network *stellarnet.Network
}

var _ Builder = (*ContractBuilder)(nil)

// NewContractBuilder creates a Builder invoking the network's split contract.
func NewContractBuilder(network *stellarnet.Network) *ContractBuilder {
	return &ContractBuilder{network: network}
}

// BuildTransaction builds the contract-call envelope for the operation.
func (b *ContractBuilder) BuildTransaction(op Operation, sourceAddress string) (string, error) {
	if err := op.Validate(); err != nil {
		return "", err
	}

	sourceAccount, err := loadSourceAccount(b.network.Horizon, sourceAddress)
	if err != nil {
		return "", err
	}

	hostFn, err := b.hostFunction(op)
	if err != nil {
		return "", err
	}

	return buildEnvelope(sourceAccount, &txnbuild.InvokeHostFunction{
		HostFunction:  hostFn,
		SourceAccount: sourceAddress,
	}, nil)
}

func (b *ContractBuilder) hostFunction(op Operation) (xdr.HostFunction, error) {
	contractAddr, err := contractScAddress(b.network.ContractID)
	if err != nil {
		return xdr.HostFunction{}, err
	}

	var (
		fnName string
		args   xdr.ScVec
	)

	switch op.Kind {
	case KindCreateBill:
		participants := make(xdr.ScVec, 0, len(op.Participants))
		for _, p := range op.Participants {
			addr, perr := accountScVal(p)
			if perr != nil {
				return xdr.HostFunction{}, perr
			}
			participants = append(participants, addr)
		}

		fnName = "create_bill"
		args = xdr.ScVec{
			stringScVal(op.Description),
			i128ScVal(op.TotalStroops),
			vecScVal(participants),
		}

	case KindMarkPaid:
		participant, perr := accountScVal(op.Participant)
		if perr != nil {
			return xdr.HostFunction{}, perr
		}

		fnName = "mark_paid"
		args = xdr.ScVec{
			u64ScVal(op.BillLedgerID),
			participant,
		}

	default:
		return xdr.HostFunction{}, errclass.NewValidationError(
			fmt.Sprintf("operation kind %q is not a contract call", op.Kind),
		)
	}

	return xdr.HostFunction{
		Type: xdr.HostFunctionTypeHostFunctionTypeInvokeContract,
		InvokeContract: &xdr.InvokeContractArgs{
			ContractAddress: contractAddr,
			FunctionName:    xdr.ScSymbol(fnName),
			Args:            args,
		},
	}, nil
}

// PaymentBuilder builds the classic-operations variant: bills are recorded as
// account data entries and shares settle as direct native payments. Used when
// no split contract is deployed but real ledger writes are still wanted.
type PaymentBuilder struct {
	network *stellarnet.Network
}

var _ Builder = (*PaymentBuilder)(nil)

// NewPaymentBuilder creates a Builder using classic ledger operations.
func NewPaymentBuilder(network *stellarnet.Network) *PaymentBuilder {
	return &PaymentBuilder{network: network}
}

// BuildTransaction builds the classic-operation envelope for the operation.
func (p *PaymentBuilder) BuildTransaction(op Operation, sourceAddress string) (string, error) {
	if err := op.Validate(); err != nil {
		return "", err
	}

	sourceAccount, err := loadSourceAccount(p.network.Horizon, sourceAddress)
	if err != nil {
		return "", err
	}

	switch op.Kind {
	case KindCreateBill:
		return buildEnvelope(sourceAccount, &txnbuild.ManageData{
			Name:  dataEntryName(op.BillRef),
			Value: truncateBytes(op.Description, 64),
		}, txnbuild.MemoText("split:create-bill"))

	case KindMarkPaid, KindSendPayment:
		if op.Destination == "" {
			return "", errclass.NewValidationError("destination is required for payment settlement")
		}
		if !op.Amount.IsPositive() {
			return "", errclass.NewValidationError("payment amount must be positive")
		}

		return buildEnvelope(sourceAccount, &txnbuild.Payment{
			Destination: op.Destination,
			Amount:      amount.String(xdr.Int64(split.ToStroops(op.Amount))),
			Asset:       txnbuild.NativeAsset{},
		}, txnbuild.MemoText("split:"+string(op.Kind)))

	default:
		return "", errclass.NewValidationError(fmt.Sprintf("unknown operation kind %q", op.Kind))
	}
}

// dataEntryName builds the ManageData key for a bill record. Keys are capped
// at 64 bytes by the protocol.
func dataEntryName(billRef string) string {
	return string(truncateBytes("split:bill:"+billRef, 64))
}

func truncateBytes(s string, n int) []byte {
	b := []byte(s)
	if len(b) > n {
		b = b[:n]
	}

	return b
}

// contractScAddress decodes a C... strkey into a contract ScAddress.
func contractScAddress(contractID string) (xdr.ScAddress, error) {
	raw, err := strkey.Decode(strkey.VersionByteContract, contractID)
	if err != nil {
		return xdr.ScAddress{}, fmt.Errorf("failed to decode contract ID %q: %w", contractID, err)
	}

	var id xdr.ContractId
	copy(id[:], raw)

	return xdr.ScAddress{
		Type:       xdr.ScAddressTypeScAddressTypeContract,
		ContractId: &id,
	}, nil
}

// accountScVal wraps a G... address as an ScVal argument.
func accountScVal(address string) (xdr.ScVal, error) {
	accountID, err := xdr.AddressToAccountId(address)
	if err != nil {
		return xdr.ScVal{}, errclass.NewValidationError(fmt.Sprintf("invalid participant address %q", address))
	}

	scAddr := xdr.ScAddress{
		Type:      xdr.ScAddressTypeScAddressTypeAccount,
		AccountId: &accountID,
	}

	return xdr.ScVal{Type: xdr.ScValTypeScvAddress, Address: &scAddr}, nil
}

func stringScVal(s string) xdr.ScVal {
	str := xdr.ScString(s)

	return xdr.ScVal{Type: xdr.ScValTypeScvString, Str: &str}
}

func u64ScVal(v uint64) xdr.ScVal {
	u := xdr.Uint64(v)

	return xdr.ScVal{Type: xdr.ScValTypeScvU64, U64: &u}
}

// i128ScVal encodes an int64 into the contract's i128 amount argument.
func i128ScVal(v int64) xdr.ScVal {
	hi := xdr.Int64(0)
	if v < 0 {
		hi = -1
	}

	parts := xdr.Int128Parts{Hi: hi, Lo: xdr.Uint64(v)}

	return xdr.ScVal{Type: xdr.ScValTypeScvI128, I128: &parts}
}

func vecScVal(vec xdr.ScVec) xdr.ScVal {
	vecPtr := &vec

	return xdr.ScVal{Type: xdr.ScValTypeScvVec, Vec: &vecPtr}
}
