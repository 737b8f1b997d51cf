package wallet

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/xdr"
)

// Signer provides raw signing capabilities over a Stellar key.
type Signer interface {
	// Sign signs the given message and returns the signature bytes.
	Sign(message []byte) ([]byte, error)

	// SignDecorated signs the given message and returns a decorated signature
	// (XDR format) suitable for attaching to a transaction envelope.
	SignDecorated(message []byte) (xdr.DecoratedSignature, error)

	// Address returns the Stellar address derived from the signer's public key.
	Address() string
}

// keypairSigner implements Signer using a keypair.Full from the Stellar SDK.
type keypairSigner struct {
	kp *keypair.Full
}

var _ Signer = (*keypairSigner)(nil)

// NewKeypairSigner creates a Signer from a keypair.Full.
func NewKeypairSigner(kp *keypair.Full) Signer {
	return &keypairSigner{kp: kp}
}

func (s *keypairSigner) Sign(message []byte) ([]byte, error) {
	return s.kp.Sign(message)
}

func (s *keypairSigner) SignDecorated(message []byte) (xdr.DecoratedSignature, error) {
	return s.kp.SignDecorated(message)
}

func (s *keypairSigner) Address() string {
	return s.kp.Address()
}

// KeypairFromHex creates a keypair.Full from a hex-encoded private key. The
// hex string can be with or without the "0x" prefix.
func KeypairFromHex(hexKey string) (*keypair.Full, error) {
	hexKey = strings.TrimPrefix(hexKey, "0x")

	rawSeed, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode hex key: %w", err)
	}

	// Stellar keypairs use 32-byte seeds
	if len(rawSeed) != 32 {
		return nil, fmt.Errorf("invalid key length: expected 32 bytes, got %d", len(rawSeed))
	}

	var seed [32]byte
	copy(seed[:], rawSeed)

	kp, err := keypair.FromRawSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create keypair from seed: %w", err)
	}

	return kp, nil
}
