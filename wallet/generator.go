package wallet

import (
	"errors"
	"fmt"

	"github.com/stellar/go/keypair"
)

// Generator is an interface for producing Signers.
type Generator interface {
	Generate() (Signer, error)
}

// generatorFromHex generates a Signer from a hex-encoded private key.
type generatorFromHex struct {
	hexKey string
}

var _ Generator = (*generatorFromHex)(nil)

// GeneratorFromHex creates a Generator backed by a hex-encoded private key.
// The hex string can be with or without the "0x" prefix.
func GeneratorFromHex(hexKey string) Generator {
	return &generatorFromHex{hexKey: hexKey}
}

func (g *generatorFromHex) Generate() (Signer, error) {
	if g.hexKey == "" {
		return nil, errors.New("hex key is empty")
	}

	kp, err := KeypairFromHex(g.hexKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create keypair from hex: %w", err)
	}

	return NewKeypairSigner(kp), nil
}

// generatorFromSeed generates a Signer from a strkey seed ("S...").
type generatorFromSeed struct {
	seed string
}

var _ Generator = (*generatorFromSeed)(nil)

// GeneratorFromSeed creates a Generator backed by a strkey-encoded seed.
func GeneratorFromSeed(seed string) Generator {
	return &generatorFromSeed{seed: seed}
}

func (g *generatorFromSeed) Generate() (Signer, error) {
	if g.seed == "" {
		return nil, errors.New("seed is empty")
	}

	kp, err := keypair.ParseFull(g.seed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}

	return NewKeypairSigner(kp), nil
}

// generatorRandom generates a random Signer.
type generatorRandom struct{}

var _ Generator = (*generatorRandom)(nil)

// GeneratorRandom creates a Generator that produces a random keypair. Useful
// for tests and throwaway testnet accounts.
func GeneratorRandom() Generator {
	return &generatorRandom{}
}

func (g *generatorRandom) Generate() (Signer, error) {
	kp, err := keypair.Random()
	if err != nil {
		return nil, fmt.Errorf("failed to generate random keypair: %w", err)
	}

	return NewKeypairSigner(kp), nil
}
