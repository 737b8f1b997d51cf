// Package wallet defines the wallet capability boundary: requesting an
// address and signing transaction envelopes. Multiple interchangeable
// providers implement it; exactly one provider is active per session, and the
// rest of the system dispatches signing through the interface instead of
// branching per provider.
package wallet

import (
	"context"
	"fmt"

	"github.com/stellar/go/txnbuild"

	"github.com/MrunalGhorpade13/stellar-split/errclass"
)

// Wallet is a signing provider. Implementations may suspend for arbitrary
// wall-clock time awaiting user interaction, so both operations take a
// context.
type Wallet interface {
	// Name identifies the provider (e.g. "keypair", "freighter").
	Name() string

	// RequestAddress returns the wallet's account address. Fails with
	// errclass.WalletNotFoundError when no provider is available and
	// errclass.UserRejectedError when the user declines access.
	RequestAddress(ctx context.Context) (string, error)

	// SignTransaction signs a base64 transaction envelope for the given
	// address and returns the signed envelope. Fails with
	// errclass.UserRejectedError when the user declines.
	SignTransaction(ctx context.Context, envelopeXDR string, address string) (string, error)
}

// KeypairWallet is a Wallet backed by a local keypair Signer. It never
// prompts, so it cannot fail with a user rejection.
type KeypairWallet struct {
	name              string
	signer            Signer
	networkPassphrase string
}

var _ Wallet = (*KeypairWallet)(nil)

// NewKeypairWallet creates a KeypairWallet signing for the network identified
// by the given passphrase.
func NewKeypairWallet(name string, signer Signer, networkPassphrase string) *KeypairWallet {
	return &KeypairWallet{
		name:              name,
		signer:            signer,
		networkPassphrase: networkPassphrase,
	}
}

// Name returns the provider name.
func (w *KeypairWallet) Name() string {
	return w.name
}

// RequestAddress returns the address of the underlying keypair.
func (w *KeypairWallet) RequestAddress(_ context.Context) (string, error) {
	return w.signer.Address(), nil
}

// SignTransaction signs the envelope by hashing it for the wallet's network
// and attaching a decorated signature.
func (w *KeypairWallet) SignTransaction(_ context.Context, envelopeXDR string, address string) (string, error) {
	if address != w.signer.Address() {
		return "", fmt.Errorf("wallet holds %s, cannot sign for %s", w.signer.Address(), address)
	}

	generic, err := txnbuild.TransactionFromXDR(envelopeXDR)
	if err != nil {
		return "", fmt.Errorf("failed to parse transaction envelope: %w", err)
	}

	tx, ok := generic.Transaction()
	if !ok {
		return "", fmt.Errorf("envelope is not a simple transaction")
	}

	hash, err := tx.Hash(w.networkPassphrase)
	if err != nil {
		return "", fmt.Errorf("failed to hash transaction: %w", err)
	}

	sig, err := w.signer.SignDecorated(hash[:])
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	signed, err := tx.AddSignatureDecorated(sig)
	if err != nil {
		return "", fmt.Errorf("failed to attach signature: %w", err)
	}

	signedXDR, err := signed.Base64()
	if err != nil {
		return "", fmt.Errorf("failed to encode signed envelope: %w", err)
	}

	return signedXDR, nil
}

// Registry holds the known wallet providers by name.
type Registry struct {
	providers map[string]Wallet
	order     []string
}

// NewRegistry creates a Registry with the given providers.
func NewRegistry(providers ...Wallet) *Registry {
	r := &Registry{providers: make(map[string]Wallet)}
	for _, p := range providers {
		r.Register(p)
	}

	return r
}

// Register adds a provider, replacing any existing provider with the same name.
func (r *Registry) Register(w Wallet) {
	if _, exists := r.providers[w.Name()]; !exists {
		r.order = append(r.order, w.Name())
	}
	r.providers[w.Name()] = w
}

// Lookup returns the provider with the given name. Fails with
// errclass.WalletNotFoundError for unknown names.
func (r *Registry) Lookup(name string) (Wallet, error) {
	w, ok := r.providers[name]
	if !ok {
		return nil, &errclass.WalletNotFoundError{Msg: fmt.Sprintf("wallet provider %q not found, install it first", name)}
	}

	return w, nil
}

// Names returns the registered provider names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)

	return names
}
