package wallet

import (
	"context"
	"testing"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/network"
	"github.com/stellar/go/txnbuild"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrunalGhorpade13/stellar-split/errclass"
)

// unsignedEnvelope builds a minimal payment envelope with the given source.
func unsignedEnvelope(t *testing.T, sourceAddress string) string {
	t.Helper()

	dest := keypair.MustRandom().Address()
	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        &txnbuild.SimpleAccount{AccountID: sourceAddress, Sequence: 1},
		IncrementSequenceNum: true,
		Operations: []txnbuild.Operation{
			&txnbuild.Payment{
				Destination: dest,
				Amount:      "25",
				Asset:       txnbuild.NativeAsset{},
			},
		},
		BaseFee:       txnbuild.MinBaseFee,
		Preconditions: txnbuild.Preconditions{TimeBounds: txnbuild.NewTimeout(300)},
	})
	require.NoError(t, err)

	xdr, err := tx.Base64()
	require.NoError(t, err)

	return xdr
}

func Test_KeypairWallet_RequestAddress(t *testing.T) {
	t.Parallel()

	kp := keypair.MustRandom()
	w := NewKeypairWallet("keypair", NewKeypairSigner(kp), network.TestNetworkPassphrase)

	assert.Equal(t, "keypair", w.Name())

	addr, err := w.RequestAddress(context.Background())
	require.NoError(t, err)
	assert.Equal(t, kp.Address(), addr)
}

func Test_KeypairWallet_SignTransaction(t *testing.T) {
	t.Parallel()

	t.Run("attaches a valid signature", func(t *testing.T) {
		t.Parallel()

		kp := keypair.MustRandom()
		w := NewKeypairWallet("keypair", NewKeypairSigner(kp), network.TestNetworkPassphrase)

		signedXDR, err := w.SignTransaction(context.Background(), unsignedEnvelope(t, kp.Address()), kp.Address())
		require.NoError(t, err)

		generic, err := txnbuild.TransactionFromXDR(signedXDR)
		require.NoError(t, err)
		tx, ok := generic.Transaction()
		require.True(t, ok)
		require.Len(t, tx.Signatures(), 1)

		hash, err := tx.Hash(network.TestNetworkPassphrase)
		require.NoError(t, err)
		require.NoError(t, kp.Verify(hash[:], tx.Signatures()[0].Signature))
	})

	t.Run("refuses to sign for a different address", func(t *testing.T) {
		t.Parallel()

		kp := keypair.MustRandom()
		other := keypair.MustRandom()
		w := NewKeypairWallet("keypair", NewKeypairSigner(kp), network.TestNetworkPassphrase)

		_, err := w.SignTransaction(context.Background(), unsignedEnvelope(t, kp.Address()), other.Address())
		require.ErrorContains(t, err, "cannot sign for")
	})

	t.Run("rejects malformed envelopes", func(t *testing.T) {
		t.Parallel()

		kp := keypair.MustRandom()
		w := NewKeypairWallet("keypair", NewKeypairSigner(kp), network.TestNetworkPassphrase)

		_, err := w.SignTransaction(context.Background(), "not-xdr", kp.Address())
		require.ErrorContains(t, err, "failed to parse transaction envelope")
	})
}

func Test_Generators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		giveGen Generator
		wantErr string
	}{
		{
			name:    "from hex with prefix",
			giveGen: GeneratorFromHex("0x0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
		},
		{
			name:    "from hex without prefix",
			giveGen: GeneratorFromHex("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
		},
		{
			name:    "empty hex",
			giveGen: GeneratorFromHex(""),
			wantErr: "hex key is empty",
		},
		{
			name:    "invalid hex",
			giveGen: GeneratorFromHex("zz"),
			wantErr: "failed to create keypair from hex",
		},
		{
			name:    "short hex",
			giveGen: GeneratorFromHex("0xabcd"),
			wantErr: "failed to create keypair from hex",
		},
		{
			name:    "random",
			giveGen: GeneratorRandom(),
		},
		{
			name:    "empty seed",
			giveGen: GeneratorFromSeed(""),
			wantErr: "seed is empty",
		},
		{
			name:    "invalid seed",
			giveGen: GeneratorFromSeed("not-a-seed"),
			wantErr: "failed to parse seed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			signer, err := tt.giveGen.Generate()
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, signer.Address())
		})
	}
}

func Test_GeneratorFromSeed_Roundtrip(t *testing.T) {
	t.Parallel()

	kp := keypair.MustRandom()

	signer, err := GeneratorFromSeed(kp.Seed()).Generate()
	require.NoError(t, err)
	assert.Equal(t, kp.Address(), signer.Address())
}

func Test_Registry(t *testing.T) {
	t.Parallel()

	kpA := NewKeypairWallet("keypair-a", NewKeypairSigner(keypair.MustRandom()), network.TestNetworkPassphrase)
	kpB := NewKeypairWallet("keypair-b", NewKeypairSigner(keypair.MustRandom()), network.TestNetworkPassphrase)

	r := NewRegistry(kpA, kpB)
	assert.Equal(t, []string{"keypair-a", "keypair-b"}, r.Names())

	got, err := r.Lookup("keypair-b")
	require.NoError(t, err)
	assert.Same(t, Wallet(kpB), got)

	_, err = r.Lookup("freighter")
	require.Error(t, err)

	var notFound *errclass.WalletNotFoundError
	require.ErrorAs(t, err, &notFound)

	// The lookup failure classifies as itself, not something else.
	assert.Same(t, err, errclass.Classify(err))
}
