// Package stellarnet holds the handle to a Stellar network: the Horizon
// client, network passphrase, and the deployed split contract identifier.
package stellarnet

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
	"github.com/stellar/go/clients/horizonclient"
	"github.com/stellar/go/network"
)

// PlaceholderContractID is the documented "not yet deployed" contract value.
// A network configured with it (or with no contract at all) routes submissions
// through the simulated endpoint instead of the ledger.
const PlaceholderContractID = "CAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABSC4"

// Testnet endpoint defaults.
const (
	TestnetHorizonURL   = "https://horizon-testnet.stellar.org"
	TestnetFriendbotURL = "https://friendbot.stellar.org"
)

// TestnetPassphrase identifies the Stellar test network.
var TestnetPassphrase = network.TestNetworkPassphrase

// Network is an initialized Stellar network instance.
type Network struct {
	// Horizon is the client for the network's Horizon API. Typed as the
	// client interface so tests can substitute a fake.
	Horizon horizonclient.ClientInterface

	HorizonURL        string
	NetworkPassphrase string
	FriendbotURL      string
	ContractID        string
}

// ContractDeployed reports whether a real split contract is configured.
func (n *Network) ContractDeployed() bool {
	return n.ContractID != "" && n.ContractID != PlaceholderContractID
}

// FundingURL returns the Friendbot link that funds the given account, used as
// the recovery hint for underfunded accounts. Empty when the network has no
// Friendbot.
func (n *Network) FundingURL(address string) string {
	if n.FriendbotURL == "" {
		return ""
	}

	return fmt.Sprintf("%s/?addr=%s", n.FriendbotURL, url.QueryEscape(address))
}

// NativeBalance returns the account's native-asset balance, or nil when the
// account does not exist yet (unfunded accounts are not an error: the caller
// surfaces a funding hint instead).
func (n *Network) NativeBalance(address string) (*decimal.Decimal, error) {
	account, err := n.Horizon.AccountDetail(horizonclient.AccountRequest{AccountID: address})
	if err != nil {
		if hErr := horizonclient.GetError(err); hErr != nil && hErr.Problem.Status == 404 {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to fetch account %s: %w", address, err)
	}

	raw, err := account.GetNativeBalance()
	if err != nil {
		return nil, fmt.Errorf("failed to read native balance: %w", err)
	}

	balance, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse native balance %q: %w", raw, err)
	}

	return &balance, nil
}
