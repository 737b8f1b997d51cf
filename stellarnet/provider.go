package stellarnet

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Config holds the configuration to initialize a Provider.
type Config struct {
	// Required: The Horizon URL to connect to the Stellar network.
	HorizonURL string

	// Required: The network passphrase identifying the Stellar network.
	NetworkPassphrase string

	// Optional: The Friendbot URL for funding test accounts.
	FriendbotURL string

	// Optional: The deployed split contract ID. Empty or the placeholder
	// value selects simulated submission mode.
	ContractID string

	// Optional: Timeout for Horizon HTTP calls. Defaults to 60s.
	HTTPTimeout time.Duration
}

func (c Config) validate() error {
	if c.HorizonURL == "" {
		return errors.New("horizon URL is required")
	}
	if c.NetworkPassphrase == "" {
		return errors.New("network passphrase is required")
	}

	return nil
}

// Provider initializes a Network from a Config.
type Provider struct {
	config Config

	network *Network
}

// NewProvider creates a new Provider with the given configuration.
func NewProvider(config Config) *Provider {
	return &Provider{config: config}
}

// Initialize validates the configuration and constructs the network handle.
func (p *Provider) Initialize(_ context.Context) (*Network, error) {
	if p.network != nil {
		return p.network, nil // already initialized
	}

	if err := p.config.validate(); err != nil {
		return nil, fmt.Errorf("failed to validate provider config: %w", err)
	}

	timeout := p.config.HTTPTimeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	p.network = &Network{
		Horizon:           newHorizonClient(p.config.HorizonURL, timeout),
		HorizonURL:        p.config.HorizonURL,
		NetworkPassphrase: p.config.NetworkPassphrase,
		FriendbotURL:      p.config.FriendbotURL,
		ContractID:        p.config.ContractID,
	}

	return p.network, nil
}

// Name returns the name of the Provider.
func (*Provider) Name() string {
	return "Stellar Horizon Network Provider"
}

// Network returns the initialized network instance. You must call Initialize
// before using this method.
func (p *Provider) Network() *Network {
	return p.network
}
