package stellarnet

import (
	"net/http"
	"time"

	"github.com/stellar/go/clients/horizonclient"
)

// newHorizonClient builds a Horizon client with a bounded HTTP timeout.
func newHorizonClient(horizonURL string, timeout time.Duration) *horizonclient.Client {
	return &horizonclient.Client{
		HorizonURL: horizonURL,
		HTTP: &http.Client{
			Timeout: timeout,
		},
	}
}
