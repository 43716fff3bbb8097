package payment

import (
	"context"
	"fmt"

	"xnova-server/api"
)

const CHARGES_ENDPOINT = "/v1/charges"

// HTTPGateway posts charges to a remote payment backend.
type HTTPGateway struct {
	*api.HTTPClient
	apiKey string
}

// NewHTTPGateway creates a gateway on top of the shared HTTP client.
func NewHTTPGateway(httpClient *api.HTTPClient, apiKey string) *HTTPGateway {
	return &HTTPGateway{HTTPClient: httpClient, apiKey: apiKey}
}

func (g *HTTPGateway) Charge(ctx context.Context, c Charge) (*Receipt, error) {
	headers := map[string]string{"Idempotency-Key": c.BookingID}
	if g.apiKey != "" {
		headers["Authorization"] = "Bearer " + g.apiKey
	}

	var receipt Receipt
	if err := g.Request(ctx, "POST", CHARGES_ENDPOINT, headers, c, &receipt); err != nil {
		return nil, fmt.Errorf("charge %s: %w", c.BookingID, err)
	}
	if receipt.Reference == "" {
		return nil, fmt.Errorf("charge %s: gateway returned no reference", c.BookingID)
	}
	return &receipt, nil
}
