// Package ratefeed pulls exchange rates from an open.er-api.com compatible HTTP API.
package ratefeed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// Client fetches how many local units one unit of a foreign currency is worth.
type Client interface {
	FetchRate(ctx context.Context, currencyCode, localCurrency string) (decimal.Decimal, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a rate feed client against baseURL, e.g. https://open.er-api.com/v6/latest.
func NewClient(baseURL string) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// latestResponse mirrors GET {base}/{currency}.
type latestResponse struct {
	Result    string                     `json:"result"`
	BaseCode  string                     `json:"base_code"`
	ErrorType string                     `json:"error-type"`
	Rates     map[string]decimal.Decimal `json:"rates"`
}

func (c *APIClient) FetchRate(ctx context.Context, currencyCode, localCurrency string) (decimal.Decimal, error) {
	result := new(latestResponse)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		SetError(result).
		Get("/" + currencyCode)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetch rate for %s: %w", currencyCode, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest || result.Result != "success" {
		return decimal.Zero, fmt.Errorf("rate feed error: status=%d, result=%s, type=%s", resp.StatusCode(), result.Result, result.ErrorType)
	}

	rate, ok := result.Rates[localCurrency]
	if !ok {
		return decimal.Zero, fmt.Errorf("rate feed has no %s quote for %s", localCurrency, currencyCode)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("rate feed returned non-positive %s rate for %s: %s", localCurrency, currencyCode, rate)
	}
	return rate, nil
}
