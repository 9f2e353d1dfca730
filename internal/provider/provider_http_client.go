// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

// idempotentTransport retries GET and HEAD through the retryable transport
// and sends every other method exactly once.
type idempotentTransport struct {
	retrying http.RoundTripper
	direct   http.RoundTripper
}

func (t *idempotentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	switch req.Method {
	case http.MethodGet, http.MethodHead:
		return t.retrying.RoundTrip(req)
	default:
		return t.direct.RoundTrip(req)
	}
}

// buildHTTPClient constructs the HTTP client with optional retry/backoff policy.
func buildHTTPClient(rc resolvedConfig) *http.Client {
	timeout := time.Duration(rc.httpTimeoutSeconds) * time.Second
	if !rc.retryOn4295xx {
		return &http.Client{Timeout: timeout}
	}
	rcClient := retryablehttp.NewClient()
	rcClient.RetryMax = rc.retryMaxAttempts
	rcClient.RetryWaitMin = time.Duration(rc.retryInitialBackoffMs) * time.Millisecond
	rcClient.RetryWaitMax = time.Duration(rc.retryMaxBackoffMs) * time.Millisecond
	// default CheckRetry retries 429/5xx and honors Retry-After
	rcClient.Logger = nil
	return &http.Client{
		Timeout: timeout,
		Transport: &idempotentTransport{
			retrying: &retryablehttp.RoundTripper{Client: rcClient},
			direct:   rcClient.HTTPClient.Transport,
		},
	}
}

// initClient creates the API client and wires the configured credentials.
func (p *SafePlotsProvider) initClient(httpClient *http.Client, rc resolvedConfig) (*safeplots.Client, error) {
	opts := []safeplots.Option{
		safeplots.WithUserAgent(fmt.Sprintf("safeplots/terraform-provider-safeplots/%s", p.version)),
	}
	switch rc.authMethod {
	case authMethodToken:
		opts = append(opts, safeplots.WithToken(rc.token))
	case authMethodPassword:
		opts = append(opts, safeplots.WithCredentials(rc.email, rc.password))
	default:
		return nil, fmt.Errorf("invalid auth_method %q", rc.authMethod)
	}
	return safeplots.New(httpClient, rc.endpoint, opts...)
}

// testConnection signs in (when needed) and loads the caller's profile.
func (p *SafePlotsProvider) testConnection(ctx context.Context, client *safeplots.Client, diags *diag.Diagnostics) (*safeplots.User, bool) {
	me, rs, err := client.Users.Profile(ctx)
	if !EnsureSuccessOrDiag(ctx, "authenticate (profile)", rs, err, diags) {
		return nil, false
	}
	return me, true
}
