// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

// readString prefers the HCL value, then the env var.
func readString(s types.String, env string) string {
	if !s.IsNull() && !s.IsUnknown() {
		return s.ValueString()
	}
	if env == "" {
		return ""
	}
	return os.Getenv(env)
}

// readStringWithAliases reads a string preferring the HCL value, then a canonical env var,
// then any number of alias env vars in order.
func readStringWithAliases(s types.String, canonical string, aliases ...string) string {
	if v := readString(s, canonical); v != "" {
		return v
	}
	for _, a := range aliases {
		if a == "" {
			continue
		}
		if v := os.Getenv(a); v != "" {
			return v
		}
	}
	return ""
}

func readInt64Default(v types.Int64, def int) int {
	if !v.IsNull() && !v.IsUnknown() {
		return int(v.ValueInt64())
	}
	return def
}

func readBoolDefault(v types.Bool, def bool) bool {
	if !v.IsNull() && !v.IsUnknown() {
		return v.ValueBool()
	}
	return def
}

// deriveResolvedConfig applies env fallbacks and defaults in one place so
// ValidateConfig and Configure agree on what they see.
func deriveResolvedConfig(data SafePlotsProviderModel) resolvedConfig {
	endpoint := readStringWithAliases(data.Endpoint, envEndpoint, envEndpointAlias, envEndpointViteAlias)
	token := strings.TrimSpace(readString(data.Token, envToken))
	email := strings.TrimSpace(readString(data.Email, envEmail))
	password := readString(data.Password, envPassword)

	authMethod := strings.ToLower(strings.TrimSpace(readString(data.AuthMethod, "")))
	if authMethod == "" {
		authMethod = authMethodPassword
		if token != "" {
			authMethod = authMethodToken
		}
	}

	mode := strings.ToLower(strings.TrimSpace(readString(data.EmailRedactionMode, envEmailRedactionMode)))
	if mode != "full" && mode != "mask" {
		mode = defaultEmailRedactionMode
	}

	return resolvedConfig{
		endpoint:              strings.TrimSpace(endpoint),
		authMethod:            authMethod,
		token:                 token,
		email:                 email,
		password:              password,
		httpTimeoutSeconds:    readInt64Default(data.HTTPTimeoutSeconds, defaultHTTPTimeoutSeconds),
		retryOn4295xx:         readBoolDefault(data.RetryOn4295xx, defaultRetryOn4295xx),
		retryMaxAttempts:      readInt64Default(data.RetryMaxAttempts, defaultRetryMaxAttempts),
		retryInitialBackoffMs: readInt64Default(data.RetryInitialBackoffMs, defaultRetryInitialBackoffMs),
		retryMaxBackoffMs:     readInt64Default(data.RetryMaxBackoffMs, defaultRetryMaxBackoffMs),
		readRetryCount:        readInt64Default(data.ReadRetryCount, defaultReadRetryCount),
		readRetryDelayMs:      readInt64Default(data.ReadRetryDelayMs, defaultReadRetryDelayMs),
		pageSize:              readInt64Default(data.PageSize, defaultPageSize),
		emailRedactionMode:    mode,
		analyticsStorePath:    strings.TrimSpace(readString(data.AnalyticsStorePath, envAnalyticsStore)),
	}
}

func validateBase(rc resolvedConfig) []validationErr {
	var errs []validationErr
	if rc.endpoint == "" {
		errs = append(errs, validationErr{attr: attrEndpoint, summary: "Missing Endpoint Configuration.", detail: "Provide 'endpoint' or set SAFEPLOTS_ENDPOINT (or the SAFEPLOTS_API_URL alias) environment variable."})
	} else if u, err := url.Parse(rc.endpoint); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, validationErr{attr: attrEndpoint, summary: "Invalid Endpoint Configuration.", detail: fmt.Sprintf("endpoint must be an absolute http(s) URL such as https://api.safeplots.in/api; got %q", rc.endpoint)})
	}
	if rc.authMethod != authMethodToken && rc.authMethod != authMethodPassword {
		errs = append(errs, validationErr{attr: attrAuthMethod, summary: "Invalid Auth Method Configuration.", detail: "auth_method must be 'token' or 'password'."})
	}
	return errs
}

func validateHTTP(rc resolvedConfig) []validationErr {
	if rc.httpTimeoutSeconds < 1 || rc.httpTimeoutSeconds > 600 {
		return []validationErr{{attr: attrHTTPTimeoutSeconds, summary: "Invalid HTTP Timeout Configuration.", detail: fmt.Sprintf("http_timeout_seconds must be between 1 and 600 seconds; got %d", rc.httpTimeoutSeconds)}}
	}
	return nil
}

func validateRetry(rc resolvedConfig) []validationErr {
	var errs []validationErr
	if rc.readRetryCount < 0 || rc.readRetryCount > 10 {
		errs = append(errs, validationErr{attr: attrReadRetryCount, summary: "Invalid Read Retry Configuration.", detail: fmt.Sprintf("read_retry_count must be between 0 and 10; got %d", rc.readRetryCount)})
	}
	if rc.readRetryDelayMs < 1 || rc.readRetryDelayMs > 60000 {
		errs = append(errs, validationErr{attr: attrReadRetryDelay, summary: "Invalid Read Retry Configuration.", detail: fmt.Sprintf("read_retry_delay_ms must be between 1 and 60000 milliseconds; got %d", rc.readRetryDelayMs)})
	}
	if !rc.retryOn4295xx {
		return errs
	}
	if rc.retryMaxAttempts < 1 || rc.retryMaxAttempts > 10 {
		errs = append(errs, validationErr{attr: attrRetryMaxAttempts, summary: "Invalid Retry Attempts Configuration.", detail: fmt.Sprintf("retry_max_attempts must be between 1 and 10; got %d", rc.retryMaxAttempts)})
	}
	if rc.retryInitialBackoffMs < 100 || rc.retryInitialBackoffMs > 600000 {
		errs = append(errs, validationErr{attr: attrRetryInitialBackoff, summary: "Invalid Retry Backoff Configuration.", detail: fmt.Sprintf("retry_initial_backoff_ms must be between 100 and 600000 milliseconds; got %d", rc.retryInitialBackoffMs)})
	}
	if rc.retryMaxBackoffMs < 100 || rc.retryMaxBackoffMs > 600000 {
		errs = append(errs, validationErr{attr: attrRetryMaxBackoff, summary: "Invalid Retry Backoff Configuration.", detail: fmt.Sprintf("retry_max_backoff_ms must be between 100 and 600000 milliseconds; got %d", rc.retryMaxBackoffMs)})
	}
	if rc.retryInitialBackoffMs > rc.retryMaxBackoffMs {
		errs = append(errs, validationErr{attr: attrRetryInitialBackoff, summary: "Invalid Retry Backoff Configuration.", detail: "retry_initial_backoff_ms must be less than or equal to retry_max_backoff_ms."})
	}
	return errs
}

func validatePaging(rc resolvedConfig) []validationErr {
	if rc.pageSize < 1 || rc.pageSize > maxPageSize {
		return []validationErr{{attr: attrPageSize, summary: "Invalid Page Size Configuration.", detail: fmt.Sprintf("page_size must be between 1 and %d; got %d", maxPageSize, rc.pageSize)}}
	}
	return nil
}

func validateAuth(rc resolvedConfig, now time.Time) []validationErr {
	var errs []validationErr
	switch rc.authMethod {
	case authMethodToken:
		if rc.token == "" {
			errs = append(errs, validationErr{attr: attrToken, summary: "Missing Token Configuration.", detail: "Provide 'token' or set SAFEPLOTS_TOKEN."})
		} else if exp, ok := safeplots.TokenExpiry(rc.token); ok && !now.Before(exp) {
			errs = append(errs, validationErr{attr: attrToken, summary: "Expired Token.", detail: fmt.Sprintf("The configured token expired at %s. Sign in again or use auth_method = \"password\".", exp.UTC().Format(time.RFC3339))})
		}
		if rc.password != "" {
			errs = append(errs, validationErr{attr: attrPassword, summary: "Attribute not allowed with token auth_method.", detail: "Remove 'password' (and 'email') or set auth_method = \"password\"."})
		}
	case authMethodPassword:
		if rc.email == "" {
			errs = append(errs, validationErr{attr: attrEmail, summary: "Missing Email Configuration.", detail: "Provide 'email' or set SAFEPLOTS_EMAIL."})
		}
		if rc.password == "" {
			errs = append(errs, validationErr{attr: attrPassword, summary: "Missing Password Configuration.", detail: "Provide 'password' or set SAFEPLOTS_PASSWORD."})
		}
		if rc.token != "" {
			errs = append(errs, validationErr{attr: attrToken, summary: "Attribute not allowed with password auth_method.", detail: "Remove 'token' or set auth_method = \"token\"."})
		}
	}
	return errs
}

func validateResolvedConfig(rc resolvedConfig, now time.Time) []validationErr {
	all := validateBase(rc)
	if len(all) == 0 {
		all = append(all, validateHTTP(rc)...)
		all = append(all, validateRetry(rc)...)
		all = append(all, validatePaging(rc)...)
		all = append(all, validateAuth(rc, now)...)
	}
	for i := range all {
		all[i] = sanitizeValidationError(all[i], rc)
	}
	return all
}
