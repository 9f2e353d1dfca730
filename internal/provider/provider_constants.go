// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

// Attribute names used in the provider configuration schema and validation.
const (
	attrEndpoint            = "endpoint"
	attrAuthMethod          = "auth_method"
	attrToken               = "token"
	attrEmail               = "email"
	attrPassword            = "password"
	attrHTTPTimeoutSeconds  = "http_timeout_seconds"
	attrRetryOn4295xx       = "retry_on_429_5xx"
	attrRetryMaxAttempts    = "retry_max_attempts"
	attrRetryInitialBackoff = "retry_initial_backoff_ms"
	attrRetryMaxBackoff     = "retry_max_backoff_ms"
	attrReadRetryCount      = "read_retry_count"
	attrReadRetryDelay      = "read_retry_delay_ms"
	attrPageSize            = "page_size"
	attrEmailRedactionMode  = "email_redaction_mode"
	attrAnalyticsStorePath  = "analytics_store_path"
	attrOperationTimeouts   = "operation_timeouts"
)

// Environment variables read when the matching attribute is unset.
const (
	envEndpoint           = "SAFEPLOTS_ENDPOINT"
	envEndpointAlias      = "SAFEPLOTS_API_URL"
	envEndpointViteAlias  = "VITE_API_URL"
	envToken              = "SAFEPLOTS_TOKEN"
	envEmail              = "SAFEPLOTS_EMAIL"
	envPassword           = "SAFEPLOTS_PASSWORD"
	envEmailRedactionMode = "SAFEPLOTS_EMAIL_REDACTION_MODE"
	envAnalyticsStore     = "SAFEPLOTS_ANALYTICS_STORE"
)

const (
	authMethodToken    = "token"
	authMethodPassword = "password"
)

// Provider defaults.
const (
	defaultHTTPTimeoutSeconds    = 30
	defaultRetryOn4295xx         = true
	defaultRetryMaxAttempts      = 4
	defaultRetryInitialBackoffMs = 500
	defaultRetryMaxBackoffMs     = 5000
	defaultReadRetryCount        = 2
	defaultReadRetryDelayMs      = 1000
	defaultPageSize              = 12
	maxPageSize                  = 100
	defaultEmailRedactionMode    = "full"
)
