// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nullProviderModel() SafePlotsProviderModel {
	return SafePlotsProviderModel{
		Endpoint:              types.StringNull(),
		AuthMethod:            types.StringNull(),
		Token:                 types.StringNull(),
		Email:                 types.StringNull(),
		Password:              types.StringNull(),
		HTTPTimeoutSeconds:    types.Int64Null(),
		RetryOn4295xx:         types.BoolNull(),
		RetryMaxAttempts:      types.Int64Null(),
		RetryInitialBackoffMs: types.Int64Null(),
		RetryMaxBackoffMs:     types.Int64Null(),
		ReadRetryCount:        types.Int64Null(),
		ReadRetryDelayMs:      types.Int64Null(),
		PageSize:              types.Int64Null(),
		EmailRedactionMode:    types.StringNull(),
		AnalyticsStorePath:    types.StringNull(),
	}
}

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{envEndpoint, envEndpointAlias, envEndpointViteAlias, envToken, envEmail, envPassword, envEmailRedactionMode, envAnalyticsStore} {
		t.Setenv(env, "")
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1", "exp": exp.Unix()}).SignedString([]byte("k"))
	require.NoError(t, err)
	return tok
}

func Test_deriveResolvedConfig_env_precedence_and_defaults(t *testing.T) {
	t.Run("endpoint: HCL over canonical env over aliases", func(t *testing.T) {
		clearProviderEnv(t)
		t.Setenv(envEndpointViteAlias, "https://vite.example/api")
		m := nullProviderModel()
		assert.Equal(t, "https://vite.example/api", deriveResolvedConfig(m).endpoint)

		t.Setenv(envEndpointAlias, "https://alias.example/api")
		assert.Equal(t, "https://alias.example/api", deriveResolvedConfig(m).endpoint)

		t.Setenv(envEndpoint, "https://canon.example/api")
		assert.Equal(t, "https://canon.example/api", deriveResolvedConfig(m).endpoint)

		m.Endpoint = types.StringValue(" https://hcl.example/api ")
		assert.Equal(t, "https://hcl.example/api", deriveResolvedConfig(m).endpoint)
	})

	t.Run("auth method inferred from token", func(t *testing.T) {
		clearProviderEnv(t)
		m := nullProviderModel()
		assert.Equal(t, authMethodPassword, deriveResolvedConfig(m).authMethod)

		t.Setenv(envToken, "  tok  ")
		rc := deriveResolvedConfig(m)
		assert.Equal(t, authMethodToken, rc.authMethod)
		assert.Equal(t, "tok", rc.token)

		m.AuthMethod = types.StringValue("PASSWORD")
		assert.Equal(t, authMethodPassword, deriveResolvedConfig(m).authMethod)
	})

	t.Run("defaults applied", func(t *testing.T) {
		clearProviderEnv(t)
		rc := deriveResolvedConfig(nullProviderModel())
		assert.Equal(t, defaultHTTPTimeoutSeconds, rc.httpTimeoutSeconds)
		assert.Equal(t, defaultRetryOn4295xx, rc.retryOn4295xx)
		assert.Equal(t, defaultRetryMaxAttempts, rc.retryMaxAttempts)
		assert.Equal(t, defaultRetryInitialBackoffMs, rc.retryInitialBackoffMs)
		assert.Equal(t, defaultRetryMaxBackoffMs, rc.retryMaxBackoffMs)
		assert.Equal(t, defaultReadRetryCount, rc.readRetryCount)
		assert.Equal(t, time.Second, rc.readRetryDelay())
		assert.Equal(t, defaultPageSize, rc.pageSize)
		assert.Equal(t, "full", rc.emailRedactionMode)
		assert.Empty(t, rc.analyticsStorePath)
	})

	t.Run("unknown redaction mode falls back to full", func(t *testing.T) {
		clearProviderEnv(t)
		t.Setenv(envEmailRedactionMode, "partial")
		assert.Equal(t, "full", deriveResolvedConfig(nullProviderModel()).emailRedactionMode)
		t.Setenv(envEmailRedactionMode, " Mask ")
		assert.Equal(t, "mask", deriveResolvedConfig(nullProviderModel()).emailRedactionMode)
	})

	t.Run("HCL numbers override defaults", func(t *testing.T) {
		clearProviderEnv(t)
		m := nullProviderModel()
		m.PageSize = types.Int64Value(24)
		m.ReadRetryCount = types.Int64Value(0)
		m.ReadRetryDelayMs = types.Int64Value(250)
		m.RetryOn4295xx = types.BoolValue(false)
		rc := deriveResolvedConfig(m)
		assert.Equal(t, 24, rc.pageSize)
		assert.Equal(t, 0, rc.readRetryCount)
		assert.Equal(t, 250*time.Millisecond, rc.readRetryDelay())
		assert.False(t, rc.retryOn4295xx)
	})
}

func validPasswordConfig() resolvedConfig {
	return resolvedConfig{
		endpoint:              "https://api.safeplots.in/api",
		authMethod:            authMethodPassword,
		email:                 "seller@safeplots.in",
		password:              "hunter22",
		httpTimeoutSeconds:    30,
		retryOn4295xx:         true,
		retryMaxAttempts:      4,
		retryInitialBackoffMs: 500,
		retryMaxBackoffMs:     5000,
		readRetryCount:        2,
		readRetryDelayMs:      1000,
		pageSize:              12,
		emailRedactionMode:    "full",
	}
}

func attrsOf(errs []validationErr) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.attr)
	}
	return out
}

func Test_validateResolvedConfig(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		mutate func(rc *resolvedConfig)
		attrs  []string
	}{
		{"valid password config", func(*resolvedConfig) {}, nil},
		{"missing endpoint stops further checks", func(rc *resolvedConfig) { rc.endpoint = ""; rc.pageSize = 0 }, []string{attrEndpoint}},
		{"relative endpoint", func(rc *resolvedConfig) { rc.endpoint = "/api" }, []string{attrEndpoint}},
		{"ftp endpoint", func(rc *resolvedConfig) { rc.endpoint = "ftp://host/api" }, []string{attrEndpoint}},
		{"bad auth method", func(rc *resolvedConfig) { rc.authMethod = "google" }, []string{attrAuthMethod}},
		{"http timeout too large", func(rc *resolvedConfig) { rc.httpTimeoutSeconds = 601 }, []string{attrHTTPTimeoutSeconds}},
		{"read retry count too large", func(rc *resolvedConfig) { rc.readRetryCount = 11 }, []string{attrReadRetryCount}},
		{"read retry delay zero", func(rc *resolvedConfig) { rc.readRetryDelayMs = 0 }, []string{attrReadRetryDelay}},
		{"retry attempts ignored when transport retry off", func(rc *resolvedConfig) { rc.retryOn4295xx = false; rc.retryMaxAttempts = 0 }, nil},
		{"retry attempts out of range", func(rc *resolvedConfig) { rc.retryMaxAttempts = 0 }, []string{attrRetryMaxAttempts}},
		{"initial backoff above max", func(rc *resolvedConfig) { rc.retryInitialBackoffMs = 6000 }, []string{attrRetryInitialBackoff}},
		{"page size above max", func(rc *resolvedConfig) { rc.pageSize = maxPageSize + 1 }, []string{attrPageSize}},
		{"password auth without credentials", func(rc *resolvedConfig) { rc.email = ""; rc.password = "" }, []string{attrEmail, attrPassword}},
		{"password auth with token", func(rc *resolvedConfig) { rc.token = "abc" }, []string{attrToken}},
		{"token auth without token", func(rc *resolvedConfig) { rc.authMethod = authMethodToken; rc.password = "" }, []string{attrToken}},
		{"token auth with password", func(rc *resolvedConfig) { rc.authMethod = authMethodToken; rc.token = "opaque" }, []string{attrPassword}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rc := validPasswordConfig()
			tc.mutate(&rc)
			got := attrsOf(validateResolvedConfig(rc, now))
			if len(tc.attrs) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.ElementsMatch(t, tc.attrs, got)
		})
	}
}

func Test_validateAuth_tokenExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rc := validPasswordConfig()
	rc.authMethod = authMethodToken
	rc.password = ""

	rc.token = signedToken(t, now.Add(time.Hour))
	assert.Empty(t, validateAuth(rc, now))

	rc.token = signedToken(t, now.Add(-time.Minute))
	errs := validateAuth(rc, now)
	require.Len(t, errs, 1)
	assert.Equal(t, "Expired Token.", errs[0].summary)
	assert.Contains(t, errs[0].detail, "2026-03-01T11:59:00Z")

	rc.token = "not-a-jwt"
	assert.Empty(t, validateAuth(rc, now), "opaque tokens are left to the server")
}

func Test_validateResolvedConfig_redactsCredentials(t *testing.T) {
	rc := validPasswordConfig()
	rc.endpoint = "https://seller@safeplots.in:hunter22@api.safeplots.in/api?x"
	rc.retryInitialBackoffMs = 1
	for _, e := range validateResolvedConfig(rc, time.Now()) {
		assert.NotContains(t, e.detail, "hunter22")
		assert.NotContains(t, e.detail, "seller@safeplots.in")
	}
}

func Test_sanitizeEmail(t *testing.T) {
	assert.Equal(t, "", sanitizeEmail("", "mask"))
	assert.Equal(t, "[REDACTED_EMAIL]", sanitizeEmail("buyer@safeplots.in", "full"))
	assert.Equal(t, "[REDACTED_EMAIL]", sanitizeEmail("buyer@safeplots.in", ""))
	assert.Equal(t, "b****@safeplots.in", sanitizeEmail("buyer@safeplots.in", " MASK "))
	assert.Equal(t, "[REDACTED_EMAIL]", sanitizeEmail("@safeplots.in", "mask"))
	assert.Equal(t, "[REDACTED_EMAIL]", sanitizeEmail("buyer@", "mask"))
}

func Test_sanitizeValidationError(t *testing.T) {
	rc := resolvedConfig{token: "tok-123", password: "pw-456", email: "a.b@safeplots.in", emailRedactionMode: "mask"}
	e := sanitizeValidationError(validationErr{
		summary: "bad tok-123",
		detail:  "user a.b@safeplots.in with pw-456",
	}, rc)
	assert.Equal(t, "bad [REDACTED]", e.summary)
	assert.Equal(t, "user a****@safeplots.in with [REDACTED]", e.detail)
}

func Test_parseOperationTimeouts(t *testing.T) {
	res, errs := parseOperationTimeouts(nil)
	assert.Empty(t, errs)
	assert.Zero(t, res)

	res, errs = parseOperationTimeouts(&OperationTimeoutsModel{
		Create: types.StringValue("2m"),
		Read:   types.StringNull(),
		Update: types.StringUnknown(),
		Delete: types.StringValue("45s"),
	})
	assert.Empty(t, errs)
	assert.Equal(t, 2*time.Minute, res.Create)
	assert.Zero(t, res.Read)
	assert.Equal(t, 45*time.Second, res.Delete)

	_, errs = parseOperationTimeouts(&OperationTimeoutsModel{
		Create: types.StringValue("soon"),
		Read:   types.StringValue("0s"),
		Update: types.StringNull(),
		Delete: types.StringNull(),
	})
	require.Len(t, errs, 2)
	assert.Equal(t, "create", errs[0].attr)
	assert.Equal(t, "read", errs[1].attr)
	assert.True(t, strings.Contains(errs[1].detail, "greater than 0"))
}

func Test_buildHTTPClient(t *testing.T) {
	rc := validPasswordConfig()
	c := buildHTTPClient(rc)
	assert.Equal(t, 30*time.Second, c.Timeout)
	_, ok := c.Transport.(*idempotentTransport)
	assert.True(t, ok)

	rc.retryOn4295xx = false
	assert.Nil(t, buildHTTPClient(rc).Transport)
}
