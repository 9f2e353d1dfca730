// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-log/tflog"
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

// parseOperationTimeouts parses the optional operation_timeouts block. Errors
// carry the nested attribute name (create, read, update, delete).
func parseOperationTimeouts(ot *OperationTimeoutsModel) (opTimeouts, []validationErr) {
	var res opTimeouts
	var errs []validationErr
	if ot == nil {
		return res, nil
	}
	fields := []struct {
		name string
		raw  interface {
			IsNull() bool
			IsUnknown() bool
			ValueString() string
		}
		dst *time.Duration
	}{
		{"create", ot.Create, &res.Create},
		{"read", ot.Read, &res.Read},
		{"update", ot.Update, &res.Update},
		{"delete", ot.Delete, &res.Delete},
	}
	for _, f := range fields {
		if f.raw.IsNull() || f.raw.IsUnknown() {
			continue
		}
		d, err := time.ParseDuration(f.raw.ValueString())
		if err == nil && d <= 0 {
			err = fmt.Errorf("must be greater than 0")
		}
		if err != nil {
			errs = append(errs, validationErr{
				attr:    f.name,
				summary: fmt.Sprintf("Invalid %s timeout value.", f.name),
				detail:  fmt.Sprintf("Failed to parse duration %q: %v. Use values like '30s' or '2m'.", f.raw.ValueString(), err),
			})
			continue
		}
		*f.dst = d
	}
	return res, errs
}

// HTTPStatus returns the status carried by an *safeplots.APIError, falling
// back to the HTTP response, or 0 when nothing was received.
func HTTPStatus(rs *safeplots.Response, err error) int {
	if s := safeplots.StatusOf(err); s != 0 {
		return s
	}
	if rs != nil {
		if rs.Code != 0 {
			return rs.Code
		}
		if rs.Response != nil {
			return rs.StatusCode
		}
	}
	return 0
}

func responseHeaders(rs *safeplots.Response) http.Header {
	if rs == nil || rs.Response == nil {
		return nil
	}
	return rs.Header
}

// responseDebugInfo returns a body snippet and header hints, not yet redacted.
func responseDebugInfo(rs *safeplots.Response, maxBody int) (string, []string) {
	var body string
	if rs != nil {
		body = strings.TrimSpace(rs.Bytes.String())
	}
	if maxBody <= 0 {
		maxBody = 1024
	}
	if len(body) > maxBody {
		body = body[:maxBody] + "..."
	}
	var hints []string
	if h := responseHeaders(rs); h != nil {
		for _, k := range []string{"Retry-After", "X-Request-Id", "X-RateLimit-Remaining"} {
			if v := strings.TrimSpace(h.Get(k)); v != "" {
				hints = append(hints, k+"="+v)
			}
		}
	}
	return body, hints
}

// errorBase builds a redacted summary and detail without body/header snippets.
func errorBase(op string, rs *safeplots.Response, err error) (string, string) {
	status := HTTPStatus(rs, err)
	summary := op + " failed"
	if err != nil {
		summary = fmt.Sprintf("%s failed: %v", op, err)
	}

	parts := []string{fmt.Sprintf("HTTP status: %d", status)}
	if rs != nil && rs.Endpoint != "" {
		parts = append(parts, fmt.Sprintf("Request: %s %s", rs.Method, rs.Endpoint))
	}
	var apiErr *safeplots.APIError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		parts = append(parts, "Hint: deadline exceeded; increase operation_timeouts or check upstream latency.")
	case errors.Is(err, context.Canceled):
		parts = append(parts, "Hint: canceled; request was canceled or context deadline reached.")
	case errors.As(err, &apiErr):
		parts = append(parts, apiErr.Title()+": "+apiErr.Hint())
		if apiErr.Detail != "" && apiErr.Detail != apiErr.Message {
			parts = append(parts, "Server message: "+apiErr.Detail)
		}
	}
	if status == http.StatusTooManyRequests {
		if d := ParseRetryAfter(responseHeaders(rs)); d > 0 {
			parts = append(parts, fmt.Sprintf("Server requested retry after %s.", d))
		}
	}
	return RedactSecrets(summary), RedactSecrets(strings.Join(parts, "\n"))
}

// ErrorWithOptions includes body/headers snippets when requested.
func ErrorWithOptions(op string, rs *safeplots.Response, err error, opts *EnsureSuccessOrDiagOptions) (string, string) {
	summary, detail := errorBase(op, rs, err)
	if opts == nil || !opts.IncludeBodySnippet {
		return summary, detail
	}
	maxBodyBytes := 1024
	if opts.MaxBodyBytes > 0 {
		maxBodyBytes = opts.MaxBodyBytes
	}
	body, headers := responseDebugInfo(rs, maxBodyBytes)
	body = RedactSecrets(body)
	if len(body) > maxBodyBytes {
		body = body[:maxBodyBytes] + "..."
	}
	if len(headers) > 0 {
		detail += "\nHeaders: " + RedactSecrets(strings.Join(headers, "; "))
	}
	if body != "" {
		detail += "\nResponse snippet: " + body
	}
	return summary, detail
}

// EnsureSuccessOrDiag validates success and adds diagnostics on failure.
func EnsureSuccessOrDiag(ctx context.Context, op string, rs *safeplots.Response, err error, diags *diag.Diagnostics) bool {
	return EnsureSuccessOrDiagWithOptions(ctx, op, rs, err, diags, nil)
}

// EnsureSuccessOrDiagWithOptions reports whether the call succeeded according
// to opts and records an error diagnostic when it did not.
func EnsureSuccessOrDiagWithOptions(ctx context.Context, op string, rs *safeplots.Response, err error, diags *diag.Diagnostics, opts *EnsureSuccessOrDiagOptions) bool {
	status := HTTPStatus(rs, err)
	if err == nil && (rs == nil || IsSuccess(status)) {
		return true
	}
	if opts != nil && status != 0 {
		if containsInt(opts.AcceptableStatuses, status) {
			return true
		}
		if status == http.StatusNotFound && (opts.TreatRead404AsNotFound || opts.TreatDelete404AsSuccess) {
			return true
		}
	}
	if h := responseHeaders(rs); h != nil {
		tflog.Debug(ctx, "request failed", map[string]interface{}{
			"operation": op,
			"status":    status,
			"headers":   RedactHeaders(h),
		})
	}
	sum, det := ErrorWithOptions(op, rs, err, opts)
	diags.AddError(sum, det)
	return false
}

// IsSuccess reports whether the given HTTP status code is in 2xx range.
func IsSuccess(code int) bool {
	return code >= 200 && code <= 299
}

// EnsureSuccessOrDiagOptions configures success and diagnostics behavior per operation.
// AcceptableStatuses extends success criteria beyond 2xx.
// TreatRead404AsNotFound means callers will handle state removal on 404 reads.
// TreatDelete404AsSuccess makes delete idempotent.
// IncludeBodySnippet appends a truncated response body and select headers.
type EnsureSuccessOrDiagOptions struct {
	AcceptableStatuses      []int
	TreatRead404AsNotFound  bool
	TreatDelete404AsSuccess bool
	IncludeBodySnippet      bool
	MaxBodyBytes            int
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// ParseRetryAfter returns the delay requested by a Retry-After header in
// either seconds or HTTP-date form, or 0.
func ParseRetryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	ra := strings.TrimSpace(h.Get("Retry-After"))
	if ra == "" {
		return 0
	}
	if n, err := strconv.Atoi(ra); err == nil && n >= 0 {
		return time.Duration(n) * time.Second
	}
	if t, err := http.ParseTime(ra); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// IsContextError reports if err indicates context cancellation or deadline exceeded.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ShouldRetry classifies whether a failed call may be attempted again.
//   - context cancellation and deadlines are final
//   - 429 and 5xx are retried
//   - transport errors are retried only for timeouts, truncated bodies and
//     reset, aborted or broken connections; DNS failures are not
func ShouldRetry(status int, err error) bool {
	if IsContextError(err) {
		return false
	}
	if status == http.StatusTooManyRequests || status >= 500 {
		return true
	}
	if err == nil {
		return false
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && !dnsErr.Timeout() {
		return false
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	return errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNABORTED) || errors.Is(err, syscall.EPIPE)
}

// retryableRead is the retry predicate for read queries.
func retryableRead(err error) bool {
	return ShouldRetry(safeplots.StatusOf(err), err)
}

var redactPatterns = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?i)Authorization:\s*Bearer\s+[^\r\n\s]+`), "Authorization: <redacted>"},
	{regexp.MustCompile(`(?i)Authorization:\s*Basic\s+[^\r\n\s]+`), "Authorization: <redacted>"},
	{regexp.MustCompile(`(?i)Proxy-Authorization:\s*[^\r\n\s]+`), "Proxy-Authorization: <redacted>"},
	{regexp.MustCompile(`(?i)Cookie:\s*[^\r\n]+`), "Cookie: <redacted>"},
	{regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9\-\._~\+/=]+`), "Bearer <redacted>"},
	// JWTs outside an Authorization header
	{regexp.MustCompile(`\beyJ[A-Za-z0-9_\-]+\.[A-Za-z0-9_\-]+\.[A-Za-z0-9_\-]+`), "<redacted-jwt>"},
	{regexp.MustCompile(`([a-z][a-z0-9+\-.]*://)([^\s:@/]+):([^\s@/]+)@`), `$1<redacted>@`},
	{regexp.MustCompile(`(?i)([?&](?:token|access[_-]?token|otp|password|pwd)=)([^&\s]+)`), `$1<redacted>`},
	{regexp.MustCompile(`(?i)"(token|access_token|refresh_token|password|newPassword|currentPassword|otp|authorization)"\s*:\s*"[^"]*"`), `"$1":"<redacted>"`},
	{regexp.MustCompile(`(?i)\b(token|access[_-]?token|secret|password|otp)\b\s*([:=])\s*([^\s;,&"]+)`), `$1$2<redacted>`},
}

var maskEmailRe = regexp.MustCompile(`([A-Za-z0-9._%+\-])[A-Za-z0-9._%+\-]*(@[A-Za-z0-9.\-]+\.[A-Za-z]{2,})`)

// RedactSecrets masks bearer tokens, JWTs, passwords, OTPs and email local
// parts in free-form text. It is idempotent.
func RedactSecrets(s string) string {
	if s == "" {
		return s
	}
	out := s
	for _, p := range redactPatterns {
		out = p.re.ReplaceAllString(out, p.repl)
	}
	return maskEmailRe.ReplaceAllString(out, `${1}***${2}`)
}

// RedactHeaders returns a copy of h with credentials removed.
func RedactHeaders(h http.Header) http.Header {
	if h == nil {
		return nil
	}
	redacted := http.Header{}
	for k, vals := range h {
		ck := http.CanonicalHeaderKey(k)
		switch ck {
		case "Authorization", "Proxy-Authorization", "Cookie", "Set-Cookie":
			redacted[ck] = []string{"<redacted>"}
			continue
		}
		cpy := make([]string, len(vals))
		for i, v := range vals {
			cpy[i] = RedactSecrets(v)
		}
		redacted[ck] = cpy
	}
	return redacted
}
