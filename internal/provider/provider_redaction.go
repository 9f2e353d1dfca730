// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import "strings"

// sanitizeEmail hides an email address according to mode:
//   - "full": "[REDACTED_EMAIL]"
//   - "mask": first character of the local part, then the domain ("b****@safeplots.in")
func sanitizeEmail(email string, mode string) string {
	if email == "" {
		return ""
	}
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode != "mask" {
		return "[REDACTED_EMAIL]"
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return "[REDACTED_EMAIL]"
	}
	return email[:1] + "****@" + email[at+1:]
}

func redactSecretValue(v string) string {
	if v == "" {
		return ""
	}
	return "[REDACTED]"
}

// sanitizeValidationError strips configured credentials out of a validation error.
func sanitizeValidationError(e validationErr, rc resolvedConfig) validationErr {
	replacements := map[string]string{}
	if rc.token != "" {
		replacements[rc.token] = redactSecretValue(rc.token)
	}
	if rc.password != "" {
		replacements[rc.password] = redactSecretValue(rc.password)
	}
	if rc.email != "" {
		replacements[rc.email] = sanitizeEmail(rc.email, rc.emailRedactionMode)
	}
	for raw, red := range replacements {
		e.summary = strings.ReplaceAll(e.summary, raw, red)
		e.detail = strings.ReplaceAll(e.detail, raw, red)
	}
	return e
}
