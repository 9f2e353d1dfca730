// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package safeplots

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned in the "code" field of error envelopes.
const (
	CodeNetwork            = "NETWORK_ERROR"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUserBanned         = "USER_BANNED"
	CodeEmailNotVerified   = "EMAIL_NOT_VERIFIED"
	CodeSellerNotVerified  = "SELLER_NOT_VERIFIED"
)

// Client-side messages for failed calls.
const (
	MsgSessionExpired = "Session expired. Please login again."
	MsgForbidden      = "You do not have permission to perform this action."
	MsgServerError    = "Server error. Please try again later."
	MsgRequestFailed  = "Request failed"
	MsgUploadFailed   = "Upload failed"
	MsgNetworkError   = "Network error. Please check your connection."
)

var statusHints = map[int]string{
	http.StatusBadRequest:          "Invalid request. Please check your input.",
	http.StatusUnauthorized:        "Your session has expired. Please login again.",
	http.StatusForbidden:           MsgForbidden,
	http.StatusNotFound:            "The requested resource was not found.",
	http.StatusConflict:            "This action conflicts with existing data.",
	http.StatusUnprocessableEntity: "The provided data is invalid.",
	http.StatusTooManyRequests:     "Too many requests. Please try again later.",
	http.StatusInternalServerError: "Something went wrong. Please try again later.",
	http.StatusBadGateway:          "Service temporarily unavailable. Please try again.",
	http.StatusServiceUnavailable:  "Service is under maintenance. Please try again later.",
}

// APIError is returned for every non-2xx response and for transport failures.
// Status is 0 when no response was received.
type APIError struct {
	Status  int
	Code    string
	Message string
	// Detail carries the server's own error text when Message replaced it.
	Detail string
	Err    error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("safeplots: HTTP %d", e.Status)
}

func (e *APIError) Unwrap() error { return e.Err }

// Title is a short heading suitable for a notification.
func (e *APIError) Title() string {
	switch e.Code {
	case CodeInvalidCredentials:
		return "Login Failed"
	case CodeUserBanned:
		return "Account Suspended"
	case CodeEmailNotVerified:
		return "Email Not Verified"
	case CodeSellerNotVerified:
		return "Seller Not Verified"
	}
	switch {
	case e.Status == http.StatusUnauthorized:
		return "Session Expired"
	case e.Status == http.StatusForbidden:
		return "Access Denied"
	case e.Status == 0 || e.Code == CodeNetwork:
		return "Connection Error"
	}
	return "Error"
}

// Hint returns the generic guidance for the status, if any.
func (e *APIError) Hint() string {
	if e.Status == 0 || e.Code == CodeNetwork {
		return "Please check your internet connection and try again."
	}
	switch e.Code {
	case CodeInvalidCredentials:
		return "Invalid email or password."
	case CodeUserBanned:
		return "Your account has been suspended. Contact support for assistance."
	case CodeEmailNotVerified:
		return "Please verify your email to continue."
	case CodeSellerNotVerified:
		return "Your seller account is pending verification."
	}
	if h, ok := statusHints[e.Status]; ok {
		return h
	}
	return "Something went wrong."
}

// RequiresLogin reports whether the session must be re-established.
func (e *APIError) RequiresLogin() bool {
	return e.Status == http.StatusUnauthorized || e.Code == CodeTokenExpired || e.Code == CodeUserBanned
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool { return StatusOf(err) == http.StatusNotFound }

// IsClientError reports whether err is a 4xx from the API.
func IsClientError(err error) bool {
	s := StatusOf(err)
	return s >= 400 && s < 500
}

func networkError(err error) *APIError {
	return &APIError{Code: CodeNetwork, Message: MsgNetworkError, Err: err}
}
