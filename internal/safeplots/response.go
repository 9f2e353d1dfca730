// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package safeplots

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Response wraps the raw HTTP response together with the captured body.
type Response struct {
	*http.Response
	Code     int
	Endpoint string
	Method   string
	Bytes    bytes.Buffer
}

// envelope is the API's standard wrapper: {success, data, error, message}.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
}

func parseEnvelope(body []byte) envelope {
	var env envelope
	if len(bytes.TrimSpace(body)) == 0 {
		return env
	}
	// Non-object bodies (arrays, text) simply yield an empty envelope.
	_ = json.Unmarshal(body, &env)
	return env
}

// payload returns the "data" member when present, otherwise the whole body.
func payload(body []byte) json.RawMessage {
	env := parseEnvelope(body)
	if d := bytes.TrimSpace(env.Data); len(d) > 0 && !bytes.Equal(d, []byte("null")) {
		return env.Data
	}
	return bytes.TrimSpace(body)
}

func decodePayload(body []byte, out any) error {
	raw := payload(body)
	if len(raw) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	Items      []T
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

type pageMeta struct {
	Total      *int `json:"total"`
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"totalPages"`
}

// decodePage accepts a bare array, {items|<key>: [...]}, {data: [...]} or
// {data: {<key>: [...]}} and returns the items with any paging metadata.
func decodePage[T any](raw json.RawMessage, keys ...string) (*Page[T], error) {
	raw = bytes.TrimSpace(raw)
	out := &Page[T]{Items: []T{}}
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return out, nil
	}
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &out.Items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		out.Total = len(out.Items)
		return out, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	found := false
	for _, k := range append(append([]string{}, keys...), "items", "data") {
		v, ok := fields[k]
		if !ok {
			continue
		}
		inner, err := decodePage[T](v, keys...)
		if err != nil {
			return nil, err
		}
		out = inner
		found = true
		break
	}
	if !found {
		return out, nil
	}

	var meta pageMeta
	_ = json.Unmarshal(raw, &meta)
	if meta.Total != nil {
		out.Total = *meta.Total
	}
	if meta.Page > 0 {
		out.Page = meta.Page
	}
	switch {
	case meta.PageSize > 0:
		out.PageSize = meta.PageSize
	case meta.Limit > 0:
		out.PageSize = meta.Limit
	}
	if meta.TotalPages > 0 {
		out.TotalPages = meta.TotalPages
	}
	return out, nil
}

// decodeList is decodePage without the metadata.
func decodeList[T any](body []byte, keys ...string) ([]T, error) {
	p, err := decodePage[T](payload(body), keys...)
	if err != nil {
		return nil, err
	}
	return p.Items, nil
}
