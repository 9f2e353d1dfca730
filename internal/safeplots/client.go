// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package safeplots

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultUserAgent = "safeplots-go"

// Client talks to the SafePlots REST API. Every service method returns the
// decoded model, the *Response (nil when nothing was received) and an error;
// non-2xx responses surface as *APIError.
type Client struct {
	HTTP      *http.Client
	Site      *url.URL
	UserAgent string
	Session   *Session

	now    func() time.Time
	common service

	Auth       *AuthService
	Properties *PropertyService
	Users      *UserService
	Sellers    *SellerService
	Inquiries  *InquiryService
	Reports    *ReportService
	Admin      *AdminService
	Uploads    *UploadService
}

type service struct{ client *Client }

// Option configures a Client.
type Option func(*Client)

// WithToken seeds the session with a bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.Session.Set(token, nil) }
}

// WithCredentials enables sign-in on demand with email and password.
func WithCredentials(email, password string) Option {
	return func(c *Client) { c.Session.setCredentials(email, password) }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.UserAgent = ua
		}
	}
}

// New builds a client rooted at site (for example https://api.safeplots.in/api).
func New(httpClient *http.Client, site string, opts ...Option) (*Client, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	site = strings.TrimSpace(site)
	if site == "" {
		return nil, errors.New("safeplots: site is required")
	}
	u, err := url.Parse(site)
	if err != nil {
		return nil, fmt.Errorf("safeplots: invalid site: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("safeplots: site %q must be an absolute URL", site)
	}
	u.Path = strings.TrimRight(u.Path, "/")

	c := &Client{
		HTTP:      httpClient,
		Site:      u,
		UserAgent: defaultUserAgent,
		Session:   &Session{},
		now:       time.Now,
	}
	c.common.client = c
	c.Auth = (*AuthService)(&c.common)
	c.Properties = (*PropertyService)(&c.common)
	c.Users = (*UserService)(&c.common)
	c.Sellers = (*SellerService)(&c.common)
	c.Inquiries = (*InquiryService)(&c.common)
	c.Reports = (*ReportService)(&c.common)
	c.Admin = (*AdminService)(&c.common)
	c.Uploads = (*UploadService)(&c.common)

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type noAuthKey struct{}

func withoutAuth(ctx context.Context) context.Context {
	return context.WithValue(ctx, noAuthKey{}, true)
}

// NewRequest builds a JSON request. Empty query values are dropped.
func (c *Client) NewRequest(ctx context.Context, method, endpoint string, params url.Values, body any) (*http.Request, error) {
	u := c.Site.JoinPath(endpoint)
	if q := cleanParams(params); len(q) > 0 {
		u.RawQuery = q.Encode()
	}

	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), rdr)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)
	return req, nil
}

func cleanParams(params url.Values) url.Values {
	if len(params) == 0 {
		return nil
	}
	out := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			if v != "" {
				out.Add(k, v)
			}
		}
	}
	return out
}

// Call sends req and decodes the "data" member (or the whole body) into out.
func (c *Client) Call(req *http.Request, out any) (*Response, error) {
	rs, err := c.send(req)
	if err != nil {
		return rs, err
	}
	if err := decodePayload(rs.Bytes.Bytes(), out); err != nil {
		return rs, err
	}
	return rs, nil
}

func (c *Client) send(req *http.Request) (*Response, error) {
	if err := c.authorize(req); err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	rs := &Response{
		Response: resp,
		Code:     resp.StatusCode,
		Endpoint: req.URL.String(),
		Method:   req.Method,
	}
	if _, err := io.Copy(&rs.Bytes, resp.Body); err != nil {
		return rs, networkError(err)
	}
	if err := c.checkResponse(rs); err != nil {
		return rs, err
	}
	return rs, nil
}

func (c *Client) authorize(req *http.Request) error {
	ctx := req.Context()
	if skip, _ := ctx.Value(noAuthKey{}).(bool); skip {
		return nil
	}
	if c.Session.needsLogin(c.now()) {
		email, password, _ := c.Session.credentials()
		if _, _, err := c.Auth.Login(ctx, email, password); err != nil {
			return fmt.Errorf("sign in: %w", err)
		}
	}
	if tok := c.Session.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return nil
}

func (c *Client) checkResponse(rs *Response) error {
	if rs.Code >= 200 && rs.Code <= 299 {
		return nil
	}
	env := parseEnvelope(rs.Bytes.Bytes())
	detail := env.Error
	if detail == "" {
		detail = env.Message
	}
	apiErr := &APIError{Status: rs.Code, Code: env.Code, Detail: detail}
	switch {
	case rs.Code == http.StatusUnauthorized && env.Code != CodeInvalidCredentials:
		c.Session.Clear()
		apiErr.Message = MsgSessionExpired
	case rs.Code == http.StatusForbidden:
		apiErr.Message = MsgForbidden
	case rs.Code >= 500:
		apiErr.Message = MsgServerError
	case detail != "":
		apiErr.Message = detail
	default:
		apiErr.Message = MsgRequestFailed
	}
	return apiErr
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) (*Response, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, endpoint, params, nil)
	if err != nil {
		return nil, err
	}
	return c.Call(req, out)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) (*Response, error) {
	req, err := c.NewRequest(ctx, method, endpoint, nil, body)
	if err != nil {
		return nil, err
	}
	return c.Call(req, out)
}

// getList fetches a collection that may arrive in several shapes.
func getList[T any](ctx context.Context, c *Client, endpoint string, params url.Values, keys ...string) ([]T, *Response, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, endpoint, params, nil)
	if err != nil {
		return nil, nil, err
	}
	rs, err := c.send(req)
	if err != nil {
		return nil, rs, err
	}
	items, err := decodeList[T](rs.Bytes.Bytes(), keys...)
	if err != nil {
		return nil, rs, err
	}
	return items, rs, nil
}

func escape(id string) string { return url.PathEscape(id) }
