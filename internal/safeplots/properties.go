// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package safeplots

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultFeaturedLimit is used when Featured is called with limit < 1.
const DefaultFeaturedLimit = 6

type PropertyService service

// PropertyListOptions filters the public listing. Zero values are omitted.
type PropertyListOptions struct {
	Page     int
	Limit    int
	Sort     string
	State    string
	City     string
	Type     string
	MinPrice float64
	MaxPrice float64
	Status   string
	Search   string
}

func (o *PropertyListOptions) values() url.Values {
	v := url.Values{}
	if o == nil {
		return v
	}
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		v.Set("limit", strconv.Itoa(o.Limit))
	}
	v.Set("sort", o.Sort)
	v.Set("state", o.State)
	v.Set("city", o.City)
	v.Set("type", o.Type)
	if o.MinPrice > 0 {
		v.Set("minPrice", strconv.FormatFloat(o.MinPrice, 'f', -1, 64))
	}
	if o.MaxPrice > 0 {
		v.Set("maxPrice", strconv.FormatFloat(o.MaxPrice, 'f', -1, 64))
	}
	v.Set("status", o.Status)
	v.Set("search", o.Search)
	return v
}

// List returns one page of properties.
func (s *PropertyService) List(ctx context.Context, opts *PropertyListOptions) (*Page[Property], *Response, error) {
	req, err := s.client.NewRequest(ctx, http.MethodGet, "/properties", opts.values(), nil)
	if err != nil {
		return nil, nil, err
	}
	rs, err := s.client.send(req)
	if err != nil {
		return nil, rs, err
	}
	page, err := decodePage[Property](payload(rs.Bytes.Bytes()), "properties")
	if err != nil {
		return nil, rs, err
	}
	if page.Page == 0 && opts != nil {
		page.Page = opts.Page
	}
	if page.PageSize == 0 && opts != nil {
		page.PageSize = opts.Limit
	}
	if page.TotalPages == 0 && page.PageSize > 0 {
		page.TotalPages = (page.Total + page.PageSize - 1) / page.PageSize
	}
	return page, rs, nil
}

func (s *PropertyService) Featured(ctx context.Context, limit int) ([]Property, *Response, error) {
	if limit < 1 {
		limit = DefaultFeaturedLimit
	}
	params := url.Values{"limit": {strconv.Itoa(limit)}}
	return getList[Property](ctx, s.client, "/properties/featured", params, "properties")
}

func (s *PropertyService) Get(ctx context.Context, id string) (*Property, *Response, error) {
	out := new(Property)
	rs, err := s.client.get(ctx, "/properties/"+escape(id), nil, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}

// BySeller lists a seller's public properties.
func (s *PropertyService) BySeller(ctx context.Context, sellerID string) ([]Property, *Response, error) {
	return getList[Property](ctx, s.client, "/sellers/"+escape(sellerID)+"/properties", nil, "properties")
}

func (s *PropertyService) Create(ctx context.Context, in *PropertyPayload) (*Property, *Response, error) {
	out := new(Property)
	rs, err := s.client.do(ctx, http.MethodPost, "/properties", in, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}

func (s *PropertyService) Update(ctx context.Context, id string, in *PropertyPayload) (*Property, *Response, error) {
	out := new(Property)
	rs, err := s.client.do(ctx, http.MethodPut, "/properties/"+escape(id), in, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}

func (s *PropertyService) Delete(ctx context.Context, id string) (*Response, error) {
	return s.client.do(ctx, http.MethodDelete, "/properties/"+escape(id), nil, nil)
}

// SetStatus changes the seller-controlled status, e.g. marking a listing sold.
func (s *PropertyService) SetStatus(ctx context.Context, id string, status PropertyStatus) (*Property, *Response, error) {
	out := new(Property)
	body := map[string]PropertyStatus{"status": status}
	rs, err := s.client.do(ctx, http.MethodPatch, "/properties/"+escape(id)+"/status", body, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}

// TrackView records a property view.
func (s *PropertyService) TrackView(ctx context.Context, id string) (*Response, error) {
	return s.client.do(ctx, http.MethodPost, "/properties/"+escape(id)+"/view", nil, nil)
}
