// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package safeplots

import (
	"context"
	"net/http"
)

type UserService service

func (s *UserService) Profile(ctx context.Context) (*User, *Response, error) {
	out := new(User)
	rs, err := s.client.get(ctx, "/users/profile", nil, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in *ProfileUpdate) (*User, *Response, error) {
	out := new(User)
	rs, err := s.client.do(ctx, http.MethodPut, "/users/profile", in, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}

func (s *UserService) SavedProperties(ctx context.Context) ([]Property, *Response, error) {
	return getList[Property](ctx, s.client, "/users/saved-properties", nil, "properties")
}

func (s *UserService) SaveProperty(ctx context.Context, propertyID string) (*Response, error) {
	return s.client.do(ctx, http.MethodPost, "/users/saved-properties/"+escape(propertyID), nil, nil)
}

func (s *UserService) UnsaveProperty(ctx context.Context, propertyID string) (*Response, error) {
	return s.client.do(ctx, http.MethodDelete, "/users/saved-properties/"+escape(propertyID), nil, nil)
}

func (s *UserService) ViewedProperties(ctx context.Context) ([]PropertyView, *Response, error) {
	return getList[PropertyView](ctx, s.client, "/users/viewed-properties", nil, "views")
}

// Inquiries lists the inquiries the signed-in user has sent.
func (s *UserService) Inquiries(ctx context.Context) ([]Inquiry, *Response, error) {
	return getList[Inquiry](ctx, s.client, "/users/inquiries", nil, "inquiries")
}

// Stats never fails on an empty body; missing counters are zero.
func (s *UserService) Stats(ctx context.Context) (*UserStats, *Response, error) {
	out := new(UserStats)
	rs, err := s.client.get(ctx, "/users/stats", nil, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}
