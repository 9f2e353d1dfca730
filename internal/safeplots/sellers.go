// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package safeplots

import (
	"context"
	"net/http"
)

type SellerService service

// Register submits a seller application for admin verification.
func (s *SellerService) Register(ctx context.Context, in *SellerRegistration) (*Seller, *Response, error) {
	out := new(Seller)
	rs, err := s.client.do(ctx, http.MethodPost, "/sellers/register", in, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}

func (s *SellerService) Profile(ctx context.Context) (*Seller, *Response, error) {
	out := new(Seller)
	rs, err := s.client.get(ctx, "/sellers/profile", nil, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}

// Properties lists the signed-in seller's own listings, in every status.
func (s *SellerService) Properties(ctx context.Context) ([]Property, *Response, error) {
	return getList[Property](ctx, s.client, "/sellers/properties", nil, "properties")
}

func (s *SellerService) Inquiries(ctx context.Context) ([]Inquiry, *Response, error) {
	return getList[Inquiry](ctx, s.client, "/sellers/inquiries", nil, "inquiries")
}

func (s *SellerService) UpdateInquiryStatus(ctx context.Context, id string, status InquiryStatus) (*Inquiry, *Response, error) {
	out := new(Inquiry)
	body := map[string]InquiryStatus{"status": status}
	rs, err := s.client.do(ctx, http.MethodPatch, "/sellers/inquiries/"+escape(id), body, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}

func (s *SellerService) Stats(ctx context.Context) (*SellerStats, *Response, error) {
	out := new(SellerStats)
	rs, err := s.client.get(ctx, "/sellers/stats", nil, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}
