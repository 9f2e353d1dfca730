// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package safeplots

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

type InquiryService service

// Send contacts the seller of a property.
func (s *InquiryService) Send(ctx context.Context, in *InquiryPayload) (*Inquiry, *Response, error) {
	if in == nil || in.PropertyID == "" || strings.TrimSpace(in.Message) == "" {
		return nil, nil, errors.New("safeplots: inquiry needs a property and a message")
	}
	out := new(Inquiry)
	rs, err := s.client.do(ctx, http.MethodPost, "/inquiries", in, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}

func (s *InquiryService) List(ctx context.Context) ([]Inquiry, *Response, error) {
	return getList[Inquiry](ctx, s.client, "/inquiries", nil, "inquiries")
}

type ReportService service

// Create flags a property for admin review.
func (s *ReportService) Create(ctx context.Context, in *ReportPayload) (*PropertyReport, *Response, error) {
	if in == nil || in.PropertyID == "" || in.Reason == "" {
		return nil, nil, errors.New("safeplots: report needs a property and a reason")
	}
	out := new(PropertyReport)
	rs, err := s.client.do(ctx, http.MethodPost, "/reports", in, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}
