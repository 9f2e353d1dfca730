// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package safeplots

import (
	"context"
	"net/http"
	"net/url"
)

// AdminService covers the moderation endpoints. Every call needs an admin token.
type AdminService service

func (s *AdminService) Stats(ctx context.Context) (*AdminStats, *Response, error) {
	out := new(AdminStats)
	rs, err := s.client.get(ctx, "/admin/stats", nil, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}

func (s *AdminService) Users(ctx context.Context, search string) ([]User, *Response, error) {
	return getList[User](ctx, s.client, "/admin/users", url.Values{"search": {search}}, "users")
}

func (s *AdminService) User(ctx context.Context, id string) (*User, *Response, error) {
	out := new(User)
	rs, err := s.client.get(ctx, "/admin/users/"+escape(id), nil, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}

// SetUserBan bans or unbans a user account.
func (s *AdminService) SetUserBan(ctx context.Context, id string, ban bool) (*User, *Response, error) {
	out := new(User)
	rs, err := s.client.do(ctx, http.MethodPatch, "/admin/users/"+escape(id)+"/ban", map[string]bool{"ban": ban}, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, id string) (*Response, error) {
	return s.client.do(ctx, http.MethodDelete, "/admin/users/"+escape(id), nil, nil)
}

func (s *AdminService) Sellers(ctx context.Context, search string) ([]Seller, *Response, error) {
	return getList[Seller](ctx, s.client, "/admin/sellers", url.Values{"search": {search}}, "sellers")
}

func (s *AdminService) Seller(ctx context.Context, id string) (*Seller, *Response, error) {
	out := new(Seller)
	rs, err := s.client.get(ctx, "/admin/sellers/"+escape(id), nil, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}

func (s *AdminService) ApproveSeller(ctx context.Context, id string) (*Seller, *Response, error) {
	out := new(Seller)
	rs, err := s.client.do(ctx, http.MethodPost, "/admin/sellers/"+escape(id)+"/approve", nil, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}

func (s *AdminService) RejectSeller(ctx context.Context, id, reason string) (*Seller, *Response, error) {
	out := new(Seller)
	rs, err := s.client.do(ctx, http.MethodPost, "/admin/sellers/"+escape(id)+"/reject", map[string]string{"reason": reason}, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}

// Properties lists listings in any status, optionally filtered.
func (s *AdminService) Properties(ctx context.Context, search string, status PropertyStatus) ([]Property, *Response, error) {
	params := url.Values{"search": {search}, "status": {string(status)}}
	return getList[Property](ctx, s.client, "/admin/properties", params, "properties")
}

func (s *AdminService) Property(ctx context.Context, id string) (*Property, *Response, error) {
	out := new(Property)
	rs, err := s.client.get(ctx, "/admin/properties/"+escape(id), nil, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}

func (s *AdminService) ApproveProperty(ctx context.Context, id string) (*Property, *Response, error) {
	return s.moderate(ctx, id, "approve", "")
}

func (s *AdminService) RejectProperty(ctx context.Context, id, reason string) (*Property, *Response, error) {
	return s.moderate(ctx, id, "reject", reason)
}

func (s *AdminService) SuspendProperty(ctx context.Context, id, reason string) (*Property, *Response, error) {
	return s.moderate(ctx, id, "suspend", reason)
}

// UnsuspendProperty puts a suspended listing back to approved.
func (s *AdminService) UnsuspendProperty(ctx context.Context, id string) (*Property, *Response, error) {
	out := new(Property)
	body := map[string]PropertyStatus{"status": PropertyApproved}
	rs, err := s.client.do(ctx, http.MethodPatch, "/admin/properties/"+escape(id), body, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}

func (s *AdminService) UpdateProperty(ctx context.Context, id string, in *PropertyPayload) (*Property, *Response, error) {
	out := new(Property)
	rs, err := s.client.do(ctx, http.MethodPut, "/admin/properties/"+escape(id), in, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}

func (s *AdminService) moderate(ctx context.Context, id, action, reason string) (*Property, *Response, error) {
	var body any
	if reason != "" {
		body = map[string]string{"reason": reason}
	}
	out := new(Property)
	rs, err := s.client.do(ctx, http.MethodPost, "/admin/properties/"+escape(id)+"/"+action, body, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}

func (s *AdminService) Activities(ctx context.Context, search string) ([]Activity, *Response, error) {
	return getList[Activity](ctx, s.client, "/admin/activities", url.Values{"search": {search}}, "activities")
}

func (s *AdminService) Reports(ctx context.Context, search string) ([]PropertyReport, *Response, error) {
	return getList[PropertyReport](ctx, s.client, "/admin/reports", url.Values{"search": {search}}, "reports")
}

// Report finds one report by ID. The API has no single-report endpoint.
func (s *AdminService) Report(ctx context.Context, id string) (*PropertyReport, *Response, error) {
	reports, rs, err := s.Reports(ctx, "")
	if err != nil {
		return nil, rs, err
	}
	for i := range reports {
		if reports[i].ID == id {
			return &reports[i], rs, nil
		}
	}
	return nil, rs, &APIError{Status: http.StatusNotFound, Message: "Report not found"}
}

func (s *AdminService) UpdateReport(ctx context.Context, id string, in *ReportUpdate) (*PropertyReport, *Response, error) {
	out := new(PropertyReport)
	rs, err := s.client.do(ctx, http.MethodPatch, "/admin/reports/"+escape(id), in, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}
