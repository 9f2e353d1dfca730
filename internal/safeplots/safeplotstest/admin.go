// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package safeplotstest

import (
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

func (s *Server) adminStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := safeplots.AdminStats{
		TotalUsers:     len(s.users),
		TotalSellers:   len(s.sellers),
		TotalInquiries: len(s.inquiries),
		TotalReports:   len(s.reports),
	}
	for _, a := range s.users {
		if a.Status == "banned" {
			st.BannedUsers++
		}
	}
	for _, sl := range s.sellers {
		if sl.Status == safeplots.SellerPending {
			st.PendingSellerVerifications++
		}
	}
	for _, p := range s.properties {
		st.TotalProperties++
		switch p.Status {
		case safeplots.PropertyPending:
			st.PendingApprovals++
		case safeplots.PropertySold:
			st.PropertiesSold++
		}
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) adminUsers(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	s.mu.Lock()
	out := []safeplots.User{}
	for _, a := range s.users {
		if contains(a.Name+" "+a.Email, search) {
			out = append(out, a.User)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, map[string]any{"users": out})
}

func (s *Server) adminUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.users[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "", "User not found")
		return
	}
	writeJSON(w, http.StatusOK, a.User)
}

func (s *Server) adminBanUser(w http.ResponseWriter, r *http.Request) {
	var in struct{ Ban bool }
	if !decode(w, r, &in) {
		return
	}
	admin := s.caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.users[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "", "User not found")
		return
	}
	if a.ID == admin.ID {
		writeError(w, http.StatusBadRequest, "", "admins cannot ban themselves")
		return
	}
	if in.Ban {
		a.Status = "banned"
	} else {
		a.Status = "active"
	}
	s.logActivity(admin, "user_ban", a.Email+" -> "+a.Status)
	writeJSON(w, http.StatusOK, a.User)
}

func (s *Server) adminDeleteUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "id")
	if _, ok := s.users[id]; !ok {
		writeError(w, http.StatusNotFound, "", "User not found")
		return
	}
	delete(s.users, id)
	delete(s.saved, id)
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *Server) adminSellers(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	s.mu.Lock()
	out := []safeplots.Seller{}
	for _, sl := range s.sellers {
		if contains(sl.Name+" "+sl.Email, search) {
			out = append(out, *sl)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, map[string]any{"sellers": out})
}

func (s *Server) adminSeller(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.sellers[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "", "Seller not found")
		return
	}
	writeJSON(w, http.StatusOK, sl)
}

func (s *Server) adminApproveSeller(w http.ResponseWriter, r *http.Request) {
	admin := s.caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.sellers[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "", "Seller not found")
		return
	}
	sl.Status, sl.IsVerified, sl.RejectReason = safeplots.SellerApproved, true, ""
	if owner := s.users[sl.UserID]; owner != nil && owner.Role == safeplots.RoleUser {
		owner.Role = safeplots.RoleSeller
	}
	s.logActivity(admin, "seller_approved", sl.Name)
	writeJSON(w, http.StatusOK, sl)
}

func (s *Server) adminRejectSeller(w http.ResponseWriter, r *http.Request) {
	var in struct{ Reason string }
	if r.ContentLength != 0 && !decode(w, r, &in) {
		return
	}
	admin := s.caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.sellers[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "", "Seller not found")
		return
	}
	sl.Status, sl.IsVerified, sl.RejectReason = safeplots.SellerRejected, false, in.Reason
	s.logActivity(admin, "seller_rejected", sl.Name)
	writeJSON(w, http.StatusOK, sl)
}

// adminProperties answers with the {properties: [...]} shape.
func (s *Server) adminProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.mu.Lock()
	items := s.sortedProperties(func(p *safeplots.Property) bool {
		if st := q.Get("status"); st != "" && string(p.Status) != st {
			return false
		}
		return contains(p.Title+" "+p.Location.City, q.Get("search"))
	})
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"properties": items})
}

func (s *Server) adminPatchProperty(w http.ResponseWriter, r *http.Request) {
	var in struct{ Status safeplots.PropertyStatus }
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "", "Property not found")
		return
	}
	if in.Status != "" {
		p.Status = in.Status
		p.IsVerified = in.Status == safeplots.PropertyApproved
		if in.Status == safeplots.PropertyApproved {
			p.RejectReason = ""
		}
	}
	p.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) adminModerateProperty(w http.ResponseWriter, r *http.Request) {
	var in struct{ Reason string }
	if r.ContentLength != 0 && !decode(w, r, &in) {
		return
	}
	admin := s.caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "", "Property not found")
		return
	}
	switch action := chi.URLParam(r, "action"); action {
	case "approve":
		p.Status, p.IsVerified, p.RejectReason = safeplots.PropertyApproved, true, ""
	case "reject":
		p.Status, p.IsVerified, p.RejectReason = safeplots.PropertyRejected, false, in.Reason
	case "suspend":
		p.Status, p.IsVerified, p.RejectReason = safeplots.PropertySuspended, false, in.Reason
	default:
		writeError(w, http.StatusNotFound, "", "unknown action "+action)
		return
	}
	p.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	s.logActivity(admin, "property_"+string(p.Status), p.Title)
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) adminActivities(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	s.mu.Lock()
	out := []safeplots.Activity{}
	for i := len(s.activities) - 1; i >= 0; i-- {
		a := s.activities[i]
		if contains(a.Description+" "+a.UserName, search) {
			out = append(out, a)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"activities": out})
}

func (s *Server) adminReports(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	s.mu.Lock()
	out := []safeplots.PropertyReport{}
	for _, rep := range s.reports {
		if contains(rep.Description+" "+rep.PropertyTitle, search) {
			out = append(out, *rep)
		}
	}
	sort.Slice(out, func(i, j int) bool { return s.created[out[i].ID] < s.created[out[j].ID] })
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"reports": out})
}

func (s *Server) adminUpdateReport(w http.ResponseWriter, r *http.Request) {
	var in safeplots.ReportUpdate
	if !decode(w, r, &in) {
		return
	}
	admin := s.caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	rep, ok := s.reports[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "", "Report not found")
		return
	}
	rep.Status, rep.AdminNotes = in.Status, in.AdminNotes
	rep.ResolvedAt = s.now().UTC().Format(time.RFC3339)
	if in.SuspendProperty {
		if p := s.properties[rep.PropertyID]; p != nil {
			p.Status, p.IsVerified = safeplots.PropertySuspended, false
		}
	}
	s.logActivity(admin, "report_"+string(rep.Status), rep.ID)
	writeJSON(w, http.StatusOK, rep)
}
