// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package safeplotstest

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in struct{ Email, Password string }
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.users {
		if !strings.EqualFold(a.Email, in.Email) {
			continue
		}
		if a.password != in.Password {
			break
		}
		if a.Status == "banned" {
			writeError(w, http.StatusForbidden, safeplots.CodeUserBanned, "account suspended")
			return
		}
		tok, err := s.issue(a)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "", err.Error())
			return
		}
		a.LastLoginAt = s.now().UTC().Format(time.RFC3339)
		s.logActivity(a, "login", a.Email+" signed in")
		writeJSON(w, http.StatusOK, safeplots.LoginResult{User: a.User, Token: tok})
		return
	}
	writeError(w, http.StatusUnauthorized, safeplots.CodeInvalidCredentials, "Invalid email or password")
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in safeplots.RegisterRequest
	if !decode(w, r, &in) {
		return
	}
	if in.Email == "" || in.Password == "" || in.Name == "" {
		writeError(w, http.StatusUnprocessableEntity, "", "name, email and password are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.users {
		if strings.EqualFold(a.Email, in.Email) {
			writeError(w, http.StatusConflict, "", "email already registered")
			return
		}
	}
	a := &account{
		User: safeplots.User{
			ID: uuid.NewString(), Email: in.Email, Name: in.Name, Phone: in.Phone,
			Role: safeplots.RoleUser, Status: "active",
			CreatedAt: s.now().UTC().Format(time.RFC3339),
		},
		password: in.Password,
	}
	s.users[a.ID] = a
	s.logActivity(a, "register", a.Email+" registered")
	writeJSON(w, http.StatusCreated, a.User)
}

func (s *Server) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var in struct{ Email, OTP string }
	if !decode(w, r, &in) {
		return
	}
	if in.OTP != ValidOTP {
		writeError(w, http.StatusBadRequest, "", "invalid verification code")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.users {
		if strings.EqualFold(a.Email, in.Email) {
			a.IsVerified, a.EmailVerified = true, true
			tok, err := s.issue(a)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "", err.Error())
				return
			}
			writeJSON(w, http.StatusOK, safeplots.LoginResult{User: a.User, Token: tok})
			return
		}
	}
	writeError(w, http.StatusNotFound, "", "account not found")
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	var in struct{ CurrentPassword, NewPassword string }
	if !decode(w, r, &in) {
		return
	}
	a := s.caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.password != in.CurrentPassword {
		writeError(w, http.StatusBadRequest, "", "current password is incorrect")
		return
	}
	a.password = in.NewPassword
	writeJSON(w, http.StatusOK, map[string]string{"message": "password changed"})
}

// visible reports whether a may see p. Approved listings are public.
func (s *Server) visible(p *safeplots.Property, a *account) bool {
	if p.Status == safeplots.PropertyApproved || p.Status == safeplots.PropertySold {
		return true
	}
	if a == nil {
		return false
	}
	if a.Role == safeplots.RoleAdmin {
		return true
	}
	sl := s.sellers[p.SellerID]
	return sl != nil && sl.UserID == a.ID
}

func (s *Server) sortedProperties(keep func(*safeplots.Property) bool) []safeplots.Property {
	out := []safeplots.Property{}
	for _, p := range s.properties {
		if keep(p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return s.created[out[i].ID] < s.created[out[j].ID] })
	return out
}

func (s *Server) listProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}
	minPrice, _ := strconv.ParseFloat(q.Get("minPrice"), 64)
	maxPrice, _ := strconv.ParseFloat(q.Get("maxPrice"), 64)
	status := q.Get("status")
	if status == "" {
		status = string(safeplots.PropertyApproved)
	}

	s.mu.Lock()
	items := s.sortedProperties(func(p *safeplots.Property) bool {
		switch {
		case string(p.Status) != status:
			return false
		case q.Get("type") != "" && string(p.Type) != q.Get("type"):
			return false
		case q.Get("state") != "" && p.Location.State != q.Get("state"):
			return false
		case !contains(p.Location.City, q.Get("city")):
			return false
		case minPrice > 0 && p.Price < minPrice:
			return false
		case maxPrice > 0 && p.Price > maxPrice:
			return false
		}
		return contains(p.Title+" "+p.Location.City, q.Get("search"))
	})
	s.mu.Unlock()

	switch q.Get("sort") {
	case "price-low":
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price < items[j].Price })
	case "price-high":
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price > items[j].Price })
	case "popular":
		sort.SliceStable(items, func(i, j int) bool { return items[i].Views > items[j].Views })
	case "newest", "":
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}

	total := len(items)
	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items":      items[start:end],
		"total":      total,
		"page":       page,
		"pageSize":   limit,
		"totalPages": (total + limit - 1) / limit,
	})
}

func (s *Server) featuredProperties(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = safeplots.DefaultFeaturedLimit
	}
	s.mu.Lock()
	items := s.sortedProperties(func(p *safeplots.Property) bool {
		return s.featured[p.ID] && p.Status == safeplots.PropertyApproved
	})
	s.mu.Unlock()
	if len(items) > limit {
		items = items[:limit]
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) getProperty(w http.ResponseWriter, r *http.Request) {
	a := s.caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[chi.URLParam(r, "id")]
	if !ok || !s.visible(p, a) {
		writeError(w, http.StatusNotFound, "", "Property not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) viewProperty(w http.ResponseWriter, r *http.Request) {
	a := s.caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "", "Property not found")
		return
	}
	p.Views++
	v := safeplots.PropertyView{PropertyID: p.ID, ViewedAt: s.now().UTC().Format(time.RFC3339)}
	if a != nil {
		v.UserID = a.ID
	}
	s.views = append(s.views, v)
	writeJSON(w, http.StatusOK, map[string]int{"views": p.Views})
}

// sellerPublicProperties answers with the {properties: [...]} shape.
func (s *Server) sellerPublicProperties(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	items := s.sortedProperties(func(p *safeplots.Property) bool {
		return p.SellerID == id && p.Status == safeplots.PropertyApproved
	})
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"properties": items})
}

func (s *Server) sellerFor(a *account) *safeplots.Seller {
	for _, sl := range s.sellers {
		if sl.UserID == a.ID {
			return sl
		}
	}
	return nil
}

func (s *Server) createProperty(w http.ResponseWriter, r *http.Request) {
	var in safeplots.PropertyPayload
	if !decode(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Title) == "" || in.Type == "" {
		writeError(w, http.StatusUnprocessableEntity, "", "title and type are required")
		return
	}
	a := s.caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	sl := s.sellerFor(a)
	if sl == nil || sl.Status != safeplots.SellerApproved {
		writeError(w, http.StatusForbidden, safeplots.CodeSellerNotVerified, "seller is not verified")
		return
	}
	ts := s.now().UTC().Format(time.RFC3339)
	p := &safeplots.Property{ID: uuid.NewString(), SellerID: sl.ID, SellerName: sl.Name, SellerPhone: sl.Phone,
		Status: safeplots.PropertyPending, CreatedAt: ts, UpdatedAt: ts}
	applyPayload(p, &in)
	s.properties[p.ID] = p
	s.track(p.ID)
	sl.TotalProperties++
	s.logActivity(a, "property_created", p.Title)
	writeJSON(w, http.StatusCreated, p)
}

func applyPayload(p *safeplots.Property, in *safeplots.PropertyPayload) {
	p.Title, p.Description, p.Type = in.Title, in.Description, in.Type
	p.Price, p.PriceOnRequest = in.Price, in.PriceOnRequest
	p.Area, p.AreaUnit, p.Location = in.Area, in.AreaUnit, in.Location
	p.Images = append([]string{}, in.Images...)
	p.Video = in.Video
	p.Amenities = append([]string{}, in.Amenities...)
	p.Features = append([]string{}, in.Features...)
}

// owned returns the property if a owns it or is an admin.
func (s *Server) owned(w http.ResponseWriter, r *http.Request, a *account) *safeplots.Property {
	p, ok := s.properties[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "", "Property not found")
		return nil
	}
	if a.Role != safeplots.RoleAdmin {
		sl := s.sellers[p.SellerID]
		if sl == nil || sl.UserID != a.ID {
			writeError(w, http.StatusForbidden, "", "not the owner")
			return nil
		}
	}
	return p
}

func (s *Server) updateProperty(w http.ResponseWriter, r *http.Request) {
	var in safeplots.PropertyPayload
	if !decode(w, r, &in) {
		return
	}
	a := s.caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.owned(w, r, a)
	if p == nil {
		return
	}
	applyPayload(p, &in)
	p.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deleteProperty(w http.ResponseWriter, r *http.Request) {
	a := s.caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.owned(w, r, a)
	if p == nil {
		return
	}
	delete(s.properties, p.ID)
	delete(s.featured, p.ID)
	writeJSON(w, http.StatusOK, map[string]string{"id": p.ID})
}

func (s *Server) setPropertyStatus(w http.ResponseWriter, r *http.Request) {
	var in struct{ Status safeplots.PropertyStatus }
	if !decode(w, r, &in) {
		return
	}
	a := s.caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.owned(w, r, a)
	if p == nil {
		return
	}
	if in.Status != safeplots.PropertySold && a.Role != safeplots.RoleAdmin {
		writeError(w, http.StatusBadRequest, "", "sellers may only mark a listing sold")
		return
	}
	p.Status = in.Status
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) registerSeller(w http.ResponseWriter, r *http.Request) {
	var in safeplots.SellerRegistration
	if !decode(w, r, &in) {
		return
	}
	a := s.caller(r)
	if in.Name == "" || in.IDProofType == "" || in.IDProofURL == "" {
		writeError(w, http.StatusUnprocessableEntity, "", "name and ID proof are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sellerFor(a) != nil {
		writeError(w, http.StatusConflict, "", "seller application already exists")
		return
	}
	sl := &safeplots.Seller{
		ID: uuid.NewString(), UserID: a.ID, Name: in.Name, Email: in.Email, Phone: in.Phone,
		IDProofType: in.IDProofType, IDProofURL: in.IDProofURL,
		Status: safeplots.SellerPending, CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	s.sellers[sl.ID] = sl
	s.track(sl.ID)
	s.logActivity(a, "seller_registered", sl.Name)
	writeJSON(w, http.StatusCreated, sl)
}

func (s *Server) sellerProfile(w http.ResponseWriter, r *http.Request) {
	a := s.caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	sl := s.sellerFor(a)
	if sl == nil {
		writeError(w, http.StatusNotFound, "", "seller profile not found")
		return
	}
	writeJSON(w, http.StatusOK, sl)
}

// sellerProperties answers with the nested {data: {properties: [...]}} shape.
func (s *Server) sellerProperties(w http.ResponseWriter, r *http.Request) {
	a := s.caller(r)
	s.mu.Lock()
	sl := s.sellerFor(a)
	items := []safeplots.Property{}
	if sl != nil {
		items = s.sortedProperties(func(p *safeplots.Property) bool { return p.SellerID == sl.ID })
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"properties": items})
}

func (s *Server) inquiriesWhere(keep func(*safeplots.Inquiry) bool) []safeplots.Inquiry {
	out := []safeplots.Inquiry{}
	for _, q := range s.inquiries {
		if keep(q) {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return s.created[out[i].ID] < s.created[out[j].ID] })
	return out
}

func (s *Server) sellerInquiries(w http.ResponseWriter, r *http.Request) {
	a := s.caller(r)
	s.mu.Lock()
	sl := s.sellerFor(a)
	items := []safeplots.Inquiry{}
	if sl != nil {
		items = s.inquiriesWhere(func(q *safeplots.Inquiry) bool { return q.SellerID == sl.ID })
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) updateInquiry(w http.ResponseWriter, r *http.Request) {
	var in struct{ Status safeplots.InquiryStatus }
	if !decode(w, r, &in) {
		return
	}
	a := s.caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.inquiries[chi.URLParam(r, "id")]
	sl := s.sellerFor(a)
	if !ok || sl == nil || q.SellerID != sl.ID {
		writeError(w, http.StatusNotFound, "", "Inquiry not found")
		return
	}
	q.Status = in.Status
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) sellerStats(w http.ResponseWriter, r *http.Request) {
	a := s.caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var st safeplots.SellerStats
	sl := s.sellerFor(a)
	if sl == nil {
		writeJSON(w, http.StatusOK, st)
		return
	}
	for _, p := range s.properties {
		if p.SellerID != sl.ID {
			continue
		}
		st.TotalProperties++
		st.TotalViews += p.Views
		switch p.Status {
		case safeplots.PropertyApproved:
			st.LiveProperties++
		case safeplots.PropertyPending:
			st.PendingProperties++
		case safeplots.PropertySold:
			st.SoldProperties++
		}
	}
	for _, q := range s.inquiries {
		if q.SellerID == sl.ID {
			st.TotalInquiries++
			if q.Status == safeplots.InquiryNew {
				st.NewInquiries++
			}
		}
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	a := s.caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, a.User)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var in safeplots.ProfileUpdate
	if !decode(w, r, &in) {
		return
	}
	a := s.caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if in.Name != "" {
		a.Name = in.Name
	}
	if in.Phone != "" {
		a.Phone = in.Phone
	}
	if in.Avatar != "" {
		a.Avatar = in.Avatar
	}
	writeJSON(w, http.StatusOK, a.User)
}

// savedProperties answers with a bare array.
func (s *Server) savedProperties(w http.ResponseWriter, r *http.Request) {
	a := s.caller(r)
	s.mu.Lock()
	items := s.sortedProperties(func(p *safeplots.Property) bool { return s.saved[a.ID][p.ID] })
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) saveProperty(w http.ResponseWriter, r *http.Request) {
	a := s.caller(r)
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.properties[id]; !ok {
		writeError(w, http.StatusNotFound, "", "Property not found")
		return
	}
	if s.saved[a.ID] == nil {
		s.saved[a.ID] = map[string]bool{}
	}
	s.saved[a.ID][id] = true
	writeJSON(w, http.StatusOK, map[string]string{"propertyId": id})
}

func (s *Server) unsaveProperty(w http.ResponseWriter, r *http.Request) {
	a := s.caller(r)
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved[a.ID][id] {
		writeError(w, http.StatusNotFound, "", "Property is not saved")
		return
	}
	delete(s.saved[a.ID], id)
	writeJSON(w, http.StatusOK, map[string]string{"propertyId": id})
}

func (s *Server) viewedProperties(w http.ResponseWriter, r *http.Request) {
	a := s.caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []safeplots.PropertyView{}
	for _, v := range s.views {
		if v.UserID == a.ID {
			out = append(out, v)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) userInquiries(w http.ResponseWriter, r *http.Request) {
	a := s.caller(r)
	s.mu.Lock()
	items := s.inquiriesWhere(func(q *safeplots.Inquiry) bool { return q.UserID == a.ID })
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"inquiries": items})
}

func (s *Server) userStats(w http.ResponseWriter, r *http.Request) {
	a := s.caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	st := safeplots.UserStats{SavedProperties: len(s.saved[a.ID])}
	for _, q := range s.inquiries {
		if q.UserID == a.ID {
			st.SentInquiries++
		}
	}
	for _, v := range s.views {
		if v.UserID == a.ID {
			st.ViewedProperties++
		}
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) createInquiry(w http.ResponseWriter, r *http.Request) {
	var in safeplots.InquiryPayload
	if !decode(w, r, &in) {
		return
	}
	a := s.caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[in.PropertyID]
	if !ok {
		writeError(w, http.StatusNotFound, "", "Property not found")
		return
	}
	q := &safeplots.Inquiry{
		ID: uuid.NewString(), PropertyID: p.ID, PropertyTitle: p.Title,
		UserID: a.ID, UserName: a.Name, UserEmail: a.Email, UserPhone: a.Phone,
		SellerID: p.SellerID, Message: in.Message, Status: safeplots.InquiryNew,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	s.inquiries[q.ID] = q
	s.track(q.ID)
	p.Inquiries++
	s.logActivity(a, "inquiry_sent", p.Title)
	writeJSON(w, http.StatusCreated, q)
}

func (s *Server) createReport(w http.ResponseWriter, r *http.Request) {
	var in safeplots.ReportPayload
	if !decode(w, r, &in) {
		return
	}
	a := s.caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[in.PropertyID]
	if !ok {
		writeError(w, http.StatusNotFound, "", "Property not found")
		return
	}
	rep := &safeplots.PropertyReport{
		ID: uuid.NewString(), PropertyID: p.ID, PropertyTitle: p.Title,
		ReporterID: a.ID, ReporterName: a.Name, Reason: in.Reason, Description: in.Description,
		Status: safeplots.ReportPending, CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	s.reports[rep.ID] = rep
	s.track(rep.ID)
	p.ReportCount++
	s.logActivity(a, "property_reported", p.Title)
	writeJSON(w, http.StatusCreated, rep)
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	switch kind {
	case "document", "property-image", "property-video":
	default:
		writeError(w, http.StatusNotFound, "", "unknown upload kind")
		return
	}
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "", "")
		return
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "", "")
		return
	}
	defer f.Close()
	writeJSON(w, http.StatusOK, safeplots.Upload{URL: s.URL + "/files/" + kind + "/" + uuid.NewString() + "/" + hdr.Filename})
}
