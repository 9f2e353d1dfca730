// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

// Package safeplotstest runs an in-memory SafePlots API for tests.
package safeplotstest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

// Credentials of the built-in seed accounts.
const (
	AdminEmail        = "admin@safeplots.test"
	AdminPassword     = "admin-pass"
	BuyerEmail        = "buyer@safeplots.test"
	BuyerPassword     = "buyer-pass"
	SellerEmail       = "seller@safeplots.test"
	SellerPassword    = "seller-pass"
	ApplicantEmail    = "applicant@safeplots.test"
	ApplicantPassword = "applicant-pass"
)

// ValidOTP is the only verification code the fake accepts.
const ValidOTP = "123456"

type account struct {
	safeplots.User
	password string
}

type fault struct {
	status int
	left   int
}

// Server is a fake SafePlots API. Site is the base URL to hand to a client.
type Server struct {
	*httptest.Server
	Site string

	// TokenTTL is the lifetime of issued tokens.
	TokenTTL time.Duration

	mu         sync.Mutex
	secret     []byte
	now        func() time.Time
	users      map[string]*account
	sellers    map[string]*safeplots.Seller
	properties map[string]*safeplots.Property
	featured   map[string]bool
	inquiries  map[string]*safeplots.Inquiry
	reports    map[string]*safeplots.PropertyReport
	saved      map[string]map[string]bool
	views      []safeplots.PropertyView
	activities []safeplots.Activity
	faults     map[string]*fault
	hits       map[string]int
	order      int
	created    map[string]int
}

// NewServer starts a fake loaded with seed, or DefaultSeed when nil.
func NewServer(seed *Seed) *Server {
	if seed == nil {
		seed = DefaultSeed()
	}
	s := &Server{
		TokenTTL:   time.Hour,
		secret:     []byte(uuid.NewString()),
		now:        time.Now,
		users:      map[string]*account{},
		sellers:    map[string]*safeplots.Seller{},
		properties: map[string]*safeplots.Property{},
		featured:   map[string]bool{},
		inquiries:  map[string]*safeplots.Inquiry{},
		reports:    map[string]*safeplots.PropertyReport{},
		saved:      map[string]map[string]bool{},
		faults:     map[string]*fault{},
		hits:       map[string]int{},
		created:    map[string]int{},
	}
	s.load(seed)
	s.Server = httptest.NewServer(s.routes())
	s.Site = s.URL + "/api"
	return s
}

func (s *Server) load(seed *Seed) {
	ts := s.now().UTC().Format(time.RFC3339)
	for _, u := range seed.Users {
		role := safeplots.Role(u.Role)
		if role == "" {
			role = safeplots.RoleUser
		}
		status := u.Status
		if status == "" {
			status = "active"
		}
		s.users[u.ID] = &account{
			User: safeplots.User{
				ID: u.ID, Email: u.Email, Name: u.Name, Phone: u.Phone,
				Role: role, Status: status, IsVerified: true, EmailVerified: true, CreatedAt: ts,
			},
			password: u.Password,
		}
	}
	for _, sl := range seed.Sellers {
		owner := s.users[sl.UserID]
		seller := &safeplots.Seller{
			ID: sl.ID, UserID: sl.UserID, Status: safeplots.SellerStatus(sl.Status),
			IDProofType: sl.IDProofType, IDProofURL: sl.IDProofURL, CreatedAt: ts,
			IsVerified: sl.Status == string(safeplots.SellerApproved),
		}
		if owner != nil {
			seller.Name, seller.Email, seller.Phone = owner.Name, owner.Email, owner.Phone
		}
		s.sellers[sl.ID] = seller
	}
	for _, p := range seed.Properties {
		prop := &safeplots.Property{
			ID: p.ID, Title: p.Title, Description: p.Description,
			Type: safeplots.PropertyType(p.Type), Price: p.Price, Area: p.Area, AreaUnit: p.AreaUnit,
			Location: safeplots.Location{Address: p.Address, City: p.City, State: p.State, Pincode: p.Pincode},
			Images:   append([]string{}, p.Images...), Amenities: append([]string{}, p.Amenities...),
			SellerID: p.SellerID, Status: safeplots.PropertyStatus(p.Status),
			IsVerified: p.Status == string(safeplots.PropertyApproved),
			Views:      p.Views, CreatedAt: ts, UpdatedAt: ts,
		}
		if sl := s.sellers[p.SellerID]; sl != nil {
			prop.SellerName, prop.SellerPhone = sl.Name, sl.Phone
		}
		s.properties[p.ID] = prop
		s.featured[p.ID] = p.Featured
		s.track(p.ID)
	}
	for _, r := range seed.Reports {
		s.reports[r.ID] = &safeplots.PropertyReport{
			ID: r.ID, PropertyID: r.PropertyID, ReporterID: r.ReporterID,
			Reason: safeplots.ReportReason(r.Reason), Description: r.Description,
			Status: safeplots.ReportStatus(r.Status), CreatedAt: ts,
		}
		if p := s.properties[r.PropertyID]; p != nil {
			p.ReportCount++
		}
		s.track(r.ID)
	}
}

// track remembers insertion order so listings are stable.
func (s *Server) track(id string) {
	s.order++
	s.created[id] = s.order
}

// Fail makes the next n requests to method+path answer with status.
// path is relative to Site, e.g. "/properties/prop-01".
func (s *Server) Fail(method, path string, status, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[method+" "+path] = &fault{status: status, left: n}
}

// Hits returns how many requests reached method+path.
func (s *Server) Hits(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+path]
}

// Token signs a token for the user with the given email.
func (s *Server) Token(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.users {
		if strings.EqualFold(a.Email, email) {
			tok, _ := s.issue(a)
			return tok
		}
	}
	return ""
}

func (s *Server) issue(a *account) (string, error) {
	claims := jwt.MapClaims{
		"sub":  a.ID,
		"role": string(a.Role),
		"iat":  s.now().Unix(),
		"exp":  s.now().Add(s.TokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Property returns a copy of a stored property.
func (s *Server) Property(id string) (safeplots.Property, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[id]
	if !ok {
		return safeplots.Property{}, false
	}
	return *p, true
}

// User returns a copy of a stored account.
func (s *Server) User(id string) (safeplots.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.users[id]
	if !ok {
		return safeplots.User{}, false
	}
	return a.User, true
}

// Report returns a copy of a stored report.
func (s *Server) Report(id string) (safeplots.PropertyReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return safeplots.PropertyReport{}, false
	}
	return *r, true
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(s.faultMiddleware)
		r.Use(s.authMiddleware)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.login)
			r.Post("/register", s.register)
			r.Post("/verify-otp", s.verifyOTP)
			r.Post("/send-otp", s.ack)
			r.Post("/forgot-password", s.ack)
			r.Post("/reset-password", s.ack)
			r.With(s.requireRole()).Post("/change-password", s.changePassword)
		})

		r.Get("/properties", s.listProperties)
		r.Get("/properties/featured", s.featuredProperties)
		r.Get("/properties/{id}", s.getProperty)
		r.Post("/properties/{id}/view", s.viewProperty)
		r.Get("/sellers/{id}/properties", s.sellerPublicProperties)

		r.Group(func(r chi.Router) {
			r.Use(s.requireRole(safeplots.RoleSeller, safeplots.RoleAdmin))
			r.Post("/properties", s.createProperty)
			r.Put("/properties/{id}", s.updateProperty)
			r.Delete("/properties/{id}", s.deleteProperty)
			r.Patch("/properties/{id}/status", s.setPropertyStatus)
			r.Get("/sellers/properties", s.sellerProperties)
			r.Get("/sellers/inquiries", s.sellerInquiries)
			r.Patch("/sellers/inquiries/{id}", s.updateInquiry)
			r.Get("/sellers/stats", s.sellerStats)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireRole())
			r.Post("/sellers/register", s.registerSeller)
			r.Get("/sellers/profile", s.sellerProfile)
			r.Get("/users/profile", s.profile)
			r.Put("/users/profile", s.updateProfile)
			r.Get("/users/saved-properties", s.savedProperties)
			r.Post("/users/saved-properties/{id}", s.saveProperty)
			r.Delete("/users/saved-properties/{id}", s.unsaveProperty)
			r.Get("/users/viewed-properties", s.viewedProperties)
			r.Get("/users/inquiries", s.userInquiries)
			r.Get("/users/stats", s.userStats)
			r.Get("/inquiries", s.userInquiries)
			r.Post("/inquiries", s.createInquiry)
			r.Post("/reports", s.createReport)
			r.Post("/upload/{kind}", s.upload)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireRole(safeplots.RoleAdmin))
			r.Get("/stats", s.adminStats)
			r.Get("/users", s.adminUsers)
			r.Get("/users/{id}", s.adminUser)
			r.Patch("/users/{id}/ban", s.adminBanUser)
			r.Delete("/users/{id}", s.adminDeleteUser)
			r.Get("/sellers", s.adminSellers)
			r.Get("/sellers/{id}", s.adminSeller)
			r.Post("/sellers/{id}/approve", s.adminApproveSeller)
			r.Post("/sellers/{id}/reject", s.adminRejectSeller)
			r.Get("/properties", s.adminProperties)
			r.Get("/properties/{id}", s.getProperty)
			r.Patch("/properties/{id}", s.adminPatchProperty)
			r.Put("/properties/{id}", s.updateProperty)
			r.Post("/properties/{id}/{action}", s.adminModerateProperty)
			r.Get("/activities", s.adminActivities)
			r.Get("/reports", s.adminReports)
			r.Patch("/reports/{id}", s.adminUpdateReport)
		})
	})
	return r
}

func (s *Server) faultMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")
		s.mu.Lock()
		s.hits[key]++
		f := s.faults[key]
		status := 0
		if f != nil && f.left > 0 {
			f.left--
			status = f.status
		}
		s.mu.Unlock()
		if status != 0 {
			writeError(w, status, "", http.StatusText(status))
			return
		}
		next.ServeHTTP(w, r)
	})
}

type userKey struct{}

// authMiddleware resolves an optional bearer token. Invalid tokens are 401.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if h == "" {
			next.ServeHTTP(w, r)
			return
		}
		raw, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, safeplots.CodeTokenExpired, "invalid authorization header")
			return
		}
		tok, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return s.secret, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithTimeFunc(s.now))
		if err != nil {
			code := ""
			if errors.Is(err, jwt.ErrTokenExpired) {
				code = safeplots.CodeTokenExpired
			}
			writeError(w, http.StatusUnauthorized, code, "invalid or expired token")
			return
		}
		sub, _ := tok.Claims.GetSubject()
		s.mu.Lock()
		a := s.users[sub]
		s.mu.Unlock()
		if a == nil {
			writeError(w, http.StatusUnauthorized, "", "unknown user")
			return
		}
		if a.Status == "banned" {
			writeError(w, http.StatusForbidden, safeplots.CodeUserBanned, "account suspended")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, a.ID)))
	})
}

// requireRole demands a signed-in user holding one of roles (any when empty).
func (s *Server) requireRole(roles ...safeplots.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a := s.caller(r)
			if a == nil {
				writeError(w, http.StatusUnauthorized, "", "authentication required")
				return
			}
			if len(roles) > 0 {
				allowed := false
				for _, role := range roles {
					if a.Role == role {
						allowed = true
					}
				}
				if !allowed {
					writeError(w, http.StatusForbidden, "", "insufficient role")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) caller(r *http.Request) *account {
	id, _ := r.Context().Value(userKey{}).(string)
	if id == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]any{"success": false, "error": msg}
	if code != "" {
		body["code"] = code
	}
	_ = json.NewEncoder(w).Encode(body)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "", "invalid JSON body")
		return false
	}
	return true
}

func (s *Server) ack(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

func (s *Server) logActivity(a *account, kind, desc string) {
	act := safeplots.Activity{
		ID: uuid.NewString(), Type: kind, Description: desc,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}
	if a != nil {
		act.UserID, act.UserName = a.ID, a.Name
	}
	s.activities = append(s.activities, act)
}

func contains(haystack, needle string) bool {
	return needle == "" || strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
