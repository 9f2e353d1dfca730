// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package safeplots_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots/safeplotstest"
)

func newClient(t *testing.T, srv *safeplotstest.Server, opts ...safeplots.Option) *safeplots.Client {
	t.Helper()
	c, err := safeplots.New(srv.Client(), srv.Site, opts...)
	require.NoError(t, err)
	return c
}

func startServer(t *testing.T) *safeplotstest.Server {
	t.Helper()
	srv := safeplotstest.NewServer(nil)
	t.Cleanup(srv.Close)
	return srv
}

func TestNew_ValidatesSite(t *testing.T) {
	_, err := safeplots.New(nil, "")
	require.Error(t, err)
	_, err = safeplots.New(nil, "not a url")
	require.Error(t, err)
	c, err := safeplots.New(nil, "https://api.safeplots.test/api/")
	require.NoError(t, err)
	assert.Equal(t, "/api", c.Site.Path)
}

func TestLogin_StoresSession(t *testing.T) {
	srv := startServer(t)
	c := newClient(t, srv)
	ctx := context.Background()

	res, rs, err := c.Auth.Login(ctx, safeplotstest.BuyerEmail, safeplotstest.BuyerPassword)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rs.Code)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, res.Token, c.Session.Token())
	assert.Equal(t, "user-1", c.Session.User().ID)

	me, _, err := c.Users.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, safeplotstest.BuyerEmail, me.Email)
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := startServer(t)
	c := newClient(t, srv)

	_, rs, err := c.Auth.Login(context.Background(), safeplotstest.BuyerEmail, "wrong")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, rs.Code)

	var apiErr *safeplots.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Invalid email or password", apiErr.Message)
	assert.Equal(t, "Login Failed", apiErr.Title())
}

func TestCredentials_SignInOnDemand(t *testing.T) {
	srv := startServer(t)
	c := newClient(t, srv, safeplots.WithCredentials(safeplotstest.AdminEmail, safeplotstest.AdminPassword))

	stats, _, err := c.Admin.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, srv.Hits(http.MethodPost, "/auth/login"))
	assert.Equal(t, 5, stats.TotalUsers)
	assert.Equal(t, 1, stats.PendingApprovals)
	assert.Equal(t, 1, stats.PendingSellerVerifications)
	assert.Equal(t, 1, stats.BannedUsers)

	_, _, err = c.Admin.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, srv.Hits(http.MethodPost, "/auth/login"), "token is reused")
}

func TestUnauthorized_ClearsSession(t *testing.T) {
	srv := startServer(t)
	c := newClient(t, srv, safeplots.WithToken("garbage"))

	_, _, err := c.Users.Profile(context.Background())
	require.Error(t, err)
	assert.Equal(t, safeplots.MsgSessionExpired, err.Error())
	assert.Empty(t, c.Session.Token())
}

func TestErrorMessages(t *testing.T) {
	srv := startServer(t)
	ctx := context.Background()
	c := newClient(t, srv, safeplots.WithToken(srv.Token(safeplotstest.BuyerEmail)))

	_, _, err := c.Admin.Stats(ctx)
	require.Error(t, err)
	assert.Equal(t, safeplots.MsgForbidden, err.Error())

	srv.Fail(http.MethodGet, "/users/stats", http.StatusInternalServerError, 1)
	_, _, err = c.Users.Stats(ctx)
	require.Error(t, err)
	assert.Equal(t, safeplots.MsgServerError, err.Error())
	assert.Equal(t, 500, safeplots.StatusOf(err))

	_, _, err = c.Properties.Get(ctx, "missing")
	require.Error(t, err)
	assert.True(t, safeplots.IsNotFound(err))
	assert.Equal(t, "Property not found", err.Error())
}

func TestNetworkError(t *testing.T) {
	srv := startServer(t)
	c := newClient(t, srv)
	srv.Close()

	_, rs, err := c.Properties.Featured(context.Background(), 0)
	require.Error(t, err)
	assert.Nil(t, rs)
	var apiErr *safeplots.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, safeplots.CodeNetwork, apiErr.Code)
	assert.Equal(t, safeplots.MsgNetworkError, apiErr.Message)
}

func TestPropertiesList_Paginates(t *testing.T) {
	srv := startServer(t)
	c := newClient(t, srv)
	ctx := context.Background()

	first, _, err := c.Properties.List(ctx, &safeplots.PropertyListOptions{Page: 1, Limit: 12})
	require.NoError(t, err)
	assert.Len(t, first.Items, 12)
	assert.Equal(t, 14, first.Total)
	assert.Equal(t, 2, first.TotalPages)

	second, _, err := c.Properties.List(ctx, &safeplots.PropertyListOptions{Page: 2, Limit: 12})
	require.NoError(t, err)
	assert.Len(t, second.Items, 2)

	cheap, _, err := c.Properties.List(ctx, &safeplots.PropertyListOptions{MaxPrice: 500000, Sort: "price-low"})
	require.NoError(t, err)
	require.NotEmpty(t, cheap.Items)
	for i, p := range cheap.Items {
		assert.LessOrEqual(t, p.Price, 500000.0)
		if i > 0 {
			assert.GreaterOrEqual(t, p.Price, cheap.Items[i-1].Price)
		}
	}
}

func TestFeaturedAndSellerListings(t *testing.T) {
	srv := startServer(t)
	c := newClient(t, srv)
	ctx := context.Background()

	featured, _, err := c.Properties.Featured(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, featured, 3)

	bySeller, _, err := c.Properties.BySeller(ctx, "seller-1")
	require.NoError(t, err)
	assert.Len(t, bySeller, 14, "only approved listings are public")
}

func TestSellerLifecycle(t *testing.T) {
	srv := startServer(t)
	ctx := context.Background()
	seller := newClient(t, srv, safeplots.WithCredentials(safeplotstest.SellerEmail, safeplotstest.SellerPassword))
	admin := newClient(t, srv, safeplots.WithCredentials(safeplotstest.AdminEmail, safeplotstest.AdminPassword))

	created, rs, err := seller.Properties.Create(ctx, &safeplots.PropertyPayload{
		Title: "Corner plot", Type: safeplots.PropertyTypePlot, Price: 3500000,
		Area: 2400, AreaUnit: "sqft",
		Location: safeplots.Location{City: "Mysuru", State: "Karnataka"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rs.Code)
	assert.Equal(t, safeplots.PropertyPending, created.Status)

	mine, _, err := seller.Sellers.Properties(ctx)
	require.NoError(t, err)
	assert.Len(t, mine, 17)

	approved, _, err := admin.Admin.ApproveProperty(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, safeplots.PropertyApproved, approved.Status)

	suspended, _, err := admin.Admin.SuspendProperty(ctx, created.ID, "duplicate")
	require.NoError(t, err)
	assert.Equal(t, safeplots.PropertySuspended, suspended.Status)
	assert.Equal(t, "duplicate", suspended.RejectReason)

	restored, _, err := admin.Admin.UnsuspendProperty(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, safeplots.PropertyApproved, restored.Status)

	sold, _, err := seller.Properties.SetStatus(ctx, created.ID, safeplots.PropertySold)
	require.NoError(t, err)
	assert.Equal(t, safeplots.PropertySold, sold.Status)

	_, err = seller.Properties.Delete(ctx, created.ID)
	require.NoError(t, err)
	_, err = seller.Properties.Delete(ctx, created.ID)
	assert.True(t, safeplots.IsNotFound(err))
}

func TestSellerRegistrationAndVerification(t *testing.T) {
	srv := startServer(t)
	ctx := context.Background()
	buyer := newClient(t, srv, safeplots.WithCredentials(safeplotstest.BuyerEmail, safeplotstest.BuyerPassword))
	admin := newClient(t, srv, safeplots.WithCredentials(safeplotstest.AdminEmail, safeplotstest.AdminPassword))

	app, _, err := buyer.Sellers.Register(ctx, &safeplots.SellerRegistration{
		UserID: "user-1", Name: "Bala Estates", Email: safeplotstest.BuyerEmail,
		Phone: "9800000001", IDProofType: "pan", IDProofURL: "https://files.safeplots.test/p.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, safeplots.SellerPending, app.Status)

	_, _, err = buyer.Sellers.Register(ctx, &safeplots.SellerRegistration{Name: "x", IDProofType: "pan", IDProofURL: "u"})
	assert.Equal(t, http.StatusConflict, safeplots.StatusOf(err))

	rejected, _, err := admin.Admin.RejectSeller(ctx, app.ID, "blurry document")
	require.NoError(t, err)
	assert.Equal(t, safeplots.SellerRejected, rejected.Status)

	approved, _, err := admin.Admin.ApproveSeller(ctx, app.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsVerified)

	u, _, err := admin.Admin.User(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, safeplots.RoleSeller, u.Role)
}

func TestInquiriesReportsAndSaved(t *testing.T) {
	srv := startServer(t)
	ctx := context.Background()
	buyer := newClient(t, srv, safeplots.WithCredentials(safeplotstest.BuyerEmail, safeplotstest.BuyerPassword))
	seller := newClient(t, srv, safeplots.WithCredentials(safeplotstest.SellerEmail, safeplotstest.SellerPassword))
	admin := newClient(t, srv, safeplots.WithCredentials(safeplotstest.AdminEmail, safeplotstest.AdminPassword))

	_, _, err := buyer.Inquiries.Send(ctx, &safeplots.InquiryPayload{PropertyID: "prop-02"})
	require.Error(t, err, "message is required")

	inq, _, err := buyer.Inquiries.Send(ctx, &safeplots.InquiryPayload{PropertyID: "prop-02", Message: "Is the price negotiable?"})
	require.NoError(t, err)
	assert.Equal(t, safeplots.InquiryNew, inq.Status)

	sent, _, err := buyer.Users.Inquiries(ctx)
	require.NoError(t, err)
	assert.Len(t, sent, 1)

	got, _, err := seller.Sellers.Inquiries(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	upd, _, err := seller.Sellers.UpdateInquiryStatus(ctx, got[0].ID, safeplots.InquiryContacted)
	require.NoError(t, err)
	assert.Equal(t, safeplots.InquiryContacted, upd.Status)

	sst, _, err := seller.Sellers.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sst.TotalInquiries)
	assert.Equal(t, 0, sst.NewInquiries)

	rep, _, err := buyer.Reports.Create(ctx, &safeplots.ReportPayload{PropertyID: "prop-03", Reason: safeplots.ReasonFraud, Description: "fake photos"})
	require.NoError(t, err)
	assert.Equal(t, safeplots.ReportPending, rep.Status)

	resolved, _, err := admin.Admin.UpdateReport(ctx, rep.ID, &safeplots.ReportUpdate{
		Status: safeplots.ReportResolved, AdminNotes: "listing suspended", SuspendProperty: true,
	})
	require.NoError(t, err)
	assert.Equal(t, safeplots.ReportResolved, resolved.Status)
	p, ok := srv.Property("prop-03")
	require.True(t, ok)
	assert.Equal(t, safeplots.PropertySuspended, p.Status)

	found, _, err := admin.Admin.Report(ctx, rep.ID)
	require.NoError(t, err)
	assert.Equal(t, "listing suspended", found.AdminNotes)
	_, _, err = admin.Admin.Report(ctx, "nope")
	assert.True(t, safeplots.IsNotFound(err))

	_, err = buyer.Users.SaveProperty(ctx, "prop-04")
	require.NoError(t, err)
	saved, _, err := buyer.Users.SavedProperties(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "prop-04", saved[0].ID)
	_, err = buyer.Users.UnsaveProperty(ctx, "prop-04")
	require.NoError(t, err)

	ust, _, err := buyer.Users.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, safeplots.UserStats{SentInquiries: 1}, *ust)
}

func TestAdminBanAndSearch(t *testing.T) {
	srv := startServer(t)
	ctx := context.Background()
	admin := newClient(t, srv, safeplots.WithCredentials(safeplotstest.AdminEmail, safeplotstest.AdminPassword))

	users, _, err := admin.Admin.Users(ctx, "applicant")
	require.NoError(t, err)
	require.Len(t, users, 1)

	banned, _, err := admin.Admin.SetUserBan(ctx, users[0].ID, true)
	require.NoError(t, err)
	assert.True(t, banned.IsBanned())

	applicant := newClient(t, srv)
	_, _, err = applicant.Auth.Login(ctx, safeplotstest.ApplicantEmail, safeplotstest.ApplicantPassword)
	var apiErr *safeplots.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, safeplots.CodeUserBanned, apiErr.Code)
	assert.Equal(t, "Account Suspended", apiErr.Title())

	_, _, err = admin.Admin.SetUserBan(ctx, users[0].ID, false)
	require.NoError(t, err)

	pending, _, err := admin.Admin.Properties(ctx, "", safeplots.PropertyPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "prop-pending", pending[0].ID)

	acts, _, err := admin.Admin.Activities(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, acts)
}

func TestUploads(t *testing.T) {
	srv := startServer(t)
	ctx := context.Background()
	c := newClient(t, srv, safeplots.WithCredentials(safeplotstest.SellerEmail, safeplotstest.SellerPassword))

	up, _, err := c.Uploads.PropertyImage(ctx, "front.jpg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(up.URL, "/front.jpg"), up.URL)

	srv.Fail(http.MethodPost, "/upload/document", http.StatusBadRequest, 1)
	_, _, err = c.Uploads.Document(ctx, "id.pdf", strings.NewReader("pdf"), map[string]string{"type": "aadhar"})
	require.Error(t, err)
	assert.Equal(t, "Bad Request", err.Error())
}
