// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"

	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

var _ datasource.DataSource = (*adminStatsDataSource)(nil)
var _ datasource.DataSource = (*sellerStatsDataSource)(nil)
var _ datasource.DataSource = (*userStatsDataSource)(nil)

// counterAttributes builds a schema of computed Int64 counters.
func counterAttributes(desc map[string]string) map[string]schema.Attribute {
	out := make(map[string]schema.Attribute, len(desc))
	for name, d := range desc {
		out[name] = schema.Int64Attribute{Computed: true, MarkdownDescription: d}
	}
	return out
}

func count(n int) types.Int64 { return types.Int64Value(int64(n)) }

// NewAdminStatsDataSource returns the data source for safeplots_admin_stats.
func NewAdminStatsDataSource() datasource.DataSource { return &adminStatsDataSource{} }

type adminStatsDataSource struct {
	ServiceClient
}

type adminStatsDataSourceModel struct {
	TotalUsers                 types.Int64 `tfsdk:"total_users"`
	TotalSellers               types.Int64 `tfsdk:"total_sellers"`
	TotalProperties            types.Int64 `tfsdk:"total_properties"`
	PendingApprovals           types.Int64 `tfsdk:"pending_approvals"`
	PendingSellerVerifications types.Int64 `tfsdk:"pending_seller_verifications"`
	TotalInquiries             types.Int64 `tfsdk:"total_inquiries"`
	PropertiesSold             types.Int64 `tfsdk:"properties_sold"`
	TotalReports               types.Int64 `tfsdk:"total_reports"`
	BannedUsers                types.Int64 `tfsdk:"banned_users"`
}

func (d *adminStatsDataSource) Metadata(_ context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_admin_stats"
}

func (d *adminStatsDataSource) Configure(_ context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
	if p, ok := providerFrom(req.ProviderData, "Data Source", &resp.Diagnostics); ok {
		d.configureFrom(p)
	}
}

func (d *adminStatsDataSource) Schema(_ context.Context, _ datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Platform-wide counters from the admin dashboard. Requires an admin account.",
		Attributes: counterAttributes(map[string]string{
			"total_users":                  "Registered accounts.",
			"total_sellers":                "Seller accounts and applications.",
			"total_properties":             "Listings in any status.",
			"pending_approvals":            "Listings waiting for moderation.",
			"pending_seller_verifications": "Seller applications waiting for review.",
			"total_inquiries":              "Inquiries sent.",
			"properties_sold":              "Listings marked sold.",
			"total_reports":                "Reports filed.",
			"banned_users":                 "Banned accounts.",
		}),
	}
}

func (d *adminStatsDataSource) Read(ctx context.Context, _ datasource.ReadRequest, resp *datasource.ReadResponse) {
	if !d.requireAdmin(&resp.Diagnostics, "Admin stats") {
		return
	}
	ctx, cancel := withTimeout(ctx, d.providerTimeouts.Read)
	defer cancel()

	s, rs, err := fetch(ctx, d.reads, d.client.Admin.Stats)
	if !EnsureSuccessOrDiag(ctx, "read admin stats", rs, err, &resp.Diagnostics) {
		return
	}
	data := adminStatsDataSourceModel{
		TotalUsers:                 count(s.TotalUsers),
		TotalSellers:               count(s.TotalSellers),
		TotalProperties:            count(s.TotalProperties),
		PendingApprovals:           count(s.PendingApprovals),
		PendingSellerVerifications: count(s.PendingSellerVerifications),
		TotalInquiries:             count(s.TotalInquiries),
		PropertiesSold:             count(s.PropertiesSold),
		TotalReports:               count(s.TotalReports),
		BannedUsers:                count(s.BannedUsers),
	}
	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

// NewSellerStatsDataSource returns the data source for safeplots_seller_stats.
func NewSellerStatsDataSource() datasource.DataSource { return &sellerStatsDataSource{} }

type sellerStatsDataSource struct {
	ServiceClient
}

type sellerStatsDataSourceModel struct {
	TotalProperties   types.Int64 `tfsdk:"total_properties"`
	LiveProperties    types.Int64 `tfsdk:"live_properties"`
	PendingProperties types.Int64 `tfsdk:"pending_properties"`
	SoldProperties    types.Int64 `tfsdk:"sold_properties"`
	TotalInquiries    types.Int64 `tfsdk:"total_inquiries"`
	NewInquiries      types.Int64 `tfsdk:"new_inquiries"`
	TotalViews        types.Int64 `tfsdk:"total_views"`
}

func (d *sellerStatsDataSource) Metadata(_ context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_seller_stats"
}

func (d *sellerStatsDataSource) Configure(_ context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
	if p, ok := providerFrom(req.ProviderData, "Data Source", &resp.Diagnostics); ok {
		d.configureFrom(p)
	}
}

func (d *sellerStatsDataSource) Schema(_ context.Context, _ datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Counters from the seller dashboard of the authenticated seller.",
		Attributes: counterAttributes(map[string]string{
			"total_properties":   "Listings owned.",
			"live_properties":    "Approved listings.",
			"pending_properties": "Listings waiting for moderation.",
			"sold_properties":    "Listings marked sold.",
			"total_inquiries":    "Inquiries received.",
			"new_inquiries":      "Inquiries not yet answered.",
			"total_views":        "Views across all listings.",
		}),
	}
}

func (d *sellerStatsDataSource) Read(ctx context.Context, _ datasource.ReadRequest, resp *datasource.ReadResponse) {
	ctx, cancel := withTimeout(ctx, d.providerTimeouts.Read)
	defer cancel()

	s, rs, err := fetch(ctx, d.reads, d.client.Sellers.Stats)
	if !EnsureSuccessOrDiag(ctx, "read seller stats", rs, err, &resp.Diagnostics) {
		return
	}
	data := sellerStatsDataSourceModel{
		TotalProperties:   count(s.TotalProperties),
		LiveProperties:    count(s.LiveProperties),
		PendingProperties: count(s.PendingProperties),
		SoldProperties:    count(s.SoldProperties),
		TotalInquiries:    count(s.TotalInquiries),
		NewInquiries:      count(s.NewInquiries),
		TotalViews:        count(s.TotalViews),
	}
	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

// NewUserStatsDataSource returns the data source for safeplots_user_stats.
func NewUserStatsDataSource() datasource.DataSource { return &userStatsDataSource{} }

type userStatsDataSource struct {
	ServiceClient
}

type userStatsDataSourceModel struct {
	SavedProperties  types.Int64 `tfsdk:"saved_properties"`
	SentInquiries    types.Int64 `tfsdk:"sent_inquiries"`
	ViewedProperties types.Int64 `tfsdk:"viewed_properties"`
}

func (d *userStatsDataSource) Metadata(_ context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_user_stats"
}

func (d *userStatsDataSource) Configure(_ context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
	if p, ok := providerFrom(req.ProviderData, "Data Source", &resp.Diagnostics); ok {
		d.configureFrom(p)
	}
}

func (d *userStatsDataSource) Schema(_ context.Context, _ datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Counters from the buyer dashboard of the authenticated user.",
		Attributes: counterAttributes(map[string]string{
			"saved_properties":  "Saved listings.",
			"sent_inquiries":    "Inquiries sent.",
			"viewed_properties": "Listings viewed.",
		}),
	}
}

func (d *userStatsDataSource) Read(ctx context.Context, _ datasource.ReadRequest, resp *datasource.ReadResponse) {
	ctx, cancel := withTimeout(ctx, d.providerTimeouts.Read)
	defer cancel()

	s, rs, err := fetch(ctx, d.reads, d.client.Users.Stats)
	if !EnsureSuccessOrDiag(ctx, "read user stats", rs, err, &resp.Diagnostics) {
		return
	}
	data := userStatsDataSourceModel{
		SavedProperties:  count(s.SavedProperties),
		SentInquiries:    count(s.SentInquiries),
		ViewedProperties: count(s.ViewedProperties),
	}
	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

