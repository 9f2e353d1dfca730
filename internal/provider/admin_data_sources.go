// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"

	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

var _ datasource.DataSource = (*sellersDataSource)(nil)
var _ datasource.DataSourceWithConfigure = (*sellersDataSource)(nil)
var _ datasource.DataSource = (*reportsDataSource)(nil)
var _ datasource.DataSourceWithConfigure = (*reportsDataSource)(nil)

// NewSellersDataSource returns the data source for safeplots_sellers (admin).
func NewSellersDataSource() datasource.DataSource { return &sellersDataSource{} }

type sellersDataSource struct {
	ServiceClient
}

type sellersDataSourceModel struct {
	Search  types.String `tfsdk:"search"`
	Status  types.String `tfsdk:"status"`
	IDs     types.List   `tfsdk:"ids"`
	Sellers types.Map    `tfsdk:"sellers"`
}

func (d *sellersDataSource) Metadata(_ context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_sellers"
}

func (d *sellersDataSource) Configure(_ context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
	if p, ok := providerFrom(req.ProviderData, "Data Source", &resp.Diagnostics); ok {
		d.configureFrom(p)
	}
}

func (d *sellersDataSource) Schema(_ context.Context, _ datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Lists seller accounts and applications. Requires an admin account.",
		Attributes: map[string]schema.Attribute{
			"search": schema.StringAttribute{Optional: true, MarkdownDescription: "Match against name and email."},
			"status": schema.StringAttribute{
				Optional: true,
				Validators: []validator.String{stringvalidator.OneOf(
					string(safeplots.SellerPending), string(safeplots.SellerApproved),
					string(safeplots.SellerRejected), string(safeplots.SellerBanned),
				)},
				MarkdownDescription: "Keep sellers in this status only.",
			},
			"ids": schema.ListAttribute{
				Computed:            true,
				ElementType:         types.StringType,
				MarkdownDescription: "Seller IDs in API order.",
			},
			"sellers": schema.MapAttribute{
				Computed:            true,
				ElementType:         types.ObjectType{AttrTypes: sellerItemModel{}.AttributeTypes()},
				MarkdownDescription: "Sellers keyed by seller ID.",
			},
		},
	}
}

func (d *sellersDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	if !d.requireAdmin(&resp.Diagnostics, "Sellers") {
		return
	}
	ctx, cancel := withTimeout(ctx, d.providerTimeouts.Read)
	defer cancel()

	var data sellersDataSourceModel
	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}
	search := data.Search.ValueString()

	hooks := ListHooks[safeplots.Seller, sellerItemModel]{
		List: func(ctx context.Context) ([]safeplots.Seller, diag.Diagnostics) {
			var diags diag.Diagnostics
			items, rs, err := fetch(ctx, d.reads, func(ctx context.Context) ([]safeplots.Seller, *safeplots.Response, error) {
				return d.client.Admin.Sellers(ctx, search)
			})
			EnsureSuccessOrDiag(ctx, "list sellers", rs, err, &diags)
			return items, diags
		},
		KeyOf:     func(s safeplots.Seller) string { return s.ID },
		MapToOut:  mapSellerToItem,
		AttrTypes: sellerItemModel{}.AttributeTypes,
	}
	if !data.Status.IsNull() {
		want := safeplots.SellerStatus(data.Status.ValueString())
		hooks.Filter = func(_ context.Context, s safeplots.Seller) bool { return s.Status == want }
	}

	res, diags := DoListWithLimit(ctx, hooks, ListOptions{RespectContext: true})
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	ids, d1 := types.ListValueFrom(ctx, types.StringType, res.Keys)
	resp.Diagnostics.Append(d1...)
	m, d2 := types.MapValueFrom(ctx, types.ObjectType{AttrTypes: hooks.AttrTypes()}, res.Items)
	resp.Diagnostics.Append(d2...)
	if resp.Diagnostics.HasError() {
		return
	}
	data.IDs = ids
	data.Sellers = m
	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

// NewReportsDataSource returns the data source for safeplots_reports (admin).
func NewReportsDataSource() datasource.DataSource { return &reportsDataSource{} }

type reportsDataSource struct {
	ServiceClient
}

type reportsDataSourceModel struct {
	Search     types.String `tfsdk:"search"`
	Status     types.String `tfsdk:"status"`
	PropertyID types.String `tfsdk:"property_id"`
	IDs        types.List   `tfsdk:"ids"`
	Reports    types.Map    `tfsdk:"reports"`
}

func (d *reportsDataSource) Metadata(_ context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_reports"
}

func (d *reportsDataSource) Configure(_ context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
	if p, ok := providerFrom(req.ProviderData, "Data Source", &resp.Diagnostics); ok {
		d.configureFrom(p)
	}
}

func (d *reportsDataSource) Schema(_ context.Context, _ datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Lists property reports. Requires an admin account.",
		Attributes: map[string]schema.Attribute{
			"search": schema.StringAttribute{Optional: true, MarkdownDescription: "Match against description and listing title."},
			"status": schema.StringAttribute{
				Optional:            true,
				Validators:          []validator.String{stringvalidator.OneOf(safeplots.ReportStatuses...)},
				MarkdownDescription: "Keep reports in this status only.",
			},
			"property_id": schema.StringAttribute{Optional: true, MarkdownDescription: "Keep reports about this listing only."},
			"ids": schema.ListAttribute{
				Computed:            true,
				ElementType:         types.StringType,
				MarkdownDescription: "Report IDs, oldest first.",
			},
			"reports": schema.MapAttribute{
				Computed:            true,
				ElementType:         types.ObjectType{AttrTypes: reportItemModel{}.AttributeTypes()},
				MarkdownDescription: "Reports keyed by report ID.",
			},
		},
	}
}

func (d *reportsDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	if !d.requireAdmin(&resp.Diagnostics, "Reports") {
		return
	}
	ctx, cancel := withTimeout(ctx, d.providerTimeouts.Read)
	defer cancel()

	var data reportsDataSourceModel
	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}
	search := data.Search.ValueString()
	status := safeplots.ReportStatus(data.Status.ValueString())
	propertyID := data.PropertyID.ValueString()

	hooks := ListHooks[safeplots.PropertyReport, reportItemModel]{
		List: func(ctx context.Context) ([]safeplots.PropertyReport, diag.Diagnostics) {
			var diags diag.Diagnostics
			items, rs, err := fetch(ctx, d.reads, func(ctx context.Context) ([]safeplots.PropertyReport, *safeplots.Response, error) {
				return d.client.Admin.Reports(ctx, search)
			})
			EnsureSuccessOrDiag(ctx, "list reports", rs, err, &diags)
			return items, diags
		},
		Filter: func(_ context.Context, r safeplots.PropertyReport) bool {
			return (status == "" || r.Status == status) && (propertyID == "" || r.PropertyID == propertyID)
		},
		KeyOf:     func(r safeplots.PropertyReport) string { return r.ID },
		MapToOut:  mapReportToItem,
		AttrTypes: reportItemModel{}.AttributeTypes,
	}

	res, diags := DoListWithLimit(ctx, hooks, ListOptions{RespectContext: true})
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	ids, d1 := types.ListValueFrom(ctx, types.StringType, res.Keys)
	resp.Diagnostics.Append(d1...)
	m, d2 := types.MapValueFrom(ctx, types.ObjectType{AttrTypes: hooks.AttrTypes()}, res.Items)
	resp.Diagnostics.Append(d2...)
	if resp.Diagnostics.HasError() {
		return
	}
	data.IDs = ids
	data.Reports = m
	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}
