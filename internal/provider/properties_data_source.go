// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"

	"github.com/hashicorp/terraform-plugin-framework-validators/float64validator"
	"github.com/hashicorp/terraform-plugin-framework-validators/int64validator"
	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/safeplots/terraform-provider-safeplots/internal/pagination"
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

var _ datasource.DataSource = (*propertiesDataSource)(nil)
var _ datasource.DataSourceWithConfigure = (*propertiesDataSource)(nil)

const (
	propertiesWarnThreshold = 500
	propertiesMaxItems      = 2000
)

// NewPropertiesDataSource returns the data source for safeplots_properties (search with paging).
func NewPropertiesDataSource() datasource.DataSource { return &propertiesDataSource{} }

type propertiesDataSource struct {
	ServiceClient
}

type propertiesDataSourceModel struct {
	// Filters
	Search       types.String  `tfsdk:"search"`
	Type         types.String  `tfsdk:"type"`
	State        types.String  `tfsdk:"state"`
	City         types.String  `tfsdk:"city"`
	MinPrice     types.Float64 `tfsdk:"min_price"`
	MaxPrice     types.Float64 `tfsdk:"max_price"`
	Status       types.String  `tfsdk:"status"`
	Sort         types.String  `tfsdk:"sort"`
	VerifiedOnly types.Bool    `tfsdk:"verified_only"`

	// Paging
	Page     types.Int64 `tfsdk:"page"`
	Limit    types.Int64 `tfsdk:"limit"`
	FetchAll types.Bool  `tfsdk:"fetch_all"`

	// Outputs
	Properties  types.List  `tfsdk:"properties"`
	TotalCount  types.Int64 `tfsdk:"total_count"`
	TotalPages  types.Int64 `tfsdk:"total_pages"`
	HasMore     types.Bool  `tfsdk:"has_more"`
	HasPrevious types.Bool  `tfsdk:"has_previous"`
	PageNumbers types.List  `tfsdk:"page_numbers"`
}

func (d *propertiesDataSource) Metadata(_ context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_properties"
}

func (d *propertiesDataSource) Configure(_ context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
	if p, ok := providerFrom(req.ProviderData, "Data Source", &resp.Diagnostics); ok {
		d.configureFrom(p)
	}
}

func (d *propertiesDataSource) Schema(_ context.Context, _ datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Searches property listings. Returns one page by default, in the order the API sorted them; " +
			"set `fetch_all` to walk every page from `page` onwards.",
		Attributes: map[string]schema.Attribute{
			"search": schema.StringAttribute{Optional: true, MarkdownDescription: "Free-text search over title and location."},
			"type": schema.StringAttribute{
				Optional:            true,
				Validators:          []validator.String{stringvalidator.OneOf(safeplots.PropertyTypes...)},
				MarkdownDescription: "Property type.",
			},
			"state": schema.StringAttribute{
				Optional:            true,
				Validators:          []validator.String{stringvalidator.OneOf(safeplots.IndianStates...)},
				MarkdownDescription: "State or union territory.",
			},
			"city": schema.StringAttribute{Optional: true, MarkdownDescription: "City."},
			"min_price": schema.Float64Attribute{
				Optional:            true,
				Validators:          []validator.Float64{float64validator.AtLeast(0)},
				MarkdownDescription: "Minimum price in rupees.",
			},
			"max_price": schema.Float64Attribute{
				Optional:            true,
				Validators:          []validator.Float64{float64validator.AtLeast(0)},
				MarkdownDescription: "Maximum price in rupees.",
			},
			"status": schema.StringAttribute{
				Optional:            true,
				Validators:          []validator.String{stringvalidator.OneOf(safeplots.PropertyStatuses...)},
				MarkdownDescription: "Listing status. The public listing only returns approved listings unless the account may see others.",
			},
			"sort": schema.StringAttribute{
				Optional:            true,
				Validators:          []validator.String{stringvalidator.OneOf(safeplots.SortOrders...)},
				MarkdownDescription: "`newest`, `price-low`, `price-high` or `popular`.",
			},
			"verified_only": schema.BoolAttribute{Optional: true, MarkdownDescription: "Keep verified listings only."},
			"page": schema.Int64Attribute{
				Optional:            true,
				Computed:            true,
				Validators:          []validator.Int64{int64validator.AtLeast(1)},
				MarkdownDescription: "Page to fetch (1-based). After a `fetch_all` read this is the last page fetched.",
			},
			"limit": schema.Int64Attribute{
				Optional:            true,
				Computed:            true,
				Validators:          []validator.Int64{int64validator.Between(1, maxPageSize)},
				MarkdownDescription: "Page size. Defaults to the provider `page_size`.",
			},
			"fetch_all": schema.BoolAttribute{Optional: true, MarkdownDescription: "Follow pages until the listing is exhausted."},
			"properties": schema.ListNestedAttribute{
				Computed:            true,
				NestedObject:        schema.NestedAttributeObject{Attributes: propertyItemAttributes()},
				MarkdownDescription: "Matching listings.",
			},
			"total_count":  schema.Int64Attribute{Computed: true, MarkdownDescription: "Total matches reported by the API."},
			"total_pages":  schema.Int64Attribute{Computed: true, MarkdownDescription: "Number of pages at `limit`."},
			"has_more":     schema.BoolAttribute{Computed: true, MarkdownDescription: "Whether a page follows `page`."},
			"has_previous": schema.BoolAttribute{Computed: true, MarkdownDescription: "Whether a page precedes `page`."},
			"page_numbers": schema.ListAttribute{
				Computed:            true,
				ElementType:         types.StringType,
				MarkdownDescription: "Page links to render around `page`, with `ellipsis` marking gaps.",
			},
		},
	}
}

// propertyItemAttributes is the nested schema shared by listing data sources.
func propertyItemAttributes() map[string]schema.Attribute {
	str := func(desc string) schema.Attribute { return schema.StringAttribute{Computed: true, MarkdownDescription: desc} }
	return map[string]schema.Attribute{
		"id":            str("Listing identifier."),
		"title":         str("Title."),
		"type":          str("Property type."),
		"type_label":    str("Human readable type."),
		"price":         schema.Float64Attribute{Computed: true, MarkdownDescription: "Price in rupees."},
		"display_price": str("Formatted price."),
		"area":          schema.Float64Attribute{Computed: true, MarkdownDescription: "Area."},
		"area_unit":     str("Area unit."),
		"display_area":  str("Area with unit label."),
		"city":          str("City."),
		"state":         str("State."),
		"status":        str("Listing status."),
		"is_verified":   schema.BoolAttribute{Computed: true, MarkdownDescription: "Whether an admin verified the listing."},
		"seller_id":     str("Owning seller."),
		"thumbnail_url": str("Direct link to the first image."),
		"views":         schema.Int64Attribute{Computed: true, MarkdownDescription: "View counter."},
		"created_at":    str("Creation timestamp."),
	}
}

func (d *propertiesDataSource) listOptions(data *propertiesDataSourceModel) *safeplots.PropertyListOptions {
	return &safeplots.PropertyListOptions{
		Sort:     data.Sort.ValueString(),
		State:    data.State.ValueString(),
		City:     data.City.ValueString(),
		Type:     data.Type.ValueString(),
		MinPrice: data.MinPrice.ValueFloat64(),
		MaxPrice: data.MaxPrice.ValueFloat64(),
		Status:   data.Status.ValueString(),
		Search:   data.Search.ValueString(),
	}
}

func (d *propertiesDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	ctx, cancel := withTimeout(ctx, d.providerTimeouts.Read)
	defer cancel()

	var data propertiesDataSourceModel
	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	base := d.listOptions(&data)
	limit := d.pageSize
	if !data.Limit.IsNull() {
		limit = int(data.Limit.ValueInt64())
	}
	opts := ListOptions{
		StartPage:      int(data.Page.ValueInt64()),
		PageSize:       limit,
		MaxPages:       1,
		RespectContext: true,
	}
	if data.FetchAll.ValueBool() {
		opts.MaxPages = 0
		opts.WarnThreshold = propertiesWarnThreshold
		opts.MaxItems = propertiesMaxItems
	}

	hooks := ListHooks[safeplots.Property, propertyItemModel]{
		ListPage: func(ctx context.Context, params pagination.Params) ([]safeplots.Property, int, diag.Diagnostics) {
			var diags diag.Diagnostics
			o := *base
			o.Page, o.Limit = params.Page, params.Limit
			page, rs, err := fetch(ctx, d.reads, func(ctx context.Context) (*safeplots.Page[safeplots.Property], *safeplots.Response, error) {
				return d.client.Properties.List(ctx, &o)
			})
			if !EnsureSuccessOrDiagWithOptions(ctx, "list properties", rs, err, &diags, &EnsureSuccessOrDiagOptions{IncludeBodySnippet: true}) {
				return nil, 0, diags
			}
			return page.Items, page.Total, diags
		},
		KeyOf:     func(p safeplots.Property) string { return p.ID },
		MapToOut:  mapPropertyToItem,
		AttrTypes: propertyItemModel{}.AttributeTypes,
	}
	if data.VerifiedOnly.ValueBool() {
		hooks.Filter = func(_ context.Context, p safeplots.Property) bool { return p.IsVerified }
	}

	res, diags := DoListWithLimit(ctx, hooks, opts)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	d.tracker.TrackSearch(ctx, base.Search, map[string]any{
		"type":     base.Type,
		"state":    base.State,
		"city":     base.City,
		"minPrice": base.MinPrice,
		"maxPrice": base.MaxPrice,
		"sort":     base.Sort,
		"page":     res.Pager.Page(),
	})

	list, d2 := types.ListValueFrom(ctx, types.ObjectType{AttrTypes: propertyItemModel{}.AttributeTypes()}, res.Ordered())
	resp.Diagnostics.Append(d2...)
	pages, d3 := types.ListValueFrom(ctx, types.StringType, pagination.PageLabels(res.Pager.Page(), res.Pager.TotalPages(), pagination.DefaultMaxVisible))
	resp.Diagnostics.Append(d3...)
	if resp.Diagnostics.HasError() {
		return
	}

	data.Properties = list
	data.PageNumbers = pages
	data.Page = types.Int64Value(int64(res.Pager.Page()))
	data.Limit = types.Int64Value(int64(res.Pager.Limit()))
	data.TotalCount = types.Int64Value(int64(res.Pager.TotalCount()))
	data.TotalPages = types.Int64Value(int64(res.Pager.TotalPages()))
	data.HasMore = types.BoolValue(res.Pager.HasMore())
	data.HasPrevious = types.BoolValue(res.Pager.HasPrevious())
	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}
