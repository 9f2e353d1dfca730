// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"

	"github.com/hashicorp/terraform-plugin-framework-validators/int64validator"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

var _ datasource.DataSource = (*propertyDataSource)(nil)
var _ datasource.DataSourceWithConfigure = (*propertyDataSource)(nil)
var _ datasource.DataSource = (*featuredPropertiesDataSource)(nil)
var _ datasource.DataSourceWithConfigure = (*featuredPropertiesDataSource)(nil)

// NewPropertyDataSource returns the data source for safeplots_property (lookup by ID).
func NewPropertyDataSource() datasource.DataSource { return &propertyDataSource{} }

type propertyDataSource struct {
	ServiceClient
}

type propertyDataSourceModel struct {
	ID        types.String `tfsdk:"id"`
	TrackView types.Bool   `tfsdk:"track_view"`

	Title          types.String  `tfsdk:"title"`
	Description    types.String  `tfsdk:"description"`
	Type           types.String  `tfsdk:"type"`
	TypeLabel      types.String  `tfsdk:"type_label"`
	Price          types.Float64 `tfsdk:"price"`
	PriceOnRequest types.Bool    `tfsdk:"price_on_request"`
	DisplayPrice   types.String  `tfsdk:"display_price"`
	Area           types.Float64 `tfsdk:"area"`
	AreaUnit       types.String  `tfsdk:"area_unit"`
	DisplayArea    types.String  `tfsdk:"display_area"`
	Address        types.String  `tfsdk:"address"`
	City           types.String  `tfsdk:"city"`
	State          types.String  `tfsdk:"state"`
	Pincode        types.String  `tfsdk:"pincode"`
	Latitude       types.Float64 `tfsdk:"latitude"`
	Longitude      types.Float64 `tfsdk:"longitude"`
	Images         types.List    `tfsdk:"images"`
	ImageURLs      types.List    `tfsdk:"image_urls"`
	Video          types.String  `tfsdk:"video"`
	Amenities      types.List    `tfsdk:"amenities"`
	Features       types.List    `tfsdk:"features"`
	Status         types.String  `tfsdk:"status"`
	IsVerified     types.Bool    `tfsdk:"is_verified"`
	SellerID       types.String  `tfsdk:"seller_id"`
	Views          types.Int64   `tfsdk:"views"`
	CreatedAt      types.String  `tfsdk:"created_at"`
}

func (d *propertyDataSource) Metadata(_ context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_property"
}

func (d *propertyDataSource) Configure(_ context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
	if p, ok := providerFrom(req.ProviderData, "Data Source", &resp.Diagnostics); ok {
		d.configureFrom(p)
	}
}

func (d *propertyDataSource) Schema(_ context.Context, _ datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	str := func(desc string) schema.StringAttribute { return schema.StringAttribute{Computed: true, MarkdownDescription: desc} }
	strList := func(desc string) schema.ListAttribute {
		return schema.ListAttribute{Computed: true, ElementType: types.StringType, MarkdownDescription: desc}
	}
	resp.Schema = schema.Schema{
		MarkdownDescription: "Reads one property listing.",
		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{Required: true, MarkdownDescription: "Listing identifier."},
			"track_view": schema.BoolAttribute{
				Optional:            true,
				MarkdownDescription: "Count this read as a listing view.",
			},
			"title":            str("Title."),
			"description":      str("Description."),
			"type":             str("Property type."),
			"type_label":       str("Human readable type."),
			"price":            schema.Float64Attribute{Computed: true, MarkdownDescription: "Price in rupees."},
			"price_on_request": schema.BoolAttribute{Computed: true, MarkdownDescription: "Whether the price is hidden."},
			"display_price":    str("Formatted price."),
			"area":             schema.Float64Attribute{Computed: true, MarkdownDescription: "Area."},
			"area_unit":        str("Area unit."),
			"display_area":     str("Area with unit label."),
			"address":          str("Street address."),
			"city":             str("City."),
			"state":            str("State."),
			"pincode":          str("PIN code."),
			"latitude":         schema.Float64Attribute{Computed: true, MarkdownDescription: "Latitude."},
			"longitude":        schema.Float64Attribute{Computed: true, MarkdownDescription: "Longitude."},
			"images":           strList("Image URLs as stored."),
			"image_urls":       strList("Image URLs with Google Drive share links turned into direct links."),
			"video":            str("Video URL."),
			"amenities":        strList("Amenities."),
			"features":         strList("Features."),
			"status":           str("Listing status."),
			"is_verified":      schema.BoolAttribute{Computed: true, MarkdownDescription: "Whether an admin verified the listing."},
			"seller_id":        str("Owning seller."),
			"views":            schema.Int64Attribute{Computed: true, MarkdownDescription: "View counter."},
			"created_at":       str("Creation timestamp."),
		},
	}
}

func (d *propertyDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	ctx, cancel := withTimeout(ctx, d.providerTimeouts.Read)
	defer cancel()

	var data propertyDataSourceModel
	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}
	id := data.ID.ValueString()

	p, rs, err := fetch(ctx, d.reads, func(ctx context.Context) (*safeplots.Property, *safeplots.Response, error) {
		return d.client.Properties.Get(ctx, id)
	})
	if !EnsureSuccessOrDiag(ctx, "read property", rs, err, &resp.Diagnostics) {
		return
	}

	if data.TrackView.ValueBool() {
		// View counting is best effort.
		if rs, err := d.client.Properties.TrackView(ctx, id); err != nil {
			tflog.Warn(ctx, "property view not recorded", map[string]interface{}{"property_id": id, "status": HTTPStatus(rs, err)})
		}
		d.tracker.TrackPropertyView(ctx, p.ID, p.Title)
	}

	resp.Diagnostics.Append(mapPropertyToDataSource(ctx, p, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}
	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

func mapPropertyToDataSource(ctx context.Context, p *safeplots.Property, st *propertyDataSourceModel) diag.Diagnostics {
	var diags diag.Diagnostics
	st.ID = types.StringValue(p.ID)
	st.Title = types.StringValue(p.Title)
	st.Description = stringOrNull(p.Description)
	st.Type = types.StringValue(string(p.Type))
	st.TypeLabel = types.StringValue(safeplots.PropertyTypeLabel(string(p.Type)))
	st.Price = types.Float64Value(p.Price)
	st.PriceOnRequest = types.BoolValue(p.PriceOnRequest)
	st.DisplayPrice = types.StringValue(safeplots.DisplayPrice(p))
	st.Area = types.Float64Value(p.Area)
	st.AreaUnit = stringOrNull(p.AreaUnit)
	st.DisplayArea = types.StringValue(safeplots.FormatArea(p.Area, p.AreaUnit))
	st.Address = stringOrNull(p.Location.Address)
	st.City = stringOrNull(p.Location.City)
	st.State = stringOrNull(p.Location.State)
	st.Pincode = stringOrNull(p.Location.Pincode)
	st.Latitude, st.Longitude = types.Float64Null(), types.Float64Null()
	if c := p.Location.Coordinates; c != nil {
		st.Latitude, st.Longitude = types.Float64Value(c.Lat), types.Float64Value(c.Lng)
	}
	st.Video = stringOrNull(p.Video)
	st.Status = types.StringValue(string(p.Status))
	st.IsVerified = types.BoolValue(p.IsVerified)
	st.SellerID = stringOrNull(p.SellerID)
	st.Views = types.Int64Value(int64(p.Views))
	st.CreatedAt = stringOrNull(p.CreatedAt)

	direct := make([]string, len(p.Images))
	for i, img := range p.Images {
		direct[i] = safeplots.ConvertGDriveURL(img)
	}
	for _, it := range []struct {
		dst *types.List
		src []string
	}{
		{&st.Images, p.Images},
		{&st.ImageURLs, direct},
		{&st.Amenities, p.Amenities},
		{&st.Features, p.Features},
	} {
		src := it.src
		if src == nil {
			src = []string{}
		}
		l, d := types.ListValueFrom(ctx, types.StringType, src)
		diags.Append(d...)
		*it.dst = l
	}
	return diags
}

// NewFeaturedPropertiesDataSource returns the data source for safeplots_featured_properties.
func NewFeaturedPropertiesDataSource() datasource.DataSource { return &featuredPropertiesDataSource{} }

type featuredPropertiesDataSource struct {
	ServiceClient
}

type featuredPropertiesDataSourceModel struct {
	Limit      types.Int64 `tfsdk:"limit"`
	Properties types.List  `tfsdk:"properties"`
}

func (d *featuredPropertiesDataSource) Metadata(_ context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_featured_properties"
}

func (d *featuredPropertiesDataSource) Configure(_ context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
	if p, ok := providerFrom(req.ProviderData, "Data Source", &resp.Diagnostics); ok {
		d.configureFrom(p)
	}
}

func (d *featuredPropertiesDataSource) Schema(_ context.Context, _ datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Lists the listings featured on the home page.",
		Attributes: map[string]schema.Attribute{
			"limit": schema.Int64Attribute{
				Optional:            true,
				Computed:            true,
				Validators:          []validator.Int64{int64validator.Between(1, maxPageSize)},
				MarkdownDescription: "Number of listings. Defaults to 6.",
			},
			"properties": schema.ListNestedAttribute{
				Computed:            true,
				NestedObject:        schema.NestedAttributeObject{Attributes: propertyItemAttributes()},
				MarkdownDescription: "Featured listings in display order.",
			},
		},
	}
}

func (d *featuredPropertiesDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	ctx, cancel := withTimeout(ctx, d.providerTimeouts.Read)
	defer cancel()

	var data featuredPropertiesDataSourceModel
	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}
	limit := safeplots.DefaultFeaturedLimit
	if !data.Limit.IsNull() {
		limit = int(data.Limit.ValueInt64())
	}

	res, diags := DoListWithLimit(ctx, ListHooks[safeplots.Property, propertyItemModel]{
		List: func(ctx context.Context) ([]safeplots.Property, diag.Diagnostics) {
			var diags diag.Diagnostics
			items, rs, err := fetch(ctx, d.reads, func(ctx context.Context) ([]safeplots.Property, *safeplots.Response, error) {
				return d.client.Properties.Featured(ctx, limit)
			})
			EnsureSuccessOrDiag(ctx, "list featured properties", rs, err, &diags)
			return items, diags
		},
		KeyOf:    func(p safeplots.Property) string { return p.ID },
		MapToOut: mapPropertyToItem,
	}, ListOptions{})
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	list, d2 := types.ListValueFrom(ctx, types.ObjectType{AttrTypes: propertyItemModel{}.AttributeTypes()}, res.Ordered())
	resp.Diagnostics.Append(d2...)
	if resp.Diagnostics.HasError() {
		return
	}
	data.Limit = types.Int64Value(int64(limit))
	data.Properties = list
	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}
