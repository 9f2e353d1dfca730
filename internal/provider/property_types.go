// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"

	"github.com/hashicorp/terraform-plugin-framework/attr"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

// propertyResourceModel models the Terraform schema/state for safeplots_property.
type propertyResourceModel struct {
	ID             types.String  `tfsdk:"id"`
	Title          types.String  `tfsdk:"title"`
	Description    types.String  `tfsdk:"description"`
	Type           types.String  `tfsdk:"type"`
	Price          types.Float64 `tfsdk:"price"`
	PriceOnRequest types.Bool    `tfsdk:"price_on_request"`
	Area           types.Float64 `tfsdk:"area"`
	AreaUnit       types.String  `tfsdk:"area_unit"`
	Address        types.String  `tfsdk:"address"`
	City           types.String  `tfsdk:"city"`
	State          types.String  `tfsdk:"state"`
	Pincode        types.String  `tfsdk:"pincode"`
	Latitude       types.Float64 `tfsdk:"latitude"`
	Longitude      types.Float64 `tfsdk:"longitude"`
	Images         types.List    `tfsdk:"images"`
	Video          types.String  `tfsdk:"video"`
	Amenities      types.List    `tfsdk:"amenities"`
	Features       types.List    `tfsdk:"features"`
	Sold           types.Bool    `tfsdk:"sold"`

	Status       types.String `tfsdk:"status"`
	SellerID     types.String `tfsdk:"seller_id"`
	IsVerified   types.Bool   `tfsdk:"is_verified"`
	Views        types.Int64  `tfsdk:"views"`
	CreatedAt    types.String `tfsdk:"created_at"`
	DisplayPrice types.String `tfsdk:"display_price"`
	DisplayArea  types.String `tfsdk:"display_area"`
	TypeLabel    types.String `tfsdk:"type_label"`
	ThumbnailURL types.String `tfsdk:"thumbnail_url"`
	RejectReason types.String `tfsdk:"reject_reason"`
}

// buildPropertyPayload converts the planned state into the create/update body.
func buildPropertyPayload(ctx context.Context, st *propertyResourceModel) (*safeplots.PropertyPayload, diag.Diagnostics) {
	var diags diag.Diagnostics
	p := &safeplots.PropertyPayload{
		Title:          st.Title.ValueString(),
		Description:    st.Description.ValueString(),
		Type:           safeplots.PropertyType(st.Type.ValueString()),
		Price:          st.Price.ValueFloat64(),
		PriceOnRequest: st.PriceOnRequest.ValueBool(),
		Area:           st.Area.ValueFloat64(),
		AreaUnit:       st.AreaUnit.ValueString(),
		Location: safeplots.Location{
			Address: st.Address.ValueString(),
			City:    st.City.ValueString(),
			State:   st.State.ValueString(),
			Pincode: st.Pincode.ValueString(),
		},
		Video:     st.Video.ValueString(),
		Images:    []string{},
		Amenities: []string{},
		Features:  []string{},
	}
	if !st.Latitude.IsNull() && !st.Longitude.IsNull() {
		p.Location.Coordinates = &safeplots.Coordinates{Lat: st.Latitude.ValueFloat64(), Lng: st.Longitude.ValueFloat64()}
	}
	lists := []struct {
		attr string
		l    types.List
		dst  *[]string
	}{
		{"images", st.Images, &p.Images},
		{"amenities", st.Amenities, &p.Amenities},
		{"features", st.Features, &p.Features},
	}
	for _, it := range lists {
		vals, _ := getKnownStrings(ctx, it.l, it.attr, &diags)
		if vals != nil {
			*it.dst = vals
		}
	}
	return p, diags
}

// mapPropertyToModel maps an API property into the resource state. Lists
// left unset in configuration stay null when the API returns none.
func mapPropertyToModel(ctx context.Context, p *safeplots.Property, st *propertyResourceModel) diag.Diagnostics {
	var diags diag.Diagnostics
	st.ID = types.StringValue(p.ID)
	st.Title = types.StringValue(p.Title)
	st.Description = stringOrNull(p.Description)
	st.Type = types.StringValue(string(p.Type))
	st.Price = types.Float64Value(p.Price)
	st.PriceOnRequest = types.BoolValue(p.PriceOnRequest)
	st.Area = types.Float64Value(p.Area)
	st.AreaUnit = types.StringValue(p.AreaUnit)
	st.Address = stringOrNull(p.Location.Address)
	st.City = types.StringValue(p.Location.City)
	st.State = types.StringValue(p.Location.State)
	st.Pincode = stringOrNull(p.Location.Pincode)
	if c := p.Location.Coordinates; c != nil {
		st.Latitude = types.Float64Value(c.Lat)
		st.Longitude = types.Float64Value(c.Lng)
	} else {
		st.Latitude = types.Float64Null()
		st.Longitude = types.Float64Null()
	}
	st.Video = stringOrNull(p.Video)

	var d diag.Diagnostics
	st.Images, d = stringsOrNull(ctx, p.Images, st.Images)
	diags.Append(d...)
	st.Amenities, d = stringsOrNull(ctx, p.Amenities, st.Amenities)
	diags.Append(d...)
	st.Features, d = stringsOrNull(ctx, p.Features, st.Features)
	diags.Append(d...)

	st.Sold = types.BoolValue(p.Status == safeplots.PropertySold)
	st.Status = types.StringValue(string(p.Status))
	st.SellerID = stringOrNull(p.SellerID)
	st.IsVerified = types.BoolValue(p.IsVerified)
	st.Views = types.Int64Value(int64(p.Views))
	st.CreatedAt = stringOrNull(p.CreatedAt)
	st.DisplayPrice = types.StringValue(safeplots.DisplayPrice(p))
	st.DisplayArea = types.StringValue(safeplots.FormatArea(p.Area, p.AreaUnit))
	st.TypeLabel = types.StringValue(safeplots.PropertyTypeLabel(string(p.Type)))
	st.ThumbnailURL = types.StringNull()
	if len(p.Images) > 0 {
		st.ThumbnailURL = types.StringValue(safeplots.ConvertGDriveURL(p.Images[0]))
	}
	st.RejectReason = stringOrNull(p.RejectReason)
	return diags
}

// propertyItemModel is one entry of a property listing data source.
type propertyItemModel struct {
	ID           types.String  `tfsdk:"id"`
	Title        types.String  `tfsdk:"title"`
	Type         types.String  `tfsdk:"type"`
	TypeLabel    types.String  `tfsdk:"type_label"`
	Price        types.Float64 `tfsdk:"price"`
	DisplayPrice types.String  `tfsdk:"display_price"`
	Area         types.Float64 `tfsdk:"area"`
	AreaUnit     types.String  `tfsdk:"area_unit"`
	DisplayArea  types.String  `tfsdk:"display_area"`
	City         types.String  `tfsdk:"city"`
	State        types.String  `tfsdk:"state"`
	Status       types.String  `tfsdk:"status"`
	IsVerified   types.Bool    `tfsdk:"is_verified"`
	SellerID     types.String  `tfsdk:"seller_id"`
	ThumbnailURL types.String  `tfsdk:"thumbnail_url"`
	Views        types.Int64   `tfsdk:"views"`
	CreatedAt    types.String  `tfsdk:"created_at"`
}

func (propertyItemModel) AttributeTypes() map[string]attr.Type {
	return map[string]attr.Type{
		"id":            types.StringType,
		"title":         types.StringType,
		"type":          types.StringType,
		"type_label":    types.StringType,
		"price":         types.Float64Type,
		"display_price": types.StringType,
		"area":          types.Float64Type,
		"area_unit":     types.StringType,
		"display_area":  types.StringType,
		"city":          types.StringType,
		"state":         types.StringType,
		"status":        types.StringType,
		"is_verified":   types.BoolType,
		"seller_id":     types.StringType,
		"thumbnail_url": types.StringType,
		"views":         types.Int64Type,
		"created_at":    types.StringType,
	}
}

func mapPropertyToItem(_ context.Context, p safeplots.Property) (propertyItemModel, diag.Diagnostics) {
	item := propertyItemModel{
		ID:           types.StringValue(p.ID),
		Title:        types.StringValue(p.Title),
		Type:         types.StringValue(string(p.Type)),
		TypeLabel:    types.StringValue(safeplots.PropertyTypeLabel(string(p.Type))),
		Price:        types.Float64Value(p.Price),
		DisplayPrice: types.StringValue(safeplots.DisplayPrice(&p)),
		Area:         types.Float64Value(p.Area),
		AreaUnit:     stringOrNull(p.AreaUnit),
		DisplayArea:  types.StringValue(safeplots.FormatArea(p.Area, p.AreaUnit)),
		City:         stringOrNull(p.Location.City),
		State:        stringOrNull(p.Location.State),
		Status:       types.StringValue(string(p.Status)),
		IsVerified:   types.BoolValue(p.IsVerified),
		SellerID:     stringOrNull(p.SellerID),
		ThumbnailURL: types.StringNull(),
		Views:        types.Int64Value(int64(p.Views)),
		CreatedAt:    stringOrNull(p.CreatedAt),
	}
	if len(p.Images) > 0 {
		item.ThumbnailURL = types.StringValue(safeplots.ConvertGDriveURL(p.Images[0]))
	}
	return item, nil
}
