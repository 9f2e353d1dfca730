// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"fmt"

	"github.com/hashicorp/terraform-plugin-framework-validators/float64validator"
	"github.com/hashicorp/terraform-plugin-framework-validators/listvalidator"
	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/booldefault"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringplanmodifier"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

var _ resource.Resource = (*propertyResource)(nil)
var _ resource.ResourceWithConfigure = (*propertyResource)(nil)
var _ resource.ResourceWithImportState = (*propertyResource)(nil)
var _ resource.ResourceWithValidateConfig = (*propertyResource)(nil)

// NewPropertyResource returns the Terraform resource implementation for safeplots_property.
func NewPropertyResource() resource.Resource { return &propertyResource{} }

type propertyResource struct {
	ServiceClient
}

func (r *propertyResource) Metadata(_ context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_property"
}

func (r *propertyResource) Configure(_ context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
	if p, ok := providerFrom(req.ProviderData, "Resource", &resp.Diagnostics); ok {
		r.configureFrom(p)
	}
}

func (r *propertyResource) Schema(_ context.Context, _ resource.SchemaRequest, resp *resource.SchemaResponse) {
	stringList := func(desc string) schema.ListAttribute {
		return schema.ListAttribute{
			ElementType:         types.StringType,
			Optional:            true,
			MarkdownDescription: desc,
			Validators: []validator.List{
				listvalidator.UniqueValues(),
				listvalidator.ValueStringsAre(stringvalidator.LengthAtLeast(1)),
			},
		}
	}
	computedString := func(desc string) schema.StringAttribute {
		return schema.StringAttribute{Computed: true, MarkdownDescription: desc}
	}
	resp.Schema = schema.Schema{
		MarkdownDescription: "Manages a property listing owned by the authenticated seller. New listings start in `pending` until an admin approves them.",
		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Computed: true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
				MarkdownDescription: "The listing identifier.",
			},
			"title": schema.StringAttribute{
				Required:            true,
				MarkdownDescription: "Listing title.",
				Validators:          []validator.String{stringvalidator.LengthAtLeast(1)},
			},
			"description": schema.StringAttribute{
				Optional:            true,
				Validators:          []validator.String{stringvalidator.LengthAtLeast(1)},
				MarkdownDescription: "Free-form description.",
			},
			"type": schema.StringAttribute{
				Required:            true,
				MarkdownDescription: "Property type. One of `plot`, `house`, `flat`, `villa`, `farmland`.",
				Validators:          []validator.String{stringvalidator.OneOf(safeplots.PropertyTypes...)},
			},
			"price": schema.Float64Attribute{
				Required:            true,
				MarkdownDescription: "Asking price in rupees.",
				Validators:          []validator.Float64{float64validator.AtLeast(0)},
			},
			"price_on_request": schema.BoolAttribute{
				Optional:            true,
				Computed:            true,
				Default:             booldefault.StaticBool(false),
				MarkdownDescription: "Hide the price and show \"Price on Request\" instead.",
			},
			"area": schema.Float64Attribute{
				Required:            true,
				MarkdownDescription: "Area in `area_unit`.",
				Validators:          []validator.Float64{float64validator.AtLeast(0)},
			},
			"area_unit": schema.StringAttribute{
				Required:            true,
				MarkdownDescription: "Unit of `area`. One of `sqft`, `sqm`, `acre`, `gunta`, `cent`.",
				Validators:          []validator.String{stringvalidator.OneOf(safeplots.AreaUnits...)},
			},
			"address": schema.StringAttribute{
				Optional:            true,
				Validators:          []validator.String{stringvalidator.LengthAtLeast(1)},
				MarkdownDescription: "Street address.",
			},
			"city": schema.StringAttribute{
				Required:            true,
				MarkdownDescription: "City.",
			},
			"state": schema.StringAttribute{
				Required:            true,
				MarkdownDescription: "Indian state or union territory.",
				Validators:          []validator.String{stringvalidator.OneOf(safeplots.IndianStates...)},
			},
			"pincode": schema.StringAttribute{
				Optional:            true,
				MarkdownDescription: "Six digit PIN code.",
				Validators:          []validator.String{stringvalidator.LengthBetween(6, 6)},
			},
			"latitude": schema.Float64Attribute{
				Optional:            true,
				MarkdownDescription: "Latitude of the plot. Requires `longitude`.",
				Validators: []validator.Float64{
					float64validator.Between(-90, 90),
					float64validator.AlsoRequires(path.MatchRoot("longitude")),
				},
			},
			"longitude": schema.Float64Attribute{
				Optional:            true,
				MarkdownDescription: "Longitude of the plot. Requires `latitude`.",
				Validators: []validator.Float64{
					float64validator.Between(-180, 180),
					float64validator.AlsoRequires(path.MatchRoot("latitude")),
				},
			},
			"images":    stringList("Image URLs. Google Drive share links are accepted."),
			"video":     schema.StringAttribute{Optional: true, MarkdownDescription: "Video URL."},
			"amenities": stringList("Amenities, e.g. `Water Supply`."),
			"features":  stringList("Highlighted features."),
			"sold": schema.BoolAttribute{
				Optional:            true,
				Computed:            true,
				Default:             booldefault.StaticBool(false),
				MarkdownDescription: "Mark the listing as sold. A sold listing cannot be relisted.",
			},
			"status": computedString("Moderation status: `pending`, `approved`, `rejected`, `sold` or `suspended`."),
			"seller_id": schema.StringAttribute{
				Computed: true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
				MarkdownDescription: "Seller that owns the listing.",
			},
			"is_verified": schema.BoolAttribute{Computed: true, MarkdownDescription: "Whether an admin verified the listing."},
			"views":       schema.Int64Attribute{Computed: true, MarkdownDescription: "View counter."},
			"created_at": schema.StringAttribute{
				Computed: true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
				MarkdownDescription: "Creation timestamp (RFC 3339).",
			},
			"display_price": computedString("Price formatted in rupees with Lakh/Cr units, or `Price on Request`."),
			"display_area":  computedString("Area with its unit label, e.g. `2,400 sq.ft`."),
			"type_label":    computedString("Human readable property type."),
			"thumbnail_url": computedString("Direct link to the first image."),
			"reject_reason": computedString("Reason given when the listing was rejected or suspended."),
		},
	}
}

func (r *propertyResource) ValidateConfig(ctx context.Context, req resource.ValidateConfigRequest, resp *resource.ValidateConfigResponse) {
	var data propertyResourceModel
	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}
	if data.PriceOnRequest.ValueBool() || data.Price.IsUnknown() || data.Price.IsNull() {
		return
	}
	if data.Price.ValueFloat64() == 0 {
		resp.Diagnostics.AddAttributeError(path.Root("price"), "Missing price", "Set a price greater than 0 or set price_on_request = true.")
	}
}

func (r *propertyResource) getProperty(ctx context.Context, id string) (*safeplots.Property, *safeplots.Response, error) {
	return r.client.Properties.Get(ctx, id)
}

func (r *propertyResource) deleteProperty(ctx context.Context, id string) (*safeplots.Response, error) {
	return r.client.Properties.Delete(ctx, id)
}

// markSold applies the sold flag after a write. Sellers cannot undo a sale.
func (r *propertyResource) markSold(ctx context.Context, api *safeplots.Property, st *propertyResourceModel) (*safeplots.Property, *safeplots.Response, error) {
	sold := api.Status == safeplots.PropertySold
	switch {
	case st.Sold.ValueBool() && !sold:
		return r.client.Properties.SetStatus(ctx, api.ID, safeplots.PropertySold)
	case !st.Sold.ValueBool() && sold:
		return nil, nil, fmt.Errorf("listing %s is sold and cannot be relisted; set sold = true", api.ID)
	}
	return api, nil, nil
}

func (r *propertyResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Create)
	defer cancel()

	runner := NewCRUDRunner(r.hooks())
	diags := runner.DoCreate(
		ctx,
		func(ctx context.Context, dst *propertyResourceModel) diag.Diagnostics {
			return req.Plan.Get(ctx, dst)
		},
		func(ctx context.Context, src *propertyResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *propertyResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	runner := NewCRUDRunner(r.hooks())
	diags := runner.DoRead(
		ctx,
		func(ctx context.Context, dst *propertyResourceModel) diag.Diagnostics {
			return req.State.Get(ctx, dst)
		},
		func(ctx context.Context, src *propertyResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		func(ctx context.Context) { resp.State.RemoveResource(ctx) },
		ensureWith(&resp.Diagnostics),
		HTTPStatus,
	)
	resp.Diagnostics.Append(diags...)
}

func (r *propertyResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Update)
	defer cancel()

	runner := NewCRUDRunner(r.hooks())
	diags := runner.DoUpdate(
		ctx,
		func(ctx context.Context, dst *propertyResourceModel) diag.Diagnostics {
			return req.Plan.Get(ctx, dst)
		},
		func(ctx context.Context, src *propertyResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *propertyResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Delete)
	defer cancel()

	runner := NewCRUDRunner(r.hooks())
	diags := runner.DoDelete(
		ctx,
		func(ctx context.Context, dst *propertyResourceModel) diag.Diagnostics {
			return req.State.Get(ctx, dst)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *propertyResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	runner := NewCRUDRunner(r.hooks())
	diags := runner.DoImport(
		ctx,
		req.ID,
		func(ctx context.Context, src *propertyResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

// hooks returns the CRUD hooks for the generic runner.
func (r *propertyResource) hooks() CRUDHooks[propertyResourceModel, *safeplots.PropertyPayload, *safeplots.Property] {
	return CRUDHooks[propertyResourceModel, *safeplots.PropertyPayload, *safeplots.Property]{
		BuildPayload: buildPropertyPayload,
		APICreate:    r.client.Properties.Create,
		APIRead:      r.getProperty,
		APIUpdate:    r.client.Properties.Update,
		APIDelete:    r.deleteProperty,
		ExtractID:    func(st *propertyResourceModel) string { return st.ID.ValueString() },
		MapToState:   mapPropertyToModel,
		PostCreate:   r.markSold,
		PostUpdate:   r.markSold,

		TreatDelete404AsSuccess: true,
		Reads:                   r.reads,

		CreatedMessage: "Property listed successfully. It will be visible after admin approval.",
		UpdatedMessage: "Property updated successfully.",
		DeletedMessage: "Property deleted successfully.",
	}
}
