// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"

	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringplanmodifier"
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

var _ resource.Resource = (*savedPropertyResource)(nil)
var _ resource.ResourceWithConfigure = (*savedPropertyResource)(nil)
var _ resource.ResourceWithImportState = (*savedPropertyResource)(nil)

// NewSavedPropertyResource returns the resource for safeplots_saved_property.
func NewSavedPropertyResource() resource.Resource { return &savedPropertyResource{} }

type savedPropertyResource struct {
	ServiceClient
}

func (r *savedPropertyResource) Metadata(_ context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_saved_property"
}

func (r *savedPropertyResource) Configure(_ context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
	if p, ok := providerFrom(req.ProviderData, "Resource", &resp.Diagnostics); ok {
		r.configureFrom(p)
	}
}

func (r *savedPropertyResource) Schema(_ context.Context, _ resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Adds a listing to the authenticated user's saved properties.",
		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Computed:            true,
				PlanModifiers:       []planmodifier.String{stringplanmodifier.UseStateForUnknown()},
				MarkdownDescription: "Same as `property_id`.",
			},
			"property_id": schema.StringAttribute{
				Required:            true,
				PlanModifiers:       []planmodifier.String{stringplanmodifier.RequiresReplace()},
				MarkdownDescription: "Listing to save.",
			},
			"title":         schema.StringAttribute{Computed: true, MarkdownDescription: "Listing title."},
			"display_price": schema.StringAttribute{Computed: true, MarkdownDescription: "Formatted price."},
			"city":          schema.StringAttribute{Computed: true, MarkdownDescription: "Listing city."},
			"status":        schema.StringAttribute{Computed: true, MarkdownDescription: "Listing status."},
		},
	}
}

func (r *savedPropertyResource) save(ctx context.Context, in *savedPropertyRequest) (*safeplots.Property, *safeplots.Response, error) {
	rs, err := r.client.Users.SaveProperty(ctx, in.PropertyID)
	if err != nil {
		return nil, rs, err
	}
	r.tracker.TrackPropertySaved(ctx, in.PropertyID)
	return &safeplots.Property{ID: in.PropertyID}, rs, nil
}

// describe fills in the listing after a save, which only echoes the ID.
func (r *savedPropertyResource) describe(ctx context.Context, api *safeplots.Property, _ *savedPropertyResourceModel) (*safeplots.Property, *safeplots.Response, error) {
	return fetch(ctx, r.reads, func(ctx context.Context) (*safeplots.Property, *safeplots.Response, error) {
		return r.readSaved(ctx, api.ID)
	})
}

func (r *savedPropertyResource) readSaved(ctx context.Context, id string) (*safeplots.Property, *safeplots.Response, error) {
	saved, rs, err := r.client.Users.SavedProperties(ctx)
	if err != nil {
		return nil, rs, err
	}
	for i := range saved {
		if saved[i].ID == id {
			return &saved[i], rs, nil
		}
	}
	return nil, rs, notFound("saved property", id)
}

func (r *savedPropertyResource) refresh(ctx context.Context, id string, _ *savedPropertyRequest) (*safeplots.Property, *safeplots.Response, error) {
	return r.readSaved(ctx, id)
}

func (r *savedPropertyResource) unsave(ctx context.Context, id string) (*safeplots.Response, error) {
	rs, err := r.client.Users.UnsaveProperty(ctx, id)
	if err == nil {
		r.tracker.TrackPropertyUnsaved(ctx, id)
	}
	return rs, err
}

func (r *savedPropertyResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Create)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoCreate(
		ctx,
		func(ctx context.Context, dst *savedPropertyResourceModel) diag.Diagnostics {
			return req.Plan.Get(ctx, dst)
		},
		func(ctx context.Context, src *savedPropertyResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *savedPropertyResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoRead(
		ctx,
		func(ctx context.Context, dst *savedPropertyResourceModel) diag.Diagnostics {
			return req.State.Get(ctx, dst)
		},
		func(ctx context.Context, src *savedPropertyResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		func(ctx context.Context) { resp.State.RemoveResource(ctx) },
		ensureWith(&resp.Diagnostics),
		HTTPStatus,
	)
	resp.Diagnostics.Append(diags...)
}

func (r *savedPropertyResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Update)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoUpdate(
		ctx,
		func(ctx context.Context, dst *savedPropertyResourceModel) diag.Diagnostics {
			return req.Plan.Get(ctx, dst)
		},
		func(ctx context.Context, src *savedPropertyResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *savedPropertyResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Delete)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoDelete(
		ctx,
		func(ctx context.Context, dst *savedPropertyResourceModel) diag.Diagnostics {
			return req.State.Get(ctx, dst)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

// ImportState accepts the ID of a saved listing.
func (r *savedPropertyResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoImport(
		ctx,
		req.ID,
		func(ctx context.Context, src *savedPropertyResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *savedPropertyResource) hooks() CRUDHooks[savedPropertyResourceModel, *savedPropertyRequest, *safeplots.Property] {
	return CRUDHooks[savedPropertyResourceModel, *savedPropertyRequest, *safeplots.Property]{
		BuildPayload: buildSavedProperty,
		APICreate:    r.save,
		APIRead:      r.readSaved,
		APIUpdate:    r.refresh,
		APIDelete:    r.unsave,
		ExtractID:    func(st *savedPropertyResourceModel) string { return st.ID.ValueString() },
		MapToState:   mapPropertyToSaved,
		PostCreate:   r.describe,

		TreatDelete404AsSuccess: true,
		Reads:                   r.reads,

		CreatedMessage: "Property saved.",
		DeletedMessage: "Property removed from saved.",
	}
}
