// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"fmt"

	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringplanmodifier"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-log/tflog"
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

var _ resource.Resource = (*propertyModerationResource)(nil)
var _ resource.ResourceWithConfigure = (*propertyModerationResource)(nil)
var _ resource.ResourceWithImportState = (*propertyModerationResource)(nil)
var _ resource.ResourceWithValidateConfig = (*propertyModerationResource)(nil)

// NewPropertyModerationResource returns the resource for safeplots_property_moderation.
func NewPropertyModerationResource() resource.Resource { return &propertyModerationResource{} }

type propertyModerationResource struct {
	ServiceClient
}

func (r *propertyModerationResource) Metadata(_ context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_property_moderation"
}

func (r *propertyModerationResource) Configure(_ context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
	if p, ok := providerFrom(req.ProviderData, "Resource", &resp.Diagnostics); ok {
		r.configureFrom(p)
	}
}

func (r *propertyModerationResource) Schema(_ context.Context, _ resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Approves, rejects or suspends a property listing. Requires an admin account. " +
			"Destroying a suspension puts the listing back to `approved`; other decisions are left in place.",
		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Computed:            true,
				PlanModifiers:       []planmodifier.String{stringplanmodifier.UseStateForUnknown()},
				MarkdownDescription: "Same as `property_id`.",
			},
			"property_id": schema.StringAttribute{
				Required:            true,
				PlanModifiers:       []planmodifier.String{stringplanmodifier.RequiresReplace()},
				MarkdownDescription: "Listing to moderate.",
			},
			"action": schema.StringAttribute{
				Required:            true,
				Validators:          []validator.String{stringvalidator.OneOf(moderationActions...)},
				MarkdownDescription: "`approve`, `reject` or `suspend`.",
			},
			"reason": schema.StringAttribute{
				Optional:            true,
				Validators:          []validator.String{stringvalidator.LengthAtLeast(1)},
				MarkdownDescription: "Reason shown to the seller. Required for `reject` and `suspend`.",
			},
			"title":         schema.StringAttribute{Computed: true, MarkdownDescription: "Listing title."},
			"seller_id":     schema.StringAttribute{Computed: true, MarkdownDescription: "Seller that owns the listing."},
			"status":        schema.StringAttribute{Computed: true, MarkdownDescription: "Current listing status."},
			"is_verified":   schema.BoolAttribute{Computed: true, MarkdownDescription: "Whether the listing is verified."},
			"reject_reason": schema.StringAttribute{Computed: true, MarkdownDescription: "Reason stored on the listing."},
		},
	}
}

func (r *propertyModerationResource) ValidateConfig(ctx context.Context, req resource.ValidateConfigRequest, resp *resource.ValidateConfigResponse) {
	var data propertyModerationResourceModel
	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() || data.Action.IsUnknown() || data.Reason.IsUnknown() {
		return
	}
	action := data.Action.ValueString()
	switch {
	case action == actionApprove && !data.Reason.IsNull():
		resp.Diagnostics.AddAttributeError(path.Root("reason"), "Unexpected reason", "reason is not used when action is \"approve\".")
	case (action == actionReject || action == actionSuspend) && data.Reason.IsNull():
		resp.Diagnostics.AddAttributeError(path.Root("reason"), "Missing reason", fmt.Sprintf("Set reason when action is %q.", action))
	}
}

func (r *propertyModerationResource) moderate(ctx context.Context, d *moderationDecision) (*safeplots.Property, *safeplots.Response, error) {
	switch d.Action {
	case actionApprove:
		return r.client.Admin.ApproveProperty(ctx, d.PropertyID)
	case actionReject:
		return r.client.Admin.RejectProperty(ctx, d.PropertyID, d.Reason)
	case actionSuspend:
		return r.client.Admin.SuspendProperty(ctx, d.PropertyID, d.Reason)
	}
	return nil, nil, fmt.Errorf("unknown moderation action %q", d.Action)
}

func (r *propertyModerationResource) remoderate(ctx context.Context, _ string, d *moderationDecision) (*safeplots.Property, *safeplots.Response, error) {
	return r.moderate(ctx, d)
}

func (r *propertyModerationResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	if !r.requireAdmin(&resp.Diagnostics, "Property moderation") {
		return
	}
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Create)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoCreate(
		ctx,
		func(ctx context.Context, dst *propertyModerationResourceModel) diag.Diagnostics {
			return req.Plan.Get(ctx, dst)
		},
		func(ctx context.Context, src *propertyModerationResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *propertyModerationResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoRead(
		ctx,
		func(ctx context.Context, dst *propertyModerationResourceModel) diag.Diagnostics {
			return req.State.Get(ctx, dst)
		},
		func(ctx context.Context, src *propertyModerationResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		func(ctx context.Context) { resp.State.RemoveResource(ctx) },
		ensureWith(&resp.Diagnostics),
		HTTPStatus,
	)
	resp.Diagnostics.Append(diags...)
}

func (r *propertyModerationResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	if !r.requireAdmin(&resp.Diagnostics, "Property moderation") {
		return
	}
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Update)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoUpdate(
		ctx,
		func(ctx context.Context, dst *propertyModerationResourceModel) diag.Diagnostics {
			return req.Plan.Get(ctx, dst)
		},
		func(ctx context.Context, src *propertyModerationResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

// Delete lifts a suspension. Approvals and rejections stay in place.
func (r *propertyModerationResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Delete)
	defer cancel()

	var st propertyModerationResourceModel
	resp.Diagnostics.Append(req.State.Get(ctx, &st)...)
	if resp.Diagnostics.HasError() {
		return
	}
	if st.Action.ValueString() != actionSuspend {
		tflog.Info(ctx, "moderation decision kept; removing from state only", map[string]interface{}{"property_id": st.ID.ValueString()})
		return
	}

	hooks := r.hooks()
	hooks.APIDelete = func(ctx context.Context, id string) (*safeplots.Response, error) {
		_, rs, err := r.client.Admin.UnsuspendProperty(ctx, id)
		return rs, err
	}
	hooks.DeletedMessage = "Property unsuspended."
	diags := NewCRUDRunner(hooks).DoDelete(
		ctx,
		func(_ context.Context, dst *propertyModerationResourceModel) diag.Diagnostics {
			*dst = st
			return nil
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

// ImportState accepts a property ID.
func (r *propertyModerationResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoImport(
		ctx,
		req.ID,
		func(ctx context.Context, src *propertyModerationResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *propertyModerationResource) hooks() CRUDHooks[propertyModerationResourceModel, *moderationDecision, *safeplots.Property] {
	return CRUDHooks[propertyModerationResourceModel, *moderationDecision, *safeplots.Property]{
		BuildPayload: buildModerationDecision,
		APICreate:    r.moderate,
		APIRead:      r.client.Admin.Property,
		APIUpdate:    r.remoderate,
		ExtractID:    func(st *propertyModerationResourceModel) string { return st.ID.ValueString() },
		MapToState:   mapPropertyToModeration,

		TreatDelete404AsSuccess: true,
		Reads:                   r.reads,

		CreatedMessage: "Property moderated.",
		UpdatedMessage: "Property moderation updated.",
	}
}
