// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"

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

var _ resource.Resource = (*sellerVerificationResource)(nil)
var _ resource.ResourceWithConfigure = (*sellerVerificationResource)(nil)
var _ resource.ResourceWithImportState = (*sellerVerificationResource)(nil)
var _ resource.ResourceWithValidateConfig = (*sellerVerificationResource)(nil)

// NewSellerVerificationResource returns the resource for safeplots_seller_verification.
func NewSellerVerificationResource() resource.Resource { return &sellerVerificationResource{} }

type sellerVerificationResource struct {
	ServiceClient
}

func (r *sellerVerificationResource) Metadata(_ context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_seller_verification"
}

func (r *sellerVerificationResource) Configure(_ context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
	if p, ok := providerFrom(req.ProviderData, "Resource", &resp.Diagnostics); ok {
		r.configureFrom(p)
	}
}

func (r *sellerVerificationResource) Schema(_ context.Context, _ resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Approves or rejects a seller application. Requires an admin account. " +
			"Approving promotes the applicant to the seller role. Destroying the resource leaves the decision in place.",
		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Computed:            true,
				PlanModifiers:       []planmodifier.String{stringplanmodifier.UseStateForUnknown()},
				MarkdownDescription: "Same as `seller_id`.",
			},
			"seller_id": schema.StringAttribute{
				Required:            true,
				PlanModifiers:       []planmodifier.String{stringplanmodifier.RequiresReplace()},
				MarkdownDescription: "Seller application to decide on.",
			},
			"decision": schema.StringAttribute{
				Required:            true,
				Validators:          []validator.String{stringvalidator.OneOf(sellerDecisions...)},
				MarkdownDescription: "`approved` or `rejected`.",
			},
			"reason": schema.StringAttribute{
				Optional:            true,
				Validators:          []validator.String{stringvalidator.LengthAtLeast(1)},
				MarkdownDescription: "Rejection reason shown to the applicant. Required when `decision` is `rejected`.",
			},
			"name":        schema.StringAttribute{Computed: true, MarkdownDescription: "Applicant name."},
			"user_id":     schema.StringAttribute{Computed: true, MarkdownDescription: "Applicant account."},
			"status":      schema.StringAttribute{Computed: true, MarkdownDescription: "Current seller status."},
			"is_verified": schema.BoolAttribute{Computed: true, MarkdownDescription: "Whether the seller is verified."},
		},
	}
}

func (r *sellerVerificationResource) ValidateConfig(ctx context.Context, req resource.ValidateConfigRequest, resp *resource.ValidateConfigResponse) {
	var data sellerVerificationResourceModel
	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() || data.Decision.IsUnknown() || data.Reason.IsUnknown() {
		return
	}
	switch data.Decision.ValueString() {
	case decisionRejected:
		if data.Reason.IsNull() {
			resp.Diagnostics.AddAttributeError(path.Root("reason"), "Missing rejection reason", "Set reason when decision is \"rejected\".")
		}
	case decisionApproved:
		if !data.Reason.IsNull() {
			resp.Diagnostics.AddAttributeError(path.Root("reason"), "Unexpected reason", "reason is only used when decision is \"rejected\".")
		}
	}
}

func (r *sellerVerificationResource) decide(ctx context.Context, d *sellerDecision) (*safeplots.Seller, *safeplots.Response, error) {
	if d.Approve {
		return r.client.Admin.ApproveSeller(ctx, d.SellerID)
	}
	return r.client.Admin.RejectSeller(ctx, d.SellerID, d.Reason)
}

func (r *sellerVerificationResource) redecide(ctx context.Context, _ string, d *sellerDecision) (*safeplots.Seller, *safeplots.Response, error) {
	return r.decide(ctx, d)
}

func (r *sellerVerificationResource) forget(ctx context.Context, id string) (*safeplots.Response, error) {
	tflog.Info(ctx, "seller decision kept; removing from state only", map[string]interface{}{"seller_id": id})
	return nil, nil
}

func (r *sellerVerificationResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	if !r.requireAdmin(&resp.Diagnostics, "Seller verifications") {
		return
	}
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Create)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoCreate(
		ctx,
		func(ctx context.Context, dst *sellerVerificationResourceModel) diag.Diagnostics {
			return req.Plan.Get(ctx, dst)
		},
		func(ctx context.Context, src *sellerVerificationResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *sellerVerificationResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoRead(
		ctx,
		func(ctx context.Context, dst *sellerVerificationResourceModel) diag.Diagnostics {
			return req.State.Get(ctx, dst)
		},
		func(ctx context.Context, src *sellerVerificationResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		func(ctx context.Context) { resp.State.RemoveResource(ctx) },
		ensureWith(&resp.Diagnostics),
		HTTPStatus,
	)
	resp.Diagnostics.Append(diags...)
}

func (r *sellerVerificationResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	if !r.requireAdmin(&resp.Diagnostics, "Seller verifications") {
		return
	}
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Update)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoUpdate(
		ctx,
		func(ctx context.Context, dst *sellerVerificationResourceModel) diag.Diagnostics {
			return req.Plan.Get(ctx, dst)
		},
		func(ctx context.Context, src *sellerVerificationResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *sellerVerificationResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	diags := NewCRUDRunner(r.hooks()).DoDelete(
		ctx,
		func(ctx context.Context, dst *sellerVerificationResourceModel) diag.Diagnostics {
			return req.State.Get(ctx, dst)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

// ImportState accepts a seller ID.
func (r *sellerVerificationResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoImport(
		ctx,
		req.ID,
		func(ctx context.Context, src *sellerVerificationResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *sellerVerificationResource) hooks() CRUDHooks[sellerVerificationResourceModel, *sellerDecision, *safeplots.Seller] {
	return CRUDHooks[sellerVerificationResourceModel, *sellerDecision, *safeplots.Seller]{
		BuildPayload: buildSellerDecision,
		APICreate:    r.decide,
		APIRead:      r.client.Admin.Seller,
		APIUpdate:    r.redecide,
		APIDelete:    r.forget,
		ExtractID:    func(st *sellerVerificationResourceModel) string { return st.ID.ValueString() },
		MapToState:   mapSellerToVerification,

		Reads: r.reads,

		CreatedMessage: "Seller verification recorded.",
		UpdatedMessage: "Seller verification updated.",
	}
}
