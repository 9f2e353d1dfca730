// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"os"
	"path/filepath"

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

var _ resource.Resource = (*sellerRegistrationResource)(nil)
var _ resource.ResourceWithConfigure = (*sellerRegistrationResource)(nil)
var _ resource.ResourceWithImportState = (*sellerRegistrationResource)(nil)

// NewSellerRegistrationResource returns the resource for safeplots_seller_registration.
func NewSellerRegistrationResource() resource.Resource { return &sellerRegistrationResource{} }

type sellerRegistrationResource struct {
	ServiceClient
}

func (r *sellerRegistrationResource) Metadata(_ context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_seller_registration"
}

func (r *sellerRegistrationResource) Configure(_ context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
	if p, ok := providerFrom(req.ProviderData, "Resource", &resp.Diagnostics); ok {
		r.configureFrom(p)
	}
}

func (r *sellerRegistrationResource) Schema(_ context.Context, _ resource.SchemaRequest, resp *resource.SchemaResponse) {
	replace := []planmodifier.String{stringplanmodifier.RequiresReplace()}
	resp.Schema = schema.Schema{
		MarkdownDescription: "Applies for a seller account for the authenticated user. " +
			"The application stays `pending` until an admin verifies the identity proof. " +
			"Destroying the resource only removes it from state.",
		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Computed:            true,
				PlanModifiers:       []planmodifier.String{stringplanmodifier.UseStateForUnknown()},
				MarkdownDescription: "Seller identifier.",
			},
			"user_id": schema.StringAttribute{
				Computed:            true,
				PlanModifiers:       []planmodifier.String{stringplanmodifier.UseStateForUnknown()},
				MarkdownDescription: "Account that applied.",
			},
			"name": schema.StringAttribute{
				Required:            true,
				PlanModifiers:       replace,
				Validators:          []validator.String{stringvalidator.LengthAtLeast(1)},
				MarkdownDescription: "Name as printed on the identity proof.",
			},
			"email": schema.StringAttribute{
				Optional: true,
				Computed: true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplaceIfConfigured(),
					stringplanmodifier.UseStateForUnknown(),
				},
				MarkdownDescription: "Contact email. Defaults to the account email.",
			},
			"phone": schema.StringAttribute{
				Required:            true,
				PlanModifiers:       replace,
				Validators:          []validator.String{stringvalidator.LengthAtLeast(10)},
				MarkdownDescription: "Contact phone number.",
			},
			"id_proof_type": schema.StringAttribute{
				Required:            true,
				PlanModifiers:       replace,
				Validators:          []validator.String{stringvalidator.OneOf(safeplots.IDProofTypes...)},
				MarkdownDescription: "Identity document type. One of `aadhar`, `pan`, `voter_id`, `passport`.",
			},
			"id_proof_url": schema.StringAttribute{
				Optional: true,
				Computed: true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplaceIfConfigured(),
					stringplanmodifier.UseStateForUnknown(),
				},
				Validators: []validator.String{
					stringvalidator.ExactlyOneOf(path.MatchRoot("id_proof_file")),
				},
				MarkdownDescription: "URL of an already uploaded identity document. Conflicts with `id_proof_file`.",
			},
			"id_proof_file": schema.StringAttribute{
				Optional:            true,
				PlanModifiers:       replace,
				MarkdownDescription: "Local path of an identity document to upload. Conflicts with `id_proof_url`.",
			},
			"status":        schema.StringAttribute{Computed: true, MarkdownDescription: "Application status: `pending`, `approved`, `rejected` or `banned`."},
			"is_verified":   schema.BoolAttribute{Computed: true, MarkdownDescription: "Whether the seller is verified."},
			"reject_reason": schema.StringAttribute{Computed: true, MarkdownDescription: "Reason given when the application was rejected."},
			"created_at": schema.StringAttribute{
				Computed:            true,
				PlanModifiers:       []planmodifier.String{stringplanmodifier.UseStateForUnknown()},
				MarkdownDescription: "Application timestamp (RFC 3339).",
			},
		},
	}
}

// buildRegistration assembles the application. id_proof_file is uploaded
// once, while id_proof_url is still unknown.
func (r *sellerRegistrationResource) buildRegistration(ctx context.Context, st *sellerRegistrationResourceModel) (*safeplots.SellerRegistration, diag.Diagnostics) {
	var diags diag.Diagnostics
	reg := &safeplots.SellerRegistration{
		Name:        st.Name.ValueString(),
		Email:       st.Email.ValueString(),
		Phone:       st.Phone.ValueString(),
		IDProofType: st.IDProofType.ValueString(),
		IDProofURL:  st.IDProofURL.ValueString(),
	}
	if r.me != nil {
		reg.UserID = r.me.ID
		if reg.Email == "" {
			reg.Email = r.me.Email
		}
	}
	if file := st.IDProofFile.ValueString(); file != "" && (st.IDProofURL.IsUnknown() || st.IDProofURL.IsNull()) {
		url, d := r.uploadIDProof(ctx, file, reg.IDProofType)
		diags.Append(d...)
		reg.IDProofURL = url
	}
	return reg, diags
}

func (r *sellerRegistrationResource) uploadIDProof(ctx context.Context, file, proofType string) (string, diag.Diagnostics) {
	var diags diag.Diagnostics
	f, err := os.Open(file)
	if err != nil {
		diags.AddAttributeError(path.Root("id_proof_file"), "Cannot read identity document", err.Error())
		return "", diags
	}
	defer f.Close()

	up, rs, err := r.client.Uploads.Document(ctx, filepath.Base(file), f, map[string]string{"type": proofType})
	if !EnsureSuccessOrDiagWithOptions(ctx, "upload identity document", rs, err, &diags, &EnsureSuccessOrDiagOptions{IncludeBodySnippet: true}) {
		return "", diags
	}
	tflog.Debug(ctx, "identity document uploaded", map[string]interface{}{"file": filepath.Base(file)})
	return up.URL, diags
}

// readOwn returns the caller's application when it matches id.
func (r *sellerRegistrationResource) readOwn(ctx context.Context, id string) (*safeplots.Seller, *safeplots.Response, error) {
	s, rs, err := r.client.Sellers.Profile(ctx)
	if err != nil {
		return nil, rs, err
	}
	if id != "" && s.ID != id {
		return nil, rs, notFound("seller application", id)
	}
	return s, rs, nil
}

func (r *sellerRegistrationResource) refresh(ctx context.Context, id string, _ *safeplots.SellerRegistration) (*safeplots.Seller, *safeplots.Response, error) {
	return r.readOwn(ctx, id)
}

func (r *sellerRegistrationResource) forget(ctx context.Context, id string) (*safeplots.Response, error) {
	tflog.Warn(ctx, "seller applications cannot be withdrawn; removing from state only", map[string]interface{}{"seller_id": id})
	return nil, nil
}

func (r *sellerRegistrationResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Create)
	defer cancel()

	if r.me != nil && r.me.Role == safeplots.RoleAdmin {
		resp.Diagnostics.AddError("Seller registration not allowed", "Admin accounts cannot apply as sellers.")
		return
	}

	diags := NewCRUDRunner(r.hooks()).DoCreate(
		ctx,
		func(ctx context.Context, dst *sellerRegistrationResourceModel) diag.Diagnostics {
			return req.Plan.Get(ctx, dst)
		},
		func(ctx context.Context, src *sellerRegistrationResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *sellerRegistrationResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoRead(
		ctx,
		func(ctx context.Context, dst *sellerRegistrationResourceModel) diag.Diagnostics {
			return req.State.Get(ctx, dst)
		},
		func(ctx context.Context, src *sellerRegistrationResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		func(ctx context.Context) { resp.State.RemoveResource(ctx) },
		ensureWith(&resp.Diagnostics),
		HTTPStatus,
	)
	resp.Diagnostics.Append(diags...)
}

func (r *sellerRegistrationResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Update)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoUpdate(
		ctx,
		func(ctx context.Context, dst *sellerRegistrationResourceModel) diag.Diagnostics {
			return req.Plan.Get(ctx, dst)
		},
		func(ctx context.Context, src *sellerRegistrationResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *sellerRegistrationResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	diags := NewCRUDRunner(r.hooks()).DoDelete(
		ctx,
		func(ctx context.Context, dst *sellerRegistrationResourceModel) diag.Diagnostics {
			return req.State.Get(ctx, dst)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

// ImportState accepts the seller ID of the caller's own application.
func (r *sellerRegistrationResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoImport(
		ctx,
		req.ID,
		func(ctx context.Context, src *sellerRegistrationResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *sellerRegistrationResource) hooks() CRUDHooks[sellerRegistrationResourceModel, *safeplots.SellerRegistration, *safeplots.Seller] {
	return CRUDHooks[sellerRegistrationResourceModel, *safeplots.SellerRegistration, *safeplots.Seller]{
		BuildPayload: r.buildRegistration,
		APICreate:    r.client.Sellers.Register,
		APIRead:      r.readOwn,
		APIUpdate:    r.refresh,
		APIDelete:    r.forget,
		ExtractID:    func(st *sellerRegistrationResourceModel) string { return st.ID.ValueString() },
		MapToState:   mapSellerToRegistration,

		Reads: r.reads,

		CreatedMessage: "Seller registration submitted. Your application is under review.",
	}
}
