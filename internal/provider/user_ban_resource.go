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
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

var _ resource.Resource = (*userBanResource)(nil)
var _ resource.ResourceWithConfigure = (*userBanResource)(nil)
var _ resource.ResourceWithImportState = (*userBanResource)(nil)

// NewUserBanResource returns the resource for safeplots_user_ban.
func NewUserBanResource() resource.Resource { return &userBanResource{} }

type userBanResource struct {
	ServiceClient
}

func (r *userBanResource) Metadata(_ context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_user_ban"
}

func (r *userBanResource) Configure(_ context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
	if p, ok := providerFrom(req.ProviderData, "Resource", &resp.Diagnostics); ok {
		r.configureFrom(p)
	}
}

func (r *userBanResource) Schema(_ context.Context, _ resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Bans a user account while the resource exists. Destroying it lifts the ban. Requires an admin account.",
		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Computed:            true,
				PlanModifiers:       []planmodifier.String{stringplanmodifier.UseStateForUnknown()},
				MarkdownDescription: "Same as `user_id`.",
			},
			"user_id": schema.StringAttribute{
				Required:            true,
				PlanModifiers:       []planmodifier.String{stringplanmodifier.RequiresReplace()},
				Validators:          []validator.String{stringvalidator.LengthAtLeast(1)},
				MarkdownDescription: "Account to ban.",
			},
			"email":  schema.StringAttribute{Computed: true, MarkdownDescription: "Account email."},
			"name":   schema.StringAttribute{Computed: true, MarkdownDescription: "Account name."},
			"role":   schema.StringAttribute{Computed: true, MarkdownDescription: "Account role."},
			"status": schema.StringAttribute{Computed: true, MarkdownDescription: "Account status."},
		},
	}
}

func (r *userBanResource) ban(ctx context.Context, in *userBanRequest) (*safeplots.User, *safeplots.Response, error) {
	return r.client.Admin.SetUserBan(ctx, in.UserID, true)
}

func (r *userBanResource) reban(ctx context.Context, _ string, in *userBanRequest) (*safeplots.User, *safeplots.Response, error) {
	return r.ban(ctx, in)
}

// readBanned treats an account that is no longer banned as gone.
func (r *userBanResource) readBanned(ctx context.Context, id string) (*safeplots.User, *safeplots.Response, error) {
	u, rs, err := r.client.Admin.User(ctx, id)
	if err != nil {
		return nil, rs, err
	}
	if !u.IsBanned() {
		return nil, rs, notFound("ban on user", id)
	}
	return u, rs, nil
}

func (r *userBanResource) unban(ctx context.Context, id string) (*safeplots.Response, error) {
	_, rs, err := r.client.Admin.SetUserBan(ctx, id, false)
	return rs, err
}

func (r *userBanResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	if !r.requireAdmin(&resp.Diagnostics, "User bans") {
		return
	}
	var userID string
	resp.Diagnostics.Append(req.Plan.GetAttribute(ctx, path.Root("user_id"), &userID)...)
	if resp.Diagnostics.HasError() {
		return
	}
	if r.me != nil && userID == r.me.ID {
		resp.Diagnostics.AddAttributeError(path.Root("user_id"), "Cannot ban yourself", "The provider account cannot ban itself.")
		return
	}

	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Create)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoCreate(
		ctx,
		func(ctx context.Context, dst *userBanResourceModel) diag.Diagnostics {
			return req.Plan.Get(ctx, dst)
		},
		func(ctx context.Context, src *userBanResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *userBanResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoRead(
		ctx,
		func(ctx context.Context, dst *userBanResourceModel) diag.Diagnostics {
			return req.State.Get(ctx, dst)
		},
		func(ctx context.Context, src *userBanResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		func(ctx context.Context) { resp.State.RemoveResource(ctx) },
		ensureWith(&resp.Diagnostics),
		HTTPStatus,
	)
	resp.Diagnostics.Append(diags...)
}

func (r *userBanResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Update)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoUpdate(
		ctx,
		func(ctx context.Context, dst *userBanResourceModel) diag.Diagnostics {
			return req.Plan.Get(ctx, dst)
		},
		func(ctx context.Context, src *userBanResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *userBanResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Delete)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoDelete(
		ctx,
		func(ctx context.Context, dst *userBanResourceModel) diag.Diagnostics {
			return req.State.Get(ctx, dst)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

// ImportState accepts the ID of a banned user.
func (r *userBanResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoImport(
		ctx,
		req.ID,
		func(ctx context.Context, src *userBanResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *userBanResource) hooks() CRUDHooks[userBanResourceModel, *userBanRequest, *safeplots.User] {
	return CRUDHooks[userBanResourceModel, *userBanRequest, *safeplots.User]{
		BuildPayload: buildUserBan,
		APICreate:    r.ban,
		APIRead:      r.readBanned,
		APIUpdate:    r.reban,
		APIDelete:    r.unban,
		ExtractID:    func(st *userBanResourceModel) string { return st.ID.ValueString() },
		MapToState:   mapUserToBan,

		TreatDelete404AsSuccess: true,
		Reads:                   r.reads,

		CreatedMessage: "User banned.",
		UpdatedMessage: "User ban refreshed.",
		DeletedMessage: "User unbanned.",
	}
}
