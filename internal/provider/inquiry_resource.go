// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"

	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringplanmodifier"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-log/tflog"
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

var _ resource.Resource = (*inquiryResource)(nil)
var _ resource.ResourceWithConfigure = (*inquiryResource)(nil)
var _ resource.ResourceWithImportState = (*inquiryResource)(nil)

// NewInquiryResource returns the resource for safeplots_inquiry.
func NewInquiryResource() resource.Resource { return &inquiryResource{} }

type inquiryResource struct {
	ServiceClient
}

func (r *inquiryResource) Metadata(_ context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_inquiry"
}

func (r *inquiryResource) Configure(_ context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
	if p, ok := providerFrom(req.ProviderData, "Resource", &resp.Diagnostics); ok {
		r.configureFrom(p)
	}
}

func (r *inquiryResource) Schema(_ context.Context, _ resource.SchemaRequest, resp *resource.SchemaResponse) {
	replace := []planmodifier.String{stringplanmodifier.RequiresReplace()}
	resp.Schema = schema.Schema{
		MarkdownDescription: "Sends an inquiry about a listing to its seller. Inquiries cannot be withdrawn; " +
			"destroying the resource only removes it from state.",
		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Computed:            true,
				PlanModifiers:       []planmodifier.String{stringplanmodifier.UseStateForUnknown()},
				MarkdownDescription: "Inquiry identifier.",
			},
			"property_id": schema.StringAttribute{
				Required:            true,
				PlanModifiers:       replace,
				MarkdownDescription: "Listing the inquiry is about.",
			},
			"message": schema.StringAttribute{
				Required:            true,
				PlanModifiers:       replace,
				Validators:          []validator.String{stringvalidator.LengthBetween(1, 1000)},
				MarkdownDescription: "Message sent to the seller.",
			},
			"property_title": schema.StringAttribute{Computed: true, MarkdownDescription: "Listing title."},
			"seller_id":      schema.StringAttribute{Computed: true, MarkdownDescription: "Seller that received the inquiry."},
			"status":         schema.StringAttribute{Computed: true, MarkdownDescription: "`new`, `contacted` or `closed`, as set by the seller."},
			"created_at": schema.StringAttribute{
				Computed:            true,
				PlanModifiers:       []planmodifier.String{stringplanmodifier.UseStateForUnknown()},
				MarkdownDescription: "Send timestamp (RFC 3339).",
			},
		},
	}
}

func (r *inquiryResource) send(ctx context.Context, in *safeplots.InquiryPayload) (*safeplots.Inquiry, *safeplots.Response, error) {
	q, rs, err := r.client.Inquiries.Send(ctx, in)
	if err != nil {
		return nil, rs, err
	}
	r.tracker.TrackInquirySent(ctx, q.PropertyID, q.SellerID)
	r.tracker.TrackSellerContacted(ctx, q.SellerID, q.PropertyID)
	return q, rs, nil
}

func (r *inquiryResource) readSent(ctx context.Context, id string) (*safeplots.Inquiry, *safeplots.Response, error) {
	sent, rs, err := r.client.Users.Inquiries(ctx)
	if err != nil {
		return nil, rs, err
	}
	for i := range sent {
		if sent[i].ID == id {
			return &sent[i], rs, nil
		}
	}
	return nil, rs, notFound("inquiry", id)
}

func (r *inquiryResource) refresh(ctx context.Context, id string, _ *safeplots.InquiryPayload) (*safeplots.Inquiry, *safeplots.Response, error) {
	return r.readSent(ctx, id)
}

func (r *inquiryResource) forget(ctx context.Context, id string) (*safeplots.Response, error) {
	tflog.Info(ctx, "inquiries cannot be withdrawn; removing from state only", map[string]interface{}{"inquiry_id": id})
	return nil, nil
}

func (r *inquiryResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Create)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoCreate(
		ctx,
		func(ctx context.Context, dst *inquiryResourceModel) diag.Diagnostics {
			return req.Plan.Get(ctx, dst)
		},
		func(ctx context.Context, src *inquiryResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *inquiryResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoRead(
		ctx,
		func(ctx context.Context, dst *inquiryResourceModel) diag.Diagnostics {
			return req.State.Get(ctx, dst)
		},
		func(ctx context.Context, src *inquiryResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		func(ctx context.Context) { resp.State.RemoveResource(ctx) },
		ensureWith(&resp.Diagnostics),
		HTTPStatus,
	)
	resp.Diagnostics.Append(diags...)
}

func (r *inquiryResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Update)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoUpdate(
		ctx,
		func(ctx context.Context, dst *inquiryResourceModel) diag.Diagnostics {
			return req.Plan.Get(ctx, dst)
		},
		func(ctx context.Context, src *inquiryResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *inquiryResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	diags := NewCRUDRunner(r.hooks()).DoDelete(
		ctx,
		func(ctx context.Context, dst *inquiryResourceModel) diag.Diagnostics {
			return req.State.Get(ctx, dst)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

// ImportState accepts the ID of an inquiry sent by the provider account.
func (r *inquiryResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoImport(
		ctx,
		req.ID,
		func(ctx context.Context, src *inquiryResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *inquiryResource) hooks() CRUDHooks[inquiryResourceModel, *safeplots.InquiryPayload, *safeplots.Inquiry] {
	return CRUDHooks[inquiryResourceModel, *safeplots.InquiryPayload, *safeplots.Inquiry]{
		BuildPayload: buildInquiry,
		APICreate:    r.send,
		APIRead:      r.readSent,
		APIUpdate:    r.refresh,
		APIDelete:    r.forget,
		ExtractID:    func(st *inquiryResourceModel) string { return st.ID.ValueString() },
		MapToState:   mapInquiryToModel,

		Reads: r.reads,

		CreatedMessage: "Inquiry sent successfully. The seller will contact you soon.",
	}
}
