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

var _ resource.Resource = (*propertyReportResource)(nil)
var _ resource.ResourceWithConfigure = (*propertyReportResource)(nil)
var _ resource.ResourceWithImportState = (*propertyReportResource)(nil)

// NewPropertyReportResource returns the resource for safeplots_property_report.
func NewPropertyReportResource() resource.Resource { return &propertyReportResource{} }

type propertyReportResource struct {
	ServiceClient
}

func (r *propertyReportResource) Metadata(_ context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_property_report"
}

func (r *propertyReportResource) Configure(_ context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
	if p, ok := providerFrom(req.ProviderData, "Resource", &resp.Diagnostics); ok {
		r.configureFrom(p)
	}
}

func (r *propertyReportResource) Schema(_ context.Context, _ resource.SchemaRequest, resp *resource.SchemaResponse) {
	replace := []planmodifier.String{stringplanmodifier.RequiresReplace()}
	resp.Schema = schema.Schema{
		MarkdownDescription: "Reports a listing to the moderators. Reports cannot be withdrawn; destroying the resource only removes it from state. " +
			"Only admin accounts can refresh a report after it was filed.",
		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Computed:            true,
				PlanModifiers:       []planmodifier.String{stringplanmodifier.UseStateForUnknown()},
				MarkdownDescription: "Report identifier.",
			},
			"property_id": schema.StringAttribute{
				Required:            true,
				PlanModifiers:       replace,
				MarkdownDescription: "Listing being reported.",
			},
			"reason": schema.StringAttribute{
				Required:            true,
				PlanModifiers:       replace,
				Validators:          []validator.String{stringvalidator.OneOf(safeplots.ReportReasons...)},
				MarkdownDescription: "One of `fraud`, `incorrect_info`, `duplicate`, `sold`, `inappropriate`, `other`.",
			},
			"description": schema.StringAttribute{
				Required:            true,
				PlanModifiers:       replace,
				Validators:          []validator.String{stringvalidator.LengthAtLeast(10)},
				MarkdownDescription: "What is wrong with the listing.",
			},
			"property_title": schema.StringAttribute{
				Computed:            true,
				PlanModifiers:       []planmodifier.String{stringplanmodifier.UseStateForUnknown()},
				MarkdownDescription: "Listing title at the time of the report.",
			},
			"status": schema.StringAttribute{Computed: true, MarkdownDescription: "Moderation status of the report."},
			"created_at": schema.StringAttribute{
				Computed:            true,
				PlanModifiers:       []planmodifier.String{stringplanmodifier.UseStateForUnknown()},
				MarkdownDescription: "Filing timestamp (RFC 3339).",
			},
		},
	}
}

func (r *propertyReportResource) file(ctx context.Context, in *safeplots.ReportPayload) (*safeplots.PropertyReport, *safeplots.Response, error) {
	rep, rs, err := r.client.Reports.Create(ctx, in)
	if err != nil {
		return nil, rs, err
	}
	r.tracker.TrackPropertyReported(ctx, rep.PropertyID, string(rep.Reason))
	return rep, rs, nil
}

func (r *propertyReportResource) refresh(ctx context.Context, id string, _ *safeplots.ReportPayload) (*safeplots.PropertyReport, *safeplots.Response, error) {
	return r.client.Admin.Report(ctx, id)
}

func (r *propertyReportResource) forget(ctx context.Context, id string) (*safeplots.Response, error) {
	tflog.Info(ctx, "reports cannot be withdrawn; removing from state only", map[string]interface{}{"report_id": id})
	return nil, nil
}

func (r *propertyReportResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Create)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoCreate(
		ctx,
		func(ctx context.Context, dst *propertyReportResourceModel) diag.Diagnostics {
			return req.Plan.Get(ctx, dst)
		},
		func(ctx context.Context, src *propertyReportResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

// Read refreshes through the admin report listing. Other accounts have no
// endpoint to read a report back, so their state is kept as filed.
func (r *propertyReportResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	if !r.isAdmin() {
		tflog.Debug(ctx, "report refresh skipped for non-admin account")
		return
	}
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoRead(
		ctx,
		func(ctx context.Context, dst *propertyReportResourceModel) diag.Diagnostics {
			return req.State.Get(ctx, dst)
		},
		func(ctx context.Context, src *propertyReportResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		func(ctx context.Context) { resp.State.RemoveResource(ctx) },
		ensureWith(&resp.Diagnostics),
		HTTPStatus,
	)
	resp.Diagnostics.Append(diags...)
}

// Update only runs for computed drift; every argument forces replacement.
func (r *propertyReportResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	if !r.isAdmin() {
		var prior propertyReportResourceModel
		resp.Diagnostics.Append(req.State.Get(ctx, &prior)...)
		if !resp.Diagnostics.HasError() {
			resp.Diagnostics.Append(resp.State.Set(ctx, &prior)...)
		}
		return
	}
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Update)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoUpdate(
		ctx,
		func(ctx context.Context, dst *propertyReportResourceModel) diag.Diagnostics {
			return req.Plan.Get(ctx, dst)
		},
		func(ctx context.Context, src *propertyReportResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *propertyReportResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	diags := NewCRUDRunner(r.hooks()).DoDelete(
		ctx,
		func(ctx context.Context, dst *propertyReportResourceModel) diag.Diagnostics {
			return req.State.Get(ctx, dst)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

// ImportState accepts a report ID. Requires an admin account.
func (r *propertyReportResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	if !r.requireAdmin(&resp.Diagnostics, "Imported reports") {
		return
	}
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoImport(
		ctx,
		req.ID,
		func(ctx context.Context, src *propertyReportResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *propertyReportResource) hooks() CRUDHooks[propertyReportResourceModel, *safeplots.ReportPayload, *safeplots.PropertyReport] {
	return CRUDHooks[propertyReportResourceModel, *safeplots.ReportPayload, *safeplots.PropertyReport]{
		BuildPayload: buildReport,
		APICreate:    r.file,
		APIRead:      r.client.Admin.Report,
		APIUpdate:    r.refresh,
		APIDelete:    r.forget,
		ExtractID:    func(st *propertyReportResourceModel) string { return st.ID.ValueString() },
		MapToState:   mapReportToModel,

		Reads: r.reads,

		CreatedMessage: "Report submitted. Our team will review it shortly.",
	}
}
