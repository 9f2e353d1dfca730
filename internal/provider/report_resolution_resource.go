// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"

	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/booldefault"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringplanmodifier"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-log/tflog"
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

var _ resource.Resource = (*reportResolutionResource)(nil)
var _ resource.ResourceWithConfigure = (*reportResolutionResource)(nil)
var _ resource.ResourceWithImportState = (*reportResolutionResource)(nil)

// NewReportResolutionResource returns the resource for safeplots_report_resolution.
func NewReportResolutionResource() resource.Resource { return &reportResolutionResource{} }

type reportResolutionResource struct {
	ServiceClient
}

func (r *reportResolutionResource) Metadata(_ context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_report_resolution"
}

func (r *reportResolutionResource) Configure(_ context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
	if p, ok := providerFrom(req.ProviderData, "Resource", &resp.Diagnostics); ok {
		r.configureFrom(p)
	}
}

func (r *reportResolutionResource) Schema(_ context.Context, _ resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Resolves a property report raised by a user. Requires an admin account. " +
			"Destroying the resource leaves the resolution in place.",
		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Computed:            true,
				PlanModifiers:       []planmodifier.String{stringplanmodifier.UseStateForUnknown()},
				MarkdownDescription: "Same as `report_id`.",
			},
			"report_id": schema.StringAttribute{
				Required:            true,
				PlanModifiers:       []planmodifier.String{stringplanmodifier.RequiresReplace()},
				MarkdownDescription: "Report to resolve.",
			},
			"status": schema.StringAttribute{
				Required: true,
				Validators: []validator.String{
					stringvalidator.OneOf(safeplots.ReportStatuses...),
					stringvalidator.NoneOf(string(safeplots.ReportPending)),
				},
				MarkdownDescription: "Resolution status, e.g. `resolved`, `dismissed` or `false_information`.",
			},
			"admin_notes": schema.StringAttribute{
				Optional:            true,
				Validators:          []validator.String{stringvalidator.LengthAtLeast(1)},
				MarkdownDescription: "Internal notes stored with the report.",
			},
			"suspend_property": schema.BoolAttribute{
				Optional:            true,
				Computed:            true,
				Default:             booldefault.StaticBool(false),
				MarkdownDescription: "Also suspend the reported listing.",
			},
			"property_id": schema.StringAttribute{Computed: true, MarkdownDescription: "Reported listing."},
			"reason":      schema.StringAttribute{Computed: true, MarkdownDescription: "Reason given by the reporter."},
			"resolved_at": schema.StringAttribute{Computed: true, MarkdownDescription: "Resolution timestamp (RFC 3339)."},
		},
	}
}

func (r *reportResolutionResource) resolve(ctx context.Context, in *reportResolution) (*safeplots.PropertyReport, *safeplots.Response, error) {
	return r.client.Admin.UpdateReport(ctx, in.ReportID, &in.Update)
}

func (r *reportResolutionResource) reresolve(ctx context.Context, _ string, in *reportResolution) (*safeplots.PropertyReport, *safeplots.Response, error) {
	return r.resolve(ctx, in)
}

func (r *reportResolutionResource) forget(ctx context.Context, id string) (*safeplots.Response, error) {
	tflog.Info(ctx, "report resolution kept; removing from state only", map[string]interface{}{"report_id": id})
	return nil, nil
}

func (r *reportResolutionResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	if !r.requireAdmin(&resp.Diagnostics, "Report resolutions") {
		return
	}
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Create)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoCreate(
		ctx,
		func(ctx context.Context, dst *reportResolutionResourceModel) diag.Diagnostics {
			return req.Plan.Get(ctx, dst)
		},
		func(ctx context.Context, src *reportResolutionResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *reportResolutionResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoRead(
		ctx,
		func(ctx context.Context, dst *reportResolutionResourceModel) diag.Diagnostics {
			return req.State.Get(ctx, dst)
		},
		func(ctx context.Context, src *reportResolutionResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		func(ctx context.Context) { resp.State.RemoveResource(ctx) },
		ensureWith(&resp.Diagnostics),
		HTTPStatus,
	)
	resp.Diagnostics.Append(diags...)
}

func (r *reportResolutionResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	if !r.requireAdmin(&resp.Diagnostics, "Report resolutions") {
		return
	}
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Update)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoUpdate(
		ctx,
		func(ctx context.Context, dst *reportResolutionResourceModel) diag.Diagnostics {
			return req.Plan.Get(ctx, dst)
		},
		func(ctx context.Context, src *reportResolutionResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *reportResolutionResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	diags := NewCRUDRunner(r.hooks()).DoDelete(
		ctx,
		func(ctx context.Context, dst *reportResolutionResourceModel) diag.Diagnostics {
			return req.State.Get(ctx, dst)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

// ImportState accepts a report ID.
func (r *reportResolutionResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	diags := NewCRUDRunner(r.hooks()).DoImport(
		ctx,
		req.ID,
		func(ctx context.Context, src *reportResolutionResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *reportResolutionResource) hooks() CRUDHooks[reportResolutionResourceModel, *reportResolution, *safeplots.PropertyReport] {
	return CRUDHooks[reportResolutionResourceModel, *reportResolution, *safeplots.PropertyReport]{
		BuildPayload: buildReportResolution,
		APICreate:    r.resolve,
		APIRead:      r.client.Admin.Report,
		APIUpdate:    r.reresolve,
		APIDelete:    r.forget,
		ExtractID:    func(st *reportResolutionResourceModel) string { return st.ID.ValueString() },
		MapToState:   mapReportToResolution,

		Reads: r.reads,

		CreatedMessage: "Report resolved.",
		UpdatedMessage: "Report resolution updated.",
	}
}
