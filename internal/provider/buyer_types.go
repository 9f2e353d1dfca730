// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"

	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

// savedPropertyResourceModel models safeplots_saved_property.
type savedPropertyResourceModel struct {
	ID           types.String `tfsdk:"id"`
	PropertyID   types.String `tfsdk:"property_id"`
	Title        types.String `tfsdk:"title"`
	DisplayPrice types.String `tfsdk:"display_price"`
	City         types.String `tfsdk:"city"`
	Status       types.String `tfsdk:"status"`
}

type savedPropertyRequest struct {
	PropertyID string
}

func buildSavedProperty(_ context.Context, st *savedPropertyResourceModel) (*savedPropertyRequest, diag.Diagnostics) {
	return &savedPropertyRequest{PropertyID: st.PropertyID.ValueString()}, nil
}

func mapPropertyToSaved(_ context.Context, p *safeplots.Property, st *savedPropertyResourceModel) diag.Diagnostics {
	st.ID = types.StringValue(p.ID)
	st.PropertyID = types.StringValue(p.ID)
	st.Title = stringOrNull(p.Title)
	st.DisplayPrice = types.StringValue(safeplots.DisplayPrice(p))
	st.City = stringOrNull(p.Location.City)
	st.Status = stringOrNull(string(p.Status))
	return nil
}

// inquiryResourceModel models safeplots_inquiry.
type inquiryResourceModel struct {
	ID            types.String `tfsdk:"id"`
	PropertyID    types.String `tfsdk:"property_id"`
	Message       types.String `tfsdk:"message"`
	PropertyTitle types.String `tfsdk:"property_title"`
	SellerID      types.String `tfsdk:"seller_id"`
	Status        types.String `tfsdk:"status"`
	CreatedAt     types.String `tfsdk:"created_at"`
}

func buildInquiry(_ context.Context, st *inquiryResourceModel) (*safeplots.InquiryPayload, diag.Diagnostics) {
	return &safeplots.InquiryPayload{
		PropertyID: st.PropertyID.ValueString(),
		Message:    st.Message.ValueString(),
	}, nil
}

func mapInquiryToModel(_ context.Context, q *safeplots.Inquiry, st *inquiryResourceModel) diag.Diagnostics {
	st.ID = types.StringValue(q.ID)
	st.PropertyID = types.StringValue(q.PropertyID)
	st.Message = types.StringValue(q.Message)
	st.PropertyTitle = stringOrNull(q.PropertyTitle)
	st.SellerID = stringOrNull(q.SellerID)
	st.Status = types.StringValue(string(q.Status))
	st.CreatedAt = stringOrNull(q.CreatedAt)
	return nil
}

// propertyReportResourceModel models safeplots_property_report.
type propertyReportResourceModel struct {
	ID            types.String `tfsdk:"id"`
	PropertyID    types.String `tfsdk:"property_id"`
	Reason        types.String `tfsdk:"reason"`
	Description   types.String `tfsdk:"description"`
	PropertyTitle types.String `tfsdk:"property_title"`
	Status        types.String `tfsdk:"status"`
	CreatedAt     types.String `tfsdk:"created_at"`
}

func buildReport(_ context.Context, st *propertyReportResourceModel) (*safeplots.ReportPayload, diag.Diagnostics) {
	return &safeplots.ReportPayload{
		PropertyID:  st.PropertyID.ValueString(),
		Reason:      safeplots.ReportReason(st.Reason.ValueString()),
		Description: st.Description.ValueString(),
	}, nil
}

func mapReportToModel(_ context.Context, r *safeplots.PropertyReport, st *propertyReportResourceModel) diag.Diagnostics {
	st.ID = types.StringValue(r.ID)
	st.PropertyID = types.StringValue(r.PropertyID)
	st.Reason = types.StringValue(string(r.Reason))
	st.Description = types.StringValue(r.Description)
	st.PropertyTitle = stringOrNull(r.PropertyTitle)
	st.Status = types.StringValue(string(r.Status))
	st.CreatedAt = stringOrNull(r.CreatedAt)
	return nil
}
