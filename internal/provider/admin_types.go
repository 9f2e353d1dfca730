// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"

	"github.com/hashicorp/terraform-plugin-framework/attr"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

// Moderation decisions accepted by the admin resources.
const (
	decisionApproved = "approved"
	decisionRejected = "rejected"

	actionApprove = "approve"
	actionReject  = "reject"
	actionSuspend = "suspend"
)

var (
	sellerDecisions   = []string{decisionApproved, decisionRejected}
	moderationActions = []string{actionApprove, actionReject, actionSuspend}
)

// sellerVerificationResourceModel models safeplots_seller_verification.
type sellerVerificationResourceModel struct {
	ID         types.String `tfsdk:"id"`
	SellerID   types.String `tfsdk:"seller_id"`
	Decision   types.String `tfsdk:"decision"`
	Reason     types.String `tfsdk:"reason"`
	Name       types.String `tfsdk:"name"`
	UserID     types.String `tfsdk:"user_id"`
	Status     types.String `tfsdk:"status"`
	IsVerified types.Bool   `tfsdk:"is_verified"`
}

type sellerDecision struct {
	SellerID string
	Approve  bool
	Reason   string
}

func buildSellerDecision(_ context.Context, st *sellerVerificationResourceModel) (*sellerDecision, diag.Diagnostics) {
	return &sellerDecision{
		SellerID: st.SellerID.ValueString(),
		Approve:  st.Decision.ValueString() == decisionApproved,
		Reason:   st.Reason.ValueString(),
	}, nil
}

// mapSellerToVerification maps the seller record. A seller that is neither
// approved nor rejected leaves decision null so the next plan reapplies it.
func mapSellerToVerification(_ context.Context, s *safeplots.Seller, st *sellerVerificationResourceModel) diag.Diagnostics {
	st.ID = types.StringValue(s.ID)
	st.SellerID = types.StringValue(s.ID)
	st.Name = types.StringValue(s.Name)
	st.UserID = stringOrNull(s.UserID)
	st.Status = types.StringValue(string(s.Status))
	st.IsVerified = types.BoolValue(s.IsVerified)
	switch s.Status {
	case safeplots.SellerApproved:
		st.Decision = types.StringValue(decisionApproved)
		st.Reason = types.StringNull()
	case safeplots.SellerRejected:
		st.Decision = types.StringValue(decisionRejected)
		st.Reason = stringOrNull(s.RejectReason)
	default:
		st.Decision = types.StringNull()
	}
	return nil
}

// propertyModerationResourceModel models safeplots_property_moderation.
type propertyModerationResourceModel struct {
	ID           types.String `tfsdk:"id"`
	PropertyID   types.String `tfsdk:"property_id"`
	Action       types.String `tfsdk:"action"`
	Reason       types.String `tfsdk:"reason"`
	Title        types.String `tfsdk:"title"`
	SellerID     types.String `tfsdk:"seller_id"`
	Status       types.String `tfsdk:"status"`
	IsVerified   types.Bool   `tfsdk:"is_verified"`
	RejectReason types.String `tfsdk:"reject_reason"`
}

type moderationDecision struct {
	PropertyID string
	Action     string
	Reason     string
}

func buildModerationDecision(_ context.Context, st *propertyModerationResourceModel) (*moderationDecision, diag.Diagnostics) {
	return &moderationDecision{
		PropertyID: st.PropertyID.ValueString(),
		Action:     st.Action.ValueString(),
		Reason:     st.Reason.ValueString(),
	}, nil
}

// actionForStatus returns the moderation action a listing status reflects.
// A sold listing was approved before the sale.
func actionForStatus(s safeplots.PropertyStatus) string {
	switch s {
	case safeplots.PropertyApproved, safeplots.PropertySold:
		return actionApprove
	case safeplots.PropertyRejected:
		return actionReject
	case safeplots.PropertySuspended:
		return actionSuspend
	}
	return ""
}

func mapPropertyToModeration(_ context.Context, p *safeplots.Property, st *propertyModerationResourceModel) diag.Diagnostics {
	st.ID = types.StringValue(p.ID)
	st.PropertyID = types.StringValue(p.ID)
	st.Title = types.StringValue(p.Title)
	st.SellerID = stringOrNull(p.SellerID)
	st.Status = types.StringValue(string(p.Status))
	st.IsVerified = types.BoolValue(p.IsVerified)
	st.RejectReason = stringOrNull(p.RejectReason)
	st.Action = stringOrNull(actionForStatus(p.Status))
	if st.Action.ValueString() == actionApprove {
		st.Reason = types.StringNull()
	} else if p.RejectReason != "" {
		st.Reason = types.StringValue(p.RejectReason)
	}
	return nil
}

// reportResolutionResourceModel models safeplots_report_resolution.
type reportResolutionResourceModel struct {
	ID              types.String `tfsdk:"id"`
	ReportID        types.String `tfsdk:"report_id"`
	Status          types.String `tfsdk:"status"`
	AdminNotes      types.String `tfsdk:"admin_notes"`
	SuspendProperty types.Bool   `tfsdk:"suspend_property"`
	PropertyID      types.String `tfsdk:"property_id"`
	Reason          types.String `tfsdk:"reason"`
	ResolvedAt      types.String `tfsdk:"resolved_at"`
}

type reportResolution struct {
	ReportID string
	Update   safeplots.ReportUpdate
}

func buildReportResolution(_ context.Context, st *reportResolutionResourceModel) (*reportResolution, diag.Diagnostics) {
	return &reportResolution{
		ReportID: st.ReportID.ValueString(),
		Update: safeplots.ReportUpdate{
			Status:          safeplots.ReportStatus(st.Status.ValueString()),
			AdminNotes:      st.AdminNotes.ValueString(),
			SuspendProperty: st.SuspendProperty.ValueBool(),
		},
	}, nil
}

// mapReportToResolution maps the report. suspend_property is write-only and
// keeps its planned value.
func mapReportToResolution(_ context.Context, r *safeplots.PropertyReport, st *reportResolutionResourceModel) diag.Diagnostics {
	st.ID = types.StringValue(r.ID)
	st.ReportID = types.StringValue(r.ID)
	st.Status = types.StringValue(string(r.Status))
	st.AdminNotes = stringOrNull(r.AdminNotes)
	st.PropertyID = stringOrNull(r.PropertyID)
	st.Reason = stringOrNull(string(r.Reason))
	st.ResolvedAt = stringOrNull(r.ResolvedAt)
	if st.SuspendProperty.IsNull() || st.SuspendProperty.IsUnknown() {
		st.SuspendProperty = types.BoolValue(false)
	}
	return nil
}

// reportItemModel is one entry of the safeplots_reports data source.
type reportItemModel struct {
	ID            types.String `tfsdk:"id"`
	PropertyID    types.String `tfsdk:"property_id"`
	PropertyTitle types.String `tfsdk:"property_title"`
	ReporterID    types.String `tfsdk:"reporter_id"`
	ReporterName  types.String `tfsdk:"reporter_name"`
	Reason        types.String `tfsdk:"reason"`
	Description   types.String `tfsdk:"description"`
	Status        types.String `tfsdk:"status"`
	AdminNotes    types.String `tfsdk:"admin_notes"`
	CreatedAt     types.String `tfsdk:"created_at"`
	ResolvedAt    types.String `tfsdk:"resolved_at"`
}

func (reportItemModel) AttributeTypes() map[string]attr.Type {
	return map[string]attr.Type{
		"id":             types.StringType,
		"property_id":    types.StringType,
		"property_title": types.StringType,
		"reporter_id":    types.StringType,
		"reporter_name":  types.StringType,
		"reason":         types.StringType,
		"description":    types.StringType,
		"status":         types.StringType,
		"admin_notes":    types.StringType,
		"created_at":     types.StringType,
		"resolved_at":    types.StringType,
	}
}

func mapReportToItem(_ context.Context, r safeplots.PropertyReport) (reportItemModel, diag.Diagnostics) {
	return reportItemModel{
		ID:            types.StringValue(r.ID),
		PropertyID:    types.StringValue(r.PropertyID),
		PropertyTitle: stringOrNull(r.PropertyTitle),
		ReporterID:    stringOrNull(r.ReporterID),
		ReporterName:  stringOrNull(r.ReporterName),
		Reason:        types.StringValue(string(r.Reason)),
		Description:   stringOrNull(r.Description),
		Status:        types.StringValue(string(r.Status)),
		AdminNotes:    stringOrNull(r.AdminNotes),
		CreatedAt:     stringOrNull(r.CreatedAt),
		ResolvedAt:    stringOrNull(r.ResolvedAt),
	}, nil
}

// userBanResourceModel models safeplots_user_ban.
type userBanResourceModel struct {
	ID     types.String `tfsdk:"id"`
	UserID types.String `tfsdk:"user_id"`
	Email  types.String `tfsdk:"email"`
	Name   types.String `tfsdk:"name"`
	Role   types.String `tfsdk:"role"`
	Status types.String `tfsdk:"status"`
}

type userBanRequest struct {
	UserID string
}

func buildUserBan(_ context.Context, st *userBanResourceModel) (*userBanRequest, diag.Diagnostics) {
	return &userBanRequest{UserID: st.UserID.ValueString()}, nil
}

func mapUserToBan(_ context.Context, u *safeplots.User, st *userBanResourceModel) diag.Diagnostics {
	st.ID = types.StringValue(u.ID)
	st.UserID = types.StringValue(u.ID)
	st.Email = stringOrNull(u.Email)
	st.Name = stringOrNull(u.Name)
	st.Role = types.StringValue(string(u.Role))
	st.Status = stringOrNull(u.Status)
	return nil
}
