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

// sellerRegistrationResourceModel models safeplots_seller_registration.
type sellerRegistrationResourceModel struct {
	ID           types.String `tfsdk:"id"`
	UserID       types.String `tfsdk:"user_id"`
	Name         types.String `tfsdk:"name"`
	Email        types.String `tfsdk:"email"`
	Phone        types.String `tfsdk:"phone"`
	IDProofType  types.String `tfsdk:"id_proof_type"`
	IDProofURL   types.String `tfsdk:"id_proof_url"`
	IDProofFile  types.String `tfsdk:"id_proof_file"`
	Status       types.String `tfsdk:"status"`
	IsVerified   types.Bool   `tfsdk:"is_verified"`
	RejectReason types.String `tfsdk:"reject_reason"`
	CreatedAt    types.String `tfsdk:"created_at"`
}

// mapSellerToRegistration maps the seller profile into state. id_proof_file
// is configuration only and is left untouched.
func mapSellerToRegistration(_ context.Context, s *safeplots.Seller, st *sellerRegistrationResourceModel) diag.Diagnostics {
	st.ID = types.StringValue(s.ID)
	st.UserID = stringOrNull(s.UserID)
	st.Name = types.StringValue(s.Name)
	st.Email = stringOrNull(s.Email)
	st.Phone = stringOrNull(s.Phone)
	st.IDProofType = types.StringValue(s.IDProofType)
	st.IDProofURL = stringOrNull(s.IDProofURL)
	st.Status = types.StringValue(string(s.Status))
	st.IsVerified = types.BoolValue(s.IsVerified)
	st.RejectReason = stringOrNull(s.RejectReason)
	st.CreatedAt = stringOrNull(s.CreatedAt)
	return nil
}

// sellerItemModel is one entry of the safeplots_sellers data source.
type sellerItemModel struct {
	ID              types.String  `tfsdk:"id"`
	UserID          types.String  `tfsdk:"user_id"`
	Name            types.String  `tfsdk:"name"`
	Email           types.String  `tfsdk:"email"`
	Phone           types.String  `tfsdk:"phone"`
	IDProofType     types.String  `tfsdk:"id_proof_type"`
	Status          types.String  `tfsdk:"status"`
	IsVerified      types.Bool    `tfsdk:"is_verified"`
	TotalProperties types.Int64   `tfsdk:"total_properties"`
	TotalSold       types.Int64   `tfsdk:"total_sold"`
	Rating          types.Float64 `tfsdk:"rating"`
	CreatedAt       types.String  `tfsdk:"created_at"`
}

func (sellerItemModel) AttributeTypes() map[string]attr.Type {
	return map[string]attr.Type{
		"id":               types.StringType,
		"user_id":          types.StringType,
		"name":             types.StringType,
		"email":            types.StringType,
		"phone":            types.StringType,
		"id_proof_type":    types.StringType,
		"status":           types.StringType,
		"is_verified":      types.BoolType,
		"total_properties": types.Int64Type,
		"total_sold":       types.Int64Type,
		"rating":           types.Float64Type,
		"created_at":       types.StringType,
	}
}

func mapSellerToItem(_ context.Context, s safeplots.Seller) (sellerItemModel, diag.Diagnostics) {
	return sellerItemModel{
		ID:              types.StringValue(s.ID),
		UserID:          stringOrNull(s.UserID),
		Name:            types.StringValue(s.Name),
		Email:           stringOrNull(s.Email),
		Phone:           stringOrNull(s.Phone),
		IDProofType:     stringOrNull(s.IDProofType),
		Status:          types.StringValue(string(s.Status)),
		IsVerified:      types.BoolValue(s.IsVerified),
		TotalProperties: types.Int64Value(int64(s.TotalProperties)),
		TotalSold:       types.Int64Value(int64(s.TotalSold)),
		Rating:          float64OrNull(s.Rating),
		CreatedAt:       stringOrNull(s.CreatedAt),
	}, nil
}
