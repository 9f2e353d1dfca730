// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package testhelpers

const (
	// TmplPath defines the base path for template files.
	TmplPath = "./testdata/templates"
	// ProviderTmpl renders the provider block.
	ProviderTmpl = "provider.tf.tmpl"
	// PropertyTmpl renders a safeplots_property resource.
	PropertyTmpl = "property.tf.tmpl"
	// DataPropertiesTmpl renders a safeplots_properties data source.
	DataPropertiesTmpl = "data.properties.tf.tmpl"
	// SellerRegistrationTmpl renders a safeplots_seller_registration resource.
	SellerRegistrationTmpl = "seller_registration.tf.tmpl"
)
