// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package testhelpers

// FakeNetErr for testing ShouldRetry timeout path
type FakeNetErr struct{ timeout bool }

func (e FakeNetErr) Error() string   { return "fake timeout" }
func (e FakeNetErr) Timeout() bool   { return e.timeout }
func (e FakeNetErr) Temporary() bool { return true }

// NewFakeNetErr constructs a FakeNetErr with the provided timeout flag.
func NewFakeNetErr(timeout bool) FakeNetErr { return FakeNetErr{timeout: timeout} }

// ProviderTmplCfg fills provider.tf.tmpl. Token wins over Email/Password.
type ProviderTmplCfg struct {
	Endpoint       string
	Email          string
	Password       string
	Token          string
	ReadRetryCount int
	PageSize       int
}

// PropertyTmplCfg fills property.tf.tmpl.
type PropertyTmplCfg struct {
	Name        string
	Title       string
	Description string
	Type        string
	Price       float64
	Area        float64
	AreaUnit    string
	City        string
	State       string
	Images      []string
	Amenities   []string
	Sold        bool
}

// DataPropertiesTmplCfg fills data.properties.tf.tmpl. Zero values are omitted.
type DataPropertiesTmplCfg struct {
	Name     string
	Search   string
	Type     string
	State    string
	City     string
	Sort     string
	Page     int
	Limit    int
	FetchAll bool
}

// SellerRegistrationTmplCfg fills seller_registration.tf.tmpl. Set either
// IDProofURL or IDProofFile.
type SellerRegistrationTmplCfg struct {
	Name        string
	Phone       string
	IDProofType string
	IDProofURL  string
	IDProofFile string
}
