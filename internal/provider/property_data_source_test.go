// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"fmt"
	"net/http"
	"regexp"
	"testing"

	"github.com/hashicorp/terraform-plugin-testing/helper/resource"
	"github.com/hashicorp/terraform-plugin-testing/knownvalue"
	"github.com/hashicorp/terraform-plugin-testing/statecheck"
	"github.com/hashicorp/terraform-plugin-testing/terraform"
	"github.com/hashicorp/terraform-plugin-testing/tfjsonpath"

	"github.com/safeplots/terraform-provider-safeplots/internal/provider/testhelpers"
)

func TestAccPropertiesDataSource_firstPage(t *testing.T) {
	srv := testAccServer(t)
	dName := "data.safeplots_properties.test"

	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config: testhelpers.Config(t, asBuyer(srv),
					testhelpers.Render(t, testhelpers.DataPropertiesTmpl, testhelpers.DataPropertiesTmplCfg{Name: "test", Limit: 5})),
				ConfigStateChecks: []statecheck.StateCheck{
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("properties"), knownvalue.ListSizeExact(5)),
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("properties").AtSliceIndex(0).AtMapKey("id"), knownvalue.StringExact("prop-14")),
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("page"), knownvalue.Int64Exact(1)),
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("limit"), knownvalue.Int64Exact(5)),
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("total_count"), knownvalue.Int64Exact(14)),
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("total_pages"), knownvalue.Int64Exact(3)),
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("has_more"), knownvalue.Bool(true)),
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("has_previous"), knownvalue.Bool(false)),
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("page_numbers"), knownvalue.ListExact([]knownvalue.Check{
						knownvalue.StringExact("1"), knownvalue.StringExact("2"), knownvalue.StringExact("3"),
					})),
				},
			},
			{
				Config: testhelpers.Config(t, asBuyer(srv),
					testhelpers.Render(t, testhelpers.DataPropertiesTmpl, testhelpers.DataPropertiesTmplCfg{Name: "test", Page: 3, Limit: 5})),
				ConfigStateChecks: []statecheck.StateCheck{
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("properties"), knownvalue.ListSizeExact(4)),
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("has_more"), knownvalue.Bool(false)),
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("has_previous"), knownvalue.Bool(true)),
				},
			},
		},
	})
}

func TestAccPropertiesDataSource_filters(t *testing.T) {
	srv := testAccServer(t)
	dName := "data.safeplots_properties.test"
	provider := asBuyer(srv)
	provider.PageSize = 2

	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config: testhelpers.Config(t, provider, testhelpers.Render(t, testhelpers.DataPropertiesTmpl,
					testhelpers.DataPropertiesTmplCfg{Name: "test", Type: "house", FetchAll: true})),
				ConfigStateChecks: []statecheck.StateCheck{
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("properties"), knownvalue.ListSizeExact(3)),
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("total_count"), knownvalue.Int64Exact(3)),
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("limit"), knownvalue.Int64Exact(2)),
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("page"), knownvalue.Int64Exact(2)),
				},
			},
			{
				Config: testhelpers.Config(t, provider, testhelpers.Render(t, testhelpers.DataPropertiesTmpl,
					testhelpers.DataPropertiesTmplCfg{Name: "test", City: "pune", State: "Maharashtra", Limit: 10})),
				ConfigStateChecks: []statecheck.StateCheck{
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("total_count"), knownvalue.Int64Exact(2)),
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("properties").AtSliceIndex(0).AtMapKey("city"), knownvalue.StringExact("Pune")),
				},
			},
			{
				Config: testhelpers.Config(t, provider, testhelpers.Render(t, testhelpers.DataPropertiesTmpl,
					testhelpers.DataPropertiesTmplCfg{Name: "test", Search: "no such listing"})),
				ConfigStateChecks: []statecheck.StateCheck{
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("properties"), knownvalue.ListSizeExact(0)),
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("total_pages"), knownvalue.Int64Exact(0)),
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("page_numbers"), knownvalue.ListSizeExact(0)),
				},
			},
			{
				Config: testhelpers.Config(t, provider, testhelpers.Render(t, testhelpers.DataPropertiesTmpl,
					testhelpers.DataPropertiesTmplCfg{Name: "test", Sort: "cheapest"})),
				ExpectError: regexp.MustCompile(`Invalid Attribute Value Match`),
			},
		},
	})
}

func TestAccPropertyDataSource_retriesTransientRead(t *testing.T) {
	srv := testAccServer(t)
	srv.Fail(http.MethodGet, "/properties/prop-01", http.StatusServiceUnavailable, 1)
	provider := asBuyer(srv)
	provider.ReadRetryCount = 2
	dName := "data.safeplots_property.test"

	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config: testhelpers.Config(t, provider, `data "safeplots_property" "test" { id = "prop-01" }`),
				ConfigStateChecks: []statecheck.StateCheck{
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("title"), knownvalue.StringExact("House in Mysuru No. 1")),
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("display_price"), knownvalue.StringExact("₹50 Lakh")),
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("display_area"), knownvalue.StringExact("1,300 Sq.Ft.")),
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("type_label"), knownvalue.StringExact("House")),
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("seller_id"), knownvalue.StringExact("seller-1")),
				},
				Check: func(*terraform.State) error {
					if got := srv.Hits(http.MethodGet, "/properties/prop-01"); got < 2 {
						return fmt.Errorf("expected the failed read to be retried, saw %d request(s)", got)
					}
					return nil
				},
			},
		},
	})
}

func TestAccPropertyDataSource_notFound(t *testing.T) {
	srv := testAccServer(t)
	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				// Pending listings are hidden from buyers.
				Config:      testhelpers.Config(t, asBuyer(srv), `data "safeplots_property" "test" { id = "prop-pending" }`),
				ExpectError: regexp.MustCompile(`HTTP status: 404`),
			},
		},
	})
}

func TestAccFeaturedPropertiesDataSource(t *testing.T) {
	srv := testAccServer(t)
	dName := "data.safeplots_featured_properties.test"

	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config: testhelpers.Config(t, asBuyer(srv), `data "safeplots_featured_properties" "test" {}`),
				ConfigStateChecks: []statecheck.StateCheck{
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("limit"), knownvalue.Int64Exact(6)),
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("properties"), knownvalue.ListSizeExact(3)),
				},
			},
			{
				Config: testhelpers.Config(t, asBuyer(srv), `data "safeplots_featured_properties" "test" { limit = 2 }`),
				ConfigStateChecks: []statecheck.StateCheck{
					statecheck.ExpectKnownValue(dName, tfjsonpath.New("properties"), knownvalue.ListSizeExact(2)),
				},
			},
		},
	})
}
