// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"regexp"
	"testing"

	"github.com/hashicorp/terraform-plugin-testing/helper/resource"
	"github.com/hashicorp/terraform-plugin-testing/knownvalue"
	"github.com/hashicorp/terraform-plugin-testing/statecheck"
	"github.com/hashicorp/terraform-plugin-testing/tfjsonpath"

	"github.com/safeplots/terraform-provider-safeplots/internal/provider/testhelpers"
)

func TestAccAdminStatsDataSource(t *testing.T) {
	srv := testAccServer(t)
	dName := "data.safeplots_admin_stats.test"
	expect := map[string]int64{
		"total_users":                  5,
		"total_sellers":                2,
		"total_properties":             16,
		"pending_approvals":            1,
		"pending_seller_verifications": 1,
		"properties_sold":              1,
		"total_reports":                1,
		"banned_users":                 1,
		"total_inquiries":              0,
	}
	var checks []statecheck.StateCheck
	for attr, n := range expect {
		checks = append(checks, statecheck.ExpectKnownValue(dName, tfjsonpath.New(attr), knownvalue.Int64Exact(n)))
	}

	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config:            testhelpers.Config(t, asAdmin(srv), `data "safeplots_admin_stats" "test" {}`),
				ConfigStateChecks: checks,
			},
			{
				Config:      testhelpers.Config(t, asBuyer(srv), `data "safeplots_admin_stats" "test" {}`),
				ExpectError: regexp.MustCompile(`Admin stats can only be managed with an admin account`),
			},
		},
	})
}

func TestAccSellerAndUserStatsDataSources(t *testing.T) {
	srv := testAccServer(t)

	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config: testhelpers.Config(t, asSeller(srv), `data "safeplots_seller_stats" "test" {}`),
				ConfigStateChecks: []statecheck.StateCheck{
					statecheck.ExpectKnownValue("data.safeplots_seller_stats.test", tfjsonpath.New("total_properties"), knownvalue.Int64Exact(16)),
					statecheck.ExpectKnownValue("data.safeplots_seller_stats.test", tfjsonpath.New("live_properties"), knownvalue.Int64Exact(14)),
					statecheck.ExpectKnownValue("data.safeplots_seller_stats.test", tfjsonpath.New("pending_properties"), knownvalue.Int64Exact(1)),
					statecheck.ExpectKnownValue("data.safeplots_seller_stats.test", tfjsonpath.New("sold_properties"), knownvalue.Int64Exact(1)),
					statecheck.ExpectKnownValue("data.safeplots_seller_stats.test", tfjsonpath.New("new_inquiries"), knownvalue.Int64Exact(0)),
				},
			},
			{
				Config: testhelpers.Config(t, asBuyer(srv), `
resource "safeplots_saved_property" "test" {
  property_id = "prop-05"
}

data "safeplots_user_stats" "test" {
  depends_on = [safeplots_saved_property.test]
}
`),
				ConfigStateChecks: []statecheck.StateCheck{
					statecheck.ExpectKnownValue("data.safeplots_user_stats.test", tfjsonpath.New("saved_properties"), knownvalue.Int64Exact(1)),
					statecheck.ExpectKnownValue("data.safeplots_user_stats.test", tfjsonpath.New("sent_inquiries"), knownvalue.Int64Exact(0)),
				},
			},
		},
	})
}
