// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/hashicorp/terraform-plugin-testing/helper/resource"
	"github.com/hashicorp/terraform-plugin-testing/knownvalue"
	"github.com/hashicorp/terraform-plugin-testing/statecheck"
	"github.com/hashicorp/terraform-plugin-testing/terraform"
	"github.com/hashicorp/terraform-plugin-testing/tfjsonpath"

	"github.com/safeplots/terraform-provider-safeplots/internal/provider/testhelpers"
)

func TestAccSavedPropertyResource_basic(t *testing.T) {
	srv := testAccServer(t)
	rName := "safeplots_saved_property.test"
	config := func(id string) string {
		return testhelpers.Config(t, asBuyer(srv), fmt.Sprintf(`resource "safeplots_saved_property" "test" { property_id = %q }`, id))
	}

	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config: config("prop-02"),
				ConfigStateChecks: []statecheck.StateCheck{
					statecheck.ExpectKnownValue(rName, tfjsonpath.New("id"), knownvalue.StringExact("prop-02")),
					statecheck.ExpectKnownValue(rName, tfjsonpath.New("title"), knownvalue.StringExact("Flat in Pune No. 2")),
					statecheck.ExpectKnownValue(rName, tfjsonpath.New("display_price"), knownvalue.StringExact("₹2.25 Cr")),
					statecheck.ExpectKnownValue(rName, tfjsonpath.New("city"), knownvalue.StringExact("Pune")),
				},
			},
			{
				ImportState:       true,
				ImportStateVerify: true,
				ResourceName:      rName,
			},
			{
				Config: config("prop-03"),
				ConfigStateChecks: []statecheck.StateCheck{
					statecheck.ExpectKnownValue(rName, tfjsonpath.New("title"), knownvalue.StringExact("Villa in Hyderabad No. 3")),
				},
			},
			{
				Config:      config("prop-missing"),
				ExpectError: regexp.MustCompile(`HTTP status: 404`),
			},
		},
	})
}

func TestAccInquiryResource_basic(t *testing.T) {
	srv := testAccServer(t)
	rName := "safeplots_inquiry.test"

	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config: testhelpers.Config(t, asBuyer(srv), `
resource "safeplots_inquiry" "test" {
  property_id = "prop-01"
  message     = "Is the title clear? I would like to visit this weekend."
}`),
				ConfigStateChecks: []statecheck.StateCheck{
					statecheck.ExpectKnownValue(rName, tfjsonpath.New("status"), knownvalue.StringExact("new")),
					statecheck.ExpectKnownValue(rName, tfjsonpath.New("seller_id"), knownvalue.StringExact("seller-1")),
					statecheck.ExpectKnownValue(rName, tfjsonpath.New("id"), knownvalue.NotNull()),
				},
			},
			{
				ImportState:       true,
				ImportStateVerify: true,
				ResourceName:      rName,
			},
			{
				Config: testhelpers.Config(t, asBuyer(srv), `
resource "safeplots_inquiry" "test" {
  property_id = "prop-01"
  message     = ""
}`),
				ExpectError: regexp.MustCompile(`Invalid Attribute Value Length`),
			},
		},
	})
}

func TestAccPropertyReportResource_basic(t *testing.T) {
	srv := testAccServer(t)
	rName := "safeplots_property_report.test"
	config := func(description string) string {
		return testhelpers.Config(t, asBuyer(srv), fmt.Sprintf(`
resource "safeplots_property_report" "test" {
  property_id = "prop-03"
  reason      = "incorrect_info"
  description = %q
}`, description))
	}

	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config:      config("too short"),
				ExpectError: regexp.MustCompile(`Invalid Attribute Value Length`),
			},
			{
				Config: config("The listed area does not match the sale deed."),
				ConfigStateChecks: []statecheck.StateCheck{
					statecheck.ExpectKnownValue(rName, tfjsonpath.New("status"), knownvalue.StringExact("pending")),
					statecheck.ExpectKnownValue(rName, tfjsonpath.New("reason"), knownvalue.StringExact("incorrect_info")),
				},
				Check: func(s *terraform.State) error {
					id := s.RootModule().Resources[rName].Primary.ID
					if _, ok := srv.Report(id); !ok {
						return fmt.Errorf("report %s was not filed", id)
					}
					return nil
				},
			},
			{
				// Reports cannot be read back without admin rights, so a
				// refresh keeps the filed values.
				Config:   config("The listed area does not match the sale deed."),
				PlanOnly: true,
			},
		},
	})
}
