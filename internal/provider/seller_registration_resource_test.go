// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"testing"

	"github.com/hashicorp/terraform-plugin-testing/helper/resource"
	"github.com/hashicorp/terraform-plugin-testing/knownvalue"
	"github.com/hashicorp/terraform-plugin-testing/statecheck"
	"github.com/hashicorp/terraform-plugin-testing/terraform"
	"github.com/hashicorp/terraform-plugin-testing/tfjsonpath"

	"github.com/safeplots/terraform-provider-safeplots/internal/provider/testhelpers"
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots/safeplotstest"
)

const sellerRegistrationName = "safeplots_seller_registration.test"

func TestAccSellerRegistrationResource_withURL(t *testing.T) {
	srv := testAccServer(t)
	cfg := testhelpers.SellerRegistrationTmplCfg{
		Name:        "Bala Buyer",
		Phone:       "9800000001",
		IDProofType: "pan",
		IDProofURL:  "https://files.safeplots.test/proofs/bala.pdf",
	}

	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config: testhelpers.Config(t, asBuyer(srv), testhelpers.Render(t, testhelpers.SellerRegistrationTmpl, cfg)),
				ConfigStateChecks: []statecheck.StateCheck{
					statecheck.ExpectKnownValue(sellerRegistrationName, tfjsonpath.New("status"), knownvalue.StringExact("pending")),
					statecheck.ExpectKnownValue(sellerRegistrationName, tfjsonpath.New("is_verified"), knownvalue.Bool(false)),
					statecheck.ExpectKnownValue(sellerRegistrationName, tfjsonpath.New("user_id"), knownvalue.StringExact("user-1")),
					statecheck.ExpectKnownValue(sellerRegistrationName, tfjsonpath.New("email"), knownvalue.StringExact(safeplotstest.BuyerEmail)),
					statecheck.ExpectKnownValue(sellerRegistrationName, tfjsonpath.New("id_proof_url"), knownvalue.StringExact(cfg.IDProofURL)),
				},
			},
			{
				ImportState:       true,
				ImportStateVerify: true,
				ResourceName:      sellerRegistrationName,
			},
		},
	})
}

func TestAccSellerRegistrationResource_uploadsFile(t *testing.T) {
	srv := testAccServer(t)
	file := testhelpers.MustCopy(t, "aadhar.pdf", strings.NewReader("%PDF-1.4 identity proof"))
	cfg := testhelpers.SellerRegistrationTmplCfg{
		Name:        "Bala Buyer",
		Phone:       "9800000001",
		IDProofType: "aadhar",
		IDProofFile: file,
	}

	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config: testhelpers.Config(t, asBuyer(srv), testhelpers.Render(t, testhelpers.SellerRegistrationTmpl, cfg)),
				ConfigStateChecks: []statecheck.StateCheck{
					statecheck.ExpectKnownValue(sellerRegistrationName, tfjsonpath.New("id_proof_url"),
						knownvalue.StringRegexp(regexp.MustCompile(`/files/document/.+/aadhar\.pdf$`))),
					statecheck.ExpectKnownValue(sellerRegistrationName, tfjsonpath.New("id_proof_file"), knownvalue.StringExact(file)),
				},
				Check: func(*terraform.State) error {
					if got := srv.Hits(http.MethodPost, "/upload/document"); got != 1 {
						return fmt.Errorf("expected one upload, got %d", got)
					}
					return nil
				},
			},
			{
				// Re-planning must not upload again.
				Config:   testhelpers.Config(t, asBuyer(srv), testhelpers.Render(t, testhelpers.SellerRegistrationTmpl, cfg)),
				PlanOnly: true,
			},
		},
	})
}

func TestAccSellerRegistrationResource_errors(t *testing.T) {
	srv := testAccServer(t)
	both := testhelpers.SellerRegistrationTmplCfg{
		Name: "Arun", Phone: "9800000003", IDProofType: "pan",
		IDProofURL: "https://files.safeplots.test/p.pdf", IDProofFile: "/tmp/p.pdf",
	}
	existing := testhelpers.SellerRegistrationTmplCfg{
		Name: "Arun", Phone: "9800000003", IDProofType: "pan", IDProofURL: "https://files.safeplots.test/p.pdf",
	}
	missing := existing
	missing.IDProofURL = ""
	missing.IDProofFile = "/nonexistent/proof.pdf"

	applicant := providerAs(srv, safeplotstest.ApplicantEmail, safeplotstest.ApplicantPassword)
	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config:      testhelpers.Config(t, applicant, testhelpers.Render(t, testhelpers.SellerRegistrationTmpl, both)),
				ExpectError: regexp.MustCompile(`Invalid Attribute Combination`),
			},
			{
				Config:      testhelpers.Config(t, applicant, testhelpers.Render(t, testhelpers.SellerRegistrationTmpl, existing)),
				ExpectError: regexp.MustCompile(`HTTP status: 409`),
			},
			{
				Config:      testhelpers.Config(t, asBuyer(srv), testhelpers.Render(t, testhelpers.SellerRegistrationTmpl, missing)),
				ExpectError: regexp.MustCompile(`Cannot read identity document`),
			},
			{
				Config:      testhelpers.Config(t, asAdmin(srv), testhelpers.Render(t, testhelpers.SellerRegistrationTmpl, existing)),
				ExpectError: regexp.MustCompile(`Admin accounts cannot apply as sellers`),
			},
		},
	})
}
