// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"time"

	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/safeplots/terraform-provider-safeplots/internal/analytics"
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

// readPolicy is the retry budget applied to reads.
type readPolicy struct {
	count int
	delay time.Duration
}

type ServiceClient struct {
	client           *safeplots.Client
	me               *safeplots.User
	providerTimeouts opTimeouts
	reads            readPolicy
	pageSize         int
	tracker          *analytics.Tracker
}

// configureFrom copies the provider's configured state into the service client.
func (s *ServiceClient) configureFrom(p *SafePlotsProvider) {
	s.client = p.client
	s.me = p.me
	s.providerTimeouts = p.providerTimeouts
	s.reads = readPolicy{count: p.rc.readRetryCount, delay: p.rc.readRetryDelay()}
	s.pageSize = p.rc.pageSize
	s.tracker = p.tracker
}

func (s *ServiceClient) isAdmin() bool {
	return s.me != nil && s.me.Role == safeplots.RoleAdmin
}

// requireAdmin reports an error unless the provider is signed in as an admin.
func (s *ServiceClient) requireAdmin(diags *diag.Diagnostics, kind string) bool {
	if s.isAdmin() {
		return true
	}
	diags.AddError("Admin access required", kind+" can only be managed with an admin account.")
	return false
}
