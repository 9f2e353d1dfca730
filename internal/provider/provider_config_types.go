// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"time"

	"github.com/hashicorp/terraform-plugin-framework/types"
)

// validationErr captures a configuration validation error and optional attribute path.
type validationErr struct {
	attr    string // empty for general error
	summary string
	detail  string
}

// resolvedConfig is the provider configuration after env fallbacks and defaults.
type resolvedConfig struct {
	endpoint              string
	authMethod            string
	token                 string
	email                 string
	password              string
	httpTimeoutSeconds    int
	retryOn4295xx         bool
	retryMaxAttempts      int
	retryInitialBackoffMs int
	retryMaxBackoffMs     int
	readRetryCount        int
	readRetryDelayMs      int
	pageSize              int
	emailRedactionMode    string
	analyticsStorePath    string
}

func (rc resolvedConfig) readRetryDelay() time.Duration {
	return time.Duration(rc.readRetryDelayMs) * time.Millisecond
}

type OperationTimeoutsModel struct {
	Create types.String `tfsdk:"create"`
	Read   types.String `tfsdk:"read"`
	Update types.String `tfsdk:"update"`
	Delete types.String `tfsdk:"delete"`
}

type opTimeouts struct {
	Create time.Duration
	Read   time.Duration
	Update time.Duration
	Delete time.Duration
}
