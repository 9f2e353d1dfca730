// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/terraform-plugin-framework-validators/int64validator"
	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/provider"
	"github.com/hashicorp/terraform-plugin-framework/provider/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
	"github.com/safeplots/terraform-provider-safeplots/internal/analytics"
	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

// Ensure SafePlotsProvider satisfies various provider interfaces.
var _ provider.Provider = &SafePlotsProvider{}
var _ provider.ProviderWithValidateConfig = &SafePlotsProvider{}

// SafePlotsProvider defines the provider implementation.
type SafePlotsProvider struct {
	// version is set to the provider version on release, "dev" when the
	// provider is built and ran locally, and "test" when running acceptance
	// testing.
	version string
	client  *safeplots.Client
	// me is the authenticated account, loaded once during Configure.
	me               *safeplots.User
	rc               resolvedConfig
	providerTimeouts opTimeouts
	tracker          *analytics.Tracker

	// storeMu guards the SQLite analytics store, which outlives a single
	// Configure call and is reopened only when its path changes.
	storeMu   sync.Mutex
	store     *analytics.SQLiteStorage
	storePath string
}

// SafePlotsProviderModel describes the provider data model.
type SafePlotsProviderModel struct {
	Endpoint   types.String `tfsdk:"endpoint"`
	AuthMethod types.String `tfsdk:"auth_method"`

	Token    types.String `tfsdk:"token"`
	Email    types.String `tfsdk:"email"`
	Password types.String `tfsdk:"password"`

	HTTPTimeoutSeconds    types.Int64 `tfsdk:"http_timeout_seconds"`
	RetryOn4295xx         types.Bool  `tfsdk:"retry_on_429_5xx"`
	RetryMaxAttempts      types.Int64 `tfsdk:"retry_max_attempts"`
	RetryInitialBackoffMs types.Int64 `tfsdk:"retry_initial_backoff_ms"`
	RetryMaxBackoffMs     types.Int64 `tfsdk:"retry_max_backoff_ms"`
	ReadRetryCount        types.Int64 `tfsdk:"read_retry_count"`
	ReadRetryDelayMs      types.Int64 `tfsdk:"read_retry_delay_ms"`
	PageSize              types.Int64 `tfsdk:"page_size"`

	EmailRedactionMode types.String `tfsdk:"email_redaction_mode"`
	AnalyticsStorePath types.String `tfsdk:"analytics_store_path"`

	OperationTimeouts *OperationTimeoutsModel `tfsdk:"operation_timeouts"`
}

func (p *SafePlotsProvider) Metadata(_ context.Context, _ provider.MetadataRequest, resp *provider.MetadataResponse) {
	resp.TypeName = "safeplots"
	resp.Version = p.version
}

func (p *SafePlotsProvider) Schema(_ context.Context, _ provider.SchemaRequest, resp *provider.SchemaResponse) {
	durationAttr := func(op string) schema.StringAttribute {
		return schema.StringAttribute{
			MarkdownDescription: fmt.Sprintf("Timeout for %s operations as a Go duration (e.g. `30s`, `2m`).", op),
			Optional:            true,
		}
	}
	resp.Schema = schema.Schema{
		MarkdownDescription: "Manage SafePlots listings, seller onboarding and moderation through the SafePlots REST API.",
		Attributes: map[string]schema.Attribute{
			attrEndpoint: schema.StringAttribute{
				MarkdownDescription: "Base URL of the API, including the `/api` prefix (e.g. `https://api.safeplots.in/api`). Falls back to `SAFEPLOTS_ENDPOINT`, then `SAFEPLOTS_API_URL` and `VITE_API_URL`.",
				Optional:            true,
			},
			attrAuthMethod: schema.StringAttribute{
				MarkdownDescription: "Authentication method: `token` or `password`. Defaults to `token` when a token is configured, otherwise `password`.",
				Optional:            true,
				Validators: []validator.String{
					stringvalidator.OneOf(authMethodToken, authMethodPassword),
				},
			},
			attrToken: schema.StringAttribute{
				MarkdownDescription: "Bearer token (JWT) issued by the API. Falls back to `SAFEPLOTS_TOKEN`.",
				Optional:            true,
				Sensitive:           true,
			},
			attrEmail: schema.StringAttribute{
				MarkdownDescription: "Account email for password sign-in. Falls back to `SAFEPLOTS_EMAIL`.",
				Optional:            true,
			},
			attrPassword: schema.StringAttribute{
				MarkdownDescription: "Account password for password sign-in. Falls back to `SAFEPLOTS_PASSWORD`.",
				Optional:            true,
				Sensitive:           true,
			},
			attrHTTPTimeoutSeconds: schema.Int64Attribute{
				MarkdownDescription: fmt.Sprintf("Per-request HTTP timeout in seconds. Defaults to %d.", defaultHTTPTimeoutSeconds),
				Optional:            true,
				Validators:          []validator.Int64{int64validator.Between(1, 600)},
			},
			attrRetryOn4295xx: schema.BoolAttribute{
				MarkdownDescription: "Retry idempotent requests answered with 429 or 5xx at the transport level. Defaults to true.",
				Optional:            true,
			},
			attrRetryMaxAttempts: schema.Int64Attribute{
				MarkdownDescription: fmt.Sprintf("Maximum transport retries. Defaults to %d.", defaultRetryMaxAttempts),
				Optional:            true,
			},
			attrRetryInitialBackoff: schema.Int64Attribute{
				MarkdownDescription: fmt.Sprintf("Initial transport backoff in milliseconds. Defaults to %d.", defaultRetryInitialBackoffMs),
				Optional:            true,
			},
			attrRetryMaxBackoff: schema.Int64Attribute{
				MarkdownDescription: fmt.Sprintf("Maximum transport backoff in milliseconds. Defaults to %d.", defaultRetryMaxBackoffMs),
				Optional:            true,
			},
			attrReadRetryCount: schema.Int64Attribute{
				MarkdownDescription: fmt.Sprintf("Automatic re-attempts of a failed read. Client errors are never retried. Defaults to %d.", defaultReadRetryCount),
				Optional:            true,
			},
			attrReadRetryDelay: schema.Int64Attribute{
				MarkdownDescription: fmt.Sprintf("Base delay between read attempts in milliseconds; attempt n waits n times this value. Defaults to %d.", defaultReadRetryDelayMs),
				Optional:            true,
			},
			attrPageSize: schema.Int64Attribute{
				MarkdownDescription: fmt.Sprintf("Default page size for listings. Defaults to %d.", defaultPageSize),
				Optional:            true,
			},
			attrEmailRedactionMode: schema.StringAttribute{
				MarkdownDescription: "How email addresses appear in logs and diagnostics: `full` (default) or `mask`.",
				Optional:            true,
				Validators: []validator.String{
					stringvalidator.OneOf("full", "mask"),
				},
			},
			attrAnalyticsStorePath: schema.StringAttribute{
				MarkdownDescription: "Path of a SQLite file that keeps the analytics event queue between runs. Falls back to `SAFEPLOTS_ANALYTICS_STORE`; when unset events are kept in memory.",
				Optional:            true,
			},
			attrOperationTimeouts: schema.SingleNestedAttribute{
				MarkdownDescription: "Default timeouts applied to resource operations.",
				Optional:            true,
				Attributes: map[string]schema.Attribute{
					"create": durationAttr("create"),
					"read":   durationAttr("read"),
					"update": durationAttr("update"),
					"delete": durationAttr("delete"),
				},
			},
		},
	}
}

// addValidationErrs surfaces validation errors, scoped to their attribute when known.
func addValidationErrs(diags *diag.Diagnostics, errs []validationErr, parent string) {
	for _, e := range errs {
		switch {
		case e.attr == "":
			diags.AddError(e.summary, e.detail)
		case parent != "":
			diags.AddAttributeError(path.Root(parent).AtName(e.attr), e.summary, e.detail)
		default:
			diags.AddAttributeError(path.Root(e.attr), e.summary, e.detail)
		}
	}
}

// hasUnknown reports whether any connection attribute is still unknown, in
// which case validation waits for apply.
func (m SafePlotsProviderModel) hasUnknown() bool {
	return m.Endpoint.IsUnknown() || m.AuthMethod.IsUnknown() || m.Token.IsUnknown() ||
		m.Email.IsUnknown() || m.Password.IsUnknown()
}

func (p *SafePlotsProvider) ValidateConfig(ctx context.Context, req provider.ValidateConfigRequest, resp *provider.ValidateConfigResponse) {
	var data SafePlotsProviderModel
	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}
	if _, errs := parseOperationTimeouts(data.OperationTimeouts); len(errs) > 0 {
		addValidationErrs(&resp.Diagnostics, errs, attrOperationTimeouts)
	}
	if data.hasUnknown() {
		return
	}
	rc := deriveResolvedConfig(data)
	addValidationErrs(&resp.Diagnostics, validateResolvedConfig(rc, time.Now()), "")
}

func (p *SafePlotsProvider) Configure(ctx context.Context, req provider.ConfigureRequest, resp *provider.ConfigureResponse) {
	var data SafePlotsProviderModel
	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	rc := deriveResolvedConfig(data)
	if errs := validateResolvedConfig(rc, time.Now()); len(errs) > 0 {
		addValidationErrs(&resp.Diagnostics, errs, "")
		return
	}
	timeouts, errs := parseOperationTimeouts(data.OperationTimeouts)
	if len(errs) > 0 {
		addValidationErrs(&resp.Diagnostics, errs, attrOperationTimeouts)
		return
	}

	client, err := p.initClient(buildHTTPClient(rc), rc)
	if err != nil {
		resp.Diagnostics.AddError("Error creating SafePlots client", RedactSecrets(err.Error()))
		return
	}
	me, ok := p.testConnection(ctx, client, &resp.Diagnostics)
	if !ok {
		return
	}
	if me.IsBanned() {
		resp.Diagnostics.AddError("Account Suspended", "Your account has been suspended. Contact support for assistance.")
		return
	}

	tracker, err := p.openTracker(ctx, rc, client, me)
	if err != nil {
		resp.Diagnostics.AddAttributeWarning(path.Root(attrAnalyticsStorePath), "Analytics store unavailable", fmt.Sprintf("%s; events are kept in memory for this run.", err))
		tracker, _ = p.openTracker(ctx, resolvedConfig{}, client, me)
	}

	p.client = client
	p.me = me
	p.rc = rc
	p.providerTimeouts = timeouts
	p.tracker = tracker

	tracker.TrackLogin(ctx, rc.authMethod)
	tflog.Info(ctx, "configured SafePlots client", map[string]interface{}{
		"endpoint": rc.endpoint,
		"role":     string(me.Role),
		"email":    sanitizeEmail(me.Email, rc.emailRedactionMode),
	})

	resp.ResourceData = p
	resp.DataSourceData = p
}

// openTracker builds the analytics tracker, persisted in SQLite when a
// store path is configured. Events are attributed to the session user.
func (p *SafePlotsProvider) openTracker(ctx context.Context, rc resolvedConfig, client *safeplots.Client, me *safeplots.User) (*analytics.Tracker, error) {
	userID := func() string {
		if u := client.Session.User(); u != nil {
			return u.ID
		}
		return me.ID
	}
	store, err := p.analyticsStorage(ctx, rc.analyticsStorePath)
	if err != nil {
		return nil, err
	}
	return analytics.NewTracker(analytics.NewQueue(store), userID), nil
}

// analyticsStorage returns the store for path. The SQLite store for a path
// is opened once and reused; switching to another path, or to none, closes it.
func (p *SafePlotsProvider) analyticsStorage(ctx context.Context, storePath string) (analytics.Storage, error) {
	p.storeMu.Lock()
	defer p.storeMu.Unlock()

	if p.store != nil && p.storePath == storePath {
		return p.store, nil
	}
	if p.store != nil {
		if err := p.store.Close(); err != nil {
			tflog.Warn(ctx, "closing analytics store failed", map[string]interface{}{"path": p.storePath, "error": err.Error()})
		}
		p.store, p.storePath = nil, ""
	}
	if storePath == "" {
		return analytics.NewMemoryStorage(), nil
	}
	store, err := analytics.OpenSQLite(ctx, storePath)
	if err != nil {
		return nil, err
	}
	p.store, p.storePath = store, storePath
	return store, nil
}

// providerFrom extracts the configured provider from ProviderData.
func providerFrom(data any, kind string, diags *diag.Diagnostics) (*SafePlotsProvider, bool) {
	if data == nil {
		return nil, false
	}
	p, ok := data.(*SafePlotsProvider)
	if !ok {
		diags.AddError(
			fmt.Sprintf("Unexpected %s Configure Type", kind),
			fmt.Sprintf("Expected *SafePlotsProvider, got: %T. Please report this issue to the provider developers.", data),
		)
		return nil, false
	}
	return p, true
}

func (p *SafePlotsProvider) Resources(_ context.Context) []func() resource.Resource {
	return []func() resource.Resource{
		NewPropertyResource,
		NewSellerRegistrationResource,
		NewSellerVerificationResource,
		NewPropertyModerationResource,
		NewReportResolutionResource,
		NewUserBanResource,
		NewSavedPropertyResource,
		NewInquiryResource,
		NewPropertyReportResource,
	}
}

func (p *SafePlotsProvider) DataSources(_ context.Context) []func() datasource.DataSource {
	return []func() datasource.DataSource{
		NewPropertiesDataSource,
		NewPropertyDataSource,
		NewFeaturedPropertiesDataSource,
		NewSellersDataSource,
		NewReportsDataSource,
		NewAdminStatsDataSource,
		NewSellerStatsDataSource,
		NewUserStatsDataSource,
	}
}

func New(version string) func() provider.Provider {
	return func() provider.Provider {
		return &SafePlotsProvider{
			version: version,
		}
	}
}
