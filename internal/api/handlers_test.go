package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/ad-launcher/internal/config"
	"github.com/ignite/ad-launcher/internal/domain"
	"github.com/ignite/ad-launcher/internal/insights"
	"github.com/ignite/ad-launcher/internal/launch"
	"github.com/ignite/ad-launcher/internal/pkg/logger"
	"github.com/ignite/ad-launcher/internal/repository/postgres"
)

type fakeCredentials struct {
	cred *domain.AccessCredential
	err  error
}

func (f *fakeCredentials) GetCredential(ctx context.Context, orgID, connectionID string) (*domain.AccessCredential, error) {
	return f.cred, f.err
}

type fakeBulk struct {
	result *domain.BulkLaunchResult
	err    error
	got    domain.BulkLaunchRequest
}

func (f *fakeBulk) Launch(ctx context.Context, req domain.BulkLaunchRequest) (*domain.BulkLaunchResult, error) {
	f.got = req
	return f.result, f.err
}

type fakeSyncer struct {
	report *insights.Report
}

func (f *fakeSyncer) SyncAccounts(ctx context.Context, orgID string, fetcher insights.Fetcher, from, to time.Time) (*insights.Report, error) {
	return f.report, nil
}

func testHandlers(creds CredentialSource, bulkLauncher BulkLauncher, syncer InsightSyncer) *Handlers {
	cfg := &config.Config{}
	log := logger.Discard()
	return NewHandlers(cfg, creds, launch.NewRunner(log, nil), bulkLauncher, syncer, log, nil, nil, nil)
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleLaunchDryRun(t *testing.T) {
	router := SetupRoutes(testHandlers(&fakeCredentials{}, &fakeBulk{}, &fakeSyncer{}), nil)

	rec := postJSON(t, router, "/api/launch", launchRequest{
		OrgID:        "org_1",
		ConnectionID: "conn_1",
		DryRun:       true,
		Blueprint: domain.Blueprint{
			ID:       "bp_1",
			Name:     "Summer Sale",
			Platform: "meta",
			Config: &domain.BlueprintConfig{
				Budget:     50,
				BudgetType: domain.BudgetDaily,
				TargetAudience: domain.Audience{
					Name:      "US 25-45",
					Age:       domain.AgeRange{Min: 25, Max: 45},
					Locations: []string{"US"},
				},
				Creative: domain.Creative{Headline: "Big Sale", Description: "Ends Friday"},
			},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var result domain.LaunchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.Created, 3)
	assert.Equal(t, 1, result.Totals.Campaigns)
}

func TestHandleLaunchInvalidBlueprint(t *testing.T) {
	router := SetupRoutes(testHandlers(&fakeCredentials{}, &fakeBulk{}, &fakeSyncer{}), nil)

	rec := postJSON(t, router, "/api/launch", launchRequest{
		DryRun:    true,
		Blueprint: domain.Blueprint{ID: "bp_1", Platform: "meta"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "must have a name")
}

func TestHandleLaunchUnknownPlatform(t *testing.T) {
	creds := &fakeCredentials{cred: &domain.AccessCredential{AccessToken: "tok"}}
	router := SetupRoutes(testHandlers(creds, &fakeBulk{}, &fakeSyncer{}), nil)

	rec := postJSON(t, router, "/api/launch", launchRequest{
		Blueprint: domain.Blueprint{Platform: "tiktok"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "platform not implemented")
}

func TestHandleBulkLaunch(t *testing.T) {
	fake := &fakeBulk{result: &domain.BulkLaunchResult{Success: true, CampaignID: "120001"}}
	router := SetupRoutes(testHandlers(&fakeCredentials{}, fake, &fakeSyncer{}), nil)

	rec := postJSON(t, router, "/api/launch/bulk", domain.BulkLaunchRequest{
		OrgID:        "org_1",
		ConnectionID: "conn_1",
		AdAccountID:  "acct_1",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "org_1", fake.got.OrgID)
	assert.Contains(t, rec.Body.String(), "120001")
}

func TestHandleBulkLaunchMissingIDs(t *testing.T) {
	router := SetupRoutes(testHandlers(&fakeCredentials{}, &fakeBulk{}, &fakeSyncer{}), nil)
	rec := postJSON(t, router, "/api/launch/bulk", domain.BulkLaunchRequest{OrgID: "org_1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleBulkLaunchCredentialNotFound(t *testing.T) {
	fake := &fakeBulk{err: postgres.ErrNotFound}
	router := SetupRoutes(testHandlers(&fakeCredentials{}, fake, &fakeSyncer{}), nil)

	rec := postJSON(t, router, "/api/launch/bulk", domain.BulkLaunchRequest{
		OrgID:        "org_1",
		ConnectionID: "conn_1",
		AdAccountID:  "acct_1",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleInsightsSync(t *testing.T) {
	creds := &fakeCredentials{cred: &domain.AccessCredential{AccessToken: "tok"}}
	syncer := &fakeSyncer{report: &insights.Report{Accounts: 2, Synced: 2}}
	router := SetupRoutes(testHandlers(creds, &fakeBulk{}, syncer), nil)

	rec := postJSON(t, router, "/api/insights/sync", syncRequest{OrgID: "org_1", ConnectionID: "conn_1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var report insights.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 2, report.Synced)
}

func TestHealthCheckNoDeps(t *testing.T) {
	router := SetupRoutes(testHandlers(&fakeCredentials{}, &fakeBulk{}, &fakeSyncer{}), nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
