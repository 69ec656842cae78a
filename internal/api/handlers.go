// Package api is the HTTP front door: thin JSON handlers over the launch
// runner, the bulk orchestrator, and the insight syncer.
package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ignite/ad-launcher/internal/config"
	"github.com/ignite/ad-launcher/internal/domain"
	"github.com/ignite/ad-launcher/internal/insights"
	"github.com/ignite/ad-launcher/internal/launch"
	"github.com/ignite/ad-launcher/internal/pkg/logger"
	"github.com/ignite/ad-launcher/internal/pkg/metrics"
	"github.com/ignite/ad-launcher/internal/platform"
	"github.com/ignite/ad-launcher/internal/platform/meta"
	"github.com/ignite/ad-launcher/internal/repository/postgres"
)

// CredentialSource resolves platform credentials for the real-adapter paths.
type CredentialSource interface {
	GetCredential(ctx context.Context, orgID, connectionID string) (*domain.AccessCredential, error)
}

// BulkLauncher runs the wizard's bulk launch path.
type BulkLauncher interface {
	Launch(ctx context.Context, req domain.BulkLaunchRequest) (*domain.BulkLaunchResult, error)
}

// InsightSyncer sweeps delivery metrics per ad account.
type InsightSyncer interface {
	SyncAccounts(ctx context.Context, orgID string, fetcher insights.Fetcher, from, to time.Time) (*insights.Report, error)
}

// Handlers holds every dependency the HTTP layer needs.
type Handlers struct {
	cfg         *config.Config
	credentials CredentialSource
	runner      *launch.Runner
	bulk        BulkLauncher
	syncer      InsightSyncer
	log         *logger.Logger
	metrics     *metrics.Metrics

	// health probes; either may be nil
	db  *sql.DB
	rdb *redis.Client
}

// NewHandlers wires the handler set.
func NewHandlers(cfg *config.Config, creds CredentialSource, runner *launch.Runner, bulkLauncher BulkLauncher, syncer InsightSyncer, log *logger.Logger, m *metrics.Metrics, db *sql.DB, rdb *redis.Client) *Handlers {
	return &Handlers{
		cfg:         cfg,
		credentials: creds,
		runner:      runner,
		bulk:        bulkLauncher,
		syncer:      syncer,
		log:         log,
		metrics:     m,
		db:          db,
		rdb:         rdb,
	}
}

type launchRequest struct {
	OrgID        string           `json:"orgId"`
	ConnectionID string           `json:"connectionId"`
	AccountID    string           `json:"accountId"` // remote account ID, e.g. act_123
	PageID       string           `json:"pageId"`
	DryRun       bool             `json:"dryRun"`
	Blueprint    domain.Blueprint `json:"blueprint"`
}

// HandleLaunch runs the simple blueprint launch path. With dryRun set the
// whole tree walk happens against the simulated adapter, no credential
// needed.
func (h *Handlers) HandleLaunch(w http.ResponseWriter, r *http.Request) {
	var req launchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	opts := platform.Options{
		Platform:  req.Blueprint.Platform,
		DryRun:    req.DryRun,
		AccountID: req.AccountID,
		PageID:    req.PageID,
		Logger:    h.log,
		Metrics:   h.metrics,
	}
	if !req.DryRun {
		cred, err := h.credentials.GetCredential(r.Context(), req.OrgID, req.ConnectionID)
		if err != nil {
			respondError(w, credentialStatus(err), "resolve credential: "+err.Error())
			return
		}
		opts.Meta = h.metaConfig(cred.AccessToken)
	}

	adapter, err := platform.New(opts)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.runner.Run(r.Context(), adapter, req.Blueprint, req.OrgID, req.ConnectionID)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleBulkLaunch runs the wizard's pre-expanded tree.
func (h *Handlers) HandleBulkLaunch(w http.ResponseWriter, r *http.Request) {
	var req domain.BulkLaunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OrgID == "" || req.ConnectionID == "" || req.AdAccountID == "" {
		respondError(w, http.StatusBadRequest, "orgId, connectionId, and adAccountId are required")
		return
	}

	result, err := h.bulk.Launch(r.Context(), req)
	if err != nil {
		respondError(w, credentialStatus(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

type syncRequest struct {
	OrgID        string `json:"orgId"`
	ConnectionID string `json:"connectionId"`
	Days         int    `json:"days"`
}

// HandleInsightsSync sweeps insights for every ad account of the org.
func (h *Handlers) HandleInsightsSync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Days <= 0 {
		req.Days = 30
	}

	cred, err := h.credentials.GetCredential(r.Context(), req.OrgID, req.ConnectionID)
	if err != nil {
		respondError(w, credentialStatus(err), "resolve credential: "+err.Error())
		return
	}
	client := meta.NewClient(h.metaConfig(cred.AccessToken), h.log, h.metrics)

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -req.Days)
	report, err := h.syncer.SyncAccounts(r.Context(), req.OrgID, client, from, to)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// HealthCheck probes the database and cache. Degraded dependencies report
// but do not fail the endpoint; orchestration still works without the cache.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{}
	status := http.StatusOK

	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			checks["database"] = "down"
			status = http.StatusServiceUnavailable
		} else {
			checks["database"] = "up"
		}
	}
	if h.rdb != nil {
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			checks["redis"] = "degraded"
		} else {
			checks["redis"] = "up"
		}
	}

	body := map[string]any{"status": "healthy", "checks": checks}
	if status != http.StatusOK {
		body["status"] = "unhealthy"
	}
	respondJSON(w, status, body)
}

func (h *Handlers) metaConfig(token string) meta.Config {
	return meta.Config{
		BaseURL:       h.cfg.Meta.BaseURL,
		APIVersion:    h.cfg.Meta.APIVersion,
		AccessToken:   token,
		Timeout:       time.Duration(h.cfg.Meta.TimeoutSeconds) * time.Second,
		RatePerSecond: h.cfg.Meta.RatePerSecond,
		RateBurst:     h.cfg.Meta.RateBurst,
	}
}

func credentialStatus(err error) int {
	if errors.Is(err, postgres.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
