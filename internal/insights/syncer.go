// Package insights pulls delivery performance back from the platform for the
// entities a launch created, fanning out across ad accounts.
package insights

import (
	"context"
	"sync"
	"time"

	"github.com/ignite/ad-launcher/internal/domain"
	"github.com/ignite/ad-launcher/internal/pkg/logger"
	"github.com/ignite/ad-launcher/internal/pkg/metrics"
)

// Fetcher reads insight rows from the platform. BatchInsights packs many
// entities into one call; entities missing from the result simply had no
// readable rows.
type Fetcher interface {
	BatchInsights(ctx context.Context, entityIDs []string, from, to time.Time) (map[string][]domain.AdMetrics, error)
}

// Store lists accounts and their recorded entities and persists fetched rows.
type Store interface {
	ListAdAccounts(ctx context.Context, orgID string) ([]domain.AdAccount, error)
	ListCreatedEntities(ctx context.Context, accountID string, entityType domain.EntityType) ([]domain.CreatedEntity, error)
	SaveMetrics(ctx context.Context, accountID string, rows []domain.AdMetrics) error
}

// Report summarizes one sync sweep.
type Report struct {
	Accounts int                  `json:"accounts"`
	Synced   int                  `json:"synced"`
	Rows     int                  `json:"rows"`
	Errors   []domain.EntityError `json:"errors"`
}

// Syncer runs insight sweeps.
type Syncer struct {
	store   Store
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewSyncer builds a Syncer. metrics may be nil.
func NewSyncer(store Store, log *logger.Logger, m *metrics.Metrics) *Syncer {
	return &Syncer{store: store, log: log, metrics: m}
}

// accountOutcome is one account's leg of the fan-out.
type accountOutcome struct {
	account string
	rows    int
	err     error
}

// SyncAccounts fetches campaign insights for every ad account of an
// organization. Accounts are fetched concurrently and all legs settle
// before the report is assembled; one account's failure never blocks
// another's save.
func (s *Syncer) SyncAccounts(ctx context.Context, orgID string, fetcher Fetcher, from, to time.Time) (*Report, error) {
	accounts, err := s.store.ListAdAccounts(ctx, orgID)
	if err != nil {
		return nil, err
	}

	outcomes := make(chan accountOutcome, len(accounts))
	var wg sync.WaitGroup
	for _, account := range accounts {
		wg.Add(1)
		go func(account domain.AdAccount) {
			defer wg.Done()
			rows, err := s.syncAccount(ctx, account, fetcher, from, to)
			outcomes <- accountOutcome{account: account.Name, rows: rows, err: err}
		}(account)
	}
	wg.Wait()
	close(outcomes)

	report := &Report{Accounts: len(accounts), Errors: []domain.EntityError{}}
	for outcome := range outcomes {
		if outcome.err != nil {
			s.log.WithError(outcome.err).WithField("account", outcome.account).Warn("insight sync failed for account")
			report.Errors = append(report.Errors, domain.EntityError{Entity: outcome.account, Error: outcome.err.Error()})
			continue
		}
		report.Synced++
		report.Rows += outcome.rows
	}

	if s.metrics != nil {
		outcomeLabel := "success"
		if len(report.Errors) > 0 {
			outcomeLabel = "partial"
		}
		s.metrics.LaunchesTotal.WithLabelValues("insights", outcomeLabel).Inc()
	}
	return report, nil
}

func (s *Syncer) syncAccount(ctx context.Context, account domain.AdAccount, fetcher Fetcher, from, to time.Time) (int, error) {
	campaigns, err := s.store.ListCreatedEntities(ctx, account.ID, domain.EntityCampaign)
	if err != nil {
		return 0, err
	}
	if len(campaigns) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(campaigns))
	for _, c := range campaigns {
		ids = append(ids, c.ExternalID)
	}

	byEntity, err := fetcher.BatchInsights(ctx, ids, from, to)
	if err != nil {
		return 0, err
	}

	var rows []domain.AdMetrics
	for _, id := range ids {
		for _, m := range byEntity[id] {
			m.EntityType = string(domain.EntityCampaign)
			rows = append(rows, m)
		}
	}
	if err := s.store.SaveMetrics(ctx, account.ID, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
