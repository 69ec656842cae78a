// Package postgres persists launch collaborator records: platform
// credentials, ad accounts, created entities, and synced insights.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignite/ad-launcher/internal/domain"
)

// ErrNotFound is returned when a keyed read matches no row.
var ErrNotFound = errors.New("record not found")

// Store implements the persistence collaborator against PostgreSQL.
type Store struct{ db *sql.DB }

// NewStore creates a Postgres-backed store.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// GetCredential reads the access credential for one platform connection.
func (s *Store) GetCredential(ctx context.Context, orgID, connectionID string) (*domain.AccessCredential, error) {
	c := &domain.AccessCredential{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, organization_id, platform, access_token
		FROM platform_connections
		WHERE id = $1 AND organization_id = $2
	`, connectionID, orgID).Scan(&c.ID, &c.OrgID, &c.Platform, &c.AccessToken)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get credential: %w", err)
	}
	return c, nil
}

// GetAdAccount reads an ad-account record by internal ID.
func (s *Store) GetAdAccount(ctx context.Context, id string) (*domain.AdAccount, error) {
	a := &domain.AdAccount{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, external_id, organization_id, name, COALESCE(currency,'USD')
		FROM ad_accounts
		WHERE id = $1
	`, id).Scan(&a.ID, &a.ExternalID, &a.OrgID, &a.Name, &a.Currency)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get ad account: %w", err)
	}
	return a, nil
}

// UpsertCreatedEntity records one created remote entity, keyed by its
// remote ID. The store owns the durable copy once this returns nil; the
// orchestrator holds no further authority over the row.
func (s *Store) UpsertCreatedEntity(ctx context.Context, orgID, accountID string, e domain.CreatedEntity) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO created_entities
			(id, organization_id, ad_account_id, entity_type, external_id, name, parent_external_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (external_id) DO UPDATE
			SET name = EXCLUDED.name, parent_external_id = EXCLUDED.parent_external_id
	`, uuid.New().String(), orgID, accountID, string(e.Type), e.ExternalID, e.Name, nullable(e.ParentID))
	if err != nil {
		return fmt.Errorf("upsert created entity %s: %w", e.ExternalID, err)
	}
	return nil
}

// SaveMetrics stores one sync's insight rows for an ad account.
func (s *Store) SaveMetrics(ctx context.Context, accountID string, rows []domain.AdMetrics) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insights tx: %w", err)
	}
	defer tx.Rollback()

	for _, m := range rows {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO ad_insights
				(id, ad_account_id, entity_id, entity_type, impressions, clicks, spend,
				 conversions, ctr, cpc, date_start, date_stop, synced_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
			ON CONFLICT (entity_id, date_start, date_stop) DO UPDATE
				SET impressions = EXCLUDED.impressions, clicks = EXCLUDED.clicks,
				    spend = EXCLUDED.spend, conversions = EXCLUDED.conversions,
				    ctr = EXCLUDED.ctr, cpc = EXCLUDED.cpc, synced_at = NOW()
		`, uuid.New().String(), accountID, m.EntityID, m.EntityType,
			m.Impressions, m.Clicks, m.Spend, m.Conversions, m.CTR, m.CPC,
			m.DateStart, m.DateStop)
		if err != nil {
			return fmt.Errorf("insert insight row: %w", err)
		}
	}
	return tx.Commit()
}

// ListAdAccounts returns every ad account of an organization, for the
// insight sync fan-out.
func (s *Store) ListAdAccounts(ctx context.Context, orgID string) ([]domain.AdAccount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, external_id, organization_id, name, COALESCE(currency,'USD')
		FROM ad_accounts
		WHERE organization_id = $1
		ORDER BY name
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list ad accounts: %w", err)
	}
	defer rows.Close()

	var out []domain.AdAccount
	for rows.Next() {
		var a domain.AdAccount
		if err := rows.Scan(&a.ID, &a.ExternalID, &a.OrgID, &a.Name, &a.Currency); err != nil {
			return nil, fmt.Errorf("scan ad account: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListCreatedEntities returns the recorded entities of one type under an ad
// account, newest first.
func (s *Store) ListCreatedEntities(ctx context.Context, accountID string, entityType domain.EntityType) ([]domain.CreatedEntity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT entity_type, external_id, name, COALESCE(parent_external_id,'')
		FROM created_entities
		WHERE ad_account_id = $1 AND entity_type = $2
		ORDER BY created_at DESC
	`, accountID, string(entityType))
	if err != nil {
		return nil, fmt.Errorf("list created entities: %w", err)
	}
	defer rows.Close()

	var out []domain.CreatedEntity
	for rows.Next() {
		var e domain.CreatedEntity
		var typ string
		if err := rows.Scan(&typ, &e.ExternalID, &e.Name, &e.ParentID); err != nil {
			return nil, fmt.Errorf("scan created entity: %w", err)
		}
		e.Type = domain.EntityType(typ)
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
