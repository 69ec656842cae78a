package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/ad-launcher/internal/domain"
)

func TestGetCredential(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, organization_id, platform, access_token").
		WithArgs("conn_1", "org_1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "organization_id", "platform", "access_token"}).
			AddRow("conn_1", "org_1", "meta", "tok_abc"))

	s := NewStore(db)
	c, err := s.GetCredential(context.Background(), "org_1", "conn_1")
	require.NoError(t, err)
	assert.Equal(t, "tok_abc", c.AccessToken)
	assert.Equal(t, "meta", c.Platform)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCredentialNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, organization_id, platform, access_token").
		WithArgs("conn_missing", "org_1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "organization_id", "platform", "access_token"}))

	s := NewStore(db)
	_, err = s.GetCredential(context.Background(), "org_1", "conn_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAdAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, external_id, organization_id, name").
		WithArgs("acct_1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "external_id", "organization_id", "name", "currency"}).
			AddRow("acct_1", "act_998877", "org_1", "Main Account", "USD"))

	s := NewStore(db)
	a, err := s.GetAdAccount(context.Background(), "acct_1")
	require.NoError(t, err)
	assert.Equal(t, "act_998877", a.ExternalID)
	assert.Equal(t, "USD", a.Currency)
}

func TestUpsertCreatedEntity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO created_entities").
		WithArgs(sqlmock.AnyArg(), "org_1", "acct_1", "adset", "238001", "Prospecting", "120001").
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewStore(db)
	err = s.UpsertCreatedEntity(context.Background(), "org_1", "acct_1", domain.CreatedEntity{
		Type:       domain.EntityAdSet,
		ExternalID: "238001",
		Name:       "Prospecting",
		ParentID:   "120001",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveMetrics(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO ad_insights").
		WithArgs(sqlmock.AnyArg(), "acct_1", "120001", "campaign",
			int64(1000), int64(50), 12.34, int64(3), 5.0, 0.25, "2026-08-01", "2026-08-31").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := NewStore(db)
	err = s.SaveMetrics(context.Background(), "acct_1", []domain.AdMetrics{{
		EntityID: "120001", EntityType: "campaign",
		Impressions: 1000, Clicks: 50, Spend: 12.34, Conversions: 3,
		CTR: 5.0, CPC: 0.25, DateStart: "2026-08-01", DateStop: "2026-08-31",
	}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveMetricsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewStore(db)
	require.NoError(t, s.SaveMetrics(context.Background(), "acct_1", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCreatedEntities(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT entity_type, external_id, name").
		WithArgs("acct_1", "campaign").
		WillReturnRows(sqlmock.NewRows([]string{"entity_type", "external_id", "name", "parent_external_id"}).
			AddRow("campaign", "120002", "Newer", "").
			AddRow("campaign", "120001", "Older", ""))

	s := NewStore(db)
	entities, err := s.ListCreatedEntities(context.Background(), "acct_1", domain.EntityCampaign)
	require.NoError(t, err)
	require.Len(t, entities, 2)
	assert.Equal(t, "120002", entities[0].ExternalID)
	assert.Equal(t, domain.EntityCampaign, entities[1].Type)
}

func TestListAdAccounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, external_id, organization_id, name").
		WithArgs("org_1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "external_id", "organization_id", "name", "currency"}).
			AddRow("a1", "act_1", "org_1", "Alpha", "USD").
			AddRow("a2", "act_2", "org_1", "Beta", "EUR"))

	s := NewStore(db)
	accounts, err := s.ListAdAccounts(context.Background(), "org_1")
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "act_1", accounts[0].ExternalID)
	assert.Equal(t, "EUR", accounts[1].Currency)
}
