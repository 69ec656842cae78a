package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ignite/ad-launcher/internal/domain"
)

// CreateEntity posts a prebuilt field set to one of the account's creation
// edges (campaigns, adsets, adcreatives, ads) and returns the new remote ID.
// The bulk orchestrator builds these payloads itself, field by field.
func (c *Client) CreateEntity(ctx context.Context, accountID, edge string, fields url.Values) (string, error) {
	var resp CreateResponse
	if err := c.Post(ctx, accountID+"/"+edge, fields, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("create %s: response carried no id", edge)
	}
	return resp.ID, nil
}

// GetAdAccount verifies the token can read the ad account. Used by
// EnsureAuth: a bad or expired token fails here before anything is created.
func (c *Client) GetAdAccount(ctx context.Context, accountID string) error {
	params := url.Values{}
	params.Set("fields", "id,account_status")

	var resp struct {
		ID            string `json:"id"`
		AccountStatus int    `json:"account_status"`
	}
	if err := c.Get(ctx, accountID, params, &resp); err != nil {
		return fmt.Errorf("verify ad account access: %w", err)
	}
	return nil
}

// GetInsights reads the insights edge for one entity and converts rows into
// the domain metrics shape.
func (c *Client) GetInsights(ctx context.Context, entityID string, from, to time.Time) ([]domain.AdMetrics, error) {
	params := url.Values{}
	params.Set("fields", "impressions,clicks,spend,ctr,cpc,actions,date_start,date_stop")
	params.Set("time_range", fmt.Sprintf(`{"since":"%s","until":"%s"}`,
		from.Format("2006-01-02"), to.Format("2006-01-02")))

	var resp listResponse[InsightRow]
	if err := c.Get(ctx, entityID+"/insights", params, &resp); err != nil {
		return nil, fmt.Errorf("get insights: %w", err)
	}
	return convertInsightRows(entityID, resp.Data), nil
}

// BatchInsights reads the insights edge for many entities in a single batch
// POST. Failed sub-responses are logged by the batch layer and simply absent
// from the returned map; one bad entity never fails the rest.
func (c *Client) BatchInsights(ctx context.Context, entityIDs []string, from, to time.Time) (map[string][]domain.AdMetrics, error) {
	if len(entityIDs) == 0 {
		return map[string][]domain.AdMetrics{}, nil
	}

	params := url.Values{}
	params.Set("fields", "impressions,clicks,spend,ctr,cpc,actions,date_start,date_stop")
	params.Set("time_range", fmt.Sprintf(`{"since":"%s","until":"%s"}`,
		from.Format("2006-01-02"), to.Format("2006-01-02")))

	reqs := make([]BatchRequest, 0, len(entityIDs))
	for _, id := range entityIDs {
		reqs = append(reqs, BatchRequest{
			Method:      http.MethodGet,
			RelativeURL: id + "/insights?" + params.Encode(),
		})
	}

	subs, err := c.Batch(ctx, reqs)
	if err != nil {
		return nil, fmt.Errorf("batch insights: %w", err)
	}

	out := make(map[string][]domain.AdMetrics, len(entityIDs))
	for i, sub := range subs {
		if sub.Code != http.StatusOK {
			continue
		}
		var resp listResponse[InsightRow]
		if err := json.Unmarshal([]byte(sub.Body), &resp); err != nil {
			continue
		}
		out[entityIDs[i]] = convertInsightRows(entityIDs[i], resp.Data)
	}
	return out, nil
}

func convertInsightRows(entityID string, rows []InsightRow) []domain.AdMetrics {
	out := make([]domain.AdMetrics, 0, len(rows))
	for _, row := range rows {
		m := domain.AdMetrics{
			EntityID:  entityID,
			DateStart: row.DateStart,
			DateStop:  row.DateStop,
		}
		m.Impressions, _ = strconv.ParseInt(row.Impressions, 10, 64)
		m.Clicks, _ = strconv.ParseInt(row.Clicks, 10, 64)
		m.Spend, _ = strconv.ParseFloat(row.Spend, 64)
		m.CTR, _ = strconv.ParseFloat(row.CTR, 64)
		m.CPC, _ = strconv.ParseFloat(row.CPC, 64)
		for _, action := range row.Actions {
			if action.ActionType == "offsite_conversion" || action.ActionType == "lead" {
				v, _ := strconv.ParseInt(action.Value, 10, 64)
				m.Conversions += v
			}
		}
		out = append(out, m)
	}
	return out
}
