package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/volaille/internal/config"
	"github.com/mamadbah2/volaille/internal/domain/models"
)

// Client pushes daily report summaries to an external webhook.
type Client interface {
	SendSnapshot(ctx context.Context, snapshot models.DailySnapshot) error
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	webhookURL string
}

// NewClient builds a webhook client using the provided configuration values.
func NewClient(cfg config.NotifyConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		webhookURL: cfg.WebhookURL,
	}
}

// snapshotPayload is the wire shape posted to the webhook.
type snapshotPayload struct {
	FarmID        string  `json:"farm_id"`
	Date          string  `json:"date"`
	EggsCollected float64 `json:"eggs_collected"`
	Revenue       float64 `json:"revenue"`
	Expenses      float64 `json:"expenses"`
	Profit        float64 `json:"profit"`
	Message       string  `json:"message"`
}

// SendSnapshot posts the daily snapshot to the configured webhook.
func (c *WebhookClient) SendSnapshot(ctx context.Context, snapshot models.DailySnapshot) error {
	payload := snapshotPayload{
		FarmID:        snapshot.FarmID,
		Date:          snapshot.Date.Format("2006-01-02"),
		EggsCollected: snapshot.EggsCollected,
		Revenue:       snapshot.Revenue,
		Expenses:      snapshot.Expenses,
		Profit:        snapshot.Profit,
		Message: fmt.Sprintf("Daily report %s: %.0f eggs, profit %.2f",
			snapshot.Date.Format("2006-01-02"), snapshot.EggsCollected, snapshot.Profit),
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("send report webhook: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("report webhook error: status=%d", resp.StatusCode())
	}

	return nil
}
