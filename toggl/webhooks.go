package toggl

import (
	"context"
	"encoding/json"
	"net/http"
)

// WebhookParams describes a subscription.
type WebhookParams struct {
	URL          string   `json:"url"`
	Description  string   `json:"description,omitempty"`
	EventFilters []string `json:"event_filters"`
	Enabled      bool     `json:"enabled"`
}

// WebhooksService handles /workspaces/{wid}/webhooks.
type WebhooksService struct{ c *Client }

// List returns a workspace's webhook subscriptions.
func (s *WebhooksService) List(ctx context.Context, workspaceID int64) ([]Webhook, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	data, err := s.c.send(ctx, http.MethodGet, s.c.apiURL("/workspaces/%d/webhooks", workspaceID), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[Webhook]("workspace.webhooks", data)
}

// Get returns one subscription.
func (s *WebhooksService) Get(ctx context.Context, workspaceID, id int64) (*Webhook, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	if err := checkID("webhook", id); err != nil {
		return nil, err
	}
	var w Webhook
	if err := s.c.getJSON(ctx, s.c.apiURL("/workspaces/%d/webhooks/%d", workspaceID, id), nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Create adds a subscription.
func (s *WebhooksService) Create(ctx context.Context, workspaceID int64, params WebhookParams) (*Webhook, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	if params.EventFilters == nil {
		params.EventFilters = []string{}
	}
	var w Webhook
	if err := s.c.postJSON(ctx, s.c.apiURL("/workspaces/%d/webhooks", workspaceID), params, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Update replaces the given fields of a subscription.
func (s *WebhooksService) Update(ctx context.Context, workspaceID, id int64, fields Fields) (*Webhook, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	if err := checkID("webhook", id); err != nil {
		return nil, err
	}
	var w Webhook
	if err := s.c.putJSON(ctx, s.c.apiURL("/workspaces/%d/webhooks/%d", workspaceID, id), fields.canonical(), &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Delete removes a subscription.
func (s *WebhooksService) Delete(ctx context.Context, workspaceID, id int64) error {
	if err := checkID("workspace", workspaceID); err != nil {
		return err
	}
	if err := checkID("webhook", id); err != nil {
		return err
	}
	return s.c.deleteJSON(ctx, s.c.apiURL("/workspaces/%d/webhooks/%d", workspaceID, id))
}

// Ping asks the server to send a test event to the subscription URL.
func (s *WebhooksService) Ping(ctx context.Context, workspaceID, id int64) (json.RawMessage, error) {
	if err := checkID("workspace", workspaceID); err != nil {
		return nil, err
	}
	if err := checkID("webhook", id); err != nil {
		return nil, err
	}
	data, err := s.c.send(ctx, http.MethodPost, s.c.apiURL("/workspaces/%d/webhooks/%d/ping", workspaceID, id), nil, nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}
