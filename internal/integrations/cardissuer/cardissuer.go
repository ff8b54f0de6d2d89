// Package cardissuer talks to the external provider that issues virtual cards.
package cardissuer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url" // Escaping provider references
	"strings"
	"time"

	"wallet_admin/internal/config" // Provider URL and credentials
	"wallet_admin/internal/domain"

	"github.com/sirupsen/logrus" // Logging library
)

// Client handles integration with the card issuing provider
type Client struct {
	baseURL      string // No trailing slash
	clientID     string
	clientSecret string
	client       *http.Client
	log          *logrus.Logger
}

// NewClient initializes a provider client. Missing credentials are not an
// error here; every call reports them as domain.ErrConfiguration instead.
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL:      strings.TrimRight(cfg.CardProviderURL, "/"),
		clientID:     cfg.CardProviderClientID,
		clientSecret: cfg.CardProviderClientSecret,
		client: &http.Client{
			Timeout: 10 * time.Second, // Bounds a hung provider
		},
		log: log,
	}
}

// Configured reports whether URL, client id and secret are all set
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.clientID != "" && c.clientSecret != ""
}

// Freeze blocks all authorizations on the card
func (c *Client) Freeze(ctx context.Context, providerRef string) error {
	return c.setState(ctx, providerRef, "freeze")
}

// Unfreeze lifts a previous freeze
func (c *Client) Unfreeze(ctx context.Context, providerRef string) error {
	return c.setState(ctx, providerRef, "unfreeze")
}

type providerError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// setState sends POST {base}/v1/cards/{ref}/{action}
func (c *Client) setState(ctx context.Context, providerRef, action string) error {
	if !c.Configured() {
		return fmt.Errorf("card provider credentials are not configured: %w", domain.ErrConfiguration)
	}
	if providerRef == "" {
		return fmt.Errorf("card reference is required: %w", domain.ErrValidation)
	}

	endpoint := fmt.Sprintf("%s/v1/cards/%s/%s", c.baseURL, url.PathEscape(providerRef), action)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBufferString("{}"))
	if err != nil {
		return fmt.Errorf("failed to create request: %w: %v", domain.ErrBackend, err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("card provider request failed: %w: %v", domain.ErrBackend, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10)) // Error bodies are small
	if err != nil {
		return fmt.Errorf("failed to read card provider response: %w: %v", domain.ErrBackend, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := http.StatusText(resp.StatusCode) // Fallback when the body has no message
		var pe providerError
		if json.Unmarshal(body, &pe) == nil {
			if pe.Message != "" {
				msg = pe.Message
			} else if pe.Error != "" {
				msg = pe.Error
			}
		}
		c.log.WithFields(logrus.Fields{"card": providerRef, "action": action, "status": resp.StatusCode}).
			Warn("Card provider rejected request")
		return fmt.Errorf("card provider %s failed (%d): %s: %w", action, resp.StatusCode, msg, domain.ErrBackend)
	}

	c.log.Debugf("Card provider %s response: %s", action, string(body))
	return nil
}
