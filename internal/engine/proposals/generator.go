package proposals

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"nexus/internal/pkg/errors"
	"nexus/internal/platform/config"
)

var ErrGeneratorDisabled = stderrors.New("proposal generator is not configured")

type GenerateRequest struct {
	ClientID string `json:"clientId"`
	Prompt   string `json:"prompt" validate:"required,max=4000"`
}

// Draft is what the generation endpoint returns.
type Draft struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ClientID string `json:"client_id"`
}

// Generator calls the external proposal-writing endpoint. Calls are never
// retried.
type Generator struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewGenerator(cfg config.GeneratorConfig) *Generator {
	return &Generator{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (*Draft, error) {
	if g == nil || g.endpoint == "" {
		return nil, ErrGeneratorDisabled
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
		httpReq.Header.Set("X-Nexus-Signature", Sign(g.apiKey, payload))
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrUpstream, err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: generator returned HTTP %d", errors.ErrUpstream, resp.StatusCode)
	}

	var draft Draft
	if err := json.Unmarshal(body, &draft); err != nil {
		return nil, fmt.Errorf("%w: invalid generator response: %v", errors.ErrUpstream, err)
	}
	if draft.Content == "" {
		return nil, fmt.Errorf("%w: generator returned no content", errors.ErrUpstream)
	}
	return &draft, nil
}

// Sign is the hex HMAC-SHA256 of payload keyed by secret.
func Sign(secret string, payload []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}
