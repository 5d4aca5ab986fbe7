// Package textgen polishes user-written listing drafts with the Gemini
// generateContent API. The helper is strictly optional: with no API key
// configured, or on any API failure, the caller gets a usable draft back
// and never an error.
package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jlin2026/campusmarket/internal/logging"
)

const (
	defaultEndpoint = "https://generativelanguage.googleapis.com"
	model           = "gemini-2.5-flash"

	promptItem = `你是一个乐于助人的校园二手交易助手。请润色以下商品描述，使其对买家更具吸引力。保持简洁但有说服力。请用中文回答。输入: "%s"`
	promptTask = `你是一个乐于助人的任务发布助手。请润色以下跑腿任务描述，使其清晰、简洁且礼貌，方便跑腿者接单。请用中文回答。输入: "%s"`
)

// DraftKind selects the prompt used for polishing.
type DraftKind string

const (
	KindItem DraftKind = "item"
	KindTask DraftKind = "task"
)

// Polisher calls the Gemini REST API to rewrite a draft description.
type Polisher struct {
	apiKey   string
	endpoint string
	client   *http.Client
	log      logging.Logger
}

// New creates a Polisher. An empty apiKey is allowed and leaves the
// polisher in a disabled state.
func New(apiKey string, timeout time.Duration, log logging.Logger) *Polisher {
	return &Polisher{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: timeout},
		log:      log.With("component", "textgen"),
	}
}

// Enabled reports whether an API key is configured.
func (p *Polisher) Enabled() bool {
	return p.apiKey != ""
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Polish rewrites draft with the prompt for the given kind. Failures are
// logged and swallowed; the original draft comes back unchanged. With no
// key configured the draft is returned with a marker suffix so the user
// knows the feature is off rather than broken.
func (p *Polisher) Polish(ctx context.Context, draft string, kind DraftKind) string {
	if !p.Enabled() {
		p.log.Warn(ctx, "api key missing, polish skipped")
		return draft + "（AI 功能未配置）"
	}

	prompt := promptItem
	if kind == KindTask {
		prompt = promptTask
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: fmt.Sprintf(prompt, draft)}}}},
	})
	if err != nil {
		p.log.Error(ctx, "request encode failed", "err", err)
		return draft
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", p.endpoint, model, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		p.log.Error(ctx, "request build failed", "err", err)
		return draft
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Warn(ctx, "generation request failed", "err", err)
		return draft
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.log.Warn(ctx, "generation rejected", "status", resp.StatusCode)
		return draft
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		p.log.Warn(ctx, "response decode failed", "err", err)
		return draft
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		p.log.Warn(ctx, "empty generation response")
		return draft
	}

	text := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return draft
	}
	return text
}
