// Package tutor is the boundary to the generative-AI chat collaborator
// (Kak Chat Matika). Calls are fire-and-await: no retries, no streaming;
// any failure degrades to a fixed fallback message.
package tutor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// FallbackMessage is returned verbatim whenever the service misbehaves.
const FallbackMessage = "Ups, ada gangguan sinyal! Kak Chat Matika coba sambung lagi nanti ya 😊"

const systemPrompt = "PERAN: Kak Chat Matika — konsultan matematika SD (kelas 4–6). " +
	"Gaya WhatsApp: baris pendek, *bold* untuk penekanan, tanpa LaTeX, gunakan ×, ÷, √. " +
	"Latihan selalu pilihan ganda A–D."

// Client asks the tutor one question and returns its reply.
type Client interface {
	Ask(ctx context.Context, message string) (string, error)
}

// HTTPClient posts a JSON request to a configurable endpoint.
type HTTPClient struct {
	url   string
	key   string
	grade string
	hc    *http.Client
	log   *slog.Logger
}

// NewFromEnv reads GPM_TUTOR_URL and GPM_TUTOR_KEY. Returns an error when
// no endpoint is configured.
func NewFromEnv(grade string, log *slog.Logger) (*HTTPClient, error) {
	url := os.Getenv("GPM_TUTOR_URL")
	if url == "" {
		return nil, fmt.Errorf("GPM_TUTOR_URL is not set")
	}
	if log == nil {
		log = slog.Default()
	}
	return &HTTPClient{
		url:   url,
		key:   os.Getenv("GPM_TUTOR_KEY"),
		grade: grade,
		hc:    &http.Client{Timeout: 30 * time.Second},
		log:   log,
	}, nil
}

type askRequest struct {
	System  string `json:"system"`
	Message string `json:"message"`
	Grade   string `json:"grade,omitempty"`
}

type askResponse struct {
	Text string `json:"text"`
}

func (c *HTTPClient) Ask(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(askRequest{System: systemPrompt, Message: message, Grade: c.grade})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.key != "" {
		req.Header.Set("Authorization", "Bearer "+c.key)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("tutor request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tutor status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	var out askResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if out.Text == "" {
		return "", fmt.Errorf("empty tutor reply")
	}
	return out.Text, nil
}

// AskWithFallback never fails: errors are logged and replaced by the fixed
// fallback message.
func AskWithFallback(ctx context.Context, c Client, message string, log *slog.Logger) string {
	reply, err := c.Ask(ctx, message)
	if err != nil {
		if log != nil {
			log.Warn("tutor unavailable", slog.String("error", err.Error()))
		}
		return FallbackMessage
	}
	return reply
}
