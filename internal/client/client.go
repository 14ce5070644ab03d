package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/iris-civica/iris-client/internal/models"
	"go.uber.org/zap"
)

const (
	cacheTTL       = 5 * time.Minute
	retryBaseDelay = time.Second
)

// Client é o único ponto de saída para a API REST do Iris.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger

	// injetáveis em teste
	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time

	mu            sync.Mutex
	cacheVotacoes *models.PrototipoResponse
	cacheExpira   time.Time
}

func New(baseURL string, log *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		log:     log,
		sleep: func(ctx context.Context, d time.Duration) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(d):
				return nil
			}
		},
		now: time.Now,
	}
}

// Request faz uma chamada JSON e decodifica a resposta em out. Respostas
// 204 retornam nil sem tocar em out; não-2xx viram *HTTPError com o status.
func (c *Client) Request(ctx context.Context, method, endpoint string, body, out any) error {
	url := c.baseURL + endpoint

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("client: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("url", url),
			zap.Error(err))
		return &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	// a leitura do corpo ainda está no fio: falha aqui é de transporte
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Err: err}
	}

	c.log.Debug("api response",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{Status: resp.StatusCode, Body: string(data)}
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("client: failed to unmarshal response from %s: %w", endpoint, err)
	}
	return nil
}

// RequestWithRetry repete Request até maxAttempts vezes, apenas para
// falhas de transporte. O atraso antes da tentativa n é n×1s, linear.
func (c *Client) RequestWithRetry(ctx context.Context, method, endpoint string, body, out any, maxAttempts int) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			delay := time.Duration(attempt-1) * retryBaseDelay
			c.log.Debug("retrying request",
				zap.String("endpoint", endpoint),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay))
			if err := c.sleep(ctx, delay); err != nil {
				return fmt.Errorf("client: retry cancelled: %w", err)
			}
		}
		lastErr = c.Request(ctx, method, endpoint, body, out)
		if lastErr == nil {
			return nil
		}
		if !Retriable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}
