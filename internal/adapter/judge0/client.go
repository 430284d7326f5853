// package judge0 contains the HTTP adapter for the Judge0-style execution
// backend. It is the only place that knows the backend's wire shapes.
package judge0

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/crucible-dev/crucible/internal/config"
	"github.com/crucible-dev/crucible/internal/core/ports/primary"
	"github.com/crucible-dev/crucible/internal/core/ports/secondary"
	"github.com/crucible-dev/crucible/internal/domain"
)

var _ secondary.ExecutionBackend = (*Client)(nil)

const maxDiagnosticLength = 1000

// Client implements the ExecutionBackend port over the backend's REST API
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	logger     primary.Logger
}

// NewClient creates a new execution backend client
func NewClient(cfg *config.BackendConfig, logger primary.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.Url, "/"),
		authToken: cfg.AuthToken,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: logger,
	}
}

type languagePayload struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// ListLanguages fetches the supported-language catalog
func (c *Client) ListLanguages(ctx context.Context) ([]domain.LanguageCatalogEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/languages", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Language catalog fetch failed", "error", err)
		return nil, fmt.Errorf("failed to fetch language catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxDiagnosticLength))
		return nil, fmt.Errorf("language catalog returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload []languagePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode language catalog: %w", err)
	}

	entries := make([]domain.LanguageCatalogEntry, 0, len(payload))
	for _, lang := range payload {
		entries = append(entries, domain.LanguageCatalogEntry{
			ID:      lang.ID,
			Name:    lang.Name,
			Aliases: lang.Aliases,
		})
	}
	return entries, nil
}

type executionRequest struct {
	SourceCode string `json:"source_code"`
	LanguageID int    `json:"language_id"`
}

type executionResponse struct {
	Stdout        *string `json:"stdout"`
	Stderr        *string `json:"stderr"`
	CompileOutput *string `json:"compile_output"`
	Message       *string `json:"message"`
	Time          *string `json:"time"`
	Memory        *int64  `json:"memory"`
	Status        *struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"status"`
}

// Execute submits code for sandboxed execution and blocks until a result
// arrives or the timeout elapses. All failure modes are folded into the
// returned outcome so callers never see transport-level shapes.
func (c *Client) Execute(ctx context.Context, languageID int, code string, timeout time.Duration) domain.ExecutionOutcome {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(executionRequest{
		SourceCode: code,
		LanguageID: languageID,
	})
	if err != nil {
		return domain.ExecutionFailure(fmt.Sprintf("failed to encode execution request: %v", err))
	}

	url := c.baseURL + "/submissions?base64_encoded=false&wait=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.ExecutionFailure(fmt.Sprintf("failed to build execution request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.logger.Warn("Execution request timed out", "languageId", languageID, "timeout", timeout)
			return domain.ExecutionFailure(fmt.Sprintf("execution timed out after %s", timeout))
		}
		c.logger.Error("Execution request failed", "languageId", languageID, "error", err)
		return domain.ExecutionFailure(fmt.Sprintf("execution backend unreachable: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		diagnostic, _ := io.ReadAll(io.LimitReader(resp.Body, maxDiagnosticLength))
		return domain.ExecutionFailure(fmt.Sprintf(
			"execution backend returned status %d: %s", resp.StatusCode, string(diagnostic)))
	}

	var payload executionResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.ExecutionFailure(fmt.Sprintf("malformed backend response: %v", err))
	}

	// A 2xx body without a status block is malformed, not a completed run
	if payload.Status == nil || payload.Status.ID == 0 {
		if payload.Message != nil {
			return domain.ExecutionFailure(fmt.Sprintf(
				"malformed backend response: %s", truncate(*payload.Message, maxDiagnosticLength)))
		}
		return domain.ExecutionFailure("malformed backend response: missing execution status")
	}

	return domain.ExecutionSuccess(&domain.ExecutionResult{
		StatusID:          payload.Status.ID,
		StatusDescription: payload.Status.Description,
		Stdout:            deref(payload.Stdout),
		Stderr:            deref(payload.Stderr),
		CompileOutput:     deref(payload.CompileOutput),
		ExecutionTimeMs:   parseSecondsToMs(payload.Time),
		MemoryUsedKb:      derefInt64(payload.Memory),
	})
}

func (c *Client) setHeaders(req *http.Request) {
	if c.authToken != "" {
		req.Header.Set("X-Auth-Token", c.authToken)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// parseSecondsToMs converts the backend's fractional-seconds string into
// milliseconds
func parseSecondsToMs(raw *string) int64 {
	if raw == nil {
		return 0
	}
	seconds, err := strconv.ParseFloat(*raw, 64)
	if err != nil {
		return 0
	}
	return int64(seconds * 1000)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt64(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
