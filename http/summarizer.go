package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/taxdoc"
)

// DefaultSummarizeTimeout bounds one summarization request. Model calls
// behind the endpoint are slow.
const DefaultSummarizeTimeout = 2 * time.Minute

// Ensure Summarizer implements taxdoc.Summarizer at compile time.
var _ taxdoc.Summarizer = (*Summarizer)(nil)

// SummarizeRequest is the body of a summarization request.
type SummarizeRequest struct {
	Content string `json:"content"`
}

// SummarizeResponse is the body of a summarization response. The endpoint
// reports failures in Error with a 200 status.
type SummarizeResponse struct {
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Summarizer calls a remote POST /summarize endpoint.
type Summarizer struct {
	baseURL string
	client  *http.Client
}

// NewSummarizer creates a Summarizer for the service at baseURL.
func NewSummarizer(baseURL string) *Summarizer {
	return &Summarizer{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: DefaultSummarizeTimeout},
	}
}

// Summarize sends content to the endpoint and returns the summary.
func (s *Summarizer) Summarize(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", taxdoc.Errorf(taxdoc.EINVALID, "content required")
	}

	body, err := json.Marshal(SummarizeRequest{Content: content})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/summarize", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summarize: HTTP %d", resp.StatusCode)
	}

	var out SummarizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding summarize response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("summarize: %s", out.Error)
	}
	return out.Summary, nil
}
