package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Fixed identifiers of the remote agents.
const (
	DisputeConversation    = "6984954ad957d325f54b4ded"
	KnowledgeRetrieval     = "698491e74b4f342743a1793f"
	CaseAnalysis           = "69849207257a39e26c94e7be"
	DisputeAnalysisManager = "69849222323dfe72e4c8cd61"
	TransactionValidation  = "698492412a28e3ee67ced147"
)

const StatusSuccess = "success"

var (
	ErrAgentFailed     = errors.New("agent reported failure")
	ErrMalformedResult = errors.New("agent result is malformed")
)

// Caller is the contract every portal flow depends on.
type Caller interface {
	Call(ctx context.Context, message, agentID string) (*Result, error)
}

type Request struct {
	Message string `json:"message"`
	AgentID string `json:"agent_id"`
}

type Result struct {
	Success  bool     `json:"success"`
	Response Response `json:"response"`
	Error    string   `json:"error,omitempty"`
}

type Response struct {
	Status  string          `json:"status"`
	Result  json.RawMessage `json:"result"`
	Message string          `json:"message,omitempty"`
}

// OK is true only when both the transport flag and the payload status report success.
func (r *Result) OK() bool {
	return r != nil && r.Success && r.Response.Status == StatusSuccess
}

// Decode unmarshals the agent payload into T. Agents sometimes return the
// payload as a JSON string holding an object; both forms are accepted.
func Decode[T any](r *Result) (*T, error) {
	if !r.OK() {
		return nil, ErrAgentFailed
	}
	raw := bytes.TrimSpace(r.Response.Result)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("%w: empty result", ErrMalformedResult)
	}
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResult, err)
		}
		raw = []byte(strings.TrimSpace(inner))
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}
	return &out, nil
}

type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   strings.TrimSpace(cfg.Endpoint),
		apiKey:     strings.TrimSpace(cfg.APIKey),
	}
}

func (c *Client) Call(ctx context.Context, message, agentID string) (*Result, error) {
	bodyBytes, err := json.Marshal(Request{Message: message, AgentID: agentID})
	if err != nil {
		return nil, fmt.Errorf("marshal agent request failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("build agent request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("agent request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read agent response failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("agent response status %d: %s", resp.StatusCode, truncate(string(raw), 512))
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("parse agent json failed: %w", err)
	}
	return &result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
