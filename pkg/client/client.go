package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"recruiter-pipeline-backend/internal/domain"
)

// APIError is a non-2xx response from the pipeline API
type APIError struct {
	Status    int
	Message   string
	Details   []string
	Retryable bool
	RequestID string
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("pipeline api %d: %s (%s)", e.Status, e.Message, strings.Join(e.Details, "; "))
	}
	return fmt.Sprintf("pipeline api %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Errors    []string        `json:"errors"`
	Retryable bool            `json:"retryable"`
	RequestID string          `json:"request_id"`
}

// HTTPClient talks to the /v1 API on behalf of one recruiter
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:      strings.TrimSpace(token),
		httpClient: httpClient,
	}
}

// ListParams mirrors the list endpoint's query string. Zero values are omitted.
type ListParams struct {
	Status        domain.Status
	Role          string
	ExperienceMin *float64
	Search        string
	Page          int
	Limit         int
	SortBy        domain.SortField
	SortOrder     string
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	if p.Status != "" {
		v.Set("status", string(p.Status))
	}
	if p.Role != "" {
		v.Set("role", p.Role)
	}
	if p.ExperienceMin != nil {
		v.Set("experienceMin", strconv.FormatFloat(*p.ExperienceMin, 'f', -1, 64))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.SortBy != "" {
		v.Set("sortBy", string(p.SortBy))
	}
	if p.SortOrder != "" {
		v.Set("sortOrder", p.SortOrder)
	}
	return v
}

func (c *HTTPClient) Dashboard(ctx context.Context) (*domain.DashboardPayload, error) {
	var out domain.DashboardPayload
	if err := c.do(ctx, http.MethodGet, "/analytics/dashboard", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Timeline(ctx context.Context, period domain.Period) (*domain.TimelineResult, error) {
	q := url.Values{}
	if period != "" {
		q.Set("period", string(period))
	}
	var out domain.TimelineResult
	if err := c.do(ctx, http.MethodGet, "/analytics/timeline", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListApplications(ctx context.Context, p ListParams) (*domain.ApplicationList, error) {
	var out domain.ApplicationList
	if err := c.do(ctx, http.MethodGet, "/applications", p.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateApplication(ctx context.Context, req domain.CreateApplicationRequest) (*domain.Application, error) {
	var out domain.Application
	if err := c.do(ctx, http.MethodPost, "/applications", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateApplication(ctx context.Context, id string, patch domain.ApplicationPatch) (*domain.Application, error) {
	var out domain.Application
	if err := c.do(ctx, http.MethodPut, "/applications/"+url.PathEscape(id), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SetStatus(ctx context.Context, id string, status domain.Status) (*domain.Application, error) {
	var out domain.Application
	body := map[string]domain.Status{"status": status}
	if err := c.do(ctx, http.MethodPatch, "/applications/"+url.PathEscape(id)+"/status", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteApplication(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/applications/"+url.PathEscape(id), nil, nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	endpoint := c.baseURL + "/v1" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(payload))}
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		return &APIError{
			Status:    resp.StatusCode,
			Message:   env.Message,
			Details:   env.Errors,
			Retryable: env.Retryable,
			RequestID: env.RequestID,
		}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s %s data: %w", method, path, err)
	}
	return nil
}
