package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"nueracare-api/config"
	"nueracare-api/internal/domain/entity"
	"nueracare-api/internal/domain/repository"
)

// SanityStore talks to the Sanity content lake HTTP API: mutations for
// writes and GROQ for reads, authenticated with a bearer token.
type SanityStore struct {
	httpClient *http.Client
	baseURL    string
	dataset    string
	token      string
}

type SanityOption func(*SanityStore)

// WithSanityBaseURL overrides https://<project>.api.sanity.io/v<version>.
func WithSanityBaseURL(baseURL string) SanityOption {
	return func(s *SanityStore) {
		s.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithSanityHTTPClient(client *http.Client) SanityOption {
	return func(s *SanityStore) {
		s.httpClient = client
	}
}

func NewSanityStore(cfg config.SanityConfig, opts ...SanityOption) *SanityStore {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	s := &SanityStore{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    fmt.Sprintf("https://%s.api.sanity.io/v%s", cfg.ProjectID, cfg.APIVersion),
		dataset:    cfg.Dataset,
		token:      cfg.Token,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type sanityMutationResponse struct {
	TransactionID string `json:"transactionId"`
	Results       []struct {
		ID        string          `json:"id"`
		Operation string          `json:"operation"`
		Document  entity.Document `json:"document"`
	} `json:"results"`
}

type sanityQueryResponse struct {
	Result entity.Document `json:"result"`
}

type sanityErrorResponse struct {
	Error struct {
		Description string `json:"description"`
		Type        string `json:"type"`
		Items       []struct {
			Error struct {
				Description string `json:"description"`
				Type        string `json:"type"`
			} `json:"error"`
		} `json:"items"`
	} `json:"error"`
	Message string `json:"message"`
}

func (s *SanityStore) CreateOrReplace(ctx context.Context, doc entity.Document) (entity.Document, error) {
	normalized, err := checkDocument("createOrReplace", doc)
	if err != nil {
		return nil, err
	}

	mutation := map[string]interface{}{"createOrReplace": normalized}
	result, err := s.mutate(ctx, "createOrReplace", normalized.ID(), mutation)
	if err != nil {
		return nil, err
	}
	if result != nil {
		return result, nil
	}
	return normalized, nil
}

func (s *SanityStore) Patch(ctx context.Context, id string, set map[string]interface{}) (entity.Document, error) {
	fields, err := normalizeSet("patch", id, set)
	if err != nil {
		return nil, err
	}

	mutation := map[string]interface{}{
		"patch": map[string]interface{}{
			"id":  id,
			"set": fields,
		},
	}
	result, err := s.mutate(ctx, "patch", id, mutation)
	if err != nil {
		return nil, err
	}
	if result == nil {
		// A patch against a missing document yields no result document.
		return nil, repository.NewStoreError(repository.ErrNotFound, "patch", id, nil)
	}
	return result, nil
}

func (s *SanityStore) Fetch(ctx context.Context, q repository.Query) (entity.Document, error) {
	groq, params := buildGROQ(q)

	values := url.Values{}
	values.Set("query", groq)
	for name, value := range params {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, repository.NewStoreError(repository.ErrValidation, "fetch", "", err)
		}
		values.Set("$"+name, string(raw))
	}

	endpoint := fmt.Sprintf("%s/data/query/%s?%s", s.baseURL, s.dataset, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, repository.NewStoreError(repository.ErrValidation, "fetch", "", err)
	}

	body, err := s.do(req, "fetch", "")
	if err != nil {
		return nil, err
	}

	var resp sanityQueryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, repository.NewStoreError(repository.ErrNetwork, "fetch", "", err)
	}
	if len(resp.Result) == 0 {
		return nil, nil
	}
	return resp.Result, nil
}

func (s *SanityStore) Delete(ctx context.Context, id string) error {
	mutation := map[string]interface{}{
		"delete": map[string]interface{}{"id": id},
	}
	_, err := s.mutate(ctx, "delete", id, mutation)
	return err
}

// buildGROQ renders a query as `*[_type == $type && field == $p0 ...][0]`.
// Field names come from code, values are always bound as parameters.
func buildGROQ(q repository.Query) (string, map[string]interface{}) {
	fields := make([]string, 0, len(q.Where))
	for field := range q.Where {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	params := map[string]interface{}{"type": q.Type}
	var sb strings.Builder
	sb.WriteString("*[_type == $type")
	for i, field := range fields {
		name := fmt.Sprintf("p%d", i)
		params[name] = q.Where[field]
		fmt.Fprintf(&sb, " && %s == $%s", field, name)
	}
	sb.WriteString("] | order(_id asc)[0]")
	return sb.String(), params
}

func (s *SanityStore) mutate(ctx context.Context, op, id string, mutation map[string]interface{}) (entity.Document, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"mutations": []interface{}{mutation},
	})
	if err != nil {
		return nil, repository.NewStoreError(repository.ErrValidation, op, id, err)
	}

	endpoint := fmt.Sprintf("%s/data/mutate/%s?returnDocuments=true", s.baseURL, s.dataset)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, repository.NewStoreError(repository.ErrValidation, op, id, err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := s.do(req, op, id)
	if err != nil {
		return nil, err
	}

	var resp sanityMutationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, repository.NewStoreError(repository.ErrNetwork, op, id, err)
	}
	for _, r := range resp.Results {
		if len(r.Document) > 0 {
			return r.Document, nil
		}
	}
	return nil, nil
}

func (s *SanityStore) do(req *http.Request, op, id string) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, repository.NewStoreError(repository.ErrNetwork, op, id, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, repository.NewStoreError(repository.ErrNetwork, op, id, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}
	if err := sanityStatusError(op, id, resp.StatusCode, body); err != nil {
		return nil, err
	}
	// Deleting a missing document.
	return []byte("{}"), nil
}

// sanityStatusError maps an HTTP failure onto the store taxonomy. It returns
// nil for a delete of a missing document.
func sanityStatusError(op, id string, status int, body []byte) error {
	var apiErr sanityErrorResponse
	_ = json.Unmarshal(body, &apiErr)

	desc := apiErr.Error.Description
	if desc == "" {
		desc = apiErr.Message
	}
	if desc == "" {
		desc = http.StatusText(status)
	}
	cause := fmt.Errorf("sanity responded %d: %s", status, desc)

	notFound := status == http.StatusNotFound || apiErr.Error.Type == "documentNotFoundError"
	for _, item := range apiErr.Error.Items {
		if item.Error.Type == "documentNotFoundError" {
			notFound = true
		}
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return repository.NewStoreError(repository.ErrAuth, op, id, cause)
	case notFound:
		if op == "delete" {
			return nil
		}
		return repository.NewStoreError(repository.ErrNotFound, op, id, cause)
	case status >= 400 && status < 500 && status != http.StatusTooManyRequests && status != http.StatusRequestTimeout:
		return repository.NewStoreError(repository.ErrValidation, op, id, cause)
	}
	return repository.NewStoreError(repository.ErrNetwork, op, id, cause)
}
