package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/desertthunder/fluentctl/internal/models"
	"github.com/desertthunder/fluentctl/internal/shared"
	"golang.org/x/time/rate"
)

const apiPrefix = "/wp-json/fluent-crm/v2"

// StatusError reports a non-2xx API response with the body preserved verbatim.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d, body: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return shared.ErrAPIRequest
}

// FluentService implements the Service interface for the FluentCRM REST API.
//
// Authentication uses a Basic header computed once from the configured
// credentials. All requests pass through a shared rate limiter.
type FluentService struct {
	apiURL     string
	authHeader string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewFluentService creates a FluentCRM service from the given configuration.
//
// The nil client defaults to one with the configured timeout.
func NewFluentService(cfg *shared.Config, client *http.Client) (*FluentService, error) {
	if err := cfg.ValidateCredentials(); err != nil {
		return nil, err
	}

	if client == nil {
		timeout := time.Duration(cfg.Client.TimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	rps := cfg.Client.RateLimit
	if rps <= 0 {
		rps = 5.0
	}

	credentials := cfg.API.Username + ":" + cfg.API.Password
	encoded := base64.StdEncoding.EncodeToString([]byte(credentials))

	return &FluentService{
		apiURL:     strings.TrimRight(cfg.API.BaseURL, "/") + apiPrefix,
		authHeader: "Basic " + encoded,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

func (s *FluentService) Name() string {
	return "FluentCRM"
}

// requestURL resolves an endpoint to a full URL. Paginated responses hand
// back absolute next_page_url values, which are used as-is.
func (s *FluentService) requestURL(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return s.apiURL + "/" + endpoint
}

// doRequest performs an authenticated HTTP request against the API.
//
// A 204 response populates result (when it is *any) with the operation
// message the original API client printed. Non-2xx responses return a
// [*StatusError] carrying the response body.
func (s *FluentService) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.requestURL(endpoint), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", s.authHeader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", shared.GenerateID())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		if r, ok := result.(*any); ok {
			*r = map[string]string{"message": "Operation successful, no content returned."}
		}
		return nil
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: buf.Bytes()}
	}

	if result != nil {
		if err := json.Unmarshal(buf.Bytes(), result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// GetContact retrieves a single contact by email or numeric ID.
func (s *FluentService) GetContact(ctx context.Context, ref models.ContactRef) (*models.Contact, error) {
	if err := ref.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	endpoint := fmt.Sprintf("subscribers/%d", ref.ID)
	if ref.Email != "" {
		endpoint = "subscribers/0?get_by_email=" + url.QueryEscape(ref.Email)
	}

	var envelope struct {
		Subscriber *models.Contact `json:"subscriber"`
	}
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &envelope); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %q", shared.ErrContactNotFound, ref.String())
		}
		return nil, err
	}

	if envelope.Subscriber == nil || envelope.Subscriber.ID == 0 {
		return nil, fmt.Errorf("%w: %q", shared.ErrContactNotFound, ref.String())
	}

	return envelope.Subscriber, nil
}

// CreateContact creates a contact with optional tag and list attachments.
func (s *FluentService) CreateContact(ctx context.Context, in models.NewContact) (any, error) {
	if in.Status == "" {
		in.Status = "subscribed"
	}

	var result any
	if err := s.doRequest(ctx, http.MethodPost, "subscribers", in, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteContact deletes a contact by its resolved numeric ID.
func (s *FluentService) DeleteContact(ctx context.Context, id int64) (any, error) {
	var result any
	if err := s.doRequest(ctx, http.MethodDelete, fmt.Sprintf("subscribers/%d", id), nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateSubscriber applies an attach/detach membership delta to a contact.
func (s *FluentService) UpdateSubscriber(ctx context.Context, id int64, patch models.SubscriberPatch) (any, error) {
	var result any
	if err := s.doRequest(ctx, http.MethodPut, fmt.Sprintf("subscribers/%d", id), patch, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Tags retrieves all tags, following pagination when the API paginates.
func (s *FluentService) Tags(ctx context.Context) ([]models.Taxonomy, error) {
	return s.taxonomies(ctx, "tags")
}

// Lists retrieves all lists, following pagination when the API paginates.
func (s *FluentService) Lists(ctx context.Context) ([]models.Taxonomy, error) {
	return s.taxonomies(ctx, "lists")
}

// taxonomies fetches every page of the tags or lists collection.
//
// The API returns either a plain array or a paginated object keyed by the
// collection name; both shapes are handled.
func (s *FluentService) taxonomies(ctx context.Context, kind string) ([]models.Taxonomy, error) {
	endpoint := kind
	var all []models.Taxonomy

	for endpoint != "" {
		var envelope map[string]json.RawMessage
		if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &envelope); err != nil {
			return nil, err
		}

		raw, ok := envelope[kind]
		if !ok {
			return nil, fmt.Errorf("%w: missing %q key", shared.ErrUnexpectedFormat, kind)
		}

		var plain []models.Taxonomy
		if err := json.Unmarshal(raw, &plain); err == nil {
			return append(all, plain...), nil
		}

		var paged struct {
			Data        []models.Taxonomy `json:"data"`
			NextPageURL *string           `json:"next_page_url"`
		}
		if err := json.Unmarshal(raw, &paged); err != nil || paged.Data == nil {
			return nil, fmt.Errorf("%w: unrecognized %s payload", shared.ErrUnexpectedFormat, kind)
		}

		all = append(all, paged.Data...)
		if paged.NextPageURL == nil || *paged.NextPageURL == "" {
			break
		}
		endpoint = *paged.NextPageURL
	}

	return all, nil
}

// CreateTag creates a new tag.
func (s *FluentService) CreateTag(ctx context.Context, title, slug string) (any, error) {
	return s.createTaxonomy(ctx, "tags", title, slug)
}

// CreateList creates a new list.
func (s *FluentService) CreateList(ctx context.Context, title, slug string) (any, error) {
	return s.createTaxonomy(ctx, "lists", title, slug)
}

func (s *FluentService) createTaxonomy(ctx context.Context, kind, title, slug string) (any, error) {
	payload := map[string]string{"title": title, "slug": slug}

	var result any
	if err := s.doRequest(ctx, http.MethodPost, kind, payload, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateList updates a list's title and/or slug.
func (s *FluentService) UpdateList(ctx context.Context, id int64, title, slug string) (any, error) {
	payload := map[string]string{}
	if title != "" {
		payload["title"] = title
	}
	if slug != "" {
		payload["slug"] = slug
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: provide a new title or slug to update", shared.ErrMissingArgument)
	}

	var result any
	if err := s.doRequest(ctx, http.MethodPut, fmt.Sprintf("lists/%d", id), payload, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteTag deletes a tag by ID.
func (s *FluentService) DeleteTag(ctx context.Context, id int64) (any, error) {
	return s.deleteTaxonomy(ctx, "tags", id)
}

// DeleteList deletes a list by ID.
func (s *FluentService) DeleteList(ctx context.Context, id int64) (any, error) {
	return s.deleteTaxonomy(ctx, "lists", id)
}

func (s *FluentService) deleteTaxonomy(ctx context.Context, kind string, id int64) (any, error) {
	var result any
	if err := s.doRequest(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", kind, id), nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}
