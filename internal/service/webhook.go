package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/khunglong92/dogiadung-sub001/internal/core"
	"github.com/khunglong92/dogiadung-sub001/internal/data"
	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
	apperrors "github.com/khunglong92/dogiadung-sub001/internal/errors"
)

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// WebhookSinkServiceOptions groups dependencies for WebhookSinkService.
type WebhookSinkServiceOptions struct {
	SinkRepo  core.WebhookSinkRepository
	Evaluator JMESPathEvaluator
}

// WebhookSinkService encapsulates CRUD for contact webhook sinks. Extract
// expressions and header JSON are validated up front so a broken sink is
// rejected at save time, not at delivery time.
type WebhookSinkService struct {
	sinks core.WebhookSinkRepository
	jems  JMESPathEvaluator
}

// NewWebhookSinkService constructs a new WebhookSinkService.
func NewWebhookSinkService(opts WebhookSinkServiceOptions) *WebhookSinkService {
	jems := opts.Evaluator
	if jems == nil {
		jems = jmespathLibEvaluator{}
	}
	return &WebhookSinkService{sinks: opts.SinkRepo, jems: jems}
}

// Create creates a webhook sink.
func (s *WebhookSinkService) Create(ctx context.Context, req *model.CreateWebhookSinkRequest) (*model.WebhookSink, error) {
	if req == nil {
		return nil, apperrors.Validation("create webhook sink request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if err := s.validateConfig(req.Headers, req.Extract); err != nil {
		return nil, err
	}
	sink, err := s.sinks.Create(ctx, req)
	if err != nil {
		return nil, mapWebhookSinkErr(err)
	}
	return sink, nil
}

// GetByID retrieves a webhook sink by ID.
func (s *WebhookSinkService) GetByID(ctx context.Context, id string) (*model.WebhookSink, error) {
	sink, err := s.sinks.GetByID(ctx, id)
	if err != nil {
		return nil, mapWebhookSinkErr(err)
	}
	return sink, nil
}

// List returns one page of webhook sinks plus the total matching count.
func (s *WebhookSinkService) List(ctx context.Context, opts model.WebhookSinksListOptions) (*Page[model.WebhookSink], error) {
	items, err := s.sinks.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list webhook sinks: %w", err)
	}
	total, err := s.sinks.Count(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("count webhook sinks: %w", err)
	}
	return &Page[model.WebhookSink]{Items: items, Total: total}, nil
}

// Update updates a webhook sink.
func (s *WebhookSinkService) Update(ctx context.Context, id string, req model.UpdateWebhookSinkRequest) (*model.WebhookSink, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if err := s.validateConfig(req.Headers, req.Extract); err != nil {
		return nil, err
	}
	sink, err := s.sinks.Update(ctx, id, req)
	if err != nil {
		return nil, mapWebhookSinkErr(err)
	}
	return sink, nil
}

// Delete deletes a webhook sink by ID.
func (s *WebhookSinkService) Delete(ctx context.Context, id string) error {
	ok, err := s.sinks.Delete(ctx, id)
	if err != nil {
		return mapWebhookSinkErr(err)
	}
	if !ok {
		return apperrors.NotFound("webhook sink not found")
	}
	return nil
}

func (s *WebhookSinkService) validateConfig(headers, extract *string) error {
	if headers != nil && strings.TrimSpace(*headers) != "" {
		if _, err := parseHeaderJSON(*headers); err != nil {
			return apperrors.ValidationField("headers", "headers must be a JSON object of string values")
		}
	}
	if extract != nil {
		if err := s.jems.Validate(*extract); err != nil {
			return apperrors.ValidationField("extract", "invalid JMESPath expression")
		}
	}
	return nil
}

func mapWebhookSinkErr(err error) error {
	switch {
	case errors.Is(err, data.ErrWebhookSinkNotFound):
		return apperrors.NotFound("webhook sink not found")
	case errors.Is(err, data.ErrWebhookSinkNameExists):
		return apperrors.Conflict("a webhook sink with this name already exists")
	default:
		return err
	}
}

func parseHeaderJSON(s string) (map[string]string, error) {
	var out map[string]string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ContactDispatcherOptions groups dependencies for ContactDispatcher.
type ContactDispatcherOptions struct {
	SinkRepo   core.WebhookSinkRepository
	Evaluator  JMESPathEvaluator
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// ContactDispatcher fans a new contact request out to every enabled webhook
// sink. Delivery is best effort: a failing sink is logged and skipped so one
// broken endpoint never blocks the contact form.
type ContactDispatcher struct {
	sinks  core.WebhookSinkRepository
	jems   JMESPathEvaluator
	client *http.Client
	logger *slog.Logger
}

// NewContactDispatcher constructs a new ContactDispatcher.
func NewContactDispatcher(opts ContactDispatcherOptions) *ContactDispatcher {
	jems := opts.Evaluator
	if jems == nil {
		jems = jmespathLibEvaluator{}
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactDispatcher{sinks: opts.SinkRepo, jems: jems, client: client, logger: logger}
}

// Dispatch delivers the contact to all enabled sinks. It returns an error
// only when the sink list itself cannot be loaded.
func (d *ContactDispatcher) Dispatch(ctx context.Context, contact *model.Contact) error {
	sinks, err := d.sinks.ListEnabled(ctx)
	if err != nil {
		return fmt.Errorf("list enabled sinks: %w", err)
	}
	if len(sinks) == 0 {
		return nil
	}

	payload, err := json.Marshal(contact)
	if err != nil {
		return fmt.Errorf("marshal contact: %w", err)
	}

	delivered := 0
	for _, sink := range sinks {
		if deliverErr := d.deliver(ctx, sink, payload); deliverErr != nil {
			d.logger.WarnContext(ctx, "webhook delivery failed",
				"sink_id", sink.ID,
				"sink_name", sink.Name,
				"error", deliverErr)
			continue
		}
		delivered++
	}

	d.logger.InfoContext(ctx, "dispatched contact to webhook sinks",
		"contact_id", contact.ID,
		"sinks_total", len(sinks),
		"sinks_delivered", delivered)
	return nil
}

func (d *ContactDispatcher) deliver(ctx context.Context, sink *model.WebhookSink, payload []byte) error {
	body, err := d.deriveBody(sink.Extract, payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, sink.Method, sink.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if sink.Headers != nil && strings.TrimSpace(*sink.Headers) != "" {
		headers, parseErr := parseHeaderJSON(*sink.Headers)
		if parseErr != nil {
			return fmt.Errorf("parse headers: %w", parseErr)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sink returned status %d", resp.StatusCode)
	}
	return nil
}

func (d *ContactDispatcher) deriveBody(expr *string, payload []byte) ([]byte, error) {
	if expr == nil || strings.TrimSpace(*expr) == "" {
		return payload, nil
	}
	var data any
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("invalid payload JSON: %w", err)
	}
	res, err := d.jems.Evaluate(strings.TrimSpace(*expr), data)
	if err != nil {
		return nil, fmt.Errorf("evaluate extract expression: %w", err)
	}
	b, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("marshal derived body: %w", err)
	}
	return b, nil
}
