package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"recruitflow-go/internal/platform/logging"
	"recruitflow-go/internal/session"
)

// Record is an opaque backend resource object. The client imposes no schema
// beyond the reshaping helpers in internal/format.
type Record = map[string]any

// Filters is an ordered set of list-query parameters. Zero values are never
// serialized, and encoding is deterministic.
type Filters []filter

type filter struct {
	key   string
	value string
}

// With appends a filter, dropping empty values so absent filters never reach
// the query string.
func (f Filters) With(key, value string) Filters {
	if key == "" || value == "" {
		return f
	}
	return append(f, filter{key: key, value: value})
}

// WithInt appends an integer filter. Zero is treated as absent.
func (f Filters) WithInt(key string, value int) Filters {
	if value == 0 {
		return f
	}
	return f.With(key, fmt.Sprintf("%d", value))
}

// Values converts the filters into query parameters.
func (f Filters) Values() url.Values {
	if len(f) == 0 {
		return nil
	}
	values := url.Values{}
	for _, item := range f {
		values.Add(item.key, item.value)
	}
	return values
}

// API is the typed facade over the session client: one method family per
// backend resource, each building the path and query and delegating to the
// universal request entry point.
type API struct {
	client *session.Client
	logger *logging.Logger
}

func New(client *session.Client, logger *logging.Logger) *API {
	return &API{client: client, logger: logger}
}

// Client exposes the underlying session client.
func (a *API) Client() *session.Client {
	return a.client
}

func (a *API) list(ctx context.Context, endpoint string, filters Filters) ([]Record, error) {
	resp, err := a.client.Do(ctx, http.MethodGet, endpoint, &session.Options{
		Query: filters.Values(),
	})
	if err != nil {
		return nil, err
	}

	// DRF list endpoints answer either a bare array or a paginated envelope
	var records []Record
	if err := resp.Decode(&records); err == nil {
		return records, nil
	}

	var page struct {
		Results []Record `json:"results"`
	}
	if err := resp.Decode(&page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

func (a *API) get(ctx context.Context, endpoint string) (Record, error) {
	resp, err := a.client.Do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var record Record
	if err := resp.Decode(&record); err != nil {
		return nil, err
	}
	return record, nil
}

func (a *API) create(ctx context.Context, endpoint string, body any) (Record, error) {
	return a.write(ctx, http.MethodPost, endpoint, body)
}

func (a *API) update(ctx context.Context, endpoint string, body any) (Record, error) {
	return a.write(ctx, http.MethodPut, endpoint, body)
}

func (a *API) write(ctx context.Context, method, endpoint string, body any) (Record, error) {
	resp, err := a.client.Do(ctx, method, endpoint, &session.Options{Body: body})
	if err != nil {
		return nil, err
	}

	var record Record
	if len(resp.Body) > 0 && resp.IsJSON() {
		if err := resp.Decode(&record); err != nil {
			return nil, err
		}
	}
	return record, nil
}

func (a *API) delete(ctx context.Context, endpoint string) error {
	_, err := a.client.Do(ctx, http.MethodDelete, endpoint, nil)
	return err
}
