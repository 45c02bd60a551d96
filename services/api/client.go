// Package apisvc is the HTTP client of the school admin REST API.
package apisvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/collection"
	"github.com/trezcool/schooladmin/core/school"
)

// operations
const (
	opList   = "list"
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
	opStats  = "stats"
)

const maxBodySize = 10 << 20

type Options struct {
	HTTPClient *http.Client // defaults to a client with Timeout
	Timeout    time.Duration
	Logger     core.Logger
	Metrics    *Metrics // optional
}

// API sends requests to one API server. Requests are never retried.
type API struct {
	baseURL string
	http    *http.Client
	logger  core.Logger
	metrics *Metrics
}

func New(baseURL string, opts Options) *API {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = core.NopLogger{}
	}
	return &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    opts.HTTPClient,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}
}

// NewFromConfig returns an API on conf.API.
func NewFromConfig(conf *core.Config, logger core.Logger, metrics *Metrics) *API {
	return New(conf.API.BaseURL, Options{Timeout: conf.API.Timeout, Logger: logger, Metrics: metrics})
}

// do sends one request and returns the body of a 2xx response.
func (api *API) do(ctx context.Context, resource, op, method, path string, in interface{}) ([]byte, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding %s", resource)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, api.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	reqOp := method + " " + path
	start := time.Now()
	resp, err := api.http.Do(req)
	if err != nil {
		api.metrics.observe(resource, op, outcomeNetworkError, time.Since(start))
		api.logger.Warn(reqOp+" failed", err)
		return nil, &core.NetworkError{Op: reqOp, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		api.metrics.observe(resource, op, outcomeNetworkError, time.Since(start))
		return nil, &core.NetworkError{Op: reqOp, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		api.metrics.observe(resource, op, outcomeHTTPError, time.Since(start))
		err = decodeError(resp.StatusCode, data)
		api.logger.Info(fmt.Sprintf("%s: %d", reqOp, resp.StatusCode), err)
		return nil, err
	}
	api.metrics.observe(resource, op, outcomeOK, time.Since(start))
	return data, nil
}

// FetchStats returns the dashboard counters.
func (api *API) FetchStats(ctx context.Context) (school.Stats, error) {
	data, err := api.do(ctx, "stats", opStats, http.MethodGet, school.StatsPath, nil)
	if err != nil {
		return school.Stats{}, err
	}
	var stats school.Stats
	if err = json.Unmarshal(data, &stats); err != nil {
		return school.Stats{}, errors.Wrap(err, "decoding stats")
	}
	return stats, nil
}

// Client is the remote store of one collection.
type Client[T collection.Record] struct {
	api *API
	res collection.Resource[T]
}

var _ collection.Remote[school.Course] = (*Client[school.Course])(nil)

func NewClient[T collection.Record](api *API, res collection.Resource[T]) *Client[T] {
	return &Client[T]{api: api, res: res}
}

func (c *Client[T]) path(tmpl, id string) string {
	return core.FillPath(tmpl, url.PathEscape(id))
}

// List fetches the whole collection, either a bare array or an object keyed by the plural name.
func (c *Client[T]) List(ctx context.Context) ([]T, error) {
	data, err := c.api.do(ctx, c.res.Name, opList, http.MethodGet, c.res.ListPath, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[T](data, c.res.Plural)
}

// Create sends a new record and returns the record stored by the server.
func (c *Client[T]) Create(ctx context.Context, rec T) (T, error) {
	data, err := c.api.do(ctx, c.res.Name, opCreate, http.MethodPost, c.res.CreatePath, rec)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeRecord[T](data, c.res.Name)
}

// Update replaces the record with id and returns the record stored by the server.
func (c *Client[T]) Update(ctx context.Context, id string, rec T) (T, error) {
	data, err := c.api.do(ctx, c.res.Name, opUpdate, http.MethodPut, c.path(c.res.UpdatePath, id), rec)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeRecord[T](data, c.res.Name)
}

// Delete removes the record with id; any 2xx response is a success.
func (c *Client[T]) Delete(ctx context.Context, id string) error {
	_, err := c.api.do(ctx, c.res.Name, opDelete, http.MethodDelete, c.path(c.res.DeletePath, id), nil)
	return err
}

func decodeList[T any](data []byte, plural string) ([]T, error) {
	data = bytes.TrimSpace(data)
	if bytes.HasPrefix(data, []byte("[")) {
		var recs []T
		if err := json.Unmarshal(data, &recs); err != nil {
			return nil, errors.Wrapf(err, "decoding %s", plural)
		}
		return recs, nil
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", plural)
	}
	raw, ok := env[plural]
	if !ok {
		return nil, errors.Errorf("decoding %s: response has no %q list", plural, plural)
	}
	recs := []T{}
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", plural)
	}
	if recs == nil {
		recs = []T{}
	}
	return recs, nil
}

// decodeRecord reads a bare record or one keyed by the singular name.
// A body without a record id is core.ErrNoRecord.
func decodeRecord[T collection.Record](data []byte, name string) (T, error) {
	var zero T
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return zero, core.ErrNoRecord
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(data, &env); err != nil {
		return zero, errors.Wrapf(err, "decoding %s", name)
	}
	if raw, ok := env[name]; ok {
		data = raw
	}
	var rec T
	if err := json.Unmarshal(data, &rec); err != nil {
		return zero, errors.Wrapf(err, "decoding %s", name)
	}
	if rec.RecordID() == "" {
		return zero, core.ErrNoRecord
	}
	return rec, nil
}
