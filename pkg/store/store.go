// Package store is the client for the hosted data platform's REST surface.
// Tables are read and written PostgREST-style: filters, ordering and limits
// ride query parameters, writes ask for the stored representation back so
// callers get server-assigned ids and timestamps.
package store

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/arslanonur06/connectme/cli/pkg/client"
	"github.com/arslanonur06/connectme/cli/pkg/logger"
)

const restPrefix = "/rest/v1"

// Store issues table CRUD against the remote data service
type Store struct {
	http *resty.Client
}

// New creates a store over the given HTTP client
func New(httpClient *resty.Client) *Store {
	return &Store{http: httpClient}
}

// Default returns a store over the shared CLI HTTP client
func Default() *Store {
	return New(client.GetClient())
}

// Query is a filtered read against one table
type Query struct {
	store  *Store
	table  string
	params url.Values
}

// From starts a query against a table
func (s *Store) From(table string) *Query {
	return &Query{
		store:  s,
		table:  table,
		params: url.Values{},
	}
}

// Select restricts the returned columns
func (q *Query) Select(columns string) *Query {
	q.params.Set("select", columns)
	return q
}

// Eq filters rows where column equals value
func (q *Query) Eq(column, value string) *Query {
	q.params.Set(column, "eq."+value)
	return q
}

// Order sorts by a column
func (q *Query) Order(column string, ascending bool) *Query {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	q.params.Set("order", column+"."+dir)
	return q
}

// Limit caps the number of returned rows
func (q *Query) Limit(n int) *Query {
	q.params.Set("limit", strconv.Itoa(n))
	return q
}

// Get executes the query, decoding rows into dest (a pointer to a slice)
func (q *Query) Get(ctx context.Context, dest interface{}) error {
	logger.Debug("Store select", "table", q.table)

	resp, err := q.store.http.
		R().
		SetContext(ctx).
		SetQueryParamsFromValues(q.params).
		SetResult(dest).
		Get(restPrefix + "/" + q.table)

	return checkResponse(resp, err, "select", q.table)
}

// Insert writes one or more records into a table, decoding the stored
// representation (server ids, timestamps) into dest when dest is non-nil.
func (s *Store) Insert(ctx context.Context, table string, records interface{}, dest interface{}) error {
	logger.Debug("Store insert", "table", table)

	req := s.http.
		R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(records)
	if dest != nil {
		req.SetResult(dest)
	}

	resp, err := req.Post(restPrefix + "/" + table)
	return checkResponse(resp, err, "insert", table)
}

// Update patches rows matched by filters (column -> value equality)
func (s *Store) Update(ctx context.Context, table string, values interface{}, filters map[string]string, dest interface{}) error {
	logger.Debug("Store update", "table", table)

	req := s.http.
		R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(values)
	for column, value := range filters {
		req.SetQueryParam(column, "eq."+value)
	}
	if dest != nil {
		req.SetResult(dest)
	}

	resp, err := req.Patch(restPrefix + "/" + table)
	return checkResponse(resp, err, "update", table)
}

// Delete removes rows matched by filters (column -> value equality)
func (s *Store) Delete(ctx context.Context, table string, filters map[string]string) error {
	logger.Debug("Store delete", "table", table)

	req := s.http.
		R().
		SetContext(ctx)
	for column, value := range filters {
		req.SetQueryParam(column, "eq."+value)
	}

	resp, err := req.Delete(restPrefix + "/" + table)
	return checkResponse(resp, err, "delete", table)
}

// Rpc calls a stored procedure by name
func (s *Store) Rpc(ctx context.Context, name string, args interface{}, dest interface{}) error {
	logger.Debug("Store rpc", "name", name)

	req := s.http.
		R().
		SetContext(ctx)
	if args != nil {
		req.SetBody(args)
	}
	if dest != nil {
		req.SetResult(dest)
	}

	resp, err := req.Post(restPrefix + "/rpc/" + name)
	return checkResponse(resp, err, "rpc", name)
}

func checkResponse(resp *resty.Response, err error, op, target string) error {
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, target, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("%s %s: %s", op, target, resp.Status())
	}
	return nil
}
