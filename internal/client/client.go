// Package client talks to the Product Scout HTTP API.
package client

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	channelDomain "github.com/reshetovitsme/product-scout/internal/modules/channel/domain"
	syncDomain "github.com/reshetovitsme/product-scout/internal/modules/channelsync/domain"
	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// API endpoint paths, relative to the base URL.
const (
	pathSearch       = "/api/products/search"
	pathMockSearch   = "/api/mock/products/search"
	pathJoined       = "/api/channels/list"
	pathSaved        = "/api/channels/saved/list"
	pathSave         = "/api/channels/save"
	pathSyncMessages = "/api/channels/{id}/messages/sync"
)

const statusSuccess = "success"

type envelope[T any] struct {
	Status  string `json:"status"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}

// Client is a typed wrapper over the JSON API. Every call takes a context
// and fails with an error matching errors.ErrUpstream unless the server
// answered with a more specific status.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: rc, logger: logger}
}

// SearchProducts runs a catalog search.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]productDomain.Product, error) {
	return call[[]productDomain.Product](c.http.R().SetContext(ctx).SetQueryParam("query", query), http.MethodGet, pathSearch)
}

// MockSearchProducts queries the mock endpoint, which answers with a bare array.
func (c *Client) MockSearchProducts(ctx context.Context, query string) ([]productDomain.Product, error) {
	var products []productDomain.Product
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("query", query).
		SetResult(&products).
		Get(pathMockSearch)
	if err := check(resp, err, pathMockSearch, ""); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) JoinedChannels(ctx context.Context) ([]syncDomain.JoinedChannel, error) {
	return call[[]syncDomain.JoinedChannel](c.http.R().SetContext(ctx), http.MethodGet, pathJoined)
}

// SavedChannels lists the managed channels.
func (c *Client) SavedChannels(ctx context.Context) ([]channelDomain.Channel, error) {
	return call[[]channelDomain.Channel](c.http.R().SetContext(ctx), http.MethodGet, pathSaved)
}

func (c *Client) SaveChannels(ctx context.Context, channels []syncDomain.JoinedChannel) error {
	req := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"channels": channels})
	if _, err := call[[]channelDomain.Channel](req, http.MethodPost, pathSave); err != nil {
		return err
	}
	c.logger.Debug("Channels saved", "count", len(channels))
	return nil
}

// SyncMessages fetches the products a channel posted since its last sync.
func (c *Client) SyncMessages(ctx context.Context, channelID string) ([]productDomain.Product, error) {
	req := c.http.R().SetContext(ctx).SetPathParam("id", channelID)
	return call[[]productDomain.Product](req, http.MethodGet, pathSyncMessages)
}

// call sends req and unwraps the response envelope. Anything but a
// "success" status is an error.
func call[T any](req *resty.Request, method, path string) (T, error) {
	var (
		out     envelope[T]
		failure envelope[any]
		zero    T
	)
	resp, err := req.SetResult(&out).SetError(&failure).Execute(method, path)
	if err := check(resp, err, path, failure.Message); err != nil {
		return zero, err
	}
	if out.Status != statusSuccess {
		return zero, oops.
			With("path", path, "status", out.Status, "message", out.Message).
			Wrapf(errors.ErrUpstream, "unexpected response status %q", out.Status)
	}
	return out.Data, nil
}

// check maps transport failures and error statuses onto the error taxonomy.
func check(resp *resty.Response, err error, path, message string) error {
	if err != nil {
		return oops.With("path", path).Wrapf(errors.ErrUpstream, "%v", err)
	}
	if !resp.IsError() {
		return nil
	}

	var target error
	switch resp.StatusCode() {
	case http.StatusNotFound:
		target = errors.ErrNotFound
	case http.StatusBadRequest:
		target = errors.ErrInvalidInput
	case http.StatusConflict:
		target = errors.ErrConflict
	default:
		target = errors.ErrUpstream
	}
	return oops.
		With("path", path, "status_code", resp.StatusCode()).
		Wrapf(target, "%s", lo.CoalesceOrEmpty(message, resp.Status()))
}
