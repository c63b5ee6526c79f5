package featureapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-console/core"
	"github.com/trezcool/masomo-console/core/feature"
	"github.com/trezcool/masomo-console/core/session"
)

const maxBodySize = 1 << 20

// Client reads a school's enabled features from the Masomo platform API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

var _ feature.Catalog = (*Client)(nil)

func NewClient(conf *core.Config, httpClient ...*http.Client) *Client {
	c := &Client{
		baseURL: conf.Catalog.BaseURL,
		token:   conf.Catalog.Token,
		http:    &http.Client{Timeout: conf.Catalog.Timeout},
	}
	if len(httpClient) > 0 && httpClient[0] != nil {
		c.http = httpClient[0]
	}
	if c.http.Timeout == 0 {
		c.http.Timeout = 5 * time.Second
	}
	return c
}

// StatusError is returned for non-2xx answers.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("feature api: unexpected status %d: %s", e.Code, e.Body)
}

// EnabledFeatures calls GET {baseURL}/schools/{id}/features.
// The body is either a JSON array of features or an object holding it under "features".
func (c *Client) EnabledFeatures(ctx context.Context, tenant session.Tenant) ([]feature.Feature, error) {
	u := c.baseURL + "/schools/" + url.PathEscape(tenant.SchoolID) + "/features"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "calling feature api")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, errors.Wrap(err, "reading feature api response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}
	return decode(body)
}

func decode(body []byte) ([]feature.Feature, error) {
	body = bytes.TrimSpace(body)
	var features []feature.Feature
	if len(body) > 0 && body[0] == '{' {
		var envelope struct {
			Features []feature.Feature `json:"features"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, errors.Wrap(err, "decoding feature api response")
		}
		features = envelope.Features
	} else if err := json.Unmarshal(body, &features); err != nil {
		return nil, errors.Wrap(err, "decoding feature api response")
	}
	if features == nil {
		features = []feature.Feature{}
	}
	return features, nil
}
