package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/booldo/booldo/internal/model"
)

const (
	// ClientTimeout is the total request timeout.
	ClientTimeout = 15 * time.Second
	// DialTimeout is the connection timeout.
	DialTimeout = 5 * time.Second
	// ResponseHeaderTimeout is time to wait for response headers.
	ResponseHeaderTimeout = 10 * time.Second

	// MaxResponseBodySize caps response bodies at 4MB.
	MaxResponseBodySize = 4 << 20
)

// Client queries the content service over HTTP. Requests are read-only
// GETs against the query endpoint with URL-encoded query and parameters.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a content service client for the given API base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http: &http.Client{
			Timeout: ClientTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   DialTimeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				ResponseHeaderTimeout: ResponseHeaderTimeout,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       90 * time.Second,
			},
		},
	}
}

// envelope is the content service's response wrapper.
type envelope struct {
	Result json.RawMessage `json:"result"`
}

// Fetch runs a query and decodes the result payload into out.
func (c *Client) Fetch(ctx context.Context, q *Query, out any) error {
	values := url.Values{}
	values.Set("query", q.String())
	for _, name := range q.sortedParamNames() {
		values.Set("$"+name, fmt.Sprintf("%q", q.params[name]))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/query?"+values.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build content request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("content request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("content service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBodySize))
	if err != nil {
		return fmt.Errorf("read content response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode content envelope: %w", err)
	}
	if len(env.Result) == 0 || string(env.Result) == "null" {
		return ErrNotFound
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("decode content result: %w", err)
	}
	return nil
}

// FetchRules returns all active redirect rules.
func (c *Client) FetchRules(ctx context.Context) ([]model.RedirectRule, error) {
	q := NewQuery("redirects").
		WhereTrue("isActive").
		Select("\"id\": _id", "sourcePath", "targetUrl", "redirectType", "matchExact", "isActive")

	var rules []model.RedirectRule
	if err := c.Fetch(ctx, q, &rules); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch redirect rules: %w", err)
	}
	return rules, nil
}

// FetchDoc runs a single-document query.
func (c *Client) FetchDoc(ctx context.Context, q *Query) (*Document, error) {
	var doc Document
	if err := c.Fetch(ctx, q, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// footerDoc mirrors the active footer document's nested link array.
type footerDoc struct {
	BottomRowLinks struct {
		Links []FooterLink `json:"links"`
	} `json:"bottomRowLinks"`
}

// FetchFooterLinks returns the link array of the active footer document.
func (c *Client) FetchFooterLinks(ctx context.Context) ([]FooterLink, error) {
	q := NewQuery("footer").
		WhereTrue("isActive").
		First().
		Select("bottomRowLinks{ links[]{ label, \"slug\": slug.current, noindex, sitemapInclude } }")

	var doc footerDoc
	if err := c.Fetch(ctx, q, &doc); err != nil {
		return nil, err
	}
	return doc.BottomRowLinks.Links, nil
}

// namedDoc is the projection used for option lists.
type namedDoc struct {
	Name string `json:"name"`
}

// FetchOptions returns the filter option universe for a country.
func (c *Client) FetchOptions(ctx context.Context, country string) (*model.OptionUniverse, error) {
	universe := &model.OptionUniverse{}

	fetchList := func(q *Query) ([]model.FilterOption, error) {
		var docs []namedDoc
		if err := c.Fetch(ctx, q, &docs); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		opts := make([]model.FilterOption, 0, len(docs))
		for _, d := range docs {
			opts = append(opts, model.FilterOption{Name: d.Name})
		}
		return opts, nil
	}

	var err error
	if universe.BonusTypes, err = fetchList(NewQuery("bonusType").Select("name")); err != nil {
		return nil, fmt.Errorf("fetch bonus types: %w", err)
	}
	if universe.Bookmakers, err = fetchList(NewQuery("bookmaker").WhereParam("country->country", "country", country).Select("name")); err != nil {
		return nil, fmt.Errorf("fetch bookmakers: %w", err)
	}
	if universe.PaymentMethods, err = fetchList(NewQuery("paymentMethod").Select("name")); err != nil {
		return nil, fmt.Errorf("fetch payment methods: %w", err)
	}
	if universe.Licenses, err = fetchList(NewQuery("license").Select("name")); err != nil {
		return nil, fmt.Errorf("fetch licenses: %w", err)
	}
	return universe, nil
}
