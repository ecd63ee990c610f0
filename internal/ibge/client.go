// Package ibge looks up the municipalities of a Brazilian state through the
// IBGE localities API.
package ibge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mrussa/order-insights/internal/geo"
)

var (
	ErrBadState = errors.New("unknown state code")
	ErrUpstream = errors.New("ibge upstream error")
)

const (
	defaultTimeout = 5 * time.Second
	maxBody        = 4 << 20
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: defaultTimeout},
	}
}

type municipality struct {
	Name string `json:"nome"`
}

// Cities returns the municipality names of uf in Portuguese collation order.
func (c *Client) Cities(ctx context.Context, uf string) ([]string, error) {
	uf = strings.ToUpper(strings.TrimSpace(uf))
	if !geo.IsState(uf) {
		return nil, fmt.Errorf("%w: %q", ErrBadState, uf)
	}

	u := c.BaseURL + "/estados/" + url.PathEscape(uf) + "/municipios"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("ibge request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var list []municipality
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}

	names := make([]string, 0, len(list))
	for _, m := range list {
		if m.Name != "" {
			names = append(names, m.Name)
		}
	}
	collate.New(language.BrazilianPortuguese).SortStrings(names)
	return names, nil
}
