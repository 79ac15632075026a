package scrape

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultMenuURL is the page the catalog is scraped from.
const DefaultMenuURL = "https://www.akindo-sushiro.co.jp/menu/"

const userAgent = "Mozilla/5.0 (compatible; telegram-sushi-bot)"

// ErrFetch is returned when the menu page cannot be downloaded.
var ErrFetch = errors.New("failed to fetch menu page")

// Fetcher downloads the menu document.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Client downloads the menu page over HTTP.
type Client struct {
	http *resty.Client
	url  string
}

// NewClient creates a client for the menu page at url.
func NewClient(url string) *Client {
	return &Client{
		http: resty.New().
			SetTimeout(30*time.Second).
			SetHeader("User-Agent", userAgent).
			SetHeader("Accept-Language", "ja"),
		url: url,
	}
}

// Fetch returns the page body. Transport errors and non-2xx responses wrap
// ErrFetch.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	res, err := c.http.R().SetContext(ctx).Get(c.url)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if res.IsError() {
		return "", fmt.Errorf("%w: %s returned %s", ErrFetch, c.url, res.Status())
	}
	return res.String(), nil
}
