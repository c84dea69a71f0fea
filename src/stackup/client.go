package stackup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public StackUp relay API.
const DefaultBaseURL = "https://superna.ytechno.com.ng/api"

// ErrFetch marks every failed fetch. Transport errors, non-2xx statuses and
// undecodable bodies all wrap it and are not told apart.
var ErrFetch = errors.New("stackup: fetch failed")

// Client issues read-only requests against the StackUp API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRateLimit paces outbound requests to perSecond. Zero or less means unlimited.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(agent string) ClientOption {
	return func(c *Client) {
		c.userAgent = agent
	}
}

// NewClient creates a client for baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string, opts ...ClientOption) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

// GetUser fetches a user's profile.
func (c *Client) GetUser(ctx context.Context, userID int) (User, error) {
	var u User
	err := c.get(ctx, fmt.Sprintf("/get-user/%d", userID), &u)
	return u, err
}

// GetUserBalance fetches a user's balance ledger.
func (c *Client) GetUserBalance(ctx context.Context, userID int) (Balance, error) {
	var b Balance
	err := c.get(ctx, fmt.Sprintf("/get-user-balance/%d", userID), &b)
	return b, err
}

// GetUserProgress fetches a user's quest progress.
func (c *Client) GetUserProgress(ctx context.Context, userID int) (Progress, error) {
	var p Progress
	err := c.get(ctx, fmt.Sprintf("/get-user-progress/%d", userID), &p)
	return p, err
}

// FeaturedCampaigns lists featured campaigns in server order.
func (c *Client) FeaturedCampaigns(ctx context.Context) ([]Campaign, error) {
	var out []Campaign
	err := c.get(ctx, "/stack-featured-campaigns", &out)
	return out, err
}

// FeaturedPathways lists featured pathways in server order.
func (c *Client) FeaturedPathways(ctx context.Context) ([]Pathway, error) {
	var out []Pathway
	err := c.get(ctx, "/stack-featured-pathways", &out)
	return out, err
}

// FeaturedHackathons lists featured hackathons in server order.
func (c *Client) FeaturedHackathons(ctx context.Context) ([]Hackathon, error) {
	var out []Hackathon
	err := c.get(ctx, "/stack-featured-hackathons", &out)
	return out, err
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %s: rate limiter: %v", ErrFetch, path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFetch, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFetch, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s: status %d", ErrFetch, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: decode: %v", ErrFetch, path, err)
	}
	return nil
}
