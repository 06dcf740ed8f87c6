package utils

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
)

type HTTPClientConfig struct {
	Timeout   time.Duration
	KATimeout time.Duration
	ProxyURL  string
	UserAgent string
	Headers   map[string]string
	// BearerToken, when set, is sent as an Authorization header on every request
	// in addition to any TOKEN substitution in the URL.
	BearerToken string
}

type ScenefetchHTTPClient struct {
	client *http.Client
	config HTTPClientConfig
}

func NewScenefetchHTTPClient(cfg HTTPClientConfig) *ScenefetchHTTPClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.KATimeout == 0 {
		cfg.KATimeout = 60 * time.Second
	}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		IdleConnTimeout:     cfg.KATimeout,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		DisableCompression:  true,

		// Timeout bounds the wait for headers only; bodies may stream for hours.
		ResponseHeaderTimeout: cfg.Timeout,
	}
	if cfg.ProxyURL != "" {
		if proxyURL, err := url.Parse(cfg.ProxyURL); err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}
	var rt http.RoundTripper = transport
	if cfg.BearerToken != "" {
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.BearerToken, TokenType: "Bearer"}),
			Base:   transport,
		}
	}
	return &ScenefetchHTTPClient{
		client: &http.Client{
			Transport: rt,
		},
		config: cfg,
	}
}

// NewRequest builds a request carrying the configured user agent and headers.
func (c *ScenefetchHTTPClient) NewRequest(ctx context.Context, method, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	} else {
		req.Header.Set("User-Agent", DefaultUserAgent)
	}
	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

func (c *ScenefetchHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}
