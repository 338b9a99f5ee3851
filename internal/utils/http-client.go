package utils

import (
	"net/http"
	"time"
)

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
	SetHeader(key, value string)
}

// SegctlHTTPClient wraps http.Client with the tool's default headers. Request
// deadlines come from the caller's context, not a client-wide timeout, so one
// client can serve every chunk request of a download.
type SegctlHTTPClient struct {
	client *http.Client
	config ClientConfig
}

func NewSegctlHTTPClient(cfg ClientConfig) *SegctlHTTPClient {
	if cfg.KATimeout == 0 {
		cfg.KATimeout = 60 * time.Second
	}
	if cfg.Headers == nil {
		cfg.Headers = make(map[string]string)
	}
	transport := &http.Transport{
		IdleConnTimeout:     cfg.KATimeout,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		DisableCompression:  true,
	}
	return &SegctlHTTPClient{
		client: &http.Client{
			Transport: transport,
		},
		config: cfg,
	}
}

func (c *SegctlHTTPClient) SetHeader(key, value string) {
	c.config.Headers[key] = value
}

func (c *SegctlHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	} else {
		req.Header.Set("User-Agent", ToolUserAgent)
	}
	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}
	return c.client.Do(req)
}
