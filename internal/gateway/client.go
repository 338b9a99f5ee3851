// Package gateway speaks to a segment store's HTTP admin gateway.
package gateway

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/segctl/segctl/internal/utils"
)

// Client reads segment ranges from an admin gateway endpoint. One client is
// reused across all chunk requests of a download so connections stay warm.
type Client struct {
	baseURL string
	http    utils.HTTPDoer
}

func NewClient(endpoint string, cfg utils.ClientConfig, token string) *Client {
	httpClient := utils.NewSegctlHTTPClient(cfg)
	if token != "" {
		httpClient.SetHeader("Authorization", "Bearer "+token)
	}
	return &Client{
		baseURL: "http://" + endpoint,
		http:    httpClient,
	}
}

// ReadRange fetches [offset, offset+length) of a segment. The gateway wire
// protocol carries per-request offsets and lengths as signed 32-bit values,
// so any single request outside that range is rejected before being sent.
func (c *Client) ReadRange(ctx context.Context, segmentName string, offset, length int64) ([]byte, error) {
	if offset > math.MaxInt32 || length > math.MaxInt32 {
		return nil, fmt.Errorf("request offset=%d length=%d exceeds the per-request protocol bound of %d", offset, length, math.MaxInt32)
	}
	reqURL := fmt.Sprintf("%s/v1/segments/%s/data?offset=%d&length=%d", c.baseURL, url.PathEscape(segmentName), offset, length)
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating GET request: %v", err)
	}
	req.Header.Set("Accept", "application/octet-stream")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error executing GET request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("segment %s not found (status %d)", segmentName, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, length+1))
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}
	if int64(len(data)) > length {
		return nil, fmt.Errorf("gateway returned more than the %d requested bytes", length)
	}
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		if expected, perr := strconv.ParseInt(cl, 10, 64); perr == nil && expected != int64(len(data)) {
			log.Debug().Str("op", "gateway/client").Msgf("Short body: got %d of %d advertised bytes", len(data), expected)
		}
	}
	return data, nil
}
