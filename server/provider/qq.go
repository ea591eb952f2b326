package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"musicdl/server"
)

// QQClient talks to the search-oriented secondary provider. Most lookups are
// thin pass-throughs returning the upstream JSON unmodified; only the
// URL-for-download path normalizes the payload.
type QQClient struct {
	base   string
	client *retryablehttp.Client
	logger server.Logger
}

type QQClientOptions struct {
	BaseURL string
	Timeout time.Duration
	Logger  server.Logger
}

// NewQQClient creates a client for the secondary provider.
func NewQQClient(opts QQClientOptions) *QQClient {
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.Logger = nil
	client.HTTPClient.Timeout = opts.Timeout

	return &QQClient{
		base:   opts.BaseURL,
		client: client,
		logger: opts.Logger,
	}
}

// Get forwards a lookup to the provider and returns the raw JSON body.
func (c *QQClient) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	return getBody(ctx, c.client, "qq", path, c.base+path, params)
}

// SongURL resolves a playable URL for a track mid, normalizing the
// provider's heterogeneous response shapes into a single URL string.
func (c *QQClient) SongURL(ctx context.Context, mid, quality string) (string, error) {
	params := url.Values{}
	params.Set("mid", mid)
	params.Set("quality", quality)

	body, err := c.Get(ctx, "/song/url", params)
	if err != nil {
		return "", err
	}

	audioURL := normalizeSongURL(mid, body)
	if audioURL == "" {
		return "", NewNoAudioError("qq", "song url")
	}
	return audioURL, nil
}

// normalizeSongURL extracts a URL from the payload, which may arrive under a
// data envelope or as the bare body, shaped as any of: a bare string, an
// object with a url field, a map from mid to either of those, or an array
// where the first element carrying a url wins. Shapes are tried in that
// order; no match yields the empty string.
func normalizeSongURL(mid string, body []byte) string {
	payload := body
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 && !bytes.Equal(envelope.Data, []byte("null")) {
		payload = envelope.Data
	}

	var bare string
	if err := json.Unmarshal(payload, &bare); err == nil && bare != "" {
		return bare
	}

	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(payload, &obj); err == nil && obj.URL != "" {
		return obj.URL
	}

	if mid != "" {
		var byMid map[string]json.RawMessage
		if err := json.Unmarshal(payload, &byMid); err == nil {
			if raw, ok := byMid[mid]; ok {
				var entry struct {
					URL string `json:"url"`
				}
				if err := json.Unmarshal(raw, &entry); err == nil && entry.URL != "" {
					return entry.URL
				}
				var direct string
				if err := json.Unmarshal(raw, &direct); err == nil && direct != "" {
					return direct
				}
			}
		}
	}

	var list []struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(payload, &list); err == nil {
		for _, item := range list {
			if item.URL != "" {
				return item.URL
			}
		}
	}
	return ""
}
