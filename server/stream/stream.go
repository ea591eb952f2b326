// Package stream relays upstream audio bodies to the client without
// buffering whole files, substituting download headers.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"musicdl/server"
	"musicdl/server/naming"
)

const maxRedirects = 5

// Some audio CDNs reject non-browser clients.
const browserUserAgent = "Mozilla/5.0"

// Streamer opens upstream audio URLs and relays their bytes to the client.
type Streamer struct {
	client *http.Client
	logger server.Logger
}

type Options struct {
	// Timeout bounds connection establishment and the wait for upstream
	// response headers. The body transfer itself is not deadlined; it is
	// back-pressured by the client connection and torn down when the client
	// disconnects.
	Timeout time.Duration
	Logger  server.Logger
}

// New creates a streamer.
func New(opts Options) *Streamer {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   minDuration(opts.Timeout, 10*time.Second),
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   minDuration(opts.Timeout, 10*time.Second),
		ResponseHeaderTimeout: opts.Timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}

	client := &http.Client{
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}

	return &Streamer{client: client, logger: opts.Logger}
}

// Open connects to the audio URL and returns the upstream response once its
// headers have arrived. The request is bound to ctx so a client disconnect
// tears down the upstream connection. The caller owns the response body.
func (s *Streamer) Open(ctx context.Context, audioURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}
	return resp, nil
}

// Relay commits download headers and copies the upstream body to the client
// chunk by chunk. Headers are committed before any body byte; once they are
// sent a failure can only terminate the connection, so a mid-stream upstream
// error is returned for logging but no further bytes are written.
func (s *Streamer) Relay(w http.ResponseWriter, resp *http.Response, filename string) error {
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", naming.ContentDisposition(filename))
	w.Header().Set("Cache-Control", "no-store")
	if resp.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(resp.ContentLength, 10))
	}
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	buf := make([]byte, 64*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := w.Write(buf[:n]); writeErr != nil {
				return writeErr
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return readErr
		}
	}
}

func minDuration(a, b time.Duration) time.Duration {
	if a == 0 || a > b {
		return b
	}
	return a
}
