package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"musicdl/server"
)

// Resolver maps a track identifier to a playable audio URL through one of
// the configured upstream APIs, selected per request by the active settings.
type Resolver struct {
	client           *retryablehttp.Client
	paugramEndpoint  string
	gdstudioEndpoint string
	playlistEndpoint string
	logger           server.Logger
}

type ResolverOptions struct {
	PaugramEndpoint  string
	GDStudioEndpoint string
	PlaylistEndpoint string
	Timeout          time.Duration
	Logger           server.Logger
}

// NewResolver creates a resolver with single-attempt upstream calls.
func NewResolver(opts ResolverOptions) *Resolver {
	client := retryablehttp.NewClient()
	// Transient upstream failures are surfaced to the user, who retries
	// manually; every call is attempted exactly once.
	client.RetryMax = 0
	client.Logger = nil
	client.HTTPClient.Timeout = opts.Timeout

	return &Resolver{
		client:           client,
		paugramEndpoint:  opts.PaugramEndpoint,
		gdstudioEndpoint: opts.GDStudioEndpoint,
		playlistEndpoint: opts.PlaylistEndpoint,
		logger:           opts.Logger,
	}
}

// ResolveURL looks up the playable audio URL for a track, branching on the
// active API source. A successful lookup without a URL yields ErrNoAudio.
func (r *Resolver) ResolveURL(ctx context.Context, trackID string, settings server.Settings) (string, error) {
	if settings.APISource == "gdstudio" {
		return r.resolveGDStudio(ctx, trackID, settings)
	}
	return r.resolvePaugram(ctx, trackID)
}

func (r *Resolver) resolveGDStudio(ctx context.Context, trackID string, settings server.Settings) (string, error) {
	params := url.Values{}
	params.Set("types", "url")
	params.Set("source", settings.MusicSource)
	params.Set("id", trackID)
	params.Set("br", settings.MusicQuality)

	var payload struct {
		URL string `json:"url"`
	}
	if err := r.getJSON(ctx, "gdstudio", "song url", r.gdstudioEndpoint, params, &payload); err != nil {
		return "", err
	}
	if payload.URL == "" {
		return "", NewNoAudioError("gdstudio", "song url")
	}
	return payload.URL, nil
}

func (r *Resolver) resolvePaugram(ctx context.Context, trackID string) (string, error) {
	params := url.Values{}
	params.Set("id", trackID)
	params.Set("title", "true")

	var payload struct {
		Link string `json:"link"`
	}
	if err := r.getJSON(ctx, "paugram", "song url", r.paugramEndpoint, params, &payload); err != nil {
		return "", err
	}
	if payload.Link == "" {
		return "", NewNoAudioError("paugram", "song url")
	}
	return payload.Link, nil
}

// FetchPlaylist retrieves playlist contents, joining each track's artist
// names for display.
func (r *Resolver) FetchPlaylist(ctx context.Context, playlistID string) ([]server.Track, error) {
	params := url.Values{}
	params.Set("id", playlistID)

	var payload struct {
		Code int `json:"code"`
		Data []struct {
			ID      json.Number `json:"id"`
			Name    string      `json:"name"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
		} `json:"data"`
	}
	if err := r.getJSON(ctx, "oiapi", "playlist", r.playlistEndpoint, params, &payload); err != nil {
		return nil, err
	}
	if payload.Code != 1 {
		return nil, NewRejectedError("oiapi", "playlist", fmt.Errorf("code %d", payload.Code))
	}

	tracks := make([]server.Track, 0, len(payload.Data))
	for _, song := range payload.Data {
		names := make([]string, 0, len(song.Artists))
		for _, artist := range song.Artists {
			names = append(names, artist.Name)
		}
		tracks = append(tracks, server.Track{
			ID:      song.ID.String(),
			Name:    song.Name,
			Artists: strings.Join(names, ", "),
		})
	}
	return tracks, nil
}

func (r *Resolver) getJSON(ctx context.Context, providerName, operation, endpoint string, params url.Values, out any) error {
	body, err := getBody(ctx, r.client, providerName, operation, endpoint, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return NewUpstreamError(providerName, operation, fmt.Errorf("decode response: %v", err))
	}
	return nil
}

func getBody(ctx context.Context, client *retryablehttp.Client, providerName, operation, endpoint string, params url.Values) ([]byte, error) {
	requestURL := endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, NewUpstreamError(providerName, operation, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, NewUpstreamError(providerName, operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewUpstreamError(providerName, operation, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, NewUpstreamError(providerName, operation, fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}
	return body, nil
}
