package stream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStreamer(t *testing.T) *Streamer {
	t.Helper()
	return New(Options{Timeout: 5 * time.Second})
}

func TestOpenSendsBrowserUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("audio"))
	}))
	defer srv.Close()

	resp, err := newStreamer(t).Open(context.Background(), srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Mozilla/5.0", gotUA)
}

func TestOpenRejectsNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newStreamer(t).Open(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestOpenConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := newStreamer(t).Open(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestOpenFollowsRedirects(t *testing.T) {
	var target *httptest.Server
	target = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("redirected audio"))
	}))
	defer target.Close()

	hop := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL, http.StatusFound)
	}))
	defer hop.Close()

	resp, err := newStreamer(t).Open(context.Background(), hop.URL)
	require.NoError(t, err)
	resp.Body.Close()
}

func TestOpenBoundsRedirects(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, srv.URL, http.StatusFound)
	}))
	defer srv.Close()

	_, err := newStreamer(t).Open(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redirects")
}

func TestRelaySetsDownloadHeadersAndCopiesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/flac")
		w.Write([]byte("flac bytes"))
	}))
	defer srv.Close()

	streamer := newStreamer(t)
	resp, err := streamer.Open(context.Background(), srv.URL)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, streamer.Relay(rec, resp, "song.flac"))

	assert.Equal(t, "audio/flac", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="song.flac"; filename*=UTF-8''song.flac`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "flac bytes", rec.Body.String())
}

func TestRelayDefaultsContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Suppress Go's content sniffing so the upstream sends no type.
		w.Header()["Content-Type"] = nil
		w.Write([]byte{0x00, 0x01})
	}))
	defer srv.Close()

	streamer := newStreamer(t)
	resp, err := streamer.Open(context.Background(), srv.URL)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, streamer.Relay(rec, resp, "a.mp3"))

	assert.Equal(t, "audio/mpeg", rec.Header().Get("Content-Type"))
}

func TestRelayMidStreamFailureEndsAbruptly(t *testing.T) {
	// Announce more bytes than are sent, then drop the connection, so the
	// relay sees an unexpected EOF after partial content.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Header().Set("Content-Length", "1048576")
		w.Write([]byte(strings.Repeat("x", 1024)))
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		if hj, ok := w.(http.Hijacker); ok {
			conn, _, _ := hj.Hijack()
			conn.Close()
		}
	}))
	defer srv.Close()

	streamer := newStreamer(t)
	resp, err := streamer.Open(context.Background(), srv.URL)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = streamer.Relay(rec, resp, "a.mp3")

	require.Error(t, err)
	assert.Equal(t, 1024, rec.Body.Len(), "partial bytes relayed, nothing appended after the failure")
	assert.NotContains(t, rec.Body.String(), `"status"`)
}
