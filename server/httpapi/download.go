package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"musicdl/server"
	"musicdl/server/naming"
	"musicdl/server/provider"
)

type downloadURLRequest struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists string `json:"artists"`
}

type downloadURLResponse struct {
	Status string `json:"status"`
	server.ResolvedAudio
}

// handleDownloadURL resolves a direct download link and returns it with the
// built filename, leaving the actual transfer to the client.
func (a *API) handleDownloadURL(c *gin.Context) {
	var req downloadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, errorBody("缺少歌曲ID"))
		return
	}

	settings := a.store.Snapshot()
	audioURL, err := a.resolver.ResolveURL(c.Request.Context(), req.ID, settings)
	if err != nil {
		if errors.Is(err, provider.ErrNoAudio) {
			c.JSON(http.StatusNotFound, errorBody("未找到音频链接，该歌曲可能因版权原因无法下载"))
			return
		}
		if a.logger != nil {
			a.logger.Error("resolve download url failed", "track_id", req.ID, "error", err)
		}
		c.JSON(http.StatusInternalServerError, errorBody("获取下载链接失败: "+err.Error()))
		return
	}

	filename := naming.Build(req.ID, req.Name, req.Artists, "mp3")
	if a.logger != nil {
		a.logger.Info("download url resolved", "track_id", req.ID, "filename", filename)
	}

	c.JSON(http.StatusOK, downloadURLResponse{
		Status:        "success",
		ResolvedAudio: server.ResolvedAudio{URL: audioURL, Filename: filename},
	})
}

// handleDownloadFile resolves the audio URL and proxies the bytes back so the
// browser applies the download filename on a same-origin response.
func (a *API) handleDownloadFile(c *gin.Context) {
	trackID := c.Query("id")
	if trackID == "" {
		c.JSON(http.StatusBadRequest, errorBody("缺少歌曲ID"))
		return
	}

	settings := a.store.Snapshot()
	audioURL, err := a.resolver.ResolveURL(c.Request.Context(), trackID, settings)
	if err != nil {
		if errors.Is(err, provider.ErrNoAudio) {
			c.JSON(http.StatusNotFound, errorBody("未找到音频链接，该歌曲可能因版权原因无法下载"))
			return
		}
		if a.logger != nil {
			a.logger.Error("resolve audio url failed", "track_id", trackID, "error", err)
		}
		c.JSON(http.StatusInternalServerError, errorBody("下载失败: "+err.Error()))
		return
	}

	resp, err := a.streamer.Open(c.Request.Context(), audioURL)
	if err != nil {
		if a.logger != nil {
			a.logger.Error("open audio stream failed", "track_id", trackID, "error", err)
		}
		c.JSON(http.StatusInternalServerError, errorBody("下载失败: "+err.Error()))
		return
	}

	ext := naming.GuessExt(settings.MusicQuality, resp.Header.Get("Content-Type"))
	filename := naming.Build(trackID, c.Query("name"), c.Query("artists"), ext)

	if err := a.streamer.Relay(c.Writer, resp, filename); err != nil && a.logger != nil {
		// Headers are already committed; the connection just ends.
		a.logger.Warn("audio stream interrupted", "track_id", trackID, "error", err)
	}
}
