package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"musicdl/server/extract"
	"musicdl/server/provider"
)

type linkRequest struct {
	URL string `json:"url"`
}

func (a *API) handlePlaylistFetch(c *gin.Context) {
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("无效的请求体"))
		return
	}

	playlistID, ok := extract.PlaylistID(req.URL)
	if !ok {
		c.JSON(http.StatusBadRequest, errorBody("无法识别歌单ID，请检查输入格式"))
		return
	}

	if a.logger != nil {
		a.logger.Info("fetching playlist", "playlist_id", playlistID)
	}

	tracks, err := a.resolver.FetchPlaylist(c.Request.Context(), playlistID)
	if err != nil {
		if errors.Is(err, provider.ErrRejected) {
			c.JSON(http.StatusBadRequest, errorBody("获取歌单失败，请检查歌单ID是否正确"))
			return
		}
		if a.logger != nil {
			a.logger.Error("playlist fetch failed", "playlist_id", playlistID, "error", err)
		}
		c.JSON(http.StatusInternalServerError, errorBody("服务器请求失败: "+err.Error()))
		return
	}

	if a.logger != nil {
		a.logger.Info("playlist fetched", "playlist_id", playlistID, "songs", len(tracks))
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"songs": tracks},
	})
}

func (a *API) handleSingleInfo(c *gin.Context) {
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("无效的请求体"))
		return
	}

	songID, ok := extract.SongID(req.URL)
	if !ok {
		c.JSON(http.StatusBadRequest, errorBody("无效的歌曲链接或ID"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "id": songID})
}
