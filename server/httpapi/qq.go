package httpapi

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"musicdl/server/naming"
	"musicdl/server/provider"
)

// passthrough forwards a lookup to the secondary provider and returns the
// upstream JSON unmodified.
func (a *API) passthrough(c *gin.Context, path string, params url.Values) {
	body, err := a.qq.Get(c.Request.Context(), path, params)
	if err != nil {
		if a.logger != nil {
			a.logger.Error("qq api request failed", "path", path, "error", err)
		}
		c.JSON(http.StatusBadGateway, errorBody("QQ API 请求失败: "+err.Error()))
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

// setIfPresent keeps the upstream request free of empty parameters.
func setIfPresent(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}

func (a *API) handleQQSearch(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("keyword"))
	if keyword == "" {
		c.JSON(http.StatusBadRequest, errorBody("缺少 keyword"))
		return
	}

	searchType := strings.TrimSpace(c.DefaultQuery("type", "song"))

	params := url.Values{}
	params.Set("keyword", keyword)
	params.Set("type", searchType)
	setIfPresent(params, "num", c.Query("num"))
	setIfPresent(params, "page", c.Query("page"))
	a.passthrough(c, "/search", params)
}

func (a *API) handleQQSongURL(c *gin.Context) {
	mid := strings.TrimSpace(c.Query("mid"))
	if mid == "" {
		c.JSON(http.StatusBadRequest, errorBody("缺少 mid"))
		return
	}

	params := url.Values{}
	params.Set("mid", mid)
	params.Set("quality", naming.NormalizeQQQuality(c.Query("quality")))
	a.passthrough(c, "/song/url", params)
}

func (a *API) handleQQSongDetail(c *gin.Context) {
	mid := strings.TrimSpace(c.Query("mid"))
	id := c.Query("id")
	if mid == "" && id == "" {
		c.JSON(http.StatusBadRequest, errorBody("缺少 mid 或 id"))
		return
	}

	params := url.Values{}
	setIfPresent(params, "mid", mid)
	setIfPresent(params, "id", id)
	a.passthrough(c, "/song/detail", params)
}

func (a *API) handleQQSongCover(c *gin.Context) {
	mid := strings.TrimSpace(c.Query("mid"))
	albumMid := c.Query("album_mid")
	if mid == "" && albumMid == "" {
		c.JSON(http.StatusBadRequest, errorBody("缺少 mid 或 album_mid"))
		return
	}

	params := url.Values{}
	setIfPresent(params, "mid", mid)
	setIfPresent(params, "album_mid", albumMid)
	setIfPresent(params, "size", c.Query("size"))
	setIfPresent(params, "validate", c.Query("validate"))
	a.passthrough(c, "/song/cover", params)
}

func (a *API) handleQQLyric(c *gin.Context) {
	mid := strings.TrimSpace(c.Query("mid"))
	id := c.Query("id")
	if mid == "" && id == "" {
		c.JSON(http.StatusBadRequest, errorBody("缺少 mid 或 id"))
		return
	}

	params := url.Values{}
	setIfPresent(params, "mid", mid)
	setIfPresent(params, "id", id)
	setIfPresent(params, "qrc", c.Query("qrc"))
	setIfPresent(params, "trans", c.Query("trans"))
	setIfPresent(params, "roma", c.Query("roma"))
	a.passthrough(c, "/lyric", params)
}

func (a *API) handleQQAlbum(c *gin.Context) {
	mid := strings.TrimSpace(c.Query("mid"))
	if mid == "" {
		c.JSON(http.StatusBadRequest, errorBody("缺少 mid"))
		return
	}

	params := url.Values{}
	params.Set("mid", mid)
	a.passthrough(c, "/album", params)
}

func (a *API) handleQQPlaylist(c *gin.Context) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorBody("缺少 id"))
		return
	}

	params := url.Values{}
	params.Set("id", id)
	a.passthrough(c, "/playlist", params)
}

func (a *API) handleQQSinger(c *gin.Context) {
	mid := strings.TrimSpace(c.Query("mid"))
	if mid == "" {
		c.JSON(http.StatusBadRequest, errorBody("缺少 mid"))
		return
	}

	params := url.Values{}
	params.Set("mid", mid)
	a.passthrough(c, "/singer", params)
}

func (a *API) handleQQTop(c *gin.Context) {
	params := url.Values{}
	setIfPresent(params, "id", c.Query("id"))
	setIfPresent(params, "num", c.Query("num"))
	a.passthrough(c, "/top", params)
}

// handleQQDownloadFile proxies a track from the secondary provider. An
// explicit url parameter skips the lookup.
func (a *API) handleQQDownloadFile(c *gin.Context) {
	mid := strings.TrimSpace(c.Query("mid"))
	quality := naming.NormalizeQQQuality(c.Query("quality"))
	audioURL := strings.TrimSpace(c.Query("url"))

	if mid == "" && audioURL == "" {
		c.JSON(http.StatusBadRequest, errorBody("缺少 mid"))
		return
	}

	if audioURL == "" {
		resolved, err := a.qq.SongURL(c.Request.Context(), mid, quality)
		if err != nil {
			if errors.Is(err, provider.ErrNoAudio) {
				c.JSON(http.StatusNotFound, errorBody("未找到播放链接（可能需要会员或歌曲受限）"))
				return
			}
			if a.logger != nil {
				a.logger.Error("qq song url lookup failed", "mid", mid, "error", err)
			}
			c.JSON(http.StatusInternalServerError, errorBody("下载失败: "+err.Error()))
			return
		}
		audioURL = resolved
	}

	resp, err := a.qqStreamer.Open(c.Request.Context(), audioURL)
	if err != nil {
		if a.logger != nil {
			a.logger.Error("open qq audio stream failed", "mid", mid, "error", err)
		}
		c.JSON(http.StatusInternalServerError, errorBody("下载失败: "+err.Error()))
		return
	}

	fileID := mid
	if fileID == "" {
		fileID = "qq_song"
	}
	ext := naming.GuessExt(quality, resp.Header.Get("Content-Type"))
	filename := naming.Build(fileID, c.Query("name"), c.Query("artists"), ext)

	if err := a.qqStreamer.Relay(c.Writer, resp, filename); err != nil && a.logger != nil {
		a.logger.Warn("qq audio stream interrupted", "mid", mid, "error", err)
	}
}
