package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"musicdl/server"
)

type saveConfigRequest struct {
	APISource    string `json:"apiSource"`
	MusicSource  string `json:"musicSource"`
	MusicQuality string `json:"musicQuality"`
}

func (a *API) handleGetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, a.store.Snapshot())
}

func (a *API) handleSaveConfig(c *gin.Context) {
	var req saveConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("无效的请求体"))
		return
	}

	updated := a.store.Update(server.Settings{
		APISource:    req.APISource,
		MusicSource:  req.MusicSource,
		MusicQuality: req.MusicQuality,
	})
	if a.logger != nil {
		a.logger.Info("settings saved", "api_source", updated.APISource, "music_source", updated.MusicSource, "music_quality", updated.MusicQuality)
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "config": updated})
}
