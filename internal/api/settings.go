package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/config"
)

// SettingsRequest 可在界面上修改的设置项
type SettingsRequest struct {
	DefaultCommessa string `json:"defaultCommessa"`
	OutputFileName  string `json:"outputFileName"`
}

// GetSettings 查询当前设置
// GET /api/settings
func (h *Handler) GetSettings(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{
		"defaultCommessa": h.cfg.Job.DefaultCommessa,
		"outputFileName":  h.cfg.Output.FileName,
	})
}

// UpdateSettings 更新设置并持久化到 config.toml
// PUT /api/settings
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	h.mu.Lock()
	h.cfg.Job.DefaultCommessa = req.DefaultCommessa
	if req.OutputFileName != "" {
		h.cfg.Output.FileName = req.OutputFileName
	}
	cfg := *h.cfg
	h.mu.Unlock()

	if err := config.SaveConfig(&cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存配置失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"defaultCommessa": cfg.Job.DefaultCommessa,
		"outputFileName":  cfg.Output.FileName,
	})
}
