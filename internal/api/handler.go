// Package api 本地 Web 界面的 HTTP API
package api

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/config"
	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/session"
	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/store"
)

// downloadTTL 导出文件下载令牌有效期
const downloadTTL = 15 * time.Minute

// uploadedFile 内存中的一次上传
type uploadedFile struct {
	name string
	data []byte
}

// Handler API 处理器
type Handler struct {
	cfg       *config.AppConfig
	store     *store.Store
	downloads *exportDownloadStore

	mu       sync.Mutex
	uploads  map[string]uploadedFile
	sessions map[string]*session.Session
}

// NewHandler 创建 API 处理器
func NewHandler(cfg *config.AppConfig, st *store.Store) *Handler {
	return &Handler{
		cfg:       cfg,
		store:     st,
		downloads: newExportDownloadStore(),
		uploads:   map[string]uploadedFile{},
		sessions:  map[string]*session.Session{},
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 文件上传
	router.POST("/files/order", h.UploadOrder)
	router.POST("/files/catalog", h.UploadCatalog)
	router.GET("/files/catalog", h.GetCatalogInfo)
	router.DELETE("/files/catalog", h.ClearCatalog)

	// 对账
	router.POST("/process", h.Process)
	router.POST("/sessions/:sessionId/corrections", h.SubmitCorrections)

	// 结果下载
	router.GET("/download/:token", h.Download)

	// 设置
	router.GET("/settings", h.GetSettings)
	router.PUT("/settings", h.UpdateSettings)
}
