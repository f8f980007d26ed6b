package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/codec"
	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/model"
	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/parser"
	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/session"
)

// ProcessRequest 发起对账请求
type ProcessRequest struct {
	OrderFileID   string `json:"orderFileId"`
	CatalogFileID string `json:"catalogFileId"` // 为空时使用缓存的数据库文件
	Commessa      string `json:"commessa"`
}

// CorrectionsRequest 提交人工修正请求
type CorrectionsRequest struct {
	Corrections map[int]string `json:"corrections"`
}

// Process 发起对账：扫描后要么挂起等修正，要么直接完成
// POST /api/process
func (h *Handler) Process(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	h.mu.Lock()
	order, ok := h.uploads[req.OrderFileID]
	h.mu.Unlock()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "订单文件不存在，请先上传"})
		return
	}

	catalogData, ok := h.catalogBytes(c, req.CatalogFileID)
	if !ok {
		return
	}

	orderSheet, err := codec.Open(order.data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无法解析订单文件: " + err.Error()})
		return
	}
	catalogSheet, err := codec.Open(catalogData)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无法解析数据库文件: " + err.Error()})
		return
	}

	commessa := strings.TrimSpace(req.Commessa)
	if commessa == "" {
		commessa = h.cfg.Job.DefaultCommessa
	}

	sess := session.New(orderSheet, catalogSheet, commessa, h.cfg.Output.FileName)
	unresolved, err := sess.Scan()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(unresolved) > 0 {
		sessionID := uuid.New().String()
		h.mu.Lock()
		h.sessions[sessionID] = sess
		h.mu.Unlock()

		c.JSON(http.StatusOK, gin.H{
			"status":     string(session.StateAwaitingCorrections),
			"sessionId":  sessionID,
			"unresolved": unresolved,
		})
		return
	}

	h.finish(c, sess, model.EmptyCorrectionSet())
}

// SubmitCorrections 带修正集合恢复挂起的会话
// POST /api/sessions/:sessionId/corrections
func (h *Handler) SubmitCorrections(c *gin.Context) {
	sessionID := c.Param("sessionId")

	h.mu.Lock()
	sess, ok := h.sessions[sessionID]
	if ok {
		delete(h.sessions, sessionID)
	}
	h.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "会话不存在或已完成"})
		return
	}

	var req CorrectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	h.finish(c, sess, model.NewCorrectionSet(req.Corrections, parser.NormalizeCode))
}

// Download 下载导出文件
// GET /api/download/:token
func (h *Handler) Download(c *gin.Context) {
	token := c.Param("token")
	dl, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接不存在或已过期"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+dl.fileName+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", dl.data)
}

// finish 跑完第二阶段并生成下载令牌
func (h *Handler) finish(c *gin.Context, sess *session.Session, corrections model.CorrectionSet) {
	res, err := sess.Resume(corrections)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	data, err := codec.Write(res.Workbook)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成导出文件失败: " + err.Error()})
		return
	}

	token := h.downloads.put(h.cfg.Output.FileName, data, downloadTTL)
	c.JSON(http.StatusOK, gin.H{
		"status":        string(session.StateDone),
		"summary":       res.Summary,
		"downloadToken": token,
	})
}

// catalogBytes 取数据库文件内容：显式 fileId 优先，否则回退到本地缓存
func (h *Handler) catalogBytes(c *gin.Context, fileID string) ([]byte, bool) {
	if fileID != "" {
		h.mu.Lock()
		f, ok := h.uploads[fileID]
		h.mu.Unlock()
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "数据库文件不存在，请先上传"})
			return nil, false
		}
		return f.data, true
	}

	cached, err := h.store.GetCatalog()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取数据库缓存失败"})
		return nil, false
	}
	if cached == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "没有可用的数据库文件：请上传或指定 catalogFileId"})
		return nil, false
	}
	return cached.Data, true
}
