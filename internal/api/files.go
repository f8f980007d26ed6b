package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// readUpload 读取 multipart 表单里的第一个 "file" 字段
func readUpload(c *gin.Context) (string, []byte, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表单数据"})
		return "", nil, false
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return "", nil, false
	}

	f, err := files[0].Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取上传文件失败"})
		return "", nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取上传文件失败"})
		return "", nil, false
	}

	return files[0].Filename, data, true
}

// UploadOrder 上传 A3 订单文件
// POST /api/files/order
func (h *Handler) UploadOrder(c *gin.Context) {
	name, data, ok := readUpload(c)
	if !ok {
		return
	}

	fileID := uuid.New().String()
	h.mu.Lock()
	h.uploads[fileID] = uploadedFile{name: name, data: data}
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"fileId": fileID, "fileName": name})
}

// UploadCatalog 上传数据库（物料目录）文件并写入本地缓存
// POST /api/files/catalog
func (h *Handler) UploadCatalog(c *gin.Context) {
	name, data, ok := readUpload(c)
	if !ok {
		return
	}

	if err := h.store.SaveCatalog(name, data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存数据库缓存失败"})
		return
	}

	fileID := uuid.New().String()
	h.mu.Lock()
	h.uploads[fileID] = uploadedFile{name: name, data: data}
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"fileId": fileID, "fileName": name, "cached": true})
}

// GetCatalogInfo 查询缓存的数据库文件
// GET /api/files/catalog
func (h *Handler) GetCatalogInfo(c *gin.Context) {
	cached, err := h.store.GetCatalog()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取数据库缓存失败"})
		return
	}
	if cached == nil {
		c.JSON(http.StatusOK, gin.H{"cached": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cached":    true,
		"fileName":  cached.FileName,
		"updatedAt": cached.UpdatedAt,
	})
}

// ClearCatalog 清除数据库缓存
// DELETE /api/files/catalog
func (h *Handler) ClearCatalog(c *gin.Context) {
	if err := h.store.ClearCatalog(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "清除数据库缓存失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cached": false})
}
