package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/91225Gov/po-comparison/internal/config"
	"github.com/91225Gov/po-comparison/internal/service/excel"
)

// 导出文件下载令牌的有效期
const exportDownloadTTL = 10 * time.Minute

// ExportRequest 导出请求：在比较请求之上附加布局选择
type ExportRequest struct {
	CompareRequest
	// Layout split 或 merged；为空时使用配置默认值
	Layout string `json:"layout"`
}

// Export 执行比较并生成带差异高亮的工作簿，返回下载令牌
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	result, httpStatus, err := h.runComparison(&req.CompareRequest)
	if err != nil {
		c.JSON(httpStatus, gin.H{"error": err.Error()})
		return
	}
	if result.Error != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": result.Error})
		return
	}

	layout := req.Layout
	if layout == "" {
		layout = h.exportLayout()
	}

	exporter := excel.NewExporter(layout)
	f, err := exporter.Export(result)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed: " + err.Error()})
		return
	}

	filename := fmt.Sprintf("po_comparison_%s.xlsx", time.Now().Format("20060102_150405"))
	filePath := config.GetDataPath(h.cfg, "exports", filename)
	if err := f.SaveAs(filePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save export file failed: " + err.Error()})
		return
	}

	token := h.downloads.put(filePath, filename, exportDownloadTTL)
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"filename": filename,
		"summary":  result.Summary(),
	})
}

// DownloadExport 按令牌下载导出文件，令牌一次性有效
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download token expired or not found"})
		return
	}
	h.downloads.delete(token)

	c.FileAttachment(item.filePath, item.filename)
}
