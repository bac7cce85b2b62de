package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	UploadedFiles  int      `json:"uploadedFiles"`  // 已上传文件数
	CompareColumns int      `json:"compareColumns"` // 比较字段清单长度
	KeyColumns     []string `json:"keyColumns"`     // 默认键列
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	cfg := h.compareConfig()
	c.JSON(http.StatusOK, StatusResponse{
		UploadedFiles:  h.store.Count(),
		CompareColumns: len(cfg.Columns),
		KeyColumns:     cfg.KeyColumns,
	})
}

// ConfigResponse 配置响应
type ConfigResponse struct {
	KeyColumns       []string `json:"keyColumns"`
	Columns          []string `json:"columns"`
	IncludeUnchanged bool     `json:"includeUnchanged"`
	ExportLayout     string   `json:"exportLayout"`
}

// GetConfig 获取比较配置
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	cfg := h.compareConfig()
	c.JSON(http.StatusOK, ConfigResponse{
		KeyColumns:       cfg.KeyColumns,
		Columns:          cfg.Columns,
		IncludeUnchanged: cfg.IncludeUnchanged,
		ExportLayout:     h.exportLayout(),
	})
}

// UpdateConfigRequest 配置更新请求，缺省字段不变
type UpdateConfigRequest struct {
	KeyColumns       []string `json:"keyColumns"`
	Columns          []string `json:"columns"`
	IncludeUnchanged *bool    `json:"includeUnchanged"`
	ExportLayout     *string  `json:"exportLayout"`
}

// UpdateConfig 更新比较配置（仅本次运行生效）
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	h.cfgMu.Lock()
	if len(req.KeyColumns) > 0 {
		h.cfg.Compare.KeyColumns = append([]string{}, req.KeyColumns...)
	}
	if len(req.Columns) > 0 {
		h.cfg.Compare.Columns = append([]string{}, req.Columns...)
	}
	if req.IncludeUnchanged != nil {
		h.cfg.Compare.IncludeUnchanged = *req.IncludeUnchanged
	}
	if req.ExportLayout != nil {
		layout := *req.ExportLayout
		if layout != "merged" {
			layout = "split"
		}
		h.cfg.Export.Layout = layout
	}
	h.cfgMu.Unlock()

	h.GetConfig(c)
}
