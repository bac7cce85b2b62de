// Package api 对外提供比较工具的 HTTP 接口。
package api

import (
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/91225Gov/po-comparison/internal/config"
	"github.com/91225Gov/po-comparison/internal/service/store"
)

// Handler API 处理器
type Handler struct {
	store     *store.MemoryStore
	cfg       *config.AppConfig
	cfgMu     sync.RWMutex
	downloads *exportDownloadStore
}

// NewHandler 创建 API 处理器
func NewHandler(st *store.MemoryStore, cfg *config.AppConfig) *Handler {
	return &Handler{
		store:     st,
		cfg:       cfg,
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 配置管理
	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)

	// 文件上传与查询
	router.POST("/upload", h.Upload)
	router.GET("/files", h.ListFiles)
	router.GET("/files/:id/sheets", h.GetSheets)
	router.GET("/files/:id/preview", h.Preview)
	router.DELETE("/files/:id", h.DeleteFile)
	router.POST("/files/clear", h.ClearFiles)

	// 比较与导出
	router.POST("/compare", h.Compare)
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}

// compareConfig 取当前比较配置的副本
func (h *Handler) compareConfig() config.CompareConfig {
	h.cfgMu.RLock()
	defer h.cfgMu.RUnlock()

	c := h.cfg.Compare
	c.KeyColumns = append([]string{}, h.cfg.Compare.KeyColumns...)
	c.Columns = append([]string{}, h.cfg.Compare.Columns...)
	return c
}

// exportLayout 取当前导出布局
func (h *Handler) exportLayout() string {
	h.cfgMu.RLock()
	defer h.cfgMu.RUnlock()
	return h.cfg.Export.Layout
}
