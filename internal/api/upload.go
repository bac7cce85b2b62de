package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/91225Gov/po-comparison/internal/model"
	"github.com/91225Gov/po-comparison/internal/service/excel"
	"github.com/91225Gov/po-comparison/internal/service/store"
)

// UploadResponse 上传响应
type UploadResponse struct {
	FileID     string            `json:"fileId"`
	Filename   string            `json:"filename"`
	UploadedAt time.Time         `json:"uploadedAt"`
	Sheets     []model.SheetInfo `json:"sheets"`
}

// Upload 上传 Excel 文件，全部工作表读入内存
// POST /api/upload
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file in upload form"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot open uploaded file"})
		return
	}
	defer src.Close()

	reader := excel.NewReader()
	if err := reader.LoadFile(src); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read workbook: " + err.Error()})
		return
	}
	defer reader.Close()

	tables, order, err := reader.ReadAllTables()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uploaded := &store.UploadedFile{
		ID:         reader.FileID(),
		Filename:   fileHeader.Filename,
		UploadedAt: time.Now(),
		SheetOrder: order,
		Sheets:     tables,
	}
	h.store.AddFile(uploaded)

	c.JSON(http.StatusOK, UploadResponse{
		FileID:     uploaded.ID,
		Filename:   uploaded.Filename,
		UploadedAt: uploaded.UploadedAt,
		Sheets:     uploaded.SheetInfos(),
	})
}

// ListFiles 列出已上传文件
// GET /api/files
func (h *Handler) ListFiles(c *gin.Context) {
	files := h.store.ListFiles()
	out := make([]UploadResponse, 0, len(files))
	for _, f := range files {
		out = append(out, UploadResponse{
			FileID:     f.ID,
			Filename:   f.Filename,
			UploadedAt: f.UploadedAt,
			Sheets:     f.SheetInfos(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"files": out})
}

// GetSheets 工作表列表
// GET /api/files/:id/sheets
func (h *Handler) GetSheets(c *gin.Context) {
	f, err := h.store.GetFile(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sheets": f.SheetInfos()})
}

// Preview 预览某工作表的表头与前若干行
// GET /api/files/:id/preview?sheet=&limit=
func (h *Handler) Preview(c *gin.Context) {
	f, err := h.store.GetFile(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	table, err := f.Table(c.Query("sheet"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > table.RowCount() {
		limit = table.RowCount()
	}

	rows := make([][]any, 0, limit)
	for i := 0; i < limit; i++ {
		row := make([]any, len(table.Columns))
		for j, col := range table.Columns {
			row[j] = table.Value(i, col)
		}
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, gin.H{
		"sheet":   table.SheetName,
		"columns": table.Columns,
		"rows":    rows,
	})
}

// DeleteFile 删除单个上传文件
// DELETE /api/files/:id
func (h *Handler) DeleteFile(c *gin.Context) {
	if err := h.store.DeleteFile(c.Param("id")); err != nil {
		if errors.Is(err, store.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ClearFiles 清空全部上传文件
// POST /api/files/clear
func (h *Handler) ClearFiles(c *gin.Context) {
	h.store.Clear()
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
