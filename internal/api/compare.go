package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/91225Gov/po-comparison/internal/compare"
	"github.com/91225Gov/po-comparison/internal/model"
)

// CompareRequest 比较请求
type CompareRequest struct {
	FileID1 string `json:"fileId1" binding:"required"`
	FileID2 string `json:"fileId2" binding:"required"`
	// Sheet1/Sheet2 为空时取各文件的第一张工作表
	Sheet1 string `json:"sheet1"`
	Sheet2 string `json:"sheet2"`
	// KeyColumns 为空时使用配置的默认键列
	KeyColumns []string `json:"keyColumns"`
	// IncludeUnchanged 覆盖配置中的交叉表包含策略
	IncludeUnchanged *bool `json:"includeUnchanged"`
}

// CompareResponse 比较响应
type CompareResponse struct {
	Result  *model.ComparisonResult `json:"result"`
	Summary []model.SummaryItem     `json:"summary,omitempty"`
	Note    string                  `json:"note,omitempty"`
}

// Compare 执行一次比较
// POST /api/compare
func (h *Handler) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	result, httpStatus, err := h.runComparison(&req)
	if err != nil {
		c.JSON(httpStatus, gin.H{"error": err.Error()})
		return
	}

	resp := CompareResponse{Result: result}
	// 配置错误时只回错误信息，不回汇总
	if result.Error == "" {
		resp.Summary = result.Summary()
		resp.Note = result.Note()
	}
	c.JSON(http.StatusOK, resp)
}

// runComparison 取出两张表并执行比较；错误返回对应的 HTTP 状态码
func (h *Handler) runComparison(req *CompareRequest) (*model.ComparisonResult, int, error) {
	table1, err := h.store.GetTable(req.FileID1, req.Sheet1)
	if err != nil {
		return nil, http.StatusNotFound, err
	}
	table2, err := h.store.GetTable(req.FileID2, req.Sheet2)
	if err != nil {
		return nil, http.StatusNotFound, err
	}

	cfg := h.compareConfig()

	keyColumns := req.KeyColumns
	if len(keyColumns) == 0 {
		keyColumns = cfg.KeyColumns
	}

	comparator := compare.NewComparator(cfg.Columns)
	comparator.IncludeUnchanged = cfg.IncludeUnchanged
	if req.IncludeUnchanged != nil {
		comparator.IncludeUnchanged = *req.IncludeUnchanged
	}

	return comparator.Compare(table1, table2, keyColumns), http.StatusOK, nil
}
