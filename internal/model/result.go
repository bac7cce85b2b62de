package model

import (
	"fmt"
	"math"
)

// CellDifference 单个单元格差异
type CellDifference struct {
	RowIndex   int    `json:"rowIndex"`             // File 1 中的行号（0 起始）
	Column     string `json:"column"`               // 列名
	ValueFile1 any    `json:"valueFile1"`           // File 1 中的值
	ValueFile2 any    `json:"valueFile2"`           // File 2 中的值；无匹配行时为缺失占位值
	ExcelRow   int    `json:"excelRow"`             // File 1 展示行号（表头为第 1 行）
	ExcelRow2  *int   `json:"excelRow2,omitempty"`  // File 2 展示行号；无匹配行时为空
	KeyValue   string `json:"keyValue"`             // 该行组合键的展示值
}

// CrosstabCell 交叉表中的单个比较单元格
type CrosstabCell struct {
	Column       string `json:"column"`
	ValueFile1   any    `json:"valueFile1"`
	ValueFile2   any    `json:"valueFile2"`
	IsDifference bool   `json:"isDifference"`
}

// KeyCrosstabEntry 交叉表中的一行：一个组合键对应的全部比较单元格
type KeyCrosstabEntry struct {
	KeyValue  string         `json:"keyValue"`            // 组合键展示值
	KeyParts  []string       `json:"keyParts"`            // 各键列的归一化值，与键列顺序一致
	ExcelRow  int            `json:"excelRow"`            // File 1 展示行号
	ExcelRow2 *int           `json:"excelRow2,omitempty"` // File 2 展示行号；无匹配行时为空
	Cells     []CrosstabCell `json:"cells"`
	DiffCount int            `json:"diffCount"` // 差异单元格数
}

// ComparisonResult 一次比较的完整结果快照，构造后只读
type ComparisonResult struct {
	SheetNameFile1 string `json:"sheetNameFile1"`
	SheetNameFile2 string `json:"sheetNameFile2"`
	RowsFile1      int    `json:"rowsFile1"`
	RowsFile2      int    `json:"rowsFile2"`

	KeyColumns []string `json:"keyColumns"`

	CommonColumns      []string `json:"commonColumns"`
	ColumnsOnlyInFile1 []string `json:"columnsOnlyInFile1"`
	ColumnsOnlyInFile2 []string `json:"columnsOnlyInFile2"`

	// 实际参与比较的列：比较清单 ∩ File 1 ∩ File 2，按 File 1 列序
	ColumnsCompared                []string `json:"columnsCompared"`
	RequestedColumnsMissingInFile1 []string `json:"requestedColumnsMissingInFile1"`
	RequestedColumnsMissingInFile2 []string `json:"requestedColumnsMissingInFile2"`

	CellsCompared    int `json:"cellsCompared"`
	TotalDifferences int `json:"totalDifferences"`

	Differences  []CellDifference   `json:"differences"`
	KeyCrosstabs []KeyCrosstabEntry `json:"keyCrosstabs"`

	KeysOnlyInFile1 []string `json:"keysOnlyInFile1"`
	KeysOnlyInFile2 []string `json:"keysOnlyInFile2"`

	// 配置类致命错误（键列缺失）；非空时其余聚合字段为空值
	Error string `json:"error,omitempty"`
}

// MatchPercentage 匹配率：100 * (1 - 差异数/比较单元格数)，保留两位小数
// 未比较任何单元格时约定为 100
func (r *ComparisonResult) MatchPercentage() float64 {
	if r.CellsCompared == 0 {
		return 100.0
	}
	pct := 100.0 * (1.0 - float64(r.TotalDifferences)/float64(r.CellsCompared))
	return math.Round(pct*100) / 100
}

// SummaryItem 汇总表单项，保持固定展示顺序
type SummaryItem struct {
	Label string `json:"label"`
	Value any    `json:"value"`
}

// Summary 面向展示层的汇总统计，只读已聚合字段，不做二次遍历
func (r *ComparisonResult) Summary() []SummaryItem {
	return []SummaryItem{
		{Label: "Rows in File 1", Value: r.RowsFile1},
		{Label: "Rows in File 2", Value: r.RowsFile2},
		{Label: "Common columns", Value: len(r.CommonColumns)},
		{Label: "Columns only in File 1", Value: len(r.ColumnsOnlyInFile1)},
		{Label: "Columns only in File 2", Value: len(r.ColumnsOnlyInFile2)},
		{Label: "Columns compared (requested)", Value: len(r.ColumnsCompared)},
		{Label: "Cells compared", Value: r.CellsCompared},
		{Label: "Total differences", Value: r.TotalDifferences},
		{Label: "Match %", Value: fmt.Sprintf("%.2f%%", r.MatchPercentage())},
		{Label: "Keys only in File 1", Value: len(r.KeysOnlyInFile1)},
		{Label: "Keys only in File 2", Value: len(r.KeysOnlyInFile2)},
	}
}

// Note 对"零差异"结果的补充说明，区分没有可比较列与确实无差异两种情况
func (r *ComparisonResult) Note() string {
	if r.Error != "" {
		return ""
	}
	if len(r.CommonColumns) == 0 {
		return "No common columns to compare."
	}
	if len(r.ColumnsCompared) == 0 {
		return "None of the requested columns exist in both files."
	}
	if r.TotalDifferences == 0 {
		return "No cell differences found in the compared columns."
	}
	return ""
}
