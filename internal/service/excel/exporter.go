package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/91225Gov/po-comparison/internal/model"
)

// LayoutSplit 每个比较字段导出为 "(File 1)" / "(File 2)" 两列
const LayoutSplit = "split"

// LayoutMerged 每个比较字段导出为单列，差异单元格写 "v1 <> v2"
const LayoutMerged = "merged"

// 导出工作簿的三张表
const (
	sheetCrosstab    = "Comparison"
	sheetDifferences = "Differences"
	sheetSummary     = "Summary"
)

// Exporter 比较结果导出器
type Exporter struct {
	layout string
}

// NewExporter 创建导出器；layout 非法时回退 split
func NewExporter(layout string) *Exporter {
	if layout != LayoutMerged {
		layout = LayoutSplit
	}
	return &Exporter{layout: layout}
}

// Export 把比较结果导出为带差异高亮的工作簿
//
// Comparison 表是按键展开的交叉表：每个键字段一列，每个比较字段按
// 布局展开，末尾附 "No. of columns differing" 计数列；差异单元格
// 用醒目填充标出。Differences 表是逐差异明细，Summary 表是汇总统计。
func (e *Exporter) Export(result *model.ComparisonResult) (*excelize.File, error) {
	if result.Error != "" {
		return nil, fmt.Errorf("cannot export failed comparison: %s", result.Error)
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetCrosstab)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	diffStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "#9C0006"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFC7CE"}, Pattern: 1},
	})

	if err := e.writeCrosstab(f, result, headerStyle, diffStyle); err != nil {
		return nil, err
	}
	if err := e.writeDifferences(f, result, headerStyle, diffStyle); err != nil {
		return nil, err
	}
	if err := e.writeSummary(f, result, headerStyle); err != nil {
		return nil, err
	}

	return f, nil
}

// writeCrosstab 写交叉表
func (e *Exporter) writeCrosstab(f *excelize.File, result *model.ComparisonResult, headerStyle, diffStyle int) error {
	headers := append([]string{}, result.KeyColumns...)
	for _, col := range result.ColumnsCompared {
		if e.layout == LayoutMerged {
			headers = append(headers, col)
		} else {
			headers = append(headers, col+" (File 1)", col+" (File 2)")
		}
	}
	headers = append(headers, "No. of columns differing")

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetCrosstab, cell, h)
	}
	f.SetRowStyle(sheetCrosstab, 1, 1, headerStyle)

	for i, entry := range result.KeyCrosstabs {
		rowNum := i + 2
		colNum := 1

		for k := range result.KeyColumns {
			cell, _ := excelize.CoordinatesToCellName(colNum, rowNum)
			if k < len(entry.KeyParts) {
				f.SetCellValue(sheetCrosstab, cell, entry.KeyParts[k])
			}
			colNum++
		}

		for _, c := range entry.Cells {
			if e.layout == LayoutMerged {
				cell, _ := excelize.CoordinatesToCellName(colNum, rowNum)
				if c.IsDifference {
					f.SetCellValue(sheetCrosstab, cell,
						fmt.Sprintf("%v <> %v", displayValue(c.ValueFile1), displayValue(c.ValueFile2)))
					f.SetCellStyle(sheetCrosstab, cell, cell, diffStyle)
				} else {
					f.SetCellValue(sheetCrosstab, cell, displayValue(c.ValueFile1))
				}
				colNum++
				continue
			}

			cell1, _ := excelize.CoordinatesToCellName(colNum, rowNum)
			cell2, _ := excelize.CoordinatesToCellName(colNum+1, rowNum)
			f.SetCellValue(sheetCrosstab, cell1, displayValue(c.ValueFile1))
			f.SetCellValue(sheetCrosstab, cell2, displayValue(c.ValueFile2))
			if c.IsDifference {
				f.SetCellStyle(sheetCrosstab, cell1, cell2, diffStyle)
			}
			colNum += 2
		}

		cell, _ := excelize.CoordinatesToCellName(colNum, rowNum)
		f.SetCellValue(sheetCrosstab, cell, entry.DiffCount)
	}

	// 键列稍宽，数据列统一宽度
	if len(headers) > 0 {
		keyEnd, _ := excelize.ColumnNumberToName(len(result.KeyColumns))
		f.SetColWidth(sheetCrosstab, "A", keyEnd, 24)
		if len(headers) > len(result.KeyColumns) {
			dataStart, _ := excelize.ColumnNumberToName(len(result.KeyColumns) + 1)
			dataEnd, _ := excelize.ColumnNumberToName(len(headers))
			f.SetColWidth(sheetCrosstab, dataStart, dataEnd, 18)
		}
	}

	return nil
}

// writeDifferences 写逐差异明细表
func (e *Exporter) writeDifferences(f *excelize.File, result *model.ComparisonResult, headerStyle, diffStyle int) error {
	if _, err := f.NewSheet(sheetDifferences); err != nil {
		return err
	}

	keyLabel := strings.Join(result.KeyColumns, " / ")
	headers := []string{keyLabel, "Excel Row", "Column", "File 1 Value", "File 2 Value"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetDifferences, cell, h)
	}
	f.SetRowStyle(sheetDifferences, 1, 1, headerStyle)

	for i, d := range result.Differences {
		rowNum := i + 2
		values := []any{d.KeyValue, d.ExcelRow, d.Column, displayValue(d.ValueFile1), displayValue(d.ValueFile2)}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, rowNum)
			f.SetCellValue(sheetDifferences, cell, v)
		}
		start, _ := excelize.CoordinatesToCellName(4, rowNum)
		end, _ := excelize.CoordinatesToCellName(5, rowNum)
		f.SetCellStyle(sheetDifferences, start, end, diffStyle)
	}

	f.SetColWidth(sheetDifferences, "A", "A", 28)
	f.SetColWidth(sheetDifferences, "B", "B", 10)
	f.SetColWidth(sheetDifferences, "C", "E", 30)

	return nil
}

// writeSummary 写汇总表
func (e *Exporter) writeSummary(f *excelize.File, result *model.ComparisonResult, headerStyle int) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}

	f.SetCellValue(sheetSummary, "A1", "Item")
	f.SetCellValue(sheetSummary, "B1", "Value")
	f.SetRowStyle(sheetSummary, 1, 1, headerStyle)

	rowNum := 2
	for _, item := range result.Summary() {
		cellA, _ := excelize.CoordinatesToCellName(1, rowNum)
		cellB, _ := excelize.CoordinatesToCellName(2, rowNum)
		f.SetCellValue(sheetSummary, cellA, item.Label)
		f.SetCellValue(sheetSummary, cellB, item.Value)
		rowNum++
	}
	if note := result.Note(); note != "" {
		cellA, _ := excelize.CoordinatesToCellName(1, rowNum)
		cellB, _ := excelize.CoordinatesToCellName(2, rowNum)
		f.SetCellValue(sheetSummary, cellA, "Note")
		f.SetCellValue(sheetSummary, cellB, note)
	}

	f.SetColWidth(sheetSummary, "A", "A", 32)
	f.SetColWidth(sheetSummary, "B", "B", 40)

	return nil
}

// displayValue 缺失值导出为空串，其余原样写入
func displayValue(v any) any {
	if v == nil {
		return ""
	}
	return v
}
