package compare

import (
	"fmt"
	"strings"

	"github.com/91225Gov/po-comparison/internal/model"
)

// MissingSentinel File 2 中无匹配行时记入差异的占位值
const MissingSentinel = "(missing in File 2)"

// Comparator 按组合键对两张表做逐列比较
//
// CompareColumns 是注入的比较字段清单：只有既在清单内、又同时存在于
// 两张表中的列才参与比较。清单由调用方（配置层）提供，引擎本身不
// 内置任何业务字段。
type Comparator struct {
	CompareColumns []string

	// IncludeUnchanged 为 true 时交叉表包含无差异的匹配行；
	// 默认只保留有差异的行，聚焦差异区域
	IncludeUnchanged bool
}

// NewComparator 创建比较器
func NewComparator(compareColumns []string) *Comparator {
	return &Comparator{CompareColumns: compareColumns}
}

// Compare 比较两张表，返回完整结果快照
//
// 键列在任一表中缺失视为配置错误：结果只携带错误信息，不做任何比较。
// 其余一切情况（无公共列、无可比较列、键不匹配）都照常产出结果，
// 以信息性字段说明，不作为失败处理。
func (c *Comparator) Compare(a, b *model.Table, keyColumns []string) *model.ComparisonResult {
	result := newResult(a, b, keyColumns)

	if missing := a.MissingColumns(keyColumns); len(missing) > 0 {
		result.Error = keyColumnError(missing, "File 1", a.Columns)
		return result
	}
	if missing := b.MissingColumns(keyColumns); len(missing) > 0 {
		result.Error = keyColumnError(missing, "File 2", b.Columns)
		return result
	}

	cols1 := a.ColumnSet()
	cols2 := b.ColumnSet()
	result.CommonColumns = sortedIntersection(cols1, cols2)
	result.ColumnsOnlyInFile1 = sortedDifference(cols1, cols2)
	result.ColumnsOnlyInFile2 = sortedDifference(cols2, cols1)

	// 有效比较列按 File 1 的列序排列；重复表头只取首次出现
	inRegistry := make(map[string]bool, len(c.CompareColumns))
	for _, col := range c.CompareColumns {
		inRegistry[col] = true
		if !cols1[col] {
			result.RequestedColumnsMissingInFile1 = append(result.RequestedColumnsMissingInFile1, col)
		}
		if !cols2[col] {
			result.RequestedColumnsMissingInFile2 = append(result.RequestedColumnsMissingInFile2, col)
		}
	}
	seen := make(map[string]bool)
	for _, col := range a.Columns {
		if inRegistry[col] && cols2[col] && !seen[col] {
			seen[col] = true
			result.ColumnsCompared = append(result.ColumnsCompared, col)
		}
	}

	indexB := BuildKeyIndex(b, keyColumns)

	// 键全集差异与逐行比对互相独立：前者是纯集合差
	keysA := make(map[string]bool, len(a.Rows))
	for _, row := range a.Rows {
		keysA[CompositeKey(row, keyColumns)] = true
	}
	keysB := make(map[string]bool, len(indexB))
	for key := range indexB {
		keysB[key] = true
	}
	result.KeysOnlyInFile1 = sortedKeyDifference(keysA, keysB)
	result.KeysOnlyInFile2 = sortedKeyDifference(keysB, keysA)

	for i, row := range a.Rows {
		key := CompositeKey(row, keyColumns)
		keyDisp := KeyDisplay(key)
		excelRow := i + 2 // 展示行号：表头占第 1 行

		j, matched := indexB[key]
		var excelRow2 *int
		if matched {
			v := j + 2
			excelRow2 = &v
		}

		entry := model.KeyCrosstabEntry{
			KeyValue:  keyDisp,
			KeyParts:  KeyParts(key),
			ExcelRow:  excelRow,
			ExcelRow2: excelRow2,
			Cells:     []model.CrosstabCell{},
		}

		for _, col := range result.ColumnsCompared {
			result.CellsCompared++
			v1 := row[col]

			var v2 any
			var isDiff bool
			if matched {
				v2 = b.Rows[j][col]
				isDiff = !Equal(v1, v2)
			} else {
				// File 2 无此键：该行全部比较列记为差异
				v2 = MissingSentinel
				isDiff = true
			}

			if isDiff {
				entry.DiffCount++
				result.Differences = append(result.Differences, model.CellDifference{
					RowIndex:   i,
					Column:     col,
					ValueFile1: v1,
					ValueFile2: v2,
					ExcelRow:   excelRow,
					ExcelRow2:  excelRow2,
					KeyValue:   keyDisp,
				})
			}
			entry.Cells = append(entry.Cells, model.CrosstabCell{
				Column:       col,
				ValueFile1:   v1,
				ValueFile2:   v2,
				IsDifference: isDiff,
			})
		}

		if entry.DiffCount > 0 || (c.IncludeUnchanged && len(entry.Cells) > 0) {
			result.KeyCrosstabs = append(result.KeyCrosstabs, entry)
		}
	}

	result.TotalDifferences = len(result.Differences)
	return result
}

// keyColumnError 键列缺失的错误信息，带上出错一侧的可用列清单
func keyColumnError(missing []string, side string, available []string) string {
	return fmt.Sprintf("Key column(s) '%s' not found in %s. Available columns: [%s]",
		strings.Join(missing, "', '"), side, strings.Join(available, ", "))
}
