package compare

import (
	"sort"

	"github.com/91225Gov/po-comparison/internal/model"
)

// newResult 初始化结果快照，所有切片字段置为空切片而非 nil，
// 保证序列化后始终是 JSON 数组
func newResult(a, b *model.Table, keyColumns []string) *model.ComparisonResult {
	keys := make([]string, len(keyColumns))
	copy(keys, keyColumns)

	return &model.ComparisonResult{
		SheetNameFile1: a.SheetName,
		SheetNameFile2: b.SheetName,
		RowsFile1:      a.RowCount(),
		RowsFile2:      b.RowCount(),
		KeyColumns:     keys,

		CommonColumns:      []string{},
		ColumnsOnlyInFile1: []string{},
		ColumnsOnlyInFile2: []string{},

		ColumnsCompared:                []string{},
		RequestedColumnsMissingInFile1: []string{},
		RequestedColumnsMissingInFile2: []string{},

		Differences:  []model.CellDifference{},
		KeyCrosstabs: []model.KeyCrosstabEntry{},

		KeysOnlyInFile1: []string{},
		KeysOnlyInFile2: []string{},
	}
}

// sortedIntersection 两个列名集合的交集，升序
func sortedIntersection(a, b map[string]bool) []string {
	out := []string{}
	for col := range a {
		if b[col] {
			out = append(out, col)
		}
	}
	sort.Strings(out)
	return out
}

// sortedDifference a 有而 b 没有的列名，升序
func sortedDifference(a, b map[string]bool) []string {
	out := []string{}
	for col := range a {
		if !b[col] {
			out = append(out, col)
		}
	}
	sort.Strings(out)
	return out
}

// sortedKeyDifference a 有而 b 没有的组合键，转为展示形式后升序
func sortedKeyDifference(a, b map[string]bool) []string {
	out := []string{}
	for key := range a {
		if !b[key] {
			out = append(out, KeyDisplay(key))
		}
	}
	sort.Strings(out)
	return out
}
