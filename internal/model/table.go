package model

// Row 单行数据：列名 -> 单元格值
// 取值域为 nil（缺失）/ 数值 / 文本
type Row map[string]any

// Table 已读入内存的一张工作表快照
// 列按工作表原始顺序排列，行号从 0 开始；读入后不再修改
type Table struct {
	SheetName string   `json:"sheetName"`
	Columns   []string `json:"columns"`
	Rows      []Row    `json:"rows"`
}

// SheetInfo 工作表概要信息
type SheetInfo struct {
	Name     string `json:"name"`
	RowCount int    `json:"rowCount"` // 数据行数（不含表头）
}

// RowCount 数据行数
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// HasColumn 判断列是否存在
func (t *Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// MissingColumns 返回 names 中不存在于表内的列，保持 names 的顺序
func (t *Table) MissingColumns(names []string) []string {
	missing := []string{}
	for _, name := range names {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Value 取第 i 行某列的值，行越界或列缺失时返回 nil
func (t *Table) Value(i int, column string) any {
	if i < 0 || i >= len(t.Rows) {
		return nil
	}
	return t.Rows[i][column]
}

// ColumnSet 列名集合
func (t *Table) ColumnSet() map[string]bool {
	set := make(map[string]bool, len(t.Columns))
	for _, col := range t.Columns {
		set[col] = true
	}
	return set
}
