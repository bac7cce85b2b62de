// Package excel 负责工作簿的读入与比较结果的导出。
package excel

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/91225Gov/po-comparison/internal/model"
)

// Reader Excel 读入器：把工作表读成内存中的 Table 快照
type Reader struct {
	file   *excelize.File
	fileID string
}

// NewReader 创建读入器
func NewReader() *Reader {
	return &Reader{
		fileID: uuid.New().String(),
	}
}

// LoadFile 加载 Excel 文件
func (r *Reader) LoadFile(reader io.Reader) error {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return fmt.Errorf("failed to open excel: %w", err)
	}
	r.file = file
	return nil
}

// Close 释放底层工作簿
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}

// FileID 获取文件 ID
func (r *Reader) FileID() string {
	return r.fileID
}

// Sheets 获取工作表列表
func (r *Reader) Sheets() ([]model.SheetInfo, error) {
	if r.file == nil {
		return nil, errors.New("no file loaded")
	}

	sheets := r.file.GetSheetList()
	result := make([]model.SheetInfo, 0, len(sheets))

	for _, name := range sheets {
		rows, err := r.file.GetRows(name)
		if err != nil {
			continue
		}
		count := len(rows) - 1 // 去掉表头
		if count < 0 {
			count = 0
		}
		result = append(result, model.SheetInfo{
			Name:     name,
			RowCount: count,
		})
	}

	return result, nil
}

// Columns 获取某工作表的列名（首行）
func (r *Reader) Columns(sheet string) ([]string, error) {
	if r.file == nil {
		return nil, errors.New("no file loaded")
	}

	rows, err := r.file.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("empty sheet")
	}

	return rows[0], nil
}

// PreviewRows 获取预览行（不含表头）
func (r *Reader) PreviewRows(sheet string, limit int) ([][]string, error) {
	if r.file == nil {
		return nil, errors.New("no file loaded")
	}

	rows, err := r.file.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	if len(rows) <= 1 {
		return [][]string{}, nil
	}

	end := limit + 1
	if end > len(rows) {
		end = len(rows)
	}

	return rows[1:end], nil
}

// ReadTable 把某工作表读成 Table 快照
//
// 首行作为列名（去首尾空白）；空白表头列被跳过，重复表头只保留
// 首次出现的列。空单元格与越界单元格读为 nil，其余一律是工作表
// 显示形式的字符串。
func (r *Reader) ReadTable(sheet string) (*model.Table, error) {
	if r.file == nil {
		return nil, errors.New("no file loaded")
	}

	rows, err := r.file.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	table := &model.Table{
		SheetName: sheet,
		Columns:   []string{},
		Rows:      []model.Row{},
	}

	if len(rows) == 0 {
		return table, nil
	}

	// 列名与其在工作表中的位置；重复列名首个出现的位置生效
	colPos := make(map[string]int)
	for i, raw := range rows[0] {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, seen := colPos[name]; seen {
			continue
		}
		colPos[name] = i
		table.Columns = append(table.Columns, name)
	}

	for _, raw := range rows[1:] {
		row := make(model.Row, len(table.Columns))
		for _, col := range table.Columns {
			pos := colPos[col]
			if pos < len(raw) && raw[pos] != "" {
				row[col] = raw[pos]
			} else {
				row[col] = nil
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// ReadAllTables 读入全部工作表，按工作簿内顺序返回工作表名
func (r *Reader) ReadAllTables() (map[string]*model.Table, []string, error) {
	if r.file == nil {
		return nil, nil, errors.New("no file loaded")
	}

	order := r.file.GetSheetList()
	tables := make(map[string]*model.Table, len(order))
	for _, name := range order {
		t, err := r.ReadTable(name)
		if err != nil {
			return nil, nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		tables[name] = t
	}
	return tables, order, nil
}
