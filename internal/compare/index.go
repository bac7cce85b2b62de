package compare

import (
	"strings"

	"github.com/91225Gov/po-comparison/internal/model"
)

// keySeparator 组合键各段的分隔符，取不可打印字符避免与单元格内容冲突
const keySeparator = "\x1f"

// keyDisplaySeparator 组合键展示形式的分隔符
const keyDisplaySeparator = " / "

// CompositeKey 计算某一行的组合键：各键列归一化值按键列顺序拼接
func CompositeKey(row model.Row, keyColumns []string) string {
	parts := make([]string, len(keyColumns))
	for i, col := range keyColumns {
		parts[i] = Normalize(row[col])
	}
	return strings.Join(parts, keySeparator)
}

// KeyDisplay 组合键的展示形式
func KeyDisplay(key string) string {
	return strings.ReplaceAll(key, keySeparator, keyDisplaySeparator)
}

// KeyParts 拆出组合键的各段归一化值
func KeyParts(key string) []string {
	return strings.Split(key, keySeparator)
}

// BuildKeyIndex 建立 组合键 -> 首次出现行号 的索引
//
// 任一键列在表中不存在时返回空索引，调用方需在此之前把缺列当作
// 配置错误上报。重复组合键只保留首个出现的行，后续同键行对匹配
// 不可见（既定策略，保持不变）。
func BuildKeyIndex(t *model.Table, keyColumns []string) map[string]int {
	index := make(map[string]int, len(t.Rows))
	if len(t.MissingColumns(keyColumns)) > 0 {
		return index
	}
	for i, row := range t.Rows {
		key := CompositeKey(row, keyColumns)
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}
	return index
}
