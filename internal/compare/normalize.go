// Package compare 实现按组合键匹配行、逐列比对两张表的核心引擎。
package compare

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Normalize 把任意单元格值归一为可比较的规范字符串
//
// 规则：
//   - nil / NaN 归一为空串
//   - 数值输出其最短字符串表示；等值判定是"表示级"而非"数值级"，
//     即表示不同的等值数（如 "5" 与 "5.0" 的文本形式）不视为相等，
//     这是既定比对口径，调整需走显式选项而非改默认行为
//   - 其余类型做字符串转换
//   - 一律去除首尾空白
func Normalize(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		if math.IsNaN(x) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		if math.IsNaN(float64(x)) {
			return ""
		}
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

// Equal 判断两个值在比对口径下是否相等
func Equal(a, b any) bool {
	return Normalize(a) == Normalize(b)
}
