package narrator

import (
	"regexp"
	"strings"
)

// 生成模型并不保证遵守系统提示词里的两模式契约，
// Sanitize 作为确定性的兜底过滤器强制执行：
// 选项列表与骰子标签二选一，骰子标签之后不得再有内容。

var (
	// 编号选项列表，如 "1. Pergi ke kiri"
	optionPattern = regexp.MustCompile(`\b\d+\.\s`)
	// 骰子请求标签 [ROLL_REQ: STR]
	rollPattern = regexp.MustCompile(`(?i)\[ROLL_REQ:\s*([A-Z]+)\]`)
)

// 开放式提问的文字线索（与系统提示词中的措辞一致）
const openQuestionCue = "Apa yang kamu lakukan?"

// Sanitize 对后端原始输出做结构契约净化，纯函数无状态：
//  1. 选项与骰子标签同时出现 → 删除所有骰子标签，保留选项叙事
//  2. 只有骰子标签 → 在标签结束处截断，丢弃其后内容
//  3. 其余情况原样返回
func Sanitize(text string) string {
	hasOptions := optionPattern.MatchString(text) || strings.Contains(text, openQuestionCue)
	rollLoc := rollPattern.FindStringIndex(text)

	switch {
	case hasOptions && rollLoc != nil:
		// 契约冲突时选项优先，错出的骰子标签全部移除
		return rollPattern.ReplaceAllString(text, "")
	case rollLoc != nil:
		// STOP 规则：标签之后不允许有任何内容
		return text[:rollLoc[1]]
	default:
		return text
	}
}
