package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	spaceRe        = regexp.MustCompile(`\s+`)
	headerStripRe  = regexp.MustCompile(`[\s\[\]\(\)]+`)
	nonAlnumRe     = regexp.MustCompile(`[^A-Z0-9]`)
	nonDigitRe     = regexp.MustCompile(`[^0-9]`)
	floatRe        = regexp.MustCompile(`-?\d+(\.\d+)?`)
	numericLikeRe  = regexp.MustCompile(`-?[\d.,]+`)
	letterParenRe  = regexp.MustCompile(`[a-zA-Z()]`)
	trailingPuncRe = regexp.MustCompile(`[.,]$`)
	includedRe     = regexp.MustCompile(`(?i)\b(included|incl\.?|includi|incluso)\b`)
)

// NormalizeHeader 表头标签归一化：去首尾空白、小写、空白压缩为单个空格
func NormalizeHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return spaceRe.ReplaceAllString(s, " ")
}

// NormalizeCodeHeader 表头短码归一化：小写并去掉空白与括号类字符
// 用于匹配 "L1".."L4" 这类层级段短码（可能写成 "[L1]" / "(l1)"）
func NormalizeCodeHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return headerStripRe.ReplaceAllString(s, "")
}

// NormalizeCode 编码归一化：大写，仅保留 [A-Z0-9]
func NormalizeCode(s string) string {
	return nonAlnumRe.ReplaceAllString(strings.ToUpper(s), "")
}

// NormalizeDescription 描述归一化：
// 去首尾空白、小写、空白压缩、"&" 替换为 "and"、去掉一个结尾句点/逗号
// 两个描述归一化后相同即视为等价
func NormalizeDescription(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = spaceRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "&", "and")
	return trailingPuncRe.ReplaceAllString(s, "")
}

// ParseNumericValue 价格归一化
// 空值、哨兵占位值（9999999 / 9999999999）、"included" 关键词族一律按 0 处理；
// 按最后一个逗号与最后一个点的位置判定小数分隔符约定；
// 无法解析的输入返回 0，从不报错
func ParseNumericValue(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" || s == "9999999" || s == "9999999999" {
		return 0
	}
	if includedRe.MatchString(s) {
		return 0
	}

	s = applyDecimalConvention(s)

	match := floatRe.FindString(s)
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseQuantity 数量归一化
// 返回 nil 表示"未填写数量"（区别于数量为 0）；
// 先去掉字母与圆括号，若剩余为空再退回从原文中提取数字样子串；
// 剩余含杂字符（如 "5 %"、"5-6"）时取其中第一个数字子串
func ParseQuantity(raw string) *float64 {
	s := strings.TrimSpace(strings.ReplaceAll(raw, " ", " "))
	if s == "" {
		return nil
	}

	clean := strings.TrimSpace(letterParenRe.ReplaceAllString(s, ""))
	if clean == "" {
		match := numericLikeRe.FindString(s)
		if match == "" {
			return nil
		}
		s = match
	} else {
		s = clean
	}

	s = applyDecimalConvention(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		match := floatRe.FindString(s)
		if match == "" {
			return nil
		}
		v, err = strconv.ParseFloat(match, 64)
		if err != nil {
			return nil
		}
	}
	return &v
}

// applyDecimalConvention 按最后出现的逗号/点判定千分位与小数点
// 逗号更靠右：点为千分位（去掉），逗号改为小数点；否则逗号为千分位
func applyDecimalConvention(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	if lastComma > lastDot {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
		return s
	}
	return strings.ReplaceAll(s, ",", "")
}

// digitsOnly 仅保留数字字符
func digitsOnly(s string) string {
	return nonDigitRe.ReplaceAllString(strings.TrimSpace(s), "")
}
