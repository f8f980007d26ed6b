package parser

import "strings"

// ConstructArticleCode 从四个层级段构造规范物料编码
// L1 去空白后大写原样保留；L2..L4 仅取数字；
// L2 补零到 3 位，L3/L4 补零到 2 位；
// 仅 L3 有数字 → L1+L2+L3；L3、L4 均有数字 → L1+L2+L3+L4；
// L1 或 L2 为空、或 L3 无数字，均构造失败；
// 结果长度必须恰为 6 或 8，否则同样视为构造失败（不产生残缺编码）
func ConstructArticleCode(l1, l2, l3, l4 string) (string, bool) {
	seg1 := strings.ToUpper(strings.TrimSpace(l1))
	seg2 := digitsOnly(l2)
	seg3 := digitsOnly(l3)
	seg4 := digitsOnly(l4)

	if seg1 == "" || seg2 == "" {
		return "", false
	}
	if seg3 == "" {
		return "", false
	}

	code := seg1 + padLeft(seg2, 3) + padLeft(seg3, 2)
	if seg4 != "" {
		code += padLeft(seg4, 2)
	}

	if len(code) != 6 && len(code) != 8 {
		return "", false
	}
	return code, true
}

// padLeft 左侧补零到指定宽度（已超宽则原样返回）
func padLeft(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}
