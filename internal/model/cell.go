package model

import (
	"strconv"
	"strings"
)

// CellKind 单元格值类型
type CellKind int

const (
	CellEmpty   CellKind = iota // 空单元格
	CellNumber                  // 数值
	CellText                    // 文本
	CellFormula                 // 公式（带缓存值）
)

// CellValue 单元格值（显式 tagged union，归一化器统一消费）
type CellValue struct {
	Kind    CellKind
	Number  float64
	Text    string
	Formula string
	Cached  string // 公式的缓存计算结果（原始文本）
}

// EmptyCell 空单元格
func EmptyCell() CellValue {
	return CellValue{Kind: CellEmpty}
}

// NumberCell 数值单元格
func NumberCell(v float64) CellValue {
	return CellValue{Kind: CellNumber, Number: v}
}

// TextCell 文本单元格
func TextCell(s string) CellValue {
	if strings.TrimSpace(s) == "" {
		return EmptyCell()
	}
	return CellValue{Kind: CellText, Text: s}
}

// FormulaCell 公式单元格
func FormulaCell(formula, cached string) CellValue {
	return CellValue{Kind: CellFormula, Formula: formula, Cached: cached}
}

// Raw 返回单元格的原始文本形式（公式取缓存值）
func (c CellValue) Raw() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellText:
		return c.Text
	case CellFormula:
		return c.Cached
	}
	return ""
}

// IsEmpty 判断是否为空（空白文本视为空）
func (c CellValue) IsEmpty() bool {
	return c.Kind == CellEmpty || strings.TrimSpace(c.Raw()) == ""
}

// Range 合并单元格范围（0 基行列，闭区间）
type Range struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// Contains 判断坐标是否落在范围内
func (r Range) Contains(row, col int) bool {
	return row >= r.StartRow && row <= r.EndRow && col >= r.StartCol && col <= r.EndCol
}

// RunStyle 富文本分段样式
type RunStyle struct {
	Strike bool
}

// CellStyle 单元格样式（仅保留对账需要的删除线信息）
type CellStyle struct {
	Strike bool       // 整格删除线
	Runs   []RunStyle // 富文本分段样式
}

// AnyStrike 整格或任一分段带删除线即视为划线
func (s CellStyle) AnyStrike() bool {
	if s.Strike {
		return true
	}
	for _, run := range s.Runs {
		if run.Strike {
			return true
		}
	}
	return false
}
