package parser

import (
	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/codec"
	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/model"
)

// StrikeDetector 按行判定关键列是否带删除线
// 合并单元格取其左上角单元格的样式；
// 整格删除线或富文本任一分段删除线均计为划线
type StrikeDetector struct {
	sheet   codec.Sheet
	merged  []model.Range
	keyCols []int
}

// NewStrikeDetector 创建删除线检测器
// keyCols 为关键列集合（层级段、描述、数量、单价、折后价中已定位的列）
func NewStrikeDetector(sheet codec.Sheet, keyCols []int) *StrikeDetector {
	return &StrikeDetector{
		sheet:   sheet,
		merged:  sheet.MergedRanges(),
		keyCols: keyCols,
	}
}

// RowStruck 任一关键列被划线即判定整行被划线（命中即返回，不再检查后续列）
func (d *StrikeDetector) RowStruck(row int) bool {
	for _, col := range d.keyCols {
		if d.cellStruck(row, col) {
			return true
		}
	}
	return false
}

// cellStruck 判定单个单元格；落在合并范围内时以范围左上角为准
func (d *StrikeDetector) cellStruck(row, col int) bool {
	r, c := row, col
	for _, rng := range d.merged {
		if rng.Contains(row, col) {
			r, c = rng.StartRow, rng.StartCol
			break
		}
	}
	return d.sheet.CellStyle(r, c).AnyStrike()
}
