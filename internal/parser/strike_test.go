package parser

import (
	"testing"

	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/model"
)

// fakeSheet 内存表格，仅服务删除线检测
type fakeSheet struct {
	rows   [][]model.CellValue
	merged []model.Range
	styles map[[2]int]model.CellStyle
}

func (s *fakeSheet) Rows() [][]model.CellValue { return s.rows }
func (s *fakeSheet) MergedRanges() []model.Range { return s.merged }

func (s *fakeSheet) CellStyle(row, col int) model.CellStyle {
	return s.styles[[2]int{row, col}]
}

func TestRowStruckWholeCell(t *testing.T) {
	t.Parallel()

	sheet := &fakeSheet{
		styles: map[[2]int]model.CellStyle{
			{2, 1}: {Strike: true},
		},
	}
	d := NewStrikeDetector(sheet, []int{0, 1, 2})

	if !d.RowStruck(2) {
		t.Fatal("row 2 has a struck key cell")
	}
	if d.RowStruck(3) {
		t.Fatal("row 3 has no struck cells")
	}
}

func TestRowStruckRichTextRun(t *testing.T) {
	t.Parallel()

	// 整格样式未划线，但富文本某一分段划线
	sheet := &fakeSheet{
		styles: map[[2]int]model.CellStyle{
			{5, 0}: {Runs: []model.RunStyle{{Strike: false}, {Strike: true}}},
		},
	}
	d := NewStrikeDetector(sheet, []int{0})

	if !d.RowStruck(5) {
		t.Fatal("a single struck rich-text run marks the row")
	}
}

func TestRowStruckMergedRange(t *testing.T) {
	t.Parallel()

	// 合并范围 (1,0)-(1,3)：左上角划线，经第 2 列查询同样判定划线
	sheet := &fakeSheet{
		merged: []model.Range{{StartRow: 1, StartCol: 0, EndRow: 1, EndCol: 3}},
		styles: map[[2]int]model.CellStyle{
			{1, 0}: {Strike: true},
		},
	}
	d := NewStrikeDetector(sheet, []int{2})

	if !d.RowStruck(1) {
		t.Fatal("merged range resolves to its struck top-left cell")
	}
}

func TestRowStruckIgnoresNonKeyColumns(t *testing.T) {
	t.Parallel()

	sheet := &fakeSheet{
		styles: map[[2]int]model.CellStyle{
			{0, 9}: {Strike: true}, // 非关键列
		},
	}
	d := NewStrikeDetector(sheet, []int{0, 1, 2})

	if d.RowStruck(0) {
		t.Fatal("strike outside key columns must not skip the row")
	}
}
