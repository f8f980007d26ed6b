// Package codec 封装电子表格编解码能力
// 引擎各包只依赖 Sheet 接口，不直接打开文件
package codec

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/model"
)

// Sheet 只读表格视图：网格值 + 合并范围 + 删除线样式
type Sheet interface {
	// Rows 返回全部行（tagged union 单元格值）
	Rows() [][]model.CellValue
	// MergedRanges 返回合并单元格范围
	MergedRanges() []model.Range
	// CellStyle 返回指定单元格的样式（0 基行列）
	CellStyle(row, col int) model.CellStyle
}

// Open 从字节缓冲打开工作簿的第一个 Sheet
func Open(data []byte) (Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		_ = f.Close()
		return nil, fmt.Errorf("workbook has no sheets")
	}

	s := &excelSheet{file: f, name: sheetName}
	if err := s.load(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

// Write 序列化输出工作簿
func Write(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// excelSheet excelize 实现
type excelSheet struct {
	file   *excelize.File
	name   string
	rows   [][]model.CellValue
	merged []model.Range
}

func (s *excelSheet) load() error {
	raw, err := s.file.GetRows(s.name, excelize.Options{RawCellValue: true})
	if err != nil {
		return fmt.Errorf("read rows: %w", err)
	}

	s.rows = make([][]model.CellValue, len(raw))
	for r, row := range raw {
		cells := make([]model.CellValue, len(row))
		for c, v := range row {
			cells[c] = s.cellValue(r, c, v)
		}
		s.rows[r] = cells
	}

	merges, err := s.file.GetMergeCells(s.name)
	if err != nil {
		return fmt.Errorf("read merged ranges: %w", err)
	}
	for _, mg := range merges {
		sr, sc, ok1 := cellToRC(mg.GetStartAxis())
		er, ec, ok2 := cellToRC(mg.GetEndAxis())
		if !ok1 || !ok2 {
			continue
		}
		s.merged = append(s.merged, model.Range{
			StartRow: sr, StartCol: sc, EndRow: er, EndCol: ec,
		})
	}

	return nil
}

// cellValue 按实际单元格类型构造 tagged union 值
func (s *excelSheet) cellValue(row, col int, raw string) model.CellValue {
	if raw == "" {
		return model.EmptyCell()
	}

	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return model.TextCell(raw)
	}

	if formula, err := s.file.GetCellFormula(s.name, cell); err == nil && formula != "" {
		return model.FormulaCell(formula, raw)
	}

	// 数值单元格常常不带类型标记（CellTypeUnset），按可解析数字兜底
	ct, err := s.file.GetCellType(s.name, cell)
	if err == nil && (ct == excelize.CellTypeNumber || ct == excelize.CellTypeUnset) {
		if v, perr := strconv.ParseFloat(raw, 64); perr == nil {
			return model.NumberCell(v)
		}
	}
	return model.TextCell(raw)
}

func (s *excelSheet) Rows() [][]model.CellValue {
	return s.rows
}

func (s *excelSheet) MergedRanges() []model.Range {
	return s.merged
}

func (s *excelSheet) CellStyle(row, col int) model.CellStyle {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return model.CellStyle{}
	}

	style := model.CellStyle{}

	styleID, err := s.file.GetCellStyle(s.name, cell)
	if err == nil {
		if def, derr := s.file.GetStyle(styleID); derr == nil && def != nil && def.Font != nil {
			style.Strike = def.Font.Strike
		}
	}

	if runs, err := s.file.GetCellRichText(s.name, cell); err == nil {
		for _, run := range runs {
			style.Runs = append(style.Runs, model.RunStyle{
				Strike: run.Font != nil && run.Font.Strike,
			})
		}
	}

	return style
}

// cellToRC "B3" → (2, 1)，0 基
func cellToRC(cell string) (row, col int, ok bool) {
	c, r, err := excelize.CellNameToCoordinates(cell)
	if err != nil {
		return 0, 0, false
	}
	return r - 1, c - 1, true
}
