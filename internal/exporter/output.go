// Package exporter 输出表（Database_AdHoc）构建器
package exporter

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/model"
)

// SheetName 输出工作表名
const SheetName = "Database_AdHoc"

// DefaultFileName 默认输出文件名
const DefaultFileName = "Database_AdHoc.xlsx"

// outputHeaders 固定 8 列，顺序不可变
var outputHeaders = []string{
	"Articolo", "Descrizione", "Descrizione supp",
	"QUANTITA", "Prezzo", "Sconto", "Prezzo Totale", "Commessa",
}

// 每列的显示宽度
var columnWidths = []float64{14, 48, 36, 10, 12, 10, 14, 14}

// BuildWorkbook 从输出行构建工作簿
//
// 强约束：每个单元格都带显式类型与显式数字格式，不留 "auto"；
// 总价列写公式，同时写入缓存计算值供不求值的读取方使用。
func BuildWorkbook(rows []model.OutputRow) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("重命名工作表失败: %w", err)
	}

	styles, err := newOutputStyles(f)
	if err != nil {
		return nil, err
	}

	for i, h := range outputHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, fmt.Errorf("写表头失败: %w", err)
		}
		if err := f.SetCellStyle(SheetName, cell, cell, styles.header); err != nil {
			return nil, fmt.Errorf("设置表头样式失败: %w", err)
		}
	}

	for i, w := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, col, col, w); err != nil {
			return nil, fmt.Errorf("设置列宽失败: %w", err)
		}
	}

	for i, row := range rows {
		if err := writeOutputRow(f, styles, i+2, row); err != nil {
			return nil, fmt.Errorf("写第 %d 行失败: %w", i+2, err)
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// outputStyles 输出表用到的全部样式 ID
type outputStyles struct {
	header  int
	text    int // numFmt 49 "@"
	integer int // numFmt 1 "0"
	decimal int // numFmt 2 "0.00"
}

func newOutputStyles(f *excelize.File) (outputStyles, error) {
	var s outputStyles
	var err error

	if s.header, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		NumFmt: 49,
	}); err != nil {
		return s, fmt.Errorf("创建表头样式失败: %w", err)
	}
	if s.text, err = f.NewStyle(&excelize.Style{NumFmt: 49}); err != nil {
		return s, fmt.Errorf("创建文本样式失败: %w", err)
	}
	if s.integer, err = f.NewStyle(&excelize.Style{NumFmt: 1}); err != nil {
		return s, fmt.Errorf("创建整数样式失败: %w", err)
	}
	if s.decimal, err = f.NewStyle(&excelize.Style{NumFmt: 2}); err != nil {
		return s, fmt.Errorf("创建小数样式失败: %w", err)
	}
	return s, nil
}

// writeOutputRow 写一条输出记录；n 为 1 基 Excel 行号
func writeOutputRow(f *excelize.File, styles outputStyles, n int, row model.OutputRow) error {
	set := func(col string, v interface{}, style int) error {
		cell := fmt.Sprintf("%s%d", col, n)
		if v != nil {
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return err
			}
		}
		return f.SetCellStyle(SheetName, cell, cell, style)
	}

	if err := set("A", row.Code, styles.text); err != nil {
		return err
	}
	if err := set("B", row.Description, styles.text); err != nil {
		return err
	}
	if err := set("C", row.SuppDescription, styles.text); err != nil {
		return err
	}
	if err := set("D", row.Quantity, styles.integer); err != nil {
		return err
	}
	if err := set("E", row.ListPrice, styles.decimal); err != nil {
		return err
	}

	// 折扣缺省时 F 列留空（只设样式），公式里的 ISBLANK 依赖这一点
	var discount interface{}
	if row.HasDiscount {
		discount = row.Discount
	}
	if err := set("F", discount, styles.decimal); err != nil {
		return err
	}

	// 总价：先写缓存值再挂公式，两者并存
	totalCell := fmt.Sprintf("G%d", n)
	if err := set("G", round2(row.Total()), styles.decimal); err != nil {
		return err
	}
	formula := fmt.Sprintf("ROUND(D%d*E%d*(1+IF(ISBLANK(F%d),0,F%d)/100),2)", n, n, n, n)
	if err := f.SetCellFormula(SheetName, totalCell, formula); err != nil {
		return err
	}

	return set("H", row.Commessa, styles.text)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
