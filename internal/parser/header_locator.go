package parser

import (
	"fmt"
	"strings"

	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/model"
)

// headerScanRows 表头只在前 20 行内扫描（再往下有误中数据行的风险）
const headerScanRows = 20

// LocateOrderHeaders 在 A3 订单网格中定位各逻辑字段的列
// 对每个单元格做两种独立归一化（标签匹配 / 短码匹配）后比对固定标签集；
// 表头行索引取所有命中列的行索引最大值（两行表头时后命中的列可能在下一行）；
// 九个必填字段任一未命中即返回致命错误，并点名全部缺失字段
func LocateOrderHeaders(grid [][]model.CellValue) (model.ColumnMap, error) {
	cols := model.NewColumnMap()

	limit := len(grid)
	if limit > headerScanRows {
		limit = headerScanRows
	}

	for i := 0; i < limit; i++ {
		for idx, cell := range grid[i] {
			norm := NormalizeHeader(cell.Raw())
			code := NormalizeCodeHeader(cell.Raw())
			if norm == "" && code == "" {
				continue
			}

			if cols.Qty == -1 && strings.Contains(norm, "q.ty") {
				cols.Qty = idx
				cols.HeaderRow = max(cols.HeaderRow, i)
			}
			if cols.UnitPrice == -1 && strings.Contains(norm, "unit pric") && !strings.Contains(norm, "discounted") {
				cols.UnitPrice = idx
				cols.HeaderRow = max(cols.HeaderRow, i)
			}
			if cols.DiscountedUnitPrice == -1 && strings.Contains(norm, "discounted unit price") {
				cols.DiscountedUnitPrice = idx
				cols.HeaderRow = max(cols.HeaderRow, i)
			}
			if cols.Description == -1 && strings.Contains(norm, "description") {
				cols.Description = idx
				cols.HeaderRow = max(cols.HeaderRow, i)
			}
			if cols.TotalPrice == -1 && strings.Contains(norm, "total pr") {
				cols.TotalPrice = idx
				cols.HeaderRow = max(cols.HeaderRow, i)
			}
			if cols.L1 == -1 && code == "l1" {
				cols.L1 = idx
				cols.HeaderRow = max(cols.HeaderRow, i)
			}
			if cols.L2 == -1 && code == "l2" {
				cols.L2 = idx
				cols.HeaderRow = max(cols.HeaderRow, i)
			}
			if cols.L3 == -1 && code == "l3" {
				cols.L3 = idx
				cols.HeaderRow = max(cols.HeaderRow, i)
			}
			if cols.L4 == -1 && code == "l4" {
				cols.L4 = idx
				cols.HeaderRow = max(cols.HeaderRow, i)
			}
		}
	}

	if missing := missingHeaders(cols); len(missing) > 0 {
		return cols, fmt.Errorf("missing mandatory headers: %s", strings.Join(missing, ", "))
	}

	return cols, nil
}

// missingHeaders 列出未定位到的必填字段
func missingHeaders(cols model.ColumnMap) []string {
	var missing []string
	checks := []struct {
		idx  int
		name string
	}{
		{cols.Qty, "q.ty"},
		{cols.UnitPrice, "unit price"},
		{cols.DiscountedUnitPrice, "discounted unit price"},
		{cols.Description, "description"},
		{cols.TotalPrice, "total price"},
		{cols.L1, "l1"},
		{cols.L2, "l2"},
		{cols.L3, "l3"},
		{cols.L4, "l4"},
	}
	for _, c := range checks {
		if c.idx == -1 {
			missing = append(missing, c.name)
		}
	}
	return missing
}
