package parser

import (
	"strings"
	"testing"

	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/model"
)

func textRow(cells ...string) []model.CellValue {
	row := make([]model.CellValue, len(cells))
	for i, c := range cells {
		row[i] = model.TextCell(c)
	}
	return row
}

func TestLocateOrderHeaders(t *testing.T) {
	t.Parallel()

	grid := [][]model.CellValue{
		textRow("Offer n. 123", "", "", "", "", "", "", "", ""),
		textRow("L1", "L2", "L3", "L4", "Description", "Q.ty", "Unit Price", "Discounted Unit Price", "Total Price"),
	}

	cols, err := LocateOrderHeaders(grid)
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if cols.HeaderRow != 1 {
		t.Fatalf("header row = %d, want 1", cols.HeaderRow)
	}
	if cols.L1 != 0 || cols.L2 != 1 || cols.L3 != 2 || cols.L4 != 3 {
		t.Fatalf("segment columns: %+v", cols)
	}
	if cols.Description != 4 || cols.Qty != 5 || cols.UnitPrice != 6 || cols.DiscountedUnitPrice != 7 || cols.TotalPrice != 8 {
		t.Fatalf("field columns: %+v", cols)
	}
}

func TestLocateOrderHeadersTwoRowHeader(t *testing.T) {
	t.Parallel()

	// 分段短码与价格标签分在两行：表头行取命中行的最大值
	grid := [][]model.CellValue{
		textRow("[L1]", "(l2)", "L 3", "L4", "", "", "", "", ""),
		textRow("", "", "", "", "Description", "Q.TY (pcs)", "Unit   Price", "Discounted Unit Price", "Total Pr."),
	}

	cols, err := LocateOrderHeaders(grid)
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if cols.HeaderRow != 1 {
		t.Fatalf("header row = %d, want 1", cols.HeaderRow)
	}
	if cols.L1 != 0 || cols.L4 != 3 || cols.UnitPrice != 6 {
		t.Fatalf("columns: %+v", cols)
	}
}

func TestLocateOrderHeadersUnitPriceNotDiscounted(t *testing.T) {
	t.Parallel()

	// "discounted unit price" 在前也不得误占单价列
	grid := [][]model.CellValue{
		textRow("L1", "L2", "L3", "L4", "Description", "Q.ty", "Discounted Unit Price", "Unit Price", "Total Price"),
	}

	cols, err := LocateOrderHeaders(grid)
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if cols.DiscountedUnitPrice != 6 || cols.UnitPrice != 7 {
		t.Fatalf("price columns: %+v", cols)
	}
}

func TestLocateOrderHeadersMissing(t *testing.T) {
	t.Parallel()

	grid := [][]model.CellValue{
		textRow("L1", "L2", "L3", "Description", "Q.ty"),
	}

	_, err := LocateOrderHeaders(grid)
	if err == nil {
		t.Fatal("expected error for missing headers")
	}
	for _, name := range []string{"unit price", "discounted unit price", "total price", "l4"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error %q should name %q", err, name)
		}
	}
}

func TestLocateOrderHeadersScanWindow(t *testing.T) {
	t.Parallel()

	// 第 20 行之后的表头不在扫描范围内
	grid := make([][]model.CellValue, 0, 21)
	for i := 0; i < 20; i++ {
		grid = append(grid, textRow(""))
	}
	grid = append(grid, textRow("L1", "L2", "L3", "L4", "Description", "Q.ty", "Unit Price", "Discounted Unit Price", "Total Price"))

	if _, err := LocateOrderHeaders(grid); err == nil {
		t.Fatal("headers beyond the scan window must not be found")
	}
}
