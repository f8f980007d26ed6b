package session

import (
	"reflect"
	"testing"

	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/model"
	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/parser"
)

// fakeSheet 内存表格，测试专用
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

func row(cells ...string) []model.CellValue {
	out := make([]model.CellValue, len(cells))
	for i, c := range cells {
		out[i] = model.TextCell(c)
	}
	return out
}

func orderSheet() *fakeSheet {
	return &fakeSheet{
		rows: [][]model.CellValue{
			row("Offerta n. 42"),
			row("L1", "L2", "L3", "L4", "Description", "Q.ty", "Unit Price", "Discounted Unit Price", "Total Price"),
			row("X", "12", "3", "", "Widget", "5", "100", "80", ""),
			row("X", "17", "3", "", "Valvola a sfera", "", "150,00", "", ""),
			row("Y", "1", "1", "", "Cavo", "2", "included", "", ""),
			row("Z", "9", "9", "", "Ignoto", "1", "50", "", ""),
			row("X", "12", "3", "", "Barrata", "1", "10", "", ""),
			row("", "", "", "", "Da correggere", "2", "75", "", ""),
			row("", "", "", "", "", "", "", "", ""),
		},
		styles: map[[2]int]model.CellStyle{
			{6, 0}: {Strike: true}, // 第 7 显示行整行视为划线
		},
	}
}

func databaseSheet() *fakeSheet {
	return &fakeSheet{
		rows: [][]model.CellValue{
			row("Articolo", "Descrizione"),
			row("X01203", "Widget"),
			row("X01703", "Valvola"),
			row("Y00101", "Cavo incluso"),
			row("Y00202", "Extra"),
			row("W00101", "Mai usato"),
			row("X01203", "Widget duplicato"),
		},
	}
}

func TestSessionScan(t *testing.T) {
	t.Parallel()

	s := New(orderSheet(), databaseSheet(), "C-2026-01", "Database_AdHoc.xlsx")
	if s.State() != StateScanning {
		t.Fatalf("state = %s", s.State())
	}

	unresolved, err := s.Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if s.State() != StateAwaitingCorrections {
		t.Fatalf("state = %s", s.State())
	}

	if len(unresolved) != 1 {
		t.Fatalf("unresolved = %d, want 1", len(unresolved))
	}
	u := unresolved[0]
	if u.RowIndex != 7 || u.ExcelRow != 8 || u.Description != "Da correggere" {
		t.Fatalf("unresolved row: %+v", u)
	}

	if _, err := s.Scan(); err == nil {
		t.Fatal("second scan must fail")
	}
}

func TestSessionResumeBeforeScan(t *testing.T) {
	t.Parallel()

	s := New(orderSheet(), databaseSheet(), "C-2026-01", "out.xlsx")
	if _, err := s.Resume(model.EmptyCorrectionSet()); err == nil {
		t.Fatal("resume before scan must fail")
	}
}

func TestSessionFullRun(t *testing.T) {
	t.Parallel()

	s := New(orderSheet(), databaseSheet(), "C-2026-01", "Database_AdHoc.xlsx")
	if _, err := s.Scan(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	corr := model.NewCorrectionSet(map[int]string{7: "y 002 02"}, parser.NormalizeCode)
	res, err := s.Resume(corr)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if s.State() != StateDone {
		t.Fatalf("state = %s", s.State())
	}

	if len(res.Rows) != 3 {
		t.Fatalf("output rows = %d, want 3: %+v", len(res.Rows), res.Rows)
	}

	// 输出顺序 = 源行升序
	first := res.Rows[0]
	if first.Code != "X01203" || first.State != model.PricingNormal {
		t.Fatalf("first row: %+v", first)
	}
	if first.Quantity != 5 || first.ListPrice != 100 || !first.HasDiscount || first.Discount != -20 {
		t.Fatalf("first row pricing: %+v", first)
	}
	if first.SuppDescription != "" {
		t.Fatalf("first row supp = %q", first.SuppDescription)
	}
	if first.Commessa != "C-2026-01" {
		t.Fatalf("commessa = %q", first.Commessa)
	}

	second := res.Rows[1]
	if second.Code != "X01703" || second.State != model.PricingLumpsum || second.Quantity != 1 {
		t.Fatalf("second row: %+v", second)
	}
	if second.Description != "Valvola" {
		t.Fatalf("description from catalog: %q", second.Description)
	}
	if second.SuppDescription != "Valvola a sfera | LUMPSUM" {
		t.Fatalf("second row supp = %q", second.SuppDescription)
	}

	third := res.Rows[2]
	if third.Code != "Y00202" || third.Quantity != 2 || third.ListPrice != 75 {
		t.Fatalf("corrected row: %+v", third)
	}

	sum := res.Summary
	if sum.UpdatedRows != 3 {
		t.Fatalf("updated rows = %d", sum.UpdatedRows)
	}
	if want := []string{"X01203", "X01703", "Y00202"}; !reflect.DeepEqual(sum.FoundAndUpdated, want) {
		t.Fatalf("found and updated = %v", sum.FoundAndUpdated)
	}
	if want := []string{"Z00909"}; !reflect.DeepEqual(sum.NotFoundInDB, want) {
		t.Fatalf("not found = %v", sum.NotFoundInDB)
	}
	if want := []string{"X01203"}; !reflect.DeepEqual(sum.DuplicatesInDB, want) {
		t.Fatalf("duplicates = %v", sum.DuplicatesInDB)
	}

	if len(sum.DescriptionMismatches) != 1 {
		t.Fatalf("mismatches = %+v", sum.DescriptionMismatches)
	}
	mm := sum.DescriptionMismatches[0]
	if mm.Codice != "X01703" || mm.DBDescription != "Valvola" || mm.A3Description != "Valvola a sfera" {
		t.Fatalf("mismatch: %+v", mm)
	}

	if len(sum.SkippedStrikethroughRows) != 1 {
		t.Fatalf("skipped = %+v", sum.SkippedStrikethroughRows)
	}
	sk := sum.SkippedStrikethroughRows[0]
	if sk.RowExcel != 7 || sk.Article != "X01203" {
		t.Fatalf("skipped: %+v", sk)
	}

	if len(sum.LumpsumRows) != 1 || sum.LumpsumRows[0].Codice != "X01703" || sum.LumpsumRows[0].Cella != "G4" {
		t.Fatalf("lumpsum = %+v", sum.LumpsumRows)
	}
	if len(sum.IncludedRows) != 1 || sum.IncludedRows[0].Codice != "Y00101" || sum.IncludedRows[0].Cella != "G5" {
		t.Fatalf("included = %+v", sum.IncludedRows)
	}

	if len(sum.UnprocessedDBRows.Rows) != 1 || sum.UnprocessedDBRows.Rows[0][0] != "W00101" {
		t.Fatalf("unprocessed = %+v", sum.UnprocessedDBRows)
	}
	if sum.OutputFile != "Database_AdHoc.xlsx" {
		t.Fatalf("output file = %q", sum.OutputFile)
	}
	if len(sum.Assunzioni) == 0 {
		t.Fatal("assumptions must not be empty")
	}

	if res.Workbook == nil {
		t.Fatal("workbook missing")
	}
	defer res.Workbook.Close()
	if got, _ := res.Workbook.GetCellValue("Database_AdHoc", "A2"); got != "X01203" {
		t.Fatalf("workbook A2 = %q", got)
	}
	if got, _ := res.Workbook.GetCellFormula("Database_AdHoc", "G2"); got != "ROUND(D2*E2*(1+IF(ISBLANK(F2),0,F2)/100),2)" {
		t.Fatalf("workbook G2 formula = %q", got)
	}
}

func TestSessionOutputUsesCatalogRawCode(t *testing.T) {
	t.Parallel()

	order := &fakeSheet{rows: [][]model.CellValue{
		row("L1", "L2", "L3", "L4", "Description", "Q.ty", "Unit Price", "Discounted Unit Price", "Total Price"),
		row("X", "12", "3", "", "Widget", "5", "100", "", ""),
	}}
	db := &fakeSheet{rows: [][]model.CellValue{
		row("Articolo", "Descrizione"),
		row(" x 012 03 ", "Widget"),
	}}

	s := New(order, db, "C", "out.xlsx")
	if _, err := s.Scan(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	res, err := s.Resume(model.EmptyCorrectionSet())
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	defer res.Workbook.Close()

	// 输出编码取数据库原始单元格，汇总清单用归一化编码
	if len(res.Rows) != 1 || res.Rows[0].Code != "x 012 03" {
		t.Fatalf("rows = %+v", res.Rows)
	}
	if want := []string{"X01203"}; !reflect.DeepEqual(res.Summary.FoundAndUpdated, want) {
		t.Fatalf("found and updated = %v", res.Summary.FoundAndUpdated)
	}
}

func TestSessionEmptyCorrectionsSkipsUnresolved(t *testing.T) {
	t.Parallel()

	s := New(orderSheet(), databaseSheet(), "C-2026-01", "out.xlsx")
	if _, err := s.Scan(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	res, err := s.Resume(model.EmptyCorrectionSet())
	if err != nil {
		t.Fatalf("resume: %v", err)
	}

	// 被放弃的待修正行不出现在任何输出与清单里
	if len(res.Rows) != 2 {
		t.Fatalf("output rows = %d, want 2", len(res.Rows))
	}
	for _, code := range res.Summary.NotFoundInDB {
		if code == "Y00202" {
			t.Fatal("abandoned row leaked into not-found list")
		}
	}
}

func TestSessionMissingHeadersFatal(t *testing.T) {
	t.Parallel()

	order := &fakeSheet{rows: [][]model.CellValue{row("L1", "L2", "L3", "Description")}}
	s := New(order, databaseSheet(), "C", "out.xlsx")
	if _, err := s.Scan(); err == nil {
		t.Fatal("missing headers must abort the scan")
	}
}

func TestSessionDeterministicRerun(t *testing.T) {
	t.Parallel()

	run := func() *Result {
		s := New(orderSheet(), databaseSheet(), "C-2026-01", "out.xlsx")
		if _, err := s.Scan(); err != nil {
			t.Fatalf("scan: %v", err)
		}
		res, err := s.Resume(model.NewCorrectionSet(map[int]string{7: "Y00202"}, parser.NormalizeCode))
		if err != nil {
			t.Fatalf("resume: %v", err)
		}
		res.Workbook.Close()
		return res
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a.Rows, b.Rows) {
		t.Fatal("reruns must produce identical rows")
	}
	if !reflect.DeepEqual(a.Summary, b.Summary) {
		t.Fatal("reruns must produce identical summaries")
	}
}
