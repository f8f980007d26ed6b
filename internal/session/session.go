// Package session 对账会话：扫描 → 人工修正 → 重建输出表的两阶段协议
package session

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/catalog"
	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/codec"
	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/exporter"
	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/model"
	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/parser"
)

// State 会话状态
type State string

const (
	StateScanning            State = "scanning"             // 初始：等待 Scan
	StateAwaitingCorrections State = "awaiting_corrections" // 扫描完成：等待修正集合
	StateReconciling         State = "reconciling"          // 第二阶段执行中
	StateDone                State = "done"                 // 已产出结果
)

// skipReason 划线行的跳过原因（汇总里原样展示）
const skipReason = "riga barrata (strikethrough)"

// Result 一次完整对账的产物
type Result struct {
	Summary  model.Summary
	Rows     []model.OutputRow
	Workbook *excelize.File
}

// Session 单次对账会话
// 每次调用方发起处理都新建一个会话，会话之间不共享任何可变状态；
// 同一输入与同一修正集合重跑，产出逐字节一致
type Session struct {
	order      codec.Sheet
	database   codec.Sheet
	commessa   string
	outputFile string

	state      State
	cols       model.ColumnMap
	index      *catalog.Index
	detector   *parser.StrikeDetector
	unresolved []model.UnresolvedRow
}

// New 创建会话；commessa 为输出表的工单号，outputFile 仅进入汇总
func New(order, database codec.Sheet, commessa, outputFile string) *Session {
	return &Session{
		order:      order,
		database:   database,
		commessa:   commessa,
		outputFile: outputFile,
		state:      StateScanning,
	}
}

// State 当前会话状态
func (s *Session) State() State {
	return s.state
}

// Unresolved 上次扫描收集的待修正行
func (s *Session) Unresolved() []model.UnresolvedRow {
	return s.unresolved
}

// Scan 第一阶段：定位表头、建数据库索引、收集无法构造编码的行
// 不做删除线与空行判断 —— 划线行也可能需要人工修正后保留记录完整性；
// 返回的待修正行非空时处理挂起，直到调用方通过 Resume 给出修正集合
func (s *Session) Scan() ([]model.UnresolvedRow, error) {
	if s.state != StateScanning {
		return nil, fmt.Errorf("session already scanned (state %s)", s.state)
	}

	cols, err := parser.LocateOrderHeaders(s.order.Rows())
	if err != nil {
		return nil, err
	}
	s.cols = cols

	idx, err := catalog.Build(s.database.Rows())
	if err != nil {
		return nil, err
	}
	s.index = idx
	s.detector = parser.NewStrikeDetector(s.order, cols.KeyCols())

	rows := s.order.Rows()
	for i := cols.HeaderRow + 1; i < len(rows); i++ {
		segs := s.segments(rows[i])
		if _, ok := parser.ConstructArticleCode(segs[0], segs[1], segs[2], segs[3]); ok {
			continue
		}
		desc := strings.TrimSpace(cellRaw(rows[i], cols.Description))
		if desc == "" {
			continue
		}
		s.unresolved = append(s.unresolved, model.UnresolvedRow{
			RowIndex:    i,
			ExcelRow:    i + 1,
			Segments:    segs,
			Description: desc,
		})
	}

	s.state = StateAwaitingCorrections
	return s.unresolved, nil
}

// Resume 第二阶段：带修正集合完成整轮对账
// 空集合表示放弃所有待修正行（这些行静默跳过，不进任何清单）
func (s *Session) Resume(corrections model.CorrectionSet) (*Result, error) {
	if s.state != StateAwaitingCorrections {
		return nil, fmt.Errorf("session is not awaiting corrections (state %s)", s.state)
	}
	s.state = StateReconciling

	var (
		outputRows []model.OutputRow
		updated    = map[string]struct{}{}
		notFound   = map[string]struct{}{}
		matched    = map[string]bool{}
		mismatches []model.DescriptionMismatch
		skipped    []model.SkippedRow
		lumpsum    []model.FlaggedRow
		included   []model.FlaggedRow
	)

	rows := s.order.Rows()
	for i := s.cols.HeaderRow + 1; i < len(rows); i++ {
		row := rows[i]
		excelRow := i + 1

		// 划线判定先于一切；编码仅用于汇总里标注这一行是谁
		if s.detector.RowStruck(i) {
			article := s.rowCode(i, row, corrections)
			if article == "" {
				article = "N/A"
			}
			skipped = append(skipped, model.SkippedRow{
				RowExcel: excelRow,
				Article:  article,
				Reason:   skipReason,
			})
			continue
		}

		code := s.rowCode(i, row, corrections)
		if code == "" {
			// 无编码也无修正：空行或被放弃的待修正行，不留痕迹
			continue
		}

		rec, ok := s.index.Match(code)
		if !ok {
			notFound[code] = struct{}{}
			continue
		}
		matched[code] = true

		cls := parser.ClassifyRow(
			parser.ParseNumericValue(cellRaw(row, s.cols.UnitPrice)),
			parser.ParseNumericValue(cellRaw(row, s.cols.DiscountedUnitPrice)),
			parser.ParseQuantity(cellRaw(row, s.cols.Qty)),
		)

		loc := cellRef(s.cols.UnitPrice, excelRow)
		if cls.State == model.PricingIncluded {
			included = append(included, model.FlaggedRow{Codice: code, Cella: loc})
			continue
		}

		var supp []string
		a3Desc := strings.TrimSpace(cellRaw(row, s.cols.Description))
		if a3Desc != "" && parser.NormalizeDescription(a3Desc) != parser.NormalizeDescription(rec.Description) {
			mismatches = append(mismatches, model.DescriptionMismatch{
				Codice:        code,
				DBDescription: rec.Description,
				A3Description: a3Desc,
			})
			supp = append(supp, a3Desc)
		}
		if cls.State == model.PricingLumpsum {
			lumpsum = append(lumpsum, model.FlaggedRow{Codice: code, Cella: loc})
			supp = append(supp, string(model.PricingLumpsum))
		}

		// 输出表的编码列取数据库里的原始单元格，而不是归一化后的编码
		outputRows = append(outputRows, model.OutputRow{
			Code:            rec.RawCode,
			Description:     rec.Description,
			SuppDescription: strings.Join(supp, " | "),
			Quantity:        cls.Quantity,
			ListPrice:       cls.ListPrice,
			Discount:        cls.Discount,
			HasDiscount:     cls.HasDiscount,
			Commessa:        s.commessa,
			State:           cls.State,
		})
		updated[code] = struct{}{}
	}

	workbook, err := exporter.BuildWorkbook(outputRows)
	if err != nil {
		return nil, err
	}

	summary := model.Summary{
		UpdatedRows:              len(outputRows),
		FoundAndUpdated:          sortedSet(updated),
		NotFoundInDB:             sortedSet(notFound),
		DuplicatesInDB:           s.index.Duplicates(),
		DescriptionMismatches:    mismatches,
		UnprocessedDBRows:        s.index.Untouched(matched),
		SkippedStrikethroughRows: skipped,
		LumpsumRows:              lumpsum,
		IncludedRows:             included,
		Assunzioni:               assumptions(),
		OutputFile:               s.outputFile,
	}

	s.state = StateDone
	return &Result{Summary: summary, Rows: outputRows, Workbook: workbook}, nil
}

// rowCode 解析某行的编码：修正优先，其次机械构造，都没有则为空
func (s *Session) rowCode(rowIdx int, row []model.CellValue, corrections model.CorrectionSet) string {
	if code, ok := corrections.Get(rowIdx); ok {
		return code
	}
	segs := s.segments(row)
	code, ok := parser.ConstructArticleCode(segs[0], segs[1], segs[2], segs[3])
	if !ok {
		return ""
	}
	return code
}

// segments 取本行四个层级段的原始值
func (s *Session) segments(row []model.CellValue) [4]string {
	cols := s.cols.SegmentCols()
	var segs [4]string
	for i, c := range cols {
		segs[i] = cellRaw(row, c)
	}
	return segs
}

// assumptions 本轮处理套用的约定，原样进汇总
func assumptions() []string {
	return []string{
		"Prezzi 'included' o con valore sentinella (9999999 / 9999999999) trattati come 0 e classificati INCLUDED",
		"Quantità assente o pari a 0 interpretata come fornitura a corpo: riga LUMPSUM con quantità forzata a 1",
		"Separatore decimale determinato dall'ultimo tra virgola e punto presente nel valore",
		"Righe barrate (anche su celle unite o su singoli tratti di testo) escluse dall'elaborazione",
		"File di output generato in formato .xlsx",
	}
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for code := range set {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func cellRaw(row []model.CellValue, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col].Raw()
}

// cellRef 组合 Excel 风格的单元格引用（0 基列 + 1 基行）
func cellRef(col, excelRow int) string {
	name := ""
	for c := col; c >= 0; c = c/26 - 1 {
		name = string(rune('A'+c%26)) + name
	}
	return fmt.Sprintf("%s%d", name, excelRow)
}
