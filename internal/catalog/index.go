// Package catalog 物料数据库（Database sheet）索引
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/model"
	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/parser"
)

// Record 数据库中一条物料记录
type Record struct {
	Code        string   // 归一化编码
	RawCode     string   // 编码单元格原始值（仅去首尾空白）
	Description string   // 描述（原样）
	Row         []string // 整行原始值
	RowIndex    int      // 0 基源行索引
}

// Index 去重后的物料索引
// 6 位与 8 位编码各自独立建表，互不匹配；
// 重复编码保留最先出现的记录（源行索引最小者），其余记入重复集合
type Index struct {
	Headers []string // 归一化后的表头
	CodeCol int
	DescCol int

	six   map[string]Record
	eight map[string]Record

	// 编码长度非 6/8 的行：永远匹配不到，但仍要进未处理行审计
	odd []Record

	duplicates map[string]struct{}
}

// Build 从数据库网格构建索引
// 表头固定在第 0 行，必须含编码列（"articolo"）与描述列（"descriz"），缺失即致命
func Build(grid [][]model.CellValue) (*Index, error) {
	if len(grid) == 0 {
		return nil, fmt.Errorf("database sheet is empty")
	}

	idx := &Index{
		CodeCol:    -1,
		DescCol:    -1,
		six:        map[string]Record{},
		eight:      map[string]Record{},
		duplicates: map[string]struct{}{},
	}

	for i, cell := range grid[0] {
		h := parser.NormalizeHeader(cell.Raw())
		idx.Headers = append(idx.Headers, h)
		if idx.CodeCol == -1 && strings.Contains(h, "articolo") {
			idx.CodeCol = i
		}
		if idx.DescCol == -1 && strings.Contains(h, "descriz") {
			idx.DescCol = i
		}
	}
	if idx.CodeCol == -1 {
		return nil, fmt.Errorf("database sheet is missing the article code column (articolo)")
	}
	if idx.DescCol == -1 {
		return nil, fmt.Errorf("database sheet is missing the description column (descrizione)")
	}

	for i := 1; i < len(grid); i++ {
		row := grid[i]
		code := parser.NormalizeCode(cellAt(row, idx.CodeCol))
		if code == "" {
			// 无编码的行既不入库也不算重复
			continue
		}

		rec := Record{
			Code:        code,
			RawCode:     strings.TrimSpace(cellAt(row, idx.CodeCol)),
			Description: strings.TrimSpace(cellAt(row, idx.DescCol)),
			Row:         rawRow(row),
			RowIndex:    i,
		}

		bucket := idx.bucket(len(code))
		if bucket == nil {
			idx.odd = append(idx.odd, rec)
			continue
		}
		if _, exists := bucket[code]; exists {
			idx.duplicates[code] = struct{}{}
			continue
		}

		bucket[code] = rec
	}

	return idx, nil
}

// Match 按编码长度查对应的表；6 位编码永远匹配不到 8 位记录，反之亦然
func (x *Index) Match(code string) (Record, bool) {
	bucket := x.bucket(len(code))
	if bucket == nil {
		return Record{}, false
	}
	rec, ok := bucket[code]
	return rec, ok
}

// Duplicates 排序后的重复编码列表
func (x *Index) Duplicates() []string {
	out := make([]string, 0, len(x.duplicates))
	for code := range x.duplicates {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Untouched 返回订单中从未匹配到的数据库行（按源行顺序），供审计
// 长度非 6/8 的编码行无从匹配，固定计入
func (x *Index) Untouched(matched map[string]bool) model.UnprocessedRows {
	records := append([]Record(nil), x.odd...)
	for _, bucket := range []map[string]Record{x.six, x.eight} {
		for code, rec := range bucket {
			if !matched[code] {
				records = append(records, rec)
			}
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].RowIndex < records[j].RowIndex })

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.Row)
	}
	return model.UnprocessedRows{Headers: x.Headers, Rows: rows}
}

func (x *Index) bucket(codeLen int) map[string]Record {
	switch codeLen {
	case 6:
		return x.six
	case 8:
		return x.eight
	}
	return nil
}

func cellAt(row []model.CellValue, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col].Raw()
}

func rawRow(row []model.CellValue) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = c.Raw()
	}
	return out
}
