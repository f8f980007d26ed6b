package model

// ColumnMap A3 订单表的逻辑字段 → 列索引映射
// -1 表示未定位到；九个必填字段缺一即为致命错误
type ColumnMap struct {
	Qty                 int `json:"qty"`
	UnitPrice           int `json:"unitPrice"`
	DiscountedUnitPrice int `json:"discountedUnitPrice"`
	Description         int `json:"description"`
	TotalPrice          int `json:"totalPrice"`
	L1                  int `json:"l1"`
	L2                  int `json:"l2"`
	L3                  int `json:"l3"`
	L4                  int `json:"l4"`
	HeaderRow           int `json:"headerRow"` // 表头行索引（各列命中行的最大值）
}

// NewColumnMap 创建全部未定位的映射
func NewColumnMap() ColumnMap {
	return ColumnMap{
		Qty: -1, UnitPrice: -1, DiscountedUnitPrice: -1,
		Description: -1, TotalPrice: -1,
		L1: -1, L2: -1, L3: -1, L4: -1,
		HeaderRow: -1,
	}
}

// SegmentCols 四个层级段的列索引（L1..L4）
func (m ColumnMap) SegmentCols() [4]int {
	return [4]int{m.L1, m.L2, m.L3, m.L4}
}

// KeyCols 删除线检测的关键列（仅返回已定位的列）
func (m ColumnMap) KeyCols() []int {
	candidates := []int{m.L1, m.L2, m.L3, m.L4, m.Description, m.Qty, m.UnitPrice, m.DiscountedUnitPrice}
	cols := make([]int, 0, len(candidates))
	for _, c := range candidates {
		if c >= 0 {
			cols = append(cols, c)
		}
	}
	return cols
}

// UnresolvedRow 无法机械构造编码、但带描述内容的订单行（待人工修正）
type UnresolvedRow struct {
	RowIndex    int       `json:"rowIndex"`    // 0 基源行索引
	ExcelRow    int       `json:"excelRow"`    // 1 基显示行号
	Segments    [4]string `json:"segments"`    // L1..L4 原始值
	Description string    `json:"description"` // 描述文本
}

// CorrectionSet 行索引 → 人工修正编码的不可变集合
// 空值/非法编码在构造时即被丢弃，不会以空条目存在
type CorrectionSet struct {
	entries map[int]string
}

// NewCorrectionSet 构造修正集合；value 会做编码归一化，归一化后为空的条目被丢弃
func NewCorrectionSet(raw map[int]string, normalize func(string) string) CorrectionSet {
	entries := make(map[int]string, len(raw))
	for row, code := range raw {
		norm := normalize(code)
		if norm == "" {
			continue
		}
		entries[row] = norm
	}
	return CorrectionSet{entries: entries}
}

// EmptyCorrectionSet 空集合（表示跳过所有未解决行）
func EmptyCorrectionSet() CorrectionSet {
	return CorrectionSet{entries: map[int]string{}}
}

// Get 查询某行的修正编码
func (c CorrectionSet) Get(row int) (string, bool) {
	code, ok := c.entries[row]
	return code, ok
}

// Len 条目数
func (c CorrectionSet) Len() int {
	return len(c.entries)
}
