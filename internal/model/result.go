package model

// PricingState 订单行定价状态（终态，分类后不再变更）
type PricingState string

const (
	PricingNormal   PricingState = "NORMAL"   // 正常：有价格且有数量
	PricingLumpsum  PricingState = "LUMPSUM"  // 总价项：有价格无数量，数量按 1 处理
	PricingIncluded PricingState = "INCLUDED" // 含项：无有效价格，不输出但计数
)

// OutputRow 输出表的一条记录
type OutputRow struct {
	Code            string       `json:"code"`
	Description     string       `json:"description"`
	SuppDescription string       `json:"suppDescription"` // 描述不一致文本 和/或 状态标签，" | " 连接
	Quantity        float64      `json:"quantity"`
	ListPrice       float64      `json:"listPrice"`
	Discount        float64      `json:"discount"`    // 负百分比；0 表示缺省（输出时留空）
	HasDiscount     bool         `json:"hasDiscount"` // Discount 是否写入输出
	Commessa        string       `json:"commessa"`
	State           PricingState `json:"state"`
}

// Total 折后总价（ROUND 到 2 位前的原始乘积由输出公式计算，此处为缓存值）
func (r OutputRow) Total() float64 {
	discount := 0.0
	if r.HasDiscount {
		discount = r.Discount
	}
	return r.Quantity * r.ListPrice * (1 + discount/100)
}

// DescriptionMismatch 订单描述与数据库描述不一致
type DescriptionMismatch struct {
	Codice        string `json:"codice"`
	DBDescription string `json:"db_description"`
	A3Description string `json:"a3_description"`
}

// SkippedRow 因删除线被跳过的订单行
type SkippedRow struct {
	RowExcel int    `json:"row_excel"` // 1 基显示行号
	Article  string `json:"article"`   // 编码；无法构造时为 "N/A"
	Reason   string `json:"reason"`
}

// FlaggedRow LUMPSUM / INCLUDED 行的编码 + 位置
type FlaggedRow struct {
	Codice string `json:"codice"`
	Cella  string `json:"cella"`
}

// UnprocessedRows 数据库中整单未被订单触及的行（审计用，不并入输出表）
type UnprocessedRows struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Summary 对账统计汇总
type Summary struct {
	UpdatedRows              int                   `json:"updated_rows"`
	FoundAndUpdated          []string              `json:"found_and_updated"`
	NotFoundInDB             []string              `json:"not_found_in_db"`
	DuplicatesInDB           []string              `json:"duplicates_in_db"`
	DescriptionMismatches    []DescriptionMismatch `json:"description_mismatches"`
	UnprocessedDBRows        UnprocessedRows       `json:"unprocessed_db_rows"`
	SkippedStrikethroughRows []SkippedRow          `json:"skipped_strikethrough_rows"`
	LumpsumRows              []FlaggedRow          `json:"lumpsum_rows"`
	IncludedRows             []FlaggedRow          `json:"included_rows"`
	Assunzioni               []string              `json:"assunzioni"`
	OutputFile               string                `json:"output_file"`
}
