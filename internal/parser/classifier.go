package parser

import "github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/model"

// Classification 行分类结果：定价状态 + 派生的数量/牌价/折扣三元组
type Classification struct {
	State       model.PricingState
	Quantity    float64
	ListPrice   float64
	Discount    float64 // 负百分比
	HasDiscount bool
}

// ClassifyRow 按价格与数量的组合判定定价状态
// 有效价格 = 折后价（>0 时），否则单价；
// 有效价格为 0 → INCLUDED（数量/牌价/折扣全部归 0，不进输出表）；
// 有效价格 >0 且数量缺失或为 0 → LUMPSUM，数量强制为 1；
// 有效价格 >0 且数量 >0 → NORMAL；
// 折扣仅在 牌价>0 且 0<折后价<牌价 时计算，否则视为缺省
func ClassifyRow(unitPrice, discountedPrice float64, quantity *float64) Classification {
	effective := unitPrice
	if discountedPrice > 0 {
		effective = discountedPrice
	}

	if effective == 0 {
		return Classification{State: model.PricingIncluded}
	}

	c := Classification{ListPrice: unitPrice}
	if quantity == nil || *quantity == 0 {
		c.State = model.PricingLumpsum
		c.Quantity = 1
	} else {
		c.State = model.PricingNormal
		c.Quantity = *quantity
	}

	if unitPrice > 0 && discountedPrice > 0 && discountedPrice < unitPrice {
		c.Discount = -((1 - discountedPrice/unitPrice) * 100)
		c.HasDiscount = true
	}

	return c
}
