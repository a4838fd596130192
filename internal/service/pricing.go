package service

import (
	"strings"

	"github.com/foodiehub/internal/constants"

	"github.com/shopspring/decimal"
)

var (
	save5Rate   = decimal.NewFromFloat(0.05)
	first10Rate = decimal.NewFromFloat(0.10)
)

// PricingInput 价格计算输入
type PricingInput struct {
	Subtotal       decimal.Decimal
	CouponCode     string
	FirstOrder     bool
	BonusAvailable bool
	BonusValue     decimal.Decimal
	GiftAmount     decimal.Decimal
}

// PricingResult 价格计算结果，各折扣分量单独给出便于落单
type PricingResult struct {
	CouponLabel    string
	CouponDiscount decimal.Decimal
	BonusDiscount  decimal.Decimal
	BonusConsumed  bool
	GiftDiscount   decimal.Decimal
	TotalDiscount  decimal.Decimal
	FinalAmount    decimal.Decimal
}

// ComputeDiscount 计算订单折扣。
// 折扣按 优惠码 -> 积分奖励 -> 礼品券 的顺序累加，
// 最后对实付金额整体做一次非负钳制并保留 2 位小数。
func ComputeDiscount(in PricingInput) PricingResult {
	result := PricingResult{
		CouponDiscount: decimal.Zero,
		BonusDiscount:  decimal.Zero,
		GiftDiscount:   decimal.Zero,
	}

	code := strings.ToUpper(strings.TrimSpace(in.CouponCode))
	switch {
	case code == constants.CouponCodeSave5:
		result.CouponDiscount = in.Subtotal.Mul(save5Rate).Round(2)
		result.CouponLabel = constants.CouponCodeSave5
	case code == constants.CouponCodeFirst10 && in.FirstOrder:
		result.CouponDiscount = in.Subtotal.Mul(first10Rate).Round(2)
		result.CouponLabel = constants.CouponCodeFirst10
	}

	// 首单未命中任何优惠码（含无码、无效码）时自动套用 FIRST10
	if result.CouponLabel == "" && in.FirstOrder {
		result.CouponDiscount = in.Subtotal.Mul(first10Rate).Round(2)
		result.CouponLabel = constants.CouponLabelFirst10Auto
	}

	if in.BonusAvailable && in.BonusValue.IsPositive() {
		result.BonusDiscount = in.BonusValue.Round(2)
		result.BonusConsumed = true
	}

	if in.GiftAmount.IsPositive() {
		result.GiftDiscount = in.GiftAmount.Round(2)
	}

	result.TotalDiscount = result.CouponDiscount.Add(result.BonusDiscount).Add(result.GiftDiscount).Round(2)

	final := in.Subtotal.Sub(result.TotalDiscount)
	if final.IsNegative() {
		final = decimal.Zero
	}
	result.FinalAmount = final.Round(2)
	return result
}

// EarnedPoints 实付金额向下取整作为本单获得的积分
func EarnedPoints(finalAmount decimal.Decimal) int64 {
	if finalAmount.IsNegative() {
		return 0
	}
	return finalAmount.Floor().IntPart()
}
