package service

import (
	"testing"

	"github.com/foodiehub/internal/constants"

	"github.com/shopspring/decimal"
)

func TestComputeDiscountSave5(t *testing.T) {
	result := ComputeDiscount(PricingInput{
		Subtotal:   decimal.NewFromInt(200),
		CouponCode: "save5",
	})

	if result.CouponLabel != constants.CouponCodeSave5 {
		t.Fatalf("expected SAVE5 label, got %q", result.CouponLabel)
	}
	if result.CouponDiscount.StringFixed(2) != "10.00" {
		t.Fatalf("expected 10.00 coupon discount, got %s", result.CouponDiscount)
	}
	if result.FinalAmount.StringFixed(2) != "190.00" {
		t.Fatalf("expected 190.00 final, got %s", result.FinalAmount)
	}
}

func TestComputeDiscountFirst10RequiresFirstOrder(t *testing.T) {
	result := ComputeDiscount(PricingInput{
		Subtotal:   decimal.NewFromInt(150),
		CouponCode: constants.CouponCodeFirst10,
		FirstOrder: false,
	})

	if !result.CouponDiscount.IsZero() {
		t.Fatalf("FIRST10 on a repeat order must not discount, got %s", result.CouponDiscount)
	}
	if result.CouponLabel != "" {
		t.Fatalf("expected empty label, got %q", result.CouponLabel)
	}
	if result.FinalAmount.StringFixed(2) != "150.00" {
		t.Fatalf("expected 150.00 final, got %s", result.FinalAmount)
	}
}

func TestComputeDiscountAutoFirst10(t *testing.T) {
	result := ComputeDiscount(PricingInput{
		Subtotal:   decimal.NewFromInt(150),
		FirstOrder: true,
	})

	if result.CouponLabel != constants.CouponLabelFirst10Auto {
		t.Fatalf("expected auto FIRST10 label, got %q", result.CouponLabel)
	}
	if result.CouponDiscount.StringFixed(2) != "15.00" {
		t.Fatalf("expected 15.00 discount, got %s", result.CouponDiscount)
	}
	if result.FinalAmount.StringFixed(2) != "135.00" {
		t.Fatalf("expected 135.00 final, got %s", result.FinalAmount)
	}
	if EarnedPoints(result.FinalAmount) != 135 {
		t.Fatalf("expected 135 earned points, got %d", EarnedPoints(result.FinalAmount))
	}
}

func TestComputeDiscountBonusStacking(t *testing.T) {
	result := ComputeDiscount(PricingInput{
		Subtotal:       decimal.NewFromInt(500),
		BonusAvailable: true,
		BonusValue:     decimal.NewFromInt(100),
	})

	if !result.BonusConsumed {
		t.Fatal("bonus should be consumed when available")
	}
	if result.TotalDiscount.StringFixed(2) != "100.00" {
		t.Fatalf("expected 100.00 total discount, got %s", result.TotalDiscount)
	}
	if result.FinalAmount.StringFixed(2) != "400.00" {
		t.Fatalf("expected 400.00 final, got %s", result.FinalAmount)
	}
	if EarnedPoints(result.FinalAmount) != 400 {
		t.Fatalf("expected 400 earned points, got %d", EarnedPoints(result.FinalAmount))
	}
}

func TestComputeDiscountStacksAllSourcesAndClamps(t *testing.T) {
	result := ComputeDiscount(PricingInput{
		Subtotal:       decimal.NewFromInt(120),
		CouponCode:     constants.CouponCodeSave5,
		BonusAvailable: true,
		BonusValue:     decimal.NewFromInt(100),
		GiftAmount:     decimal.NewFromInt(100),
	})

	// 6 + 100 + 100 超过小计，实付钳制为 0
	if result.TotalDiscount.StringFixed(2) != "206.00" {
		t.Fatalf("expected 206.00 total discount, got %s", result.TotalDiscount)
	}
	if !result.FinalAmount.IsZero() {
		t.Fatalf("expected final clamped to 0, got %s", result.FinalAmount)
	}
	if EarnedPoints(result.FinalAmount) != 0 {
		t.Fatalf("expected 0 earned points, got %d", EarnedPoints(result.FinalAmount))
	}
}

func TestComputeDiscountRounding(t *testing.T) {
	// 0.05 * 100.10 = 5.005 -> 5.01（四舍五入到分）
	result := ComputeDiscount(PricingInput{
		Subtotal:   decimal.NewFromFloat(100.10),
		CouponCode: constants.CouponCodeSave5,
	})
	if result.CouponDiscount.StringFixed(2) != "5.01" {
		t.Fatalf("expected 5.01 discount, got %s", result.CouponDiscount)
	}
	if result.FinalAmount.StringFixed(2) != "95.09" {
		t.Fatalf("expected 95.09 final, got %s", result.FinalAmount)
	}
	if EarnedPoints(result.FinalAmount) != 95 {
		t.Fatalf("expected 95 earned points, got %d", EarnedPoints(result.FinalAmount))
	}
}

func TestComputeDiscountUnknownCodeFallsBackToAutoFirst10(t *testing.T) {
	result := ComputeDiscount(PricingInput{
		Subtotal:   decimal.NewFromInt(300),
		CouponCode: "BOGUS",
		FirstOrder: true,
	})
	// 无效码等同没给码，首单仍自动套用 FIRST10
	if result.CouponLabel != constants.CouponLabelFirst10Auto {
		t.Fatalf("expected auto FIRST10 label, got %q", result.CouponLabel)
	}
	if result.CouponDiscount.StringFixed(2) != "30.00" {
		t.Fatalf("expected 30.00 discount, got %s", result.CouponDiscount)
	}
	if result.FinalAmount.StringFixed(2) != "270.00" {
		t.Fatalf("expected 270.00 final, got %s", result.FinalAmount)
	}
}

func TestComputeDiscountUnknownCodeRepeatOrder(t *testing.T) {
	result := ComputeDiscount(PricingInput{
		Subtotal:   decimal.NewFromInt(300),
		CouponCode: "BOGUS",
		FirstOrder: false,
	})
	if !result.CouponDiscount.IsZero() {
		t.Fatalf("unknown code on repeat order must not discount, got %s", result.CouponDiscount)
	}
	if result.FinalAmount.StringFixed(2) != "300.00" {
		t.Fatalf("expected 300.00 final, got %s", result.FinalAmount)
	}
}
