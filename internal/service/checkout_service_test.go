package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/foodiehub/internal/cart"
	"github.com/foodiehub/internal/config"
	"github.com/foodiehub/internal/constants"
	"github.com/foodiehub/internal/models"
	"github.com/foodiehub/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type checkoutTestEnv struct {
	svc       *CheckoutService
	cartStore cart.Store
	db        *gorm.DB
}

func setupCheckoutServiceTest(t *testing.T) *checkoutTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:checkout_svc_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderTracking{},
		&models.GiftCoupon{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cartStore := cart.NewStore()
	svc := NewCheckoutService(
		cartStore,
		repository.NewUserRepository(db),
		repository.NewMenuItemRepository(db),
		repository.NewOrderRepository(db),
		repository.NewGiftCouponRepository(db),
		nil,
		nil,
		&config.OrderConfig{MinAmount: 100, BonusValue: 100},
	)
	return &checkoutTestEnv{svc: svc, cartStore: cartStore, db: db}
}

func (e *checkoutTestEnv) createUser(t *testing.T, points int64, eligible, used bool) models.User {
	t.Helper()
	user := models.User{
		Name:          "Diner",
		Email:         fmt.Sprintf("diner_%d@example.com", time.Now().UnixNano()),
		PasswordHash:  "hash",
		Role:          constants.UserRoleCustomer,
		RewardPoints:  points,
		BonusEligible: eligible,
		BonusUsed:     used,
		Status:        constants.UserStatusActive,
	}
	if err := e.db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func (e *checkoutTestEnv) createMenuItem(t *testing.T, price float64) models.MenuItem {
	t.Helper()
	restaurant := models.Restaurant{Name: "Test Kitchen", Cuisine: "Fusion", Enabled: true}
	if err := e.db.Create(&restaurant).Error; err != nil {
		t.Fatalf("create restaurant failed: %v", err)
	}
	item := models.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         "Signature Bowl",
		Price:        models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
		Available:    true,
	}
	if err := e.db.Create(&item).Error; err != nil {
		t.Fatalf("create menu item failed: %v", err)
	}
	return item
}

func (e *checkoutTestEnv) fillCart(t *testing.T, sessionID string, item models.MenuItem, quantity int) {
	t.Helper()
	_, err := e.cartStore.Add(context.Background(), sessionID, cart.Line{
		ItemID:       item.ID,
		Quantity:     quantity,
		RestaurantID: item.RestaurantID,
	})
	if err != nil {
		t.Fatalf("fill cart failed: %v", err)
	}
}

func TestCheckoutRejectsBelowMinimum(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	user := env.createUser(t, 0, false, false)
	item := env.createMenuItem(t, 99.99)
	env.fillCart(t, "sid-min", item, 1)

	_, err := env.svc.Checkout(context.Background(), CheckoutInput{
		SessionID:     "sid-min",
		UserID:        user.ID,
		PaymentMethod: constants.PaymentMethodCOD,
	})
	if !errors.Is(err, ErrMinOrderAmount) {
		t.Fatalf("expected ErrMinOrderAmount, got %v", err)
	}

	var count int64
	env.db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("no order should be created, found %d", count)
	}
}

func TestCheckoutRejectsEmptyCartAndBadMethod(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	user := env.createUser(t, 0, false, false)

	_, err := env.svc.Checkout(context.Background(), CheckoutInput{
		SessionID:     "sid-empty",
		UserID:        user.ID,
		PaymentMethod: constants.PaymentMethodCOD,
	})
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}

	item := env.createMenuItem(t, 150)
	env.fillCart(t, "sid-method", item, 1)
	_, err = env.svc.Checkout(context.Background(), CheckoutInput{
		SessionID:     "sid-method",
		UserID:        user.ID,
		PaymentMethod: "bitcoin",
	})
	if !errors.Is(err, ErrPaymentMethodUnknown) {
		t.Fatalf("expected ErrPaymentMethodUnknown, got %v", err)
	}
}

func TestCheckoutFirstOrderAutoCoupon(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	user := env.createUser(t, 0, false, false)
	item := env.createMenuItem(t, 150)
	env.fillCart(t, "sid-first", item, 1)

	result, err := env.svc.Checkout(context.Background(), CheckoutInput{
		SessionID:     "sid-first",
		UserID:        user.ID,
		PaymentMethod: constants.PaymentMethodCard,
	})
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	order := result.Order
	if order.CouponCode != constants.CouponLabelFirst10Auto {
		t.Fatalf("expected auto FIRST10 label, got %q", order.CouponCode)
	}
	if order.DiscountAmount.String() != "15.00" {
		t.Fatalf("expected 15.00 discount, got %s", order.DiscountAmount)
	}
	if order.TotalAmount.String() != "135.00" {
		t.Fatalf("expected 135.00 total, got %s", order.TotalAmount)
	}
	if order.RewardPointsEarned != 135 {
		t.Fatalf("expected 135 earned points, got %d", order.RewardPointsEarned)
	}

	var got models.User
	if err := env.db.First(&got, user.ID).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if got.RewardPoints != 135 {
		t.Fatalf("expected 135 points on user, got %d", got.RewardPoints)
	}

	// 轨迹应有首条 Placed
	var tracking []models.OrderTracking
	env.db.Where("order_id = ?", order.ID).Find(&tracking)
	if len(tracking) != 1 || tracking[0].Status != constants.TrackingStatusPlaced {
		t.Fatalf("expected single Placed tracking entry, got %+v", tracking)
	}

	// 购物车应已清空
	lines, err := env.cartStore.Get(context.Background(), "sid-first")
	if err != nil {
		t.Fatalf("cart get failed: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("cart should be cleared, got %+v", lines)
	}
}

func TestCheckoutConsumesLoyaltyBonus(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	user := env.createUser(t, 1200, true, false)
	item := env.createMenuItem(t, 500)
	env.fillCart(t, "sid-bonus", item, 1)

	// 已有历史订单，跳过首单券
	prior := models.Order{OrderNo: "FH-PRIOR", UserID: user.ID, RestaurantID: item.RestaurantID, PaymentMethod: constants.PaymentMethodCOD}
	if err := env.db.Create(&prior).Error; err != nil {
		t.Fatalf("create prior order failed: %v", err)
	}

	result, err := env.svc.Checkout(context.Background(), CheckoutInput{
		SessionID:     "sid-bonus",
		UserID:        user.ID,
		PaymentMethod: constants.PaymentMethodCOD,
	})
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	order := result.Order
	if order.DiscountAmount.String() != "100.00" {
		t.Fatalf("expected 100.00 discount, got %s", order.DiscountAmount)
	}
	if order.TotalAmount.String() != "400.00" {
		t.Fatalf("expected 400.00 total, got %s", order.TotalAmount)
	}
	if order.RewardPointsEarned != 400 {
		t.Fatalf("expected 400 earned points, got %d", order.RewardPointsEarned)
	}
	if !order.BonusApplied {
		t.Fatal("expected bonus applied on order")
	}

	var got models.User
	if err := env.db.First(&got, user.ID).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if got.RewardPoints != 600 {
		t.Fatalf("expected 1200-1000+400=600 points, got %d", got.RewardPoints)
	}
	if !got.BonusUsed {
		t.Fatal("bonus_used should be set")
	}
}

func TestCheckoutAppliesOldestGiftCoupon(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	user := env.createUser(t, 0, false, false)
	item := env.createMenuItem(t, 500)
	env.fillCart(t, "sid-gift", item, 1)

	prior := models.Order{OrderNo: "FH-PRIOR-GIFT", UserID: user.ID, RestaurantID: item.RestaurantID, PaymentMethod: constants.PaymentMethodCOD}
	if err := env.db.Create(&prior).Error; err != nil {
		t.Fatalf("create prior order failed: %v", err)
	}
	coupons := []models.GiftCoupon{
		{UserID: user.ID, Code: "GIFT-OLD", DiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(50))},
		{UserID: user.ID, Code: "GIFT-NEW", DiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(100))},
	}
	for i := range coupons {
		if err := env.db.Create(&coupons[i]).Error; err != nil {
			t.Fatalf("create coupon failed: %v", err)
		}
	}

	result, err := env.svc.Checkout(context.Background(), CheckoutInput{
		SessionID:     "sid-gift",
		UserID:        user.ID,
		PaymentMethod: constants.PaymentMethodCOD,
	})
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if result.Order.GiftDiscountAmount.String() != "50.00" {
		t.Fatalf("expected oldest coupon amount 50.00, got %s", result.Order.GiftDiscountAmount)
	}

	var old models.GiftCoupon
	if err := env.db.Where("code = ?", "GIFT-OLD").First(&old).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if !old.Used {
		t.Fatal("oldest coupon should be consumed")
	}
	var newer models.GiftCoupon
	if err := env.db.Where("code = ?", "GIFT-NEW").First(&newer).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if newer.Used {
		t.Fatal("newer coupon must stay unused")
	}
}

// raceGiftCouponRepo 固定返回同一张券，模拟两笔结算读到同一张未用券的窗口。
type raceGiftCouponRepo struct {
	repository.GiftCouponRepository
	coupon *models.GiftCoupon
}

func (r *raceGiftCouponRepo) FindOldestUnused(userID uint) (*models.GiftCoupon, error) {
	return r.coupon, nil
}

func (r *raceGiftCouponRepo) WithTx(tx *gorm.DB) repository.GiftCouponRepository {
	return &raceGiftCouponRepo{GiftCouponRepository: r.GiftCouponRepository.WithTx(tx), coupon: r.coupon}
}

func TestCheckoutGiftCouponLostRaceRollsBack(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	user := env.createUser(t, 0, false, false)
	item := env.createMenuItem(t, 500)
	env.fillCart(t, "sid-race", item, 1)

	prior := models.Order{OrderNo: "FH-PRIOR-RACE", UserID: user.ID, RestaurantID: item.RestaurantID, PaymentMethod: constants.PaymentMethodCOD}
	if err := env.db.Create(&prior).Error; err != nil {
		t.Fatalf("create prior order failed: %v", err)
	}
	coupon := models.GiftCoupon{UserID: user.ID, Code: "GIFT-RACE", DiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(50)), Used: true}
	if err := env.db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	env.svc.giftCouponRepo = &raceGiftCouponRepo{
		GiftCouponRepository: repository.NewGiftCouponRepository(env.db),
		coupon:               &coupon,
	}

	_, err := env.svc.Checkout(context.Background(), CheckoutInput{
		SessionID:     "sid-race",
		UserID:        user.ID,
		PaymentMethod: constants.PaymentMethodCOD,
	})
	if !errors.Is(err, ErrGiftCouponConflict) {
		t.Fatalf("expected ErrGiftCouponConflict, got %v", err)
	}

	// 事务回滚：不产生新订单，积分不变
	var count int64
	env.db.Model(&models.Order{}).Where("user_id = ? AND order_no <> ?", user.ID, "FH-PRIOR-RACE").Count(&count)
	if count != 0 {
		t.Fatalf("order must be rolled back, found %d", count)
	}
	var got models.User
	if err := env.db.First(&got, user.ID).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if got.RewardPoints != 0 {
		t.Fatalf("points must be unchanged, got %d", got.RewardPoints)
	}
}

func TestCheckoutUnlocksBonusEligibility(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	user := env.createUser(t, 900, false, false)
	item := env.createMenuItem(t, 200)
	env.fillCart(t, "sid-unlock", item, 1)

	prior := models.Order{OrderNo: "FH-PRIOR-UNLOCK", UserID: user.ID, RestaurantID: item.RestaurantID, PaymentMethod: constants.PaymentMethodCOD}
	if err := env.db.Create(&prior).Error; err != nil {
		t.Fatalf("create prior order failed: %v", err)
	}

	if _, err := env.svc.Checkout(context.Background(), CheckoutInput{
		SessionID:     "sid-unlock",
		UserID:        user.ID,
		PaymentMethod: constants.PaymentMethodCOD,
	}); err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	var got models.User
	if err := env.db.First(&got, user.ID).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if got.RewardPoints != 1100 {
		t.Fatalf("expected 1100 points, got %d", got.RewardPoints)
	}
	if !got.BonusEligible {
		t.Fatal("crossing 1000 points should unlock bonus eligibility")
	}
}

func TestCheckoutQRWithoutProvider(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	user := env.createUser(t, 0, false, false)
	item := env.createMenuItem(t, 200)
	env.fillCart(t, "sid-qr", item, 1)

	_, err := env.svc.Checkout(context.Background(), CheckoutInput{
		SessionID:     "sid-qr",
		UserID:        user.ID,
		PaymentMethod: constants.PaymentMethodQR,
	})
	if !errors.Is(err, ErrQRPaymentUnavailable) {
		t.Fatalf("expected ErrQRPaymentUnavailable, got %v", err)
	}

	// 短路分支不得有任何写入
	var count int64
	env.db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("qr branch must not create orders, found %d", count)
	}
}

func TestCheckoutPreviewBonusFollowsEligibilityFlags(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	// 积分余额不参与判定，只看 bonus_eligible / bonus_used
	user := env.createUser(t, 500, true, false)
	item := env.createMenuItem(t, 200)
	env.fillCart(t, "sid-flags", item, 1)

	prior := models.Order{OrderNo: "FH-PRIOR-FLAGS", UserID: user.ID, RestaurantID: item.RestaurantID, PaymentMethod: constants.PaymentMethodCOD}
	if err := env.db.Create(&prior).Error; err != nil {
		t.Fatalf("create prior order failed: %v", err)
	}

	preview, err := env.svc.Preview(context.Background(), "sid-flags", user.ID, "")
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if preview.BonusDiscount.String() != "100.00" {
		t.Fatalf("expected 100.00 bonus discount, got %s", preview.BonusDiscount.String())
	}
	if preview.FinalAmount.String() != "100.00" {
		t.Fatalf("expected 100.00 final, got %s", preview.FinalAmount.String())
	}
}

func TestCheckoutAcceptsLowercasePaymentMethod(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	user := env.createUser(t, 0, false, false)
	item := env.createMenuItem(t, 150)
	env.fillCart(t, "sid-lower", item, 1)

	result, err := env.svc.Checkout(context.Background(), CheckoutInput{
		SessionID:     "sid-lower",
		UserID:        user.ID,
		PaymentMethod: "cod",
	})
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if result.Order.PaymentMethod != constants.PaymentMethodCOD {
		t.Fatalf("expected normalized COD, got %q", result.Order.PaymentMethod)
	}
}

// stubQRPayProvider 记录预下单调用，固定返回 code_url。
type stubQRPayProvider struct {
	calls      int
	lastAmount decimal.Decimal
}

func (p *stubQRPayProvider) Enabled() bool { return true }

func (p *stubQRPayProvider) CreatePrepay(ctx context.Context, orderNo string, amount decimal.Decimal, description string) (string, error) {
	p.calls++
	p.lastAmount = amount
	return "weixin://wxpay/bizpayurl?pr=stub", nil
}

func TestCheckoutQRShortCircuitsBeforeOtherChecks(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	provider := &stubQRPayProvider{}
	env.svc.qrPay = provider
	user := env.createUser(t, 0, false, false)

	// 低于起送金额的购物车：扫码分支仍应短路，不报 ErrMinOrderAmount
	item := env.createMenuItem(t, 99.99)
	env.fillCart(t, "sid-qr-min", item, 1)
	result, err := env.svc.Checkout(context.Background(), CheckoutInput{
		SessionID:     "sid-qr-min",
		UserID:        user.ID,
		PaymentMethod: constants.PaymentMethodQR,
	})
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if !result.PaymentPending || result.Order != nil {
		t.Fatalf("expected pending payment without order, got %+v", result)
	}
	if result.QRCodeURL == "" {
		t.Fatal("expected code_url from provider")
	}
	if provider.lastAmount.StringFixed(2) != "99.99" {
		t.Fatalf("expected prepay amount 99.99, got %s", provider.lastAmount)
	}

	// 空购物车同样短路，不报 ErrCartEmpty
	result, err = env.svc.Checkout(context.Background(), CheckoutInput{
		SessionID:     "sid-qr-empty",
		UserID:        user.ID,
		PaymentMethod: constants.PaymentMethodQR,
	})
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if !result.PaymentPending {
		t.Fatal("expected pending payment on empty cart")
	}
	if provider.calls != 2 {
		t.Fatalf("expected 2 prepay calls, got %d", provider.calls)
	}

	// 短路分支不落单、不清购物车
	var count int64
	env.db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("qr branch must not create orders, found %d", count)
	}
	lines, err := env.cartStore.Get(context.Background(), "sid-qr-min")
	if err != nil || len(lines) != 1 {
		t.Fatalf("cart should be untouched, got %d lines err=%v", len(lines), err)
	}
}

func TestCheckoutPreviewIsReadOnly(t *testing.T) {
	env := setupCheckoutServiceTest(t)
	user := env.createUser(t, 1200, true, false)
	item := env.createMenuItem(t, 150)
	env.fillCart(t, "sid-preview", item, 2)

	coupon := models.GiftCoupon{
		UserID:         user.ID,
		Code:           "GIFT-PRE",
		DiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
	}
	if err := env.db.Create(&coupon).Error; err != nil {
		t.Fatalf("create gift coupon failed: %v", err)
	}

	preview, err := env.svc.Preview(context.Background(), "sid-preview", user.ID, "SAVE5")
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}

	// 300 - 15 (SAVE5) - 100 (bonus) - 50 (gift) = 135
	if preview.Subtotal.String() != "300.00" {
		t.Fatalf("subtotal want 300.00 got %s", preview.Subtotal.String())
	}
	if preview.CouponLabel != constants.CouponCodeSave5 {
		t.Fatalf("coupon label want %s got %s", constants.CouponCodeSave5, preview.CouponLabel)
	}
	if preview.FinalAmount.String() != "135.00" {
		t.Fatalf("final amount want 135.00 got %s", preview.FinalAmount.String())
	}
	if preview.PointsEarned != 135 {
		t.Fatalf("points want 135 got %d", preview.PointsEarned)
	}

	// 试算不得触发任何状态变更
	var got models.User
	if err := env.db.First(&got, user.ID).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if got.RewardPoints != 1200 || got.BonusUsed {
		t.Fatalf("preview must not mutate rewards: points=%d bonus_used=%v", got.RewardPoints, got.BonusUsed)
	}
	var giftGot models.GiftCoupon
	if err := env.db.First(&giftGot, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if giftGot.Used {
		t.Fatal("preview must not consume gift coupon")
	}
	var orders int64
	env.db.Model(&models.Order{}).Count(&orders)
	if orders != 0 {
		t.Fatalf("preview must not create orders, found %d", orders)
	}
	lines, err := env.cartStore.Get(context.Background(), "sid-preview")
	if err != nil || len(lines) != 1 {
		t.Fatalf("cart should be untouched, got %d lines err=%v", len(lines), err)
	}
}
