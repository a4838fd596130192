package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/foodiehub/internal/cart"
	"github.com/foodiehub/internal/config"
	"github.com/foodiehub/internal/constants"
	"github.com/foodiehub/internal/logger"
	"github.com/foodiehub/internal/models"
	"github.com/foodiehub/internal/queue"
	"github.com/foodiehub/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// QRPayProvider 扫码支付网关
type QRPayProvider interface {
	Enabled() bool
	CreatePrepay(ctx context.Context, orderNo string, amount decimal.Decimal, description string) (string, error)
}

// CheckoutService 结算服务
type CheckoutService struct {
	cartStore      cart.Store
	userRepo       repository.UserRepository
	menuItemRepo   repository.MenuItemRepository
	orderRepo      repository.OrderRepository
	giftCouponRepo repository.GiftCouponRepository
	qrPay          QRPayProvider
	queueClient    *queue.Client
	orderCfg       *config.OrderConfig
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(
	cartStore cart.Store,
	userRepo repository.UserRepository,
	menuItemRepo repository.MenuItemRepository,
	orderRepo repository.OrderRepository,
	giftCouponRepo repository.GiftCouponRepository,
	qrPay QRPayProvider,
	queueClient *queue.Client,
	orderCfg *config.OrderConfig,
) *CheckoutService {
	return &CheckoutService{
		cartStore:      cartStore,
		userRepo:       userRepo,
		menuItemRepo:   menuItemRepo,
		orderRepo:      orderRepo,
		giftCouponRepo: giftCouponRepo,
		qrPay:          qrPay,
		queueClient:    queueClient,
		orderCfg:       orderCfg,
	}
}

// CheckoutInput 结算输入
type CheckoutInput struct {
	SessionID       string
	UserID          uint
	PaymentMethod   string
	CouponCode      string
	DeliveryAddress string
}

// CheckoutResult 结算结果。
// PaymentPending 为 true 时订单尚未创建，调用方应引导用户完成扫码支付。
type CheckoutResult struct {
	Order          *models.Order
	PaymentPending bool
	QRCodeURL      string
}

// Checkout 执行结算流水线：
// 校验购物车与支付方式 -> 计价 -> 事务内落单并核销礼品券、结算积分 -> 清空购物车。
func (s *CheckoutService) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	method := strings.ToUpper(strings.TrimSpace(input.PaymentMethod))
	switch method {
	case constants.PaymentMethodCOD, constants.PaymentMethodCard, constants.PaymentMethodQR:
	default:
		return nil, ErrPaymentMethodUnknown
	}

	// 扫码支付在任何校验与落单之前短路：支付回调后再走一次结算
	if method == constants.PaymentMethodQR {
		return s.deferToQRPayment(ctx, input)
	}

	lines, err := s.cartStore.Get(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	user, err := s.userRepo.GetByID(input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	orderItems, subtotal, restaurantID, err := s.resolveItems(lines)
	if err != nil {
		return nil, err
	}

	minAmount := decimal.NewFromInt(int64(s.orderCfg.MinAmount))
	if subtotal.LessThan(minAmount) {
		return nil, ErrMinOrderAmount
	}

	orderCount, err := s.orderRepo.CountByUser(input.UserID)
	if err != nil {
		return nil, err
	}

	bonusAvailable := user.BonusEligible && !user.BonusUsed

	giftCoupon, err := s.giftCouponRepo.FindOldestUnused(input.UserID)
	if err != nil {
		return nil, err
	}
	giftAmount := decimal.Zero
	if giftCoupon != nil {
		giftAmount = giftCoupon.DiscountAmount.Decimal
	}

	pricing := ComputeDiscount(PricingInput{
		Subtotal:       subtotal,
		CouponCode:     input.CouponCode,
		FirstOrder:     orderCount == 0,
		BonusAvailable: bonusAvailable,
		BonusValue:     decimal.NewFromInt(int64(s.orderCfg.BonusValue)),
		GiftAmount:     giftAmount,
	})

	earned := EarnedPoints(pricing.FinalAmount)
	now := time.Now()

	order := &models.Order{
		OrderNo:            generateOrderNo(),
		UserID:             input.UserID,
		RestaurantID:       restaurantID,
		PaymentMethod:      method,
		CouponCode:         pricing.CouponLabel,
		SubtotalAmount:     models.NewMoneyFromDecimal(subtotal),
		DiscountAmount:     models.NewMoneyFromDecimal(pricing.TotalDiscount),
		GiftDiscountAmount: models.NewMoneyFromDecimal(pricing.GiftDiscount),
		TotalAmount:        models.NewMoneyFromDecimal(pricing.FinalAmount),
		RewardPointsEarned: earned,
		BonusApplied:       pricing.BonusConsumed,
		DeliveryAddress:    strings.TrimSpace(input.DeliveryAddress),
		CreatedAt:          now,
		UpdatedAt:          now,
		Items:              orderItems,
		Tracking: []models.OrderTracking{
			{Status: constants.TrackingStatusPlaced, CreatedAt: now},
		},
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		userRepo := s.userRepo.WithTx(tx)
		giftRepo := s.giftCouponRepo.WithTx(tx)

		if err := orderRepo.Create(order); err != nil {
			return err
		}

		if giftCoupon != nil && pricing.GiftDiscount.IsPositive() {
			won, err := giftRepo.MarkUsed(giftCoupon.ID)
			if err != nil {
				return err
			}
			if !won {
				// 并发结算抢到同一张券，回滚让调用方重试
				return ErrGiftCouponConflict
			}
		}

		updated, err := userRepo.ApplyRewardUpdate(input.UserID, earned, pricing.BonusConsumed)
		if err != nil {
			return err
		}
		if !updated {
			return ErrCheckoutConflict
		}

		// 积分变动后在同一事务里检查奖励资格解锁
		unlocked, err := userRepo.UnlockBonusEligibility(input.UserID)
		if err != nil {
			return err
		}
		if unlocked {
			logger.Infow("reward_bonus_unlocked", "user_id", input.UserID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.cartStore.Clear(ctx, input.SessionID); err != nil {
		logger.Warnw("checkout_cart_clear_failed", "session_id", input.SessionID, "error", err)
	}

	if s.queueClient != nil && s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueOrderStatusNotify(queue.OrderStatusNotifyPayload{
			OrderID: order.ID,
			Status:  constants.TrackingStatusPlaced,
		}); err != nil {
			logger.Errorw("checkout_enqueue_notify_failed", "order_id", order.ID, "error", err)
		}
	}

	logger.Infow("order_placed",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", input.UserID,
		"subtotal", order.SubtotalAmount.String(),
		"discount", order.DiscountAmount.String(),
		"total", order.TotalAmount.String(),
		"points_earned", earned,
		"bonus_applied", pricing.BonusConsumed,
	)

	return &CheckoutResult{Order: order}, nil
}

// deferToQRPayment 处理扫码支付分支：不落单、不清购物车、不动任何状态，
// 只向网关申请 code_url。购物车为空时按零金额申请，由回调侧兜底。
func (s *CheckoutService) deferToQRPayment(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	if s.qrPay == nil || !s.qrPay.Enabled() {
		return nil, ErrQRPaymentUnavailable
	}

	amount := decimal.Zero
	lines, err := s.cartStore.Get(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if len(lines) > 0 {
		_, subtotal, _, err := s.resolveItems(lines)
		if err != nil {
			return nil, err
		}
		amount = subtotal
	}

	codeURL, err := s.qrPay.CreatePrepay(ctx, generateOrderNo(), amount, "FoodieHub order")
	if err != nil {
		logger.Errorw("checkout_qr_prepay_failed", "user_id", input.UserID, "error", err)
		return nil, ErrQRPaymentUnavailable
	}
	return &CheckoutResult{PaymentPending: true, QRCodeURL: codeURL}, nil
}

// PreviewResult 结算试算结果，仅用于展示，不产生任何状态变更。
type PreviewResult struct {
	Subtotal       models.Money `json:"subtotal"`
	CouponLabel    string       `json:"coupon_label"`
	CouponDiscount models.Money `json:"coupon_discount"`
	BonusDiscount  models.Money `json:"bonus_discount"`
	GiftDiscount   models.Money `json:"gift_discount"`
	TotalDiscount  models.Money `json:"total_discount"`
	FinalAmount    models.Money `json:"final_amount"`
	PointsEarned   int64        `json:"points_earned"`
}

// Preview 按当前购物车试算价格，不写任何数据。
func (s *CheckoutService) Preview(ctx context.Context, sessionID string, userID uint, couponCode string) (*PreviewResult, error) {
	lines, err := s.cartStore.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	_, subtotal, _, err := s.resolveItems(lines)
	if err != nil {
		return nil, err
	}

	orderCount, err := s.orderRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	giftAmount := decimal.Zero
	giftCoupon, err := s.giftCouponRepo.FindOldestUnused(userID)
	if err != nil {
		return nil, err
	}
	if giftCoupon != nil {
		giftAmount = giftCoupon.DiscountAmount.Decimal
	}

	pricing := ComputeDiscount(PricingInput{
		Subtotal:       subtotal,
		CouponCode:     couponCode,
		FirstOrder:     orderCount == 0,
		BonusAvailable: user.BonusEligible && !user.BonusUsed,
		BonusValue:     decimal.NewFromInt(int64(s.orderCfg.BonusValue)),
		GiftAmount:     giftAmount,
	})

	return &PreviewResult{
		Subtotal:       models.NewMoneyFromDecimal(subtotal),
		CouponLabel:    pricing.CouponLabel,
		CouponDiscount: models.NewMoneyFromDecimal(pricing.CouponDiscount),
		BonusDiscount:  models.NewMoneyFromDecimal(pricing.BonusDiscount),
		GiftDiscount:   models.NewMoneyFromDecimal(pricing.GiftDiscount),
		TotalDiscount:  models.NewMoneyFromDecimal(pricing.TotalDiscount),
		FinalAmount:    models.NewMoneyFromDecimal(pricing.FinalAmount),
		PointsEarned:   EarnedPoints(pricing.FinalAmount),
	}, nil
}

// resolveItems 把购物车行展开成订单明细。
// 目录里已不存在的菜品按 0 价入单并告警，不阻断结算。
func (s *CheckoutService) resolveItems(lines []cart.Line) ([]models.OrderItem, decimal.Decimal, uint, error) {
	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ItemID)
	}
	items, err := s.menuItemRepo.ListByIDs(ids)
	if err != nil {
		return nil, decimal.Zero, 0, err
	}
	byID := make(map[uint]models.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	subtotal := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(lines))
	restaurantID := lines[0].RestaurantID

	for _, line := range lines {
		name := "Unknown Item"
		price := decimal.Zero
		if item, ok := byID[line.ItemID]; ok {
			name = item.Name
			price = item.Price.Decimal
			if restaurantID == 0 {
				restaurantID = item.RestaurantID
			}
		} else {
			logger.Warnw("checkout_menu_item_missing", "item_id", line.ItemID)
		}
		quantity := line.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(quantity))))
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: line.ItemID,
			ItemName:   name,
			Quantity:   quantity,
			PriceEach:  models.NewMoneyFromDecimal(price),
		})
	}
	return orderItems, subtotal.Round(2), restaurantID, nil
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("FH%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
