package service

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/foodiehub/internal/logger"
	"github.com/foodiehub/internal/models"
	"github.com/foodiehub/internal/repository"

	"github.com/shopspring/decimal"
)

// scratchReward 刮奖奖项
type scratchReward struct {
	Label  string
	Amount int64
}

// 奖池：两档礼品券加一个安慰奖（SAVE5 提示，不落券）
var scratchRewards = []scratchReward{
	{Label: "GIFT50", Amount: 50},
	{Label: "GIFT100", Amount: 100},
	{Label: "SAVE5", Amount: 0},
}

// GiftCouponService 礼品券服务
type GiftCouponService struct {
	giftCouponRepo repository.GiftCouponRepository
}

// NewGiftCouponService 创建礼品券服务
func NewGiftCouponService(giftCouponRepo repository.GiftCouponRepository) *GiftCouponService {
	return &GiftCouponService{giftCouponRepo: giftCouponRepo}
}

// ScratchResult 刮奖结果
type ScratchResult struct {
	Label  string             `json:"label"`
	Amount int64              `json:"amount"`
	Coupon *models.GiftCoupon `json:"coupon,omitempty"`
}

// Scratch 刮奖。抽中带面额的奖项时落一张未使用的礼品券。
func (s *GiftCouponService) Scratch(userID uint) (*ScratchResult, error) {
	if userID == 0 {
		return nil, ErrUserNotFound
	}

	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(scratchRewards))))
	if err != nil {
		return nil, err
	}
	reward := scratchRewards[idx.Int64()]

	result := &ScratchResult{Label: reward.Label, Amount: reward.Amount}
	if reward.Amount <= 0 {
		return result, nil
	}

	coupon := &models.GiftCoupon{
		UserID:         userID,
		Code:           generateGiftCouponCode(reward.Label),
		DiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(reward.Amount)),
	}
	if err := s.giftCouponRepo.Create(coupon); err != nil {
		logger.Errorw("gift_coupon_create_failed", "user_id", userID, "error", err)
		return nil, ErrGiftCouponConflict
	}

	logger.Infow("gift_coupon_won", "user_id", userID, "code", coupon.Code, "amount", reward.Amount)
	result.Coupon = coupon
	return result, nil
}

// ListByUser 用户礼品券列表
func (s *GiftCouponService) ListByUser(userID uint) ([]models.GiftCoupon, error) {
	return s.giftCouponRepo.ListByUser(userID)
}

func generateGiftCouponCode(label string) string {
	return fmt.Sprintf("%s-%s", label, randAlphaNumeric(10))
}

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randAlphaNumeric(length int) string {
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			out[i] = codeAlphabet[0]
			continue
		}
		out[i] = codeAlphabet[n.Int64()]
	}
	return string(out)
}
