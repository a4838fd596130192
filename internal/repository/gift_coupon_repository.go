package repository

import (
	"errors"
	"time"

	"github.com/foodiehub/internal/models"

	"gorm.io/gorm"
)

// GiftCouponRepository 礼品券数据访问接口
type GiftCouponRepository interface {
	Create(coupon *models.GiftCoupon) error
	GetByCode(code string) (*models.GiftCoupon, error)
	ListByUser(userID uint) ([]models.GiftCoupon, error)
	FindOldestUnused(userID uint) (*models.GiftCoupon, error)
	MarkUsed(couponID uint) (bool, error)
	WithTx(tx *gorm.DB) GiftCouponRepository
}

// GormGiftCouponRepository GORM 实现
type GormGiftCouponRepository struct {
	db *gorm.DB
}

// NewGiftCouponRepository 创建礼品券仓储
func NewGiftCouponRepository(db *gorm.DB) *GormGiftCouponRepository {
	return &GormGiftCouponRepository{db: db}
}

// WithTx 绑定事务
func (r *GormGiftCouponRepository) WithTx(tx *gorm.DB) GiftCouponRepository {
	if tx == nil {
		return r
	}
	return &GormGiftCouponRepository{db: tx}
}

// Create 创建礼品券
func (r *GormGiftCouponRepository) Create(coupon *models.GiftCoupon) error {
	return r.db.Create(coupon).Error
}

// GetByCode 根据券码获取礼品券
func (r *GormGiftCouponRepository) GetByCode(code string) (*models.GiftCoupon, error) {
	var coupon models.GiftCoupon
	if err := r.db.Where("code = ?", code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// ListByUser 用户礼品券列表（最新获得的在前）
func (r *GormGiftCouponRepository) ListByUser(userID uint) ([]models.GiftCoupon, error) {
	var coupons []models.GiftCoupon
	if err := r.db.Where("user_id = ?", userID).Order("id DESC").Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

// FindOldestUnused 找出用户最早获得且未使用的礼品券
func (r *GormGiftCouponRepository) FindOldestUnused(userID uint) (*models.GiftCoupon, error) {
	var coupon models.GiftCoupon
	err := r.db.Where("user_id = ? AND used = ?", userID, false).
		Order("id ASC").
		First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// MarkUsed 核销礼品券。
// WHERE 条件携带 used = false，两笔并发结算最多一笔能改到行，
// 调用方通过返回值判断是否抢到券。
func (r *GormGiftCouponRepository) MarkUsed(couponID uint) (bool, error) {
	now := time.Now()
	result := r.db.Model(&models.GiftCoupon{}).
		Where("id = ? AND used = ?", couponID, false).
		Updates(map[string]interface{}{
			"used":       true,
			"used_at":    now,
			"updated_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
