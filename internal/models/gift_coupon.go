package models

import (
	"time"

	"gorm.io/gorm"
)

// GiftCoupon 礼品券表（刮奖获得的一次性抵扣券）
type GiftCoupon struct {
	ID             uint           `gorm:"primarykey" json:"id"`                 // 主键
	UserID         uint           `gorm:"not null;index" json:"user_id"`        // 持有用户
	Code           string         `gorm:"uniqueIndex;not null" json:"code"`     // 券码
	DiscountAmount Money          `gorm:"type:decimal(12,2);not null" json:"discount_amount"` // 抵扣面额
	Used           bool           `gorm:"not null;default:false;index" json:"used"` // 是否已使用
	UsedAt         *time.Time     `json:"used_at"`                              // 使用时间
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`              // 获得时间
	UpdatedAt      time.Time      `json:"updated_at"`                           // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                       // 软删除时间
}

// TableName 指定表名
func (GiftCoupon) TableName() string {
	return "gift_coupons"
}
