package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                          // 主键
	OrderNo            string         `gorm:"uniqueIndex;not null" json:"order_no"`          // 订单号
	UserID             uint           `gorm:"not null;index" json:"user_id"`                 // 下单用户
	RestaurantID       uint           `gorm:"not null;index" json:"restaurant_id"`           // 餐厅
	PaymentMethod      string         `gorm:"not null" json:"payment_method"`                // 支付方式（cod/card/qr）
	CouponCode         string         `gorm:"type:varchar(64)" json:"coupon_code,omitempty"` // 使用的优惠码（含自动标记）
	SubtotalAmount     Money          `gorm:"type:decimal(12,2);not null" json:"subtotal_amount"`      // 小计
	DiscountAmount     Money          `gorm:"type:decimal(12,2);not null" json:"discount_amount"`      // 优惠总额
	GiftDiscountAmount Money          `gorm:"type:decimal(12,2);not null" json:"gift_discount_amount"` // 礼品券抵扣
	TotalAmount        Money          `gorm:"type:decimal(12,2);not null" json:"total_amount"`         // 实付金额
	RewardPointsEarned int64          `gorm:"not null;default:0" json:"reward_points_earned"` // 本单获得积分
	BonusApplied       bool           `gorm:"not null;default:false" json:"bonus_applied"`    // 是否使用了积分奖励
	DeliveryAddress    string         `gorm:"type:text" json:"delivery_address,omitempty"`    // 配送地址
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                        // 下单时间
	UpdatedAt          time.Time      `json:"updated_at"`                                     // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                 // 软删除时间

	Items    []OrderItem    `gorm:"foreignKey:OrderID" json:"items,omitempty"`    // 明细
	Tracking []OrderTracking `gorm:"foreignKey:OrderID" json:"tracking,omitempty"` // 配送轨迹
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
