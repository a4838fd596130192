package models

import "time"

// OrderTracking 订单配送轨迹表
type OrderTracking struct {
	ID        uint      `gorm:"primarykey" json:"id"`           // 主键
	OrderID   uint      `gorm:"not null;index" json:"order_id"` // 所属订单
	Status    string    `gorm:"not null" json:"status"`         // 轨迹状态
	Note      string    `gorm:"type:text" json:"note,omitempty"` // 备注
	CreatedAt time.Time `gorm:"index" json:"created_at"`        // 记录时间
}

// TableName 指定表名
func (OrderTracking) TableName() string {
	return "order_tracking"
}
