package models

import (
	"time"

	"gorm.io/gorm"
)

// Review 餐厅评价表
type Review struct {
	ID           uint           `gorm:"primarykey" json:"id"`                // 主键
	RestaurantID uint           `gorm:"not null;index" json:"restaurant_id"` // 被评餐厅
	UserID       uint           `gorm:"not null;index" json:"user_id"`       // 评价用户
	Rating       int            `gorm:"not null" json:"rating"`              // 评分 1-5
	Comment      string         `gorm:"type:text" json:"comment,omitempty"`  // 评价内容
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`             // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                          // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                      // 软删除时间
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
