package models

import (
	"time"

	"gorm.io/gorm"
)

// MenuItem 菜单项表
type MenuItem struct {
	ID           uint           `gorm:"primarykey" json:"id"`                   // 主键
	RestaurantID uint           `gorm:"not null;index" json:"restaurant_id"`    // 所属餐厅
	Name         string         `gorm:"not null;index" json:"name"`             // 菜品名称
	Category     string         `gorm:"type:varchar(64)" json:"category"`       // 分类
	Price        Money          `gorm:"type:decimal(12,2);not null" json:"price"` // 单价
	ImageURL     string         `gorm:"type:text" json:"image_url,omitempty"`   // 图片
	Available    bool           `gorm:"not null;default:true" json:"available"` // 是否可售
	CreatedAt    time.Time      `json:"created_at"`                             // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                             // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除时间
}

// TableName 指定表名
func (MenuItem) TableName() string {
	return "menu_items"
}
