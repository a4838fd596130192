package models

import (
	"time"

	"gorm.io/gorm"
)

// Restaurant 餐厅表
type Restaurant struct {
	ID          uint           `gorm:"primarykey" json:"id"`                  // 主键
	Name        string         `gorm:"not null;index" json:"name"`            // 餐厅名称
	Cuisine     string         `gorm:"type:varchar(64)" json:"cuisine"`       // 菜系
	Rating      float64        `gorm:"not null;default:0" json:"rating"`      // 评分
	ImageURL    string         `gorm:"type:text" json:"image_url,omitempty"`  // 封面图
	Description string         `gorm:"type:text" json:"description,omitempty"` // 简介
	Enabled     bool           `gorm:"not null;default:true" json:"enabled"`  // 是否上架
	CreatedAt   time.Time      `json:"created_at"`                            // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                            // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                        // 软删除时间

	MenuItems []MenuItem `gorm:"foreignKey:RestaurantID" json:"menu_items,omitempty"` // 菜单项
}

// TableName 指定表名
func (Restaurant) TableName() string {
	return "restaurants"
}
