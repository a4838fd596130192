package models

import "time"

// OrderItem 订单明细表
type OrderItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`             // 主键
	OrderID    uint      `gorm:"not null;index" json:"order_id"`   // 所属订单
	MenuItemID uint      `gorm:"not null;index" json:"menu_item_id"` // 菜单项
	ItemName   string    `gorm:"not null" json:"item_name"`        // 下单时菜品名快照
	Quantity   int       `gorm:"not null" json:"quantity"`         // 数量
	PriceEach  Money     `gorm:"type:decimal(12,2);not null" json:"price_each"` // 下单时单价快照
	CreatedAt  time.Time `json:"created_at"`                       // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
