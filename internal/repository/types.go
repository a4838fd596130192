package repository

import "time"

// RestaurantListFilter 查询餐厅列表的过滤条件
type RestaurantListFilter struct {
	Page        int
	PageSize    int
	Search      string
	Cuisine     string
	OnlyEnabled bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Role     string
	Status   string
}

// ReviewListFilter 查询评价列表的过滤条件
type ReviewListFilter struct {
	Page         int
	PageSize     int
	RestaurantID uint
	UserID       uint
}
