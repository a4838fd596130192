package service

import (
	"strings"

	"github.com/foodiehub/internal/models"
	"github.com/foodiehub/internal/repository"
)

// MenuService 餐厅与菜单查询服务
type MenuService struct {
	restaurantRepo repository.RestaurantRepository
	menuItemRepo   repository.MenuItemRepository
}

// NewMenuService 创建菜单服务
func NewMenuService(restaurantRepo repository.RestaurantRepository, menuItemRepo repository.MenuItemRepository) *MenuService {
	return &MenuService{
		restaurantRepo: restaurantRepo,
		menuItemRepo:   menuItemRepo,
	}
}

// ListRestaurants 餐厅列表
func (s *MenuService) ListRestaurants(filter repository.RestaurantListFilter) ([]models.Restaurant, int64, error) {
	filter.OnlyEnabled = true
	return s.restaurantRepo.List(filter)
}

// GetRestaurantMenu 餐厅详情与可售菜单
func (s *MenuService) GetRestaurantMenu(restaurantID uint) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByIDWithMenu(restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil || !restaurant.Enabled {
		return nil, ErrRestaurantNotFound
	}
	return restaurant, nil
}

// GetMenuItem 单个菜单项
func (s *MenuService) GetMenuItem(itemID uint) (*models.MenuItem, error) {
	item, err := s.menuItemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.Available {
		return nil, ErrMenuItemInvalid
	}
	return item, nil
}

// SearchMenuItems 按菜品名称搜索
func (s *MenuService) SearchMenuItems(keyword string) ([]models.MenuItem, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []models.MenuItem{}, nil
	}
	return s.menuItemRepo.SearchByName(keyword)
}
