package repository

import (
	"errors"

	"github.com/foodiehub/internal/models"

	"gorm.io/gorm"
)

// searchResultLimit 搜索结果上限
const searchResultLimit = 20

// MenuItemRepository 菜单项数据访问接口
type MenuItemRepository interface {
	GetByID(id uint) (*models.MenuItem, error)
	ListByIDs(ids []uint) ([]models.MenuItem, error)
	ListByRestaurant(restaurantID uint, onlyAvailable bool) ([]models.MenuItem, error)
	SearchByName(keyword string) ([]models.MenuItem, error)
	Create(item *models.MenuItem) error
	Update(item *models.MenuItem) error
}

// GormMenuItemRepository GORM 实现
type GormMenuItemRepository struct {
	db *gorm.DB
}

// NewMenuItemRepository 创建菜单项仓储
func NewMenuItemRepository(db *gorm.DB) *GormMenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

// GetByID 根据 ID 获取菜单项
func (r *GormMenuItemRepository) GetByID(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListByIDs 批量获取菜单项
func (r *GormMenuItemRepository) ListByIDs(ids []uint) ([]models.MenuItem, error) {
	if len(ids) == 0 {
		return []models.MenuItem{}, nil
	}
	var items []models.MenuItem
	if err := r.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListByRestaurant 获取餐厅的菜单项
func (r *GormMenuItemRepository) ListByRestaurant(restaurantID uint, onlyAvailable bool) ([]models.MenuItem, error) {
	query := r.db.Where("restaurant_id = ?", restaurantID)
	if onlyAvailable {
		query = query.Where("available = ?", true)
	}
	var items []models.MenuItem
	if err := query.Order("category ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// SearchByName 按名称模糊搜索菜单项
func (r *GormMenuItemRepository) SearchByName(keyword string) ([]models.MenuItem, error) {
	if keyword == "" {
		return []models.MenuItem{}, nil
	}
	var items []models.MenuItem
	err := r.db.Where("name LIKE ? AND available = ?", "%"+keyword+"%", true).
		Order("name ASC").
		Limit(searchResultLimit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Create 创建菜单项
func (r *GormMenuItemRepository) Create(item *models.MenuItem) error {
	return r.db.Create(item).Error
}

// Update 更新菜单项
func (r *GormMenuItemRepository) Update(item *models.MenuItem) error {
	return r.db.Save(item).Error
}
