package repository

import (
	"errors"

	"github.com/foodiehub/internal/models"

	"gorm.io/gorm"
)

// RestaurantRepository 餐厅数据访问接口
type RestaurantRepository interface {
	GetByID(id uint) (*models.Restaurant, error)
	GetByIDWithMenu(id uint) (*models.Restaurant, error)
	List(filter RestaurantListFilter) ([]models.Restaurant, int64, error)
	Create(restaurant *models.Restaurant) error
	Update(restaurant *models.Restaurant) error
	UpdateRating(restaurantID uint, rating float64) error
}

// GormRestaurantRepository GORM 实现
type GormRestaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository 创建餐厅仓储
func NewRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

// GetByID 根据 ID 获取餐厅
func (r *GormRestaurantRepository) GetByID(id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &restaurant, nil
}

// GetByIDWithMenu 获取餐厅并预加载可售菜单
func (r *GormRestaurantRepository) GetByIDWithMenu(id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.Preload("MenuItems", "available = ?", true).First(&restaurant, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &restaurant, nil
}

// List 餐厅列表
func (r *GormRestaurantRepository) List(filter RestaurantListFilter) ([]models.Restaurant, int64, error) {
	query := r.db.Model(&models.Restaurant{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR cuisine LIKE ?", like, like)
	}
	if filter.Cuisine != "" {
		query = query.Where("cuisine = ?", filter.Cuisine)
	}
	if filter.OnlyEnabled {
		query = query.Where("enabled = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var restaurants []models.Restaurant
	if err := query.Order("rating DESC, id ASC").Find(&restaurants).Error; err != nil {
		return nil, 0, err
	}
	return restaurants, total, nil
}

// Create 创建餐厅
func (r *GormRestaurantRepository) Create(restaurant *models.Restaurant) error {
	return r.db.Create(restaurant).Error
}

// Update 更新餐厅
func (r *GormRestaurantRepository) Update(restaurant *models.Restaurant) error {
	return r.db.Save(restaurant).Error
}

// UpdateRating 更新餐厅评分
func (r *GormRestaurantRepository) UpdateRating(restaurantID uint, rating float64) error {
	return r.db.Model(&models.Restaurant{}).Where("id = ?", restaurantID).Update("rating", rating).Error
}
