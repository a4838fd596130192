package repository

import (
	"errors"
	"time"

	"github.com/foodiehub/internal/constants"
	"github.com/foodiehub/internal/models"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateLastLogin(userID uint, at time.Time) error
	List(filter UserListFilter) ([]models.User, int64, error)
	ApplyRewardUpdate(userID uint, earned int64, consumeBonus bool) (bool, error)
	UnlockBonusEligibility(userID uint) (bool, error)
	WithTx(tx *gorm.DB) UserRepository
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// WithTx 绑定事务
func (r *GormUserRepository) WithTx(tx *gorm.DB) UserRepository {
	if tx == nil {
		return r
	}
	return &GormUserRepository{db: tx}
}

// GetByEmail 根据邮箱获取用户
func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByID 根据 ID 获取用户
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create 创建用户
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update 更新用户
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// UpdateLastLogin 记录最后登录时间
func (r *GormUserRepository) UpdateLastLogin(userID uint, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("last_login_at", at).Error
}

// List 用户列表
func (r *GormUserRepository) List(filter UserListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})

	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("email LIKE ? OR name LIKE ?", like, like)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var users []models.User
	if err := query.Order("id DESC").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// ApplyRewardUpdate 应用积分结算。
// consumeBonus 为 true 时为消耗奖励的分支：扣除奖励成本并累加本单积分，
// 条件写死在 WHERE 中，余额不足或奖励状态已被并发修改时影响行数为 0。
func (r *GormUserRepository) ApplyRewardUpdate(userID uint, earned int64, consumeBonus bool) (bool, error) {
	if userID == 0 {
		return false, nil
	}

	query := r.db.Model(&models.User{}).Where("id = ?", userID)
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}

	if consumeBonus {
		query = query.Where("bonus_eligible = ? AND bonus_used = ? AND reward_points >= ?",
			true, false, constants.BonusCostPoints)
		updates["reward_points"] = gorm.Expr("reward_points - ? + ?", constants.BonusCostPoints, earned)
		updates["bonus_used"] = true
	} else {
		updates["reward_points"] = gorm.Expr("reward_points + ?", earned)
	}

	result := query.Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UnlockBonusEligibility 积分达标后解锁奖励资格，已解锁或未达标时不产生写入。
func (r *GormUserRepository) UnlockBonusEligibility(userID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	result := r.db.Model(&models.User{}).
		Where("id = ? AND reward_points >= ? AND bonus_eligible = ?", userID, constants.BonusUnlockPoints, false).
		Updates(map[string]interface{}{
			"bonus_eligible": true,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
