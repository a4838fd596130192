package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID            uint           `gorm:"primarykey" json:"id"`                     // 主键
	Name          string         `gorm:"not null" json:"name"`                     // 姓名
	Email         string         `gorm:"uniqueIndex;not null" json:"email"`        // 邮箱
	PasswordHash  string         `gorm:"not null" json:"-"`                        // 密码哈希（不返回给前端）
	Role          string         `gorm:"not null;default:'customer'" json:"role"`  // 角色（customer/admin）
	Phone         string         `gorm:"type:varchar(32)" json:"phone,omitempty"`  // 电话
	Address       string         `gorm:"type:text" json:"address,omitempty"`       // 配送地址
	RewardPoints  int64          `gorm:"not null;default:0" json:"reward_points"`  // 积分余额
	BonusEligible bool           `gorm:"not null;default:false" json:"bonus_eligible"` // 是否已解锁积分奖励
	BonusUsed     bool           `gorm:"not null;default:false" json:"bonus_used"` // 积分奖励是否已消耗
	Status        string         `gorm:"default:'active'" json:"status"`           // 账号状态
	LastLoginAt   *time.Time     `json:"last_login_at"`                            // 最后登录时间
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                  // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                  // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                           // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
