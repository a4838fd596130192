package service

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/foodiehub/internal/config"
	"github.com/foodiehub/internal/constants"
	"github.com/foodiehub/internal/logger"
	"github.com/foodiehub/internal/models"
	"github.com/foodiehub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserAuthService 用户认证服务
type UserAuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	captcha  *CaptchaService
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository, captcha *CaptchaService) *UserAuthService {
	return &UserAuthService{
		cfg:      cfg,
		userRepo: userRepo,
		captcha:  captcha,
	}
}

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// SignupInput 注册输入
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}

// Signup 用户注册，成功后直接签发登录态
func (s *UserAuthService) Signup(input SignupInput) (*models.User, string, time.Time, error) {
	normalized, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = resolveNameFromEmail(normalized)
	}
	if len(input.Password) < 6 {
		return nil, "", time.Time{}, ErrLoginFailed
	}

	exist, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if exist != nil {
		return nil, "", time.Time{}, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	user := &models.User{
		Name:         name,
		Email:        normalized,
		PasswordHash: string(hash),
		Role:         constants.UserRoleCustomer,
		Phone:        strings.TrimSpace(input.Phone),
		Address:      strings.TrimSpace(input.Address),
		Status:       constants.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		logger.Warnw("signup_last_login_update_failed", "user_id", user.ID, "error", err)
	}

	logger.Infow("user_signed_up", "user_id", user.ID, "email", user.Email)
	return user, token, expiresAt, nil
}

// LoginInput 登录输入
type LoginInput struct {
	Email       string
	Password    string
	CaptchaID   string
	CaptchaCode string
}

// Login 用户登录
func (s *UserAuthService) Login(input LoginInput) (*models.User, string, time.Time, error) {
	if s.captcha != nil && s.captcha.Required() {
		if !s.captcha.Verify(input.CaptchaID, input.CaptchaCode) {
			return nil, "", time.Time{}, ErrCaptchaInvalid
		}
	}

	normalized, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, "", time.Time{}, ErrLoginFailed
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrLoginFailed
	}
	if strings.ToLower(user.Status) != constants.UserStatusActive {
		return nil, "", time.Time{}, ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", time.Time{}, ErrLoginFailed
	}

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		logger.Warnw("login_last_login_update_failed", "user_id", user.ID, "error", err)
	}
	user.LastLoginAt = &now

	logger.Infow("user_logged_in", "user_id", user.ID, "email", user.Email)
	return user, token, expiresAt, nil
}

// GenerateUserJWT 生成用户 JWT Token
func (s *UserAuthService) GenerateUserJWT(user *models.User) (string, time.Time, error) {
	expireHours := s.cfg.JWT.ExpireHours
	if expireHours <= 0 {
		expireHours = 24
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(expireHours) * time.Hour)
	claims := UserJWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseUserJWT 解析用户 JWT Token
func (s *UserAuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*UserJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("无效的 token")
}

// GetUserByID 获取用户信息
func (s *UserAuthService) GetUserByID(id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrUserNotFound
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// RewardSummary 积分概览
type RewardSummary struct {
	RewardPoints  int64 `json:"reward_points"`
	BonusEligible bool  `json:"bonus_eligible"`
	BonusUsed     bool  `json:"bonus_used"`
}

// GetRewardSummary 查询用户积分与奖励状态
func (s *UserAuthService) GetRewardSummary(userID uint) (*RewardSummary, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	return &RewardSummary{
		RewardPoints:  user.RewardPoints,
		BonusEligible: user.BonusEligible,
		BonusUsed:     user.BonusUsed,
	}, nil
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrLoginFailed
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrLoginFailed
	}
	return normalized, nil
}

func resolveNameFromEmail(email string) string {
	parts := strings.SplitN(email, "@", 2)
	if len(parts) == 2 && strings.TrimSpace(parts[0]) != "" {
		return strings.TrimSpace(parts[0])
	}
	return email
}
