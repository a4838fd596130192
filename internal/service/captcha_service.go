package service

import (
	"time"

	"github.com/foodiehub/internal/config"

	"github.com/mojocn/base64Captcha"
)

// CaptchaService 图片验证码服务，登录场景按配置开关启用
type CaptchaService struct {
	cfg   config.CaptchaConfig
	store base64Captcha.Store
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	maxStore := cfg.MaxStore
	if maxStore <= 0 {
		maxStore = 10240
	}
	expire := time.Duration(cfg.ExpireSeconds) * time.Second
	if expire <= 0 {
		expire = 5 * time.Minute
	}
	return &CaptchaService{
		cfg:   cfg,
		store: base64Captcha.NewMemoryStore(maxStore, expire),
	}
}

// Required 登录是否需要验证码
func (s *CaptchaService) Required() bool {
	return s.cfg.Enabled
}

// CaptchaChallenge 验证码挑战
type CaptchaChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// Generate 生成图片验证码
func (s *CaptchaService) Generate() (*CaptchaChallenge, error) {
	length := s.cfg.Length
	if length <= 0 {
		length = 4
	}
	width := s.cfg.Width
	if width <= 0 {
		width = 160
	}
	height := s.cfg.Height
	if height <= 0 {
		height = 60
	}

	driver := base64Captcha.NewDriverDigit(height, width, length, 0.6, s.cfg.NoiseCount)
	captcha := base64Captcha.NewCaptcha(driver, s.store)
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaChallenge{CaptchaID: id, ImageBase64: b64s}, nil
}

// Verify 校验验证码，校验后立即作废
func (s *CaptchaService) Verify(captchaID, code string) bool {
	if captchaID == "" || code == "" {
		return false
	}
	return s.store.Verify(captchaID, code, true)
}
