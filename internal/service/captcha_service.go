package service

import (
	"strings"
	"time"

	"github.com/pawhaven/internal/config"

	"github.com/mojocn/base64Captcha"
)

const captchaCharset = "23456789abcdefghjkmnpqrstuvwxyz"

// CaptchaChallenge 图片验证码挑战
type CaptchaChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService 图片验证码，答案保存在进程内存
type CaptchaService struct {
	cfg    config.CaptchaConfig
	store  base64Captcha.Store
	driver base64Captcha.Driver
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	if cfg.Length <= 0 {
		cfg.Length = 5
	}
	if cfg.Width <= 0 {
		cfg.Width = 240
	}
	if cfg.Height <= 0 {
		cfg.Height = 80
	}
	if cfg.ExpireSeconds <= 0 {
		cfg.ExpireSeconds = 300
	}
	if cfg.MaxStore <= 0 {
		cfg.MaxStore = 10240
	}
	driver := base64Captcha.NewDriverString(
		cfg.Height,
		cfg.Width,
		cfg.NoiseCount,
		cfg.ShowLine,
		cfg.Length,
		captchaCharset,
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	return &CaptchaService{
		cfg:    cfg,
		store:  base64Captcha.NewMemoryStore(cfg.MaxStore, time.Duration(cfg.ExpireSeconds)*time.Second),
		driver: driver,
	}
}

// Enabled 是否要求验证码
func (s *CaptchaService) Enabled() bool {
	return s != nil && s.cfg.Enabled
}

// Generate 生成图片验证码
func (s *CaptchaService) Generate() (*CaptchaChallenge, error) {
	id, b64s, _, err := base64Captcha.NewCaptcha(s.driver, s.store).Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaChallenge{CaptchaID: strings.TrimSpace(id), ImageBase64: strings.TrimSpace(b64s)}, nil
}

// Verify 校验验证码，未开启时直接通过；答案一次性使用
func (s *CaptchaService) Verify(captchaID, code string) error {
	if !s.Enabled() {
		return nil
	}
	captchaID = strings.TrimSpace(captchaID)
	code = strings.ToLower(strings.TrimSpace(code))
	if captchaID == "" || code == "" {
		return ErrCaptchaRequired
	}
	if !s.store.Verify(captchaID, code, true) {
		return ErrCaptchaInvalid
	}
	return nil
}
