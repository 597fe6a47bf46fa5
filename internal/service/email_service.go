package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/pawhaven/internal/config"
	"github.com/pawhaven/internal/logger"

	"github.com/sony/gobreaker/v2"
)

const (
	defaultEmailTimeout     = 15 * time.Second
	defaultBreakerFailures  = 5
	defaultBreakerOpenDelay = 60 * time.Second
)

// mailTransport 投递原始报文，测试中可替换
type mailTransport func(ctx context.Context, from string, to []string, msg []byte) error

// EmailService 邮件发送服务，SMTP 调用受超时与熔断保护
type EmailService struct {
	cfg       *config.EmailConfig
	timeout   time.Duration
	breaker   *gobreaker.CircuitBreaker[struct{}]
	transport mailTransport
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	s := &EmailService{cfg: cfg, timeout: defaultEmailTimeout}
	maxFailures := uint32(defaultBreakerFailures)
	openDelay := defaultBreakerOpenDelay
	if cfg != nil {
		if cfg.SendTimeoutSeconds > 0 {
			s.timeout = time.Duration(cfg.SendTimeoutSeconds) * time.Second
		}
		if cfg.BreakerMaxFailures > 0 {
			maxFailures = uint32(cfg.BreakerMaxFailures)
		}
		if cfg.BreakerOpenSeconds > 0 {
			openDelay = time.Duration(cfg.BreakerOpenSeconds) * time.Second
		}
	}
	s.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		Timeout:     openDelay,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			// 收件人被拒说明 SMTP 本身可用
			return err == nil || errors.Is(err, ErrEmailRecipientRejected)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnw("email_breaker_state_changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	s.transport = s.sendSMTP
	return s
}

// Enabled 是否可发送
func (s *EmailService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled
}

// Send 发送 HTML 邮件
func (s *EmailService) Send(ctx context.Context, toEmail, subject, htmlBody string) error {
	if !s.Enabled() {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, htmlBody)

	_, err := s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, normalizeEmailSendError(s.transport(ctx, s.cfg.From, []string{toEmail}, []byte(msg)))
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrEmailCircuitOpen
	}
	return err
}

func (s *EmailService) sendSMTP(ctx context.Context, from string, to []string, msg []byte) error {
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprintf("%d", s.cfg.Port))
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return err
		}
	}

	if s.cfg.UseSSL {
		tlsConn := tls.Client(conn, &tls.Config{ServerName: s.cfg.Host})
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			return err
		}
		conn = tlsConn
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer client.Close()

	if !s.cfg.UseSSL && s.cfg.UseTLS {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			return err
		}
	}
	if s.cfg.Username != "" || s.cfg.Password != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	return sendSMTPData(client, from, to, msg)
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	if isEmailRecipientRejected(err) {
		return fmt.Errorf("%w: %v", ErrEmailRecipientRejected, err)
	}
	return err
}

var recipientRejectedKeywords = []string{
	"no such recipient",
	"no such user",
	"recipient not found",
	"recipient address rejected",
	"invalid recipient",
	"user unknown",
	"unknown mailbox",
	"mailbox unavailable",
}

func isEmailRecipientRejected(err error) bool {
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	if message == "" {
		return false
	}
	for _, keyword := range recipientRejectedKeywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	if strings.Contains(message, "550") {
		for _, hint := range []string{"recipient", "user", "mailbox", "rcpt"} {
			if strings.Contains(message, hint) {
				return true
			}
		}
	}
	return false
}
