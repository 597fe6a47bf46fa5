package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pawhaven/internal/http/response"
	"github.com/pawhaven/internal/i18n"
	"github.com/pawhaven/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const localLimiterMaxKeys = 4096

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	MessageKey    string
}

var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// RateLimitMiddleware 频率限制中间件，Redis 不可用时退化为进程内令牌桶
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	if rule.WindowSeconds <= 0 || rule.MaxRequests <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	var local *localLimiter
	if client == nil {
		local = newLocalLimiter(rule)
	}
	return func(c *gin.Context) {
		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}
		if rule.Prefix != "" {
			key = fmt.Sprintf("%s:%s", rule.Prefix, key)
		}

		var waitSeconds int
		var limited bool
		if local != nil {
			waitSeconds, limited = local.hit(key)
		} else {
			var err error
			waitSeconds, limited, err = redisHit(c, client, key, rule)
			if err != nil {
				logger.Warnw("rate_limit_redis_failed", "key", key, "error", err)
				msg := i18n.T(i18n.ResolveLocale(c), "error.rate_limit_unavailable")
				response.Error(c, response.CodeInternal, msg)
				c.Abort()
				return
			}
		}
		if limited {
			msgKey := strings.TrimSpace(rule.MessageKey)
			if msgKey == "" {
				msgKey = "error.rate_limited"
			}
			c.Header("Retry-After", strconv.Itoa(waitSeconds))
			msg := i18n.Sprintf(i18n.ResolveLocale(c), msgKey, waitSeconds)
			response.Error(c, response.CodeTooManyRequests, msg)
			c.Abort()
			return
		}
		c.Next()
	}
}

func redisHit(c *gin.Context, client *redis.Client, key string, rule RateLimitRule) (int, bool, error) {
	result, err := rateLimitScript.Run(c.Request.Context(), client, []string{key}, rule.WindowSeconds).Result()
	if err != nil {
		return 0, false, err
	}
	values, ok := result.([]interface{})
	if !ok || len(values) < 2 {
		return 0, false, fmt.Errorf("unexpected rate limit reply: %v", result)
	}
	count, ok := toInt64(values[0])
	if !ok {
		return 0, false, fmt.Errorf("unexpected rate limit count: %v", values[0])
	}
	if count <= int64(rule.MaxRequests) {
		return 0, false, nil
	}
	ttlSeconds, _ := toInt64(values[1])
	waitSeconds := int(ttlSeconds)
	if waitSeconds < 1 {
		waitSeconds = rule.WindowSeconds
	}
	return max(waitSeconds, 1), true, nil
}

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// localLimiter 单进程令牌桶，窗口内最多放行 MaxRequests 次
type localLimiter struct {
	mu      sync.Mutex
	every   rate.Limit
	burst   int
	window  time.Duration
	entries map[string]*localEntry
	now     func() time.Time
}

func newLocalLimiter(rule RateLimitRule) *localLimiter {
	window := time.Duration(rule.WindowSeconds) * time.Second
	return &localLimiter{
		every:   rate.Every(window / time.Duration(rule.MaxRequests)),
		burst:   rule.MaxRequests,
		window:  window,
		entries: make(map[string]*localEntry),
		now:     time.Now,
	}
}

func (l *localLimiter) hit(key string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if len(l.entries) > localLimiterMaxKeys {
		for k, entry := range l.entries {
			if now.Sub(entry.lastSeen) > l.window {
				delete(l.entries, k)
			}
		}
	}
	entry, ok := l.entries[key]
	if !ok {
		entry = &localEntry{limiter: rate.NewLimiter(l.every, l.burst)}
		l.entries[key] = entry
	}
	entry.lastSeen = now
	if entry.limiter.AllowN(now, 1) {
		return 0, false
	}
	r := entry.limiter.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	r.CancelAt(now)
	wait := int(math.Ceil(delay.Seconds()))
	return max(wait, 1), true
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 使用 IP + JSON 字段作为限流 key
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(strings.TrimSpace(readJSONField(c, field)))
		if value == "" {
			return c.ClientIP()
		}
		return fmt.Sprintf("%s|%s", value, c.ClientIP())
	}
}

func readJSONField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	if len(body) == 0 {
		return ""
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	value, ok := payload[field]
	if !ok {
		return ""
	}
	if text, ok := value.(string); ok {
		return strings.TrimSpace(text)
	}
	return ""
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int16:
		return int64(v), true
	case int8:
		return int64(v), true
	case uint64:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint8:
		return int64(v), true
	case float64:
		return int64(v), true
	case float32:
		return int64(v), true
	default:
		return 0, false
	}
}
