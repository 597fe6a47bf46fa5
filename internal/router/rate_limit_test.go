package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestKeyByIPAndJSONFieldRestoresBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":" Owner@PawHaven.test "}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "10.0.0.8:4000"

	key := KeyByIPAndJSONField("email")(c)
	if key != "owner@pawhaven.test|10.0.0.8" {
		t.Fatalf("unexpected key %s", key)
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body failed: %v", err)
	}
	if !strings.Contains(string(body), "Owner@PawHaven.test") {
		t.Fatalf("body should survive key extraction, got %s", body)
	}
}

func TestRateLimitFallsBackToLocalLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{Prefix: "login", WindowSeconds: 60, MaxRequests: 2}, KeyByIP))
	r.POST("/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	send := func(addr string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = addr
		r.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 2; i++ {
		if w := send("1.1.1.1:1"); w.Code != http.StatusOK {
			t.Fatalf("request %d want 200 got %d", i, w.Code)
		}
	}
	w := send("1.1.1.1:1")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("third request want 429 got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatalf("limited response should carry Retry-After")
	}
	if other := send("2.2.2.2:1"); other.Code != http.StatusOK {
		t.Fatalf("other client should not be limited, got %d", other.Code)
	}
}

func TestLocalLimiterRefillsOverWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	limiter := newLocalLimiter(RateLimitRule{WindowSeconds: 60, MaxRequests: 3})
	limiter.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if _, limited := limiter.hit("k"); limited {
			t.Fatalf("hit %d should pass", i)
		}
	}
	wait, limited := limiter.hit("k")
	if !limited {
		t.Fatalf("fourth hit should be limited")
	}
	if wait < 1 || wait > 20 {
		t.Fatalf("wait should be one refill interval, got %d", wait)
	}

	now = now.Add(20 * time.Second)
	if _, limited := limiter.hit("k"); limited {
		t.Fatalf("token should refill after 20s")
	}
}

func TestRateLimitDisabledRule(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusNoContent {
			t.Fatalf("disabled rule should never limit, got %d", w.Code)
		}
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		input interface{}
		want  int64
		ok    bool
	}{
		{input: int64(10), want: 10, ok: true},
		{input: uint8(12), want: 12, ok: true},
		{input: float64(13.9), want: 13, ok: true},
		{input: "bad", want: 0, ok: false},
	}
	for _, tc := range cases {
		got, ok := toInt64(tc.input)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("toInt64(%v) = %d,%v want %d,%v", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}
