package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		url    string
		header map[string]string
		want   string
	}{
		{"default", "/", nil, LocaleEN},
		{"query", "/?lang=zh", nil, LocaleZH},
		{"x-locale", "/", map[string]string{"X-Locale": "zh-TW"}, LocaleTW},
		{"accept-language", "/", map[string]string{"Accept-Language": "fr-FR,zh-CN;q=0.8"}, LocaleZH},
		{"unsupported", "/?lang=de", nil, LocaleEN},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", tc.url, nil)
			for k, v := range tc.header {
				c.Request.Header.Set(k, v)
			}
			if got := ResolveLocale(c); got != tc.want {
				t.Fatalf("want %s got %s", tc.want, got)
			}
		})
	}
}

func TestTFallback(t *testing.T) {
	if got := T(LocaleTW, "error.cart_empty"); got != catalogs[LocaleZH]["error.cart_empty"] {
		t.Fatalf("zh-TW should fall back to zh-CN, got %s", got)
	}
	if got := T("xx", "error.cart_empty"); got != "Cart is empty" {
		t.Fatalf("unknown locale should fall back to en, got %s", got)
	}
	if got := T(LocaleEN, "missing.key"); got != "missing.key" {
		t.Fatalf("missing key should echo key, got %s", got)
	}
}

func TestSprintf(t *testing.T) {
	if got := Sprintf(LocaleEN, "error.puppy_sold", "Max"); got != "Puppy Max is already sold" {
		t.Fatalf("unexpected message: %s", got)
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for key := range catalogs[LocaleEN] {
		if _, ok := catalogs[LocaleZH][key]; !ok {
			t.Fatalf("zh-CN missing key %s", key)
		}
	}
}
