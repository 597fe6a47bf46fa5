package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestErrorWritesMatchingHTTPStatus(t *testing.T) {
	cases := []struct {
		code int
		want int
	}{
		{CodeBadRequest, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeForbidden, http.StatusForbidden},
		{CodeInternal, http.StatusInternalServerError},
		{12345, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		c, w := newTestContext()
		Error(c, tc.code, "boom")
		if w.Code != tc.want {
			t.Fatalf("code %d: want http %d got %d", tc.code, tc.want, w.Code)
		}
	}
}

func TestErrorAttachesRequestID(t *testing.T) {
	c, w := newTestContext()
	c.Set("request_id", "req-1")
	ErrorWithData(c, CodeBadRequest, "sold", gin.H{"puppy_id": 3})

	var body struct {
		StatusCode int                    `json:"status_code"`
		Data       map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.StatusCode != CodeBadRequest {
		t.Fatalf("unexpected status_code: %d", body.StatusCode)
	}
	if body.Data["request_id"] != "req-1" || body.Data["puppy_id"] != float64(3) {
		t.Fatalf("unexpected data: %+v", body.Data)
	}
}

func TestCreatedUses201(t *testing.T) {
	c, w := newTestContext()
	Created(c, "", gin.H{"id": 1})
	if w.Code != http.StatusCreated {
		t.Fatalf("want 201 got %d", w.Code)
	}
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(2, 3, 7)
	if p.TotalPage != 3 {
		t.Fatalf("want 3 pages got %d", p.TotalPage)
	}
	if BuildPagination(1, 0, 7).TotalPage != 0 {
		t.Fatalf("zero page size should yield zero pages")
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	base := errors.New("db down")
	err := WrapError(CodeInternal, "internal", base)
	if !errors.Is(err, base) {
		t.Fatalf("expected unwrap to base error")
	}
	if err.Error() != "internal: db down" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}
