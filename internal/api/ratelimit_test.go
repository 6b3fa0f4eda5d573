package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimiter_Allow(t *testing.T) {
	current := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	l := NewRateLimiter()
	l.now = func() time.Time { return current }

	for i := 0; i < 3; i++ {
		if !l.Allow("ip:career", 3, time.Minute) {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("ip:career", 3, time.Minute) {
		t.Errorf("fourth request within window should be rejected")
	}

	// Other keys have independent budgets
	if !l.Allow("other:career", 3, time.Minute) {
		t.Errorf("different key should be unaffected")
	}

	// Hits age out of the window
	current = current.Add(61 * time.Second)
	if !l.Allow("ip:career", 3, time.Minute) {
		t.Errorf("request after window expiry should be allowed")
	}
}

func TestRateLimit_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewRateLimiter()
	r := gin.New()
	r.GET("/limited", RateLimit(limiter, "test", 2, time.Minute), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/limited", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/limited", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Too many requests") {
		t.Errorf("unexpected 429 body: %s", w.Body.String())
	}
}
