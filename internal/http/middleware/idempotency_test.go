package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestIdempotencyContextHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	if k, ok := GetIdempotencyKey(c); k != "" || ok {
		t.Fatalf("expected no key before validator runs")
	}
	if IsReplay(c) {
		t.Fatalf("expected IsReplay=false by default")
	}

	c.Set(ctxKeyIdemKey, 123) // wrong type reads as absent
	if _, ok := GetIdempotencyKey(c); ok {
		t.Fatalf("non-string key should read as absent")
	}

	c.Set(ctxKeyIdemReplay, true)
	if !IsReplay(c) {
		t.Fatalf("expected IsReplay=true")
	}
	c.Set(ctxKeyIdemReplay, "yes") // wrong type reads as false
	if IsReplay(c) {
		t.Fatalf("expected IsReplay=false for non-bool")
	}
}

func postBookings(r *gin.Engine, key string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
	if key != "" {
		req.Header.Set(HeaderIdempotencyKey, key)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotencyValidator_NoHeaderSkipsLookup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	lookupCalled := false
	r.Use(IdempotencyValidator(IdempotencyOptions{}, func(context.Context, string, time.Time) (bool, error) {
		lookupCalled = true
		return false, nil
	}))
	r.POST("/bookings", func(c *gin.Context) {
		if _, ok := GetIdempotencyKey(c); ok {
			t.Fatalf("key should not be present when header missing")
		}
		c.Status(http.StatusNoContent)
	})

	if w := postBookings(r, ""); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if lookupCalled {
		t.Fatalf("lookup must not run without a key")
	}
}

func TestIdempotencyValidator_RejectsMalformedKeys(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		opts IdempotencyOptions
		key  string
	}{
		{"over max length", IdempotencyOptions{MaxLen: 5}, "abcdef"},
		{"pattern mismatch", IdempotencyOptions{Pattern: regexp.MustCompile(`^[0-9]+$`)}, "abc123"},
		{"default pattern rejects spaces", IdempotencyOptions{}, "has space"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(IdempotencyValidator(tc.opts, nil))
			r.POST("/bookings", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := postBookings(r, tc.key)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body["code"] != "bad_idempotency_key" {
				t.Fatalf("unexpected body: %v", body)
			}
		})
	}
}

func TestIdempotencyValidator_ValidKeyWithoutLookup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(IdempotencyValidator(IdempotencyOptions{}, nil))
	r.POST("/bookings", func(c *gin.Context) {
		key, ok := GetIdempotencyKey(c)
		if !ok || key != "retry-7f3a" {
			t.Fatalf("stashed key = %q ok=%v, want retry-7f3a", key, ok)
		}
		if IsReplay(c) || IsRateBypass(c) {
			t.Fatalf("no flags expected without a lookup")
		}
		c.Status(http.StatusOK)
	})

	if w := postBookings(r, "retry-7f3a"); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestIdempotencyValidator_LookupMissAndHit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("miss leaves flags unset", func(t *testing.T) {
		r := gin.New()
		r.Use(IdempotencyValidator(IdempotencyOptions{}, func(_ context.Context, key string, now time.Time) (bool, error) {
			if key != "key-1" || now.IsZero() {
				t.Fatalf("lookup args wrong: key=%q now=%v", key, now)
			}
			return false, nil
		}))
		r.POST("/bookings", func(c *gin.Context) {
			if IsReplay(c) || IsRateBypass(c) {
				t.Fatalf("no replay/bypass expected on miss")
			}
			c.Status(http.StatusOK)
		})

		if w := postBookings(r, "key-1"); w.Code != http.StatusOK {
			t.Fatalf("miss: expected 200, got %d", w.Code)
		}
	})

	t.Run("hit sets replay and rate bypass", func(t *testing.T) {
		r := gin.New()
		r.Use(IdempotencyValidator(IdempotencyOptions{}, func(context.Context, string, time.Time) (bool, error) {
			return true, nil
		}))
		r.POST("/bookings", func(c *gin.Context) {
			if !IsReplay(c) || !IsRateBypass(c) {
				t.Fatalf("expected replay and bypass flags on hit")
			}
			c.Status(http.StatusOK)
		})

		if w := postBookings(r, "k-9"); w.Code != http.StatusOK {
			t.Fatalf("hit: expected 200, got %d", w.Code)
		}
	})

	t.Run("lookup error does not block", func(t *testing.T) {
		r := gin.New()
		r.Use(IdempotencyValidator(IdempotencyOptions{}, func(context.Context, string, time.Time) (bool, error) {
			return false, context.DeadlineExceeded
		}))
		r.POST("/bookings", func(c *gin.Context) {
			if IsReplay(c) {
				t.Fatalf("errored lookup must not flag replay")
			}
			c.Status(http.StatusOK)
		})

		if w := postBookings(r, "k-err"); w.Code != http.StatusOK {
			t.Fatalf("error: expected 200, got %d", w.Code)
		}
	})
}
