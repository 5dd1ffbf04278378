package config

import (
	"os"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	// Keep ambient env from leaking into deterministic default checks.
	os.Unsetenv("PORT")
	os.Exit(m.Run())
}

func errContains(err error, want string) bool {
	return err != nil && strings.Contains(err.Error(), want)
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on invalid config", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "verbose")
		defer func() {
			if r := recover(); r == nil {
				t.Fatalf("MustLoad should panic on invalid config")
			}
		}()
		_ = MustLoad()
	})

	t.Run("valid defaults load", func(t *testing.T) {
		cfg := MustLoad()
		if cfg.APIBasePath == "" {
			t.Fatalf("unexpected empty config from MustLoad")
		}
	})
}

func TestLoad_OverridesAndNormalization(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("GIN_MODE", "weird") // normalizes to release

	t.Setenv("LOG_LEVEL", "warning") // normalizes to warn
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("SWAGGER_ENABLED", "on")
	t.Setenv("API_BASE_PATH", "api/v1/") // gains leading, loses trailing slash

	t.Setenv("STORE_DRIVER", "REDIS") // lowercased
	t.Setenv("DB_PATH", "db.sqlite")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")

	t.Setenv("RATE_RPS", "x")      // unparseable, keeps default 5.0
	t.Setenv("RATE_BURST", "nope") // unparseable, keeps default 10

	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")
	t.Setenv("IDEMPOTENCY_TTL", "48h")

	t.Setenv("OTEL_ENABLED", "1")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_SERVICE_NAME", "svc")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "8088" ||
		cfg.ReadTimeout != 2*time.Second ||
		cfg.ReadHeaderTimeout != time.Second ||
		cfg.WriteTimeout != 3*time.Second ||
		cfg.IdleTimeout != 4*time.Second ||
		cfg.MaxHeaderBytes != 8192 ||
		cfg.GinMode != "release" {
		t.Fatalf("server fields unexpected: %+v", cfg)
	}
	if cfg.LogLevel != "warn" || !cfg.LogPretty || !cfg.SwaggerEnabled || cfg.APIBasePath != "/api/v1" {
		t.Fatalf("logging/docs unexpected: %+v", cfg)
	}
	if cfg.StoreDriver != "redis" || cfg.DBPath != "db.sqlite" || cfg.RedisURL != "redis://cache:6379/1" {
		t.Fatalf("storage fields unexpected: %+v", cfg)
	}
	if cfg.RateRPS != 5.0 || cfg.RateBurst != 10 {
		t.Fatalf("rate limiting unexpected: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://a.com", "http://b"}) {
		t.Fatalf("cors origins unexpected: %#v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security unexpected: %+v", cfg.Security)
	}
	if cfg.IdempotencyTTL != 48*time.Hour {
		t.Fatalf("idempotency ttl unexpected: %v", cfg.IdempotencyTTL)
	}
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "otel:4317" || cfg.OTEL.Insecure ||
		cfg.OTEL.ServiceName != "svc" || cfg.OTEL.SampleRatio != 0.75 {
		t.Fatalf("otel unexpected: %+v", cfg.OTEL)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIBasePath != "/api/v1" {
		t.Fatalf("API_BASE_PATH default = %q, want /api/v1", cfg.APIBasePath)
	}
	if cfg.StoreDriver != "sqlite" || cfg.DBPath != "app.db" {
		t.Fatalf("storage defaults unexpected: driver=%q path=%q", cfg.StoreDriver, cfg.DBPath)
	}
	if cfg.IdempotencyTTL != 24*time.Hour {
		t.Fatalf("IDEMPOTENCY_TTL default = %v, want 24h", cfg.IdempotencyTTL)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name    string
		key     string
		value   string
		wantMsg string
	}{
		{"invalid LOG_LEVEL", "LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"blank PORT", "PORT", "   ", "PORT must not be empty"},
		{"zero timeout", "READ_TIMEOUT", "0s", "timeouts must be positive"},
		{"zero MAX_HEADER_BYTES", "MAX_HEADER_BYTES", "0", "MAX_HEADER_BYTES"},
		{"unknown STORE_DRIVER", "STORE_DRIVER", "etcd", "STORE_DRIVER"},
		{"negative RATE_RPS", "RATE_RPS", "-1", "RATE_RPS"},
		{"zero RATE_BURST", "RATE_BURST", "0", "RATE_BURST"},
		{"negative HSTS_MAX_AGE", "HSTS_MAX_AGE", "-1s", "HSTS_MAX_AGE"},
		{"zero IDEMPOTENCY_TTL", "IDEMPOTENCY_TTL", "0s", "IDEMPOTENCY_TTL"},
		{"sample ratio out of range", "OTEL_TRACES_SAMPLER_ARG", "1.5", "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); !errContains(err, tc.wantMsg) {
				t.Fatalf("expected error containing %q, got: %v", tc.wantMsg, err)
			}
		})
	}

	t.Run("blank DB_PATH with sqlite driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "sqlite")
		t.Setenv("DB_PATH", "   ")
		if _, err := Load(); !errContains(err, "DB_PATH must not be empty") {
			t.Fatalf("expected DB_PATH validation error, got: %v", err)
		}
	})
	t.Run("blank REDIS_URL with redis driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "redis")
		t.Setenv("REDIS_URL", "   ")
		if _, err := Load(); !errContains(err, "REDIS_URL must not be empty") {
			t.Fatalf("expected REDIS_URL validation error, got: %v", err)
		}
	})
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_EMPTY", "")
	if getenv("X_EMPTY", "d") != "d" {
		t.Fatalf("getenv should fall back on empty var")
	}
	t.Setenv("X_SET", "val")
	if getenv("X_SET", "d") != "val" {
		t.Fatalf("getenv should read set value")
	}

	t.Setenv("F_VALID", "3.14")
	t.Setenv("F_BAD", "nope")
	if getfloat("F_VALID", 0) != 3.14 || getfloat("F_BAD", 1.23) != 1.23 {
		t.Fatalf("getfloat behavior unexpected")
	}

	t.Setenv("I_VALID", "42")
	t.Setenv("I_BAD", "x")
	if getint("I_VALID", 0) != 42 || getint("I_BAD", 7) != 7 {
		t.Fatalf("getint behavior unexpected")
	}

	t.Setenv("D_VALID", "150ms")
	t.Setenv("D_BAD", "zzz")
	if getdur("D_VALID", time.Second) != 150*time.Millisecond || getdur("D_BAD", 2*time.Second) != 2*time.Second {
		t.Fatalf("getdur behavior unexpected")
	}
}

func TestGetbool(t *testing.T) {
	for i, v := range []string{"1", "true", "TRUE", " yes ", "Y", "on", "On"} {
		k := "B_T_" + strconv.Itoa(i)
		t.Setenv(k, v)
		if !getbool(k, false) {
			t.Fatalf("getbool(%q) = false; want true", v)
		}
	}
	for i, v := range []string{"0", "false", "FALSE", " no ", "N", "off", "Off"} {
		k := "B_F_" + strconv.Itoa(i)
		t.Setenv(k, v)
		if getbool(k, true) {
			t.Fatalf("getbool(%q) = true; want false", v)
		}
	}
	t.Setenv("B_EMPTY", "")
	if !getbool("B_EMPTY", true) || getbool("B_EMPTY", false) {
		t.Fatalf("getbool default behavior unexpected")
	}
}

func TestSplitCSVAndBasePath(t *testing.T) {
	if out := splitCSV(""); out != nil {
		t.Fatalf("splitCSV(\"\") should return nil")
	}
	if got, want := splitCSV(" a, ,b ,  c  ,"), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("splitCSV mismatch: got %#v want %#v", got, want)
	}

	for in, want := range map[string]string{
		"":      "/",
		"v1":    "/v1",
		"/v1/":  "/v1",
		" / ":   "/",
		"/api/": "/api",
	} {
		if got := normalizeBasePath(in); got != want {
			t.Fatalf("normalizeBasePath(%q) = %q, want %q", in, got, want)
		}
	}
}
