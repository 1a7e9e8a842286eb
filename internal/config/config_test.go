package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-at-least-32ch"

// ---------------------------------------------------------------------------
// Helper function tests
// ---------------------------------------------------------------------------

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setVal   *string // nil = don't set; pointer to distinguish "" from unset
		fallback string
		want     string
	}{
		{name: "returns fallback when unset", key: "SPHERE_TEST_GETENV_UNSET", setVal: nil, fallback: "default", want: "default"},
		{name: "returns env value when set", key: "SPHERE_TEST_GETENV_SET", setVal: strPtr("custom"), fallback: "default", want: "custom"},
		{name: "returns fallback when empty string", key: "SPHERE_TEST_GETENV_EMPTY", setVal: strPtr(""), fallback: "default", want: "default"},
		{name: "preserves whitespace", key: "SPHERE_TEST_GETENV_WS", setVal: strPtr("  spaced  "), fallback: "x", want: "  spaced  "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}
			assert.Equal(t, tc.want, getEnv(tc.key, tc.fallback))
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setVal   *string
		fallback int
		want     int
		wantErr  bool
	}{
		{name: "returns fallback when unset", key: "SPHERE_TEST_INT_UNSET", setVal: nil, fallback: 42, want: 42},
		{name: "parses valid int", key: "SPHERE_TEST_INT_VALID", setVal: strPtr("8080"), fallback: 0, want: 8080},
		{name: "parses negative int", key: "SPHERE_TEST_INT_NEG", setVal: strPtr("-1"), fallback: 0, want: -1},
		{name: "parses zero", key: "SPHERE_TEST_INT_ZERO", setVal: strPtr("0"), fallback: 99, want: 0},
		{name: "returns fallback for empty string", key: "SPHERE_TEST_INT_EMPTY", setVal: strPtr(""), fallback: 25, want: 25},
		{name: "errors on non-numeric", key: "SPHERE_TEST_INT_NAN", setVal: strPtr("abc"), fallback: 0, wantErr: true},
		{name: "errors on float", key: "SPHERE_TEST_INT_FLOAT", setVal: strPtr("3.14"), fallback: 0, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}

			got, err := getEnvInt(tc.key, tc.fallback)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetEnvUint64(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setVal   *string
		fallback uint64
		want     uint64
		wantErr  bool
	}{
		{name: "returns fallback when unset", key: "SPHERE_TEST_U64_UNSET", setVal: nil, fallback: 7, want: 7},
		{name: "parses large value", key: "SPHERE_TEST_U64_BIG", setVal: strPtr("18446744073709551615"), want: 18446744073709551615},
		{name: "errors on negative", key: "SPHERE_TEST_U64_NEG", setVal: strPtr("-1"), wantErr: true},
		{name: "errors on non-numeric", key: "SPHERE_TEST_U64_NAN", setVal: strPtr("seed"), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}

			got, err := getEnvUint64(tc.key, tc.fallback)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setVal   *string
		fallback bool
		want     bool
		wantErr  bool
	}{
		{name: "returns fallback when unset", key: "SPHERE_TEST_BOOL_UNSET", setVal: nil, fallback: true, want: true},
		{name: "parses false", key: "SPHERE_TEST_BOOL_FALSE", setVal: strPtr("false"), fallback: true, want: false},
		{name: "parses 1", key: "SPHERE_TEST_BOOL_ONE", setVal: strPtr("1"), fallback: false, want: true},
		{name: "parses TRUE uppercase", key: "SPHERE_TEST_BOOL_UPPER", setVal: strPtr("TRUE"), fallback: false, want: true},
		{name: "errors on invalid", key: "SPHERE_TEST_BOOL_INV", setVal: strPtr("yes"), fallback: false, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}

			got, err := getEnvBool(tc.key, tc.fallback)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setVal   *string
		fallback time.Duration
		want     time.Duration
		wantErr  bool
	}{
		{name: "returns fallback when unset", key: "SPHERE_TEST_DUR_UNSET", setVal: nil, fallback: 5 * time.Second, want: 5 * time.Second},
		{name: "parses seconds", key: "SPHERE_TEST_DUR_SEC", setVal: strPtr("30s"), want: 30 * time.Second},
		{name: "parses composite", key: "SPHERE_TEST_DUR_COMP", setVal: strPtr("1h30m"), want: 90 * time.Minute},
		{name: "errors on invalid", key: "SPHERE_TEST_DUR_INV", setVal: strPtr("notaduration"), wantErr: true},
		{name: "errors on bare number", key: "SPHERE_TEST_DUR_BARE", setVal: strPtr("30"), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}

			got, err := getEnvDuration(tc.key, tc.fallback)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetEnvList(t *testing.T) {
	fallback := []string{"http://localhost:5173"}

	tests := []struct {
		name   string
		key    string
		setVal *string
		want   []string
	}{
		{name: "returns fallback when unset", key: "SPHERE_TEST_LIST_UNSET", want: fallback},
		{name: "splits and trims", key: "SPHERE_TEST_LIST_SPLIT", setVal: strPtr(" https://a.example , https://b.example"), want: []string{"https://a.example", "https://b.example"}},
		{name: "drops empty entries", key: "SPHERE_TEST_LIST_EMPTY", setVal: strPtr("a,,b,"), want: []string{"a", "b"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}
			assert.Equal(t, tc.want, getEnvList(tc.key, fallback))
		})
	}
}

// ---------------------------------------------------------------------------
// Load() error cases
// ---------------------------------------------------------------------------

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("SPHERE_JWT_SECRET", "")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "SPHERE_JWT_SECRET")
}

func TestLoad_InvalidEnvVars(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
	}{
		{name: "DB_PORT not a number", envKey: "SPHERE_DB_PORT", envVal: "abc"},
		{name: "DB_PORT zero", envKey: "SPHERE_DB_PORT", envVal: "0"},
		{name: "DB_PORT too high", envKey: "SPHERE_DB_PORT", envVal: "65536"},
		{name: "DB_MAX_CONNS zero", envKey: "SPHERE_DB_MAX_CONNS", envVal: "0"},
		{name: "DB_MAX_CONNS not a number", envKey: "SPHERE_DB_MAX_CONNS", envVal: "many"},
		{name: "DB_AUTO_MIGRATE not a bool", envKey: "SPHERE_DB_AUTO_MIGRATE", envVal: "sometimes"},
		{name: "REDIS_DB not a number", envKey: "SPHERE_REDIS_DB", envVal: "abc"},
		{name: "JWT_TTL invalid", envKey: "SPHERE_JWT_TTL", envVal: "1d"},
		{name: "JWT_TTL zero", envKey: "SPHERE_JWT_TTL", envVal: "0s"},
		{name: "JWT_TTL negative", envKey: "SPHERE_JWT_TTL", envVal: "-1h"},
		{name: "SERVER_READ_TIMEOUT zero", envKey: "SPHERE_SERVER_READ_TIMEOUT", envVal: "0s"},
		{name: "SERVER_WRITE_TIMEOUT invalid", envKey: "SPHERE_SERVER_WRITE_TIMEOUT", envVal: "notduration"},
		{name: "DEMO_BOARDS negative", envKey: "SPHERE_DEMO_BOARDS", envVal: "-1"},
		{name: "DEMO_SEED not a number", envKey: "SPHERE_DEMO_SEED", envVal: "lucky"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Always set JWT secret so failures are from the var under test.
			t.Setenv("SPHERE_JWT_SECRET", testSecret)
			t.Setenv(tc.envKey, tc.envVal)

			cfg, err := Load()
			require.Error(t, err, "expected error for %s=%q", tc.envKey, tc.envVal)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tc.envKey)
		})
	}
}

// ---------------------------------------------------------------------------
// Load() happy paths
// ---------------------------------------------------------------------------

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SPHERE_JWT_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "sphere", cfg.Database.User)
	assert.Empty(t, cfg.Database.Password)
	assert.Equal(t, "sphere_dev", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 10, cfg.Database.MaxConns)
	assert.True(t, cfg.Database.AutoMigrate)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Empty(t, cfg.Redis.Password)
	assert.Equal(t, 0, cfg.Redis.DB)

	assert.Equal(t, testSecret, cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TokenTTL)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.CORSOrigins)

	assert.Equal(t, 1, cfg.Demo.Boards)
	assert.Zero(t, cfg.Demo.Seed)
}

func TestLoad_AllCustomValues(t *testing.T) {
	envs := map[string]string{
		"SPHERE_DB_HOST":              "db.prod.internal",
		"SPHERE_DB_PORT":              "5433",
		"SPHERE_DB_USER":              "prod_user",
		"SPHERE_DB_PASSWORD":          "s3cret!",
		"SPHERE_DB_NAME":              "sphere_prod",
		"SPHERE_DB_SSLMODE":           "require",
		"SPHERE_DB_MAX_CONNS":         "50",
		"SPHERE_DB_AUTO_MIGRATE":      "false",
		"SPHERE_REDIS_ADDR":           "redis.prod:6380",
		"SPHERE_REDIS_PASSWORD":       "redis-pass",
		"SPHERE_REDIS_DB":             "3",
		"SPHERE_JWT_SECRET":           "prod-jwt-secret-256-bits-long!!!",
		"SPHERE_JWT_TTL":              "12h",
		"SPHERE_SERVER_ADDR":          ":9090",
		"SPHERE_SERVER_READ_TIMEOUT":  "5s",
		"SPHERE_SERVER_WRITE_TIMEOUT": "15s",
		"SPHERE_CORS_ORIGINS":         "https://app.synergysphere.dev,https://staging.synergysphere.dev",
		"SPHERE_DEMO_BOARDS":          "3",
		"SPHERE_DEMO_SEED":            "20250906",
	}
	for k, v := range envs {
		t.Setenv(k, v)
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "db.prod.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "prod_user", cfg.Database.User)
	assert.Equal(t, "s3cret!", cfg.Database.Password)
	assert.Equal(t, "sphere_prod", cfg.Database.DBName)
	assert.Equal(t, "require", cfg.Database.SSLMode)
	assert.Equal(t, 50, cfg.Database.MaxConns)
	assert.False(t, cfg.Database.AutoMigrate)

	assert.Equal(t, "redis.prod:6380", cfg.Redis.Addr)
	assert.Equal(t, "redis-pass", cfg.Redis.Password)
	assert.Equal(t, 3, cfg.Redis.DB)

	assert.Equal(t, "prod-jwt-secret-256-bits-long!!!", cfg.JWT.Secret)
	assert.Equal(t, 12*time.Hour, cfg.JWT.TokenTTL)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, []string{"https://app.synergysphere.dev", "https://staging.synergysphere.dev"}, cfg.Server.CORSOrigins)

	assert.Equal(t, 3, cfg.Demo.Boards)
	assert.Equal(t, uint64(20250906), cfg.Demo.Seed)
}

// ---------------------------------------------------------------------------
// DSN() output format
// ---------------------------------------------------------------------------

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "default dev values",
			cfg: DatabaseConfig{
				Host: "localhost", Port: 5432, User: "sphere",
				Password: "", DBName: "sphere_dev", SSLMode: "disable",
			},
			want: "host=localhost port=5432 user=sphere password= dbname=sphere_dev sslmode=disable",
		},
		{
			name: "production values",
			cfg: DatabaseConfig{
				Host: "db.prod", Port: 5433, User: "admin",
				Password: "p@ss!", DBName: "sphere_prod", SSLMode: "require",
			},
			want: "host=db.prod port=5433 user=admin password=p@ss! dbname=sphere_prod sslmode=require",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.cfg.DSN())
		})
	}
}

// ---------------------------------------------------------------------------
// validate() direct tests
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	validBase := func() *Config {
		return &Config{
			Database: DatabaseConfig{Host: "localhost", Port: 5432, MaxConns: 10, SSLMode: "disable"},
			JWT:      JWTConfig{Secret: testSecret, TokenTTL: 24 * time.Hour},
			Server: ServerConfig{
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 30 * time.Second,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid config passes", mutate: func(*Config) {}},
		{name: "empty JWT secret fails", mutate: func(c *Config) { c.JWT.Secret = "" }, wantErr: "SPHERE_JWT_SECRET"},
		{name: "JWT secret too short fails", mutate: func(c *Config) { c.JWT.Secret = "only-31-characters-long-secret!" }, wantErr: "SPHERE_JWT_SECRET"},
		{name: "JWT secret exactly 32 chars passes", mutate: func(c *Config) { c.JWT.Secret = "exactly-32-characters-long-sec!!" }},
		{name: "port 0 fails", mutate: func(c *Config) { c.Database.Port = 0 }, wantErr: "SPHERE_DB_PORT"},
		{name: "port 65535 passes", mutate: func(c *Config) { c.Database.Port = 65535 }},
		{name: "MaxConns 0 fails", mutate: func(c *Config) { c.Database.MaxConns = 0 }, wantErr: "SPHERE_DB_MAX_CONNS"},
		{name: "TokenTTL 0 fails", mutate: func(c *Config) { c.JWT.TokenTTL = 0 }, wantErr: "SPHERE_JWT_TTL"},
		{name: "TokenTTL 1ns passes", mutate: func(c *Config) { c.JWT.TokenTTL = time.Nanosecond }},
		{name: "ReadTimeout negative fails", mutate: func(c *Config) { c.Server.ReadTimeout = -time.Second }, wantErr: "SPHERE_SERVER_READ_TIMEOUT"},
		{name: "WriteTimeout 0 fails", mutate: func(c *Config) { c.Server.WriteTimeout = 0 }, wantErr: "SPHERE_SERVER_WRITE_TIMEOUT"},
		{name: "zero demo boards passes", mutate: func(c *Config) { c.Demo.Boards = 0 }},
		{name: "negative demo boards fails", mutate: func(c *Config) { c.Demo.Boards = -2 }, wantErr: "SPHERE_DEMO_BOARDS"},
		{name: "remote host without TLS only warns", mutate: func(c *Config) { c.Database.Host = "db.prod" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := validBase()
			tc.mutate(c)
			err := c.validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// Test helper
// ---------------------------------------------------------------------------

func strPtr(s string) *string {
	return &s
}
