package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Features      FeaturesConfig
	Export        ExportConfig
	AI            AIConfig
	Flags         FlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"RESUMEFORGE_APP_ENV" required:"true"`
	Port         string `envconfig:"RESUMEFORGE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"RESUMEFORGE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RESUMEFORGE_LOG_WARN_STACK" default:"false"`
	CORSOrigins  string `envconfig:"RESUMEFORGE_CORS_ORIGINS"`

	// MaxResumesPerUser caps how many resumes one account may hold. Zero
	// disables the cap.
	MaxResumesPerUser int `envconfig:"RESUMEFORGE_MAX_RESUMES_PER_USER" default:"100"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CORSOriginList splits the configured comma-separated origins.
func (a AppConfig) CORSOriginList() []string {
	if strings.TrimSpace(a.CORSOrigins) == "" {
		return nil
	}
	parts := strings.Split(a.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

type DBConfig struct {
	DSN    string `envconfig:"RESUMEFORGE_DB_DSN"`
	Driver string `envconfig:"RESUMEFORGE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"RESUMEFORGE_DB_HOST"`
	LegacyPort     int    `envconfig:"RESUMEFORGE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"RESUMEFORGE_DB_USER"`
	LegacyPassword string `envconfig:"RESUMEFORGE_DB_PASSWORD"`
	LegacyName     string `envconfig:"RESUMEFORGE_DB_NAME"`
	LegacySSLMode  string `envconfig:"RESUMEFORGE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RESUMEFORGE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RESUMEFORGE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RESUMEFORGE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RESUMEFORGE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RESUMEFORGE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"RESUMEFORGE_REDIS_ADDR"`
	Password     string        `envconfig:"RESUMEFORGE_REDIS_PASSWORD"`
	DB           int           `envconfig:"RESUMEFORGE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RESUMEFORGE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RESUMEFORGE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RESUMEFORGE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RESUMEFORGE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RESUMEFORGE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"RESUMEFORGE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"RESUMEFORGE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"RESUMEFORGE_JWT_EXPIRATION_MINUTES" required:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"RESUMEFORGE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"RESUMEFORGE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"RESUMEFORGE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"RESUMEFORGE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"RESUMEFORGE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"RESUMEFORGE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"RESUMEFORGE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"RESUMEFORGE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"RESUMEFORGE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"RESUMEFORGE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"RESUMEFORGE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeaturesConfig struct {
	CacheTTL time.Duration `envconfig:"RESUMEFORGE_FEATURE_CACHE_TTL" default:"1m"`
}

type ExportConfig struct {
	ChromePath    string        `envconfig:"RESUMEFORGE_EXPORT_CHROME_PATH"`
	RenderTimeout time.Duration `envconfig:"RESUMEFORGE_EXPORT_RENDER_TIMEOUT" default:"60s"`
}

type AIConfig struct {
	BaseURL string        `envconfig:"RESUMEFORGE_AI_BASE_URL"`
	APIKey  string        `envconfig:"RESUMEFORGE_AI_API_KEY"`
	Timeout time.Duration `envconfig:"RESUMEFORGE_AI_TIMEOUT" default:"60s"`
}

type FlagsConfig struct {
	UseSQLite   bool `envconfig:"RESUMEFORGE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"RESUMEFORGE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
