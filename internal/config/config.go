package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderHTTP   = "http"
	ProviderLocal  = "local"
)

type Config struct {
	App      AppConfig
	Log      LogConfig
	Oracle   OracleConfig
	Redis    RedisConfig
	Match    MatchConfig
	Schedule ScheduleConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type OracleConfig struct {
	Provider   string
	Model      string
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	BatchSize  int
	MaxRetries int
	Dimensions int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type MatchConfig struct {
	SkillThreshold       float64
	RequirementThreshold float64
	SkillsWeight         float64
	ExperienceWeight     float64
	RequirementsWeight   float64
}

type ScheduleConfig struct {
	DefaultTimezone string
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidConfig      = errors.New("invalid configuration")
)

var defaults = map[string]any{
	"log.json":                    false,
	"log.debug":                   false,
	"oracle.provider":             ProviderLocal,
	"oracle.timeout":              "10s",
	"oracle.batch_size":           100,
	"oracle.max_retries":          2,
	"oracle.dimensions":           256,
	"redis.enabled":               false,
	"redis.host":                  "localhost",
	"redis.port":                  "6379",
	"redis.db":                    0,
	"redis.ttl":                   "24h",
	"match.skill_threshold":       0.75,
	"match.requirement_threshold": 0.6,
	"match.weight_skills":         0.5,
	"match.weight_experience":     0.3,
	"match.weight_requirements":   0.2,
	"schedule.default_timezone":   "America/New_York",
}

var defaultModels = map[string]string{
	ProviderGemini: "text-embedding-004",
	ProviderHTTP:   "all-MiniLM-L6-v2",
	ProviderLocal:  "hashed-bow",
}

// Load reads an optional .env file, an optional config file named by
// CONFIG_FILE, then environment variables. Keys map to variables by
// upper-casing and replacing dots, so oracle.batch_size is ORACLE_BATCH_SIZE.
func Load() (Config, error) {
	v, err := NewViper()
	if err != nil {
		return Config{}, err
	}
	return FromViper(v)
}

// NewViper returns a viper instance with defaults, the .env file, environment
// binding and the CONFIG_FILE contents applied. Callers may bind flags on top
// before handing it to FromViper.
func NewViper() (*viper.Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	if file := strings.TrimSpace(v.GetString("config_file")); file != "" {
		if err := ReadFile(v, file); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// ReadFile merges a YAML, JSON or TOML file into v.
func ReadFile(v *viper.Viper, file string) error {
	v.SetConfigFile(file)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", file, err)
	}
	return nil
}

// FromViper builds the config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{}

	var missing, invalid []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, envName(key))
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}
	boolean := func(key string) bool {
		s := opt(key)
		if s == "" {
			return false
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			invalid = append(invalid, envName(key))
		}
		return b
	}
	integer := func(key string) int {
		n, err := strconv.Atoi(opt(key))
		if err != nil {
			invalid = append(invalid, envName(key))
		}
		return n
	}
	float := func(key string) float64 {
		f, err := strconv.ParseFloat(opt(key), 64)
		if err != nil {
			invalid = append(invalid, envName(key))
		}
		return f
	}
	duration := func(key string) time.Duration {
		d, err := parseDuration(opt(key))
		if err != nil {
			invalid = append(invalid, envName(key))
		}
		return d
	}

	cfg.App = AppConfig{
		AppName:     req("app.name"),
		Environment: req("app.env"),
		HTTPPort:    req("http.port"),
	}

	cfg.Log = LogConfig{
		JSON:  boolean("log.json"),
		Debug: boolean("log.debug"),
	}

	cfg.Oracle = OracleConfig{
		Provider:   strings.ToLower(opt("oracle.provider")),
		Model:      opt("oracle.model"),
		APIKey:     opt("oracle.api_key"),
		BaseURL:    opt("oracle.base_url"),
		Timeout:    duration("oracle.timeout"),
		BatchSize:  integer("oracle.batch_size"),
		MaxRetries: integer("oracle.max_retries"),
		Dimensions: integer("oracle.dimensions"),
	}
	if cfg.Oracle.Model == "" {
		cfg.Oracle.Model = defaultModels[cfg.Oracle.Provider]
	}

	cfg.Redis = RedisConfig{
		Enabled:  boolean("redis.enabled"),
		Host:     opt("redis.host"),
		Port:     opt("redis.port"),
		Password: opt("redis.password"),
		DB:       integer("redis.db"),
		TTL:      duration("redis.ttl"),
	}

	cfg.Match = MatchConfig{
		SkillThreshold:       float("match.skill_threshold"),
		RequirementThreshold: float("match.requirement_threshold"),
		SkillsWeight:         float("match.weight_skills"),
		ExperienceWeight:     float("match.weight_experience"),
		RequirementsWeight:   float("match.weight_requirements"),
	}

	cfg.Schedule = ScheduleConfig{
		DefaultTimezone: opt("schedule.default_timezone"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: malformed values for %s", errInvalidConfig, strings.Join(invalid, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks value ranges and cross-field requirements.
func (c Config) Validate() error {
	var problems []string

	if _, err := strconv.Atoi(c.App.HTTPPort); err != nil {
		problems = append(problems, "HTTP_PORT must be numeric")
	}

	switch c.Oracle.Provider {
	case ProviderGemini:
		if c.Oracle.APIKey == "" {
			problems = append(problems, "ORACLE_API_KEY is required for the gemini provider")
		}
	case ProviderHTTP:
		if c.Oracle.BaseURL == "" {
			problems = append(problems, "ORACLE_BASE_URL is required for the http provider")
		}
	case ProviderLocal:
		if c.Oracle.Dimensions <= 0 {
			problems = append(problems, "ORACLE_DIMENSIONS must be positive")
		}
	default:
		problems = append(problems, fmt.Sprintf("ORACLE_PROVIDER %q is not one of gemini, http, local", c.Oracle.Provider))
	}
	if c.Oracle.Timeout <= 0 {
		problems = append(problems, "ORACLE_TIMEOUT must be positive")
	}
	if c.Oracle.BatchSize <= 0 {
		problems = append(problems, "ORACLE_BATCH_SIZE must be positive")
	}
	if c.Oracle.MaxRetries < 0 {
		problems = append(problems, "ORACLE_MAX_RETRIES must not be negative")
	}

	if c.Redis.Enabled && c.Redis.TTL <= 0 {
		problems = append(problems, "REDIS_TTL must be positive")
	}

	if !inUnitInterval(c.Match.SkillThreshold) {
		problems = append(problems, "MATCH_SKILL_THRESHOLD must be in (0,1]")
	}
	if !inUnitInterval(c.Match.RequirementThreshold) {
		problems = append(problems, "MATCH_REQUIREMENT_THRESHOLD must be in (0,1]")
	}
	m := c.Match
	if m.SkillsWeight < 0 || m.ExperienceWeight < 0 || m.RequirementsWeight < 0 ||
		m.SkillsWeight+m.ExperienceWeight+m.RequirementsWeight <= 0 {
		problems = append(problems, "MATCH_WEIGHT_* must be non-negative with a positive sum")
	}

	if tz := c.Schedule.DefaultTimezone; tz == "" || tz == "Local" {
		problems = append(problems, "SCHEDULE_DEFAULT_TIMEZONE must be an IANA zone name")
	} else if _, err := time.LoadLocation(tz); err != nil {
		problems = append(problems, fmt.Sprintf("SCHEDULE_DEFAULT_TIMEZONE %q is unknown", tz))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", errInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func inUnitInterval(f float64) bool {
	return f > 0 && f <= 1
}

func envName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// parseDuration accepts Go duration strings and bare integers as seconds.
func parseDuration(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}
