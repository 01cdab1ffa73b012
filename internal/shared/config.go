package shared

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string        `envconfig:"APP_ENV" default:"prod"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	HTTPAddr    string        `envconfig:"HTTP_ADDR" default:":8080"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s"`
	MetricsAddr string        `envconfig:"METRICS_ADDR"`
	DisplayTZ   string        `envconfig:"DISPLAY_TZ" default:"America/Sao_Paulo"`

	// Empty REDIS_ADDR runs without the dashboard cache.
	RedisAddr string        `envconfig:"REDIS_ADDR"`
	RedisPass string        `envconfig:"REDIS_PASSWORD"`
	RedisDB   int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"15m"`

	Policy PolicyConfig

	// exporter
	MySQLDSN      string `envconfig:"MYSQL_DSN" default:"root:root@tcp(localhost:3306)/frontdesk?parseTime=true&charset=utf8mb4&loc=UTC"`
	DeskBaseURL   string `envconfig:"DESK_BASE_URL" default:"http://localhost:8080"`
	DeskAPIKey    string `envconfig:"DESK_API_KEY"`
	ExportWorkers int    `envconfig:"EXPORT_WORKERS" default:"4"`
	ExportRPS     int    `envconfig:"EXPORT_RPS" default:"10"`
}

// PolicyConfig switches the automatic side effects of check-in and of a room
// becoming available. All off reproduces the manual desk workflow. Variables
// are read with the POLICY_ prefix, e.g. POLICY_OCCUPY_ON_CHECKIN.
type PolicyConfig struct {
	LinkGuestOnCheckIn      bool `envconfig:"LINK_GUEST_ON_CHECKIN" default:"false"`
	OccupyOnCheckIn         bool `envconfig:"OCCUPY_ON_CHECKIN" default:"false"`
	RejectDoubleOccupancy   bool `envconfig:"REJECT_DOUBLE_OCCUPANCY" default:"false"`
	ResetChargesOnAvailable bool `envconfig:"RESET_CHARGES_ON_AVAILABLE" default:"false"`
	DetachGuestOnAvailable  bool `envconfig:"DETACH_GUEST_ON_AVAILABLE" default:"false"`
}

func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, errors.Wrap(err, "process env config")
	}
	if c.ExportWorkers <= 0 {
		c.ExportWorkers = 1
	}
	return c, nil
}

// Location resolves DISPLAY_TZ, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DisplayTZ)
	if err != nil {
		log.Warn().Err(err).Str("tz", c.DisplayTZ).Msg("unknown DISPLAY_TZ, using UTC")
		return time.UTC
	}
	return loc
}
