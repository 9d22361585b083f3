package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ubck/survey-cli/internal/roster"
	"github.com/ubck/survey-cli/internal/route"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Roster    RosterConfig    `yaml:"roster" mapstructure:"roster"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Routes    RoutesConfig    `yaml:"routes" mapstructure:"routes"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the history store backend.
type StoreConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"` // "sqlite" or "memory"
	Path   string `yaml:"path" mapstructure:"path"`
}

// RosterConfig configures the team-assignment search.
type RosterConfig struct {
	MaxTries    int    `yaml:"max_tries" mapstructure:"max_tries"`
	PairWeight  int    `yaml:"pair_weight" mapstructure:"pair_weight"`
	SlotWeight  int    `yaml:"slot_weight" mapstructure:"slot_weight"`
	CarrierOnly string `yaml:"carrier_only" mapstructure:"carrier_only"` // "promote" or "reject"
}

// Weights returns the configured penalty weights.
func (c RosterConfig) Weights() roster.Weights {
	return roster.Weights{Pair: c.PairWeight, Slot: c.SlotWeight}
}

// CarrierOnlyPolicy maps the configured string onto the builder policy.
func (c RosterConfig) CarrierOnlyPolicy() (roster.CarrierOnlyPolicy, error) {
	switch c.CarrierOnly {
	case "", "promote":
		return roster.CarrierOnlyPromote, nil
	case "reject":
		return roster.CarrierOnlyReject, nil
	default:
		return 0, eris.Errorf("config: unknown carrier_only policy %q", c.CarrierOnly)
	}
}

// AnthropicConfig holds Anthropic API settings for the note formatter.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// RoutesConfig lists the survey areas whose shapefiles can be exported.
type RoutesConfig struct {
	Areas []route.AreaSpec `yaml:"areas" mapstructure:"areas"`
}

// Area finds a configured area by name.
func (c RoutesConfig) Area(name string) (route.AreaSpec, bool) {
	for _, a := range c.Areas {
		if a.Name == name {
			return a, true
		}
	}
	return route.AreaSpec{}, false
}

// ServerConfig configures the JSON API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SURVEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "survey.db")
	v.SetDefault("roster.max_tries", roster.DefaultMaxTries)
	v.SetDefault("roster.pair_weight", roster.DefaultWeights.Pair)
	v.SetDefault("roster.slot_weight", roster.DefaultWeights.Slot)
	v.SetDefault("roster.carrier_only", "promote")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if len(cfg.Routes.Areas) == 0 {
		cfg.Routes.Areas = DefaultAreas()
	}

	return &cfg, nil
}

// DefaultAreas mirrors the survey areas the tool ships with: a river area
// and an estuary area, each with line, polygon and point layers.
func DefaultAreas() []route.AreaSpec {
	return []route.AreaSpec{
		{
			Name:        "하천",
			SectorMerge: []string{"하천6"},
			Layers: []route.LayerSpec{
				{Path: "data/HacheonLine.shp", Type: route.LayerLine, Name: "하천 라인", SectorColumn: "sector"},
				{Path: "data/HacheonPolygon.shp", Type: route.LayerPolygon, Name: "하천 폴리곤", SectorColumn: "sector"},
				{Path: "data/HacheonPoint.shp", Type: route.LayerPoint, Name: "하천 포인트", SectorColumn: "sector"},
			},
		},
		{
			Name:          "하구",
			FixedPolygons: "blue",
			Layers: []route.LayerSpec{
				{Path: "data/HaguLine.shp", Type: route.LayerLine, Name: "하구 라인", SectorColumn: "sector"},
				{Path: "data/HaguPolygon.shp", Type: route.LayerPolygon, Name: "하구 폴리곤", SectorColumn: "code"},
				{Path: "data/HaguPoint.shp", Type: route.LayerPoint, Name: "하구 포인트", SectorColumn: "sector"},
			},
		},
	}
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
