// Package config loads solver, server and log settings from an optional file and BIGM_ environment variables.
package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/askiada/bigm"
)

// EnvPrefix is prepended to every environment override, e.g. BIGM_SOLVER_BIG_M.
const EnvPrefix = "BIGM"

// Config is the whole configuration of the CLI and the server.
type Config struct {
	Solver SolverConfig `mapstructure:"solver"`
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
}

// SolverConfig maps onto the bigm solver options.
type SolverConfig struct {
	BigM             float64 `mapstructure:"big_m"             validate:"gt=0"`
	MaxIterations    int     `mapstructure:"max_iterations"    validate:"gt=0"`
	PivotRule        string  `mapstructure:"pivot_rule"        validate:"oneof=dantzig bland"`
	Tolerance        float64 `mapstructure:"tolerance"         validate:"gte=0"`
	CheckFeasibility bool    `mapstructure:"check_feasibility"`
}

// LogConfig sets the minimum level of the slog logger.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// ServerConfig configures the HTTP API of the serve command.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"             validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"   validate:"gt=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("solver.big_m", bigm.DefaultBigM)
	v.SetDefault("solver.max_iterations", bigm.DefaultMaxIterations)
	v.SetDefault("solver.pivot_rule", bigm.Dantzig.String())
	v.SetDefault("solver.tolerance", bigm.DefaultTolerance)
	v.SetDefault("solver.check_feasibility", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_body_bytes", 1<<20)
}

// Load reads the configuration. path may be empty, in which case only defaults and
// environment variables apply. The result is validated before it is returned.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	conf.Solver.PivotRule = strings.ToLower(conf.Solver.PivotRule)
	conf.Log.Level = strings.ToLower(conf.Log.Level)

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Validate checks every field against its validate tag.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "config validation failed")
	}
	return nil
}

// SolverOptions converts the solver section into options for bigm.NewSolver.
func (c *Config) SolverOptions() ([]bigm.Option, error) {
	rule, err := bigm.ParsePivotRule(c.Solver.PivotRule)
	if err != nil {
		return nil, err
	}
	return []bigm.Option{
		bigm.WithBigM(c.Solver.BigM),
		bigm.WithMaxIterations(c.Solver.MaxIterations),
		bigm.WithPivotRule(rule),
		bigm.WithTolerance(c.Solver.Tolerance),
		bigm.WithInfeasibilityCheck(c.Solver.CheckFeasibility),
	}, nil
}
