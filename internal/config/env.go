// Environment overrides: every flag has a FASTMATH_<NAME> variable that is
// used when the flag is absent from the command line.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// envOverride binds one environment key (without EnvPrefix) to the flags it
// stands in for. apply ignores values it cannot parse.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

func intEnv(key string, field func(*AppConfig) *int, flags ...string) envOverride {
	return envOverride{key, flags, func(c *AppConfig, v string) {
		if n, err := strconv.Atoi(v); err == nil {
			*field(c) = n
		}
	}}
}

func stringEnv(key string, field func(*AppConfig) *string, flags ...string) envOverride {
	return envOverride{key, flags, func(c *AppConfig, v string) { *field(c) = v }}
}

func boolEnv(key string, field func(*AppConfig) *bool, flags ...string) envOverride {
	return envOverride{key, flags, func(c *AppConfig, v string) {
		p := field(c)
		*p = parseBoolEnv(v, *p)
	}}
}

var envOverrides = []envOverride{
	intEnv("SINE_LEN", func(c *AppConfig) *int { return &c.SineLen }, "sine-len"),
	intEnv("RANDOM", func(c *AppConfig) *int { return &c.Random }, "random"),
	intEnv("CACHE_LEVELS", func(c *AppConfig) *int { return &c.CacheLevels }, "cache-levels"),
	{"SEED", []string{"seed"}, func(c *AppConfig, v string) {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Seed = n
		}
	}},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}},

	stringEnv("MODE", func(c *AppConfig) *string { return &c.Mode }, "mode"),
	stringEnv("TABLES", func(c *AppConfig) *string { return &c.Tables }, "tables"),
	stringEnv("OUTPUT", func(c *AppConfig) *string { return &c.OutputFile }, "output", "o"),
	stringEnv("INPUT", func(c *AppConfig) *string { return &c.InputFile }, "input"),
	stringEnv("K", func(c *AppConfig) *string { return &c.Ranks }, "k"),
	stringEnv("P", func(c *AppConfig) *string { return &c.Quantiles }, "p"),
	stringEnv("ESTIMATION", func(c *AppConfig) *string { return &c.Estimation }, "estimation"),
	stringEnv("STRATEGY", func(c *AppConfig) *string { return &c.Strategy }, "strategy"),
	stringEnv("METRICS_FILE", func(c *AppConfig) *string { return &c.MetricsFile }, "metrics-file"),
	stringEnv("LOG_LEVEL", func(c *AppConfig) *string { return &c.LogLevel }, "log-level"),

	boolEnv("QUIET", func(c *AppConfig) *bool { return &c.Quiet }, "quiet", "q"),
	boolEnv("VERBOSE", func(c *AppConfig) *bool { return &c.Verbose }, "verbose", "v"),
	boolEnv("NO_COLOR", func(c *AppConfig) *bool { return &c.NoColor }, "no-color"),
	boolEnv("TUI", func(c *AppConfig) *bool { return &c.TUI }, "tui"),
}

// parseBoolEnv accepts "true", "1", "yes" and "false", "0", "no", in any case.
// Anything else returns defaultVal.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides fills every field whose flags were not given on the
// command line from its FASTMATH_* variable. Empty variables are ignored.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	given := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { given[f.Name] = true })

	for _, o := range envOverrides {
		if anyGiven(given, o.flags) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}

func anyGiven(given map[string]bool, names []string) bool {
	for _, name := range names {
		if given[name] {
			return true
		}
	}
	return false
}
