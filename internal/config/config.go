// Package config loads the lookup configuration.
package config

import "time"

// Config is the root application configuration.
type Config struct {
	Linguee LingueeConfig `yaml:"linguee"`
	Log     LogConfig     `yaml:"log"`
	Warmup  WarmupConfig  `yaml:"warmup"`
}

// LingueeConfig holds the dictionary site settings. The defaults are the
// values the lookup was built against.
type LingueeConfig struct {
	SearchURL  string `yaml:"search_url"  env:"LINGUEE_SEARCH_URL"  env-default:"https://www.linguee.de"`
	BrowseURL  string `yaml:"browse_url"  env:"LINGUEE_BROWSE_URL"  env-default:"http://www.linguee.de"`
	SourceLang string `yaml:"source_lang" env:"LINGUEE_SOURCE_LANG" env-default:"de"`
	TargetLang string `yaml:"target_lang" env:"LINGUEE_TARGET_LANG" env-default:"en"`
	UserAgent  string `yaml:"user_agent"  env:"LINGUEE_USER_AGENT"  env-default:"org.albert.linguee"`

	// ResultWidth and ResultHeight are the cw/ch query parameters. A larger
	// ch makes the site return more entries.
	ResultWidth  int `yaml:"result_width"  env:"LINGUEE_CW" env-default:"820"`
	ResultHeight int `yaml:"result_height" env:"LINGUEE_CH" env-default:"1000"`

	Debounce time.Duration `yaml:"debounce" env:"LINGUEE_DEBOUNCE" env-default:"100ms"`
	Timeout  time.Duration `yaml:"timeout"  env:"LINGUEE_TIMEOUT"  env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// WarmupConfig holds Lambda warmup settings.
type WarmupConfig struct {
	FunctionName string `yaml:"function_name" env:"AWS_LAMBDA_FUNCTION_NAME"`
}
