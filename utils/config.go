package utils

import (
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds the converter settings, read from file or environment
// variables.
type Config struct {
	// Viper uses the mapstructure package under the hood for unmarshaling values.
	InputFormat          string `mapstructure:"INPUT_FORMAT"`
	OutputFormat         string `mapstructure:"OUTPUT_FORMAT"`
	JSONVariant          string `mapstructure:"JSON_VARIANT"`
	InputDir             string `mapstructure:"INPUT_DIR"`
	OutputDir            string `mapstructure:"OUTPUT_DIR"`
	Workers              int    `mapstructure:"WORKERS"`
	ApplicationNamespace string `mapstructure:"APPLICATION_NAMESPACE"`
	MaxStringLength      uint32 `mapstructure:"MAX_STRING_LENGTH"`
	MaxByteStringLength  uint32 `mapstructure:"MAX_BYTE_STRING_LENGTH"`
	MaxArrayLength       uint32 `mapstructure:"MAX_ARRAY_LENGTH"`
	MaxRecursionDepth    uint32 `mapstructure:"MAX_RECURSION_DEPTH"`
}

func NewConfig(logger *zap.SugaredLogger) *Config {
	cfg := &Config{}
	cfg.LoadConfig(logger)
	return cfg
}

// LoadConfig reads configuration from file or environment variables.
func (config *Config) LoadConfig(logger *zap.SugaredLogger) {
	viper.AddConfigPath("./configs/")
	viper.SetConfigName("config")
	viper.SetConfigType("json")

	// AutomaticEnv() automatically override values that it has read from config file with the values of
	// the corresponding environment variables if they exist.
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		// Environment variables have the highest priority!
		logger.Warn(Colorize("Config not found : Using default values 🔧 ", Magenta),
			Colorize(err.Error(), Magenta))
	} else {
		logger.Info(Colorize("Config Found : Loading Config ⌛", Cyan))
	}
	config.setDefaults(logger)
}

// setDefaults provides every setting a value, so a partial config file
// or a bare environment still yields a runnable converter.
func (config *Config) setDefaults(logger *zap.SugaredLogger) {

	viper.SetDefault("INPUT_FORMAT", "binary")
	viper.SetDefault("OUTPUT_FORMAT", "json")
	viper.SetDefault("JSON_VARIANT", "reversible")
	viper.SetDefault("INPUT_DIR", "./messages")
	viper.SetDefault("OUTPUT_DIR", "./converted")
	viper.SetDefault("WORKERS", 4)
	viper.SetDefault("APPLICATION_NAMESPACE", "")
	viper.SetDefault("MAX_STRING_LENGTH", 1048576)
	viper.SetDefault("MAX_BYTE_STRING_LENGTH", 1048576)
	viper.SetDefault("MAX_ARRAY_LENGTH", 65536)
	viper.SetDefault("MAX_RECURSION_DEPTH", 100)

	err := viper.Unmarshal(&config)
	if err != nil {
		// Panics if the tags on the fields of the structure are not properly set
		logger.Panic(Colorize("Failed to unmarshal Configs ", Magenta),
			Colorize(err.Error(), Magenta))
	}
}
