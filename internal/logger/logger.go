package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var level = zap.NewAtomicLevel()

// Init replaces the global zap logger. Production uses JSON output, any other
// environment the human friendly development encoder.
func Init(env string) error {
	var conf zap.Config
	if env == "production" {
		conf = zap.NewProductionConfig()
	} else {
		conf = zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	conf.Level = level

	l, err := conf.Build()
	if err != nil {
		return fmt.Errorf("conf.Build -> %w", err)
	}
	zap.ReplaceGlobals(l)

	return nil
}

// SetLevel changes the level of the global logger at runtime.
func SetLevel(lvl string) error {
	if err := level.UnmarshalText([]byte(lvl)); err != nil {
		return fmt.Errorf("level.UnmarshalText -> %w", err)
	}

	return nil
}
