package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

func fileCore(logDir string) (zapcore.Core, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}
	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(logDir, "sitesmoke.log"),
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     14, // days
		Compress:   true,
	})
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	return zapcore.NewCore(zapcore.NewJSONEncoder(cfg), w, zap.InfoLevel), nil
}

func NewLogger(logDir string) (*zap.Logger, error) {
	core, err := fileCore(logDir)
	if err != nil {
		return nil, err
	}
	return zap.New(core), nil
}

// NewCLILogger writes JSON to the rotating file and a readable copy to
// stderr, so interactive runs show progress without grepping logs/.
func NewCLILogger(logDir string) (*zap.Logger, error) {
	core, err := fileCore(logDir)
	if err != nil {
		return nil, err
	}
	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	console := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleCfg),
		zapcore.Lock(os.Stderr),
		zap.InfoLevel,
	)
	return zap.New(zapcore.NewTee(core, console)), nil
}
