// Package zap builds the process-wide *slog.Logger on top of a zap core.
package zap

import (
	"io"
	"log/slog"

	"github.com/fwojciec/netkit"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a *slog.Logger writing to w at the given level
// ("debug", "info", "warn", "error"). Development mode uses zap's console
// encoder; otherwise entries are JSON.
func NewLogger(w io.Writer, level string, development bool) (*slog.Logger, error) {
	core, err := NewCore(w, level, development)
	if err != nil {
		return nil, err
	}
	return slog.New(zapslog.NewHandler(core)), nil
}

// NewCore builds the zap core used by NewLogger.
func NewCore(w io.Writer, level string, development bool) (zapcore.Core, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, netkit.Errorf(netkit.EINVALID, "invalid log level %q", level)
	}

	var encoder zapcore.Encoder
	if development {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = "ts"
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
	} else {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "ts"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	}

	return zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), lvl), nil
}
