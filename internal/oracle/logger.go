package oracle

import (
	"time"

	"go.uber.org/zap"
)

// LogRequest logs a call being made to an oracle.
func LogRequest(lg *zap.Logger, oracle, operation string, promptLen int) {
	lg.Debug("oracle request",
		zap.String("oracle", oracle),
		zap.String("op", operation),
		zap.Int("prompt_len", promptLen))
}

// LogResponse logs a reply received from an oracle.
func LogResponse(lg *zap.Logger, oracle, operation string, duration time.Duration, textLen int) {
	lg.Info("oracle response",
		zap.String("oracle", oracle),
		zap.String("op", operation),
		zap.Int64("duration_ms", duration.Milliseconds()),
		zap.Int("text_len", textLen))
}

// LogError logs a failed oracle call.
func LogError(lg *zap.Logger, oracle, operation string, err error) {
	lg.Warn("oracle error",
		zap.String("oracle", oracle),
		zap.String("op", operation),
		zap.Error(err))
}
