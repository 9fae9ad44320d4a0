package bloomd

import "go.uber.org/zap"

// newLogger builds the Client's structured logger. Debug mode surfaces
// connection lifecycle and queue-transition detail at debug level;
// otherwise only warnings and above are emitted. Logging is an ambient,
// operational concern — it has no bearing on queue/callback semantics.
func newLogger(debug bool) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		// zap.NewProductionConfig().Build() only fails on a bad sink URL,
		// which cannot happen with the default stderr sink.
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
