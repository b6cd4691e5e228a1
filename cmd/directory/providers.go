// File: cmd/directory/providers.go
package main

import (
	"log"

	"go.uber.org/zap"

	"student_directory/internal/config"
	"student_directory/internal/platform/logger"
	"student_directory/internal/session"
	"student_directory/internal/store"
)

// provideLogger builds the zap logger and its flush-on-shutdown cleanup.
func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	zapLogger, err := logger.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := zapLogger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
	}
	return zapLogger, cleanup, nil
}

// provideStore builds the Firestore store and its close cleanup.
func provideStore(cfg *config.Config, zapLogger *zap.Logger) (*store.Firestore, func(), error) {
	st, err := store.NewFirestore(cfg, zapLogger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := st.Close(); err != nil {
			zapLogger.Warn("Failed to close Firestore client during cleanup", zap.Error(err))
		}
	}
	return st, cleanup, nil
}

// provideGate builds the session gate with the configured splash floor.
func provideGate(cfg *config.Config, zapLogger *zap.Logger) *session.Gate {
	return session.New(cfg.SplashMinDuration, zapLogger)
}
