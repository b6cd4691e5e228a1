// File: cmd/directory/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"student_directory/internal/app"
	"student_directory/internal/config"
	"student_directory/internal/identity"
	"student_directory/internal/profile"
	"student_directory/internal/store"
)

// initializeApp is the main Wire injector. Every client is constructed once
// here and injected; nothing holds package-level provider state.
func initializeApp(cfg *config.Config) (*app.App, func(), error) {
	wire.Build(
		// Platform Layer
		provideLogger,
		provideGate,
		provideStore,

		// Identity + Store adapters
		identity.NewService,
		identity.NewRESTAuth,
		wire.Bind(new(profile.Identity), new(*identity.Service)),
		wire.Bind(new(profile.Store), new(*store.Firestore)),

		// Domain core
		profile.NewService,

		// Application Layer
		app.New,
	)
	return nil, nil, nil
}
