//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/mi-raf/rule-look/internal/api"
	"github.com/mi-raf/rule-look/internal/catalog"
	"github.com/mi-raf/rule-look/internal/database"
	"github.com/mi-raf/rule-look/internal/service"
)

func initApp(ctx context.Context, cfg *config) (a *api.API, closer func(), err error) {
	wire.Build(
		initPreferenceConfig,
		initServiceConfig,
		initSessionConfig,
		initApiConfig,
		catalog.Default,
		database.NewPreferenceRepositoryProvider,
		service.NewFactory,
		initSessionManager,
		api.NewApi,
	)
	return nil, nil, nil
}
