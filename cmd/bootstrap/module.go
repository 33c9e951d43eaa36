package bootstrap

import (
	"dicetrails/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	JanitorModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
