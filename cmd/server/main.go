package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"github.com/pantryapp/pantry/internal/components/auth"
	"github.com/pantryapp/pantry/internal/components/pantry"
	"github.com/pantryapp/pantry/internal/components/session"
	"github.com/pantryapp/pantry/internal/components/user"
	"github.com/pantryapp/pantry/internal/server"
	"github.com/pantryapp/pantry/internal/shared/config"
	"github.com/pantryapp/pantry/internal/shared/database"
	"github.com/pantryapp/pantry/internal/shared/logging"
)

func main() {
	// Missing .env is fine; config falls back to the process environment.
	_ = godotenv.Load()

	fx.New(
		fx.Provide(
			config.NewConfig,
			logging.NewLogger,
			database.NewPgxPool,
			server.NewHealthSrvc,
			server.NewHealthHandler,
			server.NewServer,
			session.NewRepo,
			session.NewService,
			auth.NewRepo,
			auth.NewService,
			fx.Annotate(auth.NewRouter, fx.ResultTags(`name:"authRouter"`)),
			pantry.NewRepo,
			pantry.NewService,
			fx.Annotate(pantry.NewRouter, fx.ResultTags(`name:"pantryRouter"`)),
			user.NewRepo,
			user.NewService,
			fx.Annotate(
				user.NewRouter,
				fx.ParamTags(``, ``, `name:"pantryRouter"`),
				fx.ResultTags(`name:"usersRouter"`),
			),
		),
		fx.Invoke(server.Register),
	).Run()
}
