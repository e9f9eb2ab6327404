package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/newswordy/go-server/internal/config"
	"github.com/newswordy/go-server/internal/game"
	"github.com/newswordy/go-server/internal/httpserver"
	"github.com/newswordy/go-server/internal/scoreboard"
	"github.com/newswordy/go-server/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := openDB(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	svc := game.NewService(
		scoreboard.NewSQLProvider(db),
		store.NewSQLSessions(db),
		store.NewSQLGuesses(db),
		store.NewSQLStats(db),
	)
	srv := httpserver.New(cfg, svc, db)

	log.Info().Str("port", cfg.Port).Msg("starting newswordy-go")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
