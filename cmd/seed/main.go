// Command seed loads the demo dataset into a fresh database.
package main

import (
	"errors"
	"flag"

	"github.com/latsoguy/latso-mvp-demo/internal/config"
	"github.com/latsoguy/latso-mvp-demo/internal/database"
	"github.com/latsoguy/latso-mvp-demo/internal/modules/briefing"
	"github.com/latsoguy/latso-mvp-demo/internal/modules/projects"
	"github.com/latsoguy/latso-mvp-demo/internal/modules/risks"
	"github.com/latsoguy/latso-mvp-demo/internal/modules/vendors"
	"github.com/latsoguy/latso-mvp-demo/internal/seed"
	"github.com/latsoguy/latso-mvp-demo/pkg/logger"
)

func main() {
	force := flag.Bool("force", false, "seed even when data already exists")
	flag.Parse()

	log := logger.New(logger.Config{Level: "info", Pretty: true})
	logger.SetGlobalLogger(log)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := db.Migrate(
		vendors.Schema,
		projects.Schema,
		risks.Schema,
		briefing.Schema,
	); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	seeder := seed.New(
		projects.NewRepository(db.Conn(), log),
		vendors.NewRepository(db.Conn(), log),
		risks.NewRepository(db.Conn(), cfg.BaselineDelayWeeks, log),
		log,
	)

	projectID, err := seeder.Run(*force)
	if err != nil {
		if errors.Is(err, seed.ErrAlreadySeeded) {
			log.Fatal().Msg("Database already seeded, use -force to reseed")
		}
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	log.Info().Str("project_id", projectID).Msg("Demo data seeded")
}
