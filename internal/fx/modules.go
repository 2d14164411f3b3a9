package fx

import (
	"arena-manager/internal/config"
	"arena-manager/internal/database"
	"arena-manager/internal/engine"
	"arena-manager/internal/gamecfg"
	"arena-manager/internal/logger"
	"arena-manager/internal/progression"
	"arena-manager/internal/repository"
	"arena-manager/internal/server"
	"arena-manager/internal/service"
	"arena-manager/internal/worker"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideGameConfig(cfg *config.Config, logger zerolog.Logger) (*gamecfg.Config, error) {
	game, err := gamecfg.Load(cfg.GameConfigPath)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.GameConfigPath).Msg("failed to load game config")
		return nil, err
	}
	logger.Info().
		Str("path", cfg.GameConfigPath).
		Str("version", game.Version).
		Int("rarities", len(game.Rarities)).
		Int("tactics", len(game.Tactics)).
		Int("mascots", len(game.Mascots)).
		Msg("game config loaded")
	return game, nil
}

func ProvideStaminaWorker(svc *service.ArenaService, cfg *config.Config, logger zerolog.Logger) (*worker.StaminaWorker, error) {
	return worker.NewStaminaWorker(svc, cfg, logger)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(ProvideGameConfig),
	// engine
	fx.Provide(engine.New),
	fx.Provide(progression.NewApplier),
	// store
	fx.Provide(repository.NewStore),
	// svc
	fx.Provide(service.NewArenaService),
	fx.Provide(ProvideStaminaWorker),
	// server
	fx.Provide(server.NewArenaServer),
)
