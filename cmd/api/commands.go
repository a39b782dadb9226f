package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jhoicas/facturacion-lite/internal/infrastructure/sqlstore"
	"github.com/jhoicas/facturacion-lite/pkg/config"
	"github.com/jhoicas/facturacion-lite/pkg/logger"
)

// newRootCommand arma el CLI: "serve" es la acción por defecto.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "facturacion",
		Short:         "Facturación lite: clientes, productos y facturas",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Levanta la API HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Crea las tablas e índices (idempotente) y termina",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context())
		},
	})
	return cmd
}

// bootstrap carga configuración y logger comunes a todos los comandos.
func bootstrap() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	return cfg, log, nil
}

func runMigrate(ctx context.Context) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	db, err := sqlstore.Open(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.DB.Driver).Msg("migración")
		return err
	}
	defer db.Close()
	log.Info().Str("driver", cfg.DB.Driver).Msg("esquema al día")
	return nil
}
