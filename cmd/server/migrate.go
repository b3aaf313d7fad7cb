package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			conn, err := openDatabase(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer conn.Close()

			log.Info().Str("driver", cfg.DatabaseDriver).Msg("migrations applied")
			return nil
		},
	}
}
