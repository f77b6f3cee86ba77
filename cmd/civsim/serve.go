package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/talgya/mini-civ/internal/api"
	"github.com/talgya/mini-civ/internal/config"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a game over HTTP; turns advance via POST /api/v1/end-turn",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSetup(func(cfg *config.Game) {
				if cmd.Flags().Changed("port") {
					cfg.APIPort = port
				}
			})
			if err != nil {
				return err
			}
			defer s.Close()

			// The human settler founds its capital before play opens.
			autoplayHuman(s.game)

			srv := &api.Server{
				Game:          s.game,
				DB:            s.db,
				GameID:        s.gameID,
				Port:          s.cfg.APIPort,
				AdminKey:      s.cfg.AdminKey,
				BeforeEndTurn: autoplayHuman,
			}
			srv.Start()

			fmt.Printf("\nGame %s is running: %s against %d computer civilizations.\n",
				s.gameID, s.game.Human.Name, len(s.game.Computers))
			fmt.Printf("API: http://localhost:%d/api/v1/status\n", s.cfg.APIPort)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh
			slog.Info("received signal, shutting down", "signal", sig, "turn", s.game.Turn)
			return nil
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP port (default from config)")
	return cmd
}
