// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/airdrop-checker/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the eligibility form over HTTP",
	Long: `Serve runs the web form: enter a wallet address, an optional social
handle, and optional comma-separated community roles, then check eligibility.
A JSON endpoint is available at POST /api/check. Stops cleanly on Ctrl-C.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper(), loadedSecrets)
	if err != nil {
		return err
	}
	noAI, _ := cmd.Flags().GetBool("no-ai")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	requester := newRequester(ctx, cfg.AI, noAI, logger)
	srv := web.NewServer(requester, nil, logger)
	return web.ListenAndServe(ctx, cfg.Server, srv.Router(), logger)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().Bool("no-ai", false, "skip the text-generation call and always show the fallback message")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}
