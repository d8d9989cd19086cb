// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/airdrop-checker/internal/allocation"
	"github.com/pdiddy/airdrop-checker/internal/checker"
	"github.com/pdiddy/airdrop-checker/pkg/types"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one eligibility check and print the result",
	Long: `Check computes the allocation for one wallet and requests the
celebratory message, exactly as the web form does. Use --seed for a
reproducible random offset and --format for machine-readable output.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper(), loadedSecrets)
	if err != nil {
		return err
	}

	sub := types.Submission{}
	sub.WalletAddress, _ = cmd.Flags().GetString("wallet")
	sub.TwitterHandle, _ = cmd.Flags().GetString("twitter")
	sub.DiscordRoles, _ = cmd.Flags().GetString("roles")
	format, _ := cmd.Flags().GetString("format")
	noAI, _ := cmd.Flags().GetBool("no-ai")

	if err := validateFormat(format); err != nil {
		return err
	}

	var random allocation.RandomSource
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		random = allocation.NewSeededSource(seed)
	}

	ctx := context.Background()
	session := checker.NewSession(newRequester(ctx, cfg.AI, noAI, logger), random)
	res, err := session.Submit(ctx, sub)
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), res, format)
}

func validateFormat(format string) error {
	switch format {
	case "text", "json", "yaml":
		return nil
	}
	return fmt.Errorf("unsupported format %q: use text, json, or yaml", format)
}

func writeResult(w io.Writer, res *types.AllocationResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml":
		data, err := yaml.Marshal(res)
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		_, err = w.Write(data)
		return err
	}

	b := res.Breakdown
	fmt.Fprintln(w, "Potential Airdrop Allocation")
	fmt.Fprintf(w, "  %s IRYS\n\n", humanize.Comma(int64(res.Value)))
	fmt.Fprintf(w, "  %s\n\n", res.Message)
	fmt.Fprintf(w, "  %-14s %5d\n", "base", b.Base)
	fmt.Fprintf(w, "  %-14s %5d\n", "wallet", b.WalletBonus)
	fmt.Fprintf(w, "  %-14s %5d\n", "social", b.SocialBonus)
	fmt.Fprintf(w, "  %-14s %5d  (%d roles)\n", "roles", b.RoleBonus, len(b.Roles))
	fmt.Fprintf(w, "  %-14s %5d\n", "random", b.RandomOffset)
	fmt.Fprintln(w, "\nNote: This is a simulation. Airdrop values are not final.")
	return nil
}

func init() {
	checkCmd.Flags().String("wallet", "", "wallet address (required)")
	checkCmd.Flags().String("twitter", "", "social handle (optional)")
	checkCmd.Flags().String("roles", "", "comma-separated community roles (optional)")
	checkCmd.Flags().Uint64("seed", 0, "seed for a reproducible random offset")
	checkCmd.Flags().String("format", "text", "output format: text, json, or yaml")
	checkCmd.Flags().Bool("no-ai", false, "skip the text-generation call and use the fallback message")

	rootCmd.AddCommand(checkCmd)
}

