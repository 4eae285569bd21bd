package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/SscSPs/pix_simulator/internal/core/domain"
	"github.com/SscSPs/pix_simulator/internal/platform/config"
	"github.com/SscSPs/pix_simulator/internal/repositories/memory"
	"github.com/SscSPs/pix_simulator/internal/utils"
	"github.com/SscSPs/pix_simulator/internal/utils/accounting"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var (
		file   string
		output string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Print the accounts the ledger starts with",
		Long:  "Print the accounts the ledger starts with. Reads --file, then SEED_FILE, then falls back to the built-in seed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				cfg, err := config.LoadConfig()
				if err != nil {
					return err
				}
				file = cfg.SeedFile
			}

			var (
				accounts []domain.Account
				err      error
			)
			if file == "" {
				accounts = memory.DefaultSeed()
			} else if accounts, err = memory.LoadSeedFile(file); err != nil {
				return err
			}
			return printSeed(cmd.OutOrStdout(), accounts, output)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "seed file to read instead of SEED_FILE")
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml | json")
	return cmd
}

func printSeed(w io.Writer, accounts []domain.Account, format string) error {
	switch format {
	case "yaml":
		out, err := memory.MarshalSeed(accounts)
		if err != nil {
			return err
		}
		if _, err := w.Write(out); err != nil {
			return err
		}
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(accounts); err != nil {
			return fmt.Errorf("encoding seed: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	_, err := fmt.Fprintf(w, "# %d accounts, total balance %s\n", len(accounts), utils.FormatAmount(accounting.TotalBalance(accounts)))
	return err
}
