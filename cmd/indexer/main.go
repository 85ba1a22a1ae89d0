package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goran-ethernal/NomadIndexer/internal/common"
	"github.com/goran-ethernal/NomadIndexer/internal/config"
	"github.com/goran-ethernal/NomadIndexer/internal/logger"
	"github.com/goran-ethernal/NomadIndexer/internal/message"
	"github.com/goran-ethernal/NomadIndexer/internal/poller"
	"github.com/goran-ethernal/NomadIndexer/internal/store"
	pkgconfig "github.com/goran-ethernal/NomadIndexer/pkg/config"
	"github.com/spf13/cobra"
)

const (
	version = "1.0.0"
	banner  = `
╔═══════════════════════════════════════════╗
║            NomadIndexer v%s            ║
║   Cross-chain message lifecycle indexer   ║
╚═══════════════════════════════════════════╝
`
)

var (
	configPath string
	envFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "indexer",
	Short: "NomadIndexer - Nomad cross-chain message indexer",
	Long: `NomadIndexer polls the Home, Replica and BridgeRouter contracts of every
configured domain, reconciles their events into one record per message and
tracks each message through dispatch, update, relay, receive and process.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv(envFile)
	},
	RunE: runIndexer,
}

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List configured domains and the event streams polled on each",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, d := range cfg.Domains {
			fmt.Fprintf(out, "%d (%s) start block %d\n", d.ID, d.Name, d.StartBlock)
			for _, s := range poller.StreamsOf(d) {
				fmt.Fprintf(out, "  - %-14s %s\n", s.EventType, s.Contract.Hex())
			}
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print stored checkpoints and message counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return printStatus(cmd.Context(), cmd, cfg)
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := pkgconfig.Schema()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "file with NOMAD_ environment overrides")
	rootCmd.AddCommand(domainsCmd, statusCmd, schemaCmd)
}

func printStatus(ctx context.Context, cmd *cobra.Command, cfg *pkgconfig.Config) error {
	st, err := store.New(ctx, cfg.Store, logger.NewComponentLoggerFromConfig(common.ComponentStore, cfg.Logging))
	if err != nil {
		return err
	}
	defer st.Close()

	checkpoints, err := st.GetAllKeyPairs(ctx, poller.CheckpointNamespace)
	if err != nil {
		return fmt.Errorf("failed to read checkpoints: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, d := range cfg.Domains {
		fmt.Fprintf(out, "%d (%s)\n", d.ID, d.Name)

		for _, s := range poller.StreamsOf(d) {
			block, ok := checkpoints[s.Key(d.ID)]
			if !ok {
				block = "-"
			}
			fmt.Fprintf(out, "  %-24s %s\n", s.Key(d.ID), block)
		}

		counts, err := st.CountByState(ctx, d.ID)
		if err != nil {
			return fmt.Errorf("failed to count messages of domain %d: %w", d.ID, err)
		}
		parts := make([]string, 0, len(counts))
		for _, state := range message.AllStates {
			parts = append(parts, fmt.Sprintf("%s=%d", state, counts[state]))
		}
		fmt.Fprintf(out, "  messages: %s\n", strings.Join(parts, " "))
	}
	return nil
}
