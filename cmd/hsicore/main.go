// hsicore — reference host for the Human State Interface core: wires
// the ingestion/window/fusion/export/upload pipeline to a deterministic
// mock adapter set, for local development, scripted testing, and
// demoing the pipeline end-to-end without a real mobile/wear host app.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/synheart-ai/synheart-core/internal/capability"
	"github.com/synheart-ai/synheart-core/internal/core"
	"github.com/synheart-ai/synheart-core/internal/diffhsi"
	"github.com/synheart-ai/synheart-core/internal/hsiconfig"
	"github.com/synheart-ai/synheart-core/internal/hsimodel"
	"github.com/synheart-ai/synheart-core/internal/mcpserver"
	"github.com/synheart-ai/synheart-core/internal/mockadapter"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the cobra command tree. Split out from main so
// tests can execute subcommands without calling os.Exit.
func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "hsicore",
		Short:   "Human State Interface fusion core — reference host",
		Version: version,
		Long: `hsicore — single Go binary hosting the HSI fusion pipeline.

Ingests mock biosignal/behavioral/context streams, runs the window
scheduler and fusion engine, and exports HSI 1.0 snapshots. Intended
for local development and scripted testing; a real mobile/wear host
app wires its own platform adapters against the same internal/ API.`,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (optional; env vars and defaults always apply)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline against mock adapters until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			setLogLevel(cfg.LogLevel)

			c := newMockCore(cfg)
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := c.Start(ctx); err != nil {
				return fmt.Errorf("start core: %w", err)
			}
			defer c.Dispose()

			sub := c.Subscribe()
			for {
				select {
				case <-ctx.Done():
					return nil
				case hsv := <-sub:
					log.Info().
						Int64("timestamp_ms", hsv.TimestampMs).
						Float64("focus_hint", hsv.Behavior.FocusHint).
						Msg("published HSV")
				}
			}
		},
	}

	var snapshotOutput string
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Run one fusion tick against mock adapters and print the HSI 1.0 payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			setLogLevel(cfg.LogLevel)

			c := newMockCore(cfg)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := c.Start(ctx); err != nil {
				return fmt.Errorf("start core: %w", err)
			}
			defer c.Dispose()

			deadline := time.Now().Add(4 * time.Second)
			var payload hsimodel.HSI10Payload
			var ok bool
			for time.Now().Before(deadline) {
				if payload, ok = c.Snapshot(); ok {
					break
				}
				time.Sleep(20 * time.Millisecond)
			}
			if !ok {
				return fmt.Errorf("no fusion tick completed within timeout")
			}
			return writeJSON(payload, snapshotOutput)
		},
	}
	snapshotCmd.Flags().StringVarP(&snapshotOutput, "output", "o", "-", "output file path (- for stdout)")

	var diffOutput string
	diffCmd := &cobra.Command{
		Use:   "diff <baseline.json> <current.json>",
		Short: "Compare two HSI 1.0 snapshots",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args[0], args[1], diffOutput)
		},
	}
	diffCmd.Flags().StringVarP(&diffOutput, "output", "o", "-", "output diff file path (- for stdout human-readable)")

	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP stdio server over a mock-adapter core",
		Long: `Starts a JSON-RPC server implementing the Model Context Protocol (MCP)
over stdio, exposing read-only tools over the HSV stream so an AI
agent host (e.g. Claude Desktop, Cursor) can inspect fused state.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			setLogLevel(cfg.LogLevel)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			c := newMockCore(cfg)
			if err := c.Start(ctx); err != nil {
				return fmt.Errorf("start core: %w", err)
			}
			defer c.Dispose()

			srv := mcpserver.NewServer(version, c)
			return srv.Start(ctx)
		},
	}

	rootCmd.AddCommand(runCmd, snapshotCmd, diffCmd, mcpCmd)
	return rootCmd
}

func loadConfig(path string) (hsiconfig.Config, error) {
	cfg, err := hsiconfig.Load(path)
	if err != nil {
		return hsiconfig.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func setLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// newMockCore wires a Core handle against the deterministic mock
// adapter set with a permissive, extended-tier consent/capability
// grant on every channel — suitable for local development, not a
// real deployment (a real host supplies its own oracles backed by the
// consent service and declared capability level).
func newMockCore(cfg hsiconfig.Config) *core.Core {
	opts := core.Options{
		Config: cfg,
		Consent: &capability.StaticConsentOracle{Consents: map[capability.Module]bool{
			capability.ModuleBiosignal: true,
			capability.ModuleBehavior:  true,
			capability.ModuleContext:   true,
		}},
		Capability: &capability.StaticCapabilityOracle{Levels: map[capability.Module]capability.Level{
			capability.ModuleBiosignal: capability.LevelExtended,
			capability.ModuleBehavior:  capability.LevelExtended,
			capability.ModuleContext:   capability.LevelExtended,
		}},
		Producer:  hsimodel.HSIProducer{Name: "hsicore", Version: version, InstanceID: cfg.Cloud.InstanceID},
		SessionID: fmt.Sprintf("session-%d", time.Now().UnixNano()),
		Device:    "hsicore-dev",
	}
	return core.New(mockadapter.NewBiosignal(), mockadapter.NewBehavioral(), mockadapter.NewContext(), opts)
}

func writeJSON(v any, outputPath string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if outputPath == "" || outputPath == "-" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(outputPath, data, 0644)
}

func runDiff(baselinePath, currentPath, outputPath string) error {
	baseline, err := loadPayload(baselinePath)
	if err != nil {
		return fmt.Errorf("load baseline: %w", err)
	}
	current, err := loadPayload(currentPath)
	if err != nil {
		return fmt.Errorf("load current: %w", err)
	}

	report := diffhsi.Compare(baseline, current)

	if outputPath == "" || outputPath == "-" {
		fmt.Print(formatDiff(report))
		return nil
	}
	return writeJSON(report, outputPath)
}

func loadPayload(path string) (*hsimodel.HSI10Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var payload hsimodel.HSI10Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func formatDiff(r diffhsi.Report) string {
	out := fmt.Sprintf("baseline: %s\ncurrent:  %s\n\n", r.BaselineObservedAtUTC, r.CurrentObservedAtUTC)
	for _, c := range r.Changes {
		out += fmt.Sprintf("%-24s %8.4f -> %8.4f  (%+.1f%%, %s, %s)\n",
			c.Axis, c.OldScore, c.NewScore, c.DeltaPct, c.Direction, c.Significance)
	}
	for _, axis := range r.Appeared {
		out += fmt.Sprintf("+ %s (new)\n", axis)
	}
	for _, axis := range r.Disappeared {
		out += fmt.Sprintf("- %s (gone)\n", axis)
	}
	if r.EmbeddingDistance != nil {
		out += fmt.Sprintf("\nembedding distance: %.4f\n", *r.EmbeddingDistance)
	}
	return out
}
