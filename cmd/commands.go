package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tinfoilsh/verification-center/bridge"
	"github.com/tinfoilsh/verification-center/client"
	"github.com/tinfoilsh/verification-center/config"
	"github.com/tinfoilsh/verification-center/server"
	"github.com/tinfoilsh/verification-center/verification"
	"github.com/tinfoilsh/verification-center/view"
)

func readDocument(path string) (*verification.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return verification.Parse(data)
}

func newStatusCmd() *cobra.Command {
	var loading bool

	cmd := &cobra.Command{
		Use:   "status <document.json>",
		Short: "Print the overall verification status of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			log.With("file", args[0]).Debug("Computing status")
			fmt.Fprint(cmd.OutOrStdout(), renderStatus(verification.ComputeStatus(doc, loading)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&loading, "loading", false, "Treat a fresh document as being fetched")
	return cmd
}

func newBadgeCmd() *cobra.Command {
	var fallback string

	cmd := &cobra.Command{
		Use:   "badge [document.json]",
		Short: "Print the badge state, or the fallback state without a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc *verification.Document
			if len(args) == 1 {
				var err error
				if doc, err = readDocument(args[0]); err != nil {
					return err
				}
			}
			badge := verification.ComputeBadgeStatus(doc, verification.ParseBadgeState(fallback))
			fmt.Fprintln(cmd.OutOrStdout(), renderBadge(badge))
			return nil
		},
	}

	cmd.Flags().StringVar(&fallback, "fallback", string(verification.BadgeIdle), "State without a document: idle|loading|success|error")
	return cmd
}

func newStepsCmd() *cobra.Command {
	var opts view.Options

	cmd := &cobra.Command{
		Use:   "steps <document.json>",
		Short: "Print every verification step, including skipped ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderSteps(view.Steps(doc, opts)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Compact, "compact", false, "Hide the hardware, key and connection steps")
	cmd.Flags().BoolVar(&opts.Loading, "loading", false, "Render as if a fresh document is being fetched")
	return cmd
}

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the verification center to a host over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			logger := log.Default()
			if log.GetLevel() != log.DebugLevel {
				logger.SetLevel(cfg.Level())
			}

			center := bridge.NewCenter(bridge.NewStore(), cfg, logger)
			r := server.NewRouter(center, cfg, logger)

			ready := center.Start()
			log.With("listen", cfg.ListenAddr, "provider", cfg.Provider, "signal", ready.Type).Info("Verification center listening")
			return r.Run(cfg.ListenAddr)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	return cmd
}

func newPushCmd() *cobra.Command {
	var (
		serverURL       string
		verifierVersion string
		timeout         time.Duration
	)

	cmd := &cobra.Command{
		Use:   "push <document.json>",
		Short: "Send a document to a running verification center",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			c := client.New(serverURL)
			log.With("server", serverURL, "file", args[0]).Info("Pushing verification document")
			if err := c.PushDocument(ctx, doc, verifierVersion); err != nil {
				return fmt.Errorf("pushing document: %w", err)
			}

			status, err := c.Status(ctx, false)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderStatus(*status))
			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "Verification center URL")
	cmd.Flags().StringVar(&verifierVersion, "verifier-version", "", "Verifier version that produced the document")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	return cmd
}
