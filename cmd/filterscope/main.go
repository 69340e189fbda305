// Package main provides the command-line front end for filterscope.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/RMahshie/filterscope/internal/config"
	"github.com/RMahshie/filterscope/internal/designer"
	"github.com/RMahshie/filterscope/internal/render"
	"github.com/RMahshie/filterscope/internal/response"
	"github.com/RMahshie/filterscope/internal/server"
	"github.com/RMahshie/filterscope/pkg/models"
)

type designOptions struct {
	family      string
	order       int
	cutoff      float64
	ripple      float64
	attenuation float64
	points      int
	pngPath     string
	width       int
	height      int
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "filterscope",
		Short:        "Design Butterworth and Chebyshev low-pass filters",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newDesignCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

func newDesignCmd() *cobra.Command {
	opts := &designOptions{}
	cmd := &cobra.Command{
		Use:   "design",
		Short: "Print the frequency response of a filter",
		Long: "Designs a digital low-pass filter and prints its frequency response as\n" +
			"tab-separated frequency (rad/sample), gain (dB) and phase (rad).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDesign(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.family, "family", string(models.FamilyButterworth), "filter family: butterworth, chebyshev1 or chebyshev2")
	cmd.Flags().IntVar(&opts.order, "order", int(models.OrderRange.Default), "filter order")
	cmd.Flags().Float64Var(&opts.cutoff, "cutoff", models.CutoffRange.Default, "cutoff as a fraction of Nyquist (0-1, exclusive)")
	cmd.Flags().Float64Var(&opts.ripple, "ripple", models.RippleRange.Default, "passband ripple in dB (chebyshev1)")
	cmd.Flags().Float64Var(&opts.attenuation, "attenuation", models.AttenuationRange.Default, "stopband attenuation in dB (chebyshev2)")
	cmd.Flags().IntVar(&opts.points, "points", response.DefaultPoints, "number of response samples")
	cmd.Flags().StringVar(&opts.pngPath, "png", "", "also write the chart to this PNG file")
	cmd.Flags().IntVar(&opts.width, "width", render.DefaultWidth, "chart panel width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", render.DefaultHeight, "chart panel height in pixels")

	return cmd
}

func runDesign(ctx context.Context, out io.Writer, opts *designOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	family := models.Family(opts.family)
	if !family.Valid() {
		return fmt.Errorf("unknown family %q", opts.family)
	}

	spec := models.FilterSpec{
		Family:      family,
		Order:       opts.order,
		Ripple:      opts.ripple,
		Attenuation: opts.attenuation,
	}
	cutoffs := models.CutoffInputs{Slider: opts.cutoff, Box: opts.cutoff}

	res, err := designer.NewService(opts.points).Design(ctx, spec, cutoffs, models.TriggerInitial)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(out)
	fmt.Fprintln(w, "frequency\tgain_db\tphase_rad")
	for _, s := range res.Response {
		fmt.Fprintf(w, "%.6f\t%.6f\t%.6f\n", s.Frequency, s.Gain, s.Phase)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}

	if opts.pngPath == "" {
		return nil
	}
	return writePNG(opts, res.Response)
}

func writePNG(opts *designOptions, resp models.FrequencyResponse) error {
	ch, err := render.NewRenderer(opts.width, opts.height).Render(resp)
	if err != nil {
		return err
	}

	f, err := os.Create(opts.pngPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.pngPath, err)
	}
	if err := ch.PNG(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return f.Close()
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
}

func runServeCmd(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	config.SetupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, cfg)
}
