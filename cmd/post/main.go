package main

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	kitlog "github.com/go-kit/kit/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/JuliusSchmelter/post"
)

var (
	configFile string
	csvDir     string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "post",
		Short:         "3-DoF launch trajectory simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runMission,
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "mission file (JSON phase overlays)")
	rootCmd.Flags().StringVar(&csvDir, "csv", "", "also write a CSV record file into this directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log every phase transition")

	plotCmd := &cobra.Command{
		Use:   "plot [record file]",
		Short: "plot a recorded trajectory in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRecords,
	}
	rootCmd.AddCommand(plotCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "post: %s\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var confErr post.ConfigError
	var numErr post.NumericError
	var limErr post.LimitReached
	switch {
	case errors.As(err, &confErr):
		return 2
	case errors.As(err, &numErr), errors.As(err, &limErr):
		return 3
	default:
		return 1
	}
}

func runMission(cmd *cobra.Command, args []string) error {
	if configFile == "" {
		return post.NewConfigError("no mission file given, use --config")
	}

	settings := post.LoadSettings()
	if csvDir != "" {
		settings.CSVDir = csvDir
	}

	// The mission only logs to stderr when asked to; stdout carries the
	// record stream.
	logger := kitlog.NewNopLogger()
	if verbose || settings.Verbose {
		logger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	}

	overlays, err := post.LoadConfig(configFile)
	if err != nil {
		return err
	}

	mission := post.NewMission(overlays, settings, logger)
	_, err = mission.Propagate(post.StreamConfig{
		Out:      os.Stdout,
		CSVDir:   settings.CSVDir,
		Filename: strings.TrimSuffix(filepath.Base(configFile), ".json"),
	})
	var cancelled post.Cancelled
	if errors.As(err, &cancelled) {
		return nil
	}
	return err
}

// plotRecords renders altitude and velocity traces of a record file written
// by the root command.
func plotRecords(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	var altitude, velocity []float64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "Starting Phase") || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 9 {
			return fmt.Errorf("malformed record line: %q", line)
		}
		vals := make([]float64, len(fields))
		for i, fld := range fields {
			if vals[i], err = strconv.ParseFloat(fld, 64); err != nil {
				return fmt.Errorf("malformed record field %q: %w", fld, err)
			}
		}
		altitude = append(altitude, vals[7])
		velocity = append(velocity, math.Sqrt(vals[4]*vals[4]+vals[5]*vals[5]+vals[6]*vals[6]))
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(altitude) == 0 {
		return fmt.Errorf("no records in %s", args[0])
	}

	fmt.Println(asciigraph.Plot(altitude,
		asciigraph.Height(12), asciigraph.Width(80), asciigraph.Caption("altitude (m)")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(velocity,
		asciigraph.Height(12), asciigraph.Width(80), asciigraph.Caption("inertial velocity (m/s)")))
	return nil
}
