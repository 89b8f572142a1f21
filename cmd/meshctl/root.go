// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvmesh/internal/logging"
	"github.com/katalvlaran/lvmesh/labels"
)

// Environment variables providing flag defaults.
const (
	envProfile     = "MESHCTL_PROFILE"
	envCalibration = "MESHCTL_CALIBRATION"
	envLogLevel    = "MESHCTL_LOG_LEVEL"
)

type rootFlags struct {
	profile  string
	size     int
	variant  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "meshctl",
		Short:         "Control a rectangular MZI photonic mesh",
		Long:          `meshctl turns target unitaries into chip angle settings and angle settings into heater currents.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&f.profile, "profile", os.Getenv(envProfile), "chip profile file (YAML or JSON)")
	cmd.PersistentFlags().IntVar(&f.size, "size", 8, "mesh size when no profile is given")
	cmd.PersistentFlags().StringVar(&f.variant, "variant", "decomposition", "label table when no profile is given (decomposition|physical)")
	cmd.PersistentFlags().StringVar(&f.logLevel, "log-level", envOr(envLogLevel, "info"), "log level (debug|info|warn|error)")

	cmd.AddCommand(
		newDecomposeCmd(f),
		newCurrentsCmd(f),
		newCalibrateCmd(f),
		newVersionCmd(),
	)

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func (f *rootFlags) logger() (*slog.Logger, error) {
	level, err := logging.ParseLevel(f.logLevel)
	if err != nil {
		return nil, err
	}

	return logging.New(level), nil
}

// loadProfile reads --profile, or builds the default profile of --size and
// --variant.
func (f *rootFlags) loadProfile() (labels.Profile, error) {
	if f.profile != "" {
		return labels.LoadProfile(f.profile)
	}
	var v labels.Variant
	if err := v.UnmarshalText([]byte(f.variant)); err != nil {
		return labels.Profile{}, err
	}

	return labels.DefaultProfile(f.size, v)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
