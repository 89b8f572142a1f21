// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvmesh/calibration"
)

func newCalibrateCmd(f *rootFlags) *cobra.Command {
	var (
		sweepPath string
		channel   string
		useFFT    bool
		outPath   string
	)
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Fit resistance and phase records from a heater sweep",
		Long: `Fits one channel from a sweep file and prints the records. With --out the
channel is merged into that calibration store, which is created if missing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := f.logger()
			if err != nil {
				return err
			}
			sweep, err := readSweep(sweepPath)
			if err != nil {
				return err
			}

			strategy := calibration.HeuristicPrior
			if useFFT {
				strategy = calibration.FFTAssisted
			}
			ch, err := calibration.FitChannel(sweep, calibration.WithFitStrategy(strategy))
			if err != nil {
				return fmt.Errorf("channel %q: %w", channel, err)
			}
			log.Info("channel fitted", "channel", channel, "strategy", strategy,
				"r0_kohm", ch.Resistance.C, "omega", ch.Phase.Omega)

			if outPath != "" {
				if err = mergeChannel(outPath, channel, ch); err != nil {
					return err
				}
				log.Info("store updated", "path", outPath)
			}

			return writeJSON(cmd.OutOrStdout(), map[string]calibration.Channel{channel: ch})
		},
	}
	cmd.Flags().StringVar(&sweepPath, "sweep", "", "sweep file (YAML or JSON)")
	cmd.Flags().StringVar(&channel, "channel", "", "channel id the records belong to")
	cmd.Flags().BoolVar(&useFFT, "fft", false, "seed the phase fit from the FFT peak instead of a frequency scan")
	cmd.Flags().StringVar(&outPath, "out", "", "calibration store to merge the channel into")
	_ = cmd.MarkFlagRequired("sweep")
	_ = cmd.MarkFlagRequired("channel")

	return cmd
}

func readSweep(path string) (calibration.Sweep, error) {
	var s calibration.Sweep
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read sweep: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &s)
	} else {
		err = yaml.Unmarshal(data, &s)
	}
	if err != nil {
		return s, fmt.Errorf("failed to parse sweep: %w", err)
	}

	return s, nil
}

func mergeChannel(path, id string, ch calibration.Channel) error {
	store, err := calibration.LoadStore(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		store = calibration.NewStore(nil)
	case err != nil:
		return err
	}
	data, err := store.Set(id, ch).Encode(filepath.Ext(path))
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
