// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvmesh/calibration"
	"github.com/katalvlaran/lvmesh/labels"
	"github.com/katalvlaran/lvmesh/pipeline"
)

func newCurrentsCmd(f *rootFlags) *cobra.Command {
	var (
		mappingPath  string
		requestsPath string
		storePath    string
	)
	cmd := &cobra.Command{
		Use:   "currents",
		Short: "Solve heater currents for a channel mapping or a request batch",
		Long: `Solves drive currents from a calibration store. Channels that cannot be
solved are listed under "failed"; they do not make the command fail.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (mappingPath == "") == (requestsPath == "") {
				return errors.New("exactly one of --mapping and --requests is required")
			}
			if storePath == "" {
				return fmt.Errorf("--calibration or %s is required", envCalibration)
			}
			log, err := f.logger()
			if err != nil {
				return err
			}
			store, err := calibration.LoadStore(storePath)
			if err != nil {
				return err
			}

			opts := []pipeline.Option{pipeline.WithLogger(log)}
			if requestsPath != "" {
				var reqs []pipeline.Request
				if err = readJSON(requestsPath, &reqs); err != nil {
					return err
				}
				p, err := pipeline.New(opts...)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), p.SolveCurrents(store, reqs))
			}

			profile, err := f.loadProfile()
			if err != nil {
				return err
			}
			var cm labels.ChannelMapping
			if err = readJSON(mappingPath, &cm); err != nil {
				return err
			}
			p, err := pipeline.New(append(opts, pipeline.WithProfile(profile))...)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), p.PlanMapping(cm, store))
		},
	}
	cmd.Flags().StringVar(&mappingPath, "mapping", "", "channel mapping JSON printed by decompose")
	cmd.Flags().StringVar(&requestsPath, "requests", "", "JSON list of {channel, target_pi}")
	cmd.Flags().StringVar(&storePath, "calibration", os.Getenv(envCalibration), "calibration store (YAML or JSON)")

	return cmd
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err = json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return nil
}
