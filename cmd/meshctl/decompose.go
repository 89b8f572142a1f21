// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvmesh/clements"
	"github.com/katalvlaran/lvmesh/cmatrix"
	"github.com/katalvlaran/lvmesh/pipeline"
)

// unitaryFile is the on-disk unitary: real and imaginary parts, row-major.
type unitaryFile struct {
	Re [][]float64 `json:"re"`
	Im [][]float64 `json:"im"`
}

func newDecomposeCmd(f *rootFlags) *cobra.Command {
	var (
		unitaryPath string
		rootFinder  bool
		globalPhase bool
	)
	cmd := &cobra.Command{
		Use:   "decompose",
		Short: "Decompose a unitary and print the chip channel mapping",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := f.logger()
			if err != nil {
				return err
			}
			profile, err := f.loadProfile()
			if err != nil {
				return err
			}
			u, err := readUnitary(unitaryPath)
			if err != nil {
				return err
			}

			strategy := clements.ClosedForm
			if rootFinder {
				strategy = clements.RootFinder
			}
			p, err := pipeline.New(
				pipeline.WithLogger(log),
				pipeline.WithProfile(profile),
				pipeline.WithDecomposeOptions(clements.WithStrategy(strategy), clements.WithGlobalPhase(globalPhase)),
			)
			if err != nil {
				return err
			}
			cm, err := p.MapUnitary(u)
			if err != nil {
				return err
			}
			log.Info("decomposed", "n", u.Rows(), "strategy", strategy, "labels", len(cm))

			return writeJSON(cmd.OutOrStdout(), cm)
		},
	}
	cmd.Flags().StringVar(&unitaryPath, "unitary", "", "unitary JSON file {\"re\": [[...]], \"im\": [[...]]}")
	cmd.Flags().BoolVar(&rootFinder, "root-finder", false, "solve eliminations with the numeric root finder")
	cmd.Flags().BoolVar(&globalPhase, "global-phase", false, "include the i·e^{iθ} factor in every beamsplitter")
	_ = cmd.MarkFlagRequired("unitary")

	return cmd
}

func readUnitary(path string) (*cmatrix.Dense, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read unitary: %w", err)
	}
	var uf unitaryFile
	if err = json.Unmarshal(data, &uf); err != nil {
		return nil, fmt.Errorf("failed to parse unitary: %w", err)
	}

	return uf.matrix()
}

func (uf unitaryFile) matrix() (*cmatrix.Dense, error) {
	if uf.Im != nil && len(uf.Im) != len(uf.Re) {
		return nil, fmt.Errorf("unitary: %d imaginary rows for %d real rows: %w", len(uf.Im), len(uf.Re), cmatrix.ErrBadShape)
	}
	rows := make([][]complex128, len(uf.Re))
	for i, re := range uf.Re {
		rows[i] = make([]complex128, len(re))
		if uf.Im != nil && len(uf.Im[i]) != len(re) {
			return nil, fmt.Errorf("unitary: row %d: %w", i, cmatrix.ErrBadShape)
		}
		for j, x := range re {
			var y float64
			if uf.Im != nil {
				y = uf.Im[i][j]
			}
			rows[i][j] = complex(x, y)
		}
	}

	return cmatrix.FromRows(rows)
}
