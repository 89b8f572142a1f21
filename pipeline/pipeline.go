// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/lvmesh/calibration"
	"github.com/katalvlaran/lvmesh/clements"
	"github.com/katalvlaran/lvmesh/cmatrix"
	"github.com/katalvlaran/lvmesh/current"
	"github.com/katalvlaran/lvmesh/internal/logging"
	"github.com/katalvlaran/lvmesh/labels"
)

// Request asks for one channel to be driven to TargetPi (units of π).
type Request struct {
	Channel  string  `json:"channel"`
	TargetPi float64 `json:"target_pi"`
}

// Applied is a solved channel.
type Applied struct {
	Channel   string  `json:"channel"`
	TargetPi  float64 `json:"target_pi"`
	CurrentmA float64 `json:"current_ma"`
}

// Failure records why a channel was not solved.
type Failure struct {
	Channel string `json:"channel"`
	Reason  string `json:"reason"`
	Err     error  `json:"-"`
}

// Plan is the result of SolveCurrents. Applied and Failed partition the
// requests and keep their order.
type Plan struct {
	RequestID string    `json:"request_id"`
	Applied   []Applied `json:"applied"`
	Failed    []Failure `json:"failed"`
}

// LabelCurrents is the θ/φ heater drive of one mapped label.
type LabelCurrents struct {
	Label          string  `json:"label"`
	ThetaChannel   string  `json:"theta_channel"`
	PhiChannel     string  `json:"phi_channel"`
	ThetaCurrentmA float64 `json:"theta_current_ma"`
	PhiCurrentmA   float64 `json:"phi_current_ma"`
}

// MappingPlan is the result of PlanMapping.
type MappingPlan struct {
	RequestID string          `json:"request_id"`
	Labels    []LabelCurrents `json:"labels"`
	Failed    []Failure       `json:"failed"`
}

// Pipeline holds a chip profile and its mapper. It is safe for concurrent
// use.
type Pipeline struct {
	mapper    *labels.Mapper
	decompose []clements.Option
	logger    *slog.Logger
	metrics   *metrics
}

// New builds a Pipeline.
//
// Errors: profile validation errors from labels.NewMapper, or a metrics
// registration error.
func New(opts ...Option) (*Pipeline, error) {
	o := options{logger: logging.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.profile == nil {
		p, err := labels.DefaultProfile(8, labels.DecompositionOrder)
		if err != nil {
			return nil, err
		}
		o.profile = &p
	}

	m, err := labels.NewMapper(*o.profile)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	met := newMetrics()
	if o.registerer != nil {
		if err = met.register(o.registerer); err != nil {
			return nil, fmt.Errorf("pipeline: metrics: %w", err)
		}
	}

	return &Pipeline{mapper: m, decompose: o.decompose, logger: o.logger, metrics: met}, nil
}

// Profile returns the chip profile.
func (p *Pipeline) Profile() labels.Profile { return p.mapper.Profile() }

// Decompose runs the Clements decomposition with the configured options.
func (p *Pipeline) Decompose(u *cmatrix.Dense) (*clements.Interferometer, error) {
	return clements.Clements(u, p.decompose...)
}

// MapUnitary decomposes u and maps it onto the profile's labels.
//
// Errors: shape/unitarity errors from clements propagate unchanged;
// labels.ErrSizeMismatch when u does not match the profile size.
func (p *Pipeline) MapUnitary(u *cmatrix.Dense) (labels.ChannelMapping, error) {
	start := time.Now()
	it, err := p.Decompose(u)
	if err != nil {
		return nil, err
	}
	cm, err := p.mapper.Map(it)
	if err != nil {
		return nil, err
	}
	p.metrics.decompose.Observe(time.Since(start).Seconds())
	p.logger.Debug("unitary mapped", "n", it.N, "beamsplitters", len(it.BeamSplitters), "labels", len(cm))

	return cm, nil
}

// SolveCurrents solves every request against a snapshot of store. It never
// fails; per-channel problems are reported in Plan.Failed.
//
// Implementation:
//   - Stage 1: snapshot store and tag the batch with a fresh request id.
//   - Stage 2: solve each request independently with current.Solve.
//   - Stage 3: partition results into Applied and Failed, in request order.
//
// Errors:
//   - None returned. Missing records (calibration.ErrNoCalibration) and
//     unsolvable targets (current.ErrNoPhysicalSolution) become Failure
//     entries with Err set.
//
// Complexity:
//   - Time O(R + C) for R requests and C stored channels, Space O(R + C).
func (p *Pipeline) SolveCurrents(store calibration.Store, requests []Request) Plan {
	snap := store.Snapshot()
	plan := Plan{
		RequestID: uuid.NewString(),
		Applied:   make([]Applied, 0, len(requests)),
		Failed:    make([]Failure, 0),
	}
	log := p.logger.With("request_id", plan.RequestID)

	for _, req := range requests {
		mA, err := p.solve(snap, req.Channel, req.TargetPi, log)
		if err != nil {
			plan.Failed = append(plan.Failed, failure(req.Channel, err))
			continue
		}
		plan.Applied = append(plan.Applied, Applied{Channel: req.Channel, TargetPi: req.TargetPi, CurrentmA: mA})
	}
	log.Debug("batch solved", "applied", len(plan.Applied), "failed", len(plan.Failed))

	return plan
}

// PlanMapping converts every non-denied label of mapping into heater
// currents. A label is listed only when both of its heaters solve; each
// failing heater is reported separately.
func (p *Pipeline) PlanMapping(mapping labels.ChannelMapping, store calibration.Store) MappingPlan {
	snap := store.Snapshot()
	plan := MappingPlan{
		RequestID: uuid.NewString(),
		Labels:    make([]LabelCurrents, 0, len(mapping)),
		Failed:    make([]Failure, 0),
	}
	log := p.logger.With("request_id", plan.RequestID)
	profile := p.mapper.Profile()

	for _, label := range mapping.Labels() {
		if p.mapper.Denied(label) {
			continue
		}
		heater := profile.HeaterFor(label)
		theta, phi, err := mapping.Angles(label)
		if err != nil {
			plan.Failed = append(plan.Failed, failure(label, err))
			log.Warn("unreadable setting", "label", label, "error", err)
			continue
		}

		lc := LabelCurrents{Label: label, ThetaChannel: heater.Theta, PhiChannel: heater.Phi}
		var thetaErr, phiErr error
		lc.ThetaCurrentmA, thetaErr = p.solve(snap, heater.Theta, theta, log)
		if thetaErr != nil {
			plan.Failed = append(plan.Failed, failure(heater.Theta, thetaErr))
		}
		lc.PhiCurrentmA, phiErr = p.solve(snap, heater.Phi, phi, log)
		if phiErr != nil {
			plan.Failed = append(plan.Failed, failure(heater.Phi, phiErr))
		}
		if thetaErr == nil && phiErr == nil {
			plan.Labels = append(plan.Labels, lc)
		}
	}
	log.Debug("mapping planned", "labels", len(plan.Labels), "failed", len(plan.Failed))

	return plan
}

// solve looks channel up in snap and inverts targetPi, updating metrics and
// logging failures.
func (p *Pipeline) solve(snap calibration.Store, channel string, targetPi float64, log *slog.Logger) (float64, error) {
	mA, err := solveChannel(snap, channel, targetPi)
	if err != nil {
		p.metrics.solves.WithLabelValues(outcomeFailed).Inc()
		log.Warn("channel not solved", "channel", channel, "target_pi", targetPi, "error", err)
		return 0, err
	}
	p.metrics.solves.WithLabelValues(outcomeApplied).Inc()

	return mA, nil
}

func solveChannel(snap calibration.Store, channel string, targetPi float64) (float64, error) {
	ch, err := snap.Lookup(channel)
	if err != nil {
		return 0, err
	}

	return current.Solve(targetPi, ch)
}

func failure(channel string, err error) Failure {
	return Failure{Channel: channel, Reason: err.Error(), Err: err}
}
