// SPDX-License-Identifier: MIT

package pipeline

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/lvmesh/clements"
	"github.com/katalvlaran/lvmesh/labels"
)

// Option configures a Pipeline.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	profile    *labels.Profile
	decompose  []clements.Option
	registerer prometheus.Registerer
}

// WithLogger sets the logger. Nil keeps the no-op default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithProfile sets the chip profile. The default is the built-in 8-mode
// chip in decomposition order.
func WithProfile(p labels.Profile) Option {
	return func(o *options) { o.profile = &p }
}

// WithDecomposeOptions passes options through to clements.Clements.
func WithDecomposeOptions(opts ...clements.Option) Option {
	return func(o *options) { o.decompose = append(o.decompose, opts...) }
}

// WithRegisterer registers the pipeline metrics with r.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) { o.registerer = r }
}
