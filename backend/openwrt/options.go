package openwrt

import (
	"github.com/rs/zerolog"

	"github.com/honeybbq/netjsonuci/pkg/ast/uci"
	"github.com/honeybbq/netjsonuci/pkg/netjsonconfig"
	"github.com/honeybbq/netjsonuci/pkg/renderer"
	"github.com/honeybbq/netjsonuci/pkg/schema"
	"github.com/honeybbq/netjsonuci/pkg/telemetry"
)

// Option configures the backend during construction.
type Option func(*settings) error

type settings struct {
	templates  []any
	logger     zerolog.Logger
	validator  schema.Validator
	serializer renderer.Serializer[*uci.Document]
	collector  telemetry.Collector
	merger     netjsonconfig.Merger
}

// WithLogger provides a custom logger instance for the backend.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *settings) error {
		cfg.logger = logger
		return nil
	}
}

// WithTemplates adds base documents merged under the main document,
// left to right.
func WithTemplates(templates ...any) Option {
	return func(cfg *settings) error {
		cfg.templates = append(cfg.templates, templates...)
		return nil
	}
}

// WithValidator replaces the embedded JSON schema validator.
func WithValidator(v schema.Validator) Option {
	return func(cfg *settings) error {
		if v != nil {
			cfg.validator = v
		}
		return nil
	}
}

// WithSerializer replaces the plain-text UCI serializer.
func WithSerializer(s renderer.Serializer[*uci.Document]) Option {
	return func(cfg *settings) error {
		if s != nil {
			cfg.serializer = s
		}
		return nil
	}
}

// WithCollector installs a telemetry collector.
func WithCollector(c telemetry.Collector) Option {
	return func(cfg *settings) error {
		if c != nil {
			cfg.collector = c
		}
		return nil
	}
}

// WithListMerge selects how template lists are combined with the document.
func WithListMerge(mode netjsonconfig.ListMerge) Option {
	return func(cfg *settings) error {
		cfg.merger.Lists = mode
		return nil
	}
}
