package openwrt

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	domain "github.com/honeybbq/netjsonuci/domain/openwrt"
	"github.com/honeybbq/netjsonuci/pkg/ast/uci"
	"github.com/honeybbq/netjsonuci/pkg/netjsonconfig"
	"github.com/honeybbq/netjsonuci/pkg/nxerrors"
	plain "github.com/honeybbq/netjsonuci/pkg/renderer/uci"
	"github.com/honeybbq/netjsonuci/pkg/schema"
	"github.com/honeybbq/netjsonuci/pkg/telemetry"
)

// Name 是后端标识。
const Name = "openwrt"

// State tracks how far a document went through the pipeline.
type State int

const (
	StateCreated State = iota
	StateMerged
	StateValidated
	StateRendered
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateMerged:
		return "merged"
	case StateValidated:
		return "validated"
	case StateRendered:
		return "rendered"
	default:
		return "unknown"
	}
}

// Backend 实现 NetJSON → OpenWrt UCI 转换。
type Backend struct {
	settings
	config map[string]any
	state  State
}

var _ netjsonconfig.Backend = (*Backend)(nil)

// New loads document, merges the templates under it and returns a backend
// in the merged state. The document is copied; the caller's value is
// never modified.
func New(document any, opts ...Option) (*Backend, error) {
	b := &Backend{
		settings: settings{
			logger:    zerolog.Nop(),
			collector: telemetry.Noop(),
		},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&b.settings); err != nil {
			return nil, err
		}
	}
	if b.serializer == nil {
		b.serializer = plain.NewPlainTextRenderer()
	}
	if b.validator == nil {
		v, err := schema.New()
		if err != nil {
			return nil, err
		}
		b.validator = v
	}

	doc, err := netjsonconfig.Load(document)
	if err != nil {
		return nil, err
	}
	doc = netjsonconfig.WithDefaultType(doc)
	merged, err := b.merger.MergeAll(b.templates, doc)
	if err != nil {
		return nil, err
	}
	b.config = merged
	b.state = StateMerged
	b.logger.Debug().Int("templates", len(b.templates)).Msg("document merged")
	return b, nil
}

// Name 实现 Backend 接口。
func (b *Backend) Name() string {
	return Name
}

// State returns the current pipeline state.
func (b *Backend) State() State {
	return b.state
}

// Config returns a copy of the merged document.
func (b *Backend) Config() map[string]any {
	return netjsonconfig.Clone(b.config)
}

// Packages returns the names of the fixed renderers in render order.
func Packages() []string {
	return domain.PackageNames()
}

// Validate checks the merged document against the schema.
func (b *Backend) Validate() error {
	if err := b.validator.Validate(b.config); err != nil {
		b.collector.IncValidationFailure(Name)
		b.logger.Debug().Err(err).Msg("validation failed")
		return err
	}
	if b.state < StateValidated {
		b.state = StateValidated
	}
	return nil
}

// Render 将文档转换为 UCI 文本。Validation runs again on every call.
// On error no text is returned.
func (b *Backend) Render(opts netjsonconfig.RenderOptions) (*netjsonconfig.Result, error) {
	result, err := b.render(opts)
	b.collector.IncRender(Name, err == nil)
	if err != nil {
		return nil, err
	}
	b.state = StateRendered
	return result, nil
}

func (b *Backend) render(opts netjsonconfig.RenderOptions) (*netjsonconfig.Result, error) {
	if !opts.SkipValidation {
		if err := b.Validate(); err != nil {
			return nil, err
		}
	}
	cfg, err := domain.FromDocument(b.config, schema.Properties())
	if err != nil {
		return nil, err
	}
	outputs, err := cfg.Outputs()
	if err != nil {
		return nil, err
	}

	result := &netjsonconfig.Result{}
	parts := make([]string, 0, len(outputs))
	for _, out := range outputs {
		for _, diag := range out.Diagnostics {
			b.collector.IncSkippedBlock(diag.Package)
			b.logger.Warn().
				Str("package", diag.Package).
				Int("index", diag.Index).
				Str("block", diag.Block).
				Msg(diag.Message)
		}
		result.Diagnostics = append(result.Diagnostics, out.Diagnostics...)
		if out.Empty() {
			continue
		}
		text, err := b.serializer.Serialize(&uci.Document{Packages: out.Packages})
		if err != nil {
			return nil, err
		}
		if text != "" {
			parts = append(parts, text)
		}
	}
	if opts.Strict && len(result.Diagnostics) > 0 {
		return nil, result.Diagnostics[0].Err()
	}

	text := strings.Join(parts, "\n")
	if opts.IncludeFiles {
		text += renderFiles(b.config)
	}
	result.Text = text
	return result, nil
}

// JSON returns the merged document as NetJSON after validating it.
func (b *Backend) JSON(indent string) ([]byte, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if indent == "" {
		return json.Marshal(b.config)
	}
	return json.MarshalIndent(b.config, "", indent)
}

// Bundle renders without files and splits the text into one package per
// etc/config file. Additional files are attached with their modes.
func (b *Backend) Bundle() (*netjsonconfig.Bundle, error) {
	result, err := b.Render(netjsonconfig.RenderOptions{})
	if err != nil {
		return nil, err
	}
	bundle := netjsonconfig.NewBundle("uci", Name)
	bundle.Packages = netjsonconfig.SplitPackages(result.Text)
	files, err := bundleFiles(b.config)
	if err != nil {
		return nil, err
	}
	bundle.Files = files
	if len(result.Diagnostics) > 0 {
		bundle.Metadata.Custom["skipped_blocks"] = diagnosticsSummary(result.Diagnostics)
	}
	return bundle, nil
}

func diagnosticsSummary(diags []netjsonconfig.Diagnostic) string {
	lines := make([]string, 0, len(diags))
	for _, d := range diags {
		lines = append(lines, d.String())
	}
	return strings.Join(lines, "; ")
}

// IsValidationError reports whether err came from schema validation.
func IsValidationError(err error) bool {
	var sv *nxerrors.SchemaViolationError
	return errors.As(err, &sv)
}
