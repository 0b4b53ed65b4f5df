package netjsonconfig

// RenderOptions controls one render call.
type RenderOptions struct {
	IncludeFiles   bool // Append the "additional files" section to the UCI text
	SkipValidation bool // Skip schema validation if true
	Strict         bool // Fail on skipped custom blocks instead of reporting them
}

// DefaultRenderOptions matches render(files=True).
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{IncludeFiles: true}
}
