package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	openwrtbackend "github.com/honeybbq/netjsonuci/backend/openwrt"
	"github.com/honeybbq/netjsonuci/pkg/netjsonconfig"
)

type globalOptions struct {
	templates []string
	verbose   bool
	byID      bool
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:           "netjsonuci",
		Short:         "Convert NetJSON DeviceConfiguration documents into OpenWrt UCI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	fs := cmd.PersistentFlags()
	fs.StringSliceVarP(&opts.templates, "template", "t", nil, "template document merged under the input (repeatable)")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")
	fs.BoolVar(&opts.byID, "merge-by-name", false, "merge template list items sharing a name instead of appending")

	cmd.AddCommand(
		newRenderCmd(opts),
		newValidateCmd(opts),
		newJSONCmd(opts),
		newBundleCmd(opts),
		newPackagesCmd(),
	)
	return cmd
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: !isTerminal(w)}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// isTerminal 判断日志输出是否为终端，非终端时关闭颜色。
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// loadBackend reads the input (a path or "-" for stdin) plus the templates.
func loadBackend(cmd *cobra.Command, opts *globalOptions, input string) (*openwrtbackend.Backend, error) {
	payload, err := readInput(cmd.InOrStdin(), input)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	templates := make([]any, 0, len(opts.templates))
	for _, path := range opts.templates {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read template %q: %w", path, err)
		}
		templates = append(templates, data)
	}
	backendOpts := []openwrtbackend.Option{
		openwrtbackend.WithLogger(newLogger(cmd.ErrOrStderr(), opts.verbose)),
		openwrtbackend.WithTemplates(templates...),
	}
	if opts.byID {
		backendOpts = append(backendOpts, openwrtbackend.WithListMerge(netjsonconfig.ListByIdentifier))
	}
	return openwrtbackend.New(payload, backendOpts...)
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
