package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	openwrtbackend "github.com/honeybbq/netjsonuci/backend/openwrt"
	"github.com/honeybbq/netjsonuci/pkg/netjsonconfig"
)

func newRenderCmd(global *globalOptions) *cobra.Command {
	var (
		noFiles bool
		strict  bool
	)
	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Render the document as UCI text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := loadBackend(cmd, global, inputArg(args))
			if err != nil {
				return err
			}
			result, err := backend.Render(netjsonconfig.RenderOptions{
				IncludeFiles: !noFiles,
				Strict:       strict,
			})
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), result.Text)
			return err
		},
	}
	cmd.Flags().BoolVar(&noFiles, "no-files", false, "omit the additional files section")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on malformed custom blocks")
	return cmd
}

func newValidateCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input]",
		Short: "Validate the merged document against the NetJSON schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := loadBackend(cmd, global, inputArg(args))
			if err != nil {
				return err
			}
			if err := backend.Validate(); err != nil {
				return fmt.Errorf("validate: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return err
		},
	}
}

func newJSONCmd(global *globalOptions) *cobra.Command {
	var indent int
	cmd := &cobra.Command{
		Use:   "json [input]",
		Short: "Print the merged NetJSON document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := loadBackend(cmd, global, inputArg(args))
			if err != nil {
				return err
			}
			payload, err := backend.JSON(strings.Repeat(" ", indent))
			if err != nil {
				return fmt.Errorf("json: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return err
		},
	}
	cmd.Flags().IntVar(&indent, "indent", 4, "indentation width, 0 for compact output")
	return cmd
}

func newBundleCmd(global *globalOptions) *cobra.Command {
	var (
		outDir   string
		filesDir string
	)
	cmd := &cobra.Command{
		Use:   "bundle [input]",
		Short: "Write one etc/config/<package> file per UCI package",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := loadBackend(cmd, global, inputArg(args))
			if err != nil {
				return err
			}
			bundle, err := backend.Bundle()
			if err != nil {
				return fmt.Errorf("bundle: %w", err)
			}
			if err := writeBundleToFiles(outDir, filesDir, bundle); err != nil {
				return err
			}
			for _, pkg := range bundle.Packages {
				fmt.Fprintln(cmd.OutOrStdout(), pkg.Path())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "output", "o", ".", "directory receiving etc/config")
	cmd.Flags().StringVar(&filesDir, "files-dir", "", "directory for additional files")
	return cmd
}

func newPackagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "packages",
		Short: "List the packages rendered by the OpenWrt backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range openwrtbackend.Packages() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
