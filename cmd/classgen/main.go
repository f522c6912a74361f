package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "classgen",
		Short: "Generate class registration code from a YAML catalog",
		Long: `classgen reads a YAML class catalog and writes a gofmt'd Go file with a
RegisterClasses(r *class.Registry) error function that defines every class on a
registry, parents before children.`,
		SilenceUsage: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(newGenerateCmd(), newVersionCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	var (
		catalogPath string
		outPath     string
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the registration file for a catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(catalogPath) == "" {
				return fmt.Errorf("missing --catalog")
			}
			if strings.TrimSpace(outPath) == "" {
				return fmt.Errorf("missing --out")
			}

			level := zerolog.InfoLevel
			if quiet {
				level = zerolog.WarnLevel
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}).
				Level(level)

			if err := generate(catalogPath, outPath); err != nil {
				logger.Error().Err(err).Str("catalog", catalogPath).Msg("generation failed")
				return err
			}
			logger.Info().Str("catalog", catalogPath).Str("out", outPath).Msg("generated")
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "path to the YAML class catalog")
	cmd.Flags().StringVar(&outPath, "out", "", "output .gen.go file path")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only log failures")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "classgen %s\n", version)
		},
	}
}

// generate runs genCatalog and turns its panics into an error.
func generate(catalogPath, outPath string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("classgen: %s", panicMessage(rec))
		}
	}()
	genCatalog(catalogPath, outPath)
	return nil
}

func run(args []string, stdout, stderr io.Writer) error {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	return root.Execute()
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
