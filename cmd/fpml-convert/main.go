// Command fpml-convert migrates an FpML document to another release.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gpan-isda/fpml"
	"github.com/gpan-isda/fpml/dom"
	fpmlerrors "github.com/gpan-isda/fpml/errors"
)

// Exit codes: 1 generic failure, 2 input document does not parse,
// 3 no conversion path to the target release.
const (
	exitFailure = 1
	exitParse   = 2
	exitNoPath  = 3
)

var errParse = errors.New("parse failure")

type options struct {
	target            string
	variant           string
	catalogPath       string
	outPath           string
	referenceCurrency string
	quantoCurrency1   string
	quantoCurrency2   string
	quantoBasis       string
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	var opts options
	cmd := &cobra.Command{
		Use:   "fpml-convert [flags] <document.xml>",
		Short: "Convert an FpML document between releases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.target, "target", "", "target release version, e.g. 5-13 (required)")
	cmd.Flags().StringVar(&opts.variant, "variant", "", "target variant: confirmation or reporting")
	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "YAML catalog of additional releases")
	cmd.Flags().StringVar(&opts.outPath, "out", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.referenceCurrency, "reference-currency", "", "reference currency for fx feature conversion")
	cmd.Flags().StringVar(&opts.quantoCurrency1, "quanto-currency1", "", "first quanto currency")
	cmd.Flags().StringVar(&opts.quantoCurrency2, "quanto-currency2", "", "second quanto currency")
	cmd.Flags().StringVar(&opts.quantoBasis, "quanto-basis", "Currency1PerCurrency2", "quanto quote basis")
	cobra.CheckErr(cmd.MarkFlagRequired("target"))

	if err := cmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, errParse) {
		return exitParse
	}
	if code, ok := fpmlerrors.CodeOf(err); ok && code == fpmlerrors.CodeNoPath {
		return exitNoPath
	}
	return exitFailure
}

func run(opts options, path string) error {
	registry, err := buildRegistry(opts.catalogPath)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	doc, err := dom.Parse(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", errParse, path, err)
	}

	source := registry.ReleaseForDocument(doc)
	if source != nil {
		slog.Info("detected source release", "release", source.String())
	}

	target, err := resolveTarget(registry, doc, opts)
	if err != nil {
		return err
	}

	out, err := registry.Convert(doc, target, buildHelper(opts))
	if err != nil {
		return err
	}
	slog.Info("converted document", "target", target.String())

	return writeDocument(out, opts.outPath)
}

func buildRegistry(catalogPath string) (*fpml.Registry, error) {
	if catalogPath == "" {
		return fpml.DefaultRegistry(), nil
	}
	extra, err := fpml.LoadCatalogFile(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", catalogPath, err)
	}
	releases := append(fpml.DefaultCatalog(), extra...)
	registry := fpml.NewRegistry(releases...)
	if err := registry.RegisterStandardConversions(); err != nil {
		return nil, err
	}
	slog.Info("loaded catalog", "path", catalogPath, "releases", len(extra))
	return registry, nil
}

func resolveTarget(registry *fpml.Registry, doc *dom.Document, opts options) (*fpml.Release, error) {
	if opts.variant != "" {
		variant, ok := fpml.ParseVariant(opts.variant)
		if !ok {
			return nil, fmt.Errorf("unknown variant %q", opts.variant)
		}
		target := registry.Release(opts.target, variant)
		if target == nil {
			return nil, fmt.Errorf("unknown release %s (%s)", opts.target, opts.variant)
		}
		return target, nil
	}
	target := registry.CompatibleRelease(doc, opts.target)
	if target == nil {
		return nil, fmt.Errorf("unknown release %s", opts.target)
	}
	return target, nil
}

// buildHelper maps the capability flags onto Helper funcs, leaving
// capabilities without a flag unset so missing ones fail loudly.
func buildHelper(opts options) *fpml.Helper {
	helper := &fpml.Helper{}
	if opts.referenceCurrency != "" {
		helper.ReferenceCurrency = func(*dom.Element) (string, error) {
			return opts.referenceCurrency, nil
		}
	}
	if opts.quantoCurrency1 != "" && opts.quantoCurrency2 != "" {
		helper.QuantoTerms = func(*dom.Element) (fpml.QuantoTerms, error) {
			return fpml.QuantoTerms{
				Currency1:  opts.quantoCurrency1,
				Currency2:  opts.quantoCurrency2,
				QuoteBasis: opts.quantoBasis,
			}, nil
		}
	}
	return helper
}

func writeDocument(doc *dom.Document, path string) error {
	if path == "" {
		return doc.WriteTo(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := doc.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
