package cli

import (
	"flag"
	"fmt"
	"io"
)

const versionString = "0.3.0"

type cliOptions struct {
	configPath  string
	input       string
	reduce      int
	noReduce    bool
	method      string
	seed        uint64
	top         int
	parallel    bool
	markdown    string
	attributes  string
	watch       bool
	metricsAddr string
	verbose     bool
	version     bool
	args        []string

	// set records which flags appeared on the command line.
	set map[string]bool
}

func parseOptions(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("spreadscope", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: spreadscope [flags] [input]")
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.configPath, "config", "", "Path to TOML config file")
	fs.StringVar(&opts.input, "input", "", "Interaction edge list (source target [weight] per line)")
	fs.IntVar(&opts.reduce, "reduce", 0, "Reduce the graph to at most this many nodes")
	fs.BoolVar(&opts.noReduce, "no-reduce", false, "Analyse the full graph without reduction")
	fs.StringVar(&opts.method, "method", "", "Reduction method: degree or random")
	fs.Uint64Var(&opts.seed, "seed", 0, "Seed for random reduction")
	fs.IntVar(&opts.top, "top", 0, "Number of top spreaders to report")
	fs.BoolVar(&opts.parallel, "parallel", false, "Compute centrality metrics concurrently")
	fs.StringVar(&opts.markdown, "markdown", "", "Write a markdown report to this path")
	fs.StringVar(&opts.attributes, "attributes", "", "Write per-node attributes TSV to this path")
	fs.BoolVar(&opts.watch, "watch", false, "Re-run the analysis when the input changes")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve /metrics and /health on this address")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	opts.args = fs.Args()

	if len(opts.args) > 1 {
		return cliOptions{}, fmt.Errorf("expected at most one input argument, got %d", len(opts.args))
	}
	if len(opts.args) == 1 && opts.input != "" {
		return cliOptions{}, fmt.Errorf("input given both as -input and as an argument")
	}
	if opts.set["reduce"] && opts.noReduce {
		return cliOptions{}, fmt.Errorf("-reduce cannot be combined with -no-reduce")
	}
	return opts, nil
}
