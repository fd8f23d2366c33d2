package main

import (
	"fmt"
	"strings"

	"github.com/connctd/merkdown"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const usageExitCode = 2

var conversionFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "out, o",
		Usage: "Output file name without extension",
		Value: "out",
	},
	cli.StringSliceFlag{
		Name:  "format, f",
		Usage: "Output formats: " + strings.Join(formatNames(), ", ") + " (repeatable, default tex)",
	},
	cli.StringFlag{
		Name:  "aspect",
		Usage: "Aspect ratio of the slides: " + strings.Join(merkdown.Aspects, ", "),
		Value: "4:3",
	},
	cli.StringFlag{
		Name:  "template",
		Usage: "Beamer template, the built-in one is used when empty",
	},
	cli.StringFlag{
		Name:  "config, c",
		Usage: "Path to a YAML config file (default " + merkdown.DefaultConfigFile + " if present)",
	},
	cli.BoolFlag{
		Name:  "verbose",
		Usage: "Enable debug logging",
	},
}

var convertCommand = cli.Command{
	Name:         "convert",
	Aliases:      []string{"c"},
	Usage:        "Convert the markdown file into the selected formats",
	ArgsUsage:    "<input.md>",
	Flags:        conversionFlags,
	OnUsageError: onUsageError,
	Action: func(ctx *cli.Context) error {
		opts, err := resolveOptions(ctx)
		if err != nil {
			return err
		}
		return convert(opts)
	},
}

func formatNames() []string {
	names := make([]string, len(merkdown.Formats))
	for i, f := range merkdown.Formats {
		names[i] = string(f)
	}
	return names
}

type options struct {
	input    string
	out      string
	aspect   string
	template string
	formats  []merkdown.Format
}

func (o *options) wants(f merkdown.Format) bool {
	for _, want := range o.formats {
		if want == f {
			return true
		}
	}
	return false
}

func usageError(format string, args ...interface{}) error {
	return cli.NewExitError(fmt.Sprintf(format, args...), usageExitCode)
}

// isSet checks every alias, slice flags only record the name that was used.
func isSet(ctx *cli.Context, names ...string) bool {
	for _, name := range names {
		if ctx.IsSet(name) {
			return true
		}
	}
	return false
}

// splitPositionals separates the input file from format names listed after
// -f, so "-f pptx odp talk.md" selects both formats.
func splitPositionals(args []string, formatSet bool) (input string, formats []string, err error) {
	var rest []string
	for _, arg := range args {
		if formatSet && merkdown.Format(strings.ToLower(arg)).Valid() {
			formats = append(formats, arg)
			continue
		}
		rest = append(rest, arg)
	}
	switch {
	case len(rest) == 0:
		return "", nil, usageError("missing input markdown file")
	case len(rest) > 1:
		return "", nil, usageError("expected a single input markdown file, got %s", strings.Join(rest, " "))
	}
	return rest[0], formats, nil
}

// resolveOptions merges the defaults, the config file and the flags, in that
// order of precedence.
func resolveOptions(ctx *cli.Context) (*options, error) {
	if ctx.Bool("verbose") {
		log.SetLevel(log.DebugLevel)
	}

	formatSet := isSet(ctx, "format", "f")
	input, extraFormats, err := splitPositionals(ctx.Args(), formatSet)
	if err != nil {
		return nil, err
	}

	cfg, err := merkdown.LoadConfig(ctx.String("config"))
	if err != nil {
		return nil, err
	}
	if isSet(ctx, "out", "o") {
		cfg.Out = ctx.String("out")
	}
	if formatSet {
		cfg.Formats = append(ctx.StringSlice("format"), extraFormats...)
	}
	if isSet(ctx, "aspect") {
		cfg.Aspect = ctx.String("aspect")
	}
	if isSet(ctx, "template") {
		cfg.Template = ctx.String("template")
	}

	formats, err := merkdown.ParseFormats(cfg.Formats)
	if err != nil {
		return nil, usageError("%v", err)
	}
	if len(formats) == 0 {
		return nil, usageError("at least one format is required")
	}
	if !merkdown.ValidAspect(cfg.Aspect) {
		return nil, usageError("invalid aspect %q, expected one of %s", cfg.Aspect, strings.Join(merkdown.Aspects, ", "))
	}
	if cfg.Out == "" {
		return nil, usageError("output name must not be empty")
	}

	opts := &options{
		input:    input,
		out:      cfg.Out,
		aspect:   cfg.Aspect,
		template: cfg.Template,
		formats:  formats,
	}
	log.WithFields(log.Fields{
		"input":   opts.input,
		"out":     opts.out,
		"formats": formats,
		"aspect":  opts.aspect,
	}).Debug("resolved options")
	return opts, nil
}

// convert parses the input once and runs every requested emitter on it.
func convert(opts *options) error {
	pres, err := merkdown.Parse(opts.input)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"input":  opts.input,
		"title":  pres.Title,
		"slides": len(pres.Slides),
	}).Debug("parsed presentation")

	for _, f := range merkdown.Formats {
		if !opts.wants(f) {
			continue
		}
		path := opts.out + "." + string(f)
		switch f {
		case merkdown.FormatPPTX:
			_, err = merkdown.ToPPTX(pres, path)
		case merkdown.FormatODP:
			_, err = merkdown.ToODP(pres, path)
		case merkdown.FormatTeX:
			_, err = merkdown.ToTeX(pres, opts.template, opts.aspect, path)
		}
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{"format": f, "path": path}).Info("wrote presentation")
	}
	return nil
}
