package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/nestkit/log"
)

// Fmt builds the source files and renders the structure in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as native script syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
}

// Native renders the structure as script syntax.
type Native struct {
	Indent int `default:"2" help:"Indent width for formatted output (0 for a single line)" short:"i"`
}

// Run executes the native command.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := build(ctx)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "format", slog.String("format", "native"))

	return renderNative(outputFrom(ctx), m, f.Indent)
}

// JSON renders the structure as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output (0 for compact)" short:"i"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := build(ctx)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "format", slog.String("format", "json"))

	return renderJSON(outputFrom(ctx), m, j.Indent)
}

// YAML renders the structure as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output (0 for flow style)" short:"i"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := build(ctx)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "format", slog.String("format", "yaml"))

	return renderYAML(ctx, outputFrom(ctx), m, y.Indent)
}
