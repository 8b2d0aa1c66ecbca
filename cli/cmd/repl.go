package cmd

import (
	"context"
	"io"

	"github.com/ardnew/nestkit/cli/cmd/repl"
	"github.com/ardnew/nestkit/log"
	"github.com/ardnew/nestkit/pkg"
)

// Repl starts an interactive session. The session begins with the content of
// the source files, if any; stdin is never read as a source.
type Repl struct{}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var src string

	if files, ok := sourceFilesFrom(ctx).(*sourceFiles); ok && files != nil {
		data, err := io.ReadAll(io.MultiReader(files.read...))
		if err != nil {
			return err
		}

		src = string(data)
	}

	cacheDir := pkg.CacheDir()
	if ktx := kongContextFrom(ctx); ktx != nil {
		if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok {
			cacheDir = dir
		}
	}

	return repl.Run(ctx, src, cacheDir, log.Default(), scriptOptions(ctx)...)
}
