package cmd

import "github.com/ardnew/nestkit/pkg"

var (
	ErrJSONMarshal = pkg.NewError("marshal JSON")
	ErrYAMLMarshal = pkg.NewError("marshal YAML")
	ErrYAMLBase    = pkg.NewError("decode base structure")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
	ErrInvalidPath = pkg.NewError("invalid lookup path")
	ErrNotFound    = pkg.NewError("no value at path")
)
