package script

// This file defines the environment available to every expression. The
// system builtins are initialized once per process and cloned per
// evaluation; the structure lookups are bound to the evaluation's live
// proxy.

import (
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/ardnew/mung"
)

// Names bound to the live structure in every expression environment.
const (
	fnDig         = "dig"
	fnLocalDig    = "local_dig"
	fnExists      = "exists"
	fnLocalExists = "local_exists"
	fnEnv         = "env"
)

// builtins returns the lazily-initialized system builtins shared by all
// evaluations.
var builtins = sync.OnceValue(func() map[string]any {
	return map[string]any{
		"platform": getPlatform(),
		"target":   getTarget(),
		"hostname": getHostname(),
		"cwd":      getCwd,

		"path": map[string]any{
			"abs":  pathAbs,
			"cat":  pathCat,
			"base": filepath.Base,
			"dir":  filepath.Dir,
		},

		"mung": map[string]any{
			"prefix":   mungPrefix,
			"prefixif": mungPrefixIf,
		},
	}
})

// newEnv returns an expression environment whose structure lookups read
// from e's current proxy.
func newEnv(e *evaluator) map[string]any {
	env := maps.Clone(builtins())

	env[fnDig] = func(path ...any) any {
		v, _ := e.proxy.Dig(path...)

		return v
	}
	env[fnLocalDig] = func(path ...any) any {
		v, _ := e.proxy.LocalDig(path...)

		return v
	}
	env[fnExists] = func(path ...any) bool {
		return e.proxy.Has(path...)
	}
	env[fnLocalExists] = func(path ...any) bool {
		return e.proxy.LocalHas(path...)
	}
	env[fnEnv] = envFunc(e.processEnv)

	return env
}

// envShape is the environment used to type-check expressions at compile
// time. Its functions are never called.
var envShape = sync.OnceValue(func() map[string]any {
	return newEnv(&evaluator{})
})

// EnvKeys returns the sorted top-level names available to expressions.
func EnvKeys() []string {
	return slices.Sorted(maps.Keys(envShape()))
}

// EnvLookup returns the sorted names of the member map at a dotted path in
// the expression environment, or nil if the path does not name a map.
func EnvLookup(path string) []string {
	if path == "" {
		return EnvKeys()
	}

	var cur any = envShape()

	for seg := range strings.SplitSeq(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}

		if cur, ok = m[seg]; !ok {
			return nil
		}
	}

	if m, ok := cur.(map[string]any); ok {
		return slices.Sorted(maps.Keys(m))
	}

	return nil
}

// ---------------------------------------------------------------------------
// System information helpers
// ---------------------------------------------------------------------------

// target identifies an operating system and instruction set architecture.
type target struct {
	OS   string
	Arch string
}

// getTarget returns the host target using GNU GCC/LLVM naming conventions.
func getTarget() target {
	t := getPlatform()

	switch t.Arch {
	case "386":
		t.Arch = "i386"
	case "amd64":
		t.Arch = "x86_64"
	case "arm64":
		if t.OS != "darwin" {
			t.Arch = "aarch64"
		}
	case "mipsle":
		t.Arch = "mipsel"
	}

	return t
}

// getPlatform returns the host target using Go conventions.
func getPlatform() target {
	return target{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}
}

func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return ""
	}

	return hostname
}

func getCwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return pathAbs(".")
	}

	return cwd
}

func pathAbs(path string) string {
	p, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return p
}

func pathCat(elem ...string) string {
	return filepath.Join(elem...)
}

// ---------------------------------------------------------------------------
// PATH-like string manipulation (mung)
// ---------------------------------------------------------------------------

func mungPrefix(key string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(key),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

func mungPrefixIf(
	key string,
	predicate func(string) bool,
	prefix ...string,
) string {
	return mung.Make(
		mung.WithSubjectItems(key),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(predicate),
	).String()
}

// ---------------------------------------------------------------------------
// Environment variable function
// ---------------------------------------------------------------------------

// processEnvMap converts a "KEY=VALUE" string slice to a map.
// If envList is nil, os.Environ() is used.
func processEnvMap(envList []string) map[string]string {
	if envList == nil {
		envList = os.Environ()
	}

	result := make(map[string]string, len(envList))

	for _, entry := range envList {
		if key, value, ok := strings.Cut(entry, "="); ok {
			result[key] = value
		}
	}

	return result
}

// envFunc returns the env() function giving expressions access to the
// process environment.
func envFunc(processEnv map[string]string) func(string) string {
	return func(key string) string {
		return processEnv[key]
	}
}
