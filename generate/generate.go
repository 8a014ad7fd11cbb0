// Package generate renders manifests and Go packages into TypeScript files.
//
// Rendering and writing are separate steps so the same outputs can be
// written to disk, printed, or compared against what is already on disk:
//
//	outputs, err := generate.RenderManifests(ctx, cfg, paths)
//	written, err := generate.Write(cfg, outputs, os.Stdout)
//	result, err := generate.Check(cfg, outputs)
package generate

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teranos/tspoet/am"
	"github.com/teranos/tspoet/errors"
	"github.com/teranos/tspoet/gotypes"
	"github.com/teranos/tspoet/logger"
	"github.com/teranos/tspoet/manifest"
	"github.com/teranos/tspoet/poet"
)

// Output is one rendered module
type Output struct {
	// Name is the module path without extension, such as models/user
	Name string

	// Source is the manifest file or Go package the module came from
	Source string

	Content []byte

	// Imports counts the import statements, Members the top-level members
	Imports int
	Members int
}

// Path returns where the output lives under dir
func (o Output) Path(dir, extension string) string {
	return filepath.Join(dir, filepath.FromSlash(o.Name)+extension)
}

// ExpandInputs replaces every directory argument with the manifests found
// beneath it, sorted. File arguments are kept as given.
func ExpandInputs(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "input %s", arg)
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}

		var found []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && manifest.IsManifestPath(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to scan %s", arg)
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	if len(out) == 0 {
		return nil, errors.WithHint(
			errors.New("no manifests found"),
			"pass manifest files or directories containing .yaml, .toml or .json manifests",
		)
	}
	return out, nil
}

// RenderManifests decodes and renders the manifests at paths concurrently,
// at most cfg.Output.Concurrency at a time (GOMAXPROCS when zero). Outputs
// are returned in input order. Two manifests may not name the same module.
func RenderManifests(ctx context.Context, cfg *am.Config, paths []string) ([]Output, error) {
	log := logger.ComponentLogger("generate")
	start := time.Now()

	outputs := make([]Output, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency(cfg, len(paths)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fileLog := logger.LoggerFromContext(logger.WithFile(logger.WithComponent(gctx, "generate"), path))

			f, err := manifest.DecodeFile(path)
			if err != nil {
				return err
			}
			out, err := RenderFile(cfg, f)
			if err != nil {
				return errors.Wrapf(err, "manifest %s", path)
			}
			fileLog.Debugw("rendered manifest",
				logger.FieldModule, out.Name,
				logger.FieldImports, out.Imports,
				logger.FieldSize, len(out.Content))
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := checkDuplicates(outputs); err != nil {
		return nil, err
	}

	log.Debugw("rendered manifests",
		logger.FieldCount, len(outputs),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return outputs, nil
}

// RenderFile renders one decoded manifest
func RenderFile(cfg *am.Config, f *manifest.File) (Output, error) {
	spec, err := f.ToFileSpec(cfg.Output.Header)
	if err != nil {
		return Output{}, err
	}
	out, err := render(cfg, spec)
	if err != nil {
		return Output{}, err
	}
	out.Source = f.Path()
	return out, nil
}

// RenderPackages converts the Go packages matching patterns, resolved from
// dir, into one module per package plus a barrel index module.
func RenderPackages(ctx context.Context, cfg *am.Config, dir string, patterns []string) ([]Output, error) {
	gen := gotypes.New(cfg.GoTypes)
	pkgs, err := gen.Load(ctx, dir, patterns...)
	if err != nil {
		return nil, err
	}

	outputs := make([]Output, 0, len(pkgs)+1)
	for _, pkg := range pkgs {
		if pkg.Name == gotypes.IndexModule {
			return nil, errors.Newf("package %s collides with the %s module", pkg.Path, gotypes.IndexModule)
		}
		spec, err := pkg.FileSpec(header(cfg))
		if err != nil {
			return nil, errors.Wrapf(err, "package %s", pkg.Path)
		}
		out, err := render(cfg, spec)
		if err != nil {
			return nil, errors.Wrapf(err, "package %s", pkg.Path)
		}
		out.Source = pkg.Path
		outputs = append(outputs, out)
	}

	index, err := gen.IndexFile(header(cfg), pkgs)
	if err != nil {
		return nil, err
	}
	out, err := render(cfg, index)
	if err != nil {
		return nil, err
	}
	return append(outputs, out), nil
}

func render(cfg *am.Config, spec *poet.FileSpec) (Output, error) {
	var buf bytes.Buffer
	imports, err := spec.RenderWithImports(&buf, cfg.WriterOptions()...)
	if err != nil {
		return Output{}, err
	}
	return Output{
		Name:    spec.Name,
		Content: buf.Bytes(),
		Imports: len(importSources(imports)),
		Members: len(spec.Members),
	}, nil
}

// importSources returns the distinct modules imported from
func importSources(imports []poet.ImportedSymbol) map[string]bool {
	sources := make(map[string]bool, len(imports))
	for _, imp := range imports {
		sources[imp.Source()] = true
	}
	return sources
}

func header(cfg *am.Config) string {
	if cfg.Output.Header == manifest.NoHeader {
		return ""
	}
	return cfg.Output.Header
}

func concurrency(cfg *am.Config, jobs int) int {
	limit := cfg.Output.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	return max(1, min(limit, jobs))
}

func checkDuplicates(outputs []Output) error {
	seen := make(map[string]string, len(outputs))
	for _, o := range outputs {
		if prev, ok := seen[o.Name]; ok {
			return errors.Newf("%s and %s both render module %s", prev, o.Source, o.Name)
		}
		seen[o.Name] = o.Source
	}
	return nil
}
