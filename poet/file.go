package poet

import (
	"io"
	"sort"
	"strings"

	"github.com/teranos/tspoet/errors"
	"github.com/teranos/tspoet/logger"
)

// FileSpec is one generated TypeScript module: a header comment, the import
// block and its members.
type FileSpec struct {
	// Name is the module path of the file without extension, such as
	// "models/user". Imports from this module are not emitted.
	Name    string
	Comment CodeBlock
	Members []CodeBlock
}

// FileBuilder builds a FileSpec.
type FileBuilder struct {
	name    string
	comment *CodeBlockBuilder
	members []CodeBlock
	err     error
}

func File(name string) *FileBuilder {
	return &FileBuilder{name: name, comment: NewCodeBlock()}
}

// AddComment appends to the header comment.
func (b *FileBuilder) AddComment(format string, args ...interface{}) *FileBuilder {
	b.comment.Add(format, args...)
	return b
}

// AddDeclarations appends declarations as members.
func (b *FileBuilder) AddDeclarations(decls ...Declaration) *FileBuilder {
	for _, d := range decls {
		b.AddCode("%L", d)
	}
	return b
}

// AddCode appends a free-standing member such as a const statement.
func (b *FileBuilder) AddCode(format string, args ...interface{}) *FileBuilder {
	if b.err != nil {
		return b
	}
	cb, err := CodeBlockOf(format, args...)
	if err != nil {
		b.err = err
		return b
	}
	b.members = append(b.members, cb)
	return b
}

func (b *FileBuilder) Build() (*FileSpec, error) {
	if b.err != nil {
		return nil, b.err
	}
	if strings.TrimSpace(b.name) == "" {
		return nil, errors.NewMalformedCodef("file needs a module name")
	}
	comment, err := b.comment.Build()
	if err != nil {
		return nil, errors.Wrapf(err, "header comment of %s", b.name)
	}
	return &FileSpec{
		Name:    b.name,
		Comment: comment,
		Members: append([]CodeBlock(nil), b.members...),
	}, nil
}

// RequiredImports renders the members into a discarding writer and returns
// the imports they need, excluding the file's own module.
func (f *FileSpec) RequiredImports(opts ...WriterOption) ([]ImportedSymbol, []Collision, error) {
	collector := NewCodeWriter(io.Discard, opts...)
	if err := f.emitMembers(collector); err != nil {
		return nil, nil, err
	}
	if err := collector.Close(); err != nil {
		return nil, nil, err
	}

	var imports []ImportedSymbol
	for _, imp := range collector.RequiredImports() {
		if f.isOwnModule(imp.Source()) {
			continue
		}
		imports = append(imports, imp)
	}
	return imports, collector.Collisions(), nil
}

// Render writes the file to out. Imports are collected in a first pass over
// the members so the import block can precede them.
func (f *FileSpec) Render(out io.Writer, opts ...WriterOption) error {
	_, err := f.RenderWithImports(out, opts...)
	return err
}

// RenderWithImports is Render that also returns the imports it wrote.
func (f *FileSpec) RenderWithImports(out io.Writer, opts ...WriterOption) ([]ImportedSymbol, error) {
	log := logger.ComponentLogger("poet.file")

	imports, collisions, err := f.RequiredImports(opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "collect imports of %s", f.Name)
	}
	for _, c := range collisions {
		kept := ""
		if k, ok := c.Kept.(ImportedSymbol); ok {
			kept = k.Source()
		}
		log.Warnw("import name collision, keeping first use",
			logger.FieldFile, f.Name,
			logger.FieldSymbol, c.Name,
			logger.FieldKept, kept,
			logger.FieldDropped, c.Dropped.Source(),
		)
	}

	w := NewCodeWriter(out, opts...)
	if !f.Comment.IsEmpty() {
		if err := w.EmitComment(f.Comment, nil); err != nil {
			return nil, err
		}
		if err := w.Emit("\n"); err != nil {
			return nil, err
		}
	}
	if len(imports) > 0 {
		if err := emitImports(w, imports); err != nil {
			return nil, err
		}
		if err := w.Emit("\n"); err != nil {
			return nil, err
		}
	}
	if err := f.emitMembers(w); err != nil {
		return nil, errors.Wrapf(err, "render %s", f.Name)
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	log.Debugw("rendered file",
		logger.FieldFile, f.Name,
		logger.FieldImports, len(imports),
		logger.FieldCount, len(f.Members),
	)
	return imports, nil
}

// WriteTo implements io.WriterTo with default writer options.
func (f *FileSpec) WriteTo(out io.Writer) (int64, error) {
	cw := &countingWriter{w: out}
	err := f.Render(cw)
	return cw.n, err
}

func (f *FileSpec) String() string {
	var sb strings.Builder
	_ = f.Render(&sb)
	return sb.String()
}

func (f *FileSpec) emitMembers(w *CodeWriter) error {
	for i, m := range f.Members {
		if i > 0 {
			if err := w.Emit("\n"); err != nil {
				return err
			}
		}
		if err := w.EmitCode(m, nil); err != nil {
			return err
		}
	}
	return nil
}

func (f *FileSpec) isOwnModule(source string) bool {
	return strings.TrimPrefix(source, "./") == strings.TrimPrefix(f.Name, "./")
}

type moduleImports struct {
	defaultName string
	namespaces  []string
	named       []string
}

// emitImports writes one statement per module, modules and names sorted:
//
//	import Default, { A, B } from 'module';
//	import * as NS from 'module';
func emitImports(w *CodeWriter, imports []ImportedSymbol) error {
	bySource := make(map[string]*moduleImports)
	var sources []string
	for _, imp := range imports {
		m, ok := bySource[imp.Source()]
		if !ok {
			m = &moduleImports{}
			bySource[imp.Source()] = m
			sources = append(sources, imp.Source())
		}
		switch imp.Kind() {
		case ImportDefault:
			m.defaultName = imp.ImportedName()
		case ImportNamespace:
			m.namespaces = append(m.namespaces, imp.ImportedName())
		default:
			m.named = append(m.named, imp.ImportedName())
		}
	}
	sort.Strings(sources)

	for _, source := range sources {
		m := bySource[source]
		sort.Strings(m.namespaces)
		sort.Strings(m.named)

		for _, ns := range m.namespaces {
			if err := w.emitf(nil, "import * as %L from %S;\n", ns, source); err != nil {
				return err
			}
		}
		if m.defaultName == "" && len(m.named) == 0 {
			continue
		}

		b := NewCodeBlock().Add("import ")
		if m.defaultName != "" {
			b.Add("%L", m.defaultName)
			if len(m.named) > 0 {
				b.Add(", ")
			}
		}
		if len(m.named) > 0 {
			b.Add("{")
			for i, name := range m.named {
				if i > 0 {
					b.Add(",")
				}
				b.Add("%W%L", name)
			}
			b.Add(" }")
		}
		b.Add(" from %S;\n", source)
		cb, err := b.Build()
		if err != nil {
			return err
		}
		if err := w.EmitCode(cb, nil); err != nil {
			return err
		}
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
