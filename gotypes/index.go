package gotypes

import (
	"sort"

	"github.com/teranos/tspoet/poet"
)

// IndexModule is the module name of the barrel file
const IndexModule = "index"

// IndexFile creates a barrel module re-exporting the types of every package:
//
//	// Types from models
//	export type {
//	  User,
//	} from './models';
//
// Packages without declarations are left out.
func (g *Generator) IndexFile(header string, pkgs []*Package) (*poet.FileSpec, error) {
	sorted := make([]*Package, len(pkgs))
	copy(sorted, pkgs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	b := poet.File(IndexModule)
	if header != "" {
		b.AddComment("%L", header)
	}

	for _, pkg := range sorted {
		names := pkg.TypeNames()
		if len(names) == 0 {
			continue
		}
		sort.Strings(names)

		cb := poet.NewCodeBlock().
			Add("// Types from %L\n", pkg.Name).
			Add("export type {\n%>")
		for _, name := range names {
			cb.Add("%L,\n", name)
		}
		cb.Add("%<} from %S;\n", g.cfg.ModulePrefix+pkg.Name)

		block, err := cb.Build()
		if err != nil {
			return nil, err
		}
		b.AddCode("%L", block)
	}
	return b.Build()
}
