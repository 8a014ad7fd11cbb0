// Package manifest describes TypeScript files declaratively.
//
// A manifest is a YAML, TOML or JSON document naming one output module and
// the declarations it contains. Types are written as type expressions (see
// ParseType), symbols in the compact form accepted by poet.SymbolFrom.
//
//	name: models/user
//	declarations:
//	  - kind: interface
//	    name: User
//	    modifiers: [export]
//	    properties:
//	      - { name: id, type: "UUID@./types", modifiers: [readonly] }
//	      - { name: tags, type: "Tag@./types[]" }
package manifest

// Declaration kinds
const (
	KindAlias     = "alias"
	KindInterface = "interface"
	KindClass     = "class"
	KindEnum      = "enum"
	KindFunction  = "function"
	KindCode      = "code"
)

// File is one output module
type File struct {
	// Name is the module path without extension, relative to the output dir
	Name string `yaml:"name" toml:"name"`

	// Header overrides the configured file comment; "-" suppresses it
	Header string `yaml:"header,omitempty" toml:"header,omitempty"`

	Declarations []Declaration `yaml:"declarations" toml:"declarations"`

	// path the manifest was decoded from, empty for in-memory manifests
	path string
}

// Path returns the file the manifest was decoded from
func (f *File) Path() string { return f.path }

// Declaration is a top-level member. Which fields apply depends on Kind.
type Declaration struct {
	Kind       string      `yaml:"kind" toml:"kind"`
	Name       string      `yaml:"name,omitempty" toml:"name,omitempty"`
	Doc        string      `yaml:"doc,omitempty" toml:"doc,omitempty"`
	Modifiers  []string    `yaml:"modifiers,omitempty" toml:"modifiers,omitempty"`
	Decorators []Decorator `yaml:"decorators,omitempty" toml:"decorators,omitempty"`
	TypeParams []TypeParam `yaml:"type_params,omitempty" toml:"type_params,omitempty"`

	// alias
	Type string `yaml:"type,omitempty" toml:"type,omitempty"`

	// interface (any number) and class (at most one)
	Extends []string `yaml:"extends,omitempty" toml:"extends,omitempty"`

	// class
	Implements  []string  `yaml:"implements,omitempty" toml:"implements,omitempty"`
	Constructor *Function `yaml:"constructor,omitempty" toml:"constructor,omitempty"`

	// interface and class
	Properties []Property `yaml:"properties,omitempty" toml:"properties,omitempty"`
	Methods    []Function `yaml:"methods,omitempty" toml:"methods,omitempty"`

	// enum
	Constants []Constant `yaml:"constants,omitempty" toml:"constants,omitempty"`

	// function
	Params  []Param `yaml:"params,omitempty" toml:"params,omitempty"`
	Returns string  `yaml:"returns,omitempty" toml:"returns,omitempty"`

	// function and code
	Body []string `yaml:"body,omitempty" toml:"body,omitempty"`
}

// TypeParam declares a type variable
type TypeParam struct {
	Name    string   `yaml:"name" toml:"name"`
	Extends []string `yaml:"extends,omitempty" toml:"extends,omitempty"`
	Union   bool     `yaml:"union,omitempty" toml:"union,omitempty"` // combine bounds with | instead of &
	KeyOf   bool     `yaml:"keyof,omitempty" toml:"keyof,omitempty"`
}

// Property is a field of an interface or class
type Property struct {
	Name        string      `yaml:"name" toml:"name"`
	Type        string      `yaml:"type" toml:"type"`
	Doc         string      `yaml:"doc,omitempty" toml:"doc,omitempty"`
	Modifiers   []string    `yaml:"modifiers,omitempty" toml:"modifiers,omitempty"`
	Decorators  []Decorator `yaml:"decorators,omitempty" toml:"decorators,omitempty"`
	Optional    bool        `yaml:"optional,omitempty" toml:"optional,omitempty"`
	Initializer string      `yaml:"initializer,omitempty" toml:"initializer,omitempty"`
}

// Function is a method, constructor or top-level function
type Function struct {
	Name       string      `yaml:"name,omitempty" toml:"name,omitempty"`
	Doc        string      `yaml:"doc,omitempty" toml:"doc,omitempty"`
	Modifiers  []string    `yaml:"modifiers,omitempty" toml:"modifiers,omitempty"`
	Decorators []Decorator `yaml:"decorators,omitempty" toml:"decorators,omitempty"`
	TypeParams []TypeParam `yaml:"type_params,omitempty" toml:"type_params,omitempty"`
	Params     []Param     `yaml:"params,omitempty" toml:"params,omitempty"`
	Returns    string      `yaml:"returns,omitempty" toml:"returns,omitempty"`
	Body       []string    `yaml:"body,omitempty" toml:"body,omitempty"`
}

// Param is a function parameter
type Param struct {
	Name       string      `yaml:"name" toml:"name"`
	Type       string      `yaml:"type" toml:"type"`
	Optional   bool        `yaml:"optional,omitempty" toml:"optional,omitempty"`
	Rest       bool        `yaml:"rest,omitempty" toml:"rest,omitempty"`
	Default    string      `yaml:"default,omitempty" toml:"default,omitempty"`
	Modifiers  []string    `yaml:"modifiers,omitempty" toml:"modifiers,omitempty"`
	Decorators []Decorator `yaml:"decorators,omitempty" toml:"decorators,omitempty"`
}

// Constant is an enum member. Value is emitted verbatim, String is quoted.
type Constant struct {
	Name   string `yaml:"name" toml:"name"`
	Value  string `yaml:"value,omitempty" toml:"value,omitempty"`
	String string `yaml:"string,omitempty" toml:"string,omitempty"`
}

// Decorator is @Name or @Name(args...). Args are emitted verbatim.
type Decorator struct {
	Name    string   `yaml:"name" toml:"name"`
	Args    []string `yaml:"args,omitempty" toml:"args,omitempty"`
	Factory bool     `yaml:"factory,omitempty" toml:"factory,omitempty"`
}

// function returns the function-shaped view of a top-level function declaration
func (d *Declaration) function() Function {
	return Function{
		Name:       d.Name,
		Doc:        d.Doc,
		Modifiers:  d.Modifiers,
		Decorators: d.Decorators,
		TypeParams: d.TypeParams,
		Params:     d.Params,
		Returns:    d.Returns,
		Body:       d.Body,
	}
}
