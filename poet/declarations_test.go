package poet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/tspoet/errors"
)

func TestProperty_Render(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*PropertySpec, error)
		want  string
	}{
		{
			name:  "plain",
			build: Property("name", String).Build,
			want:  "name: string",
		},
		{
			name:  "optional outside compact context",
			build: Property("name", String).Optional(true).Build,
			want:  "name: string | undefined",
		},
		{
			name:  "modifiers and initializer",
			build: Property("count", Number, Readonly, Private).Initializer("%L", 0).Build,
			want:  "private readonly count: number = 0",
		},
		{
			name:  "doc",
			build: Property("id", String).AddDoc("the id\n").Build,
			want:  "/**\n * the id\n */\nid: string",
		},
		{
			name:  "reserved word",
			build: Property("default", String).Build,
			want:  "default: string",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prop, err := tt.build()
			require.NoError(t, err)
			assert.Equal(t, tt.want, prop.String())
		})
	}
}

func TestProperty_InitializerOnce(t *testing.T) {
	_, err := Property("x", Number).Initializer("1").Initializer("2").Build()
	require.Error(t, err)
	assert.True(t, errors.IsMalformedCode(err))
}

func TestProperty_ToBuilder(t *testing.T) {
	prop, err := Property("x", Number, Static).Initializer("%L", 1).Build()
	require.NoError(t, err)

	copied, err := prop.ToBuilder().Build()
	require.NoError(t, err)
	assert.Equal(t, prop.String(), copied.String())
}

func TestEnum_Render(t *testing.T) {
	enum, err := Enum("Color").
		AddModifiers(Export).
		AddConstant("Red", "").
		AddStringConstant("Green", "green").
		AddConstant("Blue", "3").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "export enum Color {\n  Red,\n  Green = 'green',\n  Blue = 3\n}\n", emitDeclaration(t, enum))
}

func TestEnum_ConstAndDoc(t *testing.T) {
	enum, err := Enum("Flags").AddDoc("Bit flags.\n").AddModifiers(Const, Export).AddConstant("None", "0").Build()
	require.NoError(t, err)

	assert.Equal(t, "/**\n * Bit flags.\n */\nexport const enum Flags {\n  None = 0\n}\n", enum.String())
}

func TestEnum_ReplaceConstantKeepsOrder(t *testing.T) {
	enum, err := Enum("E").AddConstant("A", "1").AddConstant("B", "2").AddConstant("A", "3").Build()
	require.NoError(t, err)

	assert.Equal(t, "enum E {\n  A = 3,\n  B = 2\n}\n", enum.String())
}

func TestEnum_ReservedConstant(t *testing.T) {
	enum, err := Enum("Op").AddConstant("delete", "").AddConstant("in", "").Build()
	require.NoError(t, err)
	assert.Equal(t, "enum Op {\n  delete,\n  in\n}\n", enum.String())
}

func TestNames(t *testing.T) {
	tests := []struct {
		name   string
		binds  bool
		member bool
	}{
		{"user", true, true},
		{"$ref", true, true},
		{"_x1", true, true},
		{"in", false, true},
		{"default", false, true},
		{"new", false, true},
		{"1abc", false, false},
		{"x-y", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.binds, IsName(tt.name))
			assert.Equal(t, tt.member, IsMemberName(tt.name))
		})
	}
}

func TestEnum_Invalid(t *testing.T) {
	_, err := Enum("E").AddConstant("1abc", "").Build()
	assert.True(t, errors.IsMalformedCode(err))

	_, err = Enum("E").AddModifiers(Static).Build()
	assert.True(t, errors.IsMalformedCode(err))
}

func TestInterface_Render(t *testing.T) {
	id, err := Property("id", String, Readonly).Build()
	require.NoError(t, err)
	email, err := Property("email", String).Optional(true).Build()
	require.NoError(t, err)
	greet, err := Function("greet").AddParameter("name", String).Returns(String).Build()
	require.NoError(t, err)

	iface, err := Interface("User").
		AddModifiers(Export).
		AddTypeVariables(TypeVar("T")).
		AddSuperInterfaces(TypeImported("Entity", "./entity")).
		AddProperties(id, email).
		AddFunctions(greet).
		Build()
	require.NoError(t, err)

	out, w := render(t, func(w *CodeWriter) error { return Emit(w, iface, nil) })
	assert.Equal(t, "export interface User<T> extends Entity {\n"+
		"  readonly id: string;\n"+
		"  email?: string;\n"+
		"\n"+
		"  greet(name: string): string;\n"+
		"}\n", out)
	assert.Equal(t, []ImportedSymbol{Imported("Entity", "./entity")}, w.RequiredImports())
}

func TestInterface_Invalid(t *testing.T) {
	withInit, err := Property("x", Number).Initializer("1").Build()
	require.NoError(t, err)
	_, err = Interface("I").AddProperties(withInit).Build()
	assert.True(t, errors.IsMalformedCode(err))

	withBody, err := Function("f").AddStatement("return").Build()
	require.NoError(t, err)
	_, err = Interface("I").AddFunctions(withBody).Build()
	assert.True(t, errors.IsMalformedCode(err))
}

func TestClass_Render(t *testing.T) {
	injectable, err := Decorator(Imported("Injectable", "@angular/core")).Factory(true).Build()
	require.NoError(t, err)
	http, err := Parameter("http", TypeImported("HttpClient", "@angular/common/http")).AddModifiers(Private, Readonly).Build()
	require.NoError(t, err)
	ctor, err := Constructor().AddParameters(http).Build()
	require.NoError(t, err)
	users, err := Property("users", ArrayOf(TypeNamed("User")), Private).Initializer("[]").Build()
	require.NoError(t, err)
	onInit, err := Function("ngOnInit").Returns(Void).AddStatement("this.load()").Build()
	require.NoError(t, err)

	class, err := Class("UserService").
		AddModifiers(Export).
		AddDecorators(injectable).
		SuperClass(TypeNamed("Base")).
		AddInterfaces(TypeNamed("OnInit")).
		AddProperties(users).
		Constructor(ctor).
		AddFunctions(onInit).
		Build()
	require.NoError(t, err)

	out, w := render(t, func(w *CodeWriter) error { return Emit(w, class, nil) })
	assert.Equal(t, "@Injectable()\n"+
		"export class UserService extends Base implements OnInit {\n"+
		"  private users: User[] = [];\n"+
		"\n"+
		"  constructor(private readonly http: HttpClient) {\n"+
		"  }\n"+
		"\n"+
		"  ngOnInit(): void {\n"+
		"    this.load();\n"+
		"  }\n"+
		"}\n", out)
	assert.Equal(t, []ImportedSymbol{
		Imported("Injectable", "@angular/core"),
		Imported("HttpClient", "@angular/common/http"),
	}, w.RequiredImports())
}

func TestClass_Abstract(t *testing.T) {
	area, err := Function("area").AddModifiers(Abstract).Returns(Number).Build()
	require.NoError(t, err)

	class, err := Class("Shape").AddModifiers(Export, Abstract).AddFunctions(area).Build()
	require.NoError(t, err)
	assert.Equal(t, "export abstract class Shape {\n  abstract area(): number;\n}\n", class.String())

	_, err = Class("Square").AddFunctions(area).Build()
	assert.True(t, errors.IsMalformedCode(err))
}

func TestClass_WrapsLongHeritage(t *testing.T) {
	var ifaces []TypeName
	for _, name := range []string{"FirstLongInterfaceName", "SecondLongInterfaceName", "ThirdLongInterfaceName", "FourthLongInterfaceName"} {
		ifaces = append(ifaces, TypeNamed(name))
	}
	class, err := Class("Implementation").AddInterfaces(ifaces...).Build()
	require.NoError(t, err)

	assert.Equal(t, "class Implementation implements FirstLongInterfaceName, SecondLongInterfaceName,\n"+
		"    ThirdLongInterfaceName, FourthLongInterfaceName {\n"+
		"}\n", class.String())
}

func TestClass_DuplicateConstructor(t *testing.T) {
	ctor, err := Constructor().Build()
	require.NoError(t, err)

	_, err = Class("C").Constructor(ctor).AddFunctions(ctor).Build()
	assert.True(t, errors.IsMalformedCode(err))
}

func TestFunction_Render(t *testing.T) {
	fn, err := Function("greet").
		AddModifiers(Export).
		AddTypeVariables(TypeVar("T")).
		AddParameter("value", TypeVar("T")).
		Returns(String).
		AddStatement("return %S + value", "hello ").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "export function greet<T>(value: T): string {\n  return 'hello ' + value;\n}\n", emitDeclaration(t, fn))
}

func TestFunction_ControlFlow(t *testing.T) {
	fn, err := Function("pick").
		AddParameter("x", Boolean).
		Returns(Number).
		BeginControlFlow("if (x)").
		AddStatement("return 1").
		NextControlFlow("else").
		AddStatement("return 2").
		EndControlFlow().
		Build()
	require.NoError(t, err)

	assert.Equal(t, "function pick(x: boolean): number {\n"+
		"  if (x) {\n"+
		"    return 1;\n"+
		"  } else {\n"+
		"    return 2;\n"+
		"  }\n"+
		"}\n", fn.String())
}

func TestFunction_Parameters(t *testing.T) {
	opt, err := Parameter("limit", Number).Optional(true).Build()
	require.NoError(t, err)
	def, err := Parameter("sep", String).Default("%S", ",").Build()
	require.NoError(t, err)
	rest, err := Parameter("items", ArrayOf(String)).Rest(true).Build()
	require.NoError(t, err)

	fn, err := Function("join").AddModifiers(Async).AddParameters(opt, def, rest).Returns(PromiseType(String)).Build()
	require.NoError(t, err)

	assert.Equal(t, "async function join(limit?: number, sep: string = ',', ...items: string[]): Promise<string> {\n}\n", fn.String())
}

func TestFunction_BodyWithoutNewline(t *testing.T) {
	fn, err := Function("f").AddCode("return 1;").Build()
	require.NoError(t, err)
	assert.Equal(t, "function f() {\n  return 1;\n}\n", fn.String())
}

func TestFunction_Invalid(t *testing.T) {
	rest, err := Parameter("rest", ArrayOf(Any)).Rest(true).Build()
	require.NoError(t, err)
	_, err = Function("f").AddParameters(rest).AddParameter("after", String).Build()
	assert.True(t, errors.IsMalformedCode(err), "rest parameter not last")

	withMods, err := Parameter("x", String).AddModifiers(Private).Build()
	require.NoError(t, err)
	_, err = Function("f").AddParameters(withMods).Build()
	assert.True(t, errors.IsMalformedCode(err), "modifiers outside constructor")

	_, err = Constructor().Returns(Void).Build()
	assert.True(t, errors.IsMalformedCode(err), "constructor return type")

	_, err = Function("f").AddModifiers(Abstract).AddStatement("return").Build()
	assert.True(t, errors.IsMalformedCode(err), "abstract with body")

	_, err = Function("function").Build()
	assert.True(t, errors.IsMalformedCode(err), "reserved name")

	_, err = Parameter("x", String).Rest(true).Optional(true).Build()
	assert.True(t, errors.IsMalformedCode(err), "optional rest")
}

func TestDecorator_Render(t *testing.T) {
	bare, err := Decorator(Named("sealed")).Build()
	require.NoError(t, err)
	assert.Equal(t, "@sealed", bare.String())

	withArgs, err := Decorator(Named("Component")).AddArgument("%S", "a").AddNamedArgument("size", "%L", 2).Build()
	require.NoError(t, err)
	assert.Equal(t, "@Component('a', 2)", withArgs.String())

	class, err := Class("X").AddDecorators(withArgs).Build()
	require.NoError(t, err)
	assert.Equal(t, "@Component(\n  'a',\n  2\n)\nclass X {\n}\n", class.String())
}

func TestDecorator_InlineOnParameter(t *testing.T) {
	inject, err := Decorator(Imported("Inject", "@angular/core")).AddArgument("%T", TypeImported("TOKEN", "./tokens")).Build()
	require.NoError(t, err)
	p, err := Parameter("value", String).AddDecorators(inject).Build()
	require.NoError(t, err)

	assert.Equal(t, "@Inject(TOKEN) value: string", p.String())
}

func TestDecorator_NeedsName(t *testing.T) {
	_, err := Decorator(Named("")).Build()
	assert.True(t, errors.IsMalformedCode(err))
}

func TestDeclaration_NestedAsLiteral(t *testing.T) {
	alias, err := TypeAlias("Id", String).AddModifiers(Export).Build()
	require.NoError(t, err)

	cb := MustCodeBlockOf("// ids\n%L", alias)
	assert.Equal(t, "// ids\nexport type Id = string;\n", cb.String())
}
