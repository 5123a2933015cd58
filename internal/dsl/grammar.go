package dsl

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The map format is newline-sensitive: a single EOL separates
// directives, a blank line (BlockSep) separates blocks, and a newline
// followed by indentation continues the current directive. The lexer
// encodes those three cases as distinct rules so the grammar can keep
// EOL and BlockSep significant while continuations are elided like
// ordinary spacing.
var mapLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "BlockSep", Pattern: `\n([ \t]*\n)+`},
	{Name: "Continuation", Pattern: `\n[ \t]+`},
	{Name: "EOL", Pattern: `\n`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "CmpOp", Pattern: `!=|<=|>=|=|<|>`},
	{Name: "GroupOp", Pattern: `[&|]`},
	{Name: "Float", Pattern: `-?(0|[1-9]\d*)(\.\d+([eE][+-]?\d+)?|[eE][+-]?\d+)`},
	{Name: "Int", Pattern: `-?(0|[1-9]\d*)`},
	{Name: "String", Pattern: `"([^"\\]|\\.)*"`},
	{Name: "Ident", Pattern: `[A-Za-z][A-Za-z0-9_\-.]*`},
	{Name: "Punct", Pattern: `[(),]`},
})

// mapFileAST is the top-level grammar node: one map block followed by
// one or more layer blocks, separated by blank lines.
type mapFileAST struct {
	Map    *mapBlockAST     `parser:"@@"`
	Layers []*layerBlockAST `parser:"( BlockSep @@ )+ ( EOL | BlockSep )*"`
}

type mapBlockAST struct {
	Directives []*mapDirectiveAST `parser:"'map' EOL @@ ( EOL @@ )*"`
}

type mapDirectiveAST struct {
	Srid   *sridAST   `parser:"  @@"`
	Extent *extentAST `parser:"| @@"`
	Data   *dataAST   `parser:"| @@"`
}

type sridAST struct {
	Value int64 `parser:"'srid' @Int"`
}

type extentAST struct {
	MinX *numberAST `parser:"'extent' @@"`
	MinY *numberAST `parser:"@@"`
	MaxX *numberAST `parser:"@@"`
	MaxY *numberAST `parser:"@@"`
}

type numberAST struct {
	Float *float64 `parser:"  @Float"`
	Int   *int64   `parser:"| @Int"`
}

type dataAST struct {
	Ident       string          `parser:"'data' @Ident"`
	Constructor *constructorAST `parser:"@@"`
}

type constructorAST struct {
	Select *selectAST `parser:"  @@"`
	Value  *valueAST  `parser:"| @@"`
}

type selectAST struct {
	Selector string `parser:"'select' @String"`
	Datatype string `parser:"@( 'string' | 'number' | 'bool' )"`
}

type valueAST struct {
	Fn    *functionAST `parser:"  @@"`
	Lit   *literalAST  `parser:"| @@"`
	Ident *identRefAST `parser:"| @@"`
}

type literalAST struct {
	Float *float64 `parser:"  @Float"`
	Int   *int64   `parser:"| @Int"`
	Str   *string  `parser:"| @String"`
	True  bool     `parser:"| @'true'"`
	False bool     `parser:"| @'false'"`
}

// identRefAST is a reference to a data binding declared earlier. The
// position feeds the not-in-scope error.
type identRefAST struct {
	Pos  lexer.Position
	Name string `parser:"@Ident"`
}

type functionAST struct {
	Name string      `parser:"@Ident '('"`
	Args []*valueAST `parser:"( @@ ( ',' @@ )* )? ')'"`
}

type layerBlockAST struct {
	Directives []*layerDirectiveAST `parser:"'layer' EOL @@ ( EOL @@ )*"`
}

type layerDirectiveAST struct {
	Source *sourceAST `parser:"  @@"`
	Data   *dataAST   `parser:"| @@"`
	Sym    *symAST    `parser:"| @@"`
}

type sourceAST struct {
	Driver string     `parser:"'source' @( 'geojson' | 'postgis' | 'shapefile' )"`
	Path   string     `parser:"@String"`
	Srid   *numberAST `parser:"@@?"`
}

type symAST struct {
	Predicate *predGroupAST `parser:"'sym' @@"`
	Commands  []*commandAST `parser:"( Arrow @@ )+"`
}

// predGroupAST is a flat operator chain; conversion folds it
// left-associatively. AND and OR have equal precedence; parentheses
// disambiguate.
type predGroupAST struct {
	First *predTermAST  `parser:"@@"`
	Rest  []*predRHSAST `parser:"@@*"`
}

type predRHSAST struct {
	Pos  lexer.Position
	Op   string       `parser:"@GroupOp"`
	Term *predTermAST `parser:"@@"`
}

type predTermAST struct {
	Group *predGroupAST `parser:"  '(' @@ ')'"`
	Pred  *predicateAST `parser:"| @@"`
}

type predicateAST struct {
	Pos   lexer.Position
	Left  *valueAST `parser:"@@"`
	Op    string    `parser:"@CmpOp"`
	Right *valueAST `parser:"@@"`
}

type commandAST struct {
	Pos     lexer.Position
	Clear   bool       `parser:"  @'clear'"`
	Draw    bool       `parser:"| @'draw'"`
	Circle  *valueAST  `parser:"| 'circle' @@"`
	Square  *valueAST  `parser:"| 'square' @@"`
	Fill    *valueAST  `parser:"| 'fill' @@"`
	Stroke  *strokeAST `parser:"| 'stroke' @@"`
	Pattern *valueAST  `parser:"| 'pattern' @@"`
	Label   *valueAST  `parser:"| 'label' @@"`
}

type strokeAST struct {
	Color *valueAST `parser:"@@"`
	Size  *valueAST `parser:"@@"`
}

// mapParser is built once from the grammar. Lookahead 2 lets the value
// rule tell a function call from a bare identifier.
var mapParser = participle.MustBuild[mapFileAST](
	participle.Lexer(mapLexer),
	participle.Elide("Whitespace", "Continuation"),
	participle.UseLookahead(2),
)
