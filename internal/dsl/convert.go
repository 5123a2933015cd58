package dsl

import (
	"strings"

	"github.com/maproom/mafe/internal/ast"
)

// convertMapFile lowers the grammar tree into the typed AST. The scope
// stack is threaded through explicitly: the map block pushes the global
// scope, each layer pushes its own and pops it on exit, so map-level
// bindings stay visible in every layer while layer bindings do not leak
// to siblings.
func convertMapFile(file *mapFileAST) (*ast.MapSpec, error) {
	scope := newScopeStack()
	scope.push()

	mapBlock, err := convertMapBlock(file.Map, scope)
	if err != nil {
		return nil, err
	}

	layers := make([]ast.LayerBlock, 0, len(file.Layers))
	for _, l := range file.Layers {
		scope.push()
		layer, err := convertLayerBlock(l, scope)
		scope.pop()
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}

	return &ast.MapSpec{Map: mapBlock, Layers: layers}, nil
}

func convertMapBlock(block *mapBlockAST, scope *scopeStack) (ast.MapBlock, error) {
	directives := make([]ast.Directive, 0, len(block.Directives))
	for _, d := range block.Directives {
		switch {
		case d.Srid != nil:
			directives = append(directives, ast.Directive{Kind: ast.SridDirective, Srid: d.Srid.Value})
		case d.Extent != nil:
			directives = append(directives, ast.Directive{Kind: ast.ExtentDirective, Extent: &ast.Extent{
				MinX: convertNumber(d.Extent.MinX),
				MinY: convertNumber(d.Extent.MinY),
				MaxX: convertNumber(d.Extent.MaxX),
				MaxY: convertNumber(d.Extent.MaxY),
			}})
		case d.Data != nil:
			binding, err := convertData(d.Data, scope)
			if err != nil {
				return ast.MapBlock{}, err
			}
			directives = append(directives, ast.Directive{Kind: ast.DataDirective, Data: binding})
		default:
			return ast.MapBlock{}, ErrMysterious.New("empty map directive")
		}
	}
	return ast.MapBlock{Directives: directives}, nil
}

func convertLayerBlock(block *layerBlockAST, scope *scopeStack) (ast.LayerBlock, error) {
	directives := make([]ast.Directive, 0, len(block.Directives))
	for _, d := range block.Directives {
		switch {
		case d.Source != nil:
			src, err := convertSource(d.Source)
			if err != nil {
				return ast.LayerBlock{}, err
			}
			directives = append(directives, ast.Directive{Kind: ast.SourceDirective, Source: src})
		case d.Data != nil:
			binding, err := convertData(d.Data, scope)
			if err != nil {
				return ast.LayerBlock{}, err
			}
			directives = append(directives, ast.Directive{Kind: ast.DataDirective, Data: binding})
		case d.Sym != nil:
			sym, err := convertSym(d.Sym, scope)
			if err != nil {
				return ast.LayerBlock{}, err
			}
			directives = append(directives, ast.Directive{Kind: ast.SymDirective, Sym: sym})
		default:
			return ast.LayerBlock{}, ErrMysterious.New("empty layer directive")
		}
	}
	return ast.LayerBlock{Directives: directives}, nil
}

// convertData builds the binding and inserts it into the innermost
// scope as a side effect, so later values in the same or an inner block
// can reference it.
func convertData(d *dataAST, scope *scopeStack) (*ast.DataBinding, error) {
	ctor, err := convertConstructor(d.Constructor, scope)
	if err != nil {
		return nil, err
	}
	binding := &ast.DataBinding{Ident: d.Ident, Constructor: ctor}
	scope.put(binding)
	return binding, nil
}

func convertConstructor(c *constructorAST, scope *scopeStack) (ast.Constructor, error) {
	if c.Select != nil {
		dt, err := convertDatatype(c.Select.Datatype)
		if err != nil {
			return ast.Constructor{}, err
		}
		return ast.Constructor{
			Kind: ast.SelectConstructor,
			Select: &ast.Select{
				Selector: unquote(c.Select.Selector),
				Datatype: dt,
			},
		}, nil
	}
	v, err := convertValue(c.Value, scope)
	if err != nil {
		return ast.Constructor{}, err
	}
	return ast.Constructor{Kind: ast.ValConstructor, Val: &v}, nil
}

func convertDatatype(s string) (ast.DataType, error) {
	switch s {
	case "string":
		return ast.StringType, nil
	case "number":
		return ast.NumberType, nil
	case "bool":
		return ast.BooleanType, nil
	default:
		return 0, ErrMysterious.New("datatype " + s)
	}
}

func convertValue(v *valueAST, scope *scopeStack) (ast.Value, error) {
	switch {
	case v.Fn != nil:
		args := make([]ast.Value, 0, len(v.Fn.Args))
		for _, a := range v.Fn.Args {
			arg, err := convertValue(a, scope)
			if err != nil {
				return ast.Value{}, err
			}
			args = append(args, arg)
		}
		return ast.Fn(&ast.FunctionCall{Name: v.Fn.Name, Args: args}), nil
	case v.Lit != nil:
		return ast.Lit(convertLiteral(v.Lit)), nil
	case v.Ident != nil:
		binding, ok := scope.get(v.Ident.Name)
		if !ok {
			return ast.Value{}, ErrDataNotInScope.New(v.Ident.Name, v.Ident.Pos)
		}
		return ast.Data(binding), nil
	default:
		return ast.Value{}, ErrMysterious.New("empty value")
	}
}

func convertLiteral(l *literalAST) ast.Literal {
	switch {
	case l.Float != nil:
		return ast.FloatLit(*l.Float)
	case l.Int != nil:
		return ast.IntegerLit(*l.Int)
	case l.Str != nil:
		return ast.String(unquote(*l.Str))
	case l.True:
		return ast.Boolean(true)
	default:
		return ast.Boolean(false)
	}
}

func convertNumber(n *numberAST) ast.Num {
	if n.Float != nil {
		return ast.Float(*n.Float)
	}
	return ast.Integer(*n.Int)
}

func convertSource(s *sourceAST) (*ast.Source, error) {
	var driver ast.Driver
	switch s.Driver {
	case "geojson":
		driver = ast.GeojsonDriver
	case "postgis":
		driver = ast.PostgisDriver
	case "shapefile":
		driver = ast.ShapefileDriver
	default:
		return nil, ErrMysterious.New("driver " + s.Driver)
	}
	src := &ast.Source{Driver: driver, Path: unquote(s.Path)}
	if s.Srid != nil {
		n := convertNumber(s.Srid)
		src.SRID = &n
	}
	return src, nil
}

func convertSym(s *symAST, scope *scopeStack) (*ast.Sym, error) {
	pred, err := convertPredGroup(s.Predicate, scope)
	if err != nil {
		return nil, err
	}
	commands := make([]ast.Command, 0, len(s.Commands))
	for _, c := range s.Commands {
		cmd, err := convertCommand(c, scope)
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}
	return &ast.Sym{Predicate: pred, Consequent: commands}, nil
}

// convertPredGroup folds the operator chain left-associatively, in
// textual order; AND and OR bind equally.
func convertPredGroup(g *predGroupAST, scope *scopeStack) (ast.PredGroup, error) {
	left, err := convertPredTerm(g.First, scope)
	if err != nil {
		return ast.PredGroup{}, err
	}
	for _, rhs := range g.Rest {
		right, err := convertPredTerm(rhs.Term, scope)
		if err != nil {
			return ast.PredGroup{}, err
		}
		switch rhs.Op {
		case "&":
			left = ast.And(left, right)
		case "|":
			left = ast.Or(left, right)
		default:
			return ast.PredGroup{}, ErrUnknownPredicateGrouping.New(rhs.Op)
		}
	}
	return left, nil
}

func convertPredTerm(t *predTermAST, scope *scopeStack) (ast.PredGroup, error) {
	if t.Group != nil {
		return convertPredGroup(t.Group, scope)
	}
	return convertPredicate(t.Pred, scope)
}

func convertPredicate(p *predicateAST, scope *scopeStack) (ast.PredGroup, error) {
	left, err := convertValue(p.Left, scope)
	if err != nil {
		return ast.PredGroup{}, err
	}
	right, err := convertValue(p.Right, scope)
	if err != nil {
		return ast.PredGroup{}, err
	}
	var op ast.PredOp
	switch p.Op {
	case "=":
		op = ast.Equal
	case "!=":
		op = ast.NotEqual
	case ">":
		op = ast.Greater
	case ">=":
		op = ast.GreaterOrEqual
	case "<":
		op = ast.Lesser
	case "<=":
		op = ast.LesserOrEqual
	default:
		return ast.PredGroup{}, ErrUnknownPredicate.New(p.Op)
	}
	return ast.Pred(ast.Predicate{Op: op, Left: left, Right: right}), nil
}

func convertCommand(c *commandAST, scope *scopeStack) (ast.Command, error) {
	value := func(v *valueAST) (ast.Value, error) {
		return convertValue(v, scope)
	}
	switch {
	case c.Clear:
		return ast.Command{Kind: ast.ClearCommand}, nil
	case c.Draw:
		return ast.Command{Kind: ast.DrawGeometryCommand}, nil
	case c.Circle != nil:
		radius, err := value(c.Circle)
		if err != nil {
			return ast.Command{}, err
		}
		return ast.Command{Kind: ast.CircleCommand, Radius: radius}, nil
	case c.Square != nil:
		size, err := value(c.Square)
		if err != nil {
			return ast.Command{}, err
		}
		return ast.Command{Kind: ast.SquareCommand, Size: size}, nil
	case c.Fill != nil:
		color, err := value(c.Fill)
		if err != nil {
			return ast.Command{}, err
		}
		return ast.Command{Kind: ast.FillCommand, Color: color}, nil
	case c.Stroke != nil:
		color, err := value(c.Stroke.Color)
		if err != nil {
			return ast.Command{}, err
		}
		size, err := value(c.Stroke.Size)
		if err != nil {
			return ast.Command{}, err
		}
		return ast.Command{Kind: ast.StrokeCommand, Color: color, Size: size}, nil
	case c.Pattern != nil:
		path, err := value(c.Pattern)
		if err != nil {
			return ast.Command{}, err
		}
		return ast.Command{Kind: ast.PatternCommand, Path: path}, nil
	case c.Label != nil:
		content, err := value(c.Label)
		if err != nil {
			return ast.Command{}, err
		}
		return ast.Command{Kind: ast.LabelCommand, Content: content}, nil
	default:
		return ast.Command{}, ErrMysterious.New("empty command")
	}
}

// unquote strips the surrounding double quotes and decodes the escape
// sequences the lexer admits.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		default:
			// \\ \/ \" and anything else decode to the escaped byte.
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
