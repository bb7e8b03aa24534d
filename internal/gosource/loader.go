package gosource

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"sort"
	"strconv"

	"golang.org/x/tools/go/packages"

	"source-irfitter/internal/common"
	"source-irfitter/internal/symtree"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// ErrPackageErrors wraps the load errors reported by the go tool.
var ErrPackageErrors = errors.New("package errors")

// Loader loads Go packages and builds one tree per package.
type Loader struct {
	// Dir is the directory patterns are resolved in; empty means the
	// working directory.
	Dir string
}

// NewLoader creates a Loader resolving patterns in dir.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir}
}

// LoadPackages loads the specified packages and builds their trees in load
// order. Patterns are standard Go package patterns (e.g. "./...").
func (l *Loader) LoadPackages(patterns ...string) ([]*symtree.Tree, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  l.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrPackageErrors, errors.Join(errs...))
	}

	trees := make([]*symtree.Tree, 0, len(pkgs))

	for _, pkg := range pkgs {
		tree, err := BuildPackage(pkg)
		if err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}

		trees = append(trees, tree)
	}

	return trees, nil
}

// BuildPackage converts one loaded package into a tree. The package must
// have been loaded with LoadMode.
func BuildPackage(pkg *packages.Package) (*symtree.Tree, error) {
	b := &builder{
		pkg:   pkg,
		tb:    symtree.NewBuilder(pkg.PkgPath),
		types: make(map[string]symtree.NodeID),
	}

	b.root = b.tb.Add(symtree.NoNode, symtree.NodeSpec{
		Kind:          symtree.KindPackage,
		Name:          common.PkgAlias(pkg.PkgPath),
		QualifiedName: pkg.PkgPath,
	})

	for _, file := range pkg.Syntax {
		b.typeDecls(file)
	}

	for _, file := range pkg.Syntax {
		b.methodDecls(file)
	}

	return b.tb.Build()
}

type builder struct {
	pkg   *packages.Package
	tb    *symtree.Builder
	root  symtree.NodeID
	types map[string]symtree.NodeID
}

func (b *builder) typeDecls(file *ast.File) {
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}

		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			obj, ok := b.pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
			if !ok {
				continue
			}

			b.typeDecl(ts, obj)
		}
	}
}

func (b *builder) typeDecl(ts *ast.TypeSpec, obj *types.TypeName) {
	spec := symtree.NodeSpec{
		Kind: symtree.KindType,
		Name: ts.Name.Name,
		Span: b.span(ts.Pos(), ts.End()),
	}

	if named, ok := obj.Type().(*types.Named); ok {
		spec.TypeParams = b.typeParams(named.TypeParams())
	}

	id := b.tb.Add(b.root, spec)
	b.types[ts.Name.Name] = id

	// An alias shares the members of the type it names.
	if ts.Assign.IsValid() {
		return
	}

	switch ut := obj.Type().Underlying().(type) {
	case *types.Struct:
		for i := range ut.NumFields() {
			b.field(id, ut.Field(i))
		}
	case *types.Interface:
		methods := make([]*types.Func, 0, ut.NumExplicitMethods())
		for i := range ut.NumExplicitMethods() {
			methods = append(methods, ut.ExplicitMethod(i))
		}

		sort.Slice(methods, func(i, j int) bool { return methods[i].Pos() < methods[j].Pos() })

		for _, m := range methods {
			sig, _ := m.Type().(*types.Signature)
			b.callable(id, symtree.KindMethod, m.Name(), sig, b.span(m.Pos(), m.Pos()), nil)
		}
	}
}

func (b *builder) field(parent symtree.NodeID, v *types.Var) {
	if v.Name() == "_" {
		return
	}

	b.tb.Add(parent, symtree.NodeSpec{
		Kind:      symtree.KindField,
		Name:      v.Name(),
		Signature: typeString(v.Type()),
		Span:      b.nameSpan(v.Pos(), v.Name()),
	})
}

func (b *builder) methodDecls(file *ast.File) {
	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Recv == nil {
			continue
		}

		fn, ok := b.pkg.TypesInfo.Defs[fd.Name].(*types.Func)
		if !ok {
			continue
		}

		sig, _ := fn.Type().(*types.Signature)
		if sig == nil || sig.Recv() == nil {
			continue
		}

		owner, ok := b.types[receiverName(sig.Recv().Type())]
		if !ok {
			continue
		}

		id := b.callable(owner, symtree.KindMethod, fd.Name.Name, sig, b.span(fd.Pos(), fd.End()),
			b.typeParams(sig.RecvTypeParams()))

		if fd.Body != nil {
			b.body(id, fd.Body, "func")
		}
	}
}

// callable adds a method or anonymous unit with its parameters.
func (b *builder) callable(
	parent symtree.NodeID,
	kind symtree.Kind,
	name string,
	sig *types.Signature,
	span symtree.Span,
	typeParams []symtree.TypeParam,
) symtree.NodeID {
	spec := symtree.NodeSpec{
		Kind:       kind,
		Name:       name,
		Span:       span,
		TypeParams: typeParams,
	}

	var params []*types.Var

	if sig != nil {
		spec.Signature = signatureString(sig)
		spec.Arity = sig.Params().Len()

		if sig.Variadic() {
			spec.Flags |= symtree.FlagVarargs
		}

		for i := range sig.Params().Len() {
			params = append(params, sig.Params().At(i))
		}
	}

	id := b.tb.Add(parent, spec)

	for i, p := range params {
		if p.Name() == "" || p.Name() == "_" {
			continue
		}

		b.tb.Add(id, symtree.NodeSpec{
			Kind:      symtree.KindLocalVariable,
			Name:      p.Name(),
			Signature: paramString(p.Type(), sig.Variadic() && i == len(params)-1),
			Span:      b.nameSpan(p.Pos(), p.Name()),
		})
	}

	return id
}

// body adds the function literals of a body as anonymous units. The
// outermost literals of a method are named prefix+N, nested ones N.
func (b *builder) body(parent symtree.NodeID, body *ast.BlockStmt, prefix string) {
	count := 0

	ast.Inspect(body, func(n ast.Node) bool {
		lit, ok := n.(*ast.FuncLit)
		if !ok {
			return true
		}

		count++

		var sig *types.Signature
		if tv, ok := b.pkg.TypesInfo.Types[lit]; ok {
			sig, _ = tv.Type.(*types.Signature)
		}

		name := prefix + strconv.Itoa(count)
		id := b.callable(parent, symtree.KindAnonymousUnit, name, sig, b.span(lit.Pos(), lit.End()), nil)
		b.body(id, lit.Body, "")

		return false
	})
}

func (b *builder) typeParams(list *types.TypeParamList) []symtree.TypeParam {
	if list == nil || list.Len() == 0 {
		return nil
	}

	out := make([]symtree.TypeParam, 0, list.Len())

	for i := range list.Len() {
		tp := list.At(i)
		out = append(out, symtree.TypeParam{
			Name:  tp.Obj().Name(),
			Bound: boundString(tp.Constraint()),
		})
	}

	return out
}

func (b *builder) span(from, to token.Pos) symtree.Span {
	if !from.IsValid() {
		return symtree.Span{}
	}

	if !to.IsValid() {
		to = from
	}

	start := b.pkg.Fset.Position(from)
	end := b.pkg.Fset.Position(to)

	return symtree.Span{
		StartLine:   start.Line,
		StartColumn: start.Column,
		EndLine:     end.Line,
		EndColumn:   end.Column,
	}
}

func (b *builder) nameSpan(pos token.Pos, name string) symtree.Span {
	return b.span(pos, pos+token.Pos(len(name)))
}

func receiverName(t types.Type) string {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}

	if named, ok := types.Unalias(t).(*types.Named); ok {
		return named.Obj().Name()
	}

	return ""
}
