package gosource

import (
	"go/types"
	"strings"

	"source-irfitter/internal/common"
)

// typeString renders t in the normalizer's source style.
func typeString(t types.Type) string {
	switch tt := t.(type) {
	case *types.Alias:
		return objectName(tt.Obj())
	case *types.Named:
		return objectName(tt.Obj())
	case *types.TypeParam:
		return tt.Obj().Name()
	case *types.Basic:
		return tt.Name()
	case *types.Pointer:
		return typeString(tt.Elem())
	case *types.Slice:
		return typeString(tt.Elem()) + "[]"
	case *types.Array:
		return typeString(tt.Elem()) + "[]"
	case *types.Map:
		return "map<" + typeString(tt.Key()) + "," + typeString(tt.Elem()) + ">"
	case *types.Chan:
		return "chan<" + typeString(tt.Elem()) + ">"
	case *types.Signature:
		return "func"
	case *types.Interface:
		return "interface"
	case *types.Struct:
		return "struct"
	default:
		return "Object"
	}
}

// paramString renders a parameter type; the variadic slice becomes "T...".
func paramString(t types.Type, variadic bool) string {
	if slice, ok := t.(*types.Slice); ok && variadic {
		return typeString(slice.Elem()) + "..."
	}

	return typeString(t)
}

func signatureString(sig *types.Signature) string {
	params := sig.Params()
	parts := make([]string, 0, params.Len())

	for i := range params.Len() {
		parts = append(parts, paramString(params.At(i).Type(), sig.Variadic() && i == params.Len()-1))
	}

	return "(" + strings.Join(parts, ",") + ")"
}

// boundString renders a named constraint; unions and interface literals
// have no single upper bound and erase to "".
func boundString(t types.Type) string {
	if named, ok := types.Unalias(t).(*types.Named); ok {
		return objectName(named.Obj())
	}

	return ""
}

func objectName(obj *types.TypeName) string {
	if obj.Pkg() == nil {
		return obj.Name()
	}

	return common.PkgAlias(obj.Pkg().Path()) + "." + obj.Name()
}
