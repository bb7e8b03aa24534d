package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"source-irfitter/internal/symtree"
)

func TestDecodeLambda(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		decoded bool
	}{
		{"lambda$run$0", "run", true},
		{"lambda$new$3", ConstructorName, true},
		{"lambda$static$1", StaticInitializerName, true},
		{"run$lambda$0", "run", true},
		{"run$lambda-2", "run", true},
		{"lambda$", "", false},
		{"lambda", "", false},
		{"access$000", "", false},
		{"run", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeLambda(tt.name)
			assert.Equal(t, tt.decoded, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsUnstable(t *testing.T) {
	tests := []struct {
		name string
		node symtree.Node
		want bool
	}{
		{"plain method", symtree.Node{Kind: symtree.KindMethod, Name: "run"}, false},
		{"constructor", symtree.Node{Kind: symtree.KindMethod, Name: ConstructorName}, false},
		{"lambda", symtree.Node{Kind: symtree.KindMethod, Name: "lambda$run$0"}, true},
		{"synthetic", symtree.Node{Kind: symtree.KindMethod, Name: "values", Flags: symtree.FlagSynthetic}, true},
		{"bridge", symtree.Node{Kind: symtree.KindMethod, Name: "get", Flags: symtree.FlagSynthetic | symtree.FlagBridge}, false},
		{"accessor", symtree.Node{Kind: symtree.KindMethod, Name: "getX", Flags: symtree.FlagGeneratedAccessor}, true},
		{"anonymous type", symtree.Node{Kind: symtree.KindType, Name: "Foo$1"}, true},
		{"local class", symtree.Node{Kind: symtree.KindType, Name: "Foo$1Local"}, true},
		{"nested type", symtree.Node{Kind: symtree.KindType, Name: "Foo$Bar"}, false},
		{"outer instance field", symtree.Node{Kind: symtree.KindField, Name: "this$0"}, true},
		{"anonymous unit", symtree.Node{Kind: symtree.KindAnonymousUnit, Name: "x"}, true},
		{"package", symtree.Node{Kind: symtree.KindPackage, Name: "a$b"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUnstable(&tt.node))
		})
	}
}

func TestArityCompatible(t *testing.T) {
	lambda := &symtree.Node{Kind: symtree.KindMethod, Name: "lambda$run$0", Arity: 2}
	plain := &symtree.Node{Kind: symtree.KindMethod, Name: "run", Arity: 2}
	unit := &symtree.Node{Kind: symtree.KindAnonymousUnit, Arity: 1}

	assert.True(t, arityCompatible(lambda, unit))
	assert.False(t, arityCompatible(plain, unit))
	assert.False(t, arityCompatible(unit, lambda))
	assert.True(t, arityCompatible(&symtree.Node{Kind: symtree.KindType}, unit))
}
