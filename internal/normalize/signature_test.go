package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignature(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		vars Scope
		want string
	}{
		{"empty", "", nil, ""},
		{"no params source", "()", nil, "()"},
		{"no params descriptor", "()V", nil, "()"},
		{"source generics and varargs", "(int, List<? extends T>, String...)", Scope{"T": ""}, "(int,List,String[])"},
		{"descriptor", "(ILjava/util/List;[Ljava/lang/String;)V", nil, "(int,List,String[])"},
		{"descriptor with return", "(Ljava/util/Map$Entry;)Ljava/lang/Object;", nil, "(Map.Entry)"},
		{"source nested qualified", "(java.util.Map$Entry<K, V> e)", nil, "(Map.Entry)"},
		{"generic method descriptor", "<T:Ljava/lang/Object;>(TT;)V", nil, "(Object)"},
		{"interface bound", "<T::Ljava/lang/Comparable<TT;>;>(TT;I)V", nil, "(Comparable,int)"},
		{"bounded variable", "(T value)", Scope{"T": "Comparable<T>"}, "(Comparable)"},
		{"chained bounds", "(U)", Scope{"U": "T", "T": "Number"}, "(Number)"},
		{"kotlin nullable", "(String?, Int)", nil, "(String,Int)"},
		{"modifiers and annotations", "(final @NonNull String name)", nil, "(String)"},
		{"boxed stays boxed", "(Integer)", nil, "(Integer)"},
		{"descriptor needs return", "(I)", nil, "(I)"},
		{"descriptor primitive", "(I)V", nil, "(int)"},
		{"source return type ignored", "(int) String", nil, "(int)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Signature(tt.raw, tt.vars)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSignatureOpaque(t *testing.T) {
	for _, raw := range []string{"(block: (Int) -> Unit)", "run", "(List<String)", "(int", "(x: Int = 0)"} {
		t.Run(raw, func(t *testing.T) {
			got, err := Signature(raw, nil)
			require.ErrorIs(t, err, ErrOpaqueSignature)
			assert.Equal(t, OpaquePrefix+raw, got)
			assert.True(t, IsOpaque(got))
		})
	}
}

func TestType(t *testing.T) {
	tests := []struct {
		raw  string
		vars Scope
		want string
	}{
		{"", nil, ""},
		{"I", nil, "int"},
		{"[Ljava/lang/String;", nil, "String[]"},
		{"java.lang.String", nil, "String"},
		{"List<String>", nil, "List"},
		{"int[][]", nil, "int[][]"},
		{"T", Scope{"T": "Number"}, "Number"},
		{"B", Scope{"B": ""}, "Object"},
		{"TK;", Scope{"K": "Ljava/lang/CharSequence;"}, "CharSequence"},
		{"Outer.Inner", nil, "Outer.Inner"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Type(tt.raw, tt.vars)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Type("Map<K, V", nil)
	require.ErrorIs(t, err, ErrOpaqueSignature)
}

func TestBothEncodingsAgree(t *testing.T) {
	pairs := [][2]string{
		{"(int, String[], long)", "(I[Ljava/lang/String;J)V"},
		{"(java.util.List<String> xs, boolean b)", "(Ljava/util/List;Z)Z"},
		{"(Outer$Inner, char...)", "(LOuter$Inner;[C)V"},
	}

	for _, p := range pairs {
		a, err := Signature(p[0], nil)
		require.NoError(t, err)

		b, err := Signature(p[1], nil)
		require.NoError(t, err)

		assert.Equal(t, a, b, "%s vs %s", p[0], p[1])
	}
}

func TestKotlinSignature(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		vars Scope
		want string
	}{
		{"primitive", "(x: Int)", nil, "(int)"},
		{"nullable primitive is boxed", "(x: Int?)", nil, "(Integer)"},
		{"nullable generic", "(items: List<String>?)", nil, "(List)"},
		{"builtin classes", "(a: Any, b: MutableMap<String, Int>, c: kotlin.String)", nil, "(Object,Map,String)"},
		{"arrays box their elements", "(a: Array<Int>, b: Array<out String?>)", nil, "(Integer[],String[])"},
		{"primitive arrays", "(a: IntArray, b: Array<ByteArray>)", nil, "(int[],byte[][])"},
		{"vararg", "(vararg xs: Long)", nil, "(long[])"},
		{"modifiers and annotations", "(@JvmField val y: Boolean)", nil, "(boolean)"},
		{"type variable", "(item: T)", Scope{"T": "Comparable<T>"}, "(Comparable)"},
		{"return type ignored", "(x: Int): String", nil, "(int)"},
		{"nested entry", "(e: MutableMap.MutableEntry<K, V>)", nil, "(Map.Entry)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Signature(tt.raw, tt.vars)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKotlinAgreesWithDescriptor(t *testing.T) {
	pairs := [][2]string{
		{"(x: Int, name: String?)", "(ILjava/lang/String;)V"},
		{"(items: List<String>?, flag: Boolean)", "(Ljava/util/List;Z)V"},
		{"(count: Int?, values: IntArray)", "(Ljava/lang/Integer;[I)V"},
		{"(vararg names: String)", "([Ljava/lang/String;)V"},
	}

	for _, p := range pairs {
		a, err := Signature(p[0], nil)
		require.NoError(t, err)

		b, err := Signature(p[1], nil)
		require.NoError(t, err)

		assert.Equal(t, a, b, "%s vs %s", p[0], p[1])
	}

	field, err := Type(": Double", nil)
	require.NoError(t, err)
	assert.Equal(t, "double", field)
}

func TestParams(t *testing.T) {
	assert.Nil(t, Params("()"))
	assert.Nil(t, Params(""))
	assert.Nil(t, Params(OpaquePrefix+"(x)"))
	assert.Equal(t, []string{"int", "String[]"}, Params("(int,String[])"))
}
