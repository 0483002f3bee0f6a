package kwsub_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251220-go-pkg-kwsub/pkg/kwsub"
)

func TestFromAny_Kinds(t *testing.T) {
	tests := []struct {
		name string
		in   any
		kind kwsub.Kind
		text string
		len  int
	}{
		{name: "string", in: "b", kind: kwsub.KindScalar, text: "b"},
		{name: "nil", in: nil, kind: kwsub.KindScalar, text: ""},
		{name: "int", in: 7, kind: kwsub.KindScalar, text: "7"},
		{name: "int32", in: int32(-3), kind: kwsub.KindScalar, text: "-3"},
		{name: "float", in: 0.25, kind: kwsub.KindScalar, text: "0.25"},
		{name: "bool", in: false, kind: kwsub.KindScalar, text: "false"},
		{name: "map", in: m{"a": "b", "c": "d"}, kind: kwsub.KindMapping, len: 2},
		{name: "map any keys", in: map[any]any{1: "x"}, kind: kwsub.KindMapping, len: 1},
		{name: "typed map", in: map[string]int{"a": 1}, kind: kwsub.KindMapping, len: 1},
		{name: "list", in: l{m{}, m{}}, kind: kwsub.KindList, len: 2},
		{name: "string slice", in: []string{"x", "y", "z"}, kind: kwsub.KindList, len: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := kwsub.FromAny(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.text, v.Text())
			assert.Equal(t, tt.len, v.Len())
		})
	}
}

func TestFromAny_Unsupported(t *testing.T) {
	_, err := kwsub.FromAny(m{"a": l{m{"f": func() {}}}})
	require.ErrorIs(t, err, kwsub.ErrUnsupportedType)
	assert.Contains(t, err.Error(), `key "a"`)
	assert.Contains(t, err.Error(), "index 0")

	assert.Panics(t, func() { kwsub.MustFromAny(make(chan int)) })
}

func TestValue_Field(t *testing.T) {
	v := kwsub.MustFromAny(m{"a": m{"a1": "lollipop"}})

	a, ok := v.Field("a")
	require.True(t, ok)
	a1, ok := a.Field("a1")
	require.True(t, ok)
	assert.Equal(t, "lollipop", a1.Text())

	_, ok = v.Field("zzz")
	assert.False(t, ok)
	_, ok = a1.Field("x")
	assert.False(t, ok, "scalar has no fields")
}

func TestValue_MappingCopiesInput(t *testing.T) {
	fields := map[string]kwsub.Value{"a": kwsub.Scalar("1")}
	v := kwsub.Mapping(fields)
	fields["a"] = kwsub.Scalar("2")

	a, _ := v.Field("a")
	assert.Equal(t, "1", a.Text())
}

func TestValue_String(t *testing.T) {
	v := kwsub.Mapping(map[string]kwsub.Value{
		"b": kwsub.List(kwsub.Scalar("x"), kwsub.Scalar("y")),
		"a": kwsub.Scalar("1"),
	})
	assert.Equal(t, `{"a": "1", "b": ["x", "y"]}`, v.String())
	assert.Equal(t, []string{"a", "b"}, v.Keys())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "scalar", kwsub.KindScalar.String())
	assert.Equal(t, "mapping", kwsub.KindMapping.String())
	assert.Equal(t, "list", kwsub.KindList.String())
	assert.Equal(t, "kind(9)", kwsub.Kind(9).String())
}
