package protocol

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueMarshal(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"null", Null(), `null`},
		{"zero value is null", Value{}, `null`},
		{"bool", Bool(true), `true`},
		{"integer", Int(42), `42`},
		{"negative integer", Int(-7), `-7`},
		{"integer beyond float precision", Int(math.MaxInt64), `9223372036854775807`},
		{"integer just past 2^53", Int(1<<53 + 1), `9007199254740993`},
		{"fraction", Number(0.8), `0.8`},
		{"string escapes", String("a \"quoted\"\nline"), `"a \"quoted\"\nline"`},
		{"list", List(Int(1), String("x"), Null()), `[1,"x",null]`},
		{"strings", Strings("en", "es"), `["en","es"]`},
		{"empty list", List(), `[]`},
		{"nested object", ObjectValue(NewObject(F("a", Bool(false)), F("b", List()))), `{"a":false,"b":[]}`},
		{"optional nil", OptionalString(nil), `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.value.MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestValueRejectsNonFinite(t *testing.T) {
	for _, n := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Number(n).MarshalJSON()
		assert.Error(t, err)
	}

	_, err := ObjectValue(NewObject(F("deep", List(Number(math.NaN()))))).MarshalJSON()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deep")
}

func TestObjectKeepsInsertionOrderAndUniqueKeys(t *testing.T) {
	o := NewObject(F("z", Int(1)), F("a", Int(2)))
	o.Set("z", Int(3))
	o.Set("m", Int(4))

	assert.Equal(t, []string{"z", "a", "m"}, o.Keys())
	assert.Equal(t, 3, o.Len())

	got, err := o.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"z":3,"a":2,"m":4}`, string(got))
}

func TestObjectValueIsolatedFromSource(t *testing.T) {
	src := NewObject(F("k", String("before")))
	v := ObjectValue(src)
	src.Set("k", String("after"))

	obj, ok := v.AsObject()
	require.True(t, ok)
	got, _ := obj.Get("k")
	s, _ := got.AsString()
	assert.Equal(t, "before", s)
}

func TestAccessors(t *testing.T) {
	b, ok := Bool(true).AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = String("x").AsNumber()
	assert.False(t, ok)

	i, ok := Int(1<<53 + 1).AsInt()
	assert.True(t, ok)
	assert.Equal(t, int64(1<<53 + 1), i)
	n, ok := Int(3).AsNumber()
	assert.True(t, ok)
	assert.Equal(t, 3.0, n)
	_, ok = Number(3).AsInt()
	assert.False(t, ok)

	items, ok := List(Int(1), Int(2)).AsList()
	require.True(t, ok)
	assert.Len(t, items, 2)

	assert.Equal(t, KindObject, ObjectValue(nil).Kind())
	assert.Equal(t, "list", KindList.String())
}
