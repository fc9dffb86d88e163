package values

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  bool
	}{
		{"absent", Absent(), false},
		{"true", Bool(true), true},
		{"false", Bool(false), false},
		{"string", String("x"), true},
		{"empty string", String(""), true},
		{"zero", Int(0), true},
		{"empty sequence", List(), false},
		{"sequence", Strings("a"), true},
		{"empty mapping", Map(nil), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.Truthy())
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"absent", Absent(), ""},
		{"bool", Bool(true), "true"},
		{"string", String("demo"), "demo"},
		{"int", Int(3000), "3000"},
		{"integral float", Number(3001), "3001"},
		{"fraction", Number(1.5), "1.5"},
		{"sequence", Strings("user", "order"), "user, order"},
		{"nested sequence", List(Int(1), Strings("a", "b")), "1, a, b"},
		{"mapping", Map(map[string]Value{"name": String("<api>"), "port": Int(1)}), `{"name":"<api>","port":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.String())
		})
	}
}

func TestFromAny(t *testing.T) {
	var decoded map[string]any
	err := json.Unmarshal([]byte(`{"n": 3, "f": 2.5, "s": "x", "b": false, "z": null,
		"list": ["a", 1], "obj": {"k": "v"}}`), &decoded)
	assert.NoError(t, err)

	vars := FromMap(decoded)

	assert.Equal(t, KindScalar, vars["n"].Kind())
	assert.Equal(t, "3", vars["n"].String())
	assert.Equal(t, "2.5", vars["f"].String())
	assert.Equal(t, KindBool, vars["b"].Kind())
	assert.Equal(t, KindAbsent, vars["z"].Kind())
	assert.Equal(t, KindSequence, vars["list"].Kind())
	assert.Equal(t, "a, 1", vars["list"].String())

	field, ok := vars["obj"].Field("k")
	assert.True(t, ok)
	assert.Equal(t, "v", field.String())

	assert.Equal(t, KindSequence, FromAny([]int{1, 2}).Kind())
	assert.Equal(t, KindMapping, FromAny(map[string]int{"a": 1}).Kind())
	assert.Equal(t, KindAbsent, FromAny((*string)(nil)).Kind())
}

func TestIntAccessor(t *testing.T) {
	i, ok := Int(3001).Int()
	assert.True(t, ok)
	assert.Equal(t, int64(3001), i)

	i, ok = String("42").Int()
	assert.True(t, ok)
	assert.Equal(t, int64(42), i)

	_, ok = String("abc").Int()
	assert.False(t, ok)

	_, ok = Strings("1").Int()
	assert.False(t, ok)
}

func TestVariables(t *testing.T) {
	vars := Variables{
		"PROJECT_NAME": String("demo"),
		"SERVICES":     Strings("user"),
		"GONE":         Absent(),
	}

	_, ok := vars.Lookup("GONE")
	assert.False(t, ok, "explicitly absent values are unbound")
	assert.True(t, vars.Get("MISSING").IsAbsent())

	clone := vars.Clone()
	clone["PROJECT_NAME"] = String("other")
	assert.Equal(t, "demo", vars["PROJECT_NAME"].String())
	assert.True(t, clone["SERVICES"].Equal(vars["SERVICES"]))

	merged := vars.Merge(Variables{"PROJECT_NAME": String("x"), "AUTHOR": String("me")})
	assert.Equal(t, "demo", merged["PROJECT_NAME"].String(), "existing names win")
	assert.Equal(t, "me", merged["AUTHOR"].String())

	assert.Equal(t, []string{"GONE", "PROJECT_NAME", "SERVICES"}, vars.Names())
}
