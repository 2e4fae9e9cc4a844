package reference

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleClass = `{
	"name": "Player",
	"path": "res://player.gd",
	"extends_class": ["KinematicBody2D"],
	"description": "The player.\ncategory: Actors",
	"methods": [
		{"name": "jump", "signature": "func jump(height: float) -> null", "return_type": "null",
		 "rpc_mode": 1, "description": "", "arguments": [{"name": "height", "type": "float"}]}
	],
	"static_functions": [],
	"members": [
		{"name": "speed", "signature": "var speed: float = 10.0", "data_type": "float",
		 "default_value": 10.0, "export": true, "setter": "set_speed", "getter": "", "description": ""},
		{"name": "label", "signature": "var label := \"hi\"", "data_type": "String",
		 "default_value": "hi", "export": false, "setter": "", "getter": "", "description": ""}
	],
	"signals": [
		{"name": "died", "signature": "signal died(cause)", "arguments": ["cause"], "description": "Emitted on death."}
	],
	"constants": [
		{"name": "State", "signature": "const State: Dictionary = {IDLE:0, RUN:1}", "data_type": "Dictionary",
		 "value": {"IDLE": 0, "RUN": 1}, "description": ""},
		{"name": "MAX_HP", "signature": "const MAX_HP := 3", "data_type": "int", "value": 3, "description": ""}
	],
	"sub_classes": []
}`

func TestDecodeArray(t *testing.T) {
	t.Parallel()

	f, err := Decode([]byte(`[` + sampleClass + `]`))
	require.NoError(t, err)
	assert.Nil(t, f.Project)
	require.Len(t, f.Classes, 1)

	c := f.Classes[0]
	assert.Equal(t, "Player", c.Name)
	assert.Equal(t, []string{"KinematicBody2D"}, c.ExtendsClass)
	require.Len(t, c.Methods, 1)
	assert.Equal(t, 1, c.Methods[0].RPCMode)
	assert.Equal(t, []Argument{{Name: "height", Type: "float"}}, c.Methods[0].Arguments)

	require.Len(t, c.Members, 2)
	assert.Equal(t, "10.0", c.Members[0].DefaultValue)
	assert.True(t, c.Members[0].Export)
	assert.Equal(t, "hi", c.Members[1].DefaultValue)

	require.Len(t, c.Signals, 1)
	assert.Equal(t, []Argument{{Name: "cause"}}, c.Signals[0].Arguments)

	require.Len(t, c.Constants, 2)
	assert.Equal(t, map[string]int{"IDLE": 0, "RUN": 1}, c.Constants[0].Values)
	assert.Equal(t, "3", c.Constants[1].Value)
	assert.Nil(t, c.Constants[1].Values)
}

func TestDecodeProjectObject(t *testing.T) {
	t.Parallel()

	data := `{"name": "Demo", "description": "A demo.", "version": "1.2.0", "classes": [` + sampleClass + `]}`
	f, err := Decode([]byte(data))
	require.NoError(t, err)
	require.NotNil(t, f.Project)
	assert.Equal(t, Project{Name: "Demo", Description: "A demo.", Version: "1.2.0"}, *f.Project)
	assert.Len(t, f.Classes, 1)
}

func TestDecodeSkipsNamelessClasses(t *testing.T) {
	t.Parallel()

	f, err := Decode([]byte(`[{"path": "res://a.gd"}, {"name": "B"}, {"description": "x"}]`))
	require.NoError(t, err)
	assert.Equal(t, 2, f.Skipped)
	require.Len(t, f.Classes, 1)
	assert.Equal(t, "B", f.Classes[0].Name)
}

func TestDecodeMissingKeys(t *testing.T) {
	t.Parallel()

	data := `[{"name": "Broken",
		"methods": [{"name": "run", "signature": "func run()"}],
		"members": [{"signature": "var x", "data_type": "int"}]
	}]`
	_, err := Decode([]byte(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEntry)

	var keys []string
	for _, e := range flatten(err) {
		var entry *EntryError
		require.True(t, errors.As(e, &entry), "unexpected error %v", e)
		assert.Equal(t, "Broken", entry.Class)
		keys = append(keys, entry.Kind+"."+entry.Key)
	}
	assert.ElementsMatch(t, []string{"method.return_type", "method.arguments", "member.name"}, keys)
}

func TestDecodeNullOptionalFields(t *testing.T) {
	t.Parallel()

	data := `[{"name": "A", "description": null, "extends_class": null,
		"members": [{"name": "x", "signature": "var x", "data_type": "int", "default_value": null, "setter": null}]}]`
	f, err := Decode([]byte(data))
	require.NoError(t, err)
	require.Len(t, f.Classes[0].Members, 1)
	assert.Empty(t, f.Classes[0].Members[0].DefaultValue)
	assert.Empty(t, f.Classes[0].ExtendsClass)
}

func TestDecodeSubClasses(t *testing.T) {
	t.Parallel()

	data := `[{"name": "Outer", "sub_classes": [{"name": "Inner", "members": [
		{"name": "y", "signature": "var y", "data_type": "int"}]}, {"path": "nameless"}]}]`
	f, err := Decode([]byte(data))
	require.NoError(t, err)
	require.Len(t, f.Classes[0].SubClasses, 1)
	assert.Equal(t, "Inner", f.Classes[0].SubClasses[0].Name)
	assert.Len(t, f.Classes[0].SubClasses[0].Members, 1)
}

func TestDecodeInvalidJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"empty", "  "},
		{"truncated array", `[{"name": "A"`},
		{"scalar", `42`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode([]byte(tt.data))
			assert.Error(t, err)
			assert.NotErrorIs(t, err, ErrInvalidEntry)
		})
	}
}
