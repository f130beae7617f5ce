package generator

import (
	"testing"

	"github.com/nativedb/nativedb/pkg/natives"
	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"GET_PLAYER_PED", []string{"GET", "PLAYER", "PED"}},
		{"_SET_THING", []string{"SET", "THING"}},
		{"clearArea", []string{"clear", "Area"}},
		{"groundZ", []string{"ground", "Z"}},
		{"p0", []string{"p0"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Words(tt.in))
		})
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		in     string
		pascal string
		camel  string
		snake  string
	}{
		{"GET_PLAYER_PED", "GetPlayerPed", "getPlayerPed", "get_player_ped"},
		{"PLAYER_ID", "PlayerId", "playerId", "player_id"},
		{"_SET_THING", "SetThing", "setThing", "set_thing"},
		{"xPos", "XPos", "xPos", "x_pos"},
		{"entity", "Entity", "entity", "entity"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.pascal, PascalCase(tt.in))
			assert.Equal(t, tt.camel, CamelCase(tt.in))
			assert.Equal(t, tt.snake, SnakeCase(tt.in))
			assert.Equal(t, tt.in, Convert(tt.in, UpperSnake))
		})
	}

	assert.Equal(t, "", PascalCase(""))
}

func TestFunctionName(t *testing.T) {
	named := &natives.Native{Name: "GET_PLAYER_PED", Hash: "0x43A66C31C68491C0"}
	unnamed := &natives.Native{Name: "_0x43A66C31C68491C0", Hash: "0x43A66C31C68491C0"}

	assert.Equal(t, "GetPlayerPed", FunctionName(named, Pascal))
	assert.Equal(t, "GET_PLAYER_PED", FunctionName(named, UpperSnake))
	assert.Equal(t, "N_0x43a66c31c68491c0", FunctionName(unnamed, Pascal))
	assert.Equal(t, "N_0x43a66c31c68491c0", FunctionName(unnamed, Snake))
}

func TestEscaper(t *testing.T) {
	e := NewEscaper(Suffix("_"), "end", "function")
	assert.Equal(t, "end_", e.Ident("end"))
	assert.Equal(t, "x", e.Ident("x"))

	at := NewEscaper(Prefix("@"), "object")
	assert.Equal(t, "@object", at.Ident("object"))
}
