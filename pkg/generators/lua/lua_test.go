package lua

import (
	"testing"

	"github.com/nativedb/nativedb/internal/testutil"
	"github.com/nativedb/nativedb/pkg/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteNative(t *testing.T) {
	db := testutil.SampleDatabase(t)
	g := New()

	tests := []struct {
		name     string
		native   string
		opts     generator.Options
		expected string
	}{
		{
			name:   "closes with end",
			native: "GET_PLAYER_PED",
			opts:   generator.DefaultOptions(),
			expected: `-- Gets the ped for the specified player.
-- Use PLAYER_ID() for the local player.
function GetPlayerPed(player)
	return Citizen.InvokeNative(0x43A66C31C68491C0, player)
end
`,
		},
		{
			name:   "pointer params become out-values",
			native: "0xB8BA7F44DF1575E1",
			opts:   generator.Options{},
			expected: `function N_0xb8ba7f44df1575e1(end_)
	return Citizen.InvokeNative(0xB8BA7F44DF1575E1, Citizen.PointerValueFloat(), end_)
end
`,
		},
		{
			name:     "one-line",
			native:   "PLAYER_ID",
			opts:     generator.Options{OneLineFunctions: true},
			expected: "function PlayerId() return Citizen.InvokeNative(0x4F8644AF03D0E0D6) end\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := generator.RenderNative(g, testutil.Native(t, db, tt.native), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestWriteNamespace(t *testing.T) {
	db := testutil.SampleDatabase(t)

	got, err := generator.RenderNamespace(New(), testutil.Namespace(t, db, "PLAYER"), generator.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, `-- PLAYER

-- Gets the ped for the specified player.
-- Use PLAYER_ID() for the local player.
function GetPlayerPed(player)
	return Citizen.InvokeNative(0x43A66C31C68491C0, player)
end

function PlayerId()
	return Citizen.InvokeNative(0x4F8644AF03D0E0D6)
end
`, got)
}
