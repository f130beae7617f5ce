package typescript

import (
	"testing"

	"github.com/nativedb/nativedb/internal/testutil"
	"github.com/nativedb/nativedb/pkg/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteNative(t *testing.T) {
	db := testutil.SampleDatabase(t)

	got, err := generator.RenderNative(New(), testutil.Native(t, db, "GET_PLAYER_PED"), generator.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, `// Gets the ped for the specified player.
// Use PLAYER_ID() for the local player.
export function getPlayerPed(player: number): number
{
	return Citizen.invokeNative<number>('0x43A66C31C68491C0', player);
}
`, got)
}

func TestWriteNamespace(t *testing.T) {
	db := testutil.SampleDatabase(t)

	got, err := generator.RenderNamespace(New(), testutil.Namespace(t, db, "ENTITY"), generator.Options{OneLineFunctions: true})
	require.NoError(t, err)
	assert.Equal(t, `export namespace Entity
{
	export function setEntityCoords(entity: number, xPos: number, yPos: number, zPos: number, clearArea: boolean): void { Citizen.invokeNative('0x06843DA7060A026B', entity, xPos, yPos, zPos, clearArea); }
}
`, got)
}
