package all

import (
	"testing"

	"github.com/nativedb/nativedb/pkg/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistered(t *testing.T) {
	assert.Equal(t, []string{"cpp", "csharp", "lua", "python", "rust", "typescript"}, generator.List())

	aliases := map[string]string{
		"c++": "cpp",
		"c#":  "csharp",
		"rs":  "rust",
		"ts":  "typescript",
		"js":  "typescript",
		"py":  "python",
		"LUA": "lua",
	}
	for alias, name := range aliases {
		g, err := generator.Lookup(alias)
		require.NoError(t, err, alias)
		assert.Equal(t, name, g.Name())
	}
}
