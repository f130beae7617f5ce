package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nativedb/nativedb/pkg/natives"
)

// SampleJSON is a natives document covering named, unnamed, pointer and
// string natives across three namespaces.
const SampleJSON = `{
  "PLAYER": {
    "0x43A66C31C68491C0": {
      "name": "GET_PLAYER_PED",
      "jhash": "0x43A66C31",
      "comment": "Gets the ped for the specified player.\nUse PLAYER_ID() for the local player.",
      "params": [{ "type": "Player", "name": "player" }],
      "return_type": "Ped",
      "build": "323"
    },
    "0x4F8644AF03D0E0D6": {
      "name": "PLAYER_ID",
      "comment": "",
      "params": [],
      "return_type": "Player",
      "build": "323"
    }
  },
  "ENTITY": {
    "0x06843DA7060A026B": {
      "name": "SET_ENTITY_COORDS",
      "comment": "Teleports the entity.",
      "params": [
        { "type": "Entity", "name": "entity" },
        { "type": "float", "name": "xPos" },
        { "type": "float", "name": "yPos" },
        { "type": "float", "name": "zPos" },
        { "type": "BOOL", "name": "clearArea" }
      ],
      "return_type": "void",
      "build": "323"
    }
  },
  "MISC": {
    "0xB8BA7F44DF1575E1": {
      "name": "_0xB8BA7F44DF1575E1",
      "params": [
        { "type": "float*", "name": "out" },
        { "type": "const char*", "name": "end" }
      ],
      "return_type": "BOOL",
      "build": "1604"
    }
  }
}`

// SampleDatabase loads SampleJSON.
func SampleDatabase(t testing.TB) *natives.Database {
	t.Helper()
	path := WriteSample(t)
	db, err := natives.LoadFile(path)
	if err != nil {
		t.Fatalf("failed to load sample natives: %v", err)
	}
	return db
}

// WriteSample writes SampleJSON to a temporary natives.json and returns its path.
func WriteSample(t testing.TB) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "natives.json")
	if err := os.WriteFile(path, []byte(SampleJSON), 0o600); err != nil {
		t.Fatalf("failed to write sample natives: %v", err)
	}
	return path
}

// Native looks up a native in db or fails the test.
func Native(t testing.TB, db *natives.Database, key string) *natives.Native {
	t.Helper()
	n, err := db.Lookup(key)
	if err != nil {
		t.Fatalf("lookup %s: %v", key, err)
	}
	return n
}

// Namespace looks up a namespace in db or fails the test.
func Namespace(t testing.TB, db *natives.Database, name string) *natives.Namespace {
	t.Helper()
	ns, err := db.Namespace(name)
	if err != nil {
		t.Fatalf("namespace %s: %v", name, err)
	}
	return ns
}
