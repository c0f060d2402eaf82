package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type nested struct {
	File string `json:"file"`
	Url  string `json:"url"`
}

type testConfig struct {
	Threshold float64 `json:"threshold"`
	TopK      int     `json:"top_k"`
	Database  nested  `json:"database"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "app.json5")

	_, err := ReadConfig[testConfig](name)
	require.ErrorIs(t, err, os.ErrNotExist)

	writeFile(t, name, `{
		// comments are allowed
		threshold: 60,
		top_k: 5,
		database: { file: "mapper.db" },
	}`)
	writeFile(t, LocalName(name), `{ top_k: 3, database: { url: "libsql://example" } }`)

	config, err := ReadConfig[testConfig](name)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, testConfig{
		Threshold: 60,
		TopK:      3,
		Database:  nested{File: "mapper.db", Url: "libsql://example"},
	}, config)

	writeFile(t, name, `{ threshold: `)
	_, err = ReadConfig[testConfig](name)
	require.Error(t, err)
}

func TestReadRecursively(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(deep, 0755))
	writeFile(t, filepath.Join(root, "app.json5"), `{ top_k: 7 }`)

	config, path, err := ReadRecursively[testConfig](deep, "app.json5")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 7, config.TopK)
	require.Equal(t, filepath.Join(root, "app.json5"), path)

	_, _, err = ReadRecursively[testConfig](deep, "missing-config-name.json5")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWithDefaults(t *testing.T) {
	config, err := WithDefaults(
		testConfig{TopK: 3},
		testConfig{Threshold: 60, TopK: 5, Database: nested{File: "mapper.db"}},
	)
	require.NoError(t, err)
	require.Equal(t, testConfig{
		Threshold: 60,
		TopK:      3,
		Database:  nested{File: "mapper.db"},
	}, config)
}

func TestLocalName(t *testing.T) {
	require.Equal(t, filepath.Join("conf", "app.local.json5"), LocalName(filepath.Join("conf", "app.json5")))
}
