package targets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRegistryYAML(t *testing.T) {
	path := writeFile(t, "targets.yaml", `
targets:
  - id: status
    name: Status API
    url: " https://status.example.com/api.json "
  - id: robots
    url: https://example.com/robots.txt
    format: RAW
`)

	reg, err := LoadRegistry(path)
	require.NoError(t, err)

	all := reg.All()
	require.Len(t, all, 2)
	assert.Equal(t, "status", all[0].ID)
	assert.Equal(t, "https://status.example.com/api.json", all[0].URL)
	assert.Equal(t, FormatJSON, all[0].Format)

	robots, ok := reg.ByID("robots")
	require.True(t, ok)
	assert.Equal(t, FormatRaw, robots.Format)
	assert.Equal(t, "robots", robots.Name)

	_, ok = reg.ByID("missing")
	assert.False(t, ok)
}

func TestLoadRegistryJSON(t *testing.T) {
	path := writeFile(t, "targets.json", `{"targets":[{"id":"a","url":"http://a","format":"yaml"}]}`)

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	a, ok := reg.ByID("a")
	require.True(t, ok)
	assert.Equal(t, FormatYAML, a.Format)
}

func TestLoadRegistryUnknownExtensionFallsBack(t *testing.T) {
	path := writeFile(t, "targets.conf", `{"targets":[{"id":"a","url":"http://a"}]}`)

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Len(t, reg.All(), 1)
}

func TestLoadRegistryErrors(t *testing.T) {
	cases := map[string]string{
		"duplicate": `
targets:
  - id: dup
    url: http://one
  - id: dup
    url: http://two
`,
		"missing url": `
targets:
  - id: nourl
`,
		"bad format": `
targets:
  - id: x
    url: http://x
    format: xml
`,
		"empty": `targets: []`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadRegistry(writeFile(t, "targets.yaml", content))
			assert.Error(t, err)
		})
	}
}

func TestLoadRegistryEmptyPath(t *testing.T) {
	_, err := LoadRegistry("  ")
	assert.Error(t, err)
}

func TestAllReturnsCopy(t *testing.T) {
	reg, err := NewRegistry([]Target{{ID: "a", URL: "http://a"}})
	require.NoError(t, err)

	all := reg.All()
	all[0].URL = "mutated"
	a, _ := reg.ByID("a")
	assert.Equal(t, "http://a", a.URL)
}

func TestValidFormat(t *testing.T) {
	assert.True(t, ValidFormat(FormatRaw))
	assert.True(t, ValidFormat(FormatJSON))
	assert.True(t, ValidFormat(FormatYAML))
	assert.False(t, ValidFormat(""))
	assert.False(t, ValidFormat("toml"))
}
