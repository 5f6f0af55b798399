package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestList_DirectoriesFirstThenAlphabetical(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "zeta"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "alpha"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"), []byte("x\n1\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte("[]"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), nil, 0644))

	entries, err := List(dir, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"..", "alpha", "zeta", "a.json", "b.csv"}, names(entries))

	assert.True(t, entries[0].IsParent())
	assert.Equal(t, filepath.Dir(dir), entries[0].Path)
	assert.True(t, entries[1].IsDir)
	assert.False(t, entries[4].IsDir)
	assert.Equal(t, int64(4), entries[4].Size)
}

func TestList_ShowHidden(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), nil, 0644))

	entries, err := List(dir, true)
	require.NoError(t, err)
	assert.Contains(t, names(entries), ".env")
}

func TestList_Errors(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "missing"), false)
	assert.True(t, os.IsNotExist(err))
}

func TestList_RootHasNoParent(t *testing.T) {
	root := string(filepath.Separator)
	entries, err := List(root, false)
	if err != nil {
		t.Skipf("cannot read root: %v", err)
	}
	for _, e := range entries {
		assert.False(t, e.IsParent())
	}
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", HumanSize(512))
	assert.Equal(t, "1.5 KB", HumanSize(1536))
	assert.Equal(t, "2.0 MB", HumanSize(2*1024*1024))
}
