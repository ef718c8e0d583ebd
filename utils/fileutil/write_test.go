package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets", "uhd-4k-sdr", "crt.slangp")
	content := []byte("shaders = 1\n")

	first, err := WriteFile(path, content)
	require.NoError(t, err)
	assert.True(t, first.Changed, "first write should create the file")
	assert.Equal(t, HashContent(content), first.Hash)

	second, err := WriteFile(path, content)
	require.NoError(t, err)
	assert.False(t, second.Changed, "identical content should not be rewritten")
	assert.Equal(t, first.Hash, second.Hash)

	third, err := WriteFile(path, []byte("shaders = 2\n"))
	require.NoError(t, err)
	assert.True(t, third.Changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "shaders = 2\n", string(data))

	// Same length, different content: the hash decides
	fourth, err := WriteFile(path, []byte("shaders = 3\n"))
	require.NoError(t, err)
	assert.True(t, fourth.Changed)
	assert.NotEqual(t, third.Hash, fourth.Hash)
}

func TestCopyTree(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")

	require.NoError(t, os.MkdirAll(filepath.Join(src, "menus", "include"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "menus", "menu-sdr.slang"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "menus", "include", "color.h"), []byte("b"), 0644))

	require.NoError(t, CopyTree(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "menus", "include", "color.h"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))
	assert.True(t, DirExists(filepath.Join(dst, "menus")))
	assert.False(t, DirExists(filepath.Join(dst, "menus", "menu-sdr.slang")))
}
