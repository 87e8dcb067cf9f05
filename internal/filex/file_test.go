package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureDir_RelativeToCWD(t *testing.T) {
	tmp, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	defer chdir(t, tmp)()

	got, err := EnsureDir("downloads")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "downloads"), got)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}

	again, err := EnsureDir("downloads")
	require.NoError(t, err)
	require.Equal(t, got, again)
}

func TestEnsureDir_FileInTheWay(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "x")
	require.NoError(t, os.WriteFile(blocker, []byte("f"), 0o600))

	_, err := EnsureDir(blocker)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mkdir")
}

func TestSafeName(t *testing.T) {
	tests := map[string]string{
		"notes.pdf":          "notes.pdf",
		"../../etc/passwd":   "passwd",
		`C:\temp\lecture.md`: "lecture.md",
		"a:b?.pdf":           "a_b_.pdf",
		"":                   "fallback",
		"..":                 "fallback",
		"/":                  "fallback",
		"  ":                 "fallback",
	}
	for in, want := range tests {
		assert.Equal(t, want, SafeName(in, "fallback"), "input %q", in)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.md")

	require.NoError(t, WriteFileAtomic(path, []byte("v1"), 0o600))
	require.NoError(t, WriteFileAtomic(path, []byte("v2"), 0o600))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must be cleaned up")

	err = WriteFileAtomic(filepath.Join(dir, "missing", "x"), []byte("x"), 0o600)
	assert.Error(t, err)
}
