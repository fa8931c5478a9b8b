package image

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "java.base", "module-info.class"), []byte("mi"))
	writeFile(t, filepath.Join(root, "java.base", "java", "lang", "Object.class"), []byte("obj"))
	writeFile(t, filepath.Join(root, "java.sql", "module-info.class"), []byte("mi"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "not-a-module"), 0o755))
	writeFile(t, filepath.Join(root, "stray.txt"), []byte("x"))

	d := Dir{Root: root}

	t.Run("modules", func(t *testing.T) {
		modules, err := d.Modules()
		require.NoError(t, err)
		assert.Equal(t, []string{"java.base", "java.sql"}, modules)
	})

	t.Run("read class", func(t *testing.T) {
		data, err := d.ReadClass("java.base", "java/lang/Object")
		require.NoError(t, err)
		assert.Equal(t, []byte("obj"), data)
	})

	t.Run("missing class", func(t *testing.T) {
		_, err := d.ReadClass("java.base", "java/lang/Missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("escaping names", func(t *testing.T) {
		for _, name := range []string{"../java.base/java/lang/Object", "/etc/passwd", "a//b", ""} {
			_, err := d.ReadClass("java.base", name)
			assert.ErrorIs(t, err, ErrNotFound, name)
		}
		_, err := d.ReadClass("..", "x")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := Dir{Root: filepath.Join(root, "nope")}.Modules()
		assert.Error(t, err)
	})
}

func TestMemory(t *testing.T) {
	m := Memory{}
	m.Add("java.sql", "java/sql/Driver", []byte("d"))
	m.Add("java.base", "java/lang/Object", []byte("o"))

	modules, err := m.Modules()
	require.NoError(t, err)
	assert.Equal(t, []string{"java.base", "java.sql"}, modules)

	data, err := m.ReadClass("java.sql", "java/sql/Driver")
	require.NoError(t, err)
	assert.Equal(t, []byte("d"), data)

	_, err = m.ReadClass("java.sql", "java/lang/Object")
	assert.ErrorIs(t, err, ErrNotFound)
}

// stubJimage writes a shell script standing in for the jimage binary.
func stubJimage(t *testing.T, script string) Tool {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stub not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "jimage")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return Tool{Path: path}
}

func TestToolList(t *testing.T) {
	tool := stubJimage(t, `echo "jimage: $2"; echo; echo "Module: java.base"; echo "    java/lang/Object.class"`)

	var out bytes.Buffer
	require.NoError(t, tool.List(context.Background(), "/jdk/lib/modules", &out))
	assert.Equal(t, "jimage: /jdk/lib/modules\n\nModule: java.base\n    java/lang/Object.class\n", out.String())
}

func TestToolFailure(t *testing.T) {
	tool := stubJimage(t, `echo "Error: cannot open image" >&2; exit 3`)

	err := tool.List(context.Background(), "/missing", &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jimage list")
	assert.Contains(t, err.Error(), "cannot open image")
}

func TestExtractTemp(t *testing.T) {
	tool := stubJimage(t, `mkdir -p "$3/java.base" && printf mi > "$3/java.base/module-info.class"`)

	ex, err := tool.ExtractTemp(context.Background(), "/jdk/lib/modules")
	require.NoError(t, err)

	modules, err := ex.Modules()
	require.NoError(t, err)
	assert.Equal(t, []string{"java.base"}, modules)

	require.NoError(t, ex.Close())
	_, err = os.Stat(ex.Root)
	assert.True(t, os.IsNotExist(err), "temporary extraction should be removed")

	t.Run("keep", func(t *testing.T) {
		ex, err := tool.ExtractTemp(context.Background(), "/jdk/lib/modules")
		require.NoError(t, err)
		ex.Keep()
		require.NoError(t, ex.Close())
		_, err = os.Stat(ex.Root)
		assert.NoError(t, err)
		os.RemoveAll(ex.Root)
	})

	t.Run("failure cleans up", func(t *testing.T) {
		failing := stubJimage(t, `echo boom >&2; exit 1`)
		_, err := failing.ExtractTemp(context.Background(), "/jdk/lib/modules")
		assert.Error(t, err)
	})
}

func TestExistingIsNotRemoved(t *testing.T) {
	dir := t.TempDir()
	ex := Existing(dir)
	require.NoError(t, ex.Close())
	_, err := os.Stat(dir)
	assert.NoError(t, err)
}
