package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/dhamidi/jdkapi/classfile"
	"github.com/dhamidi/jdkapi/classfile/classfiletest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVerify(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("ok.classinfo", []byte(
		"java/lang/Object:null:2\n--<init>()V\n--hashCode()I\n"), 0o644))
	require.NoError(t, os.WriteFile("bad.classinfo", []byte(
		"java/lang/Object:null:3\n--<init>()V\n"), 0o644))

	stdout, _, err := run(t, "verify", "ok.classinfo")
	require.NoError(t, err)
	assert.Equal(t, "ok.classinfo: 1 classes, 1 constructors, 1 methods\n", stdout)

	_, stderr, err := run(t, "verify", "bad.classinfo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, stderr, "bad.classinfo")

	_, _, err = run(t, "verify", "missing.classinfo")
	assert.Error(t, err)
}

func classTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string][]byte{
		classfile.ModuleInfoName: classfiletest.NewModule("java.base").
			Exports("java/lang").
			Bytes(),
		"java/lang/Object": classfiletest.NewClass("java/lang/Object").
			Super("").
			Constructor(classfile.AccPublic, "()V").
			Bytes(),
		"java/lang/String": classfiletest.NewClass("java/lang/String").
			Method(classfile.AccPublic, "length", "()I").
			Bytes(),
	}
	for name, data := range files {
		path := filepath.Join(root, "java.base", filepath.FromSlash(name)+".class")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}
	return root
}

func stubJimage(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stub not supported on windows")
	}
	bin := filepath.Join(t.TempDir(), "jimage")
	script := `#!/bin/sh
echo "jimage: $2"
echo
echo "Module: java.base"
echo "    java/lang/Object.class"
echo "    java/lang/String.class"
echo "    java/lang/Gone.class"
echo "    module-info.class"
`
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))
	return bin
}

func TestExtractCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	tree := classTree(t)
	jimage := stubJimage(t)

	_, stderr, err := run(t, "extract", "--jimage", jimage, "--extract-dir", tree, "/jdk/lib/modules", "out.classinfo")
	require.NoError(t, err, stderr)
	assert.Contains(t, stderr, "Class not found: java/lang/Gone! Skipping...")
	assert.Contains(t, stderr, "out.classinfo: 2 classes written, 1 skipped")

	data, err := os.ReadFile("out.classinfo")
	require.NoError(t, err)
	assert.Equal(t, "java/lang/Object:null:1\n--<init>()V\njava/lang/String:java/lang/Object:1\n--length()I\n", string(data))

	stdout, _, err := run(t, "verify", "out.classinfo")
	require.NoError(t, err)
	assert.Equal(t, "out.classinfo: 2 classes, 1 constructors, 1 methods\n", stdout)
}

func TestListAndDescribe(t *testing.T) {
	t.Chdir(t.TempDir())
	tree := classTree(t)
	jimage := stubJimage(t)

	stdout, _, err := run(t, "list", "--jimage", jimage, "--extract-dir", tree, "/jdk/lib/modules")
	require.NoError(t, err)
	assert.Equal(t, []string{"java/lang/Object", "java/lang/String", "java/lang/Gone"},
		strings.Fields(stdout))

	stdout, _, err = run(t, "describe", "--extract-dir", tree, "/jdk/lib/modules", "java.lang.String")
	require.NoError(t, err)
	assert.Equal(t, "java/lang/String:java/lang/Object:1\n--length()I\n", stdout)

	stdout, _, err = run(t, "describe", "-f", "java", "--extract-dir", tree, "/jdk/lib/modules", "java/lang/String")
	require.NoError(t, err)
	assert.Contains(t, stdout, "class String extends java.lang.Object {\n    int length() {}\n}\n")

	_, _, err = run(t, "describe", "-f", "xml", "--extract-dir", tree, "/jdk/lib/modules", "java/lang/String")
	assert.ErrorContains(t, err, "unknown format")
}

func TestInvalidConfiguration(t *testing.T) {
	t.Chdir(t.TempDir())
	_, _, err := run(t, "extract", "--extract-dir", "/does/not/exist", "/jdk/lib/modules", "out.classinfo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
