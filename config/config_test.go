package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears the variables Load reads and moves into an empty directory
// so that no .env file is picked up.
func isolate(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvJavaHome, EnvJimage, EnvExtractDir} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Chdir(t.TempDir())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jdkapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	isolate(t)
	c, err := Load("")
	require.NoError(t, err)

	assert.True(t, c.ModuleFilter)
	assert.True(t, c.LinkCheck)
	assert.False(t, c.KeepExtracted)
	assert.Equal(t, 0, c.Log.Verbosity)
	assert.Empty(t, c.AddModules)
	assert.Equal(t, "jimage", c.JimagePath())
	assert.Equal(t, "", c.ImagePath())
	assert.NoError(t, c.Validate())
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	extractDir := t.TempDir()
	path := writeConfig(t, `
jimage: /opt/jdk/bin/jimage
extract_dir: `+extractDir+`
add_modules: [jdk.incubator.vector]
link_check: false
log:
  verbosity: 2
  file: /tmp/jdkapi.log
`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/jdk/bin/jimage", c.JimagePath())
	assert.Equal(t, extractDir, c.ExtractDir)
	assert.Equal(t, []string{"jdk.incubator.vector"}, c.AddModules)
	assert.False(t, c.LinkCheck)
	assert.True(t, c.ModuleFilter, "unset keys keep their default")
	assert.Equal(t, 2, c.Log.Verbosity)
	assert.Equal(t, "/tmp/jdkapi.log", c.Log.File)
	assert.NoError(t, c.Validate())
}

func TestLoadFileErrors(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "unable to read configuration file")

	_, err = Load(writeConfig(t, "no_such_key: 1\n"))
	assert.ErrorContains(t, err, "unable to parse configuration file")

	_, err = Load(writeConfig(t, "add_modules: {a: b}\n"))
	assert.Error(t, err)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	isolate(t)
	extractDir := t.TempDir()
	t.Setenv(EnvJimage, "/env/jimage")
	t.Setenv(EnvExtractDir, extractDir)

	c, err := Load(writeConfig(t, "jimage: /file/jimage\n"))
	require.NoError(t, err)
	assert.Equal(t, "/env/jimage", c.Jimage)
	assert.Equal(t, extractDir, c.ExtractDir)
}

func TestDotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(DotEnvFile, []byte("JDKAPI_JIMAGE=/dotenv/jimage\n"), 0o644))

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/dotenv/jimage", c.Jimage)
}

func TestJavaHome(t *testing.T) {
	isolate(t)
	home := t.TempDir()
	bin := filepath.Join(home, "bin", "jimage")
	require.NoError(t, os.MkdirAll(filepath.Dir(bin), 0o755))
	require.NoError(t, os.WriteFile(bin, nil, 0o755))
	t.Setenv(EnvJavaHome, home)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, bin, c.JimagePath())
	assert.Equal(t, filepath.Join(home, "lib", "modules"), c.ImagePath())

	t.Run("explicit path wins", func(t *testing.T) {
		c.Jimage = "/custom/jimage"
		assert.Equal(t, "/custom/jimage", c.JimagePath())
	})

	t.Run("missing binary falls back to PATH", func(t *testing.T) {
		c := &Config{JavaHome: t.TempDir()}
		assert.Equal(t, "jimage", c.JimagePath())
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"missing extract dir", func(c *Config) { c.ExtractDir = "/does/not/exist" }},
		{"verbosity too high", func(c *Config) { c.Log.Verbosity = 3 }},
		{"verbosity too low", func(c *Config) { c.Log.Verbosity = -5 }},
		{"empty module name", func(c *Config) { c.AddModules = []string{""} }},
		{"empty limit name", func(c *Config) { c.LimitModules = []string{"java.base", ""} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(c)
			assert.ErrorContains(t, c.Validate(), "invalid configuration")
		})
	}
}
