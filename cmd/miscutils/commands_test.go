package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/miscutils/pkg/config"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	config.ResetCache()
	t.Cleanup(config.ResetCache)

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestCleanCommand(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	t.Run("file with flags", func(t *testing.T) {
		out, err := run(t, "", "clean", "testdata/page.html",
			"--acl", "testdata/acl.yaml",
			"--link-protection",
			"--absolute-domain", "example.com",
		)
		require.NoError(t, err)
		assert.Contains(t, out, `<a href="https://example.com/docs">docs</a>`)
		assert.Contains(t, out, "[link removed]")
		assert.Contains(t, out, `<script type="math/tex">a^2+b^2=c^2</script>`)
		assert.NotContains(t, out, "alert")
		assert.NotContains(t, out, "ads.example")
	})

	t.Run("stdin", func(t *testing.T) {
		out, err := run(t, `<b onclick="x()">bold</b>`, "clean")
		require.NoError(t, err)
		assert.Equal(t, "<b>bold</b>", out)
	})

	t.Run("flags override env", func(t *testing.T) {
		t.Setenv("SANITIZE_ABSOLUTE_DOMAIN", "env.example")

		out, err := run(t, `<a href="/x">x</a>`, "clean")
		require.NoError(t, err)
		assert.Equal(t, `<a href="https://env.example/x">x</a>`, out)

		out, err = run(t, `<a href="/x">x</a>`, "clean", "--absolute-domain", "flag.example")
		require.NoError(t, err)
		assert.Equal(t, `<a href="https://flag.example/x">x</a>`, out)
	})

	t.Run("env file", func(t *testing.T) {
		// Setenv registers the restore, Unsetenv lets the file provide the value.
		t.Setenv("SANITIZE_ABSOLUTE_DOMAIN", "")
		require.NoError(t, os.Unsetenv("SANITIZE_ABSOLUTE_DOMAIN"))

		out, err := run(t, `<a href="/x">x</a>`, "clean", "--env-file", "testdata/test.env")
		require.NoError(t, err)
		assert.Equal(t, `<a href="https://env.example/x">x</a>`, out)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, "", "clean", "testdata/nope.html")
		require.Error(t, err)
	})

	t.Run("missing acl", func(t *testing.T) {
		_, err := run(t, "<p>x</p>", "clean", "--acl", "testdata/nope.yaml")
		require.Error(t, err)
	})
}

func TestMarkdownCommand(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	out, err := run(t, "**bold** <script>alert(1)</script>", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.NotContains(t, out, "script")
}

func TestInvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")

	_, err := run(t, "<p>x</p>", "clean")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}
