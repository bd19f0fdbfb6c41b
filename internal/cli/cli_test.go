package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"followcheck/core"
	"followcheck/internal/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{config.EnvConfigPath, config.EnvAddr, config.EnvLogLevel, config.EnvLogFormat, config.EnvProfileBaseURL} {
		t.Setenv(key, "")
	}

	var out, errOut bytes.Buffer
	root := NewRootCommand(&out, &errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestAnalyze_Files(t *testing.T) {
	dir := t.TempDir()
	followers := writeFile(t, dir, "followers_1.json", `[{"string_list_data": [{"value": "bob"}]}, {"string_list_data": [{"value": "carol"}]}]`)
	following := writeFile(t, dir, "following.json", `{"relationships_following": [
		{"string_list_data": [{"value": "bob"}]},
		{"string_list_data": [{"value": "dave"}]},
		{"string_list_data": [{"value": "erin"}]}
	]}`)

	out, err := run(t, "analyze", "--followers", followers, "--following", following)

	require.NoError(t, err)
	assert.Contains(t, out, "2 (66.7%)")
	assert.Contains(t, out, "@dave  https://www.instagram.com/dave")
	assert.Contains(t, out, "@erin  https://www.instagram.com/erin")
}

func TestAnalyze_ExportDirJSON(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join("connections", "followers_and_following")
	writeFile(t, dir, filepath.Join(base, "followers_1.json"), `[{"string_list_data": [{"value": "bob"}]}]`)
	writeFile(t, dir, filepath.Join(base, "followers_2.json"), `[{"string_list_data": [{"value": "Carol"}]}]`)
	writeFile(t, dir, filepath.Join(base, "following.json"), `{"relationships_following": [
		{"string_list_data": [{"value": "carol"}]},
		{"string_list_data": [{"value": "zed"}]}
	]}`)
	writeFile(t, dir, filepath.Join(base, "following_hashtags.json"), `not even json`)
	writeFile(t, dir, filepath.Join(base, "close_friends.json"), `{"relationships_close_friends": []}`)

	out, err := run(t, "analyze", "--export-dir", dir, "--format", "json")
	require.NoError(t, err)

	var result core.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, core.AnalysisResult{
		FollowerCount:           2,
		FollowingCount:          2,
		NotFollowingBack:        []string{"zed"},
		NotFollowingBackPercent: 50,
		FollowBackRate:          50,
	}, result)
}

func TestAnalyze_MissingFollowing(t *testing.T) {
	followers := writeFile(t, t.TempDir(), "followers_1.json", `[]`)

	_, err := run(t, "analyze", "--followers", followers)

	var missing *core.MissingInputError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, core.Following, missing.List)
}

func TestAnalyze_ParseError(t *testing.T) {
	dir := t.TempDir()
	followers := writeFile(t, dir, "followers_1.json", `[{"string_list_data": [`)
	following := writeFile(t, dir, "following.json", `{}`)

	out, err := run(t, "analyze", "--followers", followers, "--following", following)

	var parseErr *core.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, followers, parseErr.Document)
	assert.Empty(t, out)
}

func TestAnalyze_EmptyExportDir(t *testing.T) {
	_, err := run(t, "analyze", "--export-dir", t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no followers or following files found")
}

func TestAnalyze_InvalidFormat(t *testing.T) {
	_, err := run(t, "analyze", "--format", "yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestAnalyze_ProfileBaseURLFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", "report:\n  profile_base_url: https://example.com/u/\n")
	followers := writeFile(t, dir, "followers_1.json", `[]`)
	following := writeFile(t, dir, "following.json", `{"relationships_following": [{"string_list_data": [{"value": "dave"}]}]}`)

	out, err := run(t, "--config", cfgPath, "analyze", "--followers", followers, "--following", following)

	require.NoError(t, err)
	assert.Contains(t, out, "https://example.com/u/dave")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")

	require.NoError(t, err)
	assert.Equal(t, "followcheck dev\n", out)
}
