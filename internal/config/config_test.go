package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolatedOptions points both config layers into a fresh temp dir.
func isolatedOptions(t *testing.T) (LoadOptions, string, string) {
	t.Helper()

	dir := t.TempDir()
	userPath := filepath.Join(dir, "user", "config.yml")
	projectDir := filepath.Join(dir, "project")
	return LoadOptions{
		ProjectDir:     projectDir,
		UserConfigPath: userPath,
		WarningWriter:  &bytes.Buffer{},
	}, userPath, ProjectConfigPath(projectDir)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	opts, _, _ := isolatedOptions(t)
	cfg, err := LoadWithOptions(opts)
	require.NoError(t, err)

	assert.Equal(t, "CHANGELOG.md", cfg.ChangelogPath)
	assert.Empty(t, cfg.RepoURL)
	assert.Equal(t, "origin", cfg.Remote)
	assert.Equal(t, "v", cfg.TagPrefix)
	assert.Equal(t, "2006-01-02", cfg.DateFormat)
	assert.False(t, cfg.PlainOutput)
}

func TestLoad_Layering(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		user    string
		project string
		check   func(t *testing.T, cfg *Configuration)
	}{
		"user overrides defaults": {
			user: "tag_prefix: release-\n",
			check: func(t *testing.T, cfg *Configuration) {
				assert.Equal(t, "release-", cfg.TagPrefix)
				assert.Equal(t, "origin", cfg.Remote)
			},
		},
		"project overrides user": {
			user:    "tag_prefix: release-\nremote: upstream\n",
			project: "tag_prefix: \"\"\n",
			check: func(t *testing.T, cfg *Configuration) {
				assert.Empty(t, cfg.TagPrefix)
				assert.Equal(t, "upstream", cfg.Remote)
			},
		},
		"repo url trailing slash trimmed": {
			project: "repo_url: https://github.com/example/project/\n",
			check: func(t *testing.T, cfg *Configuration) {
				assert.Equal(t, "https://github.com/example/project", cfg.RepoURL)
			},
		},
		"empty project file keeps defaults": {
			project: "   \n",
			check: func(t *testing.T, cfg *Configuration) {
				assert.Equal(t, "CHANGELOG.md", cfg.ChangelogPath)
			},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			opts, userPath, projectPath := isolatedOptions(t)
			if tt.user != "" {
				writeFile(t, userPath, tt.user)
			}
			if tt.project != "" {
				writeFile(t, projectPath, tt.project)
			}

			cfg, err := LoadWithOptions(opts)
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_EnvOverridesFiles(t *testing.T) {
	opts, _, projectPath := isolatedOptions(t)
	writeFile(t, projectPath, "repo_url: https://github.com/from/file\nplain_output: false\n")

	t.Setenv("CHANGEGEN_REPO_URL", "https://github.com/from/env")
	t.Setenv("CHANGEGEN_PLAIN_OUTPUT", "true")

	cfg, err := LoadWithOptions(opts)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/from/env", cfg.RepoURL)
	assert.True(t, cfg.PlainOutput)
}

func TestLoad_JSONProjectConfig(t *testing.T) {
	t.Parallel()

	opts, _, projectPath := isolatedOptions(t)
	warnings := &bytes.Buffer{}
	opts.WarningWriter = warnings
	writeFile(t, JSONPathFor(projectPath), `{"changelog_path": "docs/CHANGES.md"}`)

	cfg, err := LoadWithOptions(opts)
	require.NoError(t, err)
	assert.Equal(t, "docs/CHANGES.md", cfg.ChangelogPath)
	assert.Contains(t, warnings.String(), "Using JSON config")
	assert.Contains(t, warnings.String(), "changegen config migrate")
}

func TestLoad_YAMLPreferredOverJSON(t *testing.T) {
	t.Parallel()

	opts, _, projectPath := isolatedOptions(t)
	warnings := &bytes.Buffer{}
	opts.WarningWriter = warnings
	writeFile(t, projectPath, "changelog_path: from-yaml.md\n")
	writeFile(t, JSONPathFor(projectPath), `{"changelog_path": "from-json.md"}`)

	cfg, err := LoadWithOptions(opts)
	require.NoError(t, err)
	assert.Equal(t, "from-yaml.md", cfg.ChangelogPath)
	assert.Contains(t, warnings.String(), "ignored")
}

func TestLoad_SkipWarnings(t *testing.T) {
	t.Parallel()

	opts, _, projectPath := isolatedOptions(t)
	warnings := &bytes.Buffer{}
	opts.WarningWriter = warnings
	opts.SkipWarnings = true
	writeFile(t, JSONPathFor(projectPath), `{"remote": "upstream"}`)

	cfg, err := LoadWithOptions(opts)
	require.NoError(t, err)
	assert.Equal(t, "upstream", cfg.Remote)
	assert.Empty(t, warnings.String())
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		project string
		wantErr string
	}{
		"bad yaml syntax": {
			project: "changelog_path: [unclosed\n",
			wantErr: "validating YAML syntax",
		},
		"invalid repo url": {
			project: "repo_url: not a url\n",
			wantErr: "repo_url",
		},
		"empty changelog path": {
			project: "changelog_path: \"\"\n",
			wantErr: "changelog_path",
		},
		"date format without layout": {
			project: "date_format: today\n",
			wantErr: "date_format",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			opts, _, projectPath := isolatedOptions(t)
			writeFile(t, projectPath, tt.project)

			_, err := LoadWithOptions(opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ExplicitProjectConfigPath(t *testing.T) {
	t.Parallel()

	opts, _, _ := isolatedOptions(t)
	custom := filepath.Join(t.TempDir(), "custom.yml")
	writeFile(t, custom, "remote: fork\n")
	opts.ProjectConfigPath = custom

	cfg, err := LoadWithOptions(opts)
	require.NoError(t, err)
	assert.Equal(t, "fork", cfg.Remote)
}

func TestResolveChangelogPath(t *testing.T) {
	t.Parallel()

	cfg := &Configuration{ChangelogPath: "CHANGELOG.md"}
	assert.Equal(t, filepath.Join("/repo", "CHANGELOG.md"), cfg.ResolveChangelogPath("/repo"))
	assert.Equal(t, "CHANGELOG.md", cfg.ResolveChangelogPath(""))

	abs := &Configuration{ChangelogPath: "/srv/CHANGES.md"}
	assert.Equal(t, "/srv/CHANGES.md", abs.ResolveChangelogPath("/repo"))
}

func TestConfigFiles(t *testing.T) {
	t.Parallel()

	opts, userPath, projectPath := isolatedOptions(t)
	writeFile(t, JSONPathFor(projectPath), `{}`)

	files := ConfigFiles(opts)
	require.Len(t, files, 2)

	assert.Equal(t, SourceUser, files[0].Source)
	assert.Equal(t, userPath, files[0].Path)
	assert.False(t, files[0].Exists)

	assert.Equal(t, SourceProject, files[1].Source)
	assert.Equal(t, JSONPathFor(projectPath), files[1].Path)
	assert.True(t, files[1].Exists)
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "repo_url", envTransform("CHANGEGEN_REPO_URL"))
	assert.Equal(t, "plain_output", envTransform("CHANGEGEN_PLAIN_OUTPUT"))
}

func TestKnownKeys(t *testing.T) {
	t.Parallel()

	defaults := GetDefaults()
	for _, key := range SortedKeys() {
		schema, err := GetKeySchema(key)
		require.NoError(t, err)
		assert.Equal(t, key, schema.Path)
		assert.NotEmpty(t, schema.Description, key)
		assert.Contains(t, defaults, key)
		assert.Contains(t, GetDefaultConfigTemplate(), key+":")
	}

	assert.Equal(t, "CHANGEGEN_TAG_PREFIX", KnownKeys["tag_prefix"].EnvVar())

	_, err := GetKeySchema("nope")
	assert.Equal(t, ErrUnknownKey{Key: "nope"}, err)
}

func TestConfiguration_Value(t *testing.T) {
	t.Parallel()

	cfg := &Configuration{ChangelogPath: "C.md", Remote: "origin", PlainOutput: true}

	v, err := cfg.Value("changelog_path")
	require.NoError(t, err)
	assert.Equal(t, "C.md", v)

	v, err = cfg.Value("plain_output")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	_, err = cfg.Value("nope")
	assert.Error(t, err)
}
