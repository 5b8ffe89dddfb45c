package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	appErrors "studentdesk/internal/errors"
)

func TestInitializeLoadsDefaults(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	userCfg := filepath.Join(tmp, "user.yaml")

	if err := Initialize(WithWorkingDir(tmp), WithUserConfig(userCfg)); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if got := GetString(KeyUpdateOwner); got != DefaultOwner {
		t.Fatalf("expected default %s to be %q, got %q", KeyUpdateOwner, DefaultOwner, got)
	}
	if got := GetDuration(KeyUpdateTimeout); got != DefaultTimeout {
		t.Fatalf("expected default %s to be %s, got %s", KeyUpdateTimeout, DefaultTimeout, got)
	}
	if got := GetDuration(KeyUpdateDelay); got != DefaultDelay {
		t.Fatalf("expected default %s to be %s, got %s", KeyUpdateDelay, DefaultDelay, got)
	}
	if GetBool(KeyUpdateDisabled) {
		t.Fatalf("expected default %s to be false", KeyUpdateDisabled)
	}
	if GetBool(KeyDebug) {
		t.Fatalf("expected default %s to be false", KeyDebug)
	}
	if got := GetString(KeyTheme); got != DefaultTheme {
		t.Fatalf("expected default %s to be %q, got %q", KeyTheme, DefaultTheme, got)
	}
}

func TestProjectConfigOverridesUser(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectDir := filepath.Join(tmp, "school")
	projectCfg := filepath.Join(projectDir, ".studentdesk", "config.yaml")
	writeFile(t, projectCfg, `
update:
  repo: project-repo
  delay: 10s
`)

	userCfg := filepath.Join(tmp, "user.yaml")
	writeFile(t, userCfg, `
update:
  owner: user-owner
  repo: user-repo
  delay: 1s
`)

	nested := filepath.Join(projectDir, "reports", "2025")
	mustMkdir(t, nested)

	if err := Initialize(
		WithWorkingDir(nested),
		WithUserConfig(userCfg),
	); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if got := GetString(KeyUpdateRepo); got != "project-repo" {
		t.Fatalf("expected project config to win for %s, got %q", KeyUpdateRepo, got)
	}
	if got := GetDuration(KeyUpdateDelay); got != 10*time.Second {
		t.Fatalf("expected project delay, got %s", got)
	}
	if got := GetString(KeyUpdateOwner); got != "user-owner" {
		t.Fatalf("expected user config to fill %s, got %q", KeyUpdateOwner, got)
	}
}

func TestEnvironmentAndOverridesPrecedence(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectDir := filepath.Join(tmp, "school")
	projectCfg := filepath.Join(projectDir, ".studentdesk", "config.yaml")
	writeFile(t, projectCfg, `
update:
  disabled: false
  asset-suffix: .msi
  timeout: 5s
`)

	t.Setenv("SD_UPDATE_DISABLED", "true")
	t.Setenv("SD_UPDATE_ASSET_SUFFIX", ".exe")

	if err := Initialize(
		WithWorkingDir(projectDir),
		WithProjectConfig(projectCfg),
		WithUserConfig(filepath.Join(tmp, "missing.yaml")),
	); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if !GetBool(KeyUpdateDisabled) {
		t.Fatalf("expected environment variable to override %s", KeyUpdateDisabled)
	}
	if got := GetString(KeyUpdateAssetSuffix); got != ".exe" {
		t.Fatalf("expected env override for %s, got %q", KeyUpdateAssetSuffix, got)
	}

	overrides := map[string]any{
		KeyUpdateDisabled: false,
		KeyDebug:          true,
	}
	if err := ApplyOverrides(overrides); err != nil {
		t.Fatalf("ApplyOverrides returned error: %v", err)
	}

	if GetBool(KeyUpdateDisabled) {
		t.Fatalf("expected CLI override to set %s=false", KeyUpdateDisabled)
	}
	if !GetBool(KeyDebug) {
		t.Fatalf("expected CLI override to set %s=true", KeyDebug)
	}
}

func TestUpdateSettings(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	userCfg := filepath.Join(tmp, "user.yaml")
	writeFile(t, userCfg, `
update:
  owner: acme
  repo: desk
  endpoint: https://git.example.test/api/v3
  timeout: 2s
  delay: 0s
  asset-suffix: .AppImage
  updater-path: /opt/desk/updater
`)
	t.Setenv("SD_UPDATE_TOKEN", "ghp_example")

	if err := Initialize(WithWorkingDir(tmp), WithUserConfig(userCfg)); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	s, err := UpdateSettings()
	if err != nil {
		t.Fatalf("UpdateSettings returned error: %v", err)
	}

	want := Update{
		Owner:       "acme",
		Repo:        "desk",
		Endpoint:    "https://git.example.test/api/v3",
		Timeout:     2 * time.Second,
		Delay:       0,
		AssetSuffix: ".AppImage",
		UpdaterPath: "/opt/desk/updater",
		Token:       "ghp_example",
	}
	if s != want {
		t.Fatalf("UpdateSettings() = %+v, want %+v", s, want)
	}
}

func TestUpdateSettingsReportsEveryProblem(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	userCfg := filepath.Join(tmp, "user.yaml")
	writeFile(t, userCfg, `
update:
  owner: ""
  repo: ""
  endpoint: ftp://example.test
  timeout: 0s
  delay: -1s
`)

	if err := Initialize(WithWorkingDir(tmp), WithUserConfig(userCfg)); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	_, err := UpdateSettings()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !appErrors.IsCode(err, appErrors.CodeConfigurationError) {
		t.Fatalf("error code = %q, want %q", appErrors.CodeOf(err), appErrors.CodeConfigurationError)
	}
	for _, key := range []string{KeyUpdateOwner, KeyUpdateRepo, KeyUpdateEndpoint, KeyUpdateTimeout, KeyUpdateDelay} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("validation error should mention %s: %v", key, err)
		}
	}
}

func TestInitializeRejectsConfigDirectory(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	userCfg := filepath.Join(tmp, "user.yaml")
	mustMkdir(t, userCfg)

	err := Initialize(WithWorkingDir(tmp), WithUserConfig(userCfg))
	if err == nil || !strings.Contains(err.Error(), "is a directory") {
		t.Fatalf("expected directory error, got %v", err)
	}
}

func TestInitializeRejectsMalformedYAML(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	userCfg := filepath.Join(tmp, "user.yaml")
	writeFile(t, userCfg, "update: [unterminated")

	if err := Initialize(WithWorkingDir(tmp), WithUserConfig(userCfg)); err == nil {
		t.Fatal("expected parse error for malformed YAML")
	}
}

func TestSaveThemeWritesUserConfig(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	t.Chdir(tmp)
	userCfg := filepath.Join(tmp, "home", ".studentdesk", "config.yaml")
	writeFile(t, userCfg, "update:\n  owner: acme\n")
	if err := Initialize(WithWorkingDir(tmp), WithUserConfig(userCfg)); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}
	userConfigPathOverride = userCfg

	if err := SaveTheme("light"); err != nil {
		t.Fatalf("SaveTheme returned error: %v", err)
	}

	data, err := os.ReadFile(userCfg)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), "theme: light") {
		t.Errorf("config should contain saved theme, got:\n%s", data)
	}
	if !strings.Contains(string(data), "owner: acme") {
		t.Errorf("config should preserve existing settings, got:\n%s", data)
	}
	if got := GetString(KeyTheme); got != "light" {
		t.Errorf("running config theme = %q, want light", got)
	}
}

func TestResetForTesting(t *testing.T) {
	cleanup := ResetForTesting(t)
	defer cleanup()

	s, err := UpdateSettings()
	if err != nil {
		t.Fatalf("default settings should validate, got %v", err)
	}
	if s.Endpoint != DefaultEndpoint {
		t.Errorf("Endpoint = %q, want %q", s.Endpoint, DefaultEndpoint)
	}
}

func mustMkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	mustMkdir(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}
