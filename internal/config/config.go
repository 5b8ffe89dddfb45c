package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"

	appErrors "studentdesk/internal/errors"
)

const (
	KeyUpdateOwner       = "update.owner"
	KeyUpdateRepo        = "update.repo"
	KeyUpdateEndpoint    = "update.endpoint"
	KeyUpdateTimeout     = "update.timeout"
	KeyUpdateDelay       = "update.delay"
	KeyUpdateAssetSuffix = "update.asset-suffix"
	KeyUpdaterPath       = "update.updater-path"
	KeyUpdateDisabled    = "update.disabled"
	KeyUpdateToken       = "update.token"

	KeyDebug = "debug"
	KeyTheme = "theme"
)

const (
	DefaultOwner    = "studentdesk"
	DefaultRepo     = "studentdesk"
	DefaultEndpoint = "https://api.github.com"
	DefaultTimeout  = 5 * time.Second
	// DefaultDelay is how long after startup the update check runs.
	DefaultDelay = 3 * time.Second
	DefaultTheme = "tokyonight"

	configDirName  = ".studentdesk"
	configFileName = "config.yaml"
	envPrefix      = "SD"
)

type initSettings struct {
	workingDir        string
	projectConfigPath string
	userConfigPath    string
}

// Option configures Initialize behaviour. Useful for tests to override paths.
type Option func(*initSettings)

// WithWorkingDir overrides the directory used for project config discovery.
func WithWorkingDir(dir string) Option {
	return func(cfg *initSettings) {
		cfg.workingDir = dir
	}
}

// WithProjectConfig explicitly sets the project config path instead of discovery.
func WithProjectConfig(path string) Option {
	return func(cfg *initSettings) {
		cfg.projectConfigPath = path
	}
}

// WithUserConfig overrides the default user config path.
func WithUserConfig(path string) Option {
	return func(cfg *initSettings) {
		cfg.userConfigPath = path
	}
}

var (
	configOnce sync.Once
	configMu   sync.RWMutex
	configInst *viper.Viper
	initErr    error

	// userConfigPathOverride is used by tests to override the user config path.
	userConfigPathOverride string
)

// Initialize loads configuration using the precedence:
// defaults < user config < project config < environment variables < overrides.
func Initialize(opts ...Option) error {
	configOnce.Do(func() {
		settings := initSettings{}
		for _, opt := range opts {
			opt(&settings)
		}
		initErr = configure(&settings)
	})
	return initErr
}

// ApplyOverrides injects values typically coming from CLI flags.
func ApplyOverrides(overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}
	if err := Initialize(); err != nil {
		return err
	}
	configMu.Lock()
	defer configMu.Unlock()
	if configInst == nil {
		return fmt.Errorf("configuration not initialized")
	}
	for k, v := range overrides {
		configInst.Set(k, v)
	}
	return nil
}

// GetString fetches a string configuration value, initializing on demand.
func GetString(key string) string {
	v, err := getViper()
	if err != nil {
		return ""
	}
	return v.GetString(key)
}

// GetBool fetches a bool configuration value, initializing on demand.
func GetBool(key string) bool {
	v, err := getViper()
	if err != nil {
		return false
	}
	return v.GetBool(key)
}

// GetDuration fetches a duration configuration value, initializing on demand.
func GetDuration(key string) time.Duration {
	v, err := getViper()
	if err != nil {
		return 0
	}
	return v.GetDuration(key)
}

// Set updates a configuration key at runtime, initializing on demand.
func Set(key string, value any) error {
	if err := Initialize(); err != nil {
		return err
	}
	configMu.Lock()
	defer configMu.Unlock()
	if configInst == nil {
		return fmt.Errorf("configuration not initialized")
	}
	configInst.Set(key, value)
	return nil
}

// Update holds the validated settings of the update subsystem.
type Update struct {
	Owner       string
	Repo        string
	Endpoint    string
	Timeout     time.Duration
	Delay       time.Duration
	AssetSuffix string
	UpdaterPath string
	Token       string
	Disabled    bool
}

// UpdateSettings reads the update.* keys and validates them. Every problem
// found is reported, not just the first.
func UpdateSettings() (Update, error) {
	v, err := getViper()
	if err != nil {
		return Update{}, err
	}

	configMu.RLock()
	s := Update{
		Owner:       strings.TrimSpace(v.GetString(KeyUpdateOwner)),
		Repo:        strings.TrimSpace(v.GetString(KeyUpdateRepo)),
		Endpoint:    strings.TrimSpace(v.GetString(KeyUpdateEndpoint)),
		Timeout:     v.GetDuration(KeyUpdateTimeout),
		Delay:       v.GetDuration(KeyUpdateDelay),
		AssetSuffix: strings.TrimSpace(v.GetString(KeyUpdateAssetSuffix)),
		UpdaterPath: strings.TrimSpace(v.GetString(KeyUpdaterPath)),
		Token:       v.GetString(KeyUpdateToken),
		Disabled:    v.GetBool(KeyUpdateDisabled),
	}
	configMu.RUnlock()

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate checks the settings for consistency.
func (s Update) Validate() error {
	var errs *multierror.Error
	if s.Owner == "" {
		errs = multierror.Append(errs, fmt.Errorf("%s must not be empty", KeyUpdateOwner))
	}
	if s.Repo == "" {
		errs = multierror.Append(errs, fmt.Errorf("%s must not be empty", KeyUpdateRepo))
	}
	if s.Timeout <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("%s must be positive, got %s", KeyUpdateTimeout, s.Timeout))
	}
	if s.Delay < 0 {
		errs = multierror.Append(errs, fmt.Errorf("%s must not be negative, got %s", KeyUpdateDelay, s.Delay))
	}
	if u, err := url.Parse(s.Endpoint); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = multierror.Append(errs, fmt.Errorf("%s must be an http(s) URL, got %q", KeyUpdateEndpoint, s.Endpoint))
	}
	if err := errs.ErrorOrNil(); err != nil {
		return appErrors.New(appErrors.CodeConfigurationError, "invalid update configuration", err)
	}
	return nil
}

func configure(settings *initSettings) error {
	workingDir := strings.TrimSpace(settings.workingDir)
	if workingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determine working directory: %w", err)
		}
		workingDir = wd
	}

	userConfigPath := strings.TrimSpace(settings.userConfigPath)
	if userConfigPath == "" {
		path, err := defaultUserConfigPath()
		if err != nil {
			return err
		}
		userConfigPath = path
	}

	projectConfigPath := strings.TrimSpace(settings.projectConfigPath)
	if projectConfigPath == "" {
		path, err := findProjectConfig(workingDir)
		if err != nil {
			return err
		}
		projectConfigPath = path
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := mergeConfigFile(v, userConfigPath); err != nil {
		return fmt.Errorf("load user config: %w", err)
	}
	if err := mergeConfigFile(v, projectConfigPath); err != nil {
		return fmt.Errorf("load project config: %w", err)
	}

	configMu.Lock()
	defer configMu.Unlock()
	configInst = v
	return nil
}

func mergeConfigFile(v *viper.Viper, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	//nolint:gosec // G304: Config loader intentionally reads user and project config files
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

func findProjectConfig(startDir string) (string, error) {
	if strings.TrimSpace(startDir) == "" {
		return "", nil
	}
	dir := startDir
	for {
		candidate := filepath.Join(dir, configDirName, configFileName)
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return "", fmt.Errorf("config path %s is a directory", candidate)
			}
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyUpdateOwner, DefaultOwner)
	v.SetDefault(KeyUpdateRepo, DefaultRepo)
	v.SetDefault(KeyUpdateEndpoint, DefaultEndpoint)
	v.SetDefault(KeyUpdateTimeout, DefaultTimeout)
	v.SetDefault(KeyUpdateDelay, DefaultDelay)
	v.SetDefault(KeyUpdateAssetSuffix, "")
	v.SetDefault(KeyUpdaterPath, "")
	v.SetDefault(KeyUpdateDisabled, false)
	v.SetDefault(KeyUpdateToken, "")
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyTheme, DefaultTheme)
}

func getViper() (*viper.Viper, error) {
	if err := Initialize(); err != nil {
		return nil, err
	}
	configMu.RLock()
	defer configMu.RUnlock()
	if configInst == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	return configInst, nil
}

func reset() {
	configMu.Lock()
	defer configMu.Unlock()
	configInst = nil
	initErr = nil
	configOnce = sync.Once{}
	userConfigPathOverride = ""
}

// ResetForTesting clears package state for tests in other packages.
// Returns a cleanup function that should be deferred.
func ResetForTesting(t interface{ TempDir() string }) func() {
	reset()
	tmp := t.TempDir()
	_ = Initialize(WithWorkingDir(tmp), WithUserConfig(filepath.Join(tmp, configFileName)))
	return reset
}

// SaveTheme persists the theme name to the appropriate config file.
// If a project config (.studentdesk/config.yaml) exists, it updates that file.
// Otherwise, it updates the user config (~/.studentdesk/config.yaml).
// The user config directory is auto-created if needed, but project config
// directories are never auto-created.
func SaveTheme(themeName string) error {
	targetPath, err := findWritableConfigPath()
	if err != nil {
		return fmt.Errorf("find config path: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(targetPath)
	_ = v.ReadInConfig() // ignore error if file doesn't exist

	v.Set(KeyTheme, themeName)

	//nolint:gosec // G301: User config directory needs standard permissions
	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := v.WriteConfigAs(targetPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return Set(KeyTheme, themeName)
}

// findWritableConfigPath returns the project config path if one exists,
// otherwise the user config path.
func findWritableConfigPath() (string, error) {
	wd, err := os.Getwd()
	if err == nil {
		projectPath, err := findProjectConfig(wd)
		if err == nil && projectPath != "" {
			return projectPath, nil
		}
	}

	if userConfigPathOverride != "" {
		return userConfigPathOverride, nil
	}
	return defaultUserConfigPath()
}
