package update

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"studentdesk/internal/debug"
	appErrors "studentdesk/internal/errors"
)

// Error variables for handoff failures. These are the only update errors
// reported to the user.
var (
	ErrUpdaterMissing       = errors.New("updater missing")
	ErrUpdaterNotExecutable = errors.New("updater is not executable")
	ErrHandoffFailed        = errors.New("handoff failed")
)

// updaterBaseName is the companion updater shipped next to the application.
const updaterBaseName = "updater"

// HandoffRequest carries everything the external updater needs. It is built
// only after the user confirmed the update and is consumed exactly once.
type HandoffRequest struct {
	DownloadURL string
	TargetPath  string
	UpdaterPath string
}

// Validate checks that all fields are present.
func (r HandoffRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(r.DownloadURL) == "" {
		missing = append(missing, "download URL")
	}
	if strings.TrimSpace(r.TargetPath) == "" {
		missing = append(missing, "target path")
	}
	if strings.TrimSpace(r.UpdaterPath) == "" {
		missing = append(missing, "updater path")
	}
	if len(missing) > 0 {
		return appErrors.New(appErrors.CodeHandoffFailed,
			"incomplete handoff request: missing "+strings.Join(missing, ", "), ErrHandoffFailed)
	}
	return nil
}

// Args returns the positional arguments passed to the updater.
func (r HandoffRequest) Args() []string {
	return []string{r.DownloadURL, r.TargetPath}
}

// Coordinator launches the external updater and terminates this process.
type Coordinator struct {
	exit    func(code int)
	start   func(cmd *exec.Cmd) error
	handled atomic.Bool
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithExit replaces the process exit function.
func WithExit(exit func(code int)) CoordinatorOption {
	return func(c *Coordinator) {
		if exit != nil {
			c.exit = exit
		}
	}
}

// WithStarter replaces the function used to start the updater process.
func WithStarter(start func(cmd *exec.Cmd) error) CoordinatorOption {
	return func(c *Coordinator) {
		if start != nil {
			c.start = start
		}
	}
}

// NewCoordinator creates a coordinator that exits via os.Exit.
func NewCoordinator(opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		exit:  os.Exit,
		start: func(cmd *exec.Cmd) error { return cmd.Start() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Handoff verifies the updater, launches it detached with the download URL
// and target path, then terminates the process. It only returns when the
// handoff did not happen, in which case the application keeps running.
func (c *Coordinator) Handoff(req HandoffRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := checkUpdater(req.UpdaterPath); err != nil {
		return err
	}
	if !c.handled.CompareAndSwap(false, true) {
		return appErrors.New(appErrors.CodeHandoffFailed, "handoff already performed", ErrHandoffFailed)
	}

	cmd := exec.Command(req.UpdaterPath, req.Args()...)
	cmd.Dir = filepath.Dir(req.UpdaterPath)
	setDetached(cmd)

	debug.Logf("starting updater: %s", cmd.String())
	if err := c.start(cmd); err != nil {
		c.handled.Store(false)
		return appErrors.New(appErrors.CodeHandoffFailed, "start updater", fmt.Errorf("%w: %v", ErrHandoffFailed, err))
	}

	if cmd.Process != nil {
		debug.Logf("updater started with PID %d", cmd.Process.Pid)
		if err := cmd.Process.Release(); err != nil {
			debug.Logf("failed to release updater process: %v", err)
		}
	}

	debug.Log("exiting for update handoff")
	debug.Close()
	c.exit(0)
	return nil
}

func checkUpdater(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return appErrors.New(appErrors.CodeUpdaterMissing, fmt.Sprintf("%s missing!", filepath.Base(path)), ErrUpdaterMissing)
	}
	if err != nil {
		return appErrors.New(appErrors.CodeUpdaterMissing, fmt.Sprintf("stat %s: %v", path, err), ErrUpdaterMissing)
	}
	if !info.Mode().IsRegular() || !isExecutable(path, info) {
		return appErrors.New(appErrors.CodeUpdaterNotExecutable, fmt.Sprintf("%s is not executable", path), ErrUpdaterNotExecutable)
	}
	return nil
}

// UpdaterBinaryName returns the companion updater file name for this platform.
func UpdaterBinaryName() string {
	if runtime.GOOS == "windows" {
		return updaterBaseName + ".exe"
	}
	return updaterBaseName
}

// TargetPath returns the resolved path of the running executable, which is
// the file the updater replaces.
func TargetPath() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("get executable path: %w", err)
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return "", fmt.Errorf("resolve symlinks: %w", err)
	}
	return execPath, nil
}

// DefaultUpdaterPath returns the updater expected next to the running executable.
func DefaultUpdaterPath() (string, error) {
	target, err := TargetPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(target), UpdaterBinaryName()), nil
}
