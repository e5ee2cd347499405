package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
)

const (
	// DefaultEnvFile is the config file name looked up in the working directory.
	DefaultEnvFile = ".env"

	appDirName    = "supabase-mcp"
	globalEnvFile = ".env"
)

// Locator finds the config file to resolve settings from. The OS hooks are
// exposed so the lookup can be exercised for any platform.
type Locator struct {
	Getwd       func() (string, error)
	UserHomeDir func() (string, error)
	Getenv      func(string) string
	Stat        func(string) (fs.FileInfo, error)
	GOOS        string
	Logger      *zap.Logger
}

// NewLocator returns a Locator bound to the running process.
func NewLocator(logger *zap.Logger) *Locator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Locator{
		Getwd:       os.Getwd,
		UserHomeDir: os.UserHomeDir,
		Getenv:      os.Getenv,
		Stat:        os.Stat,
		GOOS:        runtime.GOOS,
		Logger:      logger,
	}
}

// Locate returns the path of the config file to use, or an empty string when
// there is none. A file named filename in the working directory wins over the
// deprecated global path, which is not inspected at all in that case.
func (l *Locator) Locate(filename string) (string, error) {
	if filename == "" {
		filename = DefaultEnvFile
	}

	local, err := l.localPath(filename)
	if err != nil {
		return "", err
	}
	info, err := l.probe(local)
	if err != nil {
		return "", err
	}
	if info != nil && info.Mode().IsRegular() {
		return local, nil
	}

	global, err := l.globalPath()
	if err != nil {
		return "", err
	}
	if global == "" {
		return "", nil
	}

	info, err = l.probe(global)
	if err != nil {
		return "", err
	}
	if info == nil {
		return "", nil
	}

	l.Logger.Error("DEPRECATED: global config file will be removed in a future release, use your IDE's native MCP config instead",
		zap.String("path", global))
	return global, nil
}

// localPath resolves filename against the working directory. Absolute names
// are used as given.
func (l *Locator) localPath(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		return filepath.Clean(filename), nil
	}

	wd, err := l.Getwd()
	if err != nil {
		return "", &ConfigFileAccessError{Path: filename, Err: err}
	}

	local, err := filepath.Abs(filepath.Join(wd, filename))
	if err != nil {
		return "", &ConfigFileAccessError{Path: filename, Err: err}
	}
	return local, nil
}

// globalPath returns the per-user config file location, or an empty string
// when it cannot exist on this platform.
func (l *Locator) globalPath() (string, error) {
	if l.GOOS == "windows" {
		appData := l.Getenv("APPDATA")
		if appData == "" {
			return "", nil
		}
		return filepath.Join(appData, appDirName, globalEnvFile), nil
	}

	home, err := l.UserHomeDir()
	if err != nil {
		return "", &ConfigFileAccessError{Path: filepath.Join("~", ".config", appDirName, globalEnvFile), Err: err}
	}
	return filepath.Join(home, ".config", appDirName, globalEnvFile), nil
}

// probe stats path. A missing file yields (nil, nil).
func (l *Locator) probe(path string) (fs.FileInfo, error) {
	info, err := l.Stat(path)
	switch {
	case err == nil:
		return info, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	default:
		return nil, &ConfigFileAccessError{Path: path, Err: err}
	}
}
