// Package paths centralizes every on-disk location hoard cares about:
// the config dir, the data dir, the hoard tree, and the operation-log
// history, resolved per platform.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/adrg/xdg"
	"github.com/shadow53/hoard-go/pkg/herr"
)

// Environment variable overrides for the config and data directories.
const (
	EnvConfigDir = "HOARD_CONFIG_DIR"
	EnvDataDir   = "HOARD_DATA_DIR"
)

// AppDirName is the directory name hoard uses under XDG/Windows roots.
// DarwinBundleID is the macOS Application Support subdirectory name.
const (
	AppDirName     = "hoard"
	DarwinBundleID = "com.shadow53.hoard"
	windowsVendor  = "shadow53"
)

// UUIDFileName and LockFileName name the files kept directly under the
// config and data directories respectively.
const (
	UUIDFileName       = "uuid"
	LockFileName       = "lock"
	ConfigFileBaseName = "config"
	hoardsSubdir       = "hoards"
	historySubdir      = "history"
)

// ConfigFileExtensions lists the config formats hoard recognizes, in the
// order ConfigFilePath prefers them when more than one is present.
var ConfigFileExtensions = []string{".toml", ".yaml", ".yml", ".json"}

// Paths resolves every file and directory hoard reads or writes.
type Paths struct {
	configDir string
	dataDir   string
}

// New resolves the config and data directories, honoring explicit
// overrides (e.g. from --config-file/--hoards-root or the
// HOARD_CONFIG_DIR/HOARD_DATA_DIR env vars) before falling back to
// platform defaults.
func New(configDirOverride, dataDirOverride string) (*Paths, error) {
	configDir, dataDir, err := platformDirs()
	if err != nil {
		return nil, err
	}

	if v := os.Getenv(EnvConfigDir); v != "" {
		configDir = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		dataDir = v
	}
	if configDirOverride != "" {
		configDir = configDirOverride
	}
	if dataDirOverride != "" {
		dataDir = dataDirOverride
	}

	absConfig, err := filepath.Abs(configDir)
	if err != nil {
		return nil, herr.Wrap(err, herr.ErrIoFailure, "resolving config directory")
	}
	absData, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, herr.Wrap(err, herr.ErrIoFailure, "resolving data directory")
	}

	return &Paths{configDir: absConfig, dataDir: absData}, nil
}

// platformDirs returns the default config and data directories for the
// current platform: a single combined directory on macOS and Windows,
// split XDG directories everywhere else.
func platformDirs() (configDir, dataDir string, err error) {
	switch runtime.GOOS {
	case "darwin":
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return "", "", wrapHomeErr(homeErr)
		}
		base := filepath.Join(home, "Library", "Application Support", DarwinBundleID)
		return base, base, nil
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, homeErr := os.UserHomeDir()
			if homeErr != nil {
				return "", "", wrapHomeErr(homeErr)
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		base := filepath.Join(appData, windowsVendor, AppDirName)
		return base, base, nil
	default:
		return filepath.Join(xdg.ConfigHome, AppDirName), filepath.Join(xdg.DataHome, AppDirName), nil
	}
}

func wrapHomeErr(err error) error {
	return herr.Wrap(err, herr.ErrIoFailure, "determining home directory")
}

// ConfigDir returns the directory holding the config file, uuid file,
// and nothing else.
func (p *Paths) ConfigDir() string { return p.configDir }

// DataDir returns the directory holding the hoard tree, history, and
// lock file.
func (p *Paths) DataDir() string { return p.dataDir }

// ConfigFilePath looks for an existing config file under the config
// directory, trying extensions in ConfigFileExtensions order. It returns
// the first match and true, or the default TOML path and false if none
// exist yet (the caller decides whether that's an error).
func (p *Paths) ConfigFilePath() (string, bool) {
	for _, ext := range ConfigFileExtensions {
		candidate := filepath.Join(p.configDir, ConfigFileBaseName+ext)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return filepath.Join(p.configDir, ConfigFileBaseName+ConfigFileExtensions[0]), false
}

// UUIDFilePath returns the path to the persisted host UUID.
func (p *Paths) UUIDFilePath() string {
	return filepath.Join(p.configDir, UUIDFileName)
}

// LockFilePath returns the path to the process-level advisory lock file.
func (p *Paths) LockFilePath() string {
	return filepath.Join(p.dataDir, LockFileName)
}

// HoardDir returns the root of a single named hoard's tree.
func (p *Paths) HoardDir(hoardName string) string {
	return filepath.Join(p.dataDir, hoardsSubdir, hoardName)
}

// PilePath returns the on-disk location for one relative path within one
// pile of one hoard. pileName is empty for single-file/anonymous piles,
// which are stored directly under the hoard directory.
func (p *Paths) PilePath(hoardName, pileName, relPath string) string {
	if pileName == "" {
		return filepath.Join(p.HoardDir(hoardName), relPath)
	}
	return filepath.Join(p.HoardDir(hoardName), pileName, relPath)
}

// HistoryRoot returns the directory under which every host's operation
// logs live, laid out as <root>/<host_uuid>/<hoard_name>/*.log.
func (p *Paths) HistoryRoot() string {
	return filepath.Join(p.dataDir, historySubdir)
}

// HistoryDir returns the directory holding one host's operation logs for
// one hoard.
func (p *Paths) HistoryDir(hostUUID, hoardName string) string {
	return filepath.Join(p.dataDir, historySubdir, hostUUID, hoardName)
}

// OperationLogPath returns the path a new operation log entry for the
// given hoard and timestamp would be written to.
func (p *Paths) OperationLogPath(hostUUID, hoardName string, ts time.Time) string {
	name := ts.UTC().Format(time.RFC3339) + ".log"
	return filepath.Join(p.HistoryDir(hostUUID, hoardName), name)
}

// EnsureDirs creates the config and data directories if they don't
// already exist.
func (p *Paths) EnsureDirs() error {
	if err := os.MkdirAll(p.configDir, 0o755); err != nil {
		return herr.Wrap(err, herr.ErrIoFailure, "creating config directory")
	}
	if err := os.MkdirAll(p.dataDir, 0o755); err != nil {
		return herr.Wrap(err, herr.ErrIoFailure, "creating data directory")
	}
	return nil
}
