package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"

	"github.com/ytget/nong-manager/internal/model"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Song storage naming
const (
	GameDataDirName = "GeometryDash"
	AppDataDirName  = "nong-manager"
	HistoryFileName = "history.db"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// ErrInvalidSongID is returned for song IDs that cannot be used as a file name
var ErrInvalidSongID = errors.New("invalid song id")

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// DefaultSongDirectory returns the directory Geometry Dash loads custom songs from.
// On Windows that is %LOCALAPPDATA%\GeometryDash; other platforms have no
// native client, so the user's Downloads directory is used instead.
func DefaultSongDirectory() (string, error) {
	if runtime.GOOS == OSWindows {
		localAppData, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("failed to get local app data directory: %w", err)
		}
		return filepath.Join(localAppData, GameDataDirName), nil
	}

	if xdg.UserDirs.Download != "" {
		return xdg.UserDirs.Download, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Downloads"), nil
}

// ValidateSongID checks that a song ID is usable as a bare file name
func ValidateSongID(songID string) error {
	if strings.TrimSpace(songID) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidSongID)
	}
	if songID == "." || songID == ".." || strings.ContainsAny(songID, `/\`) || strings.ContainsRune(songID, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidSongID, songID)
	}
	return nil
}

// SongFilePath returns <dir>/<songID>.mp3 for record
func SongFilePath(dir string, record model.Record) (string, error) {
	if err := ValidateSongID(record.SongID); err != nil {
		return "", err
	}
	return filepath.Join(dir, record.FileName()), nil
}

// HistoryDatabasePath returns the location of the download history database,
// creating its parent directory when needed
func HistoryDatabasePath() (string, error) {
	path, err := xdg.DataFile(filepath.Join(AppDataDirName, HistoryFileName))
	if err != nil {
		return "", fmt.Errorf("failed to resolve history database path: %w", err)
	}
	return path, nil
}

// OpenDirectory opens a directory in the system file manager
func OpenDirectory(dirPath string) error {
	info, err := os.Stat(dirPath)
	if err != nil {
		return fmt.Errorf("directory does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dirPath)
	}

	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, absPath).Run()
	case OSWindows:
		// explorer exits with status 1 even on success
		_ = exec.Command(ExplorerCommand, absPath).Run()
		return nil
	case OSLinux:
		return openDirectoryLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openDirectoryLinux tries xdg-open, then the common file managers
func openDirectoryLinux(dir string) error {
	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}
