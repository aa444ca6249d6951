package config

import (
	"log"

	"fyne.io/fyne/v2"

	"github.com/ytget/nong-manager/internal/api"
	"github.com/ytget/nong-manager/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir   = "download_directory"
	KeyLanguage      = "app_language"
	KeyTagDownloads  = "tag_downloads"
	KeyAPIEndpoint   = "api_endpoint"
	KeyHistoryEnable = "history_enabled"
)

// Default values
const (
	DefaultLanguage      = "system"
	DefaultTagDownloads  = false
	DefaultHistoryEnable = true
	FallbackDownloadDir  = "GeometryDash"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured song directory. On first run the
// platform default is stored; a value the user cleared stays empty.
func (s *Settings) GetDownloadDirectory() string {
	prefs := s.app.Preferences()
	defaultDir := defaultDownloadDirectory()

	dir := prefs.StringWithFallback(KeyDownloadDir, defaultDir)
	if dir == defaultDir && prefs.String(KeyDownloadDir) == "" {
		prefs.SetString(KeyDownloadDir, defaultDir)
	}
	return dir
}

func defaultDownloadDirectory() string {
	dir, err := platform.DefaultSongDirectory()
	if err != nil {
		log.Printf("failed to resolve default song directory: %v", err)
		return FallbackDownloadDir
	}
	return dir
}

// SetDownloadDirectory sets the song directory. The value is stored as typed.
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
	}
}

// GetTagDownloads returns whether finished downloads get ID3 tags
func (s *Settings) GetTagDownloads() bool {
	return s.app.Preferences().BoolWithFallback(KeyTagDownloads, DefaultTagDownloads)
}

// SetTagDownloads sets whether finished downloads get ID3 tags
func (s *Settings) SetTagDownloads(enabled bool) {
	s.app.Preferences().SetBool(KeyTagDownloads, enabled)
}

// GetHistoryEnabled returns whether finished downloads are recorded
func (s *Settings) GetHistoryEnabled() bool {
	return s.app.Preferences().BoolWithFallback(KeyHistoryEnable, DefaultHistoryEnable)
}

// SetHistoryEnabled sets whether finished downloads are recorded
func (s *Settings) SetHistoryEnabled(enabled bool) {
	s.app.Preferences().SetBool(KeyHistoryEnable, enabled)
}

// GetAPIEndpoint returns the search endpoint. There is no UI for it; the
// preference is edited by hand to point the app at a mirror.
func (s *Settings) GetAPIEndpoint() string {
	return s.app.Preferences().StringWithFallback(KeyAPIEndpoint, api.DefaultEndpoint)
}
