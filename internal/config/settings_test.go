package config

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/nong-manager/internal/api"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestDownloadDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetDownloadDirectory()
	if dir == "" {
		t.Error("Download directory should not be empty")
	}

	// Default is persisted
	if stored := app.Preferences().String(KeyDownloadDir); stored != dir {
		t.Errorf("Expected default %s to be stored, got %s", dir, stored)
	}

	// Test setting custom value
	customDir := `C:\Users\player\AppData\Local\GeometryDash`
	settings.SetDownloadDirectory(customDir)

	retrievedDir := settings.GetDownloadDirectory()
	if retrievedDir != customDir {
		t.Errorf("Expected download directory %s, got %s", customDir, retrievedDir)
	}
}

func TestDownloadDirectoryClearedStaysEmpty(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetDownloadDirectory() == "" {
		t.Fatal("Expected a default directory on first run")
	}

	settings.SetDownloadDirectory("")

	if dir := settings.GetDownloadDirectory(); dir != "" {
		t.Errorf("Expected cleared directory to stay empty, got %q", dir)
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	lang := settings.GetLanguage()
	if lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	settings.SetLanguage("ru")

	retrievedLang := settings.GetLanguage()
	if retrievedLang != "ru" {
		t.Errorf("Expected language 'ru', got %s", retrievedLang)
	}
}

func TestGetLanguageOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	options := settings.GetLanguageOptions()

	expectedLangs := []string{"system", "en", "ru"}
	for _, lang := range expectedLangs {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}

	if len(options) != len(expectedLangs) {
		t.Errorf("Expected %d language options, got %d", len(expectedLangs), len(options))
	}
}

func TestTagDownloads(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetTagDownloads() != DefaultTagDownloads {
		t.Errorf("Expected default tag downloads %v", DefaultTagDownloads)
	}

	settings.SetTagDownloads(true)
	if !settings.GetTagDownloads() {
		t.Error("Expected tag downloads to be enabled")
	}
}

func TestHistoryEnabled(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetHistoryEnabled() != DefaultHistoryEnable {
		t.Errorf("Expected default history enabled %v", DefaultHistoryEnable)
	}

	settings.SetHistoryEnabled(false)
	if settings.GetHistoryEnabled() {
		t.Error("Expected history to be disabled")
	}
}

func TestAPIEndpoint(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetAPIEndpoint() != api.DefaultEndpoint {
		t.Errorf("Expected default endpoint %s, got %s", api.DefaultEndpoint, settings.GetAPIEndpoint())
	}

	app.Preferences().SetString(KeyAPIEndpoint, "https://mirror.example/nongs")
	if settings.GetAPIEndpoint() != "https://mirror.example/nongs" {
		t.Errorf("Expected custom endpoint, got %s", settings.GetAPIEndpoint())
	}

	app.Preferences().RemoveValue(KeyAPIEndpoint)
	if settings.GetAPIEndpoint() != api.DefaultEndpoint {
		t.Errorf("Expected endpoint reset to default, got %s", settings.GetAPIEndpoint())
	}
}
