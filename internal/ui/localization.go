package ui

import "fmt"

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeySearch             = "search"
	KeySettings           = "settings"
	KeyHistory            = "history"
	KeyFile               = "file"
	KeyLanguage           = "language"
	KeyEnterSongID        = "enter_song_id"
	KeyPleaseEnterSongID  = "please_enter_song_id"
	KeyStatusWaiting      = "status_waiting"
	KeyStatusDownloading  = "status_downloading"
	KeyStatusFinished     = "status_finished"
	KeyStatusNoResults    = "status_no_results"
	KeyStatusResultsFound = "status_results_found"
	KeyColumnSongName     = "column_song_name"
	KeyColumnLevelName    = "column_level_name"
	KeyColumnState        = "column_state"
	KeyColumnDownload     = "column_download"
	KeyDownload           = "download"
	KeySongPath           = "song_path"
	KeyBrowse             = "browse"
	KeyOpenFolder         = "open_folder"
	KeyTagDownloads       = "tag_downloads"
	KeyRecordHistory      = "record_history"
	KeyClose              = "close"
	KeyByAuthor           = "by_author"
	KeyVersion            = "version"
	KeyPoweredBy          = "powered_by"
	KeyFeedback           = "feedback"
	KeyNoHistory          = "no_history"
	KeyErrorOpeningFolder = "error_opening_folder"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// Format returns localized text for key formatted with args
func (l *Localization) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeySearch:             "Search",
		KeySettings:           "Settings",
		KeyHistory:            "Download history",
		KeyFile:               "File",
		KeyLanguage:           "Language",
		KeyEnterSongID:        "Song ID",
		KeyPleaseEnterSongID:  "Please enter a song ID",
		KeyStatusWaiting:      "Waiting",
		KeyStatusDownloading:  "Downloading...",
		KeyStatusFinished:     "Finished",
		KeyStatusNoResults:    "Nothing found",
		KeyStatusResultsFound: "Found %d NoNG(s) with matching song ID",
		KeyColumnSongName:     "Song name",
		KeyColumnLevelName:    "Level name",
		KeyColumnState:        "State",
		KeyColumnDownload:     "Download",
		KeyDownload:           "Download",
		KeySongPath:           "Song path",
		KeyBrowse:             "Browse",
		KeyOpenFolder:         "Open folder",
		KeyTagDownloads:       "Write ID3 tags to downloaded songs",
		KeyRecordHistory:      "Keep download history",
		KeyClose:              "Close",
		KeyByAuthor:           "by Alexander Simonov",
		KeyVersion:            "Version: %s",
		KeyPoweredBy:          "Powered by",
		KeyFeedback:           "Feedback, support and contribution",
		KeyNoHistory:          "No downloads yet",
		KeyErrorOpeningFolder: "Error opening folder",
	}

	l.texts["ru"] = map[string]string{
		KeySearch:             "Поиск",
		KeySettings:           "Настройки",
		KeyHistory:            "История загрузок",
		KeyFile:               "Файл",
		KeyLanguage:           "Язык",
		KeyEnterSongID:        "ID песни",
		KeyPleaseEnterSongID:  "Пожалуйста, введите ID песни",
		KeyStatusWaiting:      "Ожидание",
		KeyStatusDownloading:  "Загрузка...",
		KeyStatusFinished:     "Готово",
		KeyStatusNoResults:    "Ничего не найдено",
		KeyStatusResultsFound: "Найдено NoNG с этим ID песни: %d",
		KeyColumnSongName:     "Песня",
		KeyColumnLevelName:    "Уровень",
		KeyColumnState:        "Статус",
		KeyColumnDownload:     "Загрузка",
		KeyDownload:           "Скачать",
		KeySongPath:           "Папка песен",
		KeyBrowse:             "Обзор",
		KeyOpenFolder:         "Открыть папку",
		KeyTagDownloads:       "Записывать ID3-теги в скачанные песни",
		KeyRecordHistory:      "Вести историю загрузок",
		KeyClose:              "Закрыть",
		KeyByAuthor:           "автор Alexander Simonov",
		KeyVersion:            "Версия: %s",
		KeyPoweredBy:          "Работает на",
		KeyFeedback:           "Отзывы, поддержка и участие",
		KeyNoHistory:          "Загрузок пока нет",
		KeyErrorOpeningFolder: "Ошибка открытия папки",
	}
}
