package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
	HistoryTimeFormat  = "2006-01-02 15:04"
)

// Results table layout
const (
	ColumnSongName = iota
	ColumnLevelName
	ColumnState
	ColumnDownload
	ColumnCount
)

// Column widths sized for the default 660px window
var ColumnWidths = [ColumnCount]float32{200, 190, 110, 110}

// Dialog sizing
const (
	SettingsDialogWidth  float32 = 520
	SettingsDialogHeight float32 = 380
	HistoryDialogWidth   float32 = 560
	HistoryDialogHeight  float32 = 360
	HistoryListLimit             = 200
)

// Request timeouts
const (
	SearchTimeout = 30 * time.Second
)

// Links shown in the settings dialog
const (
	SongFileHubURL = "https://songfilehub.com"
	FeedbackURL    = "https://github.com/adarift/nong-manager"
)
