package ui

// Package ui contains the Fyne-based desktop user interface: the search bar,
// the results table with per-row download buttons, the settings dialog and
// the download history dialog. All UI strings are localized via Localization.
