package ui

import (
	"context"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/nong-manager/internal/api"
	"github.com/ytget/nong-manager/internal/config"
	"github.com/ytget/nong-manager/internal/download"
	"github.com/ytget/nong-manager/internal/model"
	"github.com/ytget/nong-manager/internal/storage"
)

// ErrorReporter is the top-level error boundary; Report never returns control
// to the user, the app quits once the report is dismissed
type ErrorReporter interface {
	Report(err error)

	// Guard runs fn on the calling goroutine and reports any panic it raises
	Guard(fn func())

	// Go runs fn on a new goroutine guarded like Guard
	Go(fn func())
}

// History records finished downloads
type History interface {
	SaveDownload(download *storage.Download) (int64, error)
	ListDownloads(limit int) ([]*storage.Download, error)
}

// AppInfo is the static information shown in the settings dialog
type AppInfo struct {
	Name    string
	Version string
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	searchEntry  *widget.Entry
	searchBtn    *widget.Button
	settingsBtn  *widget.Button
	statusLabel  *widget.Label
	results      *ResultsTable
	searcher     api.Searcher
	downloadSvc  download.Downloader
	history      History
	reporter     ErrorReporter
	settings     *config.Settings
	localization *Localization
	info         AppInfo

	records []model.Record
	status  model.Status
	busy    bool

	// do runs UI updates on the main goroutine
	do func(func())
}

// NewRootUI creates and initializes the main UI. history may be nil.
func NewRootUI(window fyne.Window, settings *config.Settings, searcher api.Searcher, downloadSvc download.Downloader, history History, reporter ErrorReporter, info AppInfo) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		searcher:     searcher,
		downloadSvc:  downloadSvc,
		history:      history,
		reporter:     reporter,
		settings:     settings,
		localization: localization,
		info:         info,
		status:       model.StatusWaiting,
	}
	ui.do = func(fn func()) {
		fyne.Do(ui.guarded(fn))
	}

	ui.downloadSvc.SetUpdateCallback(ui.onTaskUpdate)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.searchEntry = widget.NewEntry()
	ui.searchEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterSongID))
	ui.searchEntry.OnSubmitted = func(string) {
		ui.reporter.Guard(ui.onSearchClick)
	}

	ui.searchBtn = widget.NewButtonWithIcon(ui.localization.GetText(KeySearch), theme.SearchIcon(), ui.guarded(ui.onSearchClick))
	ui.settingsBtn = widget.NewButton(IconSettings+" "+ui.localization.GetText(KeySettings), ui.guarded(ui.onShowSettings))
	ui.settingsBtn.Importance = widget.LowImportance

	ui.statusLabel = widget.NewLabel("")
	ui.refreshStatus()

	buttons := container.NewHBox(ui.searchBtn, ui.settingsBtn, ui.statusLabel)
	topPanel := container.NewBorder(nil, nil, nil, buttons, ui.searchEntry)

	ui.results = NewResultsTable(ui.localization, func() []model.Record { return ui.records }, func(row int) {
		ui.reporter.Guard(func() { ui.onDownloadRow(row) })
	})

	content := container.NewBorder(
		container.NewVBox(topPanel, widget.NewSeparator()), // top
		nil, // bottom
		nil, // left
		nil, // right
		ui.results.Widget(),
	)

	ui.window.SetContent(content)
	ui.window.Canvas().Focus(ui.searchEntry)

	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.guarded(ui.onShowSettings))
	historyItem := fyne.NewMenuItem(ui.localization.GetText(KeyHistory), ui.guarded(ui.onShowHistory))
	historyItem.Disabled = ui.history == nil

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, ui.guarded(func() {
			ui.onLanguageChange(langCode)
		}))
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem, historyItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.info.title())
	ui.searchEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterSongID))
	ui.searchBtn.SetText(ui.localization.GetText(KeySearch))
	ui.settingsBtn.SetText(IconSettings + " " + ui.localization.GetText(KeySettings))
	ui.refreshStatus()
	ui.results.Refresh()
}

// StatusText returns the status line for the current state
func (ui *RootUI) StatusText() string {
	switch ui.status {
	case model.StatusDownloading:
		return ui.localization.GetText(KeyStatusDownloading)
	case model.StatusFinished:
		return ui.localization.GetText(KeyStatusFinished)
	case model.StatusNoResults:
		return ui.localization.GetText(KeyStatusNoResults)
	case model.StatusResultsFound:
		return ui.localization.Format(KeyStatusResultsFound, len(ui.records))
	default:
		return ui.localization.GetText(KeyStatusWaiting)
	}
}

func (ui *RootUI) setStatus(status model.Status) {
	ui.status = status
	ui.refreshStatus()
}

func (ui *RootUI) refreshStatus() {
	ui.statusLabel.SetText(ui.StatusText())
}

// setBusy disables search and download actions while a request runs
func (ui *RootUI) setBusy(busy bool) {
	ui.busy = busy
	if busy {
		ui.searchBtn.Disable()
	} else {
		ui.searchBtn.Enable()
	}
	ui.results.SetEnabled(!busy)
}

// onSearchClick handles the search button click
func (ui *RootUI) onSearchClick() {
	if ui.busy {
		return
	}

	query := strings.TrimSpace(ui.searchEntry.Text)
	if query == "" {
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyPleaseEnterSongID)), ui.window.Canvas())
		return
	}

	// Previous results are dropped before the request goes out
	ui.records = nil
	ui.results.Refresh()
	ui.setBusy(true)

	ui.reporter.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), SearchTimeout)
		defer cancel()

		records, err := ui.searcher.Search(ctx, query)
		if err != nil {
			ui.reporter.Report(err)
			return
		}

		ui.do(func() {
			ui.applyResults(records)
			ui.setBusy(false)
		})
	})
}

// applyResults shows a fresh result set
func (ui *RootUI) applyResults(records []model.Record) {
	ui.records = records
	ui.setStatus(model.StatusFor(len(records)))
	ui.results.Refresh()
}

// onDownloadRow handles the download button of a results row
func (ui *RootUI) onDownloadRow(row int) {
	if ui.busy || row < 0 || row >= len(ui.records) {
		return
	}
	record := ui.records[row]

	ui.setStatus(model.StatusDownloading)
	ui.setBusy(true)

	ui.reporter.Go(func() {
		task, err := ui.downloadSvc.Download(context.Background(), record)
		if err != nil {
			ui.reporter.Report(err)
			return
		}

		ui.recordHistory(task)

		ui.do(func() {
			ui.setStatus(model.StatusFinished)
			ui.setBusy(false)
		})
	})
}

// recordHistory stores a completed task; history failures are logged only
func (ui *RootUI) recordHistory(task *model.DownloadTask) {
	if ui.history == nil || !ui.settings.GetHistoryEnabled() {
		return
	}
	if _, err := ui.history.SaveDownload(storage.FromTask(task)); err != nil {
		log.Printf("Failed to record download %s in history: %v", task.ID, err)
	}
}

// onTaskUpdate logs task transitions reported by the download service
func (ui *RootUI) onTaskUpdate(task *model.DownloadTask) {
	if !task.Status.IsFinished() {
		log.Printf("Task %s (%s): %s", task.ID, task.GetDisplayTitle(), task.Status)
		return
	}
	log.Printf("Task %s (%s): %s after %s, %s written", task.ID, task.GetDisplayTitle(), task.Status, task.Duration(), task.GetSizeString())
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	sd := NewSettingsDialog(ui.settings, ui.window, ui.localization, ui.info)
	sd.SetCallbacks(ui.guarded(ui.onSettingsChanged), func(lang string) {
		ui.reporter.Guard(func() { ui.onLanguageChange(lang) })
	})
	sd.Show()
}

// onSettingsChanged pushes settings into the download service
func (ui *RootUI) onSettingsChanged() {
	ui.downloadSvc.SetDownloadDirectory(ui.settings.GetDownloadDirectory())
	ui.downloadSvc.SetTagging(ui.settings.GetTagDownloads())
}

// onShowHistory shows the download history dialog
func (ui *RootUI) onShowHistory() {
	if ui.history == nil {
		return
	}
	downloads, err := ui.history.ListDownloads(HistoryListLimit)
	if err != nil {
		ui.reporter.Report(err)
		return
	}
	ShowHistoryDialog(ui.window, ui.localization, downloads)
}

// guarded wraps a UI callback so a panic on the main goroutine is reported
// instead of unwinding out of the event loop
func (ui *RootUI) guarded(fn func()) func() {
	return func() {
		ui.reporter.Guard(fn)
	}
}

func (info AppInfo) title() string {
	if info.Version == "" {
		return info.Name
	}
	return info.Name + " v" + info.Version
}
