package ui

import (
	"log"
	"net/url"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/nong-manager/internal/config"
	"github.com/ytget/nong-manager/internal/platform"
)

// SettingsDialog represents the settings dialog. Changes apply immediately;
// the dialog only has a Close button.
type SettingsDialog struct {
	settings     *config.Settings
	window       fyne.Window
	localization *Localization
	info         AppInfo
	dialog       *dialog.CustomDialog

	onChanged         func()
	onLanguageChanged func(lang string)

	// showFolderOpen opens the native folder picker
	showFolderOpen func(callback func(fyne.ListableURI, error), parent fyne.Window)

	// UI components
	songPathEntry  *widget.Entry
	tagCheck       *widget.Check
	historyCheck   *widget.Check
	languageSelect *widget.Select
	languageCodes  []string // sorted, parallel to the select options
	languageLabels []string
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, window fyne.Window, localization *Localization, info AppInfo) *SettingsDialog {
	sd := &SettingsDialog{
		settings:       settings,
		window:         window,
		localization:   localization,
		info:           info,
		showFolderOpen: dialog.ShowFolderOpen,
	}

	sd.createUI()
	return sd
}

// SetCallbacks sets the change callbacks
func (sd *SettingsDialog) SetCallbacks(onChanged func(), onLanguageChanged func(lang string)) {
	sd.onChanged = onChanged
	sd.onLanguageChanged = onLanguageChanged
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	// Song path: free text plus folder picker
	sd.songPathEntry = widget.NewEntry()
	sd.songPathEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.songPathEntry.OnChanged = sd.onSongPathChanged

	browseBtn := widget.NewButton(l.GetText(KeyBrowse), sd.onBrowseDirectory)
	openBtn := widget.NewButton(l.GetText(KeyOpenFolder), sd.onOpenDirectory)
	songPathRow := container.NewBorder(nil, nil,
		widget.NewLabel(l.GetText(KeySongPath)),
		container.NewHBox(browseBtn, openBtn),
		sd.songPathEntry,
	)

	sd.tagCheck = widget.NewCheck(l.GetText(KeyTagDownloads), func(checked bool) {
		sd.settings.SetTagDownloads(checked)
		sd.notifyChanged()
	})
	sd.tagCheck.SetChecked(sd.settings.GetTagDownloads())

	sd.historyCheck = widget.NewCheck(l.GetText(KeyRecordHistory), func(checked bool) {
		sd.settings.SetHistoryEnabled(checked)
	})
	sd.historyCheck.SetChecked(sd.settings.GetHistoryEnabled())

	// Language selection shows labels and stores codes
	options := sd.settings.GetLanguageOptions()
	for code := range options {
		sd.languageCodes = append(sd.languageCodes, code)
	}
	sort.Strings(sd.languageCodes)
	for _, code := range sd.languageCodes {
		sd.languageLabels = append(sd.languageLabels, options[code])
	}
	sd.languageSelect = widget.NewSelect(sd.languageLabels, nil)
	sd.languageSelect.SetSelected(options[sd.settings.GetLanguage()])
	sd.languageSelect.OnChanged = sd.onLanguageSelected
	languageRow := container.NewBorder(nil, nil, widget.NewLabel(l.GetText(KeyLanguage)), nil, sd.languageSelect)

	content := container.NewVBox(
		songPathRow,
		sd.tagCheck,
		sd.historyCheck,
		languageRow,
		widget.NewSeparator(),
		sd.createAboutSection(),
	)

	sd.dialog = dialog.NewCustom(l.GetText(KeySettings), l.GetText(KeyClose), content, sd.window)
	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// createAboutSection builds the static app information
func (sd *SettingsDialog) createAboutSection() fyne.CanvasObject {
	l := sd.localization

	heading := widget.NewRichText(&widget.TextSegment{Style: widget.RichTextStyleSubHeading, Text: sd.info.Name})
	author := widget.NewLabelWithStyle(l.GetText(KeyByAuthor), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	items := []fyne.CanvasObject{
		container.NewHBox(heading, author),
		widget.NewLabel(l.Format(KeyVersion, sd.info.Version)),
	}

	if hubURL, err := url.Parse(SongFileHubURL); err == nil {
		items = append(items, container.NewHBox(
			widget.NewLabel(l.GetText(KeyPoweredBy)),
			widget.NewHyperlink("Song File Hub", hubURL),
		))
	}
	if feedbackURL, err := url.Parse(FeedbackURL); err == nil {
		items = append(items, widget.NewHyperlink(l.GetText(KeyFeedback), feedbackURL))
	}

	return container.NewVBox(items...)
}

// onSongPathChanged stores the path exactly as typed
func (sd *SettingsDialog) onSongPathChanged(path string) {
	sd.settings.SetDownloadDirectory(path)
	sd.notifyChanged()
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	sd.showFolderOpen(func(uri fyne.ListableURI, err error) {
		sd.songPathEntry.SetText(PickedFolder(sd.songPathEntry.Text, uri, err))
	}, sd.window)
}

// onOpenDirectory reveals the song directory in the file manager
func (sd *SettingsDialog) onOpenDirectory() {
	if err := platform.OpenDirectory(sd.songPathEntry.Text); err != nil {
		log.Printf("Error opening folder %s: %v", sd.songPathEntry.Text, err)
		dialog.ShowInformation(sd.localization.GetText(KeyErrorOpeningFolder), err.Error(), sd.window)
	}
}

// onLanguageSelected maps the selected label back to its language code
func (sd *SettingsDialog) onLanguageSelected(label string) {
	for i, l := range sd.languageLabels {
		if l == label {
			if sd.onLanguageChanged != nil {
				sd.onLanguageChanged(sd.languageCodes[i])
			}
			return
		}
	}
}

func (sd *SettingsDialog) notifyChanged() {
	if sd.onChanged != nil {
		sd.onChanged()
	}
}

// PickedFolder returns the folder chosen in a folder picker, or current when
// the picker was cancelled or failed
func PickedFolder(current string, uri fyne.ListableURI, err error) string {
	if err != nil {
		log.Printf("Folder picker failed: %v", err)
		return current
	}
	if uri == nil {
		return current
	}
	return uri.Path()
}
