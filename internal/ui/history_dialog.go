package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/nong-manager/internal/storage"
)

// HistoryLine formats one history entry for display
func HistoryLine(d *storage.Download) string {
	name := d.SongName
	if name == "" {
		name = DashPlaceholder
	}
	return fmt.Sprintf("%s%s%s (%s)%s%s",
		name, MiddleDotSeparator, d.LevelName, d.SongID,
		MiddleDotSeparator, d.DownloadedAt.Local().Format(HistoryTimeFormat))
}

// ShowHistoryDialog lists past downloads, newest first
func ShowHistoryDialog(window fyne.Window, localization *Localization, downloads []*storage.Download) {
	var content fyne.CanvasObject
	if len(downloads) == 0 {
		content = widget.NewLabel(localization.GetText(KeyNoHistory))
	} else {
		list := widget.NewList(
			func() int { return len(downloads) },
			func() fyne.CanvasObject {
				label := widget.NewLabel("")
				label.Truncation = fyne.TextTruncateEllipsis
				return label
			},
			func(id widget.ListItemID, obj fyne.CanvasObject) {
				obj.(*widget.Label).SetText(HistoryLine(downloads[id]))
			},
		)
		content = list
	}

	d := dialog.NewCustom(localization.GetText(KeyHistory), localization.GetText(KeyClose), content, window)
	d.Resize(fyne.NewSize(HistoryDialogWidth, HistoryDialogHeight))
	d.Show()
}
