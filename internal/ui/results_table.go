package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/nong-manager/internal/model"
)

// ResultsTable renders search records with one download button per row
type ResultsTable struct {
	table        *widget.Table
	localization *Localization
	records      func() []model.Record
	onDownload   func(row int)
	enabled      bool
}

// NewResultsTable creates a table reading rows from records on every refresh
func NewResultsTable(localization *Localization, records func() []model.Record, onDownload func(row int)) *ResultsTable {
	rt := &ResultsTable{
		localization: localization,
		records:      records,
		onDownload:   onDownload,
		enabled:      true,
	}

	rt.table = widget.NewTableWithHeaders(rt.length, rt.createCell, rt.updateCell)
	rt.table.ShowHeaderColumn = false
	rt.table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	}
	rt.table.UpdateHeader = rt.updateHeader

	for col, width := range ColumnWidths {
		rt.table.SetColumnWidth(col, width)
	}

	return rt
}

// Widget returns the canvas object to place in a layout
func (rt *ResultsTable) Widget() fyne.CanvasObject {
	return rt.table
}

// SetEnabled enables or disables every download button
func (rt *ResultsTable) SetEnabled(enabled bool) {
	rt.enabled = enabled
	rt.table.Refresh()
}

// Refresh redraws the table from the current records
func (rt *ResultsTable) Refresh() {
	rt.table.ScrollToTop()
	rt.table.Refresh()
}

// HeaderText returns the localized header for a column
func (rt *ResultsTable) HeaderText(col int) string {
	switch col {
	case ColumnSongName:
		return rt.localization.GetText(KeyColumnSongName)
	case ColumnLevelName:
		return rt.localization.GetText(KeyColumnLevelName)
	case ColumnState:
		return rt.localization.GetText(KeyColumnState)
	case ColumnDownload:
		return rt.localization.GetText(KeyColumnDownload)
	default:
		return ""
	}
}

// CellText returns the text shown in a data cell; the download column has none
func CellText(record model.Record, col int) string {
	switch col {
	case ColumnSongName:
		return record.SongName
	case ColumnLevelName:
		return record.LevelName
	case ColumnState:
		return record.State
	default:
		return ""
	}
}

func (rt *ResultsTable) length() (int, int) {
	return len(rt.records()), ColumnCount
}

// createCell builds a cell holding both a label and a button; updateCell
// shows the one the column needs
func (rt *ResultsTable) createCell() fyne.CanvasObject {
	label := widget.NewLabel("")
	label.Truncation = fyne.TextTruncateEllipsis

	button := widget.NewButtonWithIcon("", theme.DownloadIcon(), nil)
	button.Importance = widget.HighImportance
	button.Hide()

	return container.NewStack(label, button)
}

func (rt *ResultsTable) updateCell(id widget.TableCellID, obj fyne.CanvasObject) {
	records := rt.records()
	if id.Row < 0 || id.Row >= len(records) {
		return
	}

	cell := obj.(*fyne.Container)
	label := cell.Objects[0].(*widget.Label)
	button := cell.Objects[1].(*widget.Button)

	if id.Col == ColumnDownload {
		label.Hide()
		row := id.Row
		button.SetText(rt.localization.GetText(KeyDownload))
		button.OnTapped = func() {
			if rt.onDownload != nil {
				rt.onDownload(row)
			}
		}
		if rt.enabled {
			button.Enable()
		} else {
			button.Disable()
		}
		button.Show()
		return
	}

	button.Hide()
	button.OnTapped = nil
	label.SetText(CellText(records[id.Row], id.Col))
	label.Show()
}

func (rt *ResultsTable) updateHeader(id widget.TableCellID, obj fyne.CanvasObject) {
	label, ok := obj.(*widget.Label)
	if !ok {
		return
	}
	label.SetText(rt.HeaderText(id.Col))
}
