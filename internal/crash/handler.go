// Package crash is the app's top-level error boundary. Every failure is
// reported through a Handler, which shows a modal dialog with the failure
// location and message and quits the app once the dialog is dismissed. The
// process then exits with ExitFailure.
package crash

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strconv"
	"sync"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Dialog texts
const (
	DialogTitle = "Error has occured"
	Unknown     = "Unknown"
)

// Process exit codes returned by Run
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Location is where a failure was reported or raised
type Location struct {
	File string
	Line int
}

// Report describes one fatal failure
type Report struct {
	Error    string
	Message  string
	Location *Location
}

// String renders the report the way the error dialog shows it. Go has no
// column information, so the column is always Unknown.
func (r Report) String() string {
	file, line := Unknown, Unknown
	if r.Location != nil {
		file = r.Location.File
		line = strconv.Itoa(r.Location.Line)
	}

	errText := r.Error
	if errText == "" {
		errText = Unknown
	}

	return fmt.Sprintf("Error: %s.\nMessage: %q.\nLocation: %s.\nLine: %s.\nColumn: %s.",
		errText, r.Message, file, line, Unknown)
}

// NewReport builds a report for err, locating the caller skip frames above NewReport
func NewReport(err error, skip int) Report {
	report := Report{Error: Unknown, Message: Unknown}
	if err != nil {
		report.Message = err.Error()
		report.Error = rootCause(err).Error()
	}

	if _, file, line, ok := runtime.Caller(skip + 1); ok {
		report.Location = &Location{File: filepath.ToSlash(file), Line: line}
	}
	return report
}

// NewPanicReport builds a report for a recovered panic value
func NewPanicReport(value any, stack []byte) Report {
	report := Report{Error: Unknown, Message: fmt.Sprint(value)}
	switch v := value.(type) {
	case string:
		report.Error = v
	case error:
		report.Error = rootCause(v).Error()
		report.Message = v.Error()
	}
	report.Location = locationFromStack(stack)
	return report
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// Handler shows reports and terminates the app
type Handler struct {
	app    fyne.App
	window fyne.Window

	once   sync.Once
	failed atomic.Bool
	show   func(report Report, onClosed func())
	quit   func()
}

// NewHandler creates a handler that shows dialogs on window
func NewHandler(app fyne.App, window fyne.Window) *Handler {
	h := &Handler{app: app, window: window}
	h.show = h.showDialog
	h.quit = app.Quit
	return h
}

// Report shows err as a fatal failure. Only the first report is shown.
func (h *Handler) Report(err error) {
	h.handle(NewReport(err, 1))
}

// Recover must be deferred directly; it turns a panic into a report
func (h *Handler) Recover() {
	if value := recover(); value != nil {
		h.handle(NewPanicReport(value, debug.Stack()))
	}
}

// Run runs the app main loop, normally the window's ShowAndRun, and returns
// the process exit code. A panic that escapes the loop can no longer be shown
// in a dialog, so it is only logged.
func (h *Handler) Run(loop func()) (code int) {
	defer func() {
		if value := recover(); value != nil {
			h.failed.Store(true)
			log.Printf("Fatal error escaped the main loop:\n%s", NewPanicReport(value, debug.Stack()))
			code = ExitFailure
		}
	}()

	loop()
	return h.ExitCode()
}

// ExitCode returns ExitFailure once any failure was reported
func (h *Handler) ExitCode() int {
	if h.failed.Load() {
		return ExitFailure
	}
	return ExitOK
}

// Guard runs fn and reports any panic it raises
func (h *Handler) Guard(fn func()) {
	defer h.Recover()
	fn()
}

// Go runs fn on a new goroutine guarded by the handler
func (h *Handler) Go(fn func()) {
	go h.Guard(fn)
}

func (h *Handler) handle(report Report) {
	log.Printf("Fatal error:\n%s", report)
	h.failed.Store(true)
	h.once.Do(func() {
		h.show(report, h.quit)
	})
}

func (h *Handler) showDialog(report Report, onClosed func()) {
	fyne.Do(func() {
		text := widget.NewLabel(report.String())
		text.Wrapping = fyne.TextWrapWord
		d := dialog.NewCustom(DialogTitle, "OK", text, h.window)
		d.Resize(fyne.NewSize(420, 220))
		d.SetOnClosed(onClosed)
		d.Show()
		h.window.RequestFocus()
	})
}
