package main

import (
	"fmt"
	"log"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/nong-manager/internal/api"
	"github.com/ytget/nong-manager/internal/config"
	"github.com/ytget/nong-manager/internal/crash"
	"github.com/ytget/nong-manager/internal/download"
	nonghttp "github.com/ytget/nong-manager/internal/http"
	"github.com/ytget/nong-manager/internal/platform"
	"github.com/ytget/nong-manager/internal/storage"
	"github.com/ytget/nong-manager/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "1.0.1"

const (
	AppID   = "com.adarift.nong-manager"
	AppName = "NoNG Manager"

	WindowWidth  = 660
	WindowHeight = 280
)

func main() {
	os.Exit(run())
}

// run builds and runs the app, returning the process exit code
func run() int {
	fmt.Printf("NoNG Manager v%s starting...\n", version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	crashHandler := crash.NewHandler(myApp, myWindow)

	// Initialize services
	settings := config.NewSettings(myApp)
	httpClient := nonghttp.NewClient(nonghttp.DefaultOptions())
	searcher := api.NewClient(httpClient, settings.GetAPIEndpoint())
	log.Printf("Search endpoint: %s", searcher.Endpoint())

	downloadSvc := download.NewService(httpClient, settings.GetDownloadDirectory())
	downloadSvc.SetTagging(settings.GetTagDownloads())

	var history ui.History
	if h, err := openHistory(); err != nil {
		log.Printf("download history disabled: %v", err)
	} else {
		defer h.Close()
		history = h
	}

	ui.NewRootUI(myWindow, settings, searcher, downloadSvc, history, crashHandler, ui.AppInfo{
		Name:    AppName,
		Version: version,
	})

	return crashHandler.Run(myWindow.ShowAndRun)
}

// openHistory opens the download history database in the user data directory
func openHistory() (*storage.History, error) {
	path, err := platform.HistoryDatabasePath()
	if err != nil {
		return nil, err
	}
	return storage.Open(path)
}
