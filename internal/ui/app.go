package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"TouchBoard/internal/config"
)

// RunApp opens the board window and blocks until it is closed. A non-empty
// shareLink is shown next to the status bar.
func RunApp(board *BoardWidget, swatches []config.Swatch, shareLink string) {
	myApp := app.New()
	myWindow := myApp.NewWindow("TouchBoard")
	myWindow.Resize(fyne.NewSize(1024, 768))

	toolbar := NewToolbar(board, swatches)

	footer := container.NewHBox(board.StatusBar(), layout.NewSpacer())
	if shareLink != "" {
		link := widget.NewEntry()
		link.SetText(shareLink)
		footer.Add(widget.NewLabel("Touch relay:"))
		footer.Add(link)
	}

	content := container.NewBorder(toolbar.Object(), footer, nil, nil, board)
	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
