// Package dialogs provides the modal dialogs of the application.
package dialogs

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/dialog"
	"github.com/rs/zerolog"
	chart "github.com/wcharczuk/go-chart/v2"
)

const (
	dialogWidth  = 500
	dialogHeight = 400

	chartWidth  = 470
	chartHeight = 330
)

// ShowProjection presents the row-sum projection as a line plot in a modal
// dialog of fixed size. The dialog blocks interaction with the main window
// until dismissed.
func ShowProjection(win fyne.Window, log zerolog.Logger, sums []float64) {
	img := renderProjectionChart(log, sums)

	pic := fynecanvas.NewImageFromImage(img)
	pic.FillMode = fynecanvas.ImageFillContain
	pic.SetMinSize(fyne.NewSize(chartWidth, chartHeight))

	d := dialog.NewCustom("Diffraction Profile", "Close", pic, win)
	d.Resize(fyne.NewSize(dialogWidth, dialogHeight))
	d.Show()
}

// renderProjectionChart draws the projection line plot to an in-memory PNG.
// Degenerate inputs the chart library rejects (fewer than two points, zero
// value range) fall back to a blank plot area so the dialog still opens.
func renderProjectionChart(log zerolog.Logger, sums []float64) image.Image {
	xs := make([]float64, len(sums))
	for i := range xs {
		xs[i] = float64(i)
	}

	ch := chart.Chart{
		Title:  "Pixel Sum Along Each Column",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "Column (Y in Image)"},
		YAxis:  chart.YAxis{Name: "Pixel Sum"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Pixel Sum",
				XValues: xs,
				YValues: sums,
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		log.Warn().Err(err).Int("points", len(sums)).Msg("projection chart render failed")
		return blankChart()
	}
	img, err := png.Decode(&buf)
	if err != nil {
		log.Warn().Err(err).Msg("projection chart decode failed")
		return blankChart()
	}
	return img
}

func blankChart() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, chartWidth, chartHeight))
	for y := 0; y < chartHeight; y++ {
		for x := 0; x < chartWidth; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	return img
}
