package overlay

import (
	"image/color"

	"skinwatch/internal/core/model"
	"skinwatch/internal/core/timekeeper"
	"skinwatch/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Skin is the rendered look of a skin id.
type Skin struct {
	Name       string
	Foreground color.NRGBA
	Background color.NRGBA
	Animation  *animation.Config
}

// Config defines the watch window.
type Config struct {
	Title string
	Size  fyne.Size
	Skins map[uint64]Skin

	// Source is shared by the animation players of every skin.
	Source *animation.Source
}

var fallbackSkin = Skin{
	Name:       "default",
	Foreground: color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff},
	Background: color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff},
}

// Window is the always-visible watch face. Its methods must run on the
// fyne goroutine.
type Window struct {
	window fyne.Window
	config Config

	background *canvas.Rectangle
	digits     *canvas.Text
	modeLabel  *canvas.Text
	glyph      *canvas.Text

	switchButton    *widget.Button
	startStopButton *widget.Button
	resetButton     *widget.Button
	quitButton      *widget.Button

	onButton func(model.Button)

	skinID  uint64
	skin    Skin
	player  *animation.Player
	applied bool
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the watch window. onButton receives every button press,
// including the window close request as ButtonQuit.
func New(app fyne.App, config Config, onButton func(model.Button)) *Window {
	window := app.NewWindow(config.Title)
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(fallbackSkin.Background)

	digits := canvas.NewText(model.WatchTime{}.String(), fallbackSkin.Foreground)
	digits.Alignment = fyne.TextAlignCenter
	digits.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	digits.TextSize = 30

	modeLabel := canvas.NewText("", fallbackSkin.Foreground)
	modeLabel.Alignment = fyne.TextAlignLeading
	modeLabel.TextSize = 12

	glyph := canvas.NewText("", fallbackSkin.Foreground)
	glyph.Alignment = fyne.TextAlignTrailing
	glyph.TextSize = 18

	face := &Window{
		window:     window,
		config:     config,
		background: background,
		digits:     digits,
		modeLabel:  modeLabel,
		glyph:      glyph,
		onButton:   onButton,
	}

	face.switchButton = widget.NewButton("Clock", func() { face.press(model.ButtonSwitch) })
	face.startStopButton = widget.NewButton("Start", func() { face.press(model.ButtonStartStop) })
	face.resetButton = widget.NewButton("Reset", func() { face.press(model.ButtonReset) })
	face.quitButton = widget.NewButton("Quit", func() { face.press(model.ButtonQuit) })

	buttons := container.NewGridWithColumns(4, face.switchButton, face.startStopButton, face.resetButton, face.quitButton)
	content := container.New(&faceLayout{}, modeLabel, glyph, digits, buttons)
	window.SetContent(container.NewStack(background, content))

	window.SetCloseIntercept(func() { face.press(model.ButtonQuit) })
	window.Canvas().SetOnTypedKey(face.typedKey)

	size := config.Size
	if size.Width <= 0 || size.Height <= 0 {
		size = window.Content().MinSize()
	}
	window.Resize(size)
	window.SetFixedSize(true)

	return face
}

// Show displays the window.
func (face *Window) Show() {
	face.window.Show()
}

// Digits returns the text currently shown on the display.
func (face *Window) Digits() string {
	return face.digits.Text
}

// Glyph returns the current animation frame.
func (face *Window) Glyph() string {
	return face.glyph.Text
}

// SkinName returns the name of the applied skin.
func (face *Window) SkinName() string {
	return face.skin.Name
}

// Render draws snapshot and advances the skin animation by dt seconds.
func (face *Window) Render(snapshot timekeeper.Snapshot, dt float32) {
	if !face.applied || snapshot.SkinChanged || snapshot.SkinID != face.skinID {
		face.applySkin(snapshot.SkinID)
	}

	face.digits.Text = snapshot.Display().String()
	face.digits.Refresh()

	face.applyMode(snapshot.Mode)

	if face.player != nil {
		face.glyph.Text = face.player.Advance(dt)
		face.glyph.Refresh()
	}
}

func (face *Window) applySkin(id uint64) {
	skin, ok := face.config.Skins[id]
	if !ok {
		skin = fallbackSkin
	}
	face.skinID = id
	face.skin = skin
	face.applied = true

	face.background.FillColor = skin.Background
	face.background.Refresh()
	for _, text := range []*canvas.Text{face.digits, face.modeLabel, face.glyph} {
		text.Color = skin.Foreground
		text.Refresh()
	}

	face.player = nil
	face.glyph.Text = ""
	if skin.Animation != nil {
		face.player = animation.NewPlayer(*skin.Animation, face.config.Source)
		face.glyph.Text = face.player.Frame()
	}
	face.glyph.Refresh()

	face.applyNativeOpacity(windowAlpha(skin))
}

// windowAlpha is the opacity the native window takes for skin. Only the
// background alpha counts; an opaque background restores a layered window
// to full opacity.
func windowAlpha(skin Skin) uint8 {
	return skin.Background.A
}

func (face *Window) applyMode(mode model.WatchMode) {
	label := "CLOCK"
	switchLabel := "Stopwatch"
	startStopLabel := "Start"
	switch mode {
	case model.ModeStopwatchRunning:
		label, switchLabel, startStopLabel = "RUN", "Clock", "Stop"
	case model.ModeStopwatchStopped:
		label, switchLabel = "STOP", "Clock"
	}

	if face.modeLabel.Text != label {
		face.modeLabel.Text = label
		face.modeLabel.Refresh()
	}
	setButtonText(face.switchButton, switchLabel)
	setButtonText(face.startStopButton, startStopLabel)

	// Reset also applies while running: it zeroes the time and keeps going.
	if mode == model.ModeClock {
		face.startStopButton.Disable()
		face.resetButton.Disable()
	} else {
		face.startStopButton.Enable()
		face.resetButton.Enable()
	}
}

func setButtonText(button *widget.Button, text string) {
	if button.Text != text {
		button.SetText(text)
	}
}

func (face *Window) press(button model.Button) {
	if face.onButton != nil {
		face.onButton(button)
	}
}

func (face *Window) typedKey(event *fyne.KeyEvent) {
	switch event.Name {
	case fyne.KeySpace, fyne.KeyReturn:
		face.press(model.ButtonStartStop)
	case fyne.KeyTab, fyne.KeyS:
		face.press(model.ButtonSwitch)
	case fyne.KeyR, fyne.KeyBackspace:
		face.press(model.ButtonReset)
	case fyne.KeyEscape, fyne.KeyQ:
		face.press(model.ButtonQuit)
	}
}

// faceLayout places the mode label and animation glyph on the top row,
// the digits in the middle and the buttons along the bottom edge.
type faceLayout struct{}

func (layout *faceLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 4 {
		return
	}
	modeLabel := objects[0]
	glyph := objects[1]
	digits := objects[2]
	buttons := objects[3]

	pad := size.Height * 0.05
	availableWidth := size.Width - pad*2
	if availableWidth < 0 {
		availableWidth = 0
	}

	modeSize := modeLabel.MinSize()
	modeLabel.Move(fyne.NewPos(pad, pad))
	modeLabel.Resize(fyne.NewSize(availableWidth/2, modeSize.Height))

	glyphSize := glyph.MinSize()
	glyph.Move(fyne.NewPos(pad+availableWidth/2, pad))
	glyph.Resize(fyne.NewSize(availableWidth/2, glyphSize.Height))

	buttonsSize := buttons.MinSize()
	buttonsY := size.Height - pad - buttonsSize.Height
	if buttonsY < 0 {
		buttonsY = 0
	}
	buttons.Move(fyne.NewPos(pad, buttonsY))
	buttons.Resize(fyne.NewSize(availableWidth, buttonsSize.Height))

	topRow := modeSize.Height
	if glyphSize.Height > topRow {
		topRow = glyphSize.Height
	}
	digitsSize := digits.MinSize()
	middleTop := pad + topRow
	digitsY := middleTop + (buttonsY-middleTop-digitsSize.Height)/2
	if digitsY < middleTop {
		digitsY = middleTop
	}
	digits.Move(fyne.NewPos(pad, digitsY))
	digits.Resize(fyne.NewSize(availableWidth, digitsSize.Height))
}

func (layout *faceLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 4 {
		return fyne.NewSize(0, 0)
	}
	modeSize := objects[0].MinSize()
	glyphSize := objects[1].MinSize()
	digitsSize := objects[2].MinSize()
	buttonsSize := objects[3].MinSize()

	width := modeSize.Width + glyphSize.Width
	if digitsSize.Width > width {
		width = digitsSize.Width
	}
	if buttonsSize.Width > width {
		width = buttonsSize.Width
	}
	topRow := modeSize.Height
	if glyphSize.Height > topRow {
		topRow = glyphSize.Height
	}
	height := topRow + digitsSize.Height + buttonsSize.Height + 24
	return fyne.NewSize(width+20, height)
}
