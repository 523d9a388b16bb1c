// Package app is the desktop frontend: a fyne window showing the display,
// a global keyboard hook feeding the keypad and a tone for the sound timer.
package app

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"sync/atomic"

	"fyne.io/fyne/v2"
	fyneApp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/dialog"
	stlerr "github.com/kkkunny/stl/error"
	stlval "github.com/kkkunny/stl/value"
	"github.com/retroenv/retrogolib/log"
	hook "github.com/robotn/gohook"
	"golang.org/x/image/draw"

	"github.com/kkkunny/chip8vm/config"
	"github.com/kkkunny/chip8vm/emulator"
	"github.com/kkkunny/chip8vm/vm"
)

var (
	pixelOn  = color.Gray{Y: 0xFF}
	pixelOff = color.Gray{Y: 0x00}
)

type App struct {
	app    fyne.App
	window fyne.Window
	screen *canvas.Image

	opts   config.Options
	logger *log.Logger
	audio  *audio

	loadChan  chan []uint8
	frameImg  *image.Gray
	screenImg *image.RGBA
	current   atomic.Pointer[emulator.Emulator]
}

func NewApp(opts config.Options, logger *log.Logger) *App {
	app := &App{
		app:      fyneApp.New(),
		opts:     opts,
		logger:   logger,
		loadChan: make(chan []uint8, 1),
	}
	app.window = app.app.NewWindow("Chip-8 Emulator")
	app.audio = newAudio(logger)

	app.initWindow()
	app.initScreen()

	return app
}

func (app *App) initWindow() {
	width := float32(vm.DisplayWidth * app.opts.Scale)
	height := float32(vm.DisplayHeight * app.opts.Scale)
	app.window.Resize(fyne.NewSize(width, height))
	app.window.SetFixedSize(true)
	app.window.CenterOnScreen()
	app.window.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("Menu", fyne.NewMenuItem("Load ROM", func() {
		selectFileWindow := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil {
				dialog.ShowError(err, app.window)
				return
			}
			if reader == nil {
				return
			}
			_ = reader.Close()
			app.Load(reader.URI().Path())
		}, app.window)
		selectFileWindow.Show()
	}))))
}

func (app *App) initScreen() {
	app.frameImg = image.NewGray(image.Rect(0, 0, vm.DisplayWidth, vm.DisplayHeight))
	app.screenImg = image.NewRGBA(image.Rect(0, 0, vm.DisplayWidth*app.opts.Scale, vm.DisplayHeight*app.opts.Scale))
	draw.Draw(app.screenImg, app.screenImg.Bounds(), &image.Uniform{C: pixelOff}, image.Point{}, draw.Src)

	app.screen = canvas.NewImageFromImage(app.screenImg)
	app.screen.FillMode = canvas.ImageFillOriginal
	app.window.SetContent(app.screen)
}

// Load reads a ROM file and restarts the emulation with it.
func (app *App) Load(path string) {
	app.logger.Debug("Loading ROM", log.String("file", path))
	rom, err := stlerr.ErrorWith(os.ReadFile(path))
	if err != nil {
		app.logger.Error("Loading ROM failed", log.String("file", path), log.Err(err))
		dialog.ShowError(err, app.window)
		return
	}
	app.loadChan <- rom
}

func (app *App) drawFrame(frame vm.Frame) {
	for y := range vm.DisplayHeight {
		for x := range vm.DisplayWidth {
			app.frameImg.SetGray(x, y, stlval.Ternary(frame.Pixel(x, y), pixelOn, pixelOff))
		}
	}
	draw.NearestNeighbor.Scale(app.screenImg, app.screenImg.Bounds(), app.frameImg, app.frameImg.Bounds(), draw.Src, nil)
	app.screen.Refresh()
}

func (app *App) listenKeyboard() {
	go func() {
		for key := range hook.Start() {
			if key.Kind != hook.KeyDown && key.Kind != hook.KeyUp {
				continue
			}
			if key.Rawcode == escapeRawcode {
				app.app.Quit()
				return
			}
			chip8Key, ok := keypadKey(key.Rawcode)
			if !ok {
				continue
			}
			emu := app.current.Load()
			if emu == nil {
				continue
			}
			event := stlval.Ternary(key.Kind == hook.KeyDown, emulator.KeyDown(chip8Key), emulator.KeyUp(chip8Key))
			select {
			case emu.Input() <- event:
			default:
				// a halted emulator no longer drains its input
			}
		}
	}()
}

func (app *App) mainLoop(ctx context.Context) {
	stop := func() {}
	defer func() { stop() }()

	for {
		select {
		case <-ctx.Done():
			return

		case rom := <-app.loadChan:
			stop()
			emu, err := emulator.NewFromOptions(rom, app.opts, app.logger)
			if err != nil {
				app.logger.Error("Starting emulation failed", log.Err(err))
				dialog.ShowError(err, app.window)
				continue
			}
			stop = app.start(ctx, emu)
		}
	}
}

// start runs the emulator until the returned function is called.
func (app *App) start(ctx context.Context, emu *emulator.Emulator) func() {
	emu.SetOnFrame(app.drawFrame)
	emu.SetOnSound(app.audio.Set)
	app.current.Store(emu)

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		err := emu.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			app.logger.Error("Emulation stopped", log.Err(err))
			dialog.ShowError(err, app.window)
		}
	}()

	return func() {
		cancel()
		<-done
		app.current.CompareAndSwap(emu, nil)
	}
}

// Run shows the window until it is closed. A non nil ROM starts right away,
// otherwise one is picked through the menu.
func (app *App) Run(ctx context.Context, rom []uint8) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if rom != nil {
		app.loadChan <- rom
	}
	app.listenKeyboard()
	defer hook.End()
	go app.mainLoop(ctx)
	go func() {
		<-ctx.Done()
		app.app.Quit()
	}()
	app.window.ShowAndRun()
}
