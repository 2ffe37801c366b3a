// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package viewer runs the main loop: button presses feed the mode machine,
// the camera feeds frames through normalization, colorization and overlay,
// and every tick ends with the image on the display plus the optional web
// and MQTT taps.
//
// Everything happens on the goroutine calling Tick. Collaborators are
// injected so the whole loop runs against the synthetic camera and the
// null display in tests.
package viewer

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ProgramingPro2/seekpi/buttons"
	"github.com/ProgramingPro2/seekpi/camera"
	"github.com/ProgramingPro2/seekpi/config"
	"github.com/ProgramingPro2/seekpi/display"
	"github.com/ProgramingPro2/seekpi/modes"
	"github.com/ProgramingPro2/seekpi/overlay"
	"github.com/ProgramingPro2/seekpi/palette"
	"github.com/ProgramingPro2/seekpi/telemetry"
	"github.com/ProgramingPro2/seekpi/thermal"
	"github.com/ProgramingPro2/seekpi/webui"
)

// maxReadFailures is how many consecutive camera read errors the loop
// tolerates before giving up. A single bad frame is skipped; a camera that
// fails this many reads in a row is gone, not glitching.
const maxReadFailures = 10

// Opts wires the collaborators into an App. Camera and Display are
// required; everything else degrades to off when left zero.
type Opts struct {
	Camera  camera.Camera
	Display display.Display
	// Events delivers debounced button presses. Nil means no buttons.
	Events <-chan buttons.Button

	// Web receives every rendered frame for the browser UI. May be nil.
	Web *webui.Server
	// Telemetry publishes per-tick readings over MQTT. May be nil.
	Telemetry *telemetry.Publisher

	// Config seeds the durable UI state. Zero value works; callers
	// normally pass config.Load(config.Path()).
	Config config.Data
	// ConfigPath is where Shutdown persists the state. Empty disables
	// persistence.
	ConfigPath string
	// FFCDir is where flat field captures are written. Empty selects
	// the ffc directory next to the config file.
	FFCDir string

	// OpenCamera reopens the frame source with a new calibration file
	// after a flat field capture. Nil disables reloads.
	OpenCamera func(ffcPath string) (camera.Camera, error)

	// Model converts raw counts to Celsius. Zero value selects the
	// factory calibration.
	Model thermal.TemperatureModel
}

// Stats counts what the loop has done since construction.
type Stats struct {
	Frames     uint64 // frames rendered and shown
	ReadErrors uint64
	ShowErrors uint64
}

// App owns the loop state. Not safe for concurrent use.
type App struct {
	cam     camera.Camera
	display display.Display
	events  <-chan buttons.Button
	web     *webui.Server
	tel     *telemetry.Publisher

	model    thermal.TemperatureModel
	engine   *palette.Engine
	renderer *overlay.Renderer
	banners  *overlay.BannerQueue
	mgr      *modes.Manager

	cfg        config.Data
	configPath string
	ffcDir     string
	openCamera func(string) (camera.Camera, error)

	reloadPath    string
	reloadPending bool
	readFails     int
	stats         Stats
	shut          bool

	now func() time.Time
}

// New builds the app and seeds the mode state from the saved config.
func New(opts Opts) (*App, error) {
	if opts.Camera == nil {
		return nil, errors.New("viewer: a camera is required")
	}
	if opts.Display == nil {
		return nil, errors.New("viewer: a display is required")
	}
	model := opts.Model
	if model == (thermal.TemperatureModel{}) {
		model = thermal.DefaultModel()
	}
	a := &App{
		cam:        opts.Camera,
		display:    opts.Display,
		events:     opts.Events,
		web:        opts.Web,
		tel:        opts.Telemetry,
		model:      model,
		engine:     palette.NewEngine(palette.Builtin()),
		renderer:   overlay.NewRenderer(nil),
		banners:    overlay.NewBannerQueue(0),
		cfg:        opts.Config,
		configPath: opts.ConfigPath,
		ffcDir:     opts.FFCDir,
		openCamera: opts.OpenCamera,
		now:        time.Now,
	}
	if a.ffcDir == "" {
		a.ffcDir = filepath.Join(config.Dir(), "ffc")
	}
	hooks := modes.Hooks{SaveFlatField: a.saveFlatField, ReloadCamera: a.requestReload}
	a.mgr = modes.NewManager(model, hooks, a.engine.Names())
	a.seedState(opts.Config)
	return a, nil
}

// seedState copies the saved settings into the shared mode state, dropping
// anything out of range so a stale or hand-edited file cannot wedge the UI.
func (a *App) seedState(d config.Data) {
	s := a.mgr.State()
	if n := a.engine.Len(); n > 0 {
		idx := d.PaletteIndex % n
		if idx < 0 {
			idx += n
		}
		s.PaletteIdx = idx
	}
	s.ThresholdC = d.ThresholdC
	s.AdjustThresholdDisplay(0)
	switch op := thermal.Op(d.ThresholdMode); op {
	case thermal.OpAbove, thermal.OpBelow, thermal.OpNear:
		s.ThresholdMode = op
	}
	s.AutoExposureLock = d.AutoExposureLock
	s.FFLastSaved = d.FFCPath
	switch u := modes.Unit(d.TemperatureUnit); u {
	case modes.Celsius, modes.Fahrenheit:
		s.Unit = u
	}
	s.DefaultThresholdC = d.DefaultThresholdC
	s.DefaultThresholdF = d.DefaultThresholdF
}

// Tick runs one loop iteration: drain pending button presses, apply a
// requested camera reload, then read, process and present one frame.
//
// A failed read skips the tick without touching mode state; only a run of
// maxReadFailures consecutive failures is fatal.
func (a *App) Tick() error {
	a.drainEvents()
	a.applyReload()

	raw, err := a.cam.ReadRaw()
	if err != nil {
		a.stats.ReadErrors++
		a.readFails++
		log.Printf("viewer: read: %v", err)
		if a.readFails >= maxReadFailures {
			return fmt.Errorf("viewer: %d consecutive read failures: %w", a.readFails, err)
		}
		return nil
	}
	a.readFails = 0

	res := a.mgr.Update(raw)
	s := a.mgr.State()

	gray := thermal.Normalize(raw, s.AutoExposureLock)
	base := a.engine.Apply(gray, s.PaletteIdx)

	status := overlay.FormatStatus(a.mgr.Current().Name(), s.PaletteName())
	if _, live := a.mgr.Current().(*modes.Live); live {
		status = append(status, overlay.FormatTarget(s.ThresholdDisplay(), string(s.Unit)))
	}
	status = append(status, res.Status...)
	status = append(status, a.banners.Active()...)

	img := a.renderer.Render(base, overlay.Overlay{
		Mask:      res.Mask,
		MaskColor: res.MaskColor,
		Stats:     res.Stats,
		Unit:      string(s.Unit),
		Status:    status,
	})

	if err := a.display.Show(img); err != nil {
		a.stats.ShowErrors++
		log.Printf("viewer: display: %v", err)
	}
	a.stats.Frames++
	a.publish(img, raw, res, s)

	// The banner announcing this tick's outcome becomes visible on the
	// next render.
	if res.Banner != "" {
		a.banners.Push(res.Banner)
	}
	return nil
}

// Shutdown persists the durable state and releases the camera, display and
// taps. Calling it twice is a no-op.
func (a *App) Shutdown() error {
	if a.shut {
		return nil
	}
	a.shut = true
	var first error
	if a.configPath != "" {
		if err := config.Save(a.configPath, a.snapshot()); err != nil {
			log.Printf("viewer: saving config: %v", err)
			first = err
		}
	}
	if err := a.cam.Close(); err != nil {
		log.Printf("viewer: closing camera: %v", err)
		if first == nil {
			first = err
		}
	}
	if err := a.display.Halt(); err != nil {
		log.Printf("viewer: halting display: %v", err)
		if first == nil {
			first = err
		}
	}
	if a.tel != nil {
		a.tel.Close()
	}
	if a.web != nil {
		a.web.Close()
	}
	return first
}

// Stats returns a snapshot of the loop counters.
func (a *App) Stats() Stats {
	return a.stats
}

// snapshot folds the live mode state back into the config document.
func (a *App) snapshot() config.Data {
	s := a.mgr.State()
	d := a.cfg
	d.PaletteIndex = s.PaletteIdx
	d.ThresholdC = s.ThresholdC
	d.ThresholdMode = string(s.ThresholdMode)
	d.AutoExposureLock = s.AutoExposureLock
	d.FFCPath = s.FFLastSaved
	d.TemperatureUnit = string(s.Unit)
	d.DefaultThresholdC = s.DefaultThresholdC
	d.DefaultThresholdF = s.DefaultThresholdF
	return d
}

// drainEvents handles every press already queued, so button handling is
// serialized with tick boundaries.
func (a *App) drainEvents() {
	for a.events != nil {
		select {
		case b, ok := <-a.events:
			if !ok {
				a.events = nil
				return
			}
			a.handleButton(b)
		default:
			return
		}
	}
}

func (a *App) handleButton(b buttons.Button) {
	switch b {
	case buttons.Mode:
		consumed, msg := a.mgr.HandleModePress()
		if consumed {
			a.banners.Push(msg)
			return
		}
		a.banners.Push(a.mgr.Cycle())
	case buttons.Down:
		a.banners.Push(a.mgr.HandleButtonDown())
	case buttons.Up:
		a.banners.Push(a.mgr.HandleButtonUp())
	}
}

// requestReload queues a camera reopen; it is applied at the top of the
// next tick, never mid-render.
func (a *App) requestReload(path string) {
	a.reloadPath = path
	a.reloadPending = true
}

// applyReload swaps in a camera opened with the new calibration file. The
// fresh camera is opened before the old one closes, so a failed open keeps
// the viewer running on the current one.
func (a *App) applyReload() {
	if !a.reloadPending {
		return
	}
	path := a.reloadPath
	a.reloadPending = false
	a.reloadPath = ""
	if a.openCamera == nil {
		return
	}
	cam, err := a.openCamera(path)
	if err != nil {
		log.Printf("viewer: reload with %s failed, keeping current camera: %v", path, err)
		return
	}
	if err := a.cam.Close(); err != nil {
		log.Printf("viewer: closing old camera: %v", err)
	}
	a.cam = cam
	a.mgr.State().FFLastSaved = path
}

// saveFlatField writes the averaged calibration frame as a 16-bit PNG named
// after the capture time and returns its path.
func (a *App) saveFlatField(f *thermal.Frame) (string, error) {
	if err := os.MkdirAll(a.ffcDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(a.ffcDir, "ffc_"+a.now().Format("20060102_150405")+".png")
	fd, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := png.Encode(fd, f); err != nil {
		fd.Close()
		return "", err
	}
	if err := fd.Close(); err != nil {
		return "", err
	}
	if a.tel != nil {
		if err := a.tel.PublishFrame(f); err != nil {
			log.Printf("viewer: publishing flat field: %v", err)
		}
	}
	return path, nil
}

// publish feeds the web and MQTT taps. Both are best effort; neither can
// fail the tick.
func (a *App) publish(img *image.RGBA, raw *thermal.Frame, res *modes.Result, s *modes.State) {
	if a.web == nil && a.tel == nil {
		return
	}
	lo, hi := raw.MinMax()
	minC, maxC := a.model.Celsius(lo), a.model.Celsius(hi)
	mode := a.mgr.Current().Name()
	if a.web != nil {
		a.web.Add(img, webui.Meta{
			Seq:     a.stats.Frames,
			Mode:    mode,
			Palette: s.PaletteName(),
			MinC:    minC,
			MaxC:    maxC,
			Unit:    string(s.Unit),
		})
	}
	if a.tel != nil {
		marked := 0
		if res.Mask != nil {
			marked = res.Mask.Count()
		}
		err := a.tel.Publish(telemetry.Sample{
			Seq:    a.stats.Frames,
			Time:   raw.When,
			Mode:   mode,
			MinC:   minC,
			MaxC:   maxC,
			Marked: marked,
		})
		if err != nil {
			log.Printf("viewer: telemetry: %v", err)
		}
	}
}
