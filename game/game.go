// Package game wires the audio analyzer, band reducer and grid height updater
// into a per-frame pipeline and draws the result.
package game

import (
	"errors"
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/spectrogrid/audio"
	"github.com/pthm-cable/spectrogrid/camera"
	"github.com/pthm-cable/spectrogrid/components"
	"github.com/pthm-cable/spectrogrid/config"
	"github.com/pthm-cable/spectrogrid/renderer"
	"github.com/pthm-cable/spectrogrid/spectrum"
	"github.com/pthm-cable/spectrogrid/systems"
	"github.com/pthm-cable/spectrogrid/telemetry"
	"github.com/pthm-cable/spectrogrid/ui"
)

// Game holds the complete visualizer state.
type Game struct {
	cfg   *config.Config
	world *ecs.World

	// Grid entities in spawn order: index = x*depth + z
	entities []ecs.Entity
	cellMap  *ecs.Map3[components.Position, components.Scale, components.Material]

	// Pipeline
	sampler    SpectrumSource
	sourceName string
	reducer    *spectrum.Reducer
	raw        []float64
	bands      spectrum.BandArray
	grid       *systems.GridHeightUpdater
	registry   *systems.SystemRegistry
	lastReport spectrum.Report
	lastGrid   systems.GridResult

	// Telemetry
	perfCollector    *telemetry.PerfCollector
	collector        *telemetry.Collector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	logStats         bool
	statsCallback    func(telemetry.WindowStats)
	heights          []float64

	// State
	frame    int32
	paused   bool
	stepOnce bool
	ended    bool
	headless bool

	// Graphics (nil in headless mode)
	camera       *camera.Camera
	gridView     *renderer.GridRenderer
	background   *renderer.BackgroundRenderer
	palette      []rl.Color
	overlays     *ui.Overlays
	hud          *ui.HUD
	bandPanel    *ui.BandPanel
	perfPanel    *ui.PerfPanel
	controls     *ui.ControlsPanel
	inspector    *ui.Inspector
	selection    CellSelection
	screenWidth  int32
	screenHeight int32
}

// NewGameWithOptions builds the world, spawns the grid and wires the pipeline.
// A band width that leaves remainder bins is logged and accepted.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	reducer, err := spectrum.NewReducer(spectrum.Options{
		Size:      cfg.Spectrum.Size,
		BandWidth: cfg.Spectrum.BandWidth,
		LogOffset: cfg.Spectrum.LogOffset,
		LogBands:  opts.LogBands || cfg.Spectrum.LogBands,
	})
	if errors.Is(err, spectrum.ErrPartialBand) {
		slog.Warn("band width does not divide spectrum size", "error", err,
			"band_count", reducer.BandCount(),
			"dropped_bins", cfg.Spectrum.Size-reducer.BandCount()*reducer.BandWidth())
	} else if err != nil {
		return nil, fmt.Errorf("creating reducer: %w", err)
	}

	sampler, name, err := buildSampler(cfg, opts)
	if err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	g := &Game{
		cfg:        cfg,
		world:      world,
		cellMap:    ecs.NewMap3[components.Position, components.Scale, components.Material](world),
		sampler:    sampler,
		sourceName: name,
		reducer:    reducer,
		raw:        make([]float64, cfg.Spectrum.Size),
		bands:      reducer.NewBandArray(),
		grid:       systems.NewGridHeightUpdater(world),
		registry:   systems.NewSystemRegistry(),
		logStats:   opts.LogStats,
		headless:   opts.Headless,

		statsCallback: opts.StatsCallback,
	}

	g.entities = systems.SpawnGrid(world, systems.LayoutFromConfig(cfg))
	g.heights = make([]float64, 0, len(g.entities))

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow, g.registry.StepIDs())
	g.collector = telemetry.NewCollector(statsWindow, cfg.Derived.FrameDT)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(10)

	g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		g.outputManager.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	if !opts.Headless {
		if err := g.initGraphics(); err != nil {
			g.outputManager.Close()
			return nil, err
		}
	}

	slog.Info("visualizer ready",
		"source", g.sourceName,
		"entities", len(g.entities),
		"bands", reducer.BandCount(),
		"band_width", reducer.BandWidth(),
		"seed", opts.Seed,
		"headless", opts.Headless,
	)
	return g, nil
}

// buildSampler resolves the spectrum source: explicit override, explicit audio
// source, or the configured one.
func buildSampler(cfg *config.Config, opts Options) (SpectrumSource, string, error) {
	if opts.Spectrum != nil {
		return opts.Spectrum, "custom", nil
	}

	win, err := audio.ParseWindow(cfg.Audio.Window)
	if err != nil {
		return nil, "", err
	}

	src := opts.Source
	name := "custom"
	if src == nil {
		src, err = audio.FromConfig(cfg.Audio, opts.Seed)
		if err != nil {
			return nil, "", fmt.Errorf("opening audio source: %w", err)
		}
		name = "tones"
		if cfg.Audio.File != "" {
			name = cfg.Audio.File
		}
	}
	return audio.NewAnalyzer(src, win, cfg.Spectrum.Size, cfg.Screen.TargetFPS), name + "/" + win.String(), nil
}

// initGraphics creates the camera, renderers and panels. Requires no window;
// nothing here calls into raylib.
func (g *Game) initGraphics() error {
	cfg := g.cfg

	gridView, err := renderer.NewGridRenderer(g.world, cfg.Render, cfg.Grid)
	if err != nil {
		return fmt.Errorf("creating grid renderer: %w", err)
	}
	palette, err := renderer.ParsePalette(cfg.Render.Palette)
	if err != nil {
		return err
	}

	g.screenWidth = int32(cfg.Screen.Width)
	g.screenHeight = int32(cfg.Screen.Height)

	g.camera = camera.New(
		float32(cfg.Camera.Distance),
		float32(cfg.Camera.Pitch),
		float32(cfg.Camera.Yaw),
		float32(cfg.Camera.Fovy),
	)
	g.camera.OrbitSpeed = float32(cfg.Camera.OrbitSpeed)
	g.camera.CenterOnGrid(cfg.Grid.Width, cfg.Grid.Depth, float32(cfg.Grid.Spacing))

	g.gridView = gridView
	g.background = renderer.NewBackgroundRenderer(g.screenWidth, g.screenHeight)
	g.palette = palette
	g.overlays = ui.NewOverlays()
	if cfg.Render.Wireframe {
		g.overlays.SetEnabled(ui.OverlayWireframe, true)
	}
	g.hud = ui.NewHUD()
	g.bandPanel = ui.NewBandPanel(0, 0, bandPanelW, bandPanelH)
	g.perfPanel = ui.NewPerfPanel(0, 0)
	g.controls = ui.NewControlsPanel(0, 0, columnW)
	g.inspector = ui.NewInspector(0, 0, inspectorWidth)
	g.placePanels()
	g.selection = NewCellSelection(cfg.Grid.Width, cfg.Grid.Depth)
	return nil
}

// Frame returns the number of pipeline steps run so far.
func (g *Game) Frame() int32 {
	return g.frame
}

// Bands returns the band array written by the last step. It is overwritten
// in place every frame.
func (g *Game) Bands() spectrum.BandArray {
	return g.bands
}

// Ended reports whether the audio source has been exhausted.
func (g *Game) Ended() bool {
	return g.ended
}

// Entities returns the grid entities in spawn order.
func (g *Game) Entities() []ecs.Entity {
	return g.entities
}

// World returns the ECS world.
func (g *Game) World() *ecs.World {
	return g.world
}

// Unload flushes a final stats window, closes outputs and releases the world.
func (g *Game) Unload() {
	if g.world == nil {
		return
	}
	if g.collector != nil && g.collector.Pending() {
		g.flushWindow()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.world = nil
	slog.Info("visualizer stopped", "frames", g.frame)
}
