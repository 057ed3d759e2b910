package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ProgressiveRaytracer renders a frame in passes. Each pass adds samples to
// the running per-pixel sums; one pass is a plain full-frame render.
type ProgressiveRaytracer struct {
	config       FrameConfig
	width        int
	height       int
	tiles        []*Tile      // Tile management
	pixelStats   []PixelStats // Shared per-pixel sums, row-major, top row first
	tileRenderer *TileRenderer
	logger       core.Logger
}

// NewProgressiveRaytracer validates the config and prepares the camera, tiles and buffers.
// The frame's aspect ratio replaces the one in the scene's camera config.
func NewProgressiveRaytracer(s *scene.Scene, config FrameConfig, logger core.Logger) (*ProgressiveRaytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid frame config: %w", err)
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	width, height := config.Width, config.Height()

	cameraConfig := s.CameraConfig
	cameraConfig.AspectRatio = config.AspectRatio
	camera := geometry.NewCamera(cameraConfig)

	pathTracer := integrator.NewPathTracingIntegrator(s.Background)

	return &ProgressiveRaytracer{
		config:       config,
		width:        width,
		height:       height,
		tiles:        NewTileGrid(width, height, config.TileSize, config.Seed),
		pixelStats:   make([]PixelStats, width*height),
		tileRenderer: NewTileRenderer(s.World, camera, pathTracer, config),
		logger:       logger,
	}, nil
}

// getSamplesForPass calculates the target total samples for a given pass
func (pr *ProgressiveRaytracer) getSamplesForPass(passNumber int) int {
	// Special case: if only 1 pass, use all samples
	if pr.config.Passes == 1 {
		return pr.config.SamplesPerPixel
	}

	// First pass is a one-sample preview
	if passNumber == 1 {
		return 1
	}

	// Divide remaining samples evenly across remaining passes
	samplesPerPass := (pr.config.SamplesPerPixel - 1) / (pr.config.Passes - 1)
	targetSamples := 1 + (passNumber-1)*samplesPerPass

	// For the final pass, use all remaining samples
	if passNumber == pr.config.Passes {
		targetSamples = pr.config.SamplesPerPixel
	}

	return targetSamples
}

// renderPass submits every tile for one pass and waits for all of them
func (pr *ProgressiveRaytracer) renderPass(pool *WorkerPool, passNumber int, tileCallback func(TileCompletionResult)) (*FinalImage, RenderStats, error) {
	targetSamples := pr.getSamplesForPass(passNumber)

	pr.logger.Printf("Pass %d: Target %d samples per pixel (using %d workers)...\n",
		passNumber, targetSamples, pool.GetNumWorkers())

	for taskID, tile := range pr.tiles {
		pool.SubmitTask(TileTask{
			Tile:          tile,
			PassNumber:    passNumber,
			TargetSamples: targetSamples,
			TaskID:        taskID,
			PixelStats:    pr.pixelStats,
		})
	}

	stats := RenderStats{SamplesPerPixel: targetSamples}
	var firstErr error
	for i := 0; i < len(pr.tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}

		stats.RayCount += result.Stats.RayCount

		tile := pr.tiles[result.TaskID]
		tile.PassesCompleted++

		if tileCallback != nil {
			tileCallback(TileCompletionResult{
				TileX:       tile.Bounds.Min.X / pr.config.TileSize,
				TileY:       tile.Bounds.Min.Y / pr.config.TileSize,
				Bounds:      tile.Bounds,
				PassNumber:  passNumber,
				TileNumber:  i + 1,
				TotalTiles:  len(pr.tiles),
				TotalPasses: pr.config.Passes,
			})
		}
	}
	if firstErr != nil {
		return nil, RenderStats{}, firstErr
	}

	img := pr.snapshot(targetSamples)
	stats.TotalPixels = len(pr.pixelStats)
	for i := range pr.pixelStats {
		stats.TotalSamples += pr.pixelStats[i].SampleCount
	}
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)

	return img, stats, nil
}

// snapshot copies the running sums into a FinalImage
func (pr *ProgressiveRaytracer) snapshot(samplesPerPixel int) *FinalImage {
	img := NewFinalImage(pr.width, pr.height)
	img.SamplesPerPixel = samplesPerPixel
	for i := range pr.pixelStats {
		img.Pixels[i] = pr.pixelStats[i].ColorAccum
	}
	return img
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Image      *FinalImage
	Stats      RenderStats
	Elapsed    time.Duration
	IsLast     bool
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX      int // Tile coordinates (not pixel coordinates)
	TileY      int
	Bounds     image.Rectangle // Pixel bounds, row 0 at the top
	PassNumber int             // Which pass this tile was rendered in

	// Progress information
	TileNumber  int // Current tile number in this pass (1-based)
	TotalTiles  int // Total number of tiles in the image
	TotalPasses int // Total number of passes planned
}

// RenderOptions configures progressive rendering behavior
type RenderOptions struct {
	TileUpdates bool // Whether to generate tile completion events
}

// RenderProgressive renders with channel-based communication.
// Returns channels for events. The caller should read from these channels in separate goroutines.
// If options.TileUpdates is false, the tile channel will be closed immediately and no tile events will be generated.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context, options RenderOptions) (<-chan PassResult, <-chan TileCompletionResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	tileChan := make(chan TileCompletionResult, 100) // Buffer for tiles
	errChan := make(chan error, 1)

	// If tile updates are disabled, close the channel immediately
	if !options.TileUpdates {
		close(tileChan)
	}

	go func() {
		defer close(passChan)
		if options.TileUpdates {
			defer close(tileChan)
		}
		defer close(errChan)

		pool := NewWorkerPool(ctx, pr.tileRenderer, len(pr.tiles), pr.config.NumWorkers)
		pool.Start()
		defer pool.Stop()

		pr.logger.Printf("Starting render %dx%d, %d spp, depth %d, %d passes...\n",
			pr.width, pr.height, pr.config.SamplesPerPixel, pr.config.MaxDepth, pr.config.Passes)

		for pass := 1; pass <= pr.config.Passes; pass++ {
			// Check if client disconnected before starting this pass
			select {
			case <-ctx.Done():
				pr.logger.Printf("Rendering cancelled before pass %d\n", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			startTime := time.Now()

			var tileCallback func(TileCompletionResult)
			if options.TileUpdates {
				tileCallback = func(result TileCompletionResult) {
					select {
					case tileChan <- result:
					case <-ctx.Done():
					default:
						// Channel full, drop the progress event
					}
				}
			}

			img, stats, err := pr.renderPass(pool, pass, tileCallback)
			if err != nil {
				pr.logger.Printf("Pass %d failed: %v\n", pass, err)
				errChan <- err
				return
			}

			passTime := time.Since(startTime)
			pr.logger.Printf("Pass %d completed in %v (%d samples/pixel, %d rays)\n",
				pass, passTime, stats.SamplesPerPixel, stats.RayCount)

			result := PassResult{
				PassNumber: pass,
				Image:      img,
				Stats:      stats,
				Elapsed:    passTime,
				IsLast:     pass == pr.config.Passes,
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return passChan, tileChan, errChan
}

// Render runs every pass and returns the final image
func (pr *ProgressiveRaytracer) Render(ctx context.Context) (*FinalImage, RenderStats, error) {
	passChan, _, errChan := pr.RenderProgressive(ctx, RenderOptions{})

	var last PassResult
	var totalRays int64
	for result := range passChan {
		last = result
		totalRays += result.Stats.RayCount
	}
	if err := <-errChan; err != nil {
		return nil, RenderStats{}, err
	}
	if last.Image == nil {
		return nil, RenderStats{}, fmt.Errorf("render produced no passes")
	}

	stats := last.Stats
	stats.RayCount = totalRays
	return last.Image, stats, nil
}

// RenderFrame renders a scene with the given config in one call
func RenderFrame(ctx context.Context, s *scene.Scene, config FrameConfig, logger core.Logger) (*FinalImage, RenderStats, error) {
	pr, err := NewProgressiveRaytracer(s, config, logger)
	if err != nil {
		return nil, RenderStats{}, err
	}
	return pr.Render(ctx)
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID              int             // Unique tile identifier
	Bounds          image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	PassesCompleted int             // Number of passes completed for this tile
	Sampler         core.Sampler    // Tile-specific sampler for deterministic results
}

// NewTile creates a new tile with the specified bounds and its own sample stream
func NewTile(id int, bounds image.Rectangle, seed uint64) *Tile {
	return &Tile{
		ID:              id,
		Bounds:          bounds,
		PassesCompleted: 0,
		Sampler:         core.NewMCGSampler(tileSeed(seed, id)),
	}
}

// tileSeed scrambles the frame seed and tile id into a well-spread seed
func tileSeed(seed uint64, tileID int) uint64 {
	z := seed + uint64(tileID+42)*0x9e3779b97f4a7c15 // +42 to avoid seed 0
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed uint64) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}
