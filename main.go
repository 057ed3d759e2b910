package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/joho/godotenv"

	"github.com/df07/go-sphere-pathtracer/pkg/output"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	Scene   string
	Width   int
	Samples int
	Depth   int
	Workers int
	Seed    int64
	Passes  int
	Out     string
	Thumb   int
	Upload  bool
	Help    bool
}

func parseFlags(args []string, stderr io.Writer) (options, *flag.FlagSet, error) {
	var opts options
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.Scene, "scene", "random", "Scene: a built-in id, json:<name> or a path to a .json scene file")
	fs.IntVar(&opts.Width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&opts.Samples, "spp", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.Depth, "depth", -1, "Maximum bounce depth (-1 = scene default)")
	fs.IntVar(&opts.Workers, "workers", 0, "Number of render workers (0 = CPU count)")
	fs.Int64Var(&opts.Seed, "seed", 42, "Seed for random scenes and samplers")
	fs.IntVar(&opts.Passes, "passes", 1, "Number of progressive passes")
	fs.StringVar(&opts.Out, "out", "", "Output file; the extension picks the format (.png .jpg .bmp .tif .gif .ppm)")
	fs.IntVar(&opts.Thumb, "thumb", 0, "Also write a PNG thumbnail this many pixels wide")
	fs.BoolVar(&opts.Upload, "upload", false, "Upload the image to the S3 bucket configured in the environment")
	fs.BoolVar(&opts.Help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, fs, err
	}
	return opts, fs, nil
}

func main() {
	_ = godotenv.Load(getEnv("PATHTRACER_ENV_FILE", ".env"))

	opts, fs, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	if opts.Help {
		printHelp(fs)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func printHelp(fs *flag.FlagSet) {
	fmt.Println("Sphere Path Tracer")
	fmt.Println("Usage: pathtracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Built-in scenes:")
	for _, id := range scene.BuiltInSceneIDs() {
		fmt.Printf("  %s\n", id)
	}
	if files, err := scene.ListJSONScenes(""); err == nil && len(files) > 0 {
		fmt.Println()
		fmt.Println("Scene files:")
		for _, info := range files {
			fmt.Printf("  %s\n", info.ID)
		}
	}
	fmt.Println()
	fmt.Println("Output is saved to output/<scene>/render_<timestamp>.png unless -out is given.")
	fmt.Println("An -out of just an extension, e.g. -out .ppm, writes raytrace-<timestamp> to the temp directory.")
}

func run(ctx context.Context, opts options) error {
	var uploader *output.S3Uploader
	if opts.Upload {
		var err error
		if uploader, err = output.NewS3Uploader(output.S3ConfigFromEnv()); err != nil {
			return err
		}
	}

	selectedScene, err := createScene(opts.Scene, opts.Seed)
	if err != nil {
		return err
	}
	fmt.Printf("Using scene %s (%d spheres)...\n", selectedScene.Name, selectedScene.GetPrimitiveCount())

	config := frameConfig(selectedScene, opts)

	startTime := time.Now()
	img, stats, err := renderer.RenderFrame(ctx, selectedScene, config, renderer.NewDefaultLogger())
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	fmt.Printf("Render completed in %v\n", time.Since(startTime))
	fmt.Printf("Samples per pixel: %d, rays traced: %d\n", stats.SamplesPerPixel, stats.RayCount)

	filename := createOutputPath(opts.Scene, opts.Out, time.Now())
	if err := output.WriteFile(filename, img); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", filename)

	if opts.Thumb > 0 {
		thumbName := thumbnailPath(filename)
		thumb := output.Thumbnail(output.ToRGBA(img), uint(opts.Thumb))
		if err := imaging.Save(thumb, thumbName); err != nil {
			return fmt.Errorf("failed to save thumbnail: %w", err)
		}
		fmt.Printf("Thumbnail saved as %s\n", thumbName)
	}

	if uploader != nil {
		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read render for upload: %w", err)
		}
		ext := filepath.Ext(filename)
		if _, err := uploader.Upload(ctx, filepath.Base(filename), data, output.ContentType(ext)); err != nil {
			return err
		}
	}

	return nil
}

// createScene resolves a scene reference, or an error for unknown scenes
func createScene(ref string, seed int64) (*scene.Scene, error) {
	if ref == "" {
		return nil, fmt.Errorf("no scene given")
	}
	return scene.Load(ref, seed)
}

// frameConfig applies command line overrides on top of the scene defaults
func frameConfig(s *scene.Scene, opts options) renderer.FrameConfig {
	config := renderer.FrameConfigForScene(s)
	if opts.Width > 0 {
		config.Width = opts.Width
	}
	if opts.Samples > 0 {
		config.SamplesPerPixel = opts.Samples
	}
	if opts.Depth >= 0 {
		config.MaxDepth = opts.Depth
	}
	config.NumWorkers = opts.Workers
	config.Seed = uint64(opts.Seed)
	config.Passes = opts.Passes
	if config.Passes < 1 {
		config.Passes = 1
	}
	if config.Passes > config.SamplesPerPixel {
		config.Passes = config.SamplesPerPixel
	}
	return config
}

// sceneBaseName turns a scene reference into a directory-friendly name
func sceneBaseName(ref string) string {
	name := strings.TrimPrefix(ref, "json:")
	if strings.HasSuffix(name, ".json") {
		name = strings.TrimSuffix(filepath.Base(name), ".json")
	}
	if name == "" {
		return "scene"
	}
	return name
}

// createOutputPath picks the output file name for a render
func createOutputPath(sceneRef, out string, now time.Time) string {
	switch {
	case out == "":
		timestamp := now.Format("20060102_150405")
		return filepath.Join("output", sceneBaseName(sceneRef), fmt.Sprintf("render_%s.png", timestamp))
	case strings.HasPrefix(out, ".") && filepath.Ext(out) == out:
		return output.DefaultOutputPath(out)
	default:
		return out
	}
}

// thumbnailPath returns "<name>_thumb.png" next to the render
func thumbnailPath(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + "_thumb.png"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
