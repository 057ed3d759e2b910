package main

import (
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-sphere-pathtracer/pkg/output"
	"github.com/df07/go-sphere-pathtracer/web/server"
)

func main() {
	envFile := getEnv("PATHTRACER_ENV_FILE", ".env")
	_ = godotenv.Load(envFile)

	defaultPort, err := strconv.Atoi(getEnv("PATHTRACER_PORT", "8080"))
	if err != nil {
		log.Fatalf("Invalid PATHTRACER_PORT: %v", err)
	}

	// Parse command line flags
	port := flag.Int("port", defaultPort, "Port to serve on")
	scenesDir := flag.String("scenes", "", "Directory of JSON scene files (default: ./scenes if present)")
	flag.Parse()

	var uploader *output.S3Uploader
	if s3Config := output.S3ConfigFromEnv(); s3Config.Validate() == nil {
		uploader, err = output.NewS3Uploader(s3Config)
		if err != nil {
			log.Fatalf("Error configuring S3: %v", err)
		}
		log.Printf("S3 uploads enabled (bucket %s)", s3Config.Bucket)
	}

	webServer := server.NewServer(*port, *scenesDir, uploader)

	log.Printf("Sphere Path Tracer Web Server")
	log.Printf("Visit http://localhost:%d/api/scenes to list scenes", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
