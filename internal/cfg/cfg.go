// Package cfg holds process-wide settings. Defaults suit a desktop machine;
// LoadEnv overrides them from COLOR_LAYERS_* environment variables.
package cfg

import (
	"log"
	"os"
	"runtime"
	"strconv"
)

// Workers is the number of goroutines used by row-parallel image passes.
var Workers = runtime.NumCPU()

// Debug enables verbose logging.
var Debug = false

// DefaultIslandSize is the island threshold used when a request does not give
// one. Zero disables smoothing.
var DefaultIslandSize = 0

// MaxImageSize caps the longer image side before processing. Zero keeps the
// original size.
var MaxImageSize = 0

// OutputDir is where generated files go when a request gives no path.
var OutputDir = os.TempDir()

// LoadEnv applies environment overrides. Malformed numbers are logged and
// ignored.
func LoadEnv() {
	if v := os.Getenv("COLOR_LAYERS_LOG_LEVEL"); v != "" {
		Debug = v == "debug"
	}
	loadInt("COLOR_LAYERS_WORKERS", &Workers)
	loadInt("COLOR_LAYERS_ISLAND_SIZE", &DefaultIslandSize)
	loadInt("COLOR_LAYERS_MAX_SIZE", &MaxImageSize)
	if v := os.Getenv("COLOR_LAYERS_OUTPUT_DIR"); v != "" {
		OutputDir = v
	}
	if Workers < 1 {
		Workers = 1
	}
}

func loadInt(key string, dst *int) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("ignoring %s=%q: %v", key, v, err)
		return
	}
	*dst = n
}
