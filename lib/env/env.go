package env

import (
	"os"
	"strings"
)

func Debug() bool {
	return os.Getenv("DEBUG") != ""
}

// NoColor reports whether NO_COLOR is set, see https://no-color.org.
func NoColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

// ColorMode returns the MMD_COLOR override for automatic color detection, if any.
func ColorMode() (string, bool) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("MMD_COLOR")))
	return v, v != ""
}
