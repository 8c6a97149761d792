package config

import (
	"bufio"
	"os"
	"strings"
)

// loadEnvFiles reads KEY=VALUE pairs from the given files into the process
// environment. Best-effort for local development: missing files are skipped
// and variables already set in the environment win.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			applyEnvLine(scanner.Text())
		}
		_ = f.Close()
	}
}

func applyEnvLine(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	line = strings.TrimPrefix(line, "export ")

	key, val, ok := strings.Cut(line, "=")
	if !ok {
		return
	}
	key = strings.TrimSpace(key)
	if key == "" || os.Getenv(key) != "" {
		return
	}
	val = strings.TrimSpace(val)
	val = strings.Trim(val, `"'`)
	os.Setenv(key, val)
}
