package utils

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// ReadManifest parses a batch manifest and returns its usable entries.
// Entries missing a segment, endpoint, or file are skipped with a warning
// rather than failing the whole batch.
func ReadManifest(path string) ([]ReadEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading manifest file: %v", err)
	}
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("error parsing manifest file: %v", err)
	}
	var entries []ReadEntry
	for i, entry := range manifest.Reads {
		if entry.Segment == "" || entry.Endpoint == "" || entry.File == "" {
			log.Warn().Str("op", "utils/manifest").Msgf("Skipping incomplete entry %d (segment, endpoint, and file are required)", i+1)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
