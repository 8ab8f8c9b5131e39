package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one file in the output manifest.
type ManifestEntry struct {
	Input      string `json:"input"`
	Output     string `json:"output,omitempty"`
	Iterations int    `json:"iterations"`
	Filled     int    `json:"filled"`
	Error      string `json:"error,omitempty"`
}

// WriteManifest writes manifest.json to the output directory.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Input:      r.Name,
			Output:     r.Output,
			Iterations: r.Iterations,
			Filled:     r.Filled,
			Error:      r.Error,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
