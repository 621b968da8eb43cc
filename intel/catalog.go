// ABOUTME: Loads the capability catalog from a JSON file
// ABOUTME: A missing path yields an empty catalog, not an error
package intel

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadCatalog reads the service/case-study catalog from a JSON file. An empty
// path returns an empty catalog so the capability layer falls back to its
// placeholder text.
func LoadCatalog(path string) (CapabilityCatalog, error) {
	if path == "" {
		return CapabilityCatalog{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return CapabilityCatalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}
	var catalog CapabilityCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return CapabilityCatalog{}, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return catalog, nil
}
