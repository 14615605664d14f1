package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
)

// Default is the level loaded when no path is configured.
const Default = "workshop.yaml"

//go:embed *.yaml
var LevelsFS embed.FS

// Load reads a level file. A path that exists on disk wins; otherwise the
// name is looked up among the embedded levels.
func Load(name string) ([]byte, error) {
	if name == "" {
		name = Default
	}
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level %q: %w", name, err)
	}
	return data, nil
}
