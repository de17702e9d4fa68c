package maintenance

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/manusa/kubernetes-mcp-server-launcher/internal/config"
)

// ShowConfig writes the effective settings as YAML.
func ShowConfig(w io.Writer, cfg *config.Config) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(cfg); err != nil {
		return err
	}

	return encoder.Close()
}

// SaveConfig persists the effective settings so later launches reuse them.
func SaveConfig(path string, cfg *config.Config) (string, error) {
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}

	if path == "" {
		var err error

		path, err = config.DefaultPath()
		if err != nil {
			return "", err
		}
	}

	if err := config.Save(path, cfg); err != nil {
		return "", err
	}

	return path, nil
}
