package maintenance

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/manusa/kubernetes-mcp-server-launcher/internal/config"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/service/launcher"
)

var (
	defaultVersionColor = color.New(color.FgGreen, color.Bold)
	rootColor           = color.New(color.Faint)
)

// List writes the cached versions and their artifacts to w, oldest first.
// The configured version is marked as the default.
func List(_ context.Context, w io.Writer, cfg *config.Config) error {
	store := launcher.NewStore(cfg, nil)

	versions, err := store.Versions()
	if err != nil {
		return err
	}

	if _, err = rootColor.Fprintln(w, store.Root()); err != nil {
		return err
	}

	if len(versions) == 0 {
		_, err = fmt.Fprintln(w, "  (empty)")
		return err
	}

	for _, v := range versions {
		if v == cfg.Version {
			_, err = defaultVersionColor.Fprintf(w, "  %s (default)\n", v)
		} else {
			_, err = fmt.Fprintf(w, "  %s\n", v)
		}

		if err != nil {
			return err
		}

		artifacts, artifactsErr := store.Artifacts(v)
		if artifactsErr != nil {
			return artifactsErr
		}

		for _, artifact := range artifacts {
			if _, err = fmt.Fprintf(w, "    %s\n", artifact); err != nil {
				return err
			}
		}
	}

	return nil
}
