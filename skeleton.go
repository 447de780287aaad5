package waymark

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// skeletonFS carries the default bilingual tables of the reference product,
// used by "waymark init" to set up a fresh configuration directory.
//
//go:embed skeleton
var skeletonFS embed.FS

// WriteSkeleton writes the default configuration set (app.conf, routes,
// menu.yaml, and the segment dictionary) into dir. Existing files are left
// alone.
func WriteSkeleton(dir string) error {
	return fs.WalkDir(skeletonFS, "skeleton", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel("skeleton", name)
		if err != nil {
			return err
		}
		dest := filepath.Join(dir, rel)

		if entry.IsDir() {
			return os.MkdirAll(dest, 0755)
		}

		if _, err := os.Stat(dest); err == nil {
			return fmt.Errorf("refusing to overwrite %s", dest)
		}

		data, err := skeletonFS.ReadFile(name)
		if err != nil {
			return err
		}
		return os.WriteFile(dest, data, 0644)
	})
}
