// Package seeds loads the ordered list of pages each pass walks.
package seeds

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/thcipriani/getting-to-philosophy-battery-test/models"
	"github.com/thcipriani/getting-to-philosophy-battery-test/wiki"
)

// Load reads a YAML list of seed pages — article titles or absolute
// URLs — and resolves each to a full page URL. The list is read once
// at startup; an unreadable, malformed, or empty file is a fatal
// startup error.
func Load(path string, site *wiki.Site) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, models.NewWalkError(models.ErrCodeSeedInput, "read seed file", err)
	}

	var entries []string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, models.NewWalkError(models.ErrCodeSeedInput, "parse seed file "+path, err)
	}
	if len(entries) == 0 {
		return nil, models.NewWalkError(models.ErrCodeSeedInput, "seed file "+path+" lists no pages", nil)
	}

	pages := make([]string, 0, len(entries))
	for _, e := range entries {
		if e == "" {
			return nil, models.NewWalkError(models.ErrCodeSeedInput, "seed file "+path+" contains an empty entry", nil)
		}
		pages = append(pages, site.PageURL(e))
	}
	return pages, nil
}
