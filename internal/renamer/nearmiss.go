package renamer

import (
	"path/filepath"
	"slices"

	"github.com/sahilm/fuzzy"
)

// NearMisses returns the names whose extension loosely resembles ext, such
// as "photo.JPG" or "scan.jpeg" for ".jpg". Names without an extension or
// already ending with ext are ignored. The result keeps the input order.
func NearMisses(names []string, ext string) []string {
	if ext == "" {
		return nil
	}

	// Match against the extension only so a dot earlier in the name
	// cannot anchor the pattern.
	var exts []string
	var owners []string
	for _, name := range names {
		e := filepath.Ext(name)
		if e == "" || e == ext {
			continue
		}
		exts = append(exts, e)
		owners = append(owners, name)
	}

	matches := fuzzy.Find(ext, exts)
	if len(matches) == 0 {
		return nil
	}

	indexes := make([]int, 0, len(matches))
	for _, m := range matches {
		indexes = append(indexes, m.Index)
	}
	slices.Sort(indexes)

	result := make([]string, 0, len(indexes))
	for _, i := range indexes {
		result = append(result, owners[i])
	}
	return result
}
