package news

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

// Section is one changelog section, backed by a numbered subdirectory of
// the news root such as "1 Enhancements".
type Section struct {
	// Index orders the section within the changelog.
	Index int
	// Title is the directory name with the index prefix removed.
	Title string
	// Path is the section directory.
	Path string
}

// SectionEntries pairs a section with its gathered entries.
type SectionEntries struct {
	Section Section
	Entries []Entry
}

var sectionNameRE = regexp.MustCompile(`^(\d+)\s+(.+)$`)

// ParseSectionName splits a directory name into its sort index and title.
// ok is false when the name has no numeric prefix.
func ParseSectionName(name string) (index int, title string, ok bool) {
	m := sectionNameRE.FindStringSubmatch(name)
	if m == nil {
		return 0, "", false
	}
	index, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}
	return index, m[2], true
}

// Sections lists the section directories under the news root, sorted by
// their numeric index. Directories without an index prefix are not
// sections and are ignored.
func Sections(dir string) ([]Section, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading news directory %s: %w", dir, err)
	}

	var sections []Section
	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		index, title, ok := ParseSectionName(item.Name())
		if !ok {
			continue
		}
		sections = append(sections, Section{
			Index: index,
			Title: title,
			Path:  filepath.Join(dir, item.Name()),
		})
	}

	sort.Slice(sections, func(i, j int) bool {
		if sections[i].Index != sections[j].Index {
			return sections[i].Index < sections[j].Index
		}
		return sections[i].Title < sections[j].Title
	})

	return sections, nil
}
