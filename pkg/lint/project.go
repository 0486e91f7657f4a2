package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/newsroom/pkg/news"
)

// Project is a tolerant scan of a news directory. Unlike news.Gather it
// never aborts on a bad entry file; rule violations are carried as
// contexts so the analyzer can turn them into diagnostics.
type Project struct {
	NewsDir string
	// Files holds one context per candidate entry file, in section order.
	Files []EntryContext
	// Sections pairs each section with its cleanly parsed entries.
	Sections []news.SectionEntries
	// StrayDirs lists news subdirectories without a numeric index prefix.
	StrayDirs []string
}

// LoadProject scans the news directory for linting. Only filesystem
// failures are errors; convention violations end up in the returned
// Project for the rules to report.
func LoadProject(newsDir string) (*Project, error) {
	items, err := os.ReadDir(newsDir)
	if err != nil {
		return nil, fmt.Errorf("reading news directory %s: %w", newsDir, err)
	}

	project := &Project{NewsDir: newsDir}

	var sections []news.Section
	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		index, title, ok := news.ParseSectionName(item.Name())
		if !ok {
			project.StrayDirs = append(project.StrayDirs, filepath.Join(newsDir, item.Name()))
			continue
		}
		sections = append(sections, news.Section{
			Index: index,
			Title: title,
			Path:  filepath.Join(newsDir, item.Name()),
		})
	}
	sort.Slice(sections, func(i, j int) bool {
		if sections[i].Index != sections[j].Index {
			return sections[i].Index < sections[j].Index
		}
		return sections[i].Title < sections[j].Title
	})
	sort.Strings(project.StrayDirs)

	for _, section := range sections {
		files, err := os.ReadDir(section.Path)
		if err != nil {
			return nil, fmt.Errorf("reading section %s: %w", section.Path, err)
		}

		se := news.SectionEntries{Section: section}
		for _, file := range files {
			if file.IsDir() || strings.HasPrefix(file.Name(), ".") || news.IsReadme(file.Name()) {
				continue
			}

			path := filepath.Join(section.Path, file.Name())
			raw, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("reading entry %s: %w", path, err)
			}

			ectx := EntryContext{Path: path, Name: file.Name(), Raw: raw, Section: section}
			if issue, nonce, ok := news.ParseEntryName(file.Name()); ok {
				entry := news.Entry{
					Issue:       issue,
					Nonce:       nonce,
					Description: strings.TrimSpace(string(raw)),
					Path:        path,
				}
				ectx.Entry = &entry
				if news.ValidateContent(raw) == nil {
					se.Entries = append(se.Entries, entry)
				}
			}
			project.Files = append(project.Files, ectx)
		}

		sort.Slice(se.Entries, func(i, j int) bool {
			if se.Entries[i].Issue != se.Entries[j].Issue {
				return se.Entries[i].Issue < se.Entries[j].Issue
			}
			return se.Entries[i].Nonce < se.Entries[j].Nonce
		})
		project.Sections = append(project.Sections, se)
	}

	return project, nil
}
