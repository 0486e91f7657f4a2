package news

// Gather walks every section of the news root and collects its entries,
// preserving section order. Sections with no entries are included so
// callers can report on them.
func Gather(dir string) ([]SectionEntries, error) {
	sections, err := Sections(dir)
	if err != nil {
		return nil, err
	}

	gathered := make([]SectionEntries, 0, len(sections))
	for _, section := range sections {
		entries, err := Entries(section.Path)
		if err != nil {
			return nil, err
		}
		gathered = append(gathered, SectionEntries{Section: section, Entries: entries})
	}
	return gathered, nil
}

// TotalEntries counts the entries across all gathered sections.
func TotalEntries(gathered []SectionEntries) int {
	total := 0
	for _, se := range gathered {
		total += len(se.Entries)
	}
	return total
}

// NonEmpty filters gathered sections down to those holding at least one
// entry.
func NonEmpty(gathered []SectionEntries) []SectionEntries {
	kept := make([]SectionEntries, 0, len(gathered))
	for _, se := range gathered {
		if len(se.Entries) > 0 {
			kept = append(kept, se)
		}
	}
	return kept
}
