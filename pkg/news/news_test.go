package news

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEntry(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseEntryName(t *testing.T) {
	tests := []struct {
		name      string
		wantIssue int
		wantNonce string
		wantOK    bool
	}{
		{"42.md", 42, "", true},
		{"42-nonce.md", 42, "nonce", true},
		{"4240-debugger-attach.md", 4240, "debugger-attach", true},
		{"042.md", 42, "", true},
		{"bunk.md", 0, "", false},
		{"42.txt", 0, "", false},
		{"42.md.bak", 0, "", false},
		{"-nonce.md", 0, "", false},
		{"42-.md", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue, nonce, ok := ParseEntryName(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantIssue, issue)
				assert.Equal(t, tt.wantNonce, nonce)
			}
		})
	}
}

func TestEntries(t *testing.T) {
	t.Run("parses plain and nonce file names", func(t *testing.T) {
		dir := t.TempDir()
		writeEntry(t, dir, "42.md", "Hello, world!")
		writeEntry(t, dir, "42-nonce.md", "Hello, world!")

		entries, err := Entries(dir)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		for _, entry := range entries {
			assert.Equal(t, 42, entry.Issue)
			assert.Equal(t, "Hello, world!", entry.Description)
		}
		assert.Equal(t, "", entries[0].Nonce)
		assert.Equal(t, "nonce", entries[1].Nonce)
	})

	t.Run("sorts by issue number, not file name", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"10.md", "2.md", "1.md", "3.md"} {
			writeEntry(t, dir, name, "x")
		}

		entries, err := Entries(dir)
		require.NoError(t, err)
		issues := make([]int, len(entries))
		for i, e := range entries {
			issues[i] = e.Issue
		}
		assert.Equal(t, []int{1, 2, 3, 10}, issues)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		dir := t.TempDir()
		writeEntry(t, dir, "7.md", "\nFixed a thing.\n")

		entries, err := Entries(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Fixed a thing.", entries[0].Description)
	})

	t.Run("accepts leading zeros in the issue number", func(t *testing.T) {
		dir := t.TempDir()
		writeEntry(t, dir, "042.md", "Zero padded")

		entries, err := Entries(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, 42, entries[0].Issue)
	})

	t.Run("rejects content that is not UTF-8", func(t *testing.T) {
		dir := t.TempDir()
		utf16 := []byte{0xFF, 0xFE}
		for _, r := range "All the news" {
			utf16 = append(utf16, byte(r), 0x00)
		}
		path := filepath.Join(dir, "42.md")
		require.NoError(t, os.WriteFile(path, utf16, 0o644))

		_, err := Entries(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidUTF8)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("rejects a UTF-8 byte order mark", func(t *testing.T) {
		dir := t.TempDir()
		content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Hello, world!")...)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "42.md"), content, 0o644))

		_, err := Entries(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBOM)
	})

	t.Run("rejects file names outside the convention", func(t *testing.T) {
		dir := t.TempDir()
		writeEntry(t, dir, "bunk.md", "Surprise!")

		_, err := Entries(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bunk.md")
	})

	t.Run("skips README regardless of case", func(t *testing.T) {
		dir := t.TempDir()
		writeEntry(t, dir, "README.md", "Instructions!")
		writeEntry(t, dir, "42.md", "Hello, world!")

		entries, err := Entries(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, 42, entries[0].Issue)

		require.NoError(t, os.Rename(filepath.Join(dir, "README.md"), filepath.Join(dir, "ReadMe.md")))
		entries, err = Entries(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("skips dotfiles and nested directories", func(t *testing.T) {
		dir := t.TempDir()
		writeEntry(t, dir, ".hidden", "junk")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "drafts"), 0o755))
		writeEntry(t, dir, "42.md", "Hello, world!")

		entries, err := Entries(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := Entries(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})
}

func TestSections(t *testing.T) {
	t.Run("sorted by numeric index", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "2 Hello"), 0o755))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "1 World"), 0o755))

		sections, err := Sections(dir)
		require.NoError(t, err)
		require.Len(t, sections, 2)
		assert.Equal(t, "World", sections[0].Title)
		assert.Equal(t, "Hello", sections[1].Title)
	})

	t.Run("index sorts numerically", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"10 Last", "2 Middle", "1 First"} {
			require.NoError(t, os.Mkdir(filepath.Join(dir, name), 0o755))
		}

		sections, err := Sections(dir)
		require.NoError(t, err)
		titles := make([]string, len(sections))
		for i, s := range sections {
			titles[i] = s.Title
		}
		assert.Equal(t, []string{"First", "Middle", "Last"}, titles)
	})

	t.Run("directories without an index are not sections", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "Hello"), 0o755))

		sections, err := Sections(dir)
		require.NoError(t, err)
		assert.Empty(t, sections)
	})

	t.Run("files are ignored", func(t *testing.T) {
		dir := t.TempDir()
		writeEntry(t, dir, "README.md", "About the news directory")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "1 Fixes"), 0o755))

		sections, err := Sections(dir)
		require.NoError(t, err)
		require.Len(t, sections, 1)
		assert.Equal(t, "Fixes", sections[0].Title)
		assert.Equal(t, 1, sections[0].Index)
	})
}

func TestGather(t *testing.T) {
	dir := t.TempDir()
	enhancements := filepath.Join(dir, "1 Enhancements")
	fixes := filepath.Join(dir, "2 Fixes")
	require.NoError(t, os.Mkdir(enhancements, 0o755))
	require.NoError(t, os.Mkdir(fixes, 0o755))
	writeEntry(t, enhancements, "2.md", "Enhancement 1")
	writeEntry(t, enhancements, "4.md", "Enhancement 2")
	writeEntry(t, fixes, "1.md", "Fix 1")
	writeEntry(t, fixes, "3.md", "Fix 2")

	gathered, err := Gather(dir)
	require.NoError(t, err)
	require.Len(t, gathered, 2)

	assert.Equal(t, "Enhancements", gathered[0].Section.Title)
	require.Len(t, gathered[0].Entries, 2)
	assert.Equal(t, "Enhancement 1", gathered[0].Entries[0].Description)
	assert.Equal(t, "Enhancement 2", gathered[0].Entries[1].Description)

	assert.Equal(t, "Fixes", gathered[1].Section.Title)
	require.Len(t, gathered[1].Entries, 2)
	assert.Equal(t, "Fix 1", gathered[1].Entries[0].Description)
	assert.Equal(t, "Fix 2", gathered[1].Entries[1].Description)

	assert.Equal(t, 4, TotalEntries(gathered))
}

func TestGatherKeepsEmptySections(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "1 Enhancements"), 0o755))
	fixes := filepath.Join(dir, "2 Fixes")
	require.NoError(t, os.Mkdir(fixes, 0o755))
	writeEntry(t, fixes, "1.md", "Fix 1")

	gathered, err := Gather(dir)
	require.NoError(t, err)
	require.Len(t, gathered, 2)
	assert.Empty(t, gathered[0].Entries)
	require.Len(t, gathered[1].Entries, 1)

	kept := NonEmpty(gathered)
	require.Len(t, kept, 1)
	assert.Equal(t, "Fixes", kept[0].Section.Title)
}

func TestGatherPropagatesEntryErrors(t *testing.T) {
	dir := t.TempDir()
	fixes := filepath.Join(dir, "2 Fixes")
	require.NoError(t, os.Mkdir(fixes, 0o755))
	writeEntry(t, fixes, "bunk.md", "Surprise!")

	_, err := Gather(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bunk.md")
}
