package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/newsroom/internal/cli/config"
	"github.com/leapstack-labs/newsroom/internal/cli/output"
	"github.com/leapstack-labs/newsroom/internal/gitcmd"
	"github.com/leapstack-labs/newsroom/internal/manifest"
	"github.com/leapstack-labs/newsroom/internal/store"
	"github.com/leapstack-labs/newsroom/pkg/changelog"
	"github.com/leapstack-labs/newsroom/pkg/lint"
	"github.com/leapstack-labs/newsroom/pkg/news"
)

// gitRunner runs git for entry cleanup. Tests swap in a recorder.
var gitRunner gitcmd.Runner = gitcmd.ExecRunner{}

// ReleaseOptions holds options for the release command.
type ReleaseOptions struct {
	Version     string
	Date        string
	Update      string
	DryRun      bool
	NoVerify    bool
	NoHistory   bool
	KeepEntries bool
}

// NewReleaseCommand creates the release command.
func NewReleaseCommand() *cobra.Command {
	opts := &ReleaseOptions{}

	cmd := &cobra.Command{
		Use:   "release",
		Short: "Fold pending entries into the changelog",
		Long: `Gather the pending news entries, render them as a release section, and
insert it at the top of the changelog.

The version comes from the package manifest unless --version is given.
Before touching anything the error-severity lint rules must pass; the
released entry files are then removed (with git rm inside a checkout)
and the release is recorded in history.`,
		Example: `  # Release using the manifest version
  newsroom release

  # See what would be inserted without changing anything
  newsroom release --dry-run

  # Release an explicit version with a fixed date
  newsroom release --version 2019.3.0 --date 2019-03-05

  # Update a different changelog file
  newsroom release --update docs/CHANGES.md`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRelease(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Version, "version", "", "Release version (default: the manifest's version field)")
	cmd.Flags().StringVar(&opts.Date, "date", "", "Release date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&opts.Update, "update", "", "Changelog file to update (default: the configured changelog)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print the release section without changing anything")
	cmd.Flags().BoolVar(&opts.NoVerify, "no-verify", false, "Skip the lint gate")
	cmd.Flags().BoolVar(&opts.NoHistory, "no-history", false, "Do not record the release in history")
	cmd.Flags().BoolVar(&opts.KeepEntries, "keep-entries", false, "Leave the released entry files in place")

	return cmd
}

func runRelease(cmd *cobra.Command, opts *ReleaseOptions) error {
	cc := NewCommandContextWithoutStore(cmd)
	cfg := cc.Cfg
	r := cc.Renderer
	ctx := cmd.Context()

	if err := cfg.ValidateDirectories(); err != nil {
		return err
	}

	version, err := resolveVersion(cfg, opts.Version)
	if err != nil {
		return err
	}
	date, err := resolveDate(opts.Date)
	if err != nil {
		return err
	}

	gathered, err := news.Gather(cfg.NewsDir)
	if err != nil {
		return err
	}
	total := news.TotalEntries(gathered)
	if total == 0 {
		return fmt.Errorf("no pending news entries in %s", cfg.NewsDir)
	}

	if !opts.NoVerify {
		if err := verifyRelease(ctx, cfg, r); err != nil {
			return err
		}
	}

	repository := resolveRepository(cfg)
	body := changelog.Render(gathered, changelog.IssueURL(repository))

	target := cfg.Changelog
	if opts.Update != "" {
		target = opts.Update
	}

	// The lint gate checks version ordering through the manifest; when it
	// is skipped, or --version bypasses the manifest, check here and warn.
	if opts.NoVerify || opts.Version != "" {
		if raw, err := os.ReadFile(target); err == nil {
			if head := changelog.HeadVersion(string(raw)); head != "" && manifest.CompareVersions(version, head) <= 0 {
				r.Warning(fmt.Sprintf("%s is not newer than the changelog head %s", version, head))
			}
		}
	}

	if opts.DryRun {
		r.Println(changelog.Heading(version, date))
		r.Println("")
		r.Println(body)
		r.Println("")
		r.Muted(fmt.Sprintf("Dry run: %s was not modified", displayPath(target)))
		return nil
	}

	// The changelog is the primary artifact and goes first; a failure in
	// a later step leaves the entry files in place for a manual retry.
	if err := changelog.Update(target, version, date, body); err != nil {
		return err
	}
	r.StatusLine(displayPath(target), "success", "added "+version)

	if !opts.NoHistory {
		if err := recordRelease(ctx, cfg, version, date, body, gathered); err != nil {
			return err
		}
		r.StatusLine("history", "success", "release recorded")
	}

	if !opts.KeepEntries {
		removed, staged, err := removeEntries(ctx, cfg, gathered)
		if err != nil {
			return err
		}
		if !staged {
			r.Warning("not a git repository; entries removed without staging")
		}
		r.StatusLine("entries", "success", fmt.Sprintf("%d removed", removed))
	}

	r.Success(fmt.Sprintf("Released %s (%d entries)", version, total))
	return nil
}

// resolveVersion returns the version for the release: the flag when
// given, else the manifest's version field. Either way it must parse,
// so a typo never ends up as a changelog heading.
func resolveVersion(cfg *config.Config, flag string) (string, error) {
	if flag != "" {
		if _, err := manifest.ParseVersion(flag); err != nil {
			return "", fmt.Errorf("invalid --version: %w", err)
		}
		return flag, nil
	}
	m, err := manifest.Load(cfg.Manifest)
	if err != nil {
		return "", fmt.Errorf("no --version given and the manifest version is unavailable: %w", err)
	}
	if strings.TrimSpace(m.Version) == "" {
		return "", fmt.Errorf("no --version given and %s has no version field", m.Path)
	}
	if _, err := manifest.ParseVersion(m.Version); err != nil {
		return "", fmt.Errorf("manifest %s: %w", m.Path, err)
	}
	return m.Version, nil
}

func resolveDate(flag string) (time.Time, error) {
	if flag == "" {
		return time.Now(), nil
	}
	date, err := time.Parse("2006-01-02", flag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", flag)
	}
	return date, nil
}

// verifyRelease runs the error-severity lint rules that gate a release.
func verifyRelease(ctx context.Context, cfg *config.Config, r *output.Renderer) error {
	pctx, err := loadProjectContext(cfg)
	if err != nil {
		return err
	}

	analyzer := lint.NewAnalyzer(buildLintConfig(cfg, &LintOptions{}))
	diags, err := analyzer.Run(ctx, pctx)
	if err != nil {
		return err
	}

	diags = lint.FilterBySeverity(diags, lint.SeverityError)
	if len(diags) == 0 {
		return nil
	}
	renderLintResults(r, diags)
	return fmt.Errorf("release blocked by lint errors (use --no-verify to skip)")
}

// recordRelease stores the release and its entries in history.
func recordRelease(ctx context.Context, cfg *config.Config, version string, date time.Time, body string, gathered []news.SectionEntries) error {
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	var entries []store.ReleasedEntry
	for _, se := range gathered {
		for _, e := range se.Entries {
			entries = append(entries, store.ReleasedEntry{
				Issue:       e.Issue,
				Nonce:       e.Nonce,
				Section:     se.Section.Title,
				Description: e.Description,
				Path:        e.Path,
			})
		}
	}

	release := &store.Release{Version: version, ReleasedOn: date, Body: body}
	return st.RecordRelease(ctx, release, entries)
}

// removeEntries deletes the released entry files, via git rm inside a
// checkout so the cleanup is staged alongside the changelog update.
// The returned bool reports whether git did the removal.
func removeEntries(ctx context.Context, cfg *config.Config, gathered []news.SectionEntries) (int, bool, error) {
	var paths []string
	for _, se := range gathered {
		for _, e := range se.Entries {
			abs, err := filepath.Abs(e.Path)
			if err != nil {
				return 0, false, err
			}
			paths = append(paths, abs)
		}
	}

	root := cfg.ProjectRoot
	if root == "" {
		root, _ = os.Getwd()
	}

	if gitRunner.IsRepository(root) {
		if err := gitRunner.Remove(ctx, root, paths...); err != nil {
			return 0, false, err
		}
		return len(paths), true, nil
	}

	for _, p := range paths {
		if err := os.Remove(p); err != nil {
			return 0, false, fmt.Errorf("remove entry %s: %w", p, err)
		}
	}
	return len(paths), false, nil
}
