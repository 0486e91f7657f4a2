package preview

import (
	"fmt"
	"net/http"
	"time"

	"github.com/leapstack-labs/newsroom/internal/store"
	"github.com/leapstack-labs/newsroom/pkg/changelog"
	"github.com/leapstack-labs/newsroom/pkg/news"
)

// historyPageLimit bounds the recent-releases list on the index page.
const historyPageLimit = 10

type pageData struct {
	Generated time.Time
	Total     int
	Sections  []sectionData
	Releases  []*store.Release
}

type sectionData struct {
	Title   string
	Entries []entryData
}

type entryData struct {
	Issue       int
	Nonce       string
	Description string
	URL         string // empty when no repository is configured
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	gathered, err := news.Gather(s.newsDir)
	if err != nil {
		s.logger.Error("gather failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	releases, err := s.store.ListReleases(r.Context())
	if err != nil {
		s.logger.Error("history read failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(releases) > historyPageLimit {
		releases = releases[:historyPageLimit]
	}

	issueURL := changelog.IssueURL(s.repository)
	data := pageData{
		Generated: time.Now(),
		Total:     news.TotalEntries(gathered),
		Releases:  releases,
	}
	for _, se := range news.NonEmpty(gathered) {
		sd := sectionData{Title: se.Section.Title}
		for _, e := range se.Entries {
			ed := entryData{
				Issue:       e.Issue,
				Nonce:       e.Nonce,
				Description: e.Description,
			}
			if issueURL != "" {
				ed.URL = fmt.Sprintf("%s/%d", issueURL, e.Issue)
			}
			sd.Entries = append(sd.Entries, ed)
		}
		data.Sections = append(data.Sections, sd)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		s.logger.Error("template render failed", "error", err)
	}
}

// handleEvents streams reload pings as server-sent events. The page
// reloads itself on every ping; there is no payload to interpret.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	updates := s.notifier.Subscribe()
	defer s.notifier.Unsubscribe(updates)

	// An initial comment line confirms the stream to the client.
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-updates:
			fmt.Fprint(w, "data: reload\n\n")
			flusher.Flush()
		}
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>newsroom preview</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 46rem; margin: 2rem auto; padding: 0 1rem; color: #1f2328; }
h1 { font-size: 1.5rem; }
h2 { font-size: 1.15rem; border-bottom: 1px solid #d8dee4; padding-bottom: 0.25rem; }
ol { padding-left: 1.5rem; }
li { margin: 0.35rem 0; }
a { color: #0969da; text-decoration: none; }
.muted { color: #656d76; font-size: 0.85rem; }
.empty { color: #656d76; font-style: italic; }
.release { margin: 0.35rem 0; }
</style>
</head>
<body>
<h1>Pending release</h1>
<p class="muted">{{.Total}} entries &middot; rendered {{.Generated.Format "15:04:05"}} &middot; reloads on change</p>
{{if .Sections}}
{{range .Sections}}
<h2>{{.Title}}</h2>
<ol>
{{range .Entries}}
<li>{{.Description}}
{{if .URL}}<a href="{{.URL}}">#{{.Issue}}</a>{{else}}<span class="muted">#{{.Issue}}</span>{{end}}</li>
{{end}}
</ol>
{{end}}
{{else}}
<p class="empty">No pending news entries.</p>
{{end}}
<h2>Recent releases</h2>
{{if .Releases}}
{{range .Releases}}
<div class="release"><strong>{{.Version}}</strong> <span class="muted">{{.ReleasedOn.Format "2 January 2006"}} &middot; {{.EntryCount}} entries</span></div>
{{end}}
{{else}}
<p class="empty">No releases recorded yet.</p>
{{end}}
<script>
new EventSource("/events").onmessage = function () { window.location.reload(); };
</script>
</body>
</html>
`
