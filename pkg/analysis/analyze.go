// Package analysis indexes the notes of a vault: tag usage, backlinks and
// links whose target does not exist.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// noteKey normalizes a note name or path for lookup: forward slashes,
// lowercase, without a Markdown extension.
func noteKey(name string) string {
	name = strings.ToLower(filepath.ToSlash(strings.TrimSpace(name)))
	for _, ext := range []string{".md", ".markdown"} {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// isAsset reports whether a link target names a non-note file such as an
// image or PDF.
func isAsset(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if len(ext) < 2 || ext == ".md" || ext == ".markdown" {
		return false
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// indexedNote is a note with lookup sets for its anchors.
type indexedNote struct {
	facts    *NoteFacts
	display  string
	headings map[string]bool
	blocks   map[string]bool
	analysis *NoteAnalysis
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	notes    []*indexedNote
	ordered  []*indexedNote
	byName   map[string]*indexedNote
	byPath   map[string]*indexedNote
	tagMap   map[string]*TagAnalysis
	tagNotes map[string]map[string]bool
}

func newAnalysisContext(notes []NoteFacts, workDir string) *analysisContext {
	ctx := &analysisContext{
		byName:   make(map[string]*indexedNote),
		byPath:   make(map[string]*indexedNote),
		tagMap:   make(map[string]*TagAnalysis),
		tagNotes: make(map[string]map[string]bool),
	}

	for i := range notes {
		facts := &notes[i]
		display := makeRelativePath(facts.Path, workDir)
		note := &indexedNote{
			facts:    facts,
			display:  display,
			headings: make(map[string]bool, len(facts.Headings)),
			blocks:   make(map[string]bool, len(facts.BlockIDs)),
			analysis: &NoteAnalysis{Path: display, Headings: len(facts.Headings)},
		}
		for _, h := range facts.Headings {
			note.headings[slug.Make(h)] = true
		}
		for _, b := range facts.BlockIDs {
			note.blocks[strings.ToLower(b)] = true
		}
		ctx.notes = append(ctx.notes, note)
	}

	// Shorter paths win name collisions, then lexical order.
	ordered := slices.Clone(ctx.notes)
	slices.SortStableFunc(ordered, func(a, b *indexedNote) int {
		if c := cmp.Compare(len(a.display), len(b.display)); c != 0 {
			return c
		}
		return cmp.Compare(a.display, b.display)
	})
	ctx.ordered = ordered
	for _, note := range ordered {
		key := noteKey(note.display)
		ctx.byPath[key] = note
		name := key[strings.LastIndex(key, "/")+1:]
		if _, ok := ctx.byName[name]; !ok {
			ctx.byName[name] = note
		}
	}

	return ctx
}

// lookup finds the note a link names, relative to the linking note. A
// note in the linking note's folder wins over same-named notes elsewhere.
func (ctx *analysisContext) lookup(from *indexedNote, name string) *indexedNote {
	if strings.TrimSpace(name) == "" {
		return from
	}
	key := strings.TrimPrefix(noteKey(name), "/")
	if note, ok := ctx.byPath[key]; ok {
		return note
	}
	if dir := filepath.ToSlash(filepath.Dir(noteKey(from.display))); dir != "." {
		if note, ok := ctx.byPath[dir+"/"+key]; ok {
			return note
		}
	}
	if !strings.Contains(key, "/") {
		return ctx.byName[key]
	}
	for _, note := range ctx.ordered {
		if strings.HasSuffix(noteKey(note.display), "/"+key) {
			return note
		}
	}
	return nil
}

// resolve returns the reason a link is unresolved, or "" when it resolves.
func (ctx *analysisContext) resolve(from *indexedNote, target string) (*indexedNote, Reason) {
	name, fragment, _ := strings.Cut(target, "#")
	note := ctx.lookup(from, name)
	if note == nil {
		return nil, ReasonMissingNote
	}

	fragment = strings.TrimSpace(fragment)
	switch {
	case fragment == "":
	case strings.HasPrefix(fragment, "^"):
		if !note.blocks[strings.ToLower(fragment[1:])] {
			return note, ReasonMissingBlock
		}
	default:
		// Nested heading references "A#B#C" name the innermost heading.
		if i := strings.LastIndex(fragment, "#"); i >= 0 {
			fragment = fragment[i+1:]
		}
		if !note.headings[slug.Make(fragment)] {
			return note, ReasonMissingHeading
		}
	}
	return note, ""
}

func (ctx *analysisContext) addTag(tag, path string) {
	key := strings.ToLower(tag)
	ta, ok := ctx.tagMap[key]
	if !ok {
		ta = &TagAnalysis{Tag: key}
		ctx.tagMap[key] = ta
		ctx.tagNotes[key] = make(map[string]bool)
	}
	ta.Count++
	ctx.tagNotes[key][path] = true
}

// buildTags constructs the Tags slice from accumulated data.
func (ctx *analysisContext) buildTags(opts Options) []TagAnalysis {
	result := make([]TagAnalysis, 0, len(ctx.tagMap))
	for key, ta := range ctx.tagMap {
		for path := range ctx.tagNotes[key] {
			ta.Notes = append(ta.Notes, path)
		}
		slices.Sort(ta.Notes)
		result = append(result, *ta)
	}
	sortTagAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

// buildNotes constructs the Notes slice from accumulated data.
func (ctx *analysisContext) buildNotes(opts Options) []NoteAnalysis {
	result := make([]NoteAnalysis, 0, len(ctx.notes))
	for _, note := range ctx.notes {
		result = append(result, *note.analysis)
	}
	sortNoteAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

// Analyze indexes the collected notes into a Report.
// It performs a single pass through links and tags to compute all views.
func Analyze(notes []NoteFacts, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	ctx := newAnalysisContext(notes, opts.WorkingDir)

	for _, note := range ctx.notes {
		report.Totals.Notes++

		for _, tag := range note.facts.Tags {
			ctx.addTag(tag, note.display)
		}

		for _, link := range note.facts.Links {
			if link.Embed {
				report.Totals.Embeds++
				note.analysis.Embeds++
			} else {
				report.Totals.Links++
				note.analysis.Links++
			}

			name, _, _ := strings.Cut(link.Target, "#")
			if isAsset(name) {
				report.Totals.Assets++
				continue
			}

			target, reason := ctx.resolve(note, link.Target)
			if target != nil && target != note {
				target.analysis.Backlinks++
			}
			if reason == "" {
				continue
			}

			report.Totals.Unresolved++
			note.analysis.Unresolved++
			if opts.IncludeUnresolved {
				report.Unresolved = append(report.Unresolved, UnresolvedLink{
					Path:   note.display,
					Target: link.Target,
					Line:   link.Line,
					Embed:  link.Embed,
					Reason: reason,
				})
			}
		}
	}

	report.Totals.Tags = len(ctx.tagMap)

	slices.SortStableFunc(report.Unresolved, func(a, b UnresolvedLink) int {
		if c := cmp.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return cmp.Compare(a.Line, b.Line)
	})

	if opts.IncludeTags {
		report.Tags = ctx.buildTags(opts)
	}
	if opts.IncludeNotes {
		report.Notes = ctx.buildNotes(opts)
	}

	return report
}

func sortTagAnalysis(tags []TagAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(tags, func(left, right TagAnalysis) int {
		if sortBy != SortByAlpha {
			result := cmp.Compare(left.Count, right.Count)
			if desc {
				result = -result
			}
			if result != 0 {
				return result
			}
		}
		// Alphabetical sorting is always ascending (A-Z)
		return cmp.Compare(left.Tag, right.Tag)
	})
}

func sortNoteAnalysis(notes []NoteAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(notes, func(left, right NoteAnalysis) int {
		if sortBy != SortByAlpha {
			result := cmp.Compare(left.Backlinks, right.Backlinks)
			if desc {
				result = -result
			}
			if result != 0 {
				return result
			}
		}
		return cmp.Compare(left.Path, right.Path)
	})
}
