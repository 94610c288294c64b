package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Discover finds notes matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
// Hidden files and directories, such as a vault's .obsidian and .trash,
// are skipped.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	flt, err := newFilter(workDir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.paths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if flt.matchesFile(absPath) {
				add(absPath)
			}
			continue
		}

		discovered, err := walkDirectory(ctx, absPath, flt)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	sort.Strings(files)

	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// filter holds the compiled discovery criteria.
type filter struct {
	workDir        string
	extensions     []string
	include        []glob.Glob
	exclude        []glob.Glob
	followSymlinks bool
}

func newFilter(workDir string, opts Options) (*filter, error) {
	include, err := compileGlobs(opts.Include)
	if err != nil {
		return nil, err
	}
	exclude, err := compileGlobs(opts.Ignore)
	if err != nil {
		return nil, err
	}
	return &filter{
		workDir:        workDir,
		extensions:     opts.extensions(),
		include:        include,
		exclude:        exclude,
		followSymlinks: opts.FollowSymlinks,
	}, nil
}

// compileGlobs compiles patterns with '/' as the separator, so "*" stays
// within one path segment and "**" crosses segments.
func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// matchAny reports whether relPath, or its base name, matches a glob. A
// leading "**/" also matches at the top level.
func matchAny(globs []glob.Glob, relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	base := filepath.Base(relPath)
	for _, g := range globs {
		if g.Match(relPath) || g.Match(base) || g.Match("/"+relPath) {
			return true
		}
	}
	return false
}

func (f *filter) rel(path string) string {
	relPath, err := filepath.Rel(f.workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

func (f *filter) matchesFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	matched := false
	for _, e := range f.extensions {
		if strings.ToLower(e) == ext {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	relPath := f.rel(path)
	if matchAny(f.exclude, relPath) {
		return false
	}
	return len(f.include) == 0 || matchAny(f.include, relPath)
}

func walkDirectory(ctx context.Context, root string, flt *filter) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if path != root && matchAny(flt.exclude, flt.rel(path)) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Unreadable targets are skipped.
			}
			if info.IsDir() {
				if !flt.followSymlinks {
					return nil
				}
				// Walk the target, since WalkDir does not follow a symlinked root.
				subFiles, err := walkDirectory(ctx, realPath, flt)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if flt.matchesFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}
