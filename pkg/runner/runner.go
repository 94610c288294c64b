package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/livemd/pkg/notefile"
)

// Task processes one loaded note.
type Task[T any] func(ctx context.Context, note *notefile.Note) (T, error)

// Outcome is the result of a task on one note.
type Outcome[T any] struct {
	// Path is the absolute note path.
	Path string

	// Value is the task result; zero when Error is set.
	Value T

	// Error is set if the note could not be loaded or processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of notes found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of notes the task succeeded on.
	FilesProcessed int

	// FilesErrored is the number of notes that failed to load or process.
	FilesErrored int
}

// Result is the overall run result.
type Result[T any] struct {
	// Notes holds one outcome per discovered note, ordered by path.
	Notes []Outcome[T]

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any note failed.
func (r *Result[T]) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// Values returns the values of the successful outcomes in path order.
func (r *Result[T]) Values() []T {
	if r == nil {
		return nil
	}
	values := make([]T, 0, r.Stats.FilesProcessed)
	for _, outcome := range r.Notes {
		if outcome.Error == nil {
			values = append(values, outcome.Value)
		}
	}
	return values
}

func (r *Result[T]) accumulate(outcome Outcome[T]) {
	r.Notes = append(r.Notes, outcome)
	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	r.Stats.FilesProcessed++
}

// Run discovers notes under opts.Paths and applies task to each using a
// worker pool. Outcomes are returned in path order regardless of the
// order workers finish in.
func Run[T any](ctx context.Context, opts Options, task Task[T]) (*Result[T], error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result[T]{
		Notes: make([]Outcome[T], 0, len(files)),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan Outcome[T])

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, task, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]Outcome[T], len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

func worker[T any](ctx context.Context, task Task[T], workCh <-chan string, outCh chan<- Outcome[T]) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := Outcome[T]{Path: path}

		if note, err := notefile.Load(ctx, path); err != nil {
			outcome.Error = err
		} else if value, err := task(ctx, note); err != nil {
			outcome.Error = fmt.Errorf("%s: %w", path, err)
		} else {
			outcome.Value = value
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
