// ABOUTME: Interactive trace range editor with draggable start/end handles
// ABOUTME: Previews the live selection and commits a trimmed trace report

package editor

import (
	"errors"
	"fmt"
	"math"

	"github.com/harper/trailbook/internal/gpx"
	"github.com/harper/trailbook/internal/models"
)

// ErrTooFewPoints is returned when a trace cannot hold a two-point selection.
var ErrTooFewPoints = errors.New("trace needs at least 2 points to edit")

// ErrInvalidRange is returned by Select for ranges that break start < end.
var ErrInvalidRange = errors.New("invalid selection range")

// Handle identifies which end of the selection is being dragged.
type Handle int

const (
	// HandleNone means no drag is in progress.
	HandleNone Handle = iota
	// HandleStart is the start-of-selection handle.
	HandleStart
	// HandleEnd is the end-of-selection handle.
	HandleEnd
)

func (h Handle) String() string {
	switch h {
	case HandleStart:
		return "start"
	case HandleEnd:
		return "end"
	default:
		return "none"
	}
}

// Selection is a contiguous inclusive index range over a path.
type Selection struct {
	Path       models.Path
	StartIndex int
	EndIndex   int
}

// Len returns the number of selected points.
func (s Selection) Len() int {
	return s.EndIndex - s.StartIndex + 1
}

// PreviewFunc receives the selected sub-path on every drag update.
type PreviewFunc func(sub models.Path)

// CommitFunc receives the trimmed trace on commit.
type CommitFunc func(data *models.GpxData)

// Option configures an Editor.
type Option func(*Editor)

// WithPreview registers a callback fired synchronously on every UpdateDrag.
func WithPreview(fn PreviewFunc) Option {
	return func(e *Editor) { e.onPreview = fn }
}

// WithCommit registers a callback fired by Commit.
func WithCommit(fn CommitFunc) Option {
	return func(e *Editor) { e.onCommit = fn }
}

// Editor owns the selection state for one trace. It is not safe for
// concurrent use; each trace being edited gets its own Editor.
type Editor struct {
	source    *models.GpxData
	sel       Selection
	dragging  Handle
	onPreview PreviewFunc
	onCommit  CommitFunc
}

// New opens an editor over data with the full range selected.
func New(data *models.GpxData, opts ...Option) (*Editor, error) {
	if data == nil || len(data.Path) < 2 {
		return nil, ErrTooFewPoints
	}
	e := &Editor{
		source: data,
		sel: Selection{
			Path:       data.Path,
			StartIndex: 0,
			EndIndex:   len(data.Path) - 1,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Selection returns the current selection. Its Path is a copy of the
// source path.
func (e *Editor) Selection() Selection {
	sel := e.sel
	sel.Path = append(models.Path(nil), e.sel.Path...)
	return sel
}

// Dragging returns the active handle.
func (e *Editor) Dragging() Handle {
	return e.dragging
}

// BeginDrag activates a handle. It is a no-op while another drag is active.
func (e *Editor) BeginDrag(h Handle) {
	if e.dragging != HandleNone || h == HandleNone {
		return
	}
	e.dragging = h
}

// UpdateDrag moves the active handle to the index nearest fraction of the path
// and fires the preview callback. The handle is clamped so the selection never
// collapses to a single point.
func (e *Editor) UpdateDrag(fraction float64) {
	if e.dragging == HandleNone {
		return
	}
	if math.IsNaN(fraction) {
		return
	}
	fraction = math.Max(0, math.Min(1, fraction))

	last := len(e.sel.Path) - 1
	target := int(math.Round(fraction * float64(last)))

	switch e.dragging {
	case HandleStart:
		e.sel.StartIndex = clamp(target, 0, e.sel.EndIndex-1)
	case HandleEnd:
		e.sel.EndIndex = clamp(target, e.sel.StartIndex+1, last)
	}

	if e.onPreview != nil {
		e.onPreview(e.subPath())
	}
}

// EndDrag releases the active handle without committing.
func (e *Editor) EndDrag() {
	e.dragging = HandleNone
}

// Select sets the selection directly, for callers without pointer input.
func (e *Editor) Select(start, end int) error {
	last := len(e.sel.Path) - 1
	if start < 0 || end > last || start >= end {
		return fmt.Errorf("%w: [%d, %d] on %d points", ErrInvalidRange, start, end, len(e.sel.Path))
	}
	e.sel.StartIndex = start
	e.sel.EndIndex = end
	return nil
}

// Reset restores the full range without committing.
func (e *Editor) Reset() {
	e.dragging = HandleNone
	e.sel.StartIndex = 0
	e.sel.EndIndex = len(e.sel.Path) - 1
}

// Preview builds the report for the current selection without committing it.
func (e *Editor) Preview() *models.GpxData {
	return e.slice()
}

// Commit slices the source to the selection, recomputes its statistics,
// fires the commit callback, and returns the new report.
func (e *Editor) Commit() *models.GpxData {
	data := e.slice()
	if e.onCommit != nil {
		e.onCommit(data)
	}
	return data
}

// subPath copies the selected points so callers cannot alias the source.
func (e *Editor) subPath() models.Path {
	sub := make(models.Path, e.sel.Len())
	copy(sub, e.sel.Path[e.sel.StartIndex:e.sel.EndIndex+1])
	return sub
}

func (e *Editor) slice() *models.GpxData {
	start, end := e.sel.StartIndex, e.sel.EndIndex+1
	path := e.subPath()

	timestamps := models.TimestampSeries(prefixSlice(e.source.Timestamps, start, end))

	// Gain over a range cannot be derived from a misaligned series, so it
	// is left at 0.
	var elevations []float64
	if e.source.ElevationsAligned() {
		elevations = prefixSlice(e.source.Elevations, start, end)
	}
	return gpx.Summarize(path, timestamps, elevations)
}

// prefixSlice copies s[start:end], truncated to what s holds. A series
// shorter than the path covers only its leading points.
func prefixSlice[T any](s []T, start, end int) []T {
	if start >= len(s) {
		return nil
	}
	return append([]T(nil), s[start:min(end, len(s))]...)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
