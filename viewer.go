package mdreview

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/alnah/go-mdreview/internal/hover"
)

// ResultRenderer produces render results. *Renderer implements it.
type ResultRenderer interface {
	Render(ctx context.Context, markdown string) (*Result, error)
	RenderDiff(ctx context.Context, previous, current string) (*Result, error)
}

// Pointer events and tooltips of the hover surface.
type (
	PointerEvent     = hover.Event
	Tooltip          = hover.Tooltip
	AnnotationTarget = hover.Target
)

// Pointer event types.
const (
	PointerOver = hover.PointerOver
	PointerOut  = hover.PointerOut
)

// Listener registration errors.
var (
	ErrNilListener      = hover.ErrNilListener
	ErrAlreadyListening = hover.ErrAlreadyListening
)

// ViewerOption configures a Viewer.
type ViewerOption func(*Viewer)

// WithLogger sets the logger of a Viewer. The default discards everything.
func WithLogger(l *slog.Logger) ViewerOption {
	return func(v *Viewer) {
		if l != nil {
			v.logger = l
		}
	}
}

// Viewer displays one document. Renders run asynchronously and may finish
// out of order; each is tagged with a sequence number and a completion is
// applied only if no newer render has been applied, so the display always
// converges to the most recently requested content.
type Viewer struct {
	renderer ResultRenderer
	logger   *slog.Logger
	display  *hover.Container

	seq atomic.Uint64
	wg  sync.WaitGroup

	// applyMu serializes the staleness check with the display update.
	// stateMu guards the fields below for readers.
	applyMu sync.Mutex
	stateMu sync.RWMutex
	applied uint64
	result  *Result
	err     error
}

// NewViewer creates a Viewer backed by r.
func NewViewer(r ResultRenderer, opts ...ViewerOption) *Viewer {
	v := &Viewer{
		renderer: r,
		logger:   slog.New(slog.DiscardHandler),
		display:  hover.NewContainer(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Show starts rendering markdown and returns the render's sequence number.
func (v *Viewer) Show(ctx context.Context, markdown string) uint64 {
	return v.start(func() (*Result, error) {
		return v.renderer.Render(ctx, markdown)
	})
}

// ShowDiff starts rendering the diff between two report versions and
// returns the render's sequence number.
func (v *Viewer) ShowDiff(ctx context.Context, previous, current string) uint64 {
	return v.start(func() (*Result, error) {
		return v.renderer.RenderDiff(ctx, previous, current)
	})
}

func (v *Viewer) start(render func() (*Result, error)) uint64 {
	n := v.seq.Add(1)
	v.wg.Go(func() {
		var result *Result
		var err error
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					err = fmt.Errorf("%w: internal error: %v", ErrUnrenderable, rec)
				}
			}()
			result, err = render()
		}()
		v.apply(n, result, err)
	})
	return n
}

// apply installs the outcome of render n unless a newer render was applied.
func (v *Viewer) apply(n uint64, result *Result, err error) {
	v.applyMu.Lock()
	defer v.applyMu.Unlock()

	if n <= v.applied {
		v.logger.Debug("discarding stale render", "seq", n, "applied", v.applied)
		return
	}

	if err == nil && result == nil {
		err = ErrNilResult
	}
	if err == nil {
		err = v.display.Replace(result.HTML.String())
	}

	v.stateMu.Lock()
	defer v.stateMu.Unlock()

	v.applied = n
	if err != nil {
		v.logger.Warn("render failed, keeping previous content", "seq", n, "error", err)
		v.err = err
		return
	}
	v.logger.Debug("render applied", "seq", n, "annotations", len(result.Annotations))
	v.result = result
	v.err = nil
}

// Wait blocks until every started render has completed.
func (v *Viewer) Wait() {
	v.wg.Wait()
}

// Markup returns the displayed markup.
func (v *Viewer) Markup() SafeHTML {
	v.stateMu.RLock()
	defer v.stateMu.RUnlock()
	if v.result == nil {
		return SafeHTML{}
	}
	return v.result.HTML
}

// Result returns the displayed result, or nil before the first success.
func (v *Viewer) Result() *Result {
	v.stateMu.RLock()
	defer v.stateMu.RUnlock()
	return v.result
}

// Annotations returns the discrepancies of the displayed content.
func (v *Viewer) Annotations() []Annotation {
	v.stateMu.RLock()
	defer v.stateMu.RUnlock()
	if v.result == nil {
		return nil
	}
	return v.result.Annotations
}

// Applied returns the sequence number of the last applied render,
// successful or not. Zero means nothing was applied yet.
func (v *Viewer) Applied() uint64 {
	v.stateMu.RLock()
	defer v.stateMu.RUnlock()
	return v.applied
}

// Err returns the error of the last applied render, or nil if it succeeded.
func (v *Viewer) Err() error {
	v.stateMu.RLock()
	defer v.stateMu.RUnlock()
	return v.err
}

// Targets lists the annotated elements of the displayed content, for use
// as pointer event targets.
func (v *Viewer) Targets() []AnnotationTarget {
	return v.display.Annotations()
}

// HandlePointer forwards a pointer event to the display and returns the
// resulting tooltip. Events targeting replaced content are ignored.
func (v *Viewer) HandlePointer(ev PointerEvent) Tooltip {
	return v.display.Dispatch(ev)
}

// Tooltip returns the tooltip currently shown.
func (v *Viewer) Tooltip() Tooltip {
	return v.display.Current()
}

// OnTooltip registers the single tooltip listener for the viewer's
// lifetime. It keeps working across content replacements.
func (v *Viewer) OnTooltip(fn func(Tooltip)) error {
	if fn == nil {
		return ErrNilListener
	}
	return v.display.Listen(fn)
}
