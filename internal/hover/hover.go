// Package hover resolves discrepancy tooltips from pointer events over
// rendered review markup.
//
// A Container is the stable element that receives the rendered fragment. Its
// content is replaced wholesale on every render, while its single listener is
// attached once for the container's lifetime. Pointer events are delegated:
// the event target is walked up to the closest annotated element, so no
// per-annotation listener ever exists.
package hover

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Markup vocabulary of discrepancy annotations.
const (
	AnnotationClass = "discrepancy-highlight"
	NoteAttr        = "data-note"
)

// Sentinel errors.
var (
	ErrAlreadyListening = errors.New("container already has a listener")
	ErrNilListener      = errors.New("listener is nil")
	ErrParseMarkup      = errors.New("failed to parse markup")
)

// EventType identifies a pointer event.
type EventType int

// Pointer event types.
const (
	PointerOver EventType = iota + 1
	PointerOut
)

// Event is a pointer event forwarded from the display surface.
type Event struct {
	Type   EventType
	Target *html.Node
	X, Y   float64
}

// Tooltip is the tooltip state after an event. The zero value means no
// active tooltip.
type Tooltip struct {
	Active bool
	Note   string
	X, Y   float64
}

// Listener receives tooltip changes.
type Listener func(Tooltip)

// Target is an annotated element of the current content.
type Target struct {
	Node *html.Node
	Note string
	Text string
}

// Container holds the currently displayed fragment.
type Container struct {
	mu       sync.Mutex
	root     *html.Node
	listener Listener
	current  Tooltip
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	return &Container{
		root: &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div},
	}
}

// Replace swaps the container content for the given fragment. Nodes of the
// previous content are detached, so events targeting them are ignored.
// An active tooltip is cleared.
func (c *Container) Replace(markup string) error {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrParseMarkup, err)
	}

	c.mu.Lock()
	for child := c.root.FirstChild; child != nil; child = c.root.FirstChild {
		c.root.RemoveChild(child)
	}
	for _, n := range nodes {
		c.root.AppendChild(n)
	}
	notify := c.setLocked(Tooltip{})
	c.mu.Unlock()

	notify()
	return nil
}

// Listen attaches the container's delegated listener. It can be called once.
func (c *Container) Listen(fn Listener) error {
	if fn == nil {
		return ErrNilListener
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.listener != nil {
		return ErrAlreadyListening
	}
	c.listener = fn
	return nil
}

// Dispatch resolves a pointer event against the current content and returns
// the resulting tooltip. Events whose target is not part of the current
// content leave the state unchanged.
func (c *Container) Dispatch(ev Event) Tooltip {
	c.mu.Lock()
	if !c.containsLocked(ev.Target) {
		current := c.current
		c.mu.Unlock()
		return current
	}
	tip := Resolve(ev)
	notify := c.setLocked(tip)
	c.mu.Unlock()

	notify()
	return tip
}

// Current returns the current tooltip state.
func (c *Container) Current() Tooltip {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Annotations lists the annotated elements of the current content in
// document order.
func (c *Container) Annotations() []Target {
	c.mu.Lock()
	defer c.mu.Unlock()

	var targets []Target
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if note, ok := annotationNote(n); ok {
			targets = append(targets, Target{Node: n, Note: note, Text: textContent(n)})
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(c.root)
	return targets
}

// setLocked stores tip and returns the listener notification to run once
// the lock is released.
func (c *Container) setLocked(tip Tooltip) func() {
	if tip == c.current {
		return func() {}
	}
	c.current = tip
	fn := c.listener
	if fn == nil {
		return func() {}
	}
	return func() { fn(tip) }
}

func (c *Container) containsLocked(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == c.root {
			return p != n
		}
	}
	return false
}

// Resolve returns the tooltip for an event: the note of the closest
// annotated ancestor-or-self of the target at the event coordinates, or no
// tooltip on pointer-out and outside annotations.
func Resolve(ev Event) Tooltip {
	if ev.Type != PointerOver {
		return Tooltip{}
	}
	for n := ev.Target; n != nil; n = n.Parent {
		if note, ok := annotationNote(n); ok {
			return Tooltip{Active: true, Note: note, X: ev.X, Y: ev.Y}
		}
	}
	return Tooltip{}
}

func annotationNote(n *html.Node) (string, bool) {
	if n.Type != html.ElementNode {
		return "", false
	}
	var note string
	var hasNote, annotated bool
	for _, a := range n.Attr {
		switch a.Key {
		case "class":
			annotated = slices.Contains(strings.Fields(a.Val), AnnotationClass)
		case NoteAttr:
			note, hasNote = a.Val, true
		}
	}
	return note, annotated && hasNote
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}
