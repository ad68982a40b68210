package fold

import (
	"context"
	"fmt"
	"sync"

	"github.com/vantaboard/class-fold/scanner"
	. "github.com/vantaboard/class-fold/types"
)

var DefaultIcons = map[scanner.Kind]string{
	scanner.Class: "class.svg",
	scanner.Style: "style.svg",
}

// StyleName is the decoration style handle shared with the client.
func StyleName(kind scanner.Kind, status Status) string {
	return kind.String() + "." + status.String()
}

// DecorationSet holds the ranges of one attribute kind of one document,
// bucketed by status, until they are painted.
type DecorationSet struct {
	Kind scanner.Kind
	Icon string

	lock    sync.Mutex
	buckets map[Status][]Range
}

func NewDecorationSet(kind scanner.Kind, icon string) *DecorationSet {
	if icon == "" {
		icon = DefaultIcons[kind]
	}

	set := &DecorationSet{
		Kind: kind,
		Icon: icon,
	}

	set.clear()

	return set
}

func (set *DecorationSet) clear() {
	set.buckets = make(map[Status][]Range, len(Statuses))

	for _, status := range Statuses {
		set.buckets[status] = make([]Range, 0)
	}
}

func (set *DecorationSet) add(item Classified) {
	set.buckets[item.Status] = append(set.buckets[item.Status], item.Range)
}

// apply paints every bucket, empty ones included so stale decorations of
// the previous cycle disappear, then clears the buckets.
func (set *DecorationSet) apply(ctx context.Context, editor Editor, uri Uri) error {
	defer set.clear()

	for _, status := range Statuses {
		err := editor.ApplyDecorations(ctx, Decorations{
			Uri:    uri,
			Kind:   set.Kind,
			Status: status,
			Style:  StyleName(set.Kind, status),
			Icon:   set.Icon,
			Ranges: set.buckets[status],
		})

		if err != nil {
			return fmt.Errorf("decorate %s: %w", StyleName(set.Kind, status), err)
		}
	}

	return nil
}

// Clear paints every bucket of the set empty.
func (set *DecorationSet) Clear(ctx context.Context, editor Editor, uri Uri) error {
	set.lock.Lock()
	defer set.lock.Unlock()

	set.clear()

	return set.apply(ctx, editor, uri)
}

// Paint replaces the decorations of the set with items. Nothing is painted
// once current reports false.
func (set *DecorationSet) Paint(ctx context.Context, editor Editor, uri Uri, items []Classified, current func() bool) error {
	set.lock.Lock()
	defer set.lock.Unlock()

	set.clear()

	for _, item := range items {
		set.add(item)
	}

	if current != nil && !current() {
		set.clear()
		return ErrSuperseded
	}

	return set.apply(ctx, editor, uri)
}
