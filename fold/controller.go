package fold

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/tliron/commonlog"
	proto "github.com/tliron/glsp/protocol_3_16"
	"github.com/vantaboard/class-fold/scanner"
	"github.com/vantaboard/class-fold/state"
	. "github.com/vantaboard/class-fold/types"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("classfold.fold")

var DefaultLanguages = []string{"html", "javascriptreact", "typescriptreact"}

type Options struct {
	Languages     []string
	Kinds         []scanner.Kind
	Icons         map[scanner.Kind]string
	FoldLevels    int
	FoldDirection Direction
	EditingDelay  time.Duration
	MatchTimeout  time.Duration
}

func DefaultOptions() Options {
	return Options{
		Languages:     slices.Clone(DefaultLanguages),
		Kinds:         slices.Clone(scanner.Kinds),
		Icons:         DefaultIcons,
		FoldLevels:    DefaultFoldLevels,
		FoldDirection: Up,
		EditingDelay:  state.DefaultEditingDelay,
		MatchTimeout:  scanner.DefaultMatchTimeout,
	}
}

type docSets map[scanner.Kind]*DecorationSet

// Controller runs the fold and decoration pipeline of one client session.
// It owns the gate, the generation counters and the decoration sets.
type Controller struct {
	Editor      Editor
	Gate        *state.Gate
	Generations *state.Generations

	lock    sync.Mutex
	options Options
	scanner *scanner.Scanner
	sets    map[Uri]docSets
}

func NewController(editor Editor, options Options) *Controller {
	return &Controller{
		Editor:      editor,
		Gate:        state.NewGate(options.EditingDelay),
		Generations: &state.Generations{},
		options:     options,
		scanner:     scanner.New(options.MatchTimeout),
		sets:        make(map[Uri]docSets),
	}
}

func (c *Controller) Options() Options {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.options
}

// SetOptions applies new options to the following cycles. The returned call,
// nil when nothing was painted, clears the decorations of the kinds that are
// no longer enabled.
func (c *Controller) SetOptions(options Options) func(context.Context) error {
	c.Gate.SetEditingDelay(options.EditingDelay)

	c.lock.Lock()
	defer c.lock.Unlock()

	if options.MatchTimeout != c.options.MatchTimeout {
		c.scanner = scanner.New(options.MatchTimeout)
	}

	stale := make(map[Uri][]*DecorationSet)

	for uri, sets := range c.sets {
		for kind, set := range sets {
			if !slices.Contains(options.Kinds, kind) {
				stale[uri] = append(stale[uri], set)
			}
		}
	}

	c.options = options
	c.sets = make(map[Uri]docSets)

	if len(stale) == 0 {
		return nil
	}

	return func(ctx context.Context) error {
		var err error

		for uri, sets := range stale {
			for _, set := range sets {
				log.Debugf("clear %s decorations of %s", set.Kind, uri)
				err = multierr.Append(err, set.Clear(ctx, c.Editor, uri))
			}
		}

		return err
	}
}

func (c *Controller) Scanner() *scanner.Scanner {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.scanner
}

func (c *Controller) IsRecognized(languageID string) bool {
	return slices.Contains(c.Options().Languages, languageID)
}

func (c *Controller) DecorationSet(uri Uri, kind scanner.Kind) *DecorationSet {
	c.lock.Lock()
	defer c.lock.Unlock()

	sets, ok := c.sets[uri]

	if !ok {
		sets = make(docSets)
		c.sets[uri] = sets
	}

	set, ok := sets[kind]

	if !ok {
		set = NewDecorationSet(kind, c.options.Icons[kind])
		sets[kind] = set
	}

	return set
}

func (c *Controller) DocumentChanged(uri Uri) {
	c.Gate.Edited()
}

// DocumentOpened forgets the decorations of an earlier open of doc and
// returns the unfold-all that resets its folds.
func (c *Controller) DocumentOpened(doc *state.Doc) func(context.Context) error {
	c.lock.Lock()
	delete(c.sets, doc.Uri)
	c.lock.Unlock()

	return c.beginReset(doc.Uri)
}

func (c *Controller) ActiveEditorChanged(doc *state.Doc) func(context.Context) error {
	return c.beginReset(doc.Uri)
}

// beginReset marks an unfold-all of uri in flight and returns the call that
// sends it. Selection cycles started in between wait for that call.
func (c *Controller) beginReset(uri Uri) func(context.Context) error {
	done := c.Gate.BeginUnfold()

	return func(ctx context.Context) error {
		defer done()

		log.Debugf("unfold all %s", uri)

		return c.Editor.UnfoldAll(ctx, uri)
	}
}

func (c *Controller) DocumentClosed(uri Uri) {
	c.Generations.Forget(uri)

	c.lock.Lock()
	defer c.lock.Unlock()

	delete(c.sets, uri)
}

// SelectionChanged recomputes folds and decorations of doc for the given
// selections. It does nothing during an editing burst and waits for a
// running unfold-all. A later call for the same document supersedes this
// one: its remaining commands and decorations are dropped.
func (c *Controller) SelectionChanged(ctx context.Context, doc *state.Doc, selections []Range) error {
	run := c.Selection(doc, selections)

	if run == nil {
		return nil
	}

	return run(ctx)
}

// Selection starts a cycle for doc and returns the call that runs it, or nil
// while editing. The cycle supersedes every earlier one of doc as soon as
// Selection returns.
func (c *Controller) Selection(doc *state.Doc, selections []Range) func(context.Context) error {
	if c.Gate.IsEditing() {
		log.Debugf("skip selection of %s while editing", doc.Uri)
		return nil
	}

	uri := doc.Uri
	gen := c.Generations.Next(uri)
	current := func() bool {
		return c.Generations.IsCurrent(uri, gen)
	}

	return func(ctx context.Context) error {
		err := c.Gate.WaitUnfolded(ctx)

		if err != nil {
			return err
		}

		if !current() {
			return nil
		}

		options := c.Options()
		sc := c.Scanner()
		errs := make([]error, len(options.Kinds))

		var g errgroup.Group

		for i, kind := range options.Kinds {
			g.Go(func() error {
				errs[i] = c.runKind(ctx, sc, options, doc, kind, selections, current)
				return errs[i]
			})
		}

		if g.Wait() == nil {
			return nil
		}

		return multierr.Combine(errs...)
	}
}

func (c *Controller) runKind(
	ctx context.Context,
	sc *scanner.Scanner,
	options Options,
	doc *state.Doc,
	kind scanner.Kind,
	selections []Range,
	current func() bool,
) error {
	regions := Locate(doc, sc.Scan(doc.Text, kind))
	items := ClassifyAll(regions, selections, doc)

	seq := &Sequencer{
		Editor:    c.Editor,
		Levels:    options.FoldLevels,
		Direction: options.FoldDirection,
	}

	err := seq.Run(ctx, doc.Uri, items, current)

	if err == nil {
		err = c.DecorationSet(doc.Uri, kind).Paint(ctx, c.Editor, doc.Uri, items, current)
	}

	if errors.Is(err, ErrSuperseded) {
		log.Debugf("%s cycle of %s superseded", kind, doc.Uri)
		return nil
	}

	return err
}

// FoldingRanges lists the multi-line attribute spans of doc by start line,
// regardless of selection.
func (c *Controller) FoldingRanges(doc *state.Doc) []proto.FoldingRange {
	sc := c.Scanner()
	res := make([]proto.FoldingRange, 0)
	kind := string(proto.FoldingRangeKindRegion)

	for _, k := range c.Options().Kinds {
		for _, region := range Locate(doc, sc.Scan(doc.Text, k)) {
			if !region.Multiline() {
				continue
			}

			res = append(res, proto.FoldingRange{
				StartLine: region.StartLine(),
				EndLine:   region.EndLine(),
				Kind:      &kind,
			})
		}
	}

	slices.SortStableFunc(res, func(a, b proto.FoldingRange) int {
		if a.StartLine != b.StartLine {
			return int(a.StartLine) - int(b.StartLine)
		}

		return int(a.EndLine) - int(b.EndLine)
	})

	return res
}
