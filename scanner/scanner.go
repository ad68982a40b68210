package scanner

import (
	"fmt"
	"iter"
	"time"

	"github.com/dlclark/regexp2"
)

const DefaultMatchTimeout = 500 * time.Millisecond

// Span is a half-open [Start, End) range of rune offsets.
type Span struct {
	Kind  Kind
	Start int
	End   int
}

type Scanner struct {
	patterns map[Kind]*regexp2.Regexp
}

var Default = New(DefaultMatchTimeout)

// New compiles the attribute patterns. A non-positive timeout disables the
// match time limit.
func New(timeout time.Duration) *Scanner {
	s := &Scanner{
		patterns: make(map[Kind]*regexp2.Regexp, len(Kinds)),
	}

	for _, kind := range Kinds {
		re := regexp2.MustCompile(Pattern(kind), regexp2.ECMAScript)

		if timeout > 0 {
			re.MatchTimeout = timeout
		}

		s.patterns[kind] = re
	}

	return s
}

// Pattern returns the attribute value grammar of the kind.
//
// Quoted values end at the same quote char followed by whitespace or ">".
// Bracketed values end at the matching bracket followed by "/>".
func Pattern(kind Kind) string {
	return fmt.Sprintf(
		"(?:%s)=(?:([`'\"])[\\s\\S]*?\\1(?=[\\s>])|\\[[\\s\\S]*?\\](?=\\s*/>)|\\{[\\s\\S]*?\\}(?=\\s*/>))",
		kind.names(),
	)
}

// Scan yields spans of the kind in text order. Every iteration starts a new
// scan of text. Unterminated values yield nothing and a match timeout ends
// the sequence.
func (s *Scanner) Scan(text string, kind Kind) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		re, ok := s.patterns[kind]

		if !ok {
			return
		}

		m, err := re.FindRunesMatch([]rune(text))

		for m != nil && err == nil {
			span := Span{
				Kind:  kind,
				Start: m.Index,
				End:   m.Index + m.Length,
			}

			if !yield(span) {
				return
			}

			m, err = re.FindNextMatch(m)
		}
	}
}

func (s *Scanner) ScanAll(text string, kind Kind) []Span {
	list := make([]Span, 0)

	for span := range s.Scan(text, kind) {
		list = append(list, span)
	}

	return list
}

func Scan(text string, kind Kind) iter.Seq[Span] {
	return Default.Scan(text, kind)
}

func ScanAll(text string, kind Kind) []Span {
	return Default.ScanAll(text, kind)
}
