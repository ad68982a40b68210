package fold

import "fmt"

type Status uint8

const (
	None Status = iota
	Folded
	FoldedEnd
	Hidden
)

var Statuses = []Status{None, Folded, FoldedEnd, Hidden}

func (s Status) String() string {
	switch s {
	case None:
		return "none"
	case Folded:
		return "folded"
	case FoldedEnd:
		return "foldedEnd"
	case Hidden:
		return "hidden"
	}

	return fmt.Sprintf("status(%d)", uint8(s))
}

func (s Status) IsFolded() bool {
	return s == Folded || s == FoldedEnd
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for _, status := range Statuses {
		if status.String() == string(text) {
			*s = status
			return nil
		}
	}

	return fmt.Errorf("unknown decoration status %q", text)
}
