package scanner

import "fmt"

type Kind uint8

const (
	Class Kind = iota
	Style
)

var Kinds = []Kind{Class, Style}

func (k Kind) String() string {
	switch k {
	case Class:
		return "class"
	case Style:
		return "style"
	}

	return fmt.Sprintf("kind(%d)", uint8(k))
}

func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == name {
			return k, nil
		}
	}

	return 0, fmt.Errorf("unknown attribute kind %q", name)
}

// attribute names matched for the kind, as a regexp alternation
func (k Kind) names() string {
	if k == Style {
		return `style`
	}

	return `class(?:Name)?`
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) (err error) {
	*k, err = ParseKind(string(text))

	return
}
