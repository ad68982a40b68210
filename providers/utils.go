package providers

import (
	"errors"
	urlParser "net/url"

	"github.com/vantaboard/class-fold/i18n"
	"github.com/vantaboard/class-fold/state"
	. "github.com/vantaboard/class-fold/types"
)

func NormalizeUri(uri Uri) (Uri, error) {
	url, err := urlParser.Parse(uri)

	if err != nil {
		return "", err
	}

	return url.String(), nil
}

// documentError localizes state.ErrNotOpen, keeping it matchable.
func documentError(uri Uri, err error) error {
	if errors.Is(err, state.ErrNotOpen) {
		return &localizedError{
			message: i18n.L("document_not_open", uri),
			err:     err,
		}
	}

	return err
}

type localizedError struct {
	message string
	err     error
}

func (e *localizedError) Error() string {
	return e.message
}

func (e *localizedError) Unwrap() error {
	return e.err
}
