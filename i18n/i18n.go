package i18n

import (
	"fmt"
	"sync/atomic"
)

var locale atomic.Value

func init() {
	locale.Store("en")
}

func Locale() string {
	return locale.Load().(string)
}

// L formats the message of key in the current locale, falling back to
// English for missing keys.
func L(key string, args ...any) string {
	msg, ok := translations[Locale()][key]

	if !ok {
		msg = EN[key]
	}

	return fmt.Sprintf(msg, args...)
}

func SetLocale(name string) error {
	_, exist := translations[name]

	if !exist {
		return fmt.Errorf(EN["unsupported_locale"], name)
	}

	locale.Store(name)

	return nil
}
