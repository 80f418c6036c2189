// Package langdetect identifies the language of crawled text.
package langdetect

import (
	"errors"
	"strings"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
)

// ErrUndetermined is returned when the input is too short or too noisy
// for a trustworthy identification.
var ErrUndetermined = errors.New("language could not be determined")

// Detector identifies the language of a text.
type Detector interface {
	// Detect returns the ISO 639-1 code of text, e.g. "en".
	Detect(text string) (string, error)
}

// Statistical is a trigram-based Detector backed by whatlanggo.
type Statistical struct{}

func New() Statistical {
	return Statistical{}
}

func (Statistical) Detect(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrUndetermined
	}

	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" {
		return "", ErrUndetermined
	}

	// Canonicalize through x/text so callers always see a well-formed tag.
	tag, err := language.Parse(code)
	if err != nil {
		return "", ErrUndetermined
	}
	base, _ := tag.Base()
	return base.String(), nil
}
