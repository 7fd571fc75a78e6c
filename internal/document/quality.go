package document

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MinTextLength is the minimum number of characters (after trimming) a
// document must yield to be worth analyzing.
const MinTextLength = 20

// ErrInsufficientText is returned when extraction produced no usable text,
// e.g. an empty file or an image-based PDF the OCR pass could not read.
var ErrInsufficientText = errors.New("insufficient text")

// Validate checks extracted text against MinTextLength and returns it
// unchanged on success.
func Validate(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < MinTextLength {
		return "", ErrInsufficientText
	}
	return text, nil
}
