// # internal/source/source.go
package source

import (
	"os"
	"strings"
	"unicode/utf8"

	"basmin/internal/errors"
)

// Listing is an ordered sequence of text lines, 1:1 with the original
// file's line breaks. The split/join round trip is verbatim, including a
// trailing empty element when the file ends in a newline.
type Listing struct {
	lines []string
}

func New(content string) *Listing {
	return &Listing{lines: strings.Split(content, "\n")}
}

func FromLines(lines []string) *Listing {
	return &Listing{lines: append([]string(nil), lines...)}
}

// Load reads a listing from disk. A missing or unreadable file maps to
// NOT_FOUND, non-UTF-8 content to DECODE_ERROR.
func Load(path string) (*Listing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.AddContext(
			errors.Wrap(err, errors.CodeNotFound, "read listing"),
			errors.CtxPath, path)
	}
	if !utf8.Valid(data) {
		return nil, errors.AddContext(
			errors.New(errors.CodeDecode, "listing is not valid UTF-8"),
			errors.CtxPath, path)
	}
	return New(string(data)), nil
}

func (l *Listing) Save(path string) error {
	if err := os.WriteFile(path, []byte(l.Content()), 0644); err != nil {
		return errors.AddContext(
			errors.Wrap(err, errors.CodeInternal, "write listing"),
			errors.CtxPath, path)
	}
	return nil
}

// Lines returns the backing slice; callers must not mutate it.
func (l *Listing) Lines() []string {
	return l.lines
}

func (l *Listing) Content() string {
	return strings.Join(l.lines, "\n")
}

func (l *Listing) LineCount() int {
	return len(l.lines)
}

func (l *Listing) Size() int {
	return len(l.Content())
}
