package swipe

import (
	"errors"
	"fmt"
	"strings"
)

// Preference is the user configured action bound to a drag direction.
type Preference uint8

// Available preferences. The zero value is deliberately invalid so that an
// unset preference is never mistaken for a configured one.
const (
	_ Preference = iota
	PrefUpvote
	PrefDownvote
	PrefSave
	PrefHide
	PrefComments
	PrefLink
	PrefBrowser
)

// ErrUnknownPreference is returned when parsing an unrecognized preference.
var ErrUnknownPreference = errors.New("unknown swipe preference")

var preferenceNames = map[Preference]string{
	PrefUpvote:   "upvote",
	PrefDownvote: "downvote",
	PrefSave:     "save",
	PrefHide:     "hide",
	PrefComments: "comments",
	PrefLink:     "link",
	PrefBrowser:  "browser",
}

// Preferences returns every valid preference in declaration order.
func Preferences() []Preference {
	return []Preference{
		PrefUpvote,
		PrefDownvote,
		PrefSave,
		PrefHide,
		PrefComments,
		PrefLink,
		PrefBrowser,
	}
}

// ParsePreference parses the textual form of a preference, ignoring case and
// surrounding whitespace.
func ParsePreference(s string) (Preference, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for p, name := range preferenceNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPreference, s)
}

// Valid reports whether p is one of the known preferences.
func (p Preference) Valid() bool {
	_, ok := preferenceNames[p]
	return ok
}

// String implements [fmt.Stringer].
func (p Preference) String() string {
	if name, ok := preferenceNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Preference(%d)", p)
}

// MarshalText implements [encoding.TextMarshaler].
func (p Preference) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPreference, p)
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (p *Preference) UnmarshalText(text []byte) error {
	v, err := ParsePreference(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
