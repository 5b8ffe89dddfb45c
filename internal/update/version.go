package update

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	goversion "github.com/hashicorp/go-version"

	appErrors "studentdesk/internal/errors"
)

// ErrInvalidVersion is wrapped by every version parse failure.
var ErrInvalidVersion = errors.New("invalid version format")

// Ordering is the result of comparing two versions.
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

// String returns the string representation of an Ordering.
func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	default:
		return fmt.Sprintf("Ordering(%d)", int(o))
	}
}

// Version represents a parsed dotted-numeric version.
// Any number of numeric segments is accepted; missing trailing segments
// compare as zero, so "1.2" equals "1.2.0".
type Version struct {
	v   *goversion.Version
	Raw string
}

// versionPattern is the accepted shape after prefix stripping: dotted
// numeric segments with an optional dash or plus suffix.
var versionPattern = regexp.MustCompile(`^\d+(\.\d+)*([-+][0-9A-Za-z.\-]+)?$`)

var zeroVersion = goversion.Must(goversion.NewVersion("0.0.0"))

// ParseVersion parses a version string.
// A leading non-numeric prefix such as "v" or "release-" is stripped before
// parsing (e.g. "v1.2.3", "release-1.10", "2.0.0-rc.1").
// Returns an error with code parse_failed if the string is not a version.
func ParseVersion(s string) (Version, error) {
	raw := strings.TrimSpace(s)
	numeric := stripPrefix(raw)
	if numeric == "" || !versionPattern.MatchString(numeric) {
		return Version{}, parseError(raw, nil)
	}

	v, err := goversion.NewVersion(numeric)
	if err != nil {
		return Version{}, parseError(raw, err)
	}
	return Version{v: v, Raw: raw}, nil
}

// MustParseVersion is like ParseVersion but panics on malformed input.
// Intended for constants and tests.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func parseError(raw string, cause error) error {
	msg := fmt.Sprintf("parse version %q", raw)
	if cause != nil {
		msg = fmt.Sprintf("%s (%v)", msg, cause)
	}
	return appErrors.New(appErrors.CodeParseFailed, msg, ErrInvalidVersion)
}

// stripPrefix drops everything before the first digit.
func stripPrefix(s string) string {
	idx := strings.IndexFunc(s, unicode.IsDigit)
	if idx < 0 {
		return ""
	}
	return s[idx:]
}

func (v Version) inner() *goversion.Version {
	if v.v == nil {
		return zeroVersion
	}
	return v.v
}

// Segments returns the numeric components, padded to at least three.
func (v Version) Segments() []int {
	return v.inner().Segments()
}

// Prerelease returns the pre-release suffix without the leading dash.
func (v Version) Prerelease() string {
	return v.inner().Prerelease()
}

// IsZero reports whether v is the zero value (never parsed).
func (v Version) IsZero() bool {
	return v.v == nil
}

// String returns the normalized version without any prefix.
func (v Version) String() string {
	return v.inner().String()
}

// Compare compares two versions.
// Segments are compared as integers; a pre-release sorts before the
// corresponding release and build metadata is ignored.
func (v Version) Compare(other Version) Ordering {
	switch c := v.inner().Compare(other.inner()); {
	case c < 0:
		return Less
	case c > 0:
		return Greater
	default:
		return Equal
	}
}

// LessThan returns true if v < other.
func (v Version) LessThan(other Version) bool {
	return v.Compare(other) == Less
}

// GreaterThan returns true if v > other.
func (v Version) GreaterThan(other Version) bool {
	return v.Compare(other) == Greater
}

// Equal returns true if v == other.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == Equal
}

// CompareVersions parses and compares two version strings.
func CompareVersions(a, b string) (Ordering, error) {
	va, err := ParseVersion(a)
	if err != nil {
		return Equal, err
	}
	vb, err := ParseVersion(b)
	if err != nil {
		return Equal, err
	}
	return va.Compare(vb), nil
}

// IsDevelopmentVersion reports whether the running build carries no release
// version and should never check for updates.
func IsDevelopmentVersion(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "dev", "development":
		return true
	}
	return false
}
