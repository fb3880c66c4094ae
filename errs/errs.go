// Package errs defines the error kinds the geoparse core can surface.
//
// The lattice builder, filters and path evaluator never panic on content;
// they wrap one of these kinds with github.com/pkg/errors so callers can
// inspect the cause with errors.Cause or errors.Is against the sentinels
// below.
package errs

import "github.com/pkg/errors"

// Sentinel kinds, see spec §7 "Error Handling Design".
var (
	// ErrUninitialized is returned when a lookup is attempted before a
	// gazetteer (or other required collaborator) has been attached.
	ErrUninitialized = errors.New("geoparse: uninitialized")

	// ErrDataIntegrity is returned when a gazetteer id declared on a
	// geoword token does not resolve, or a persisted dictionary id has no
	// identifier.
	ErrDataIntegrity = errors.New("geoparse: data integrity")

	// ErrBadConfig is returned for a malformed regex, a bad filter
	// argument type, or an empty active-dictionary set the caller rejects.
	ErrBadConfig = errors.New("geoparse: bad config")

	// ErrTooManyCombinations is returned by the path evaluator when the
	// lattice's combination count exceeds the configured bound. The
	// Workflow recovers from this by chunking (§4.7); any other caller
	// must handle it explicitly.
	ErrTooManyCombinations = errors.New("geoparse: too many combinations")

	// ErrAddressTreeUnavailable names the case of a resolver invoked
	// without an address-tree capability. address.Resolver.Resolve does not
	// return it: with no tree it returns the lattice unchanged, and the
	// Workflow skips address resolution when no tree is attached.
	ErrAddressTreeUnavailable = errors.New("geoparse: address tree unavailable")

	// ErrExternalFetch covers GeoJSON URL fetch failures and address-tree
	// I/O failures. Always surfaced, never silently recovered.
	ErrExternalFetch = errors.New("geoparse: external fetch failed")

	// ErrTemporalParse is the kind for a duration string that cannot be
	// parsed as an ISO date. filter.NewTemporalFilter takes already-parsed
	// time.Time values and never returns it.
	ErrTemporalParse = errors.New("geoparse: temporal parse")
)

// Wrap annotates err with msg and attributes it to kind, so that
// errors.Is(result, kind) succeeds while errors.Cause(result) still reaches
// the original err.
func Wrap(kind error, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, cause: errors.Wrap(err, msg)}
}

// New builds a new error attributed to kind with the given message.
func New(kind error, msg string) error {
	return &kindError{kind: kind, cause: errors.New(msg)}
}

// Newf builds a new error attributed to kind with a formatted message.
func Newf(kind error, format string, args ...any) error {
	return &kindError{kind: kind, cause: errors.Errorf(format, args...)}
}

type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string { return e.cause.Error() }

func (e *kindError) Unwrap() error { return e.kind }

func (e *kindError) Cause() error { return e.cause }
