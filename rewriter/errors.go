package rewriter

import (
	"errors"
	"fmt"
)

// Failure kinds returned by Rewrite. Match them with errors.Is.
var (
	// ErrInvalidTargetURL means the target URL could not be parsed or has no host.
	ErrInvalidTargetURL = errors.New("invalid target URL")
	// ErrInvalidGatewayURL means the gateway URL could not be parsed or has no host.
	ErrInvalidGatewayURL = errors.New("invalid gateway URL")
	// ErrURLReconstructionFailed means the rewritten URL could not be serialized.
	ErrURLReconstructionFailed = errors.New("URL reconstruction failed")
)

// RewriteError describes why a request could not be rewritten.
type RewriteError struct {
	// Kind is one of the Err* sentinels above.
	Kind error
	// URL is the input that was rejected.
	URL string
	// Err is the underlying cause, if any.
	Err error
}

func (e *RewriteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v %q: %v", e.Kind, e.URL, e.Err)
	}
	return fmt.Sprintf("%v %q", e.Kind, e.URL)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *RewriteError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newRewriteError(kind error, rawURL string, cause error) *RewriteError {
	return &RewriteError{Kind: kind, URL: rawURL, Err: cause}
}
