// Package errors provides structured error types for the crest-go bridge.
//
// Errors are categorized by Phase (where in the bridge the error occurred)
// and Kind (error category). Two failure modes aggregate detail for
// diagnosability: LibraryNotFoundError lists every candidate path the
// locator attempted, and BindingError lists every symbol missing from a
// loaded artifact.
//
// Matching uses the standard errors.Is/errors.As machinery. Two *Error
// values match when their Phase and Kind are equal, so callers can test
// against a bare category:
//
//	if errors.Is(err, crerr.UseAfterDestroy("")) {
//	    ...
//	}
package errors
