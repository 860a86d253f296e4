package entities

import "fmt"

// The planner reports failures through a small set of typed errors so that
// callers can match on the kind with errors.As and print a single-line
// message per kind.

// UnknownItemError reports a reference to an item id absent from the catalog.
type UnknownItemError struct {
	ID string
}

func (e UnknownItemError) Error() string {
	return fmt.Sprintf("unknown item '%s'", e.ID)
}

// UnknownBuildingError reports a reference to a building id absent from the catalog.
type UnknownBuildingError struct {
	ID string
}

func (e UnknownBuildingError) Error() string {
	return fmt.Sprintf("unknown building '%s'", e.ID)
}

// InvalidBuildingError reports a building reference of the wrong kind,
// such as a resource declaring a processor as its extractor.
type InvalidBuildingError struct {
	ID string
}

func (e InvalidBuildingError) Error() string {
	return fmt.Sprintf("invalid building '%s'", e.ID)
}

// InvalidRecipeIndexError reports an index past the visible recipe count of a book.
type InvalidRecipeIndexError struct {
	Index int
}

func (e InvalidRecipeIndexError) Error() string {
	return fmt.Sprintf("invalid recipe index '%d'", e.Index)
}

// TargetParseError reports a malformed "N.item_id" token on the command line.
type TargetParseError struct {
	Token string
}

func (e TargetParseError) Error() string {
	return fmt.Sprintf("fail to parse target '%s'", e.Token)
}

// FilterParseError reports an unrecognized recipe-filter token.
type FilterParseError struct {
	Token string
}

func (e FilterParseError) Error() string {
	return fmt.Sprintf("fail to parse filter '%s'", e.Token)
}

// ResolutionError reports that the linear program could not be solved
// (infeasible, unbounded or numerically degenerate). It wraps the solver's
// own error value.
type ResolutionError struct {
	Cause error
}

func (e ResolutionError) Error() string {
	return fmt.Sprintf("could not find a solution: %v", e.Cause)
}

func (e ResolutionError) Unwrap() error { return e.Cause }

// BookError reports a malformed catalog document.
type BookError struct {
	Cause error
}

func (e BookError) Error() string {
	return fmt.Sprintf("book deserialization failed: %v", e.Cause)
}

func (e BookError) Unwrap() error { return e.Cause }

// DotError reports a failure to produce graph output: the dot serialization
// of the BoM graph or the invocation of the external graph renderer.
type DotError struct {
	Cause error
}

func (e DotError) Error() string {
	return fmt.Sprintf("dot rendering failed: %v", e.Cause)
}

func (e DotError) Unwrap() error { return e.Cause }
