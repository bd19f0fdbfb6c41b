package core

import "fmt"

// MissingInputError reports that one side of the comparison has no documents.
type MissingInputError struct {
	List ListType
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("no %s documents supplied", e.List)
}

// ParseError reports a document that is not valid JSON or does not have the
// expected export shape. Entry is -1 when the failure is not tied to an entry.
type ParseError struct {
	List     ListType
	Document string
	Index    int
	Entry    int
	Err      error
}

func (e *ParseError) Error() string {
	name := e.Document
	if name == "" {
		name = fmt.Sprintf("#%d", e.Index+1)
	}

	if e.Entry >= 0 {
		return fmt.Sprintf("parse %s document %q: entry %d: %v", e.List, name, e.Entry, e.Err)
	}

	return fmt.Sprintf("parse %s document %q: %v", e.List, name, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
