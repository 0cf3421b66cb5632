package report

import "errors"

var (
	// ErrDuplicatePage is returned when two pages would share a file.
	ErrDuplicatePage = errors.New("duplicate page name")

	// ErrReservedPageName is returned for pages named like the index page.
	ErrReservedPageName = errors.New("page name is reserved for the index")
)
