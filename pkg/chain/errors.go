package chain

import "errors"

// ErrNoSheet indicates the workbook has no sheet to read, or the requested
// sheet does not exist.
var ErrNoSheet = errors.New("no readable sheet in workbook")
