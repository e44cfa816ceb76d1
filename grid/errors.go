package grid

import (
	"fmt"

	pqr "github.com/rmera/gopqr"
)

//Errors

// Error is the general structure for grid codec errors. It fulfills the
// gopqr error interface: Decorate allows adding information as the error
// travels up the call stack. All grid read errors are structural, hence
// critical: there is no partial-grid result.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("grid error: %s", err.message)
	}
	return fmt.Sprintf("grid file %s error: %s", err.filename, err.message)
}

// Decorate adds new information to the error. The receiver is a pointer
// so the added decoration survives the call: append may reallocate the
// backing array, which a value receiver would silently discard.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file associated to the error, if any.
func (err *Error) FileName() string { return err.filename }

// Critical returns true if the error invalidates the whole read.
func (err *Error) Critical() bool { return err.critical }

// Messages for the errors returned by this package.
const (
	UnableToOpen   = "Unable to open file"
	ShortDirective = "Directive line with too few tokens"
	ExtraDelta     = "More than three delta lines"
)

// errDecorate is a helper function that asserts that the error implements
// pqr.Error and decorates it with the caller's name before returning it.
// If used with a non-pqr.Error error, it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(pqr.Error) //I know that is the type returned by this package
	err2.Decorate(caller)
	return err2
}
