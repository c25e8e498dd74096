package backup

import "errors"

// Class partitions run failures by origin so the CLI can render and exit
// on them distinctly.
type Class string

const (
	ClassConfig     Class = "config"
	ClassValidation Class = "validation"
	ClassIO         Class = "io"
	ClassStore      Class = "store"
)

type Error struct {
	Class Class
	Err   error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

func mark(c Class, err error) error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return err
	}
	return &Error{Class: c, Err: err}
}

func ConfigErr(err error) error     { return mark(ClassConfig, err) }
func ValidationErr(err error) error { return mark(ClassValidation, err) }
func IOErr(err error) error         { return mark(ClassIO, err) }
func StoreErr(err error) error      { return mark(ClassStore, err) }

// ClassOf returns the class of a classified error, or "" for unclassified
// errors.
func ClassOf(err error) Class {
	var e *Error
	if errors.As(err, &e) {
		return e.Class
	}
	return ""
}
