package catalog

import "errors"

// DataValidationError reports bad product data. Handlers turn it into a 400.
type DataValidationError struct {
	Msg string
}

func (e *DataValidationError) Error() string { return e.Msg }

func validationErr(msg string) error {
	return &DataValidationError{Msg: msg}
}

// IsValidation reports whether err carries a DataValidationError.
func IsValidation(err error) bool {
	var ve *DataValidationError
	return errors.As(err, &ve)
}
