package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error codes returned in BoardError.Code.
const (
	CodeInvalidSlot = "invalidSlot"
	CodeInvalidName = "invalidName"
	CodeInvalidNote = "invalidNote"
	CodeNotFound    = "notFound"
)

// BoardError is a rejected request. Anything else returned by the service
// is a storage failure.
type BoardError struct {
	Code    string
	Message string
}

func (e *BoardError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newBoardError(code, msg string) error {
	return &BoardError{Code: code, Message: msg}
}

// AsBoardError unwraps err into a BoardError if it is one.
func AsBoardError(err error) (*BoardError, bool) {
	var be *BoardError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// describe turns validator failures into one readable sentence.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
