package economy

import "fmt"

// ErrorCode categorizes economy errors.
type ErrorCode string

const (
	// CodeInsufficientFunds indicates a purchase the profile cannot afford.
	CodeInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"

	// CodeUnknownSkin indicates a skin id missing from the catalog.
	CodeUnknownSkin ErrorCode = "UNKNOWN_SKIN"

	// CodeAlreadyClaimed indicates a second daily claim on the same calendar day.
	CodeAlreadyClaimed ErrorCode = "ALREADY_CLAIMED"
)

// Error is returned by economy operations that leave the profile unchanged.
//
// Errors compare equal under errors.Is when their codes match, so callers
// can test against the sentinel values below regardless of details.
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]string
}

// Sentinels for errors.Is.
var (
	ErrInsufficientFunds = &Error{Code: CodeInsufficientFunds, Message: "insufficient funds"}
	ErrUnknownSkin       = &Error{Code: CodeUnknownSkin, Message: "unknown skin"}
	ErrAlreadyClaimed    = &Error{Code: CodeAlreadyClaimed, Message: "daily reward already claimed"}
)

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s %v", e.Code, e.Message, e.Details)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func newInsufficientFunds(id SkinID, price, coins int) *Error {
	return &Error{
		Code:    CodeInsufficientFunds,
		Message: fmt.Sprintf("skin %s costs %d, have %d", id, price, coins),
		Details: map[string]string{
			"skin":  string(id),
			"price": fmt.Sprintf("%d", price),
			"coins": fmt.Sprintf("%d", coins),
		},
	}
}
