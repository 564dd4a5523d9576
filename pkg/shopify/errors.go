package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthentication
	KindRequest
	KindTransport
	KindUserError
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindRequest:
		return "request"
	case KindTransport:
		return "transport"
	case KindUserError:
		return "user error"
	}
	return "unknown"
} // ./String

// FieldPath is the path of the input field a user error refers to. The API
// sends a list of path segments; a plain string is accepted as well.
type FieldPath []string

func (f *FieldPath) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = nil
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FieldPath{s}
		return nil
	}
	var ss []string
	if err := json.Unmarshal(data, &ss); err != nil {
		return err
	}
	*f = FieldPath(ss)
	return nil
} // ./UnmarshalJSON

func (f FieldPath) String() string {
	return strings.Join(f, ".")
}

type UserError struct {
	Field   FieldPath `json:"field"`
	Message string    `json:"message"`
	Code    string    `json:"code,omitempty"`
}

func (u UserError) String() string {
	if len(u.Field) == 0 {
		return u.Message
	}
	return fmt.Sprintf("%s: %s", u.Field, u.Message)
}

// Error is returned by every Service operation.
type Error struct {
	Kind Kind
	// Op is the GraphQL operation that failed, empty for input validation.
	Op string
	// Field names the offending input for validation errors.
	Field      string
	StatusCode int
	UserErrors []UserError
	// ProductID is set once productCreate succeeded; the product is not removed.
	ProductID string
	Err       error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("shopify: ")
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	switch e.Kind {
	case KindValidation:
		b.WriteString("invalid ")
		b.WriteString(e.Field)
		if e.Err != nil {
			b.WriteString(": ")
			b.WriteString(e.Err.Error())
		}
	case KindUserError:
		b.WriteString("user errors: ")
		msgs := make([]string, 0, len(e.UserErrors))
		for _, u := range e.UserErrors {
			msgs = append(msgs, u.String())
		}
		b.WriteString(strings.Join(msgs, "; "))
	case KindAuthentication, KindRequest:
		b.WriteString(e.Kind.String())
		b.WriteString(" failed")
		if e.StatusCode != 0 {
			fmt.Fprintf(&b, " (status %d)", e.StatusCode)
		}
		if e.Err != nil {
			b.WriteString(": ")
			b.WriteString(e.Err.Error())
		}
	default:
		b.WriteString(e.Kind.String())
		b.WriteString(" error")
		if e.Err != nil {
			b.WriteString(": ")
			b.WriteString(e.Err.Error())
		}
	}
	if e.ProductID != "" {
		fmt.Fprintf(&b, " (product %s was created)", e.ProductID)
	}
	return b.String()
} // ./Error

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Cause() error {
	return e.Err
}

// IsKind reports whether any error in err's chain is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == k
} // ./IsKind

func invalid(field, format string, args ...interface{}) *Error {
	return &Error{
		Kind:  KindValidation,
		Field: field,
		Err:   errors.Errorf(format, args...),
	}
} // ./invalid

func userErrors(op string, ue []UserError) *Error {
	return &Error{
		Kind:       KindUserError,
		Op:         op,
		UserErrors: ue,
	}
} // ./userErrors

// classify turns an error from the GraphQL client into an *Error.
func classify(op string, err error) *Error {
	var se *StatusError
	if errors.As(err, &se) {
		kind := KindRequest
		if se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden {
			kind = KindAuthentication
		}
		return &Error{Kind: kind, Op: op, StatusCode: se.StatusCode, Err: se}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}
	// top-level GraphQL errors and undecodable bodies
	return &Error{Kind: KindRequest, Op: op, Err: errors.Wrap(err, "api")}
} // ./classify
