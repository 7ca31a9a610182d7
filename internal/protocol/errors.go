package protocol

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a failed operation
type ErrorKind int

const (
	// KindTransportError: no response was obtained (DNS, connect, timeout)
	KindTransportError ErrorKind = iota + 1
	// KindHTTPStatusError: a response arrived with a non-2xx status
	KindHTTPStatusError
	// KindDecodeError: the body was malformed or did not fit the expected shape
	KindDecodeError
	// KindGraphQLError: the server reported logical errors
	KindGraphQLError
	// KindEmptyDataError: neither data nor errors were present
	KindEmptyDataError
	// KindEncodeError: the variables could not be serialised
	KindEncodeError
)

// String returns the string representation of the kind
func (k ErrorKind) String() string {
	switch k {
	case KindTransportError:
		return "transport"
	case KindHTTPStatusError:
		return "http_status"
	case KindDecodeError:
		return "decode"
	case KindGraphQLError:
		return "graphql"
	case KindEmptyDataError:
		return "empty_data"
	case KindEncodeError:
		return "encode"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching by kind
var (
	ErrTransport  = errors.New("transport error")
	ErrHTTPStatus = errors.New("unexpected http status")
	ErrDecode     = errors.New("decode error")
	ErrGraphQL    = errors.New("graphql error")
	ErrEmptyData  = errors.New("response carried no data")
	ErrEncode     = errors.New("encode error")
)

// MessageDelimiter joins server error messages
const MessageDelimiter = "; "

// ServerMessage is one entry of the envelope's errors list
type ServerMessage struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

// PathString renders the path as dotted segments, e.g. "login.user"
func (m ServerMessage) PathString() string {
	parts := make([]string, 0, len(m.Path))
	for _, seg := range m.Path {
		parts = append(parts, fmt.Sprint(seg))
	}
	return strings.Join(parts, ".")
}

// Error is the single failure type returned by the client
type Error struct {
	Kind       ErrorKind
	Operation  string
	StatusCode int             // KindHTTPStatusError only
	Messages   []ServerMessage // KindGraphQLError only
	Err        error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Operation)
	sb.WriteString(": ")
	switch e.Kind {
	case KindHTTPStatusError:
		fmt.Fprintf(&sb, "http status %d", e.StatusCode)
	case KindGraphQLError:
		sb.WriteString(e.Message())
	default:
		sb.WriteString(e.sentinel().Error())
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Message concatenates all server messages with MessageDelimiter
func (e *Error) Message() string {
	msgs := make([]string, 0, len(e.Messages))
	for _, m := range e.Messages {
		msgs = append(msgs, m.Message)
	}
	return strings.Join(msgs, MessageDelimiter)
}

// Unwrap exposes both the kind sentinel and the underlying cause
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.sentinel()}
	}
	return []error{e.sentinel(), e.Err}
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindTransportError:
		return ErrTransport
	case KindHTTPStatusError:
		return ErrHTTPStatus
	case KindDecodeError:
		return ErrDecode
	case KindGraphQLError:
		return ErrGraphQL
	case KindEmptyDataError:
		return ErrEmptyData
	case KindEncodeError:
		return ErrEncode
	default:
		return errors.New("unknown protocol error")
	}
}

// AsError extracts a *Error from an error chain
func AsError(err error) (*Error, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// StatusCode returns the HTTP status carried by err, or 0
func StatusCode(err error) int {
	if pe, ok := AsError(err); ok && pe.Kind == KindHTTPStatusError {
		return pe.StatusCode
	}
	return 0
}
