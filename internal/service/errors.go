package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure so the transport can pick a status code.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindForbidden
	KindBadRequest
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindBadRequest:
		return "bad_request"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a classified failure whose Message is safe to show to the caller.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// KindOf reports the kind of err. Unclassified errors are internal.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

func errNotFound(msg string) error   { return &Error{Kind: KindNotFound, Message: msg} }
func errForbidden(msg string) error  { return &Error{Kind: KindForbidden, Message: msg} }
func errBadRequest(msg string) error { return &Error{Kind: KindBadRequest, Message: msg} }
func errConflict(msg string) error   { return &Error{Kind: KindConflict, Message: msg} }
func errInternal(msg string) error   { return &Error{Kind: KindInternal, Message: msg} }
