package utils

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindTransport ErrorKind = iota
	KindTruncated
	KindUnauthorized
	KindNotFound
	KindProtocolMismatch
	KindExtraction
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindTruncated:
		return "truncated"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not-found"
	case KindProtocolMismatch:
		return "protocol-mismatch"
	case KindExtraction:
		return "extraction"
	case KindConfig:
		return "config"
	default:
		return "transport"
	}
}

var (
	ErrTruncated        = errors.New("transfer truncated")
	ErrUnauthorized     = errors.New("credentials rejected")
	ErrNotFound         = errors.New("resource not found")
	ErrProtocolMismatch = errors.New("client protocol outdated")
	ErrTransport        = errors.New("transport error")
	ErrExtraction       = errors.New("archive extraction failed")
	ErrConfig           = errors.New("invalid configuration")
)

var kindSentinels = map[ErrorKind]error{
	KindTransport:        ErrTransport,
	KindTruncated:        ErrTruncated,
	KindUnauthorized:     ErrUnauthorized,
	KindNotFound:         ErrNotFound,
	KindProtocolMismatch: ErrProtocolMismatch,
	KindExtraction:       ErrExtraction,
	KindConfig:           ErrConfig,
}

// FetchError is the only error type transports and the retrying fetcher return.
// Status is the remote status code when one was received, Message any
// diagnostic text the remote sent back.
type FetchError struct {
	Kind    ErrorKind
	URL     string
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	msg := e.Kind.String() + " error"
	if e.URL != "" {
		msg += " for " + e.URL
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match a FetchError against the sentinel for its kind.
func (e *FetchError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// Retryable is true only for truncated transfers.
func (e *FetchError) Retryable() bool {
	return e.Kind == KindTruncated
}

// KindOf returns the kind of the first FetchError in err's chain, or KindTransport.
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindTransport
}

func NewFetchError(kind ErrorKind, url string, err error) *FetchError {
	return &FetchError{Kind: kind, URL: url, Err: err}
}

func ConfigError(format string, args ...any) error {
	return &FetchError{Kind: KindConfig, Message: fmt.Sprintf(format, args...)}
}
