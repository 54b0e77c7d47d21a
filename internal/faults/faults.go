// Package faults berisi jenis error domain yang dipakai lintas komponen.
// Handler/HTTP layer yang memformat pesan ke user, bukan layer settlement.
package faults

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindNotFound
	KindInsufficientStock
	KindStorageFailure // transient, boleh di-retry oleh caller (seluruh order/transfer)
	KindConflict       // reserved utk optimistic concurrency; belum dipakai
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "INVALID_ARGUMENT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindInsufficientStock:
		return "INSUFFICIENT_STOCK"
	case KindStorageFailure:
		return "STORAGE_FAILURE"
	case KindConflict:
		return "CONFLICT"
	default:
		return "UNKNOWN"
	}
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is supaya errors.Is(err, &Error{Kind: X}) match per kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func InvalidArgumentf(format string, args ...any) error {
	return &Error{Kind: KindInvalidArgument, Msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Storage membungkus error dari layer persistence. nil tetap nil supaya
// aman dipakai di return path langsung.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindStorageFailure, Msg: op, Err: err}
}

// InsufficientStock bawa angka available vs requested supaya caller bisa
// nyusun pesan presisi tanpa parsing string.
type InsufficientStock struct {
	BranchID  string
	DrinkID   string
	Available int
	Requested int
}

func (e *InsufficientStock) Error() string {
	return fmt.Sprintf("insufficient stock for %s at %s: available %d, requested %d",
		e.DrinkID, e.BranchID, e.Available, e.Requested)
}

func (e *InsufficientStock) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == KindInsufficientStock
	}
	var s *InsufficientStock
	return errors.As(target, &s)
}

// KindOf mengklasifikasi error apa pun ke salah satu Kind.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var is *InsufficientStock
	if errors.As(err, &is) {
		return KindInsufficientStock
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsKind(err error, k Kind) bool { return KindOf(err) == k }
