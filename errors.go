package riffle

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateNode indicates two nodes in a change-set share an ID.
	ErrDuplicateNode = errors.New("duplicate node identifier")

	// ErrUnknownReference indicates an edge, parent, or empty node ID
	// references a node that is not part of the change-set.
	ErrUnknownReference = errors.New("reference to unknown node")

	// ErrSelfDependency indicates a node depends on or contains itself.
	ErrSelfDependency = errors.New("node depends on itself")

	// ErrInvalidOverride indicates the order override names an unknown
	// node or names a node more than once.
	ErrInvalidOverride = errors.New("invalid order override")

	// ErrInternalInvariant indicates the resolver produced an internally
	// inconsistent intermediate state. It signals a bug in the resolver,
	// not a problem with the input.
	ErrInternalInvariant = errors.New("internal invariant violated")
)

// ResolutionError explains why a change-set could not be resolved. It
// wraps one of the sentinel errors above and carries the offending
// identifier or edge so callers can correct the input and retry.
type ResolutionError struct {
	// Err is the sentinel error classifying the failure.
	Err error

	// NodeID is the offending node identifier, when one is known.
	NodeID string

	// Edge is the offending edge, when the failure concerns an edge.
	Edge *Edge

	// Detail adds human-readable context.
	Detail string
}

func (e *ResolutionError) Error() string {
	msg := e.Err.Error()
	switch {
	case e.Edge != nil:
		msg = fmt.Sprintf("%s: edge %s -> %s", msg, e.Edge.From, e.Edge.To)
	case e.NodeID != "":
		msg = fmt.Sprintf("%s: %s", msg, e.NodeID)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Detail)
	}
	return msg
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// IsDuplicateNode reports whether err is a duplicate node ID failure.
func IsDuplicateNode(err error) bool {
	return errors.Is(err, ErrDuplicateNode)
}

// IsUnknownReference reports whether err is an unknown reference failure.
func IsUnknownReference(err error) bool {
	return errors.Is(err, ErrUnknownReference)
}

// IsSelfDependency reports whether err is a self dependency failure.
func IsSelfDependency(err error) bool {
	return errors.Is(err, ErrSelfDependency)
}

// IsInvalidOverride reports whether err is an invalid override failure.
func IsInvalidOverride(err error) bool {
	return errors.Is(err, ErrInvalidOverride)
}

// IsInternalInvariant reports whether err is a resolver invariant
// violation.
func IsInternalInvariant(err error) bool {
	return errors.Is(err, ErrInternalInvariant)
}
