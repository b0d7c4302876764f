// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collectible

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the discriminator naming the concrete variant of an [Item].
type Kind string

const (
	KindBook  Kind = "Book"
	KindMovie Kind = "Movie"
	KindShow  Kind = "Show"
	KindGame  Kind = "Game"
)

// Kinds lists every supported kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindBook, KindMovie, KindShow, KindGame}
}

var (
	// ErrMissingItemType is returned when a payload carries no itemType property.
	ErrMissingItemType = errors.New("collectible: itemType property is missing")

	// ErrEmptyItemType is returned when itemType is null or blank.
	ErrEmptyItemType = errors.New("collectible: itemType is empty")

	// ErrUnknownItemType is returned when itemType names no known kind.
	ErrUnknownItemType = errors.New("collectible: unknown itemType")
)

// ParseKind resolves an exact, case-sensitive kind name.
func ParseKind(value string) (Kind, error) {
	for _, kind := range Kinds() {
		if string(kind) == value {
			return kind, nil
		}
	}
	return "", unknownKind(value)
}

// ParseKindFold resolves a kind name ignoring case.
func ParseKindFold(value string) (Kind, error) {
	for _, kind := range Kinds() {
		if strings.EqualFold(string(kind), value) {
			return kind, nil
		}
	}
	return "", unknownKind(value)
}

func unknownKind(value string) error {
	return fmt.Errorf("%w: %q", ErrUnknownItemType, value)
}

// New returns an item holding the zero variant of kind.
func New(kind Kind) (*Item, error) {
	var details Details
	switch kind {
	case KindBook:
		details = &Book{}
	case KindMovie:
		details = &Movie{}
	case KindShow:
		details = &Show{}
	case KindGame:
		details = &Game{}
	default:
		return nil, unknownKind(string(kind))
	}
	return &Item{Details: details}, nil
}
