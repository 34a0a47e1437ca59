// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

// Package uuidv7 generates time-sortable UUIDs for primary keys.
//
// UUIDv7 embeds a millisecond timestamp in the high bits, so rows inserted
// later sort later. This keeps btree indexes append-mostly and makes IDs
// roughly chronological without a separate sequence.
package uuidv7

import "github.com/google/uuid"

// New returns a new UUIDv7 string, falling back to UUIDv4 if the system
// entropy source fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// IsValid reports whether the value parses as a UUID.
func IsValid(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}
