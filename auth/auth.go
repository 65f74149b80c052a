// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"
)

var ErrEmptySalt = errors.New("voter salt must not be empty")

// VoterHash derives the voter identity from a client IP.
// Includes salt to prevent rainbow table attacks
func VoterHash(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// 128 bits keeps collisions between voters out of reach
	return hex.EncodeToString(sum[:16])
}

// NewVoteID returns a fresh primary key for a user_vote row.
func NewVoteID() string {
	return uuid.NewString()
}

// ValidateSalt rejects salts that would make voter hashes guessable.
func ValidateSalt(salt string) error {
	if salt == "" {
		return ErrEmptySalt
	}
	return nil
}
