package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var ErrDuplicateID = errors.New("duplicate id")

// Validate checks field constraints of a decoded payload.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

// ValidateBallot checks every nomination and that nomination ids, and
// candidate ids across the whole ballot, are unique.
func ValidateBallot(noms []NominationPayload) error {
	seenNom := make(map[int64]bool, len(noms))
	seenCand := make(map[int64]bool)
	for _, n := range noms {
		if err := Validate(n); err != nil {
			return fmt.Errorf("nomination %d: %w", n.ID, err)
		}
		if seenNom[n.ID] {
			return fmt.Errorf("nomination %d: %w", n.ID, ErrDuplicateID)
		}
		seenNom[n.ID] = true
		for _, c := range n.Candidates {
			if seenCand[c.ID] {
				return fmt.Errorf("candidate %d: %w", c.ID, ErrDuplicateID)
			}
			seenCand[c.ID] = true
		}
	}
	return nil
}
