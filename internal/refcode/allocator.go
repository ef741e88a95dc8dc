// Package refcode mints short human-facing booking references.
package refcode

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	apperrors "go-booking-engine/pkg/app_errors"
)

// Alphabet excludes visually ambiguous characters (0/O, 1/I).
const Alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const CodeLength = 6

const defaultMaxAttempts = 5

// RefChecker answers whether a reference is already taken. Implemented by
// the booking repository.
type RefChecker interface {
	RefExists(ctx context.Context, ref string) (bool, error)
}

type Allocator interface {
	// Allocate returns a fresh unique reference, retrying on collision a
	// bounded number of times before failing with ErrReferenceExhausted.
	Allocate(ctx context.Context) (string, error)
}

type AllocatorImpl struct {
	checker     RefChecker
	maxAttempts int
}

func NewAllocator(checker RefChecker, maxAttempts int) Allocator {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &AllocatorImpl{checker: checker, maxAttempts: maxAttempts}
}

func (a *AllocatorImpl) Allocate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		code, err := Generate()
		if err != nil {
			return "", fmt.Errorf("generate reference: %w", err)
		}
		exists, err := a.checker.RefExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check reference: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", apperrors.ErrReferenceExhausted
}

// Generate produces one random candidate code.
func Generate() (string, error) {
	max := big.NewInt(int64(len(Alphabet)))
	code := make([]byte, CodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = Alphabet[n.Int64()]
	}
	return string(code), nil
}
