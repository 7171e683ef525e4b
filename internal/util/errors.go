// internal/util/errors.go
package util

import (
	"errors"
	"fmt"
)

// Error kinds. Every business error returned by the service wraps exactly one of these.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input provided")
)

// Specific application errors.
var (
	ErrUserNotFound     = fmt.Errorf("%w: user", ErrNotFound)
	ErrWalletNotFound   = fmt.Errorf("%w: wallet", ErrNotFound)
	ErrCurrencyNotFound = fmt.Errorf("%w: currency", ErrNotFound)
	ErrAssetNotFound    = fmt.Errorf("%w: asset", ErrNotFound)
	ErrOfferNotFound    = fmt.Errorf("%w: offer", ErrNotFound)

	ErrWalletNotOwned = fmt.Errorf("%w: user does not own wallet", ErrUnauthorized)
	ErrOfferNotOwned  = fmt.Errorf("%w: user does not own offer", ErrUnauthorized)

	ErrInsufficientBalance = fmt.Errorf("%w: insufficient balance", ErrForbidden)
	ErrDailyOfferLimit     = fmt.Errorf("%w: daily offer limit reached", ErrForbidden)
)

// IsError reports whether any error in err's chain matches target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
