package tokens

import (
	"time"

	"github.com/dmitrijs2005/coursehub/internal/common"
)

// IsExpired reports whether the access token must be refreshed at now:
// true iff now + common.ExpiryBuffer >= exp. A token that cannot be decoded
// counts as expired.
func IsExpired(token string, now time.Time) bool {
	claims, err := Decode(token)
	if err != nil {
		return true
	}
	return !now.Add(common.ExpiryBuffer).Before(claims.Expiry())
}

// IsRefreshExpired reports whether the refresh token is past its exp at
// now. No buffer applies. A token that cannot be decoded counts as expired.
func IsRefreshExpired(token string, now time.Time) bool {
	claims, err := Decode(token)
	if err != nil {
		return true
	}
	return !now.Before(claims.Expiry())
}
