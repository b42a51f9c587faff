// utils/tracking.go - Public tracking tokens
package utils

import (
	"strings"

	"github.com/google/uuid"
)

// TrackingIDPrefix is the journal prefix on every public tracking token.
const TrackingIDPrefix = "UJGSM"

// GenerateTrackingID returns a token of the form UJGSM-XXXXXXXX, where the
// suffix is the first 8 characters of a fresh UUID, uppercased. Uniqueness
// is enforced by the database constraint, not pre-checked here.
func GenerateTrackingID() string {
	token := strings.ToUpper(uuid.NewString()[:8])
	return TrackingIDPrefix + "-" + token
}
