package instagram

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// deviceNamespace is the UUIDv5 namespace for derived device identifiers.
var deviceNamespace = uuid.MustParse("5d4b85c2-9c1a-4f3e-b1f0-6a2e8d7c3b90")

// Device is the fingerprint presented to Instagram on login. It is derived
// deterministically from the account username so repeated logins for the same
// account always present the same device, which keeps the trust granted after
// a two-factor verification attached to it.
type Device struct {
	ID        string // android device ID, "android-" + 16 hex chars
	GUID      string
	PhoneID   string
	AdID      string
	UserAgent string
}

// GenerateDevice derives the device identity for a username
func GenerateDevice(username, userAgent string) *Device {
	seed := sha256.Sum256([]byte("igdraw:" + username))

	return &Device{
		ID:        "android-" + hex.EncodeToString(seed[:8]),
		GUID:      uuid.NewSHA1(deviceNamespace, []byte(username+":guid")).String(),
		PhoneID:   uuid.NewSHA1(deviceNamespace, []byte(username+":phone_id")).String(),
		AdID:      uuid.NewSHA1(deviceNamespace, []byte(username+":ad_id")).String(),
		UserAgent: userAgent,
	}
}
