package common

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Namespace derives a stable storage namespace from a client supplied id,
// so raw cookie values never end up as storage keys.
func Namespace(secret string, parts ...any) string {
	if len(parts) == 0 {
		return ""
	}
	mac := hmac.New(sha256.New, []byte(secret))
	for i, part := range parts {
		if i > 0 {
			mac.Write([]byte{0})
		}
		switch v := part.(type) {
		case []byte:
			mac.Write(v)
		case string:
			mac.Write([]byte(v))
		default:
			fmt.Fprint(mac, v)
		}
	}
	return hex.EncodeToString(mac.Sum(nil))
}
