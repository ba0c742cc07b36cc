package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

const gravatarBaseURL = "https://www.gravatar.com/avatar/"

// AvatarURL builds the Gravatar image URL for email. Only the URL is built;
// nothing is fetched.
func AvatarURL(email string, size int, fallback string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))

	query := url.Values{}
	query.Set("s", fmt.Sprint(size))
	query.Set("d", fallback)

	return gravatarBaseURL + hex.EncodeToString(sum[:]) + "?" + query.Encode()
}
