package avatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

const gravatarBaseURL = "https://secure.gravatar.com/avatar/"

// Hash returns the gravatar key of an email address: the md5 of the
// lower-cased address, untrimmed.
func Hash(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(email)))
	return hex.EncodeToString(sum[:])
}

// GravatarURL builds the identicon-backed gravatar URL of an email.
// version busts browser caches when a user changes their avatar.
func GravatarURL(email string, version int) string {
	return fmt.Sprintf("%s%s?d=identicon&version=%d", gravatarBaseURL, Hash(email), version)
}
