package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"strconv"
)

const (
	codeMin  = 100000
	codeSpan = 900000
)

// GenerateCode produces a 6-digit verification code drawn uniformly from
// [100000, 999999]. The minimum of 100000 rules out leading zeros.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(codeMin+n.Int64(), 10), nil
}

// CodeDigest returns the keyed HMAC-SHA256 digest of a verification code.
// Only the digest is ever persisted; the plaintext code goes out by mail.
func CodeDigest(code, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(code))
	return hex.EncodeToString(mac.Sum(nil))
}

// CodeDigestEqual compares two digests in constant time.
func CodeDigestEqual(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}
