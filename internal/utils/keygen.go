package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// RandomBase36 returns n random characters from [0-9a-z].
func RandomBase36(n int) (string, error) {
	max := big.NewInt(int64(len(base36)))
	b := make([]byte, n)
	for i := range b {
		v, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = base36[v.Int64()]
	}
	return string(b), nil
}

// GenerateQuoteID returns an id of the form <unix millis>-<9 base36 chars>.
// Quotes and contracts share this format so existing records keep sorting by
// creation time.
func GenerateQuoteID(ts time.Time) string {
	suffix, err := RandomBase36(9)
	if err != nil {
		suffix = uuid.New().String()[:9]
	}
	return strconv.FormatInt(ts.UnixMilli(), 10) + "-" + suffix
}

// GenerateID returns a random UUID string for leads, templates and notifications.
func GenerateID() string {
	return uuid.New().String()
}
