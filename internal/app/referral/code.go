package referral

import (
	"crypto/rand"
	"math/big"
	"net/url"
	"regexp"
	"strings"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 8
)

var startPayload = regexp.MustCompile(`^/start(?:@\w+)?\s+(\w+)`)

// NewCode draws an 8 character code from [A-Z0-9].
func NewCode() (string, error) {
	var b strings.Builder
	b.Grow(codeLength)
	limit := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// Link builds the chat deep link that starts the bot with code.
func Link(botUsername, code string) string {
	bot := strings.TrimPrefix(strings.TrimSpace(botUsername), "@")
	if bot == "" || code == "" {
		return ""
	}
	return "https://t.me/" + url.PathEscape(bot) + "?start=" + url.QueryEscape(code)
}

// ParseStartPayload extracts the referral code from a "/start CODE" message.
func ParseStartPayload(text string) (string, bool) {
	m := startPayload.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", false
	}
	return m[1], true
}
