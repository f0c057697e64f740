package callbacks

import (
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// PayloadString returns the trimmed callback payload.
func PayloadString(c tele.Context) string {
	return strings.TrimSpace(CallbackPayload(c))
}

// PayloadPair splits a payload like "Zomin|2-DMTT" into exactly two parts.
// Only the first separator counts, so the second part may itself contain it.
func PayloadPair(c tele.Context, sep string) (string, string, error) {
	return splitPair(CallbackPayload(c), sep)
}

func splitPair(p, sep string) (string, string, error) {
	if p == "" {
		return "", "", strconv.ErrSyntax
	}
	parts := strings.SplitN(p, sep, 2)
	if len(parts) != 2 {
		return "", "", strconv.ErrSyntax
	}
	return parts[0], parts[1], nil
}
