package copilot

import "strings"

// degradePhrases mark provider failures that mean "try again later" rather
// than "something is broken".
var degradePhrases = []string{
	"429",
	"quota",
	"billing",
	"insufficient",
	"rate limit",
	"throttl",
	"resource has been exhausted",
}

// IsDegraded reports whether err describes a rate, quota or billing
// condition that should fall back to the offline answer.
func IsDegraded(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, p := range degradePhrases {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
