package conversationdomain

import (
	"errors"
	"net/mail"
	"regexp"
	"strconv"
	"strings"

	predictiondomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/domain"
)

var (
	ErrInvalidSelection = errors.New("invalid match selection")
	ErrInvalidScore     = errors.New("invalid score")
	ErrNegativeScore    = errors.New("score must not be negative")
	ErrInvalidEmail     = errors.New("invalid email address")
)

var selectionPattern = regexp.MustCompile(`^\d+$`)

// ParseSelection reads a 1-based match number and returns its 0-based index.
// Only plain digits are accepted, so signs such as "+1" are refused.
func ParseSelection(text string, n int) (int, error) {
	text = strings.TrimSpace(text)
	if !selectionPattern.MatchString(text) {
		return 0, ErrInvalidSelection
	}
	v, err := strconv.Atoi(text)
	if err != nil || v < 1 || v > n {
		return 0, ErrInvalidSelection
	}
	return v - 1, nil
}

var scorePattern = regexp.MustCompile(`^\s*(-?\d+)\s*-\s*(-?\d+)\s*$`)

// ParseScore reads "<home>-<away>". "-1-2" parses as -1 and 2 and is refused
// as negative rather than malformed.
func ParseScore(text string) (predictiondomain.Score, error) {
	m := scorePattern.FindStringSubmatch(text)
	if m == nil {
		return predictiondomain.Score{}, ErrInvalidScore
	}
	home, err := strconv.Atoi(m[1])
	if err != nil {
		return predictiondomain.Score{}, ErrInvalidScore
	}
	away, err := strconv.Atoi(m[2])
	if err != nil {
		return predictiondomain.Score{}, ErrInvalidScore
	}
	if home < 0 || away < 0 {
		return predictiondomain.Score{}, ErrNegativeScore
	}
	return predictiondomain.Score{Home: home, Away: away}, nil
}

// ValidateEmail accepts a bare address whose domain contains a dot and returns
// it trimmed.
func ValidateEmail(text string) (string, error) {
	text = strings.TrimSpace(text)
	addr, err := mail.ParseAddress(text)
	if err != nil || addr.Address != text || addr.Name != "" {
		return "", ErrInvalidEmail
	}
	at := strings.LastIndex(text, "@")
	domain := text[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return "", ErrInvalidEmail
	}
	return text, nil
}
