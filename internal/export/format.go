package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/GTDGit/todopro_api/internal/models"
	"github.com/GTDGit/todopro_api/internal/pricing"
)

// DisplayDateLayout is the dd/mm/yyyy hh:mm layout shown to customers.
const DisplayDateLayout = "02/01/2006 15:04"

// FormatDate renders a quote timestamp in UTC. Unparseable input yields "".
func FormatDate(createdAt string) string {
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return ""
	}
	return t.UTC().Format(DisplayDateLayout)
}

// FormatNumber prints a quantity the way a person would type it: 3, 2.5, 0.25.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Euro formats an amount as €0.00.
func Euro(v float64) string {
	return "€" + pricing.FormatMoney(v)
}

// DaysLabel returns "1 day", otherwise "N days" (including 0 and 0.5).
func DaysLabel(days float64) string {
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	return FormatNumber(days) + " " + unit
}

// ShortReference is the first eight characters of an id.
func ShortReference(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// MatchesSearch reports whether a quote matches a list search term: a
// case-insensitive substring of the client name or a substring of the
// formatted creation date.
func MatchesSearch(q models.Quote, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(q.ClientInfo.Name), strings.ToLower(term)) {
		return true
	}
	return strings.Contains(FormatDate(q.CreatedAt), term)
}
