package dedupe

import (
	"sort"
	"strings"

	"github.com/bookline-dev/bookline/internal/model"
)

// Thresholds tuned against real vendor lists. Near-identical names ("Acme
// Corp" vs "Acme Corporation") surface as warnings for a human-reviewed
// merge; they are never a hard block.
const (
	nameGate       = 0.80
	aggregateGate  = 0.70
	minPhoneDigits = 7
)

// Candidate is the form data for a contact about to be created.
type Candidate struct {
	Name  string
	Email string
	Phone string
}

// Match pairs an existing contact with how closely it resembles the
// candidate and which fields drove the match.
type Match struct {
	Contact        model.Contact
	Score          float64
	MatchingFields []string
}

// Result lists probable duplicates, strongest first.
type Result struct {
	IsDuplicate bool
	Matches     []Match
}

// Detect compares a candidate against existing contacts and returns the
// probable duplicates sorted descending by score. Equal scores order by
// contact name so output is deterministic.
func Detect(existing []model.Contact, candidate Candidate) Result {
	var matches []Match
	for _, contact := range existing {
		if m, ok := match(contact, candidate); ok {
			matches = append(matches, m)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Contact.Name < matches[j].Contact.Name
	})

	return Result{IsDuplicate: len(matches) > 0, Matches: matches}
}

func match(contact model.Contact, candidate Candidate) (Match, bool) {
	var fields []string
	var total float64

	nameScore := Similarity(candidate.Name, contact.Name)
	if nameScore >= nameGate {
		fields = append(fields, "name")
		total += nameScore
	}

	// Email and phone only corroborate an already-matched name.
	if len(fields) > 0 {
		if emailsEqual(candidate.Email, contact.Email) {
			fields = append(fields, "email")
			total += 1.0
		}
		if phonesEqual(candidate.Phone, contact.Phone) {
			fields = append(fields, "phone")
			total += 1.0
		}
	}

	if len(fields) == 0 {
		return Match{}, false
	}

	avg := total / float64(len(fields))
	if avg < aggregateGate {
		return Match{}, false
	}
	return Match{Contact: contact, Score: avg, MatchingFields: fields}, true
}

func emailsEqual(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	return a != "" && a == b
}

func phonesEqual(a, b string) bool {
	da := digitsOnly(a)
	db := digitsOnly(b)
	return len(da) >= minPhoneDigits && da == db
}

func digitsOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
