package query

import "strings"

// Params holds the raw, optional listing parameters as received from the client.
type Params struct {
	Region        string
	Gender        string
	Category      string
	PaymentMethod string
	AgeMin        string
	AgeMax        string
	StartDate     string
	EndDate       string
	Tags          string
	Search        string
	Sort          string
	Order         string
	Page          string
	Limit         string
}

// cleanText drops bytes that no text column can hold: NUL and invalid UTF-8.
// Equality and substring terms pass through it so every store sees the same
// term.
func cleanText(s string) string {
	return strings.ReplaceAll(strings.ToValidUTF8(s, ""), "\x00", "")
}
