package dashboard

import (
	"math/rand"
	"time"
)

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

var quotes = []Quote{
	{Text: "In the middle of difficulty lies opportunity.", Author: "Albert Einstein"},
	{Text: "You are allowed to be both a masterpiece and a work in progress at the same time.", Author: "Unknown"},
	{Text: "One small positive thought in the morning can change your whole day.", Author: "Unknown"},
	{Text: "Peace comes from within. Do not seek it without.", Author: "Buddha"},
	{Text: "You don't have to control your thoughts; you just have to stop letting them control you.", Author: "Dan Millman"},
}

// DailyQuote picks the quote of the day. Seeding by the day ordinal keeps
// the pick stable for everyone over a calendar day.
func DailyQuote(now time.Time) Quote {
	ordinal := dayOrdinal(now)
	rng := rand.New(rand.NewSource(ordinal))
	return quotes[rng.Intn(len(quotes))]
}

func dayOrdinal(t time.Time) int64 {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / 86400
}
