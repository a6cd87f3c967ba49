package models

// UserSummary is the admin panel view of a single user.
type UserSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Joined      string `json:"joined"`
	Entries     int64  `json:"entries"`
	Moods       int64  `json:"moods"`
	TimeDisplay string `json:"time"`
}
