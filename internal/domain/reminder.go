package domain

// Reminder is a dated note shown on the user's calendar. Date is a
// plain YYYY-MM-DD day with no time component.
type Reminder struct {
	ID      string `json:"id"`
	UserID  string `json:"-"`
	Date    string `json:"date"`
	Content string `json:"content"`
}
