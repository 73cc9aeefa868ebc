package models

// Session type values a professional can assign to a weekday.
const (
	SessionClosed = "Closed"
	SessionSingle = "Single Session"
	SessionDouble = "Double Session"
)

// DaySchedule holds one weekday's opening configuration. Times are "HH:MM"
// 24-hour strings. Start2/End2 are only meaningful when Session is
// SessionDouble; either half missing means "no second interval".
type DaySchedule struct {
	Session string `bson:"session" json:"session"`
	Start   string `bson:"start,omitempty" json:"start,omitempty"`
	End     string `bson:"end,omitempty" json:"end,omitempty"`
	Start2  string `bson:"start2,omitempty" json:"start2,omitempty"`
	End2    string `bson:"end2,omitempty" json:"end2,omitempty"`
}

// OpeningHours maps lowercase weekday names ("sunday".."saturday") to that
// day's schedule. A missing key is treated the same as SessionClosed. Stray
// start/end fields on a closed day are ignored.
type OpeningHours map[string]DaySchedule
