package calendar

import "time"

// weekdayRu localizes weekday names. Read-only after initialization.
var weekdayRu = map[time.Weekday]string{
	time.Monday:    "понедельник",
	time.Tuesday:   "вторник",
	time.Wednesday: "среда",
	time.Thursday:  "четверг",
	time.Friday:    "пятница",
	time.Saturday:  "суббота",
	time.Sunday:    "воскресенье",
}

// WeekdayRu returns the Russian weekday name.
func WeekdayRu(d time.Weekday) string {
	return weekdayRu[d]
}
