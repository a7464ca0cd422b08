package asks

import "strings"

const CalendarReply = "Event has been added to your calendar!"

var calendarKeywords = []string{
	"calendar",
	"calender",
	"meet",
	"meeting",
	"schedule",
	"event",
	"appointment",
	"create",
}

// isCalendarRequest reports whether query starts with a calendar keyword.
func isCalendarRequest(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	for _, keyword := range calendarKeywords {
		if strings.HasPrefix(query, keyword) {
			return true
		}
	}
	return false
}
