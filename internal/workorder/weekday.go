package workorder

import "fmt"

// Weekdays lists weekday names in processing order. The scheduling week
// runs Monday-first; Monday's export establishes the baseline every later
// day is compared against.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeekdayIndex converts a weekday name to its position in Weekdays.
func WeekdayIndex(name string) (int, error) {
	for i, d := range Weekdays {
		if d == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("workorder: unknown weekday %q", name)
}
