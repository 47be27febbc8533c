package columns

import "strings"

// StatusValue is a recognised progress status.
type StatusValue string

const (
	NotStarted      StatusValue = "not started"
	Started         StatusValue = "started"
	Maintained      StatusValue = "maintained"
	Delayed         StatusValue = "delayed"
	OnTrack         StatusValue = "on track"
	NearlyCompleted StatusValue = "nearly completed"
	Abandoned       StatusValue = "abandoned"
	Completed       StatusValue = "completed"
)

var statusColors = map[StatusValue]string{
	NotStarted:      "#E0E0E0",
	Started:         "#FFF59D",
	Maintained:      "#B3E5FC",
	Delayed:         "#FFCC80",
	OnTrack:         "#C8E6C9",
	NearlyCompleted: "#A5D6A7",
	Abandoned:       "#EF9A9A",
	Completed:       "#66BB6A",
}

// Statuses lists every recognised status in progress order.
var Statuses = []StatusValue{NotStarted, Started, Maintained, Delayed, OnTrack, NearlyCompleted, Abandoned, Completed}

// ClassifyStatus maps a cell value onto a status, ignoring case and
// surrounding whitespace.
func ClassifyStatus(value string) (StatusValue, bool) {
	s := StatusValue(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := statusColors[s]; !ok {
		return "", false
	}
	return s, true
}

// Color returns the status color, or "" for an unknown status.
func (s StatusValue) Color() string {
	return statusColors[s]
}
