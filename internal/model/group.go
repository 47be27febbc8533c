package model

// Group is a bucket of records sharing a group key, in first-seen order.
type Group struct {
	Key     string
	Title   string
	Records []Record
}
