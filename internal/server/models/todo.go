package models

// Todo is the single persisted record type. Flag is 0 while the item is
// open and 1 once it is complete.
type Todo struct {
	ID     int64  `json:"id"`
	Flag   int    `json:"flag"`
	Plan   string `json:"plan"`
	Result string `json:"result"`
}
