package types

// ActivityFilter selects activity entries. Empty or "all" values match everything.
type ActivityFilter struct {
	Type   string `json:"type"`
	Role   string `json:"role"`
	Search string `json:"search"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}
