package domain

// Todo is a single task record. The id is assigned by the database and is the
// only ordering the API ever serves.
type Todo struct {
	ID        int64  `json:"id" db:"id"`
	Text      string `json:"text" db:"text"`
	Completed bool   `json:"completed" db:"completed"`
}

// MaxTextLen is the schema bound on the text column.
const MaxTextLen = 255
