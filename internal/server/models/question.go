package models

import (
	"database/sql"
	"strconv"
)

// Question belongs to exactly one chapter. Title is the natural key across
// all chapters; QuestionNumber is derived as "<chapter>.<position>".
type Question struct {
	ID             int64
	Title          string
	Description    sql.NullString
	QuestionNumber sql.NullString
	TotalScore     float64
	SortOrder      sql.NullInt64
	ChapterID      int64
}

// QuestionNumber formats the display number of the question at 1-based
// position questionOrder inside the chapter at position chapterOrder.
func QuestionNumber(chapterOrder, questionOrder int) string {
	return strconv.Itoa(chapterOrder) + "." + strconv.Itoa(questionOrder)
}
