package store

// Category is one of the fixed topic labels used to pick which reference
// document augments a prompt.
type Category string

const (
	CategoryEvent     Category = "イベント"
	CategoryStaffRule Category = "スタッフルール"
	CategoryPayroll   Category = "給与・勤務"

	// CategoryNone marks a session whose question has not been classified yet.
	CategoryNone Category = ""
)

// DefaultCategory is substituted whenever classification fails or answers
// outside the known set.
const DefaultCategory = CategoryEvent

// Categories lists every known label.
func Categories() []Category {
	return []Category{CategoryEvent, CategoryStaffRule, CategoryPayroll}
}

// ParseCategory maps raw text onto a known Category. The second return value
// is false for anything outside the set.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryEvent, CategoryStaffRule, CategoryPayroll:
		return Category(s), true
	}
	return CategoryNone, false
}

// Session represents the active dialogue state of one user in memory.
type Session struct {
	UserID         string   `json:"user_id"`
	InQuestionMode bool     `json:"in_question_mode"`
	Category       Category `json:"category"`
}
