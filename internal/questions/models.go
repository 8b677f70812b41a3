package questions

import "fmt"

// Question is a single reading/naming item. Immutable once created
// except by deletion.
type Question struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// QuestionSet is a named, ordered batch of questions. Sets are the unit
// of bulk import and of deletion.
type QuestionSet struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// CategoryData holds the ordered sets of one category.
type CategoryData struct {
	Sets []QuestionSet `json:"sets"`
}

// AllQuestions is the entire persisted document: category key -> data.
// It is loaded and saved wholesale.
type AllQuestions map[string]CategoryData

// CategoryRapidReading is the only category whose bulk imports are
// chunked into bounded sets.
const CategoryRapidReading = "rapid-reading-3-min"

// CategoryGeneral is the default category for single-question adds.
const CategoryGeneral = "general"

// defaultCategories returns the two categories every document carries.
func defaultCategories() AllQuestions {
	return AllQuestions{
		CategoryGeneral:      {Sets: []QuestionSet{}},
		CategoryRapidReading: {Sets: []QuestionSet{}},
	}
}

// defaultSetName is the generated label for set n. The frontend is
// Chinese-language, so the literal matches what it displays.
func defaultSetName(n int) string {
	return fmt.Sprintf("测试集 %d", n)
}

func setID(n int) string {
	return fmt.Sprintf("set-%d", n)
}
