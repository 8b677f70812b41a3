package questions

import (
	"fmt"
	"strings"
)

// rapidSetSize bounds the sets produced by a rapid-reading bulk import.
// The timed 3-minute test loads one whole set, so sets are kept small
// enough to finish.
const rapidSetSize = 100

// AddQuestion appends a single question to the first set of a category,
// creating the category and an initial set as needed. The new question
// continues the global id sequence.
func (s *FileStore) AddQuestion(text, category string) (Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category == "" {
		category = CategoryGeneral
	}
	doc, err := s.load()
	if err != nil {
		return Question{}, err
	}
	data, ok := doc[category]
	if !ok {
		data = CategoryData{Sets: []QuestionSet{}}
	}
	if len(data.Sets) == 0 {
		data.Sets = append(data.Sets, QuestionSet{
			ID:        setID(1),
			Name:      defaultSetName(1),
			Questions: []Question{},
		})
	}

	q := Question{ID: NextID(doc), Text: text}
	data.Sets[0].Questions = append(data.Sets[0].Questions, q)
	doc[category] = data

	if err := s.save(doc); err != nil {
		return Question{}, err
	}
	return q, nil
}

// BulkImport splits raw text into one question per non-blank line and
// appends the result to the category as new sets. Imports into the
// rapid-reading category above rapidSetSize lines are chunked into sets
// of at most rapidSetSize; every other import lands in a single set.
// Returns the number of questions inserted.
func (s *FileStore) BulkImport(raw, category, setName string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := splitLines(raw)
	if len(lines) == 0 {
		return 0, ErrEmptyContent
	}

	doc, err := s.load()
	if err != nil {
		return 0, err
	}
	data, ok := doc[category]
	if !ok {
		data = CategoryData{Sets: []QuestionSet{}}
	}

	nextID := NextID(doc)
	nextSet := len(data.Sets) + 1
	name := strings.TrimSpace(setName)

	chunked := category == CategoryRapidReading && len(lines) > rapidSetSize
	chunkSize := len(lines)
	if chunked {
		chunkSize = rapidSetSize
	}

	inserted := 0
	for start := 0; start < len(lines); start += chunkSize {
		end := start + chunkSize
		if end > len(lines) {
			end = len(lines)
		}

		qs := make([]Question, 0, end-start)
		for _, text := range lines[start:end] {
			qs = append(qs, Question{ID: nextID, Text: text})
			nextID++
		}

		set := QuestionSet{
			ID:        setID(nextSet),
			Name:      resolveSetName(name, nextSet, chunked),
			Questions: qs,
		}
		data.Sets = append(data.Sets, set)
		nextSet++
		inserted += len(qs)
	}

	doc[category] = data
	if err := s.save(doc); err != nil {
		return 0, err
	}
	return inserted, nil
}

// resolveSetName picks the label for set number n: the caller's name
// (suffixed with n when the import was chunked), or the generated
// default when no name was given.
func resolveSetName(name string, n int, chunked bool) string {
	if name == "" {
		return defaultSetName(n)
	}
	if chunked {
		return fmt.Sprintf("%s %d", name, n)
	}
	return name
}

func splitLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}
