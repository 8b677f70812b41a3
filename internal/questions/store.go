package questions

import (
	"encoding/json"
	"math/rand"
	"os"
	"sort"
	"sync"
)

// FileStore owns the single JSON document holding every category, set
// and question. All mutating operations run a whole-document
// load -> edit -> save cycle under one mutex, so concurrent handlers
// cannot lose each other's writes.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and normalizes the whole document. A missing or empty
// backing file yields the default categories; any other read or parse
// failure is returned as-is.
func (s *FileStore) Load() (AllQuestions, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save serializes the whole document, replacing prior content.
func (s *FileStore) Save(doc AllQuestions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(doc)
}

func (s *FileStore) load() (AllQuestions, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultCategories(), nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return defaultCategories(), nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	doc := defaultCategories()
	for category, rawData := range raw {
		doc[category] = normalizeCategory(rawData)
	}
	return doc, nil
}

func (s *FileStore) save(doc AllQuestions) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// normalizeCategory accepts either on-disk dialect and returns the
// current shape. Current dialect is an object with a "sets" array;
// legacy dialect is a bare array of questions, which becomes a single
// generated set. Anything else normalizes to an empty category.
func normalizeCategory(raw json.RawMessage) CategoryData {
	var cur struct {
		Sets []QuestionSet `json:"sets"`
	}
	if err := json.Unmarshal(raw, &cur); err == nil && cur.Sets != nil {
		sets := make([]QuestionSet, len(cur.Sets))
		for i, set := range cur.Sets {
			if set.ID == "" {
				set.ID = setID(i + 1)
			}
			if set.Name == "" {
				set.Name = defaultSetName(i + 1)
			}
			if set.Questions == nil {
				set.Questions = []Question{}
			}
			sets[i] = set
		}
		return CategoryData{Sets: sets}
	}

	var legacy []Question
	if err := json.Unmarshal(raw, &legacy); err == nil && legacy != nil {
		return CategoryData{Sets: []QuestionSet{{
			ID:        setID(1),
			Name:      defaultSetName(1),
			Questions: legacy,
		}}}
	}

	return CategoryData{Sets: []QuestionSet{}}
}

// Flatten returns the questions of one category (set order, then
// question order), or of every category when category is "".
func Flatten(doc AllQuestions, category string) []Question {
	keys := []string{category}
	if category == "" {
		keys = sortedKeys(doc)
	}
	out := []Question{}
	for _, k := range keys {
		for _, set := range doc[k].Sets {
			out = append(out, set.Questions...)
		}
	}
	return out
}

// NextID continues the global id sequence: one past the highest id
// anywhere in the document, or 1 for an empty store.
func NextID(doc AllQuestions) int {
	max := 0
	for _, q := range Flatten(doc, "") {
		if q.ID > max {
			max = q.ID
		}
	}
	return max + 1
}

// Categories lists every category key, sorted for a stable order.
func (s *FileStore) Categories() ([]string, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	return sortedKeys(doc), nil
}

// RandomSet picks one non-empty set from a category for a test run.
// ok is false when no set has questions.
func RandomSet(data CategoryData) (QuestionSet, bool) {
	var candidates []QuestionSet
	for _, set := range data.Sets {
		if len(set.Questions) > 0 {
			candidates = append(candidates, set)
		}
	}
	if len(candidates) == 0 {
		return QuestionSet{}, false
	}
	return candidates[rand.Intn(len(candidates))], true
}

func sortedKeys(doc AllQuestions) []string {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
