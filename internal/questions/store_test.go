package questions

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "questions.json"))
}

func writeDoc(t *testing.T, s *FileStore, raw string) {
	t.Helper()
	if err := os.WriteFile(s.path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	s := newTestStore(t)
	doc, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	for _, cat := range []string{"general", "rapid-reading-3-min"} {
		data, ok := doc[cat]
		if !ok {
			t.Fatalf("missing default category %q", cat)
		}
		if len(data.Sets) != 0 {
			t.Fatalf("expected empty sets for %q, got %d", cat, len(data.Sets))
		}
	}
	if len(doc) != 2 {
		t.Fatalf("expected exactly 2 categories, got %d", len(doc))
	}
}

func TestLoadEmptyFileYieldsDefaults(t *testing.T) {
	s := newTestStore(t)
	writeDoc(t, s, "")
	doc, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(doc) != 2 {
		t.Fatalf("expected 2 default categories, got %d", len(doc))
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	s := newTestStore(t)
	writeDoc(t, s, "{not json")
	if _, err := s.Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLegacyArrayMigratesToSingleSet(t *testing.T) {
	s := newTestStore(t)
	writeDoc(t, s, `{"general":[{"id":1,"text":"a"},{"id":2,"text":"b"},{"id":3,"text":"c"}]}`)

	doc, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	sets := doc["general"].Sets
	if len(sets) != 1 {
		t.Fatalf("expected 1 migrated set, got %d", len(sets))
	}
	if sets[0].ID != "set-1" {
		t.Fatalf("expected set-1, got %q", sets[0].ID)
	}
	if sets[0].Name != "测试集 1" {
		t.Fatalf("unexpected set name %q", sets[0].Name)
	}
	want := []Question{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}, {ID: 3, Text: "c"}}
	if !reflect.DeepEqual(sets[0].Questions, want) {
		t.Fatalf("migrated questions = %v, want %v", sets[0].Questions, want)
	}
}

func TestNormalizeFillsMissingSetFields(t *testing.T) {
	s := newTestStore(t)
	writeDoc(t, s, `{"general":{"sets":[{"questions":[{"id":5,"text":"x"}]},{"id":"custom","name":"Mine","questions":null}]}}`)

	doc, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	sets := doc["general"].Sets
	if sets[0].ID != "set-1" || sets[0].Name != "测试集 1" {
		t.Fatalf("defaults not filled: %+v", sets[0])
	}
	if sets[1].ID != "custom" || sets[1].Name != "Mine" {
		t.Fatalf("caller-supplied fields overwritten: %+v", sets[1])
	}
	if sets[1].Questions == nil {
		t.Fatal("nil questions should normalize to empty slice")
	}
}

func TestNormalizeJunkCategoryYieldsEmptySets(t *testing.T) {
	s := newTestStore(t)
	writeDoc(t, s, `{"general":"garbage","extra":42}`)

	doc, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(doc["general"].Sets) != 0 {
		t.Fatalf("expected empty sets, got %v", doc["general"].Sets)
	}
	if len(doc["extra"].Sets) != 0 {
		t.Fatalf("expected empty sets for extra, got %v", doc["extra"].Sets)
	}
}

func TestDefaultsOverlaidOnPartialDocument(t *testing.T) {
	s := newTestStore(t)
	writeDoc(t, s, `{"custom":{"sets":[]}}`)

	doc, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	for _, cat := range []string{"general", "rapid-reading-3-min", "custom"} {
		if _, ok := doc[cat]; !ok {
			t.Fatalf("missing category %q", cat)
		}
	}
}

func TestSaveLoadRoundTripIsStable(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.BulkImport("a\nb\nc", "general", "Week 1"); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(s.path)
	if err != nil {
		t.Fatal(err)
	}

	doc, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(doc); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(s.path)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Fatalf("round trip changed the document:\n%s\nvs\n%s", first, second)
	}
}

func TestFlattenKeepsSetThenQuestionOrder(t *testing.T) {
	doc := AllQuestions{
		"general": {Sets: []QuestionSet{
			{ID: "set-1", Name: "n1", Questions: []Question{{ID: 3, Text: "c"}, {ID: 1, Text: "a"}}},
			{ID: "set-2", Name: "n2", Questions: []Question{{ID: 2, Text: "b"}}},
		}},
	}
	got := Flatten(doc, "general")
	want := []Question{{ID: 3, Text: "c"}, {ID: 1, Text: "a"}, {ID: 2, Text: "b"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Flatten = %v, want %v", got, want)
	}
}

func TestFlattenAllSpansCategories(t *testing.T) {
	doc := AllQuestions{
		"b-cat": {Sets: []QuestionSet{{ID: "set-1", Questions: []Question{{ID: 2, Text: "y"}}}}},
		"a-cat": {Sets: []QuestionSet{{ID: "set-1", Questions: []Question{{ID: 1, Text: "x"}}}}},
	}
	got := Flatten(doc, "")
	if len(got) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(got))
	}
	// categories are walked in sorted key order
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestNextID(t *testing.T) {
	if got := NextID(AllQuestions{}); got != 1 {
		t.Fatalf("empty store NextID = %d, want 1", got)
	}
	doc := AllQuestions{
		"general": {Sets: []QuestionSet{{ID: "set-1", Questions: []Question{{ID: 7, Text: "x"}}}}},
		"other":   {Sets: []QuestionSet{{ID: "set-1", Questions: []Question{{ID: 12, Text: "y"}}}}},
	}
	if got := NextID(doc); got != 13 {
		t.Fatalf("NextID = %d, want 13", got)
	}
}

func TestRandomSetSkipsEmptySets(t *testing.T) {
	data := CategoryData{Sets: []QuestionSet{
		{ID: "set-1", Name: "empty", Questions: []Question{}},
		{ID: "set-2", Name: "full", Questions: []Question{{ID: 1, Text: "a"}}},
	}}

	for i := 0; i < 10; i++ {
		set, ok := RandomSet(data)
		if !ok {
			t.Fatal("expected a set")
		}
		if set.ID != "set-2" {
			t.Fatalf("picked empty set %q", set.ID)
		}
	}
}

func TestRandomSetNoCandidates(t *testing.T) {
	if _, ok := RandomSet(CategoryData{}); ok {
		t.Fatal("expected no set from an empty category")
	}
	empty := CategoryData{Sets: []QuestionSet{{ID: "set-1", Questions: []Question{}}}}
	if _, ok := RandomSet(empty); ok {
		t.Fatal("expected no set when every set is empty")
	}
}
