package questions

// DeleteQuestion removes the question with the given id, wherever it
// lives. Ids are globally unique, so the scan stops at the first match.
// Returns ErrQuestionNotFound if no set holds the id; the document is
// left untouched in that case.
func (s *FileStore) DeleteQuestion(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	for _, category := range sortedKeys(doc) {
		data := doc[category]
		for si := range data.Sets {
			for qi, q := range data.Sets[si].Questions {
				if q.ID != id {
					continue
				}
				qs := data.Sets[si].Questions
				data.Sets[si].Questions = append(qs[:qi], qs[qi+1:]...)
				doc[category] = data
				return s.save(doc)
			}
		}
	}
	return ErrQuestionNotFound
}

// DeleteSet removes one set, and all its questions with it, from a
// category. Deleting the only set leaves the category behind with an
// empty set list.
func (s *FileStore) DeleteSet(category, setID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	data, ok := doc[category]
	if !ok {
		return ErrCategoryNotFound
	}

	for i, set := range data.Sets {
		if set.ID != setID {
			continue
		}
		data.Sets = append(data.Sets[:i], data.Sets[i+1:]...)
		doc[category] = data
		return s.save(doc)
	}
	return ErrSetNotFound
}
