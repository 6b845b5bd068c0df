package storage

import "path/filepath"

type SubjectRepo struct {
	path string
}

func NewSubjectRepo(dir string) *SubjectRepo {
	return &SubjectRepo{path: filepath.Join(dir, SubjectsFile)}
}

type subjectsDoc struct {
	Subjects []SubjectRecord `json:"subjects"`
}

// List returns the registry in file order.
func (r *SubjectRepo) List() ([]SubjectRecord, error) {
	var doc subjectsDoc
	if _, err := readJSON(r.path, &doc); err != nil {
		return nil, err
	}
	return doc.Subjects, nil
}

func (r *SubjectRepo) Save(subjects []SubjectRecord) error {
	if subjects == nil {
		subjects = []SubjectRecord{}
	}
	return writeJSON(r.path, subjectsDoc{Subjects: subjects})
}
