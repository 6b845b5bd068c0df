package storage

import "path/filepath"

type ExamRepo struct {
	path string
}

func NewExamRepo(dir string) *ExamRepo {
	return &ExamRepo{path: filepath.Join(dir, ExamsFile)}
}

type examsDoc struct {
	Exams []ExamRecord `json:"exams"`
}

func (r *ExamRepo) List() ([]ExamRecord, error) {
	var doc examsDoc
	if _, err := readJSON(r.path, &doc); err != nil {
		return nil, err
	}
	return doc.Exams, nil
}

func (r *ExamRepo) Save(exams []ExamRecord) error {
	if exams == nil {
		exams = []ExamRecord{}
	}
	for i := range exams {
		if exams[i].Topics == nil {
			exams[i].Topics = []string{}
		}
	}
	return writeJSON(r.path, examsDoc{Exams: exams})
}
