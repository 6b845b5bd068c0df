package storage

import "path/filepath"

type ReviewRepo struct {
	path string
}

func NewReviewRepo(dir string) *ReviewRepo {
	return &ReviewRepo{path: filepath.Join(dir, ReviewsFile)}
}

type reviewsDoc struct {
	Reviews []ReviewRecord `json:"reviews"`
}

func (r *ReviewRepo) List() ([]ReviewRecord, error) {
	var doc reviewsDoc
	if _, err := readJSON(r.path, &doc); err != nil {
		return nil, err
	}
	return doc.Reviews, nil
}

func (r *ReviewRepo) Save(reviews []ReviewRecord) error {
	if reviews == nil {
		reviews = []ReviewRecord{}
	}
	return writeJSON(r.path, reviewsDoc{Reviews: reviews})
}
