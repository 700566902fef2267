package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/aibuddy434-arch/SmartInterview/internal/models"
)

var ErrCandidateNotFound = errors.New("candidate not found")

type CandidateRepository struct {
	DB *gorm.DB
}

func (r *CandidateRepository) Create(candidate *models.Candidate) error {
	return r.DB.Create(candidate).Error
}

func (r *CandidateRepository) GetByID(id string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.DB.First(&candidate, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCandidateNotFound
	}
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}
