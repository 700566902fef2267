package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/aibuddy434-arch/SmartInterview/internal/models"
)

var ErrReportNotFound = errors.New("report not found")

type ReportRepository struct {
	DB *gorm.DB
}

func (r *ReportRepository) Save(report *models.Report) error {
	return r.DB.Create(report).Error
}

func (r *ReportRepository) GetBySessionID(sessionID string) (*models.Report, error) {
	var report models.Report
	err := r.DB.First(&report, "session_id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}
