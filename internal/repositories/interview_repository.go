package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/aibuddy434-arch/SmartInterview/internal/models"
)

var (
	ErrInterviewNotFound = errors.New("interview config not found")
	ErrNotOwner          = errors.New("interview config belongs to another user")
)

type InterviewRepository struct {
	DB *gorm.DB
}

func (r *InterviewRepository) Create(cfg *models.InterviewConfig) error {
	return r.DB.Create(cfg).Error
}

// GetByID loads a config with its preset questions in progression order.
func (r *InterviewRepository) GetByID(id string) (*models.InterviewConfig, error) {
	var cfg models.InterviewConfig
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&cfg, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInterviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetByShareToken resolves a shareable invite link to its config.
func (r *InterviewRepository) GetByShareToken(token string) (*models.InterviewConfig, error) {
	var cfg models.InterviewConfig
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&cfg, "share_token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInterviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *InterviewRepository) ListByOwner(userID string) ([]models.InterviewConfig, error) {
	var configs []models.InterviewConfig
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("created_by = ?", userID).Order("created_at DESC").Find(&configs).Error
	return configs, err
}

func (r *InterviewRepository) requireOwner(id, userID string) (*models.InterviewConfig, error) {
	cfg, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cfg.CreatedBy != userID {
		return nil, ErrNotOwner
	}
	return cfg, nil
}

func (r *InterviewRepository) Update(id, userID string, updates map[string]interface{}) (*models.InterviewConfig, error) {
	cfg, err := r.requireOwner(id, userID)
	if err != nil {
		return nil, err
	}
	if err := r.DB.Model(cfg).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// Deactivate hides a config from candidates without destroying the sessions
// already recorded against it.
func (r *InterviewRepository) Deactivate(id, userID string) error {
	cfg, err := r.requireOwner(id, userID)
	if err != nil {
		return err
	}
	return r.DB.Model(cfg).Update("is_active", false).Error
}

func (r *InterviewRepository) AddQuestions(id, userID string, questions []models.PresetQuestion) (*models.InterviewConfig, error) {
	cfg, err := r.requireOwner(id, userID)
	if err != nil {
		return nil, err
	}
	base := len(cfg.Questions)
	for i := range questions {
		questions[i].InterviewConfigID = cfg.ID
		questions[i].Position = base + i
	}
	if err := r.DB.Create(&questions).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(cfg).Update("number_of_questions", base+len(questions)).Error; err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// Stats summarises candidate traffic for one config.
type InterviewStats struct {
	TotalSessions     int64 `json:"total_sessions"`
	CompletedSessions int64 `json:"completed_sessions"`
	InProgress        int64 `json:"in_progress_sessions"`
}

func (r *InterviewRepository) Stats(id, userID string) (*InterviewStats, error) {
	if _, err := r.requireOwner(id, userID); err != nil {
		return nil, err
	}
	var stats InterviewStats
	base := r.DB.Model(&models.InterviewSession{}).Where("interview_config_id = ?", id)
	if err := base.Session(&gorm.Session{}).Count(&stats.TotalSessions).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", models.StatusCompleted).Count(&stats.CompletedSessions).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", models.StatusInProgress).Count(&stats.InProgress).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
