package repository

import (
	"errors"
	"time"

	"careernav/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// GormStore implements Store on PostgreSQL.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates every entity table.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(
		&model.User{},
		&model.Resume{},
		&model.AnalysisResult{},
		&model.RoadmapItem{},
		&model.Interview{},
		&model.InterviewMessage{},
		&model.Portfolio{},
		&model.Application{},
		&model.Job{},
	)
}

func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStore) CreateUser(user *model.User) error {
	return s.db.Create(user).Error
}

func (s *GormStore) GetUser(id int) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, "username = ?", username).Error; err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *GormStore) CreateResume(resume *model.Resume) error {
	if resume.Status == "" {
		resume.Status = model.ResumeStatusPending
	}
	return s.db.Create(resume).Error
}

func (s *GormStore) GetResume(id int) (*model.Resume, error) {
	var resume model.Resume
	if err := s.db.First(&resume, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &resume, nil
}

func (s *GormStore) GetLatestResume() (*model.Resume, error) {
	var resume model.Resume
	if err := s.db.Order("created_at DESC, id DESC").First(&resume).Error; err != nil {
		return nil, translateErr(err)
	}
	return &resume, nil
}

func (s *GormStore) UpdateResumeStatus(id int, status string) error {
	result := s.db.Model(&model.Resume{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) CreateAnalysisResult(analysis *model.AnalysisResult) error {
	return s.db.Create(analysis).Error
}

func (s *GormStore) GetAnalysisByResumeID(resumeID int) (*model.AnalysisResult, error) {
	var analysis model.AnalysisResult
	if err := s.db.First(&analysis, "resume_id = ?", resumeID).Error; err != nil {
		return nil, translateErr(err)
	}
	return &analysis, nil
}

func (s *GormStore) CreateRoadmapItems(items []model.RoadmapItem) ([]model.RoadmapItem, error) {
	if len(items) == 0 {
		return []model.RoadmapItem{}, nil
	}
	for i := range items {
		if items[i].Status == "" {
			items[i].Status = model.RoadmapStatusPending
		}
	}
	if err := s.db.Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) GetRoadmapItemsByAnalysisID(analysisID int) ([]model.RoadmapItem, error) {
	var items []model.RoadmapItem
	err := s.db.Where("analysis_id = ?", analysisID).
		Order("item_order ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (s *GormStore) UpdateRoadmapItemStatus(id int, status string) (*model.RoadmapItem, error) {
	var item model.RoadmapItem
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}
	item.Status = status
	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *GormStore) CreateInterview(interview *model.Interview) error {
	return s.db.Create(interview).Error
}

func (s *GormStore) GetInterview(id int) (*model.Interview, error) {
	var interview model.Interview
	if err := s.db.First(&interview, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &interview, nil
}

func (s *GormStore) CreateInterviewMessage(message *model.InterviewMessage) error {
	return s.db.Create(message).Error
}

func (s *GormStore) GetInterviewMessages(interviewID int) ([]model.InterviewMessage, error) {
	var messages []model.InterviewMessage
	err := s.db.Where("interview_id = ?", interviewID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

func (s *GormStore) CreatePortfolio(portfolio *model.Portfolio) error {
	if portfolio.Theme == "" {
		portfolio.Theme = "minimal"
	}
	return s.db.Create(portfolio).Error
}

func (s *GormStore) GetPortfolioByUserID(userID int) (*model.Portfolio, error) {
	var portfolio model.Portfolio
	if err := s.db.First(&portfolio, "user_id = ?", userID).Error; err != nil {
		return nil, translateErr(err)
	}
	return &portfolio, nil
}

func (s *GormStore) CreateApplication(application *model.Application) error {
	if application.Status == "" {
		application.Status = "Applied"
	}
	if application.Date.IsZero() {
		application.Date = time.Now()
	}
	return s.db.Create(application).Error
}

func (s *GormStore) GetApplicationsByUserID(userID int) ([]model.Application, error) {
	var apps []model.Application
	err := s.db.Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&apps).Error
	return apps, err
}

func (s *GormStore) CreateJob(job *model.Job) error {
	return s.db.Create(job).Error
}

func (s *GormStore) SearchJobs(embedding []float32, topK int) ([]model.Job, error) {
	var jobs []model.Job
	vec := pgvector.NewVector(embedding)
	err := s.db.Raw(`
        SELECT *, embedding <-> ? AS distance
        FROM jobs
        ORDER BY embedding <-> ?
        LIMIT ?
    `, vec, vec, topK).Scan(&jobs).Error
	return jobs, err
}

var _ Store = (*GormStore)(nil)
