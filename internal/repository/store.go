package repository

import (
	"errors"

	"careernav/internal/model"
)

// ErrNotFound reports absence of a record. Absence is an expected outcome in
// normal navigation, not an exceptional condition.
var ErrNotFound = errors.New("record not found")

// Store is the sole arbiter of identity and persistence for every entity.
// Orchestrators receive an implementation by injection; MemoryStore backs
// tests and the no-database deployment, GormStore backs PostgreSQL.
type Store interface {
	CreateUser(user *model.User) error
	GetUser(id int) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)

	CreateResume(resume *model.Resume) error
	GetResume(id int) (*model.Resume, error)
	GetLatestResume() (*model.Resume, error)
	UpdateResumeStatus(id int, status string) error

	CreateAnalysisResult(analysis *model.AnalysisResult) error
	GetAnalysisByResumeID(resumeID int) (*model.AnalysisResult, error)

	CreateRoadmapItems(items []model.RoadmapItem) ([]model.RoadmapItem, error)
	GetRoadmapItemsByAnalysisID(analysisID int) ([]model.RoadmapItem, error)
	UpdateRoadmapItemStatus(id int, status string) (*model.RoadmapItem, error)

	CreateInterview(interview *model.Interview) error
	GetInterview(id int) (*model.Interview, error)
	CreateInterviewMessage(message *model.InterviewMessage) error
	GetInterviewMessages(interviewID int) ([]model.InterviewMessage, error)

	CreatePortfolio(portfolio *model.Portfolio) error
	GetPortfolioByUserID(userID int) (*model.Portfolio, error)

	CreateApplication(application *model.Application) error
	GetApplicationsByUserID(userID int) ([]model.Application, error)

	CreateJob(job *model.Job) error
	SearchJobs(embedding []float32, topK int) ([]model.Job, error)
}
