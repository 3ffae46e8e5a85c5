package repository

import (
	"math"
	"sort"
	"sync"
	"time"

	"careernav/internal/model"
)

// MemoryStore is the map-backed reference implementation. Records are never
// physically deleted; ids come from per-entity monotonic counters.
type MemoryStore struct {
	mu sync.RWMutex

	users             map[int]*model.User
	resumes           map[int]*model.Resume
	analyses          map[int]*model.AnalysisResult
	roadmapItems      map[int]*model.RoadmapItem
	interviews        map[int]*model.Interview
	interviewMessages map[int]*model.InterviewMessage
	portfolios        map[int]*model.Portfolio
	applications      map[int]*model.Application
	jobs              map[int]*model.Job

	nextID map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:             make(map[int]*model.User),
		resumes:           make(map[int]*model.Resume),
		analyses:          make(map[int]*model.AnalysisResult),
		roadmapItems:      make(map[int]*model.RoadmapItem),
		interviews:        make(map[int]*model.Interview),
		interviewMessages: make(map[int]*model.InterviewMessage),
		portfolios:        make(map[int]*model.Portfolio),
		applications:      make(map[int]*model.Application),
		jobs:              make(map[int]*model.Job),
		nextID:            make(map[string]int),
	}
}

func (s *MemoryStore) allocID(entity string) int {
	s.nextID[entity]++
	return s.nextID[entity]
}

func (s *MemoryStore) CreateUser(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.allocID("users")
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *MemoryStore) GetUser(id int) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *MemoryStore) GetUserByUsername(username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateResume(resume *model.Resume) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	resume.ID = s.allocID("resumes")
	if resume.CreatedAt.IsZero() {
		resume.CreatedAt = time.Now()
	}
	if resume.Status == "" {
		resume.Status = model.ResumeStatusPending
	}
	copied := *resume
	s.resumes[resume.ID] = &copied
	return nil
}

func (s *MemoryStore) GetResume(id int) (*model.Resume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resume, ok := s.resumes[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *resume
	return &copied, nil
}

func (s *MemoryStore) GetLatestResume() (*model.Resume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *model.Resume
	for _, resume := range s.resumes {
		if latest == nil || resume.ID > latest.ID {
			latest = resume
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (s *MemoryStore) UpdateResumeStatus(id int, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	resume, ok := s.resumes[id]
	if !ok {
		return ErrNotFound
	}
	resume.Status = status
	return nil
}

func (s *MemoryStore) CreateAnalysisResult(analysis *model.AnalysisResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	analysis.ID = s.allocID("analyses")
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now()
	}
	copied := *analysis
	s.analyses[analysis.ID] = &copied
	return nil
}

func (s *MemoryStore) GetAnalysisByResumeID(resumeID int) (*model.AnalysisResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, analysis := range s.analyses {
		if analysis.ResumeID == resumeID {
			copied := *analysis
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateRoadmapItems(items []model.RoadmapItem) ([]model.RoadmapItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := make([]model.RoadmapItem, 0, len(items))
	for _, item := range items {
		item.ID = s.allocID("roadmapItems")
		if item.CreatedAt.IsZero() {
			item.CreatedAt = time.Now()
		}
		if item.Status == "" {
			item.Status = model.RoadmapStatusPending
		}
		copied := item
		s.roadmapItems[item.ID] = &copied
		created = append(created, item)
	}
	return created, nil
}

func (s *MemoryStore) GetRoadmapItemsByAnalysisID(analysisID int) ([]model.RoadmapItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []model.RoadmapItem
	for _, item := range s.roadmapItems {
		if item.AnalysisID == analysisID {
			items = append(items, *item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (s *MemoryStore) UpdateRoadmapItemStatus(id int, status string) (*model.RoadmapItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.roadmapItems[id]
	if !ok {
		return nil, ErrNotFound
	}
	item.Status = status
	copied := *item
	return &copied, nil
}

func (s *MemoryStore) CreateInterview(interview *model.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	interview.ID = s.allocID("interviews")
	if interview.CreatedAt.IsZero() {
		interview.CreatedAt = time.Now()
	}
	copied := *interview
	s.interviews[interview.ID] = &copied
	return nil
}

func (s *MemoryStore) GetInterview(id int) (*model.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	interview, ok := s.interviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *interview
	return &copied, nil
}

func (s *MemoryStore) CreateInterviewMessage(message *model.InterviewMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	message.ID = s.allocID("interviewMessages")
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	copied := *message
	s.interviewMessages[message.ID] = &copied
	return nil
}

func (s *MemoryStore) GetInterviewMessages(interviewID int) ([]model.InterviewMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var messages []model.InterviewMessage
	for _, message := range s.interviewMessages {
		if message.InterviewID == interviewID {
			messages = append(messages, *message)
		}
	}
	// Ids are monotonic, so they break ties between equal timestamps.
	sort.Slice(messages, func(i, j int) bool {
		if !messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].CreatedAt.Before(messages[j].CreatedAt)
		}
		return messages[i].ID < messages[j].ID
	})
	return messages, nil
}

func (s *MemoryStore) CreatePortfolio(portfolio *model.Portfolio) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	portfolio.ID = s.allocID("portfolios")
	if portfolio.CreatedAt.IsZero() {
		portfolio.CreatedAt = time.Now()
	}
	if portfolio.Theme == "" {
		portfolio.Theme = "minimal"
	}
	copied := *portfolio
	s.portfolios[portfolio.ID] = &copied
	return nil
}

func (s *MemoryStore) GetPortfolioByUserID(userID int) (*model.Portfolio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, portfolio := range s.portfolios {
		if portfolio.UserID == userID {
			copied := *portfolio
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateApplication(application *model.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	application.ID = s.allocID("applications")
	if application.Date.IsZero() {
		application.Date = time.Now()
	}
	if application.Status == "" {
		application.Status = "Applied"
	}
	copied := *application
	s.applications[application.ID] = &copied
	return nil
}

func (s *MemoryStore) GetApplicationsByUserID(userID int) ([]model.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var apps []model.Application
	for _, app := range s.applications {
		if app.UserID == userID {
			apps = append(apps, *app)
		}
	}
	sort.Slice(apps, func(i, j int) bool {
		if !apps[i].Date.Equal(apps[j].Date) {
			return apps[i].Date.After(apps[j].Date)
		}
		return apps[i].ID > apps[j].ID
	})
	return apps, nil
}

func (s *MemoryStore) CreateJob(job *model.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job.ID = s.allocID("jobs")
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	copied := *job
	s.jobs[job.ID] = &copied
	return nil
}

// SearchJobs ranks seeded postings by cosine distance to the query embedding.
// Linear scan, same contract as the pgvector-backed implementation.
func (s *MemoryStore) SearchJobs(embedding []float32, topK int) ([]model.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	type scored struct {
		job      model.Job
		distance float64
	}
	var results []scored
	for _, job := range s.jobs {
		results = append(results, scored{
			job:      *job,
			distance: cosineDistance(embedding, job.Embedding.Slice()),
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].distance < results[j].distance
	})
	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	jobs := make([]model.Job, 0, len(results))
	for _, r := range results {
		jobs = append(jobs, r.job)
	}
	return jobs, nil
}

func cosineDistance(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return math.MaxFloat64
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return math.MaxFloat64
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}

var _ Store = (*MemoryStore)(nil)
