package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"careernav/internal/dto"
	"careernav/internal/model"
	"careernav/internal/repository"
	"careernav/internal/service"
	"careernav/internal/util"
)

// InterviewUsecase runs turn-taking mock interviews. Context is rebuilt by
// replaying the full transcript every turn; the message log is the sole
// source of conversational truth.
type InterviewUsecase struct {
	store repository.Store
	llm   service.Generator
}

func NewInterviewUsecase(store repository.Store, llm service.Generator) *InterviewUsecase {
	return &InterviewUsecase{store: store, llm: llm}
}

// Create persists an interview and seeds one "ai" welcome message grounded
// in the resume. A missing resume, or a failed opener generation, leaves the
// interview with zero messages rather than failing creation.
func (uc *InterviewUsecase) Create(ctx context.Context, resumeID, userID int) (*model.Interview, error) {
	interview := &model.Interview{ResumeID: resumeID, UserID: userID}
	if err := uc.store.CreateInterview(interview); err != nil {
		return nil, fmt.Errorf("create interview: %w", err)
	}

	resume, err := uc.store.GetResume(resumeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("interview %d created without welcome: resume %d not found", interview.ID, resumeID)
			return interview, nil
		}
		return nil, err
	}

	welcome, err := uc.llm.Generate(ctx, service.GenerateRequest{
		Prompt: buildWelcomePrompt(resume.TargetRole, excerpt(resume.Content, 2000)),
	})
	if err != nil {
		log.Printf("interview %d created without welcome: %v", interview.ID, err)
		return interview, nil
	}

	message := &model.InterviewMessage{
		InterviewID: interview.ID,
		Role:        model.MessageRoleAI,
		Content:     strings.TrimSpace(welcome),
	}
	if err := uc.store.CreateInterviewMessage(message); err != nil {
		return nil, fmt.Errorf("create welcome message: %w", err)
	}
	return interview, nil
}

// AddMessage runs one turn: the user message is persisted first, then the
// full history is replayed into a single prompt and the reply appended.
func (uc *InterviewUsecase) AddMessage(ctx context.Context, interviewID int, content string) (*model.InterviewMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, util.NewFormError("content is required", map[string]string{"content": "required"})
	}

	interview, err := uc.store.GetInterview(interviewID)
	if err != nil {
		return nil, err
	}

	userMessage := &model.InterviewMessage{
		InterviewID: interview.ID,
		Role:        model.MessageRoleUser,
		Content:     content,
	}
	if err := uc.store.CreateInterviewMessage(userMessage); err != nil {
		return nil, fmt.Errorf("create user message: %w", err)
	}

	history, err := uc.store.GetInterviewMessages(interview.ID)
	if err != nil {
		return nil, err
	}

	targetRole := ""
	if resume, err := uc.store.GetResume(interview.ResumeID); err == nil {
		targetRole = resume.TargetRole
	}

	reply, err := uc.llm.Generate(ctx, service.GenerateRequest{
		Prompt: buildTurnPrompt(targetRole, history, content),
	})
	if err != nil {
		return nil, err
	}

	aiMessage := &model.InterviewMessage{
		InterviewID: interview.ID,
		Role:        model.MessageRoleAI,
		Content:     strings.TrimSpace(reply),
	}
	if err := uc.store.CreateInterviewMessage(aiMessage); err != nil {
		return nil, fmt.Errorf("create ai message: %w", err)
	}
	return aiMessage, nil
}

// Get loads an interview together with its ordered transcript.
func (uc *InterviewUsecase) Get(interviewID int) (*dto.InterviewResponse, error) {
	interview, err := uc.store.GetInterview(interviewID)
	if err != nil {
		return nil, err
	}
	messages, err := uc.store.GetInterviewMessages(interview.ID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []model.InterviewMessage{}
	}
	return &dto.InterviewResponse{Interview: *interview, Messages: messages}, nil
}

func excerpt(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
