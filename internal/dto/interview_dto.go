package dto

import "careernav/internal/model"

type CreateInterviewRequest struct {
	ResumeID int `json:"resumeId"`
	UserID   int `json:"userId"`
}

type AddMessageRequest struct {
	Content string `json:"content"`
}

type InterviewResponse struct {
	model.Interview
	Messages []model.InterviewMessage `json:"messages"`
}
