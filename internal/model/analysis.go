package model

import (
	"time"

	"gorm.io/datatypes"
)

type AnalysisResult struct {
	ID             int   `gorm:"primaryKey;autoIncrement" json:"id"`
	ResumeID       int   `gorm:"index" json:"resumeId"`
	ReadinessScore int   `json:"readinessScore"`
	ATSScore       int   `gorm:"column:ats_score" json:"atsScore"`
	// Granular sub-scores, defaulted to 0 when the model omits them.
	ResumeQuality      int `json:"resumeQuality"`
	SkillMatch         int `json:"skillMatch"`
	ProjectStrength    int `json:"projectStrength"`
	InterviewReadiness int `json:"interviewReadiness"`

	Feedback         string         `gorm:"type:text" json:"feedback"`
	RewrittenContent string         `gorm:"type:text" json:"rewrittenContent"`
	AnalysisData     datatypes.JSON `json:"analysisData"` // free-form bag, notably addedKeywords
	Strengths        []string       `gorm:"serializer:json" json:"strengths"`
	Gaps             []string       `gorm:"serializer:json" json:"gaps"`
	CreatedAt        time.Time      `json:"createdAt"`
}
