package dto

import (
	"time"

	"career-discovery-be/pkg/counselor"

	"github.com/google/uuid"
)

// ReportDTO is the report as clients see it. ShareId is present only once a
// share link has been created for the report.
type ReportDTO struct {
	StudentSnapshot  counselor.StudentSnapshot   `json:"studentSnapshot"`
	RecommendedPaths []counselor.CareerPath      `json:"recommendedPaths"`
	PersonalityBadge *counselor.PersonalityBadge `json:"personalityBadge,omitempty"`
	GeneratedAt      time.Time                   `json:"generatedAt"`
	ShareId          *uuid.UUID                  `json:"shareId,omitempty"`
}

// SharedReportResponse is the public shape served by the share link. It
// carries no session or user identifiers.
type SharedReportResponse struct {
	StudentSnapshot  counselor.StudentSnapshot   `json:"studentSnapshot"`
	RecommendedPaths []counselor.CareerPath      `json:"recommendedPaths"`
	PersonalityBadge *counselor.PersonalityBadge `json:"personalityBadge,omitempty"`
	GeneratedAt      time.Time                   `json:"generatedAt"`
}

type CreateShareLinkResponse struct {
	ShareId  uuid.UUID `json:"share_id"`
	ShareURL string    `json:"share_url"`
}

type EmailShareRequest struct {
	Email string `json:"email" validate:"required,email"`
}
