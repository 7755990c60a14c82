package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"career-discovery-be/internal/apperr"
	"career-discovery-be/internal/dto"
	"career-discovery-be/internal/entity"
	"career-discovery-be/internal/pkg/logger"
	"career-discovery-be/internal/pkg/mailer"
	"career-discovery-be/internal/repository/contract"
	"career-discovery-be/internal/repository/specification"
	"career-discovery-be/pkg/events"

	pktNats "career-discovery-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sharedReportCacheTTL = 15 * time.Minute

// IReportService serves the report share surface: minting share links,
// resolving them publicly, and mailing them out.
type IReportService interface {
	CreateShareLink(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.CreateShareLinkResponse, error)
	GetByShareId(ctx context.Context, shareId uuid.UUID) (*dto.SharedReportResponse, error)
	EmailShareLink(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.EmailShareRequest) (*dto.CreateShareLinkResponse, error)
}

type reportService struct {
	reportRepo     contract.CareerReportRepository
	sessionRepo    contract.ConversationSessionRepository
	rdb            *redis.Client
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
	clientURL      string
}

func NewReportService(
	reportRepo contract.CareerReportRepository,
	sessionRepo contract.ConversationSessionRepository,
	rdb *redis.Client,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	clientURL string,
) IReportService {
	return &reportService{
		reportRepo:     reportRepo,
		sessionRepo:    sessionRepo,
		rdb:            rdb,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		logger:         log,
		clientURL:      clientURL,
	}
}

// CreateShareLink flips the report to shared and returns its link. Calling
// it again returns the same link; the share id never changes.
func (s *reportService) CreateShareLink(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.CreateShareLinkResponse, error) {
	report, err := s.ownedReport(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}

	if !report.Shared {
		report.Shared = true
		if err := s.reportRepo.Update(ctx, report); err != nil {
			return nil, err
		}

		if s.eventPublisher != nil {
			evt := events.ReportShared{
				SessionID: report.SessionId.String(),
				ShareID:   report.ShareId.String(),
				SharedAt:  time.Now(),
			}
			if err := s.eventPublisher.Publish(ctx, evt); err != nil {
				s.logger.Warn("report", "failed to publish share event", map[string]interface{}{
					"session_id": sessionId.String(),
					"error":      err.Error(),
				})
			}
		}
	}

	return &dto.CreateShareLinkResponse{
		ShareId:  report.ShareId,
		ShareURL: s.shareURL(report.ShareId),
	}, nil
}

// GetByShareId is the public read path. Resolved reports sit behind a short
// redis cache since a shared link tends to get opened in bursts.
func (s *reportService) GetByShareId(ctx context.Context, shareId uuid.UUID) (*dto.SharedReportResponse, error) {
	cacheKey := fmt.Sprintf("shared_report:%s", shareId)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp dto.SharedReportResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
		}
	}

	report, err := s.reportRepo.FindOne(ctx, specification.ByShareID{ShareID: shareId})
	if err != nil {
		return nil, err
	}
	if report == nil || !report.Shared {
		return nil, apperr.NotFound("shared report not found")
	}

	resp := &dto.SharedReportResponse{
		StudentSnapshot:  report.Snapshot,
		RecommendedPaths: report.RecommendedPaths,
		PersonalityBadge: report.PersonalityBadge,
		GeneratedAt:      report.GeneratedAt,
	}

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, data, sharedReportCacheTTL).Err(); err != nil {
				s.logger.Warn("report", "failed to cache shared report", map[string]interface{}{
					"share_id": shareId.String(),
					"error":    err.Error(),
				})
			}
		}
	}

	return resp, nil
}

// EmailShareLink mints (or reuses) the share link and mails it to the
// given address.
func (s *reportService) EmailShareLink(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.EmailShareRequest) (*dto.CreateShareLinkResponse, error) {
	link, err := s.CreateShareLink(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}

	report, err := s.ownedReport(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}

	if err := s.emailService.SendShareLink(req.Email, report.Snapshot.Name, link.ShareURL); err != nil {
		s.logger.Error("report", "failed to send share email", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return nil, err
	}

	return link, nil
}

func (s *reportService) ownedReport(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*entity.CareerReport, error) {
	session, err := s.sessionRepo.FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperr.NotFound("conversation not found")
	}

	report, err := s.reportRepo.FindOne(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.ByArchived{Archived: false},
	)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, apperr.NotFound("no report generated for this conversation yet")
	}
	return report, nil
}

func (s *reportService) shareURL(shareId uuid.UUID) string {
	return fmt.Sprintf("%s/report/%s", s.clientURL, shareId)
}
