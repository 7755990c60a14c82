package mapper

import (
	"encoding/json"

	"career-discovery-be/internal/entity"
	"career-discovery-be/internal/model"
	"career-discovery-be/pkg/counselor"
)

type ReportMapper struct{}

func NewReportMapper() *ReportMapper {
	return &ReportMapper{}
}

func (m *ReportMapper) ToEntity(r *model.CareerReport) (*entity.CareerReport, error) {
	if r == nil {
		return nil, nil
	}

	out := &entity.CareerReport{
		Id:        r.Id,
		SessionId: r.SessionId,
		ShareId:   r.ShareId,
		Snapshot: counselor.StudentSnapshot{
			Name:    r.StudentName,
			Grade:   r.StudentGrade,
			Board:   r.StudentBoard,
			Country: r.StudentCountry,
		},
		Shared:      r.Shared,
		Archived:    r.Archived,
		GeneratedAt: r.GeneratedAt,
	}

	if len(r.TopInterests) > 0 {
		if err := json.Unmarshal(r.TopInterests, &out.Snapshot.TopInterests); err != nil {
			return nil, err
		}
	}
	if len(r.KeyStrengths) > 0 {
		if err := json.Unmarshal(r.KeyStrengths, &out.Snapshot.KeyStrengths); err != nil {
			return nil, err
		}
	}
	if len(r.RecommendedPaths) > 0 {
		if err := json.Unmarshal(r.RecommendedPaths, &out.RecommendedPaths); err != nil {
			return nil, err
		}
	}
	if len(r.PersonalityBadge) > 0 {
		var badge counselor.PersonalityBadge
		if err := json.Unmarshal(r.PersonalityBadge, &badge); err != nil {
			return nil, err
		}
		out.PersonalityBadge = &badge
	}

	return out, nil
}

func (m *ReportMapper) ToModel(r *entity.CareerReport) (*model.CareerReport, error) {
	if r == nil {
		return nil, nil
	}

	out := &model.CareerReport{
		Id:             r.Id,
		SessionId:      r.SessionId,
		ShareId:        r.ShareId,
		StudentName:    r.Snapshot.Name,
		StudentGrade:   r.Snapshot.Grade,
		StudentBoard:   r.Snapshot.Board,
		StudentCountry: r.Snapshot.Country,
		Shared:         r.Shared,
		Archived:       r.Archived,
		GeneratedAt:    r.GeneratedAt,
	}

	var err error
	if out.TopInterests, err = json.Marshal(r.Snapshot.TopInterests); err != nil {
		return nil, err
	}
	if out.KeyStrengths, err = json.Marshal(r.Snapshot.KeyStrengths); err != nil {
		return nil, err
	}
	if out.RecommendedPaths, err = json.Marshal(r.RecommendedPaths); err != nil {
		return nil, err
	}
	if r.PersonalityBadge != nil {
		if out.PersonalityBadge, err = json.Marshal(r.PersonalityBadge); err != nil {
			return nil, err
		}
	}

	return out, nil
}
