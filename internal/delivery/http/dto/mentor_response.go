package dto

import (
	"empedi/internal/domain/mentor"
	"empedi/internal/usecase"

	"github.com/google/uuid"
)

type MentorUserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatarUrl"`
}

type MentorProfileResponse struct {
	ID              uuid.UUID          `json:"id"`
	User            MentorUserResponse `json:"user"`
	About           string             `json:"about"`
	Industry        string             `json:"industry"`
	CurrentPosition string             `json:"currentPosition"`
	CurrentCompany  string             `json:"currentCompany"`
	ExperienceYears int                `json:"experienceYears"`
	QuickCallPrice  float64            `json:"quickCallPrice"`
	PriceType       string             `json:"priceType"`
	SessionDuration int                `json:"sessionDuration"`
	Rating          float64            `json:"rating"`
	SkillIDs        []uuid.UUID        `json:"skillIds"`
}

type MentorProfileDetailResponse struct {
	MentorProfileResponse
	Recommendations usecase.MentorRecommendations `json:"recommendations"`
}

func NewMentorProfileResponse(p mentor.Profile) MentorProfileResponse {
	skills := p.SkillIDs
	if skills == nil {
		skills = []uuid.UUID{}
	}
	return MentorProfileResponse{
		ID:              p.ID,
		User:            MentorUserResponse{ID: p.UserID, Name: p.UserName, AvatarURL: p.UserAvatarURL},
		About:           p.About,
		Industry:        p.Industry,
		CurrentPosition: p.CurrentPosition,
		CurrentCompany:  p.CurrentCompany,
		ExperienceYears: p.ExperienceYears,
		QuickCallPrice:  p.QuickCallPrice,
		PriceType:       p.PriceType,
		SessionDuration: p.SessionDuration,
		Rating:          p.Rating,
		SkillIDs:        skills,
	}
}

func NewMentorProfileDetailResponse(d usecase.MentorProfileDetail) MentorProfileDetailResponse {
	return MentorProfileDetailResponse{
		MentorProfileResponse: NewMentorProfileResponse(d.Profile),
		Recommendations:       d.Recommendations,
	}
}

func NewMentorProfileResponses(items []mentor.Profile) []MentorProfileResponse {
	out := make([]MentorProfileResponse, 0, len(items))
	for _, p := range items {
		out = append(out, NewMentorProfileResponse(p))
	}
	return out
}
