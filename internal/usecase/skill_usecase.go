package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"empedi/internal/metrics"
	"empedi/internal/repository"

	"github.com/google/uuid"
)

const (
	skillsCacheKey = "skills:all"
	skillsCacheTTL = 30 * time.Minute
)

type SkillItem struct {
	ID       uuid.UUID  `json:"id" msgpack:"id"`
	Name     string     `json:"name" msgpack:"name"`
	ParentID *uuid.UUID `json:"parentId,omitempty" msgpack:"parent_id,omitempty"`
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]SkillItem, error)
	AddSkill(ctx context.Context, name string, parentID *uuid.UUID) (SkillItem, error)
}

type Skill struct {
	repo   repository.SkillRepository
	cache  Cache
	logger *log.Logger
}

func NewSkillUsecase(repo repository.SkillRepository, cache Cache, logger *log.Logger) *Skill {
	if logger == nil {
		logger = log.Default()
	}
	return &Skill{repo: repo, cache: cache, logger: logger}
}

func (u *Skill) ListSkills(ctx context.Context) ([]SkillItem, error) {
	if u.cache != nil {
		var cached []SkillItem
		hit, err := u.cache.Get(ctx, skillsCacheKey, &cached)
		if err != nil {
			u.logger.Printf("[Skill] cache read failed key=%s err=%v", skillsCacheKey, err)
		}
		metrics.RecordCacheLookup("skills", hit)
		if hit {
			if cached == nil {
				cached = []SkillItem{}
			}
			return cached, nil
		}
	}

	items, err := u.repo.GetAllSkills(ctx)
	if err != nil {
		u.logger.Printf("[Skill] list failed err=%v", err)
		return nil, ErrInternal
	}

	out := make([]SkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, SkillItem{ID: it.ID, Name: it.Name, ParentID: it.ParentID})
	}

	if u.cache != nil {
		if err := u.cache.Set(ctx, skillsCacheKey, out, skillsCacheTTL); err != nil {
			u.logger.Printf("[Skill] cache write failed key=%s err=%v", skillsCacheKey, err)
		}
	}
	return out, nil
}

func (u *Skill) AddSkill(ctx context.Context, name string, parentID *uuid.UUID) (SkillItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SkillItem{}, ErrInvalidInput
	}
	if parentID != nil && *parentID == uuid.Nil {
		parentID = nil
	}
	if parentID != nil {
		n, err := u.repo.CountExisting(ctx, []uuid.UUID{*parentID})
		if err != nil {
			u.logger.Printf("[Skill] parent lookup failed err=%v", err)
			return SkillItem{}, ErrInternal
		}
		if n == 0 {
			return SkillItem{}, ErrInvalidInput
		}
	}

	created, err := u.repo.CreateSkill(ctx, name, parentID)
	if err != nil {
		if errors.Is(err, repository.ErrSkillExists) {
			return SkillItem{}, ErrConflict
		}
		u.logger.Printf("[Skill] create failed name=%q err=%v", name, err)
		return SkillItem{}, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.Delete(ctx, skillsCacheKey); err != nil {
			u.logger.Printf("[Skill] cache invalidate failed key=%s err=%v", skillsCacheKey, err)
		}
	}
	return SkillItem{ID: created.ID, Name: created.Name, ParentID: created.ParentID}, nil
}
