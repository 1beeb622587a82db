package tag

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"gorm.io/gorm"
)

const (
	cacheSize = 256
	cacheTTL  = 10 * time.Minute
)

type (
	TagService interface {
		GetTags(ctx context.Context) ([]domain.Tag, error)
		GetTagByID(ctx context.Context, id string) (domain.Tag, error)
	}

	// tagService keeps tags in an LRU. Tags never change at runtime, the TTL
	// only bounds how long a tag added by the seed command stays invisible.
	tagService struct {
		tagRepository TagRepository
		cache         *expirable.LRU[string, domain.Tag]
	}
)

func NewTagService(tagRepository TagRepository) TagService {
	return &tagService{
		tagRepository: tagRepository,
		cache:         expirable.NewLRU[string, domain.Tag](cacheSize, nil, cacheTTL),
	}
}

func (s *tagService) GetTags(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.tagRepository.GetTags(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.Tag, 0, len(tags))
	for _, tag := range tags {
		t := ToDomain(tag)
		s.cache.Add(t.ID, t)
		res = append(res, t)
	}
	return res, nil
}

func (s *tagService) GetTagByID(ctx context.Context, id string) (domain.Tag, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Tag{}, domain.ErrTagNotFound
	}
	if t, ok := s.cache.Get(id); ok {
		return t, nil
	}

	tag, err := s.tagRepository.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Tag{}, domain.ErrTagNotFound
		}
		return domain.Tag{}, err
	}

	t := ToDomain(tag)
	s.cache.Add(t.ID, t)
	return t, nil
}

func ToDomain(tag *entities.Tag) domain.Tag {
	return domain.Tag{
		ID:   tag.ID.String(),
		Name: tag.Name,
		Slug: tag.Slug,
	}
}
