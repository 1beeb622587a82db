package tag

import (
	"Foodgram-Backend/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	TagRepository interface {
		GetTags(ctx context.Context) ([]*entities.Tag, error)
		GetTagByID(ctx context.Context, id string) (*entities.Tag, error)
		GetTagsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Tag, error)
		CreateTags(ctx context.Context, tags []*entities.Tag) (int64, error)
	}

	tagRepository struct {
		db *gorm.DB
	}
)

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetTags(ctx context.Context) ([]*entities.Tag, error) {
	var tags []*entities.Tag
	if err := r.db.WithContext(ctx).Order("name asc").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) GetTagByID(ctx context.Context, id string) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetTagsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Tag, error) {
	var tags []*entities.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) CreateTags(ctx context.Context, tags []*entities.Tag) (int64, error) {
	if len(tags) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(tags)
	return res.RowsAffected, res.Error
}
