package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"qualiboard/internal/model"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

// GetByType returns the most recent board for the given type. A missing
// board is not an error; callers seed on (nil, nil).
func (r *BoardRepository) GetByType(ctx context.Context, boardType string) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).
		Where("type = ?", boardType).
		Order("created_at DESC").
		First(&board).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}
