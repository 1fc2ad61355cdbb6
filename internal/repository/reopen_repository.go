package repository

import (
	"assessment_engine/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type ReopenRepository struct {
	DB *gorm.DB
}

func NewReopenRepository(db *gorm.DB) *ReopenRepository {
	return &ReopenRepository{DB: db}
}

func (r *ReopenRepository) WithTx(tx *gorm.DB) *ReopenRepository {
	return &ReopenRepository{DB: tx}
}

func (r *ReopenRepository) Create(ctx context.Context, req *model.EvaluationReopenRequest) error {
	return r.DB.WithContext(ctx).Create(req).Error
}

func (r *ReopenRepository) FindByID(ctx context.Context, id uint) (*model.EvaluationReopenRequest, error) {
	var req model.EvaluationReopenRequest
	if err := r.DB.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *ReopenRepository) HasPending(ctx context.Context, evaluationID, userID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.EvaluationReopenRequest{}).
		Where("evaluation_id = ? AND user_id = ? AND status = ?", evaluationID, userID, model.ReopenPending).
		Count(&count).Error
	return count > 0, err
}

// Resolve 将待审批申请置为终态；已处理的申请不会被覆盖
func (r *ReopenRepository) Resolve(ctx context.Context, id uint, status model.ReopenStatus, reviewer uint, note string, at time.Time) (bool, error) {
	result := r.DB.WithContext(ctx).Model(&model.EvaluationReopenRequest{}).
		Where("id = ? AND status = ?", id, model.ReopenPending).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_by": reviewer,
			"reviewed_at": at,
			"review_note": note,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ListByEvaluation status 为空时返回全部
func (r *ReopenRepository) ListByEvaluation(ctx context.Context, evaluationID uint, status model.ReopenStatus) ([]model.EvaluationReopenRequest, error) {
	var reqs []model.EvaluationReopenRequest
	query := r.DB.WithContext(ctx).Where("evaluation_id = ?", evaluationID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at asc, id asc").Find(&reqs).Error
	return reqs, err
}

func (r *ReopenRepository) ListByUser(ctx context.Context, userID uint) ([]model.EvaluationReopenRequest, error) {
	var reqs []model.EvaluationReopenRequest
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&reqs).Error
	return reqs, err
}
