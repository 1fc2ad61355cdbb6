package repository

import (
	"assessment_engine/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// WithTx 返回绑定到事务的仓库副本
func (r *AttemptRepository) WithTx(tx *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: tx}
}

// AttemptStats 单个评测的作答统计
type AttemptStats struct {
	TotalAttempts     int64   `json:"totalAttempts"`
	SubmittedAttempts int64   `json:"submittedAttempts"`
	PassedAttempts    int64   `json:"passedAttempts"`
	Students          int64   `json:"students"`
	AverageScore      float64 `json:"averageScore"`
	PassRate          float64 `json:"passRate"`
}

// LockQuota 获取（必要时创建）配额行并加行锁；sqlite 依赖单连接串行化
func (r *AttemptRepository) LockQuota(ctx context.Context, evaluationID, userID uint) (*model.AttemptQuota, error) {
	quota := model.AttemptQuota{EvaluationID: evaluationID, UserID: userID}
	db := r.DB.WithContext(ctx)
	if err := db.Where(&quota).FirstOrCreate(&quota).Error; err != nil {
		return nil, err
	}
	if db.Dialector.Name() != "sqlite" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := db.First(&quota, quota.ID).Error; err != nil {
		return nil, err
	}
	return &quota, nil
}

// BonusAttempts 审批授予的额外次数，无记录时为 0
func (r *AttemptRepository) BonusAttempts(ctx context.Context, evaluationID, userID uint) (int, error) {
	var bonus int
	err := r.DB.WithContext(ctx).Model(&model.AttemptQuota{}).
		Where("evaluation_id = ? AND user_id = ?", evaluationID, userID).
		Select("COALESCE(SUM(bonus_attempts), 0)").
		Scan(&bonus).Error
	return bonus, err
}

// AddBonus 增加额外作答次数
func (r *AttemptRepository) AddBonus(ctx context.Context, evaluationID, userID uint, n int) error {
	quota := model.AttemptQuota{EvaluationID: evaluationID, UserID: userID}
	db := r.DB.WithContext(ctx)
	if err := db.Where(&quota).FirstOrCreate(&quota).Error; err != nil {
		return err
	}
	return db.Model(&quota).UpdateColumn("bonus_attempts", gorm.Expr("bonus_attempts + ?", n)).Error
}

func (r *AttemptRepository) CountAttempts(ctx context.Context, evaluationID, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.EvaluationAttempt{}).
		Where("evaluation_id = ? AND user_id = ?", evaluationID, userID).
		Count(&count).Error
	return count, err
}

// LastSequence 已分配的最大序号，包含软删除的记录（唯一索引同样覆盖它们）
func (r *AttemptRepository) LastSequence(ctx context.Context, evaluationID, userID uint) (int, error) {
	var last int
	err := r.DB.WithContext(ctx).Unscoped().Model(&model.EvaluationAttempt{}).
		Select("COALESCE(MAX(sequence), 0)").
		Where("evaluation_id = ? AND user_id = ?", evaluationID, userID).
		Scan(&last).Error
	return last, err
}

func (r *AttemptRepository) HasAttempts(ctx context.Context, evaluationID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.EvaluationAttempt{}).
		Where("evaluation_id = ?", evaluationID).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

func (r *AttemptRepository) HasPassed(ctx context.Context, evaluationID, userID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.EvaluationAttempt{}).
		Where("evaluation_id = ? AND user_id = ? AND passed = ?", evaluationID, userID, true).
		Count(&count).Error
	return count > 0, err
}

func (r *AttemptRepository) Create(ctx context.Context, attempt *model.EvaluationAttempt) error {
	return r.DB.WithContext(ctx).Create(attempt).Error
}

func (r *AttemptRepository) FindByID(ctx context.Context, id uint) (*model.EvaluationAttempt, error) {
	var attempt model.EvaluationAttempt
	if err := r.DB.WithContext(ctx).First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

// FindWithAnswers 加载作答及答案
func (r *AttemptRepository) FindWithAnswers(ctx context.Context, id uint) (*model.EvaluationAttempt, error) {
	var attempt model.EvaluationAttempt
	err := r.DB.WithContext(ctx).
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("question_id asc") }).
		First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// MarkSubmitted 仅在尚未提交时写入成绩，返回是否更新成功
func (r *AttemptRepository) MarkSubmitted(ctx context.Context, id uint, submittedAt time.Time, score float64, passed bool) (bool, error) {
	result := r.DB.WithContext(ctx).Model(&model.EvaluationAttempt{}).
		Where("id = ? AND submitted_at IS NULL", id).
		Updates(map[string]interface{}{
			"submitted_at": submittedAt,
			"score":        score,
			"passed":       passed,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *AttemptRepository) CreateAnswers(ctx context.Context, answers []model.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&answers).Error
}

// ListByEvaluation 按用户、序号排序
func (r *AttemptRepository) ListByEvaluation(ctx context.Context, evaluationID uint) ([]model.EvaluationAttempt, error) {
	var attempts []model.EvaluationAttempt
	err := r.DB.WithContext(ctx).
		Where("evaluation_id = ?", evaluationID).
		Order("user_id asc, sequence asc").
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListByUser(ctx context.Context, evaluationID, userID uint) ([]model.EvaluationAttempt, error) {
	var attempts []model.EvaluationAttempt
	err := r.DB.WithContext(ctx).
		Where("evaluation_id = ? AND user_id = ?", evaluationID, userID).
		Order("sequence asc").
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) Stats(ctx context.Context, evaluationID uint) (*AttemptStats, error) {
	var stats AttemptStats
	base := func() *gorm.DB {
		return r.DB.WithContext(ctx).Model(&model.EvaluationAttempt{}).Where("evaluation_id = ?", evaluationID)
	}

	if err := base().Count(&stats.TotalAttempts).Error; err != nil {
		return nil, err
	}
	if err := base().Where("submitted_at IS NOT NULL").Count(&stats.SubmittedAttempts).Error; err != nil {
		return nil, err
	}
	if err := base().Where("passed = ?", true).Count(&stats.PassedAttempts).Error; err != nil {
		return nil, err
	}
	if err := base().Distinct("user_id").Count(&stats.Students).Error; err != nil {
		return nil, err
	}
	if stats.SubmittedAttempts > 0 {
		if err := base().Where("submitted_at IS NOT NULL").
			Select("COALESCE(AVG(score), 0)").
			Scan(&stats.AverageScore).Error; err != nil {
			return nil, err
		}
		stats.PassRate = float64(stats.PassedAttempts) / float64(stats.SubmittedAttempts) * 100
	}
	return &stats, nil
}
