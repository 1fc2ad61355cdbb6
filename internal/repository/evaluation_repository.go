package repository

import (
	"assessment_engine/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EvaluationRepository struct {
	DB *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{DB: db}
}

var byOrder = clause.OrderBy{Columns: []clause.OrderByColumn{
	{Column: clause.Column{Name: "order"}},
	{Column: clause.Column{Name: "id"}},
}}

func orderedQuestions(db *gorm.DB) *gorm.DB {
	return db.Clauses(byOrder)
}

// CreateEvaluation 连同题目与选项一起创建
func (r *EvaluationRepository) CreateEvaluation(ctx context.Context, e *model.Evaluation) error {
	return r.DB.WithContext(ctx).Create(e).Error
}

// UpdateEvaluation 只更新评测本身的字段，不触碰题目
func (r *EvaluationRepository) UpdateEvaluation(ctx context.Context, e *model.Evaluation) error {
	return r.DB.WithContext(ctx).Model(e).
		Select("Title", "Description", "IsExam", "PassingScore", "MaxAttempts", "AvailableUntil", "UpdatedBy").
		Updates(e).Error
}

func (r *EvaluationRepository) FindEvaluationByID(ctx context.Context, id uint) (*model.Evaluation, error) {
	var e model.Evaluation
	if err := r.DB.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// GetEvaluation 加载完整的评测定义（题目按 order 排序，含选项）
func (r *EvaluationRepository) GetEvaluation(ctx context.Context, id uint) (*model.Evaluation, error) {
	var e model.Evaluation
	err := r.DB.WithContext(ctx).
		Preload("Questions", orderedQuestions).
		Preload("Questions.Options", orderedQuestions).
		First(&e, id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Invalidate 数据库实现无需处理缓存
func (r *EvaluationRepository) Invalidate(ctx context.Context, id uint) {}

func (r *EvaluationRepository) ListBySection(ctx context.Context, sectionID uint) ([]model.Evaluation, error) {
	var es []model.Evaluation
	err := r.DB.WithContext(ctx).Where("section_id = ?", sectionID).Order("id asc").Find(&es).Error
	return es, err
}

// DeleteEvaluation 级联删除题目与选项
func (r *EvaluationRepository) DeleteEvaluation(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.Question{}).Where("evaluation_id = ?", id).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.QuestionOption{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", questionIDs).Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Evaluation{}, id).Error
	})
}

func (r *EvaluationRepository) CreateQuestion(ctx context.Context, q *model.Question) error {
	return r.DB.WithContext(ctx).Create(q).Error
}

func (r *EvaluationRepository) FindQuestionByID(ctx context.Context, id uint) (*model.Question, error) {
	var q model.Question
	if err := r.DB.WithContext(ctx).Preload("Options", orderedQuestions).First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// NextQuestionOrder 返回评测内下一个题目序号
func (r *EvaluationRepository) NextQuestionOrder(ctx context.Context, evaluationID uint) (int, error) {
	var max int
	err := r.DB.WithContext(ctx).Model(&model.Question{}).
		Where("evaluation_id = ?", evaluationID).
		Select("COALESCE(MAX(?), 0)", clause.Column{Name: "order"}).
		Scan(&max).Error
	return max + 1, err
}

// ReplaceQuestion 更新题目字段并整体替换选项
func (r *EvaluationRepository) ReplaceQuestion(ctx context.Context, q *model.Question) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(q).Select("Type", "Text", "Order", "Explanation").Updates(q).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", q.ID).Delete(&model.QuestionOption{}).Error; err != nil {
			return err
		}
		for i := range q.Options {
			q.Options[i].ID = 0
			q.Options[i].QuestionID = q.ID
		}
		if len(q.Options) == 0 {
			return nil
		}
		return tx.Create(&q.Options).Error
	})
}

func (r *EvaluationRepository) DeleteQuestion(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.QuestionOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, id).Error
	})
}
