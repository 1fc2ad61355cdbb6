package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// swagger:model EvaluationAttempt
type EvaluationAttempt struct {
	BaseModel

	EvaluationID uint       `gorm:"uniqueIndex:idx_attempt_slot;not null" json:"evaluationId"`
	UserID       uint       `gorm:"uniqueIndex:idx_attempt_slot;index;not null" json:"userId"`
	Sequence     int        `gorm:"uniqueIndex:idx_attempt_slot;not null" json:"sequence"`
	StartedAt    time.Time  `json:"startedAt"`
	SubmittedAt  *time.Time `json:"submittedAt,omitempty"`
	Score        *float64   `json:"score,omitempty"`
	Passed       bool       `gorm:"default:false" json:"passed"`

	Answers []Answer `gorm:"foreignKey:AttemptID" json:"answers,omitempty"`
}

func (EvaluationAttempt) TableName() string {
	return "evaluation_attempts"
}

func (a *EvaluationAttempt) Submitted() bool {
	return a.SubmittedAt != nil
}

// OptionIDs 选项ID集合，以排序后的 JSON 数组存储
type OptionIDs []uint

func (ids OptionIDs) Value() (driver.Value, error) {
	if ids == nil {
		ids = OptionIDs{}
	}
	b, err := json.Marshal(ids.Sorted())
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (ids *OptionIDs) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*ids = OptionIDs{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("OptionIDs: unsupported scan type %T", src)
	}
	var out []uint
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*ids = out
	return nil
}

// Sorted 返回去重并升序排列的副本
func (ids OptionIDs) Sorted() OptionIDs {
	seen := make(map[uint]struct{}, len(ids))
	out := make(OptionIDs, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// swagger:model Answer
type Answer struct {
	BaseModel

	AttemptID         uint      `gorm:"uniqueIndex:idx_answer_question;not null" json:"attemptId"`
	QuestionID        uint      `gorm:"uniqueIndex:idx_answer_question;not null" json:"questionId"`
	SelectedOptionIDs OptionIDs `gorm:"type:text" json:"selectedOptionIds"`
	IsCorrect         bool      `gorm:"default:false" json:"isCorrect"`
}

func (Answer) TableName() string {
	return "evaluation_answers"
}

// AttemptQuota 用户在某次评测上的额外作答次数（由重开申请审批授予）
type AttemptQuota struct {
	BaseModel

	EvaluationID  uint `gorm:"uniqueIndex:idx_quota_pair;not null" json:"evaluationId"`
	UserID        uint `gorm:"uniqueIndex:idx_quota_pair;not null" json:"userId"`
	BonusAttempts int  `gorm:"not null;default:0" json:"bonusAttempts"`
}

func (AttemptQuota) TableName() string {
	return "evaluation_attempt_quotas"
}
