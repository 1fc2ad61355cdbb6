package model

import "time"

// QuestionType 题型是封闭集合，新增题型需同时扩展 service.scorerFor
type QuestionType string

const (
	QuestionBoolean  QuestionType = "boolean"
	QuestionMultiple QuestionType = "multiple"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionBoolean, QuestionMultiple:
		return true
	}
	return false
}

// 判断题默认选项
const (
	BooleanTrueLabel  = "Verdadero"
	BooleanFalseLabel = "Falso"
)

// swagger:model Evaluation
type Evaluation struct {
	BaseModel

	SectionID      uint       `gorm:"index;not null" json:"sectionId"`
	Title          string     `gorm:"size:255;not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	IsExam         bool       `gorm:"default:false" json:"isExam"`
	PassingScore   float64    `gorm:"not null" json:"passingScore"`
	MaxAttempts    *int       `json:"maxAttempts"` // nil 表示不限次数
	AvailableUntil *time.Time `json:"availableUntil,omitempty"`
	CreatedBy      uint       `gorm:"index" json:"createdBy"`
	UpdatedBy      uint       `json:"updatedBy"`

	Questions []Question `gorm:"foreignKey:EvaluationID" json:"questions,omitempty"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}

// ClosedAt 判断截止时间是否已过
func (e *Evaluation) ClosedAt(now time.Time) bool {
	return e.AvailableUntil != nil && now.After(*e.AvailableUntil)
}

// swagger:model Question
type Question struct {
	BaseModel

	EvaluationID uint         `gorm:"index;not null" json:"evaluationId"`
	Type         QuestionType `gorm:"size:20;not null" json:"type"`
	Text         string       `gorm:"type:text;not null" json:"text"`
	Order        int          `gorm:"default:0" json:"order"`
	Explanation  string       `gorm:"type:text" json:"explanation"`

	Options []QuestionOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "evaluation_questions"
}

// CorrectOptionIDs 返回正确选项ID集合
func (q *Question) CorrectOptionIDs() []uint {
	ids := make([]uint, 0, len(q.Options))
	for _, o := range q.Options {
		if o.IsCorrect {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

// HasOption 判断选项是否属于该题
func (q *Question) HasOption(optionID uint) bool {
	for _, o := range q.Options {
		if o.ID == optionID {
			return true
		}
	}
	return false
}

// swagger:model QuestionOption
type QuestionOption struct {
	BaseModel

	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"size:500;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
	Order      int    `gorm:"default:0" json:"order"`
}

func (QuestionOption) TableName() string {
	return "evaluation_question_options"
}
