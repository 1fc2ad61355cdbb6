package model

import "time"

type ReopenStatus string

const (
	ReopenPending  ReopenStatus = "pending"
	ReopenApproved ReopenStatus = "approved"
	ReopenRejected ReopenStatus = "rejected"
)

func (s ReopenStatus) Valid() bool {
	switch s {
	case ReopenPending, ReopenApproved, ReopenRejected:
		return true
	}
	return false
}

// swagger:model EvaluationReopenRequest
type EvaluationReopenRequest struct {
	BaseModel

	EvaluationID  uint         `gorm:"index:idx_reopen_pair;not null" json:"evaluationId"`
	UserID        uint         `gorm:"index:idx_reopen_pair;not null" json:"userId"`
	Justification string       `gorm:"type:text;not null" json:"justification"`
	Status        ReopenStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ReviewedBy    *uint        `json:"reviewedBy,omitempty"`
	ReviewedAt    *time.Time   `json:"reviewedAt,omitempty"`
	ReviewNote    string       `gorm:"type:text" json:"reviewNote,omitempty"`
}

func (EvaluationReopenRequest) TableName() string {
	return "evaluation_reopen_requests"
}
