package model

// 以下模型属于课程/选课等外部系统，本服务只读

type Course struct {
	BaseModel
	Code   string `gorm:"size:64;uniqueIndex;not null" json:"code"`
	Title  string `gorm:"size:255" json:"title"`
	IsPaid bool   `gorm:"default:false" json:"isPaid"`
}

func (Course) TableName() string {
	return "courses"
}

type Section struct {
	BaseModel
	CourseCode string `gorm:"size:64;index;not null" json:"courseCode"`
	Title      string `gorm:"size:255" json:"title"`
}

func (Section) TableName() string {
	return "sections"
}

const (
	EnrollmentActive  = "active"
	EnrollmentRevoked = "revoked"

	PaymentPending   = "pending"
	PaymentConfirmed = "confirmed"
)

type Enrollment struct {
	BaseModel
	UserID        uint   `gorm:"index:idx_enrollment_pair;not null" json:"userId"`
	CourseCode    string `gorm:"size:64;index:idx_enrollment_pair;not null" json:"courseCode"`
	Status        string `gorm:"size:20;default:'active'" json:"status"`
	PaymentStatus string `gorm:"size:20;default:'pending'" json:"paymentStatus"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

type CourseInstructor struct {
	BaseModel
	UserID     uint   `gorm:"index:idx_instructor_pair;not null" json:"userId"`
	CourseCode string `gorm:"size:64;index:idx_instructor_pair;not null" json:"courseCode"`
}

func (CourseInstructor) TableName() string {
	return "course_instructors"
}

// SectionInfo 评测所属章节对应的课程信息
type SectionInfo struct {
	SectionID  uint
	CourseCode string
	PaidCourse bool
}
