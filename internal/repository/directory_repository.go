package repository

import (
	"assessment_engine/internal/model"
	"context"

	"gorm.io/gorm"
)

// DirectoryRepository 读取课程、选课与授课关系，供访问控制使用
type DirectoryRepository struct {
	DB *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) *DirectoryRepository {
	return &DirectoryRepository{DB: db}
}

// IsEnrolled 存在未撤销的选课记录
func (r *DirectoryRepository) IsEnrolled(ctx context.Context, userID uint, courseCode string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Enrollment{}).
		Where("user_id = ? AND course_code = ? AND status = ?", userID, courseCode, model.EnrollmentActive).
		Count(&count).Error
	return count > 0, err
}

func (r *DirectoryRepository) HasPaid(ctx context.Context, userID uint, courseCode string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Enrollment{}).
		Where("user_id = ? AND course_code = ? AND status = ? AND payment_status = ?",
			userID, courseCode, model.EnrollmentActive, model.PaymentConfirmed).
		Count(&count).Error
	return count > 0, err
}

func (r *DirectoryRepository) GetSection(ctx context.Context, sectionID uint) (*model.SectionInfo, error) {
	var section model.Section
	if err := r.DB.WithContext(ctx).First(&section, sectionID).Error; err != nil {
		return nil, err
	}
	var course model.Course
	if err := r.DB.WithContext(ctx).Where("code = ?", section.CourseCode).First(&course).Error; err != nil {
		return nil, err
	}
	return &model.SectionInfo{
		SectionID:  section.ID,
		CourseCode: course.Code,
		PaidCourse: course.IsPaid,
	}, nil
}

func (r *DirectoryRepository) IsInstructorOf(ctx context.Context, userID uint, courseCode string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.CourseInstructor{}).
		Where("user_id = ? AND course_code = ?", userID, courseCode).
		Count(&count).Error
	return count > 0, err
}
