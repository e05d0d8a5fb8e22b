package repository

import (
	"micro_tutor_backend/internal/model"

	"gorm.io/gorm"
)

type ProjectRepository struct {
	DB *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

func (r *ProjectRepository) Create(project *model.SkillProject) error {
	return r.DB.Create(project).Error
}

func (r *ProjectRepository) FindByID(id uint) (*model.SkillProject, error) {
	var project model.SkillProject
	err := r.DB.First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) FindLatestBySkillID(skillID uint) (*model.SkillProject, error) {
	var project model.SkillProject
	err := r.DB.Where("skill_id = ?", skillID).Order("created_at DESC").First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) CreateSubmission(submission *model.ProjectSubmission) error {
	return r.DB.Create(submission).Error
}

// HasPassedSubmission 该项目是否已有通过的提交（通过奖励只发一次）
func (r *ProjectRepository) HasPassedSubmission(userID, projectID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ProjectSubmission{}).
		Where("user_id = ? AND project_id = ? AND passed = ?", userID, projectID, true).
		Count(&count).Error
	return count > 0, err
}

func (r *ProjectRepository) FindSubmissions(userID, projectID uint) ([]model.ProjectSubmission, error) {
	var submissions []model.ProjectSubmission
	err := r.DB.Where("user_id = ? AND project_id = ?", userID, projectID).
		Order("completed_at DESC").
		Find(&submissions).Error
	return submissions, err
}
