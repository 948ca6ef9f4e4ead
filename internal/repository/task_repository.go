package repository

import (
	"gorm.io/gorm"

	"github.com/dafoundation/disaster-relief-api/internal/models"
	"github.com/dafoundation/disaster-relief-api/internal/utils"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) Create(task *models.VolunteerTask) error {
	return r.db.Create(task).Error
}

func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.VolunteerTask, error) {
	var task models.VolunteerTask
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *GormTaskRepository) List(scope ListScope, params utils.PaginationParams) ([]models.VolunteerTask, int64, error) {
	query := r.db.Model(&models.VolunteerTask{}).Scopes(scope)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.VolunteerTask
	err := query.
		Preload("AssignedVolunteer").
		Order("start_at DESC").
		Offset(params.Offset).Limit(params.Limit).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (r *GormTaskRepository) Browse(filter BrowseFilter) ([]models.VolunteerTask, error) {
	query := r.db.
		Where("status IN ?", []models.TaskStatus{models.TaskStatusOpen, models.TaskStatusAssigned})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var tasks []models.VolunteerTask
	err := query.
		Order("priority DESC").
		Order("start_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *GormTaskRepository) Update(task *models.VolunteerTask) error {
	return r.db.Save(task).Error
}

func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.VolunteerTask{}, id).Error
	})
}

func (r *GormTaskRepository) Join(taskID uint64, userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.VolunteerTask{}).
			Where("id = ?", taskID).
			Where("status IN ?", []models.TaskStatus{models.TaskStatusOpen, models.TaskStatusAssigned}).
			Where("current_volunteer_count < max_volunteers").
			Updates(map[string]interface{}{
				"current_volunteer_count": gorm.Expr("current_volunteer_count + 1"),
				"assigned_volunteer_id":   userID,
				"status":                  models.TaskStatusAssigned,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoRowsUpdated
		}

		return tx.Create(&models.TaskAssignment{TaskID: taskID, VolunteerUserID: userID}).Error
	})
}

func (r *GormTaskRepository) Leave(taskID uint64, userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("task_id = ? AND volunteer_user_id = ?", taskID, userID).
			Delete(&models.TaskAssignment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoRowsUpdated
		}

		err := tx.Model(&models.VolunteerTask{}).
			Where("id = ? AND current_volunteer_count > 0", taskID).
			Update("current_volunteer_count", gorm.Expr("current_volunteer_count - 1")).Error
		if err != nil {
			return err
		}

		// Revert the label once the last volunteer is gone.
		return tx.Model(&models.VolunteerTask{}).
			Where("id = ? AND current_volunteer_count = 0", taskID).
			Updates(map[string]interface{}{
				"status":                models.TaskStatusOpen,
				"assigned_volunteer_id": nil,
			}).Error
	})
}

func (r *GormTaskRepository) FindAssignment(taskID uint64, userID string) (*models.TaskAssignment, error) {
	var assignment models.TaskAssignment
	if err := r.db.Where("task_id = ? AND volunteer_user_id = ?", taskID, userID).
		First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *GormTaskRepository) Categories() ([]string, error) {
	var categories []string
	err := r.db.Model(&models.VolunteerTask{}).
		Where("category <> ''").
		Distinct().
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *GormTaskRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.VolunteerTask{}).Count(&count).Error
	return count, err
}

func (r *GormTaskRepository) Recent(limit int) ([]models.VolunteerTask, error) {
	var tasks []models.VolunteerTask
	err := r.db.
		Preload("AssignedVolunteer").
		Order("created_at DESC").
		Limit(limit).
		Find(&tasks).Error
	return tasks, err
}
