package repository

import (
	"github.com/bahsim/ai-practitioner-task-manager/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update persists changes to an existing user
	Update(user *models.User) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID regardless of owner; ownership is judged
	// by the service layer so not-found and forbidden stay distinct outcomes
	FindByID(id uint64) (*models.Task, error)

	// List retrieves tasks matching the filter
	List(filter TaskFilter) ([]models.Task, error)

	// Update persists changes to an existing task
	Update(task *models.Task) error

	// Delete soft deletes a task
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks. OwnerID is always
// applied; the optional filters are conjunctive with it and each other.
type TaskFilter struct {
	OwnerID  uint64
	Status   *models.TaskStatus
	Priority *models.TaskPriority
	Search   string
}
