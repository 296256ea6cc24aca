package services

import (
	"errors"
	"fmt"

	"github.com/bahsim/ai-practitioner-task-manager/internal/models"
	"github.com/bahsim/ai-practitioner-task-manager/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTaskForbidden   = errors.New("task belongs to another user")
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleEmpty      = errors.New("title cannot be empty")
	ErrInvalidStatus   = errors.New("invalid status value")
	ErrInvalidPriority = errors.New("invalid priority value")
)

// TaskService handles task business logic. Every operation is scoped to the
// caller's identity; a task is only ever visible or mutable to its owner.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      models.TaskStatus
	Priority    models.TaskPriority
}

// Create creates a task owned by the caller. Status defaults to todo and
// priority to medium when omitted. The owner comes from the authenticated
// identity, never from input.
func (s *TaskService) Create(input CreateTaskInput, ownerID uint64) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusTodo
	} else if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	} else if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	task := &models.Task{
		Title:       input.Title,
		Description: normalizeOptional(input.Description),
		Status:      status,
		Priority:    priority,
		OwnerID:     ownerID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Get resolves a task for the caller. A task that does not exist at all is
// ErrTaskNotFound; one that exists but belongs to someone else is
// ErrTaskForbidden. Existence is checked first, so any authenticated caller
// can learn that an ID exists.
func (s *TaskService) Get(id, callerID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.OwnerID != callerID {
		return nil, ErrTaskForbidden
	}

	return task, nil
}

// ListTasksInput represents the optional filters for listing tasks, as raw
// query values.
type ListTasksInput struct {
	Status   string
	Priority string
	Search   string
}

// List returns the caller's tasks, optionally narrowed by status, priority
// and a case-insensitive search over title and description. Filters combine
// conjunctively on top of the owner scope.
func (s *TaskService) List(callerID uint64, input ListTasksInput) ([]models.Task, error) {
	filter := repository.TaskFilter{
		OwnerID: callerID,
		Search:  input.Search,
	}

	if input.Status != "" {
		status := models.TaskStatus(input.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		filter.Status = &status
	}
	if input.Priority != "" {
		priority := models.TaskPriority(input.Priority)
		if !priority.Valid() {
			return nil, ErrInvalidPriority
		}
		filter.Priority = &priority
	}

	tasks, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// unchanged. There is deliberately no owner field.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
}

// Update patches a task after resolving it with Get's semantics. Status and
// priority are re-validated even when upstream validation already ran.
func (s *TaskService) Update(id uint64, input UpdateTaskInput, callerID uint64) (*models.Task, error) {
	task, err := s.Get(id, callerID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = normalizeOptional(input.Description)
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Delete removes a task after resolving it with Get's semantics.
func (s *TaskService) Delete(id, callerID uint64) error {
	if _, err := s.Get(id, callerID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
