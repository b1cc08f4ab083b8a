package service

import (
	"context"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/google/uuid"
)

// CatalogService manages the projects and tasks entries are charged against.
type CatalogService interface {
	CreateProject(ctx context.Context, orgID, name, client string) (*domain.Project, error)
	ListProjects(ctx context.Context, orgID string) ([]*domain.Project, error)
	CreateTask(ctx context.Context, projectID, code, title string) (*domain.Task, error)
	ListTasks(ctx context.Context, projectID string) ([]*domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
}

type catalogService struct {
	projects repository.ProjectRepo
	tasks    repository.TaskRepo
	now      func() time.Time
}

// NewCatalogService creates the catalog use-case service.
func NewCatalogService(projects repository.ProjectRepo, tasks repository.TaskRepo) CatalogService {
	return &catalogService{
		projects: projects,
		tasks:    tasks,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *catalogService) CreateProject(ctx context.Context, orgID, name, client string) (*domain.Project, error) {
	if name == "" {
		return nil, &domain.ValidationError{Reason: "project name is required"}
	}
	p := &domain.Project{
		ID:        uuid.New().String(),
		OrgID:     orgID,
		Name:      name,
		Client:    client,
		CreatedAt: s.now(),
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, &domain.PersistenceError{Op: "creating project", Err: err}
	}
	return p, nil
}

func (s *catalogService) ListProjects(ctx context.Context, orgID string) ([]*domain.Project, error) {
	return s.projects.List(ctx, orgID)
}

func (s *catalogService) CreateTask(ctx context.Context, projectID, code, title string) (*domain.Task, error) {
	if title == "" {
		return nil, &domain.ValidationError{Reason: "task title is required"}
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	t := &domain.Task{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Code:      code,
		Title:     title,
		CreatedAt: s.now(),
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, &domain.PersistenceError{Op: "creating task", Err: err}
	}
	return t, nil
}

func (s *catalogService) ListTasks(ctx context.Context, projectID string) ([]*domain.Task, error) {
	if projectID == "" {
		return s.tasks.List(ctx)
	}
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *catalogService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}
