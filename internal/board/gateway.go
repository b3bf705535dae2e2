package board

import (
	"context"
	"time"

	"github.com/google/uuid"

	"qualiboard/internal/model"
	"qualiboard/internal/repository"
)

// CreateTaskParams carries the fields needed to persist a new task.
type CreateTaskParams struct {
	BoardID     uuid.UUID
	ColumnID    uuid.UUID
	Title       string
	Description string
	Priority    string
	DueDate     *time.Time
	Position    int
}

// AttachmentParams carries the metadata persisted after a blob upload.
type AttachmentParams struct {
	TaskID uuid.UUID
	Name   string
	URL    string
	Type   string
	Size   int64
}

// Gateway is the remote-store boundary the board service operates
// against. Every method issues exactly one request against a named
// resource collection and returns the affected row(s).
type Gateway interface {
	GetBoardByType(ctx context.Context, boardType string) (*model.Board, error)
	GetColumnsByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error)
	CreateDefaultColumns(ctx context.Context, boardID uuid.UUID, titles []string) ([]model.Column, error)
	GetTasksWithDetails(ctx context.Context, columnIDs []uuid.UUID) ([]model.Task, error)
	CreateTask(ctx context.Context, params CreateTaskParams) (*model.Task, error)
	UpdateTask(ctx context.Context, taskID uuid.UUID, updates map[string]interface{}) error
	MoveTask(ctx context.Context, taskID, newColumnID uuid.UUID, position int) error
	AddLabel(ctx context.Context, taskID uuid.UUID, name, color string) (*model.TaskLabel, error)
	RemoveLabel(ctx context.Context, taskID uuid.UUID, name string) error
	AddAssignee(ctx context.Context, taskID, userID uuid.UUID, initials string) (*model.TaskAssignee, error)
	RemoveAssignee(ctx context.Context, taskID, userID uuid.UUID) error
	AddChecklistItem(ctx context.Context, taskID uuid.UUID, text string) (*model.ChecklistItem, error)
	SetChecklistItemDone(ctx context.Context, itemID uuid.UUID, done bool) error
	AddComment(ctx context.Context, taskID uuid.UUID, author, content string) (*model.Comment, error)
	CreateAttachmentRecord(ctx context.Context, params AttachmentParams) (*model.Attachment, error)
}

// StoreGateway implements Gateway on top of the gorm repositories.
type StoreGateway struct {
	boards      *repository.BoardRepository
	columns     *repository.ColumnRepository
	tasks       *repository.TaskRepository
	labels      *repository.LabelRepository
	assignees   *repository.AssigneeRepository
	checklists  *repository.ChecklistRepository
	attachments *repository.AttachmentRepository
	comments    *repository.CommentRepository
}

var _ Gateway = (*StoreGateway)(nil)

func NewStoreGateway(
	boards *repository.BoardRepository,
	columns *repository.ColumnRepository,
	tasks *repository.TaskRepository,
	labels *repository.LabelRepository,
	assignees *repository.AssigneeRepository,
	checklists *repository.ChecklistRepository,
	attachments *repository.AttachmentRepository,
	comments *repository.CommentRepository,
) *StoreGateway {
	return &StoreGateway{
		boards:      boards,
		columns:     columns,
		tasks:       tasks,
		labels:      labels,
		assignees:   assignees,
		checklists:  checklists,
		attachments: attachments,
		comments:    comments,
	}
}

func (g *StoreGateway) GetBoardByType(ctx context.Context, boardType string) (*model.Board, error) {
	return g.boards.GetByType(ctx, boardType)
}

func (g *StoreGateway) GetColumnsByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	return g.columns.GetByBoardID(ctx, boardID)
}

func (g *StoreGateway) CreateDefaultColumns(ctx context.Context, boardID uuid.UUID, titles []string) ([]model.Column, error) {
	return g.columns.CreateDefaults(ctx, boardID, titles)
}

func (g *StoreGateway) GetTasksWithDetails(ctx context.Context, columnIDs []uuid.UUID) ([]model.Task, error) {
	return g.tasks.GetWithDetails(ctx, columnIDs)
}

func (g *StoreGateway) CreateTask(ctx context.Context, params CreateTaskParams) (*model.Task, error) {
	task := &model.Task{
		BoardID:     params.BoardID,
		ColumnID:    params.ColumnID,
		Title:       params.Title,
		Description: params.Description,
		Priority:    params.Priority,
		DueDate:     params.DueDate,
		Position:    params.Position,
	}
	if err := g.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (g *StoreGateway) UpdateTask(ctx context.Context, taskID uuid.UUID, updates map[string]interface{}) error {
	return g.tasks.UpdateFields(ctx, taskID, updates)
}

func (g *StoreGateway) MoveTask(ctx context.Context, taskID, newColumnID uuid.UUID, position int) error {
	return g.tasks.Move(ctx, taskID, newColumnID, position)
}

func (g *StoreGateway) AddLabel(ctx context.Context, taskID uuid.UUID, name, color string) (*model.TaskLabel, error) {
	return g.labels.Add(ctx, taskID, name, color)
}

func (g *StoreGateway) RemoveLabel(ctx context.Context, taskID uuid.UUID, name string) error {
	return g.labels.RemoveByName(ctx, taskID, name)
}

func (g *StoreGateway) AddAssignee(ctx context.Context, taskID, userID uuid.UUID, initials string) (*model.TaskAssignee, error) {
	return g.assignees.Add(ctx, taskID, userID, initials)
}

func (g *StoreGateway) RemoveAssignee(ctx context.Context, taskID, userID uuid.UUID) error {
	return g.assignees.Remove(ctx, taskID, userID)
}

func (g *StoreGateway) AddChecklistItem(ctx context.Context, taskID uuid.UUID, text string) (*model.ChecklistItem, error) {
	item := &model.ChecklistItem{
		TaskID: taskID,
		Text:   text,
	}
	if err := g.checklists.Add(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (g *StoreGateway) SetChecklistItemDone(ctx context.Context, itemID uuid.UUID, done bool) error {
	return g.checklists.SetCompleted(ctx, itemID, done)
}

func (g *StoreGateway) AddComment(ctx context.Context, taskID uuid.UUID, author, content string) (*model.Comment, error) {
	comment := &model.Comment{
		TaskID:     taskID,
		AuthorName: author,
		Content:    content,
	}
	if err := g.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (g *StoreGateway) CreateAttachmentRecord(ctx context.Context, params AttachmentParams) (*model.Attachment, error) {
	attachment := &model.Attachment{
		TaskID: params.TaskID,
		Name:   params.Name,
		URL:    params.URL,
		Type:   params.Type,
		Size:   params.Size,
	}
	if err := g.attachments.Create(ctx, attachment); err != nil {
		return nil, err
	}
	return attachment, nil
}
