package board

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"qualiboard/internal/blob"
	"qualiboard/internal/model"
)

// DefaultColumns maps a board type to the column titles seeded on first
// use. Unknown types fall back to the maintenance set.
var DefaultColumns = map[string][]string{
	model.BoardTypeMaintenance: {"Pendiente", "En Proceso", "Completado"},
	model.BoardTypeProjects:    {"Por Hacer", "En Progreso", "En Revisión", "Completado"},
}

var (
	ErrBoardNotLoaded = errors.New("board not loaded")
	ErrUnknownBoard   = errors.New("unknown board")
	ErrTaskNotFound   = errors.New("task not in board state")
	ErrBadPriority    = errors.New("invalid priority")
)

// FieldPatch is a partial task update from the detail editor. Nil fields
// are left untouched; SetDueDate with a nil DueDate clears the date.
type FieldPatch struct {
	Title       *string
	Description *string
	Priority    *string
	DueDate     *time.Time
	SetDueDate  bool
}

// Service is the orchestration layer between the HTTP handlers and the
// remote store. It owns all writes to the in-memory Store, keeps local
// and remote state converging after every mutation, and emits a
// notification for every operation outcome.
//
// Mutation strategy: task creation and relation toggles are pessimistic
// (remote first, reflect locally on success); moves are optimistic with
// a full reload as the rollback path.
type Service struct {
	gw       Gateway
	blobs    blob.Store
	store    *Store
	cache    *SnapshotCache
	notifier Notifier
	log      *logrus.Logger
}

func NewService(gw Gateway, blobs blob.Store, store *Store, cache *SnapshotCache, notifier Notifier, log *logrus.Logger) *Service {
	return &Service{
		gw:       gw,
		blobs:    blobs,
		store:    store,
		cache:    cache,
		notifier: notifier,
		log:      log,
	}
}

// Load resolves the board by type, seeds default columns on first use,
// fetches every task with its relations in one call and publishes the
// result. It is idempotent and doubles as the reconciliation path after
// a failed move.
func (s *Service) Load(ctx context.Context, boardType string) (*State, error) {
	gen := s.store.BeginLoad(boardType)

	b, err := s.gw.GetBoardByType(ctx, boardType)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve board %q: %w", boardType, err)
	}
	if b == nil {
		return nil, ErrUnknownBoard
	}

	columns, err := s.gw.GetColumnsByBoardID(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load columns: %w", err)
	}
	if len(columns) == 0 {
		titles, ok := DefaultColumns[boardType]
		if !ok {
			titles = DefaultColumns[model.BoardTypeMaintenance]
		}
		columns, err = s.gw.CreateDefaultColumns(ctx, b.ID, titles)
		if err != nil {
			return nil, fmt.Errorf("failed to seed default columns: %w", err)
		}
		s.log.WithFields(logrus.Fields{
			"board":   boardType,
			"columns": len(columns),
		}).Info("seeded default columns")
	}

	columnIDs := make([]uuid.UUID, len(columns))
	for i, c := range columns {
		columnIDs[i] = c.ID
	}

	tasks, err := s.gw.GetTasksWithDetails(ctx, columnIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	state := &State{
		Board:   *b,
		Columns: columns,
		Tasks:   make(map[uuid.UUID][]model.Task, len(columns)),
	}
	for _, id := range columnIDs {
		state.Tasks[id] = []model.Task{}
	}
	for _, t := range tasks {
		state.Tasks[t.ColumnID] = append(state.Tasks[t.ColumnID], t)
	}

	if !s.store.Publish(boardType, gen, state) {
		// A newer load owns the board; serve its result when available
		// and never let the superseded state reach the snapshot cache.
		if fresh, ok := s.store.Snapshot(boardType); ok {
			return fresh, nil
		}
		return state, nil
	}
	s.cache.Store(ctx, boardType, state)
	return state, nil
}

// Snapshot returns the current board state without touching the remote
// store, falling back to the redis snapshot before the first load.
func (s *Service) Snapshot(ctx context.Context, boardType string) (*State, bool) {
	if state, ok := s.store.Snapshot(boardType); ok {
		return state, true
	}
	return s.cache.Fetch(ctx, boardType)
}

// CreateTask persists a new task at the end of the column and appends it
// locally once the store confirms. No optimistic insert happens first.
func (s *Service) CreateTask(ctx context.Context, boardType string, columnID uuid.UUID, title, priority, description string, dueDate *time.Time) (*model.Task, error) {
	state, ok := s.store.Snapshot(boardType)
	if !ok {
		return nil, ErrBoardNotLoaded
	}
	if priority == "" {
		priority = model.PriorityMedia
	}
	if !model.ValidPriority(priority) {
		return nil, ErrBadPriority
	}

	task, err := s.gw.CreateTask(ctx, CreateTaskParams{
		BoardID:     state.Board.ID,
		ColumnID:    columnID,
		Title:       title,
		Description: description,
		Priority:    priority,
		DueDate:     dueDate,
		Position:    s.store.TaskCount(boardType, columnID),
	})
	if err != nil {
		s.notifyError(ctx, "Error al crear tarea", err)
		return nil, err
	}

	s.store.AppendTask(boardType, columnID, *task)
	s.cache.Evict(ctx, boardType)
	s.notify(ctx, NoteSuccess, "Tarea creada", fmt.Sprintf("%q agregada a la columna", task.Title))
	return task, nil
}

// ToggleLabel adds the label when the task does not carry its name and
// removes it when it does. The remote write happens first; local state
// changes only after the store confirms, so a failed toggle leaves the
// board exactly as it was.
func (s *Service) ToggleLabel(ctx context.Context, boardType string, taskID uuid.UUID, name, color string) error {
	task, _, ok := s.store.FindTask(boardType, taskID)
	if !ok {
		return ErrTaskNotFound
	}

	if task.HasLabel(name) {
		if err := s.gw.RemoveLabel(ctx, taskID, name); err != nil {
			s.notifyError(ctx, "Error al quitar etiqueta", err)
			return err
		}
		s.store.PatchTask(boardType, taskID, func(t *model.Task) {
			kept := make([]model.TaskLabel, 0, len(t.Labels))
			for _, l := range t.Labels {
				if l.Name != name {
					kept = append(kept, l)
				}
			}
			t.Labels = kept
		})
	} else {
		label, err := s.gw.AddLabel(ctx, taskID, name, color)
		if err != nil {
			s.notifyError(ctx, "Error al agregar etiqueta", err)
			return err
		}
		s.store.PatchTask(boardType, taskID, func(t *model.Task) {
			t.Labels = append(t.Labels, *label)
		})
	}
	s.cache.Evict(ctx, boardType)
	return nil
}

// ToggleAssignee mirrors ToggleLabel, keyed by user id membership.
func (s *Service) ToggleAssignee(ctx context.Context, boardType string, taskID, userID uuid.UUID, initials string) error {
	task, _, ok := s.store.FindTask(boardType, taskID)
	if !ok {
		return ErrTaskNotFound
	}

	if task.HasAssignee(userID) {
		if err := s.gw.RemoveAssignee(ctx, taskID, userID); err != nil {
			s.notifyError(ctx, "Error al desasignar usuario", err)
			return err
		}
		s.store.PatchTask(boardType, taskID, func(t *model.Task) {
			kept := make([]model.TaskAssignee, 0, len(t.Assignees))
			for _, a := range t.Assignees {
				if a.UserID != userID {
					kept = append(kept, a)
				}
			}
			t.Assignees = kept
		})
	} else {
		assignee, err := s.gw.AddAssignee(ctx, taskID, userID, initials)
		if err != nil {
			s.notifyError(ctx, "Error al asignar usuario", err)
			return err
		}
		s.store.PatchTask(boardType, taskID, func(t *model.Task) {
			t.Assignees = append(t.Assignees, *assignee)
		})
	}
	s.cache.Evict(ctx, boardType)
	return nil
}

// MoveTask applies the move locally first, then writes it to the store.
// The moved task is always appended at the end of the destination
// column. On remote failure the whole board is reloaded, which discards
// the optimistic transition and reconciles with the store's truth.
func (s *Service) MoveTask(ctx context.Context, boardType string, taskID, sourceColID, destColID uuid.UUID) error {
	if sourceColID == destColID {
		return nil
	}

	position, ok := s.store.MoveTask(boardType, taskID, sourceColID, destColID)
	if !ok {
		return ErrTaskNotFound
	}

	if err := s.gw.MoveTask(ctx, taskID, destColID, position); err != nil {
		s.notifyError(ctx, "Error al mover tarea", err)
		if _, rerr := s.Load(ctx, boardType); rerr != nil {
			s.log.WithError(rerr).Error("reconciliation reload failed after move")
		}
		return err
	}
	s.cache.Evict(ctx, boardType)
	return nil
}

// UpdateTaskFields maps the editor patch to store column names and
// issues one partial update, then writes the confirmed values through
// the canonical column list.
func (s *Service) UpdateTaskFields(ctx context.Context, boardType string, taskID uuid.UUID, patch FieldPatch) error {
	if _, _, ok := s.store.FindTask(boardType, taskID); !ok {
		return ErrTaskNotFound
	}

	updates := make(map[string]interface{})
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Priority != nil {
		if !model.ValidPriority(*patch.Priority) {
			return ErrBadPriority
		}
		updates["priority"] = *patch.Priority
	}
	if patch.SetDueDate {
		updates["due_date"] = patch.DueDate
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.gw.UpdateTask(ctx, taskID, updates); err != nil {
		s.notifyError(ctx, "Error al actualizar tarea", err)
		return err
	}

	s.store.PatchTask(boardType, taskID, func(t *model.Task) {
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		if patch.SetDueDate {
			t.DueDate = patch.DueDate
		}
	})
	s.cache.Evict(ctx, boardType)
	return nil
}

// UploadAttachment stores the binary first, then persists the metadata
// row referencing the returned URL, and finally reflects the attachment
// into the canonical task.
func (s *Service) UploadAttachment(ctx context.Context, boardType string, taskID uuid.UUID, fileName, contentType string, size int64, r io.Reader) (*model.Attachment, error) {
	if _, _, ok := s.store.FindTask(boardType, taskID); !ok {
		return nil, ErrTaskNotFound
	}

	url, err := s.blobs.Put(ctx, fileName, contentType, r)
	if err != nil {
		s.notifyError(ctx, "Error al subir archivo", err)
		return nil, err
	}

	attachment, err := s.gw.CreateAttachmentRecord(ctx, AttachmentParams{
		TaskID: taskID,
		Name:   fileName,
		URL:    url,
		Type:   contentType,
		Size:   size,
	})
	if err != nil {
		s.notifyError(ctx, "Error al registrar archivo", err)
		return nil, err
	}

	s.store.PatchTask(boardType, taskID, func(t *model.Task) {
		t.Attachments = append(t.Attachments, *attachment)
	})
	s.cache.Evict(ctx, boardType)
	s.notify(ctx, NoteSuccess, "Archivo adjuntado", fileName)
	return attachment, nil
}

// AddChecklistItem persists a checklist entry and reflects it locally.
func (s *Service) AddChecklistItem(ctx context.Context, boardType string, taskID uuid.UUID, text string) (*model.ChecklistItem, error) {
	if _, _, ok := s.store.FindTask(boardType, taskID); !ok {
		return nil, ErrTaskNotFound
	}

	item, err := s.gw.AddChecklistItem(ctx, taskID, text)
	if err != nil {
		s.notifyError(ctx, "Error al agregar ítem", err)
		return nil, err
	}
	s.store.PatchTask(boardType, taskID, func(t *model.Task) {
		t.Checklist = append(t.Checklist, *item)
	})
	s.cache.Evict(ctx, boardType)
	return item, nil
}

// ToggleChecklistItem flips the completed flag of a checklist entry.
func (s *Service) ToggleChecklistItem(ctx context.Context, boardType string, taskID, itemID uuid.UUID) error {
	task, _, ok := s.store.FindTask(boardType, taskID)
	if !ok {
		return ErrTaskNotFound
	}

	var done bool
	found := false
	for _, item := range task.Checklist {
		if item.ID == itemID {
			done = !item.Completed
			found = true
			break
		}
	}
	if !found {
		return ErrTaskNotFound
	}

	if err := s.gw.SetChecklistItemDone(ctx, itemID, done); err != nil {
		s.notifyError(ctx, "Error al actualizar ítem", err)
		return err
	}
	s.store.PatchTask(boardType, taskID, func(t *model.Task) {
		for i := range t.Checklist {
			if t.Checklist[i].ID == itemID {
				t.Checklist[i].Completed = done
			}
		}
	})
	s.cache.Evict(ctx, boardType)
	return nil
}

// AddComment persists a comment and reflects it locally.
func (s *Service) AddComment(ctx context.Context, boardType string, taskID uuid.UUID, author, content string) (*model.Comment, error) {
	if _, _, ok := s.store.FindTask(boardType, taskID); !ok {
		return nil, ErrTaskNotFound
	}

	comment, err := s.gw.AddComment(ctx, taskID, author, content)
	if err != nil {
		s.notifyError(ctx, "Error al comentar", err)
		return nil, err
	}
	s.store.PatchTask(boardType, taskID, func(t *model.Task) {
		t.Comments = append(t.Comments, *comment)
	})
	s.cache.Evict(ctx, boardType)
	return comment, nil
}

func (s *Service) notify(ctx context.Context, kind, title, message string) {
	s.notifier.Publish(ctx, Notification{Type: kind, Title: title, Message: message})
}

func (s *Service) notifyError(ctx context.Context, title string, err error) {
	s.notifier.Publish(ctx, Notification{Type: NoteError, Title: title, Message: err.Error()})
}
