package board

import (
	"sync"

	"github.com/google/uuid"

	"qualiboard/internal/model"
)

// State is the displayed truth for one board: its columns in order and a
// column-id-keyed map of ordered tasks with denormalized relations.
type State struct {
	Board   model.Board                `json:"board"`
	Columns []model.Column             `json:"columns"`
	Tasks   map[uuid.UUID][]model.Task `json:"tasks"`
}

// Store holds the in-memory state of every loaded board. Only the board
// service writes it; handlers read snapshots. A per-board generation
// counter discards loads that finish after a newer load started, so a
// stale response can never clobber fresher state.
type Store struct {
	mu     sync.RWMutex
	boards map[string]*entry
}

type entry struct {
	state     *State
	published uint64
	nextGen   uint64
}

func NewStore() *Store {
	return &Store{boards: make(map[string]*entry)}
}

func (s *Store) get(boardType string) *entry {
	e, ok := s.boards[boardType]
	if !ok {
		e = &entry{}
		s.boards[boardType] = e
	}
	return e
}

// BeginLoad reserves a load generation for the board and returns it.
func (s *Store) BeginLoad(boardType string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.get(boardType)
	e.nextGen++
	return e.nextGen
}

// Publish installs freshly loaded state. It reports false, leaving the
// store untouched, when a newer load has already begun.
func (s *Store) Publish(boardType string, gen uint64, state *State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.get(boardType)
	if gen < e.nextGen || gen <= e.published {
		return false
	}
	e.published = gen
	e.state = state
	return true
}

// Snapshot returns a copy of the board state safe for concurrent reads.
func (s *Store) Snapshot(boardType string) (*State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.boards[boardType]
	if !ok || e.state == nil {
		return nil, false
	}
	return copyState(e.state), true
}

// AppendTask adds a confirmed task to the end of its column.
func (s *Store) AppendTask(boardType string, columnID uuid.UUID, task model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.boards[boardType]
	if e == nil || e.state == nil {
		return
	}
	e.state.Tasks[columnID] = append(e.state.Tasks[columnID], task)
}

// TaskCount reports how many tasks the column currently holds.
func (s *Store) TaskCount(boardType string, columnID uuid.UUID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.boards[boardType]
	if !ok || e.state == nil {
		return 0
	}
	return len(e.state.Tasks[columnID])
}

// FindTask looks up a task by id across all columns and returns a copy
// along with the column holding it.
func (s *Store) FindTask(boardType string, taskID uuid.UUID) (model.Task, uuid.UUID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.boards[boardType]
	if !ok || e.state == nil {
		return model.Task{}, uuid.Nil, false
	}
	for colID, tasks := range e.state.Tasks {
		for _, t := range tasks {
			if t.ID == taskID {
				return t, colID, true
			}
		}
	}
	return model.Task{}, uuid.Nil, false
}

// PatchTask applies fn to the canonical copy of the task, wherever it
// lives. Every local update goes through here; there is no shadow
// "selected task" copy to drift out of sync.
func (s *Store) PatchTask(boardType string, taskID uuid.UUID, fn func(*model.Task)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.boards[boardType]
	if e == nil || e.state == nil {
		return false
	}
	for colID, tasks := range e.state.Tasks {
		for i := range tasks {
			if tasks[i].ID == taskID {
				fn(&e.state.Tasks[colID][i])
				return true
			}
		}
	}
	return false
}

// MoveTask splices the task out of the source column and appends it to
// the destination, updating its ColumnID and Position. This is the
// optimistic half of a move; the caller reconciles on remote failure.
func (s *Store) MoveTask(boardType string, taskID, sourceColID, destColID uuid.UUID) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.boards[boardType]
	if e == nil || e.state == nil {
		return 0, false
	}

	source := e.state.Tasks[sourceColID]
	idx := -1
	for i := range source {
		if source[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, false
	}

	task := source[idx]
	e.state.Tasks[sourceColID] = append(source[:idx:idx], source[idx+1:]...)

	position := len(e.state.Tasks[destColID])
	task.ColumnID = destColID
	task.Position = position
	e.state.Tasks[destColID] = append(e.state.Tasks[destColID], task)
	return position, true
}

func copyState(st *State) *State {
	out := &State{
		Board:   st.Board,
		Columns: append([]model.Column(nil), st.Columns...),
		Tasks:   make(map[uuid.UUID][]model.Task, len(st.Tasks)),
	}
	for colID, tasks := range st.Tasks {
		out.Tasks[colID] = append([]model.Task(nil), tasks...)
	}
	return out
}
