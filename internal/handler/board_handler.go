package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"qualiboard/internal/advisor"
	"qualiboard/internal/board"
	"qualiboard/internal/model"
)

type BoardHandler struct {
	service *board.Service
	advisor *advisor.Advisor
}

func NewBoardHandler(service *board.Service, adv *advisor.Advisor) *BoardHandler {
	return &BoardHandler{
		service: service,
		advisor: adv,
	}
}

// BoardResponse is the denormalized board payload the kanban view renders.
type BoardResponse struct {
	ID      string           `json:"id"`
	Type    string           `json:"type"`
	Columns []ColumnResponse `json:"columns"`
}

type ColumnResponse struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Position int            `json:"position"`
	Tasks    []TaskResponse `json:"tasks"`
}

type TaskResponse struct {
	ID          string               `json:"id"`
	ColumnID    string               `json:"column_id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Priority    string               `json:"priority"`
	DueDate     *string              `json:"due_date,omitempty"`
	Position    int                  `json:"position"`
	Labels      []LabelResponse      `json:"labels"`
	Assignees   []AssigneeResponse   `json:"assignees"`
	Checklist   []ChecklistResponse  `json:"checklist"`
	Attachments []AttachmentResponse `json:"attachments"`
	Comments    []CommentResponse    `json:"comments"`
}

type LabelResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type AssigneeResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Initials string `json:"initials"`
}

type ChecklistResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type AttachmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

type CommentResponse struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// Get returns the board, loading it from the store on first access.
func (h *BoardHandler) Get(c *gin.Context) {
	boardType := c.Param("type")

	state, ok := h.service.Snapshot(c.Request.Context(), boardType)
	if !ok {
		var err error
		state, err = h.service.Load(c.Request.Context(), boardType)
		if err != nil {
			if errors.Is(err, board.ErrUnknownBoard) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load board"})
			return
		}
	}

	c.JSON(http.StatusOK, buildBoardResponse(state))
}

// Reload forces a full refetch, discarding local state.
func (h *BoardHandler) Reload(c *gin.Context) {
	boardType := c.Param("type")

	state, err := h.service.Load(c.Request.Context(), boardType)
	if err != nil {
		if errors.Is(err, board.ErrUnknownBoard) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load board"})
		return
	}

	c.JSON(http.StatusOK, buildBoardResponse(state))
}

// Analyze returns an AI-generated summary of the board's health.
func (h *BoardHandler) Analyze(c *gin.Context) {
	if h.advisor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Analysis is not configured"})
		return
	}

	boardType := c.Param("type")
	state, ok := h.service.Snapshot(c.Request.Context(), boardType)
	if !ok {
		var err error
		state, err = h.service.Load(c.Request.Context(), boardType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load board"})
			return
		}
	}

	summary, err := h.advisor.SummarizeBoard(c.Request.Context(), state)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Analysis failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func buildBoardResponse(state *board.State) BoardResponse {
	resp := BoardResponse{
		ID:      state.Board.ID.String(),
		Type:    state.Board.Type,
		Columns: make([]ColumnResponse, 0, len(state.Columns)),
	}
	for _, col := range state.Columns {
		cr := ColumnResponse{
			ID:       col.ID.String(),
			Title:    col.Title,
			Position: col.Position,
			Tasks:    make([]TaskResponse, 0, len(state.Tasks[col.ID])),
		}
		for _, t := range state.Tasks[col.ID] {
			cr.Tasks = append(cr.Tasks, buildTaskResponse(&t))
		}
		resp.Columns = append(resp.Columns, cr)
	}
	return resp
}

func buildTaskResponse(t *model.Task) TaskResponse {
	tr := TaskResponse{
		ID:          t.ID.String(),
		ColumnID:    t.ColumnID.String(),
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Position:    t.Position,
		Labels:      make([]LabelResponse, 0, len(t.Labels)),
		Assignees:   make([]AssigneeResponse, 0, len(t.Assignees)),
		Checklist:   make([]ChecklistResponse, 0, len(t.Checklist)),
		Attachments: make([]AttachmentResponse, 0, len(t.Attachments)),
		Comments:    make([]CommentResponse, 0, len(t.Comments)),
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(time.RFC3339)
		tr.DueDate = &due
	}
	for _, l := range t.Labels {
		tr.Labels = append(tr.Labels, LabelResponse{ID: l.ID.String(), Name: l.Name, Color: l.Color})
	}
	for _, a := range t.Assignees {
		tr.Assignees = append(tr.Assignees, AssigneeResponse{ID: a.ID.String(), UserID: a.UserID.String(), Initials: a.UserInitials})
	}
	for _, item := range t.Checklist {
		tr.Checklist = append(tr.Checklist, ChecklistResponse{ID: item.ID.String(), Text: item.Text, Completed: item.Completed})
	}
	for _, att := range t.Attachments {
		tr.Attachments = append(tr.Attachments, AttachmentResponse{
			ID:   att.ID.String(),
			Name: att.Name,
			URL:  att.URL,
			Type: att.Type,
			Size: att.Size,
		})
	}
	for _, cm := range t.Comments {
		tr.Comments = append(tr.Comments, CommentResponse{
			ID:        cm.ID.String(),
			Author:    cm.AuthorName,
			Content:   cm.Content,
			CreatedAt: cm.CreatedAt.Format(time.RFC3339),
		})
	}
	return tr
}
