package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"qualiboard/internal/board"
	"qualiboard/internal/middleware"
	"qualiboard/internal/repository"
)

type TaskHandler struct {
	service  *board.Service
	userRepo repository.UserRepositoryInterface
}

func NewTaskHandler(service *board.Service, userRepo repository.UserRepositoryInterface) *TaskHandler {
	return &TaskHandler{
		service:  service,
		userRepo: userRepo,
	}
}

type taskCreateRequest struct {
	ColumnID    string     `json:"column_id" binding:"required,uuid"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

type taskMoveRequest struct {
	SourceColumnID string `json:"source_column_id" binding:"required,uuid"`
	DestColumnID   string `json:"dest_column_id" binding:"required,uuid"`
}

type taskUpdateRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	ClearDue    bool       `json:"clear_due_date"`
}

type labelToggleRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

type assigneeToggleRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

type checklistRequest struct {
	Text string `json:"text" binding:"required"`
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// Create adds a task at the end of a column.
func (h *TaskHandler) Create(c *gin.Context) {
	boardType := c.Param("type")

	var req taskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	columnID, err := uuid.Parse(req.ColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	task, err := h.service.CreateTask(c.Request.Context(), boardType, columnID, req.Title, req.Priority, req.Description, req.DueDate)
	if err != nil {
		switch {
		case errors.Is(err, board.ErrBoardNotLoaded):
			c.JSON(http.StatusConflict, gin.H{"error": "Board not loaded"})
		case errors.Is(err, board.ErrBadPriority):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		}
		return
	}

	c.JSON(http.StatusCreated, buildTaskResponse(task))
}

// Move transfers a task between columns, appending it at the end of the
// destination.
func (h *TaskHandler) Move(c *gin.Context) {
	boardType := c.Param("type")

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req taskMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	sourceID, err := uuid.Parse(req.SourceColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}
	destID, err := uuid.Parse(req.DestColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	if err := h.service.MoveTask(c.Request.Context(), boardType, taskID, sourceID, destID); err != nil {
		if errors.Is(err, board.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move task"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Update applies a partial edit from the task detail editor.
func (h *TaskHandler) Update(c *gin.Context) {
	boardType := c.Param("type")

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req taskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	patch := board.FieldPatch{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	}
	if req.ClearDue {
		patch.SetDueDate = true
	} else if req.DueDate != nil {
		patch.SetDueDate = true
		patch.DueDate = req.DueDate
	}

	if err := h.service.UpdateTaskFields(c.Request.Context(), boardType, taskID, patch); err != nil {
		switch {
		case errors.Is(err, board.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, board.ErrBadPriority):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleLabel adds the label when absent, removes it when present.
func (h *TaskHandler) ToggleLabel(c *gin.Context) {
	boardType := c.Param("type")

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req labelToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.service.ToggleLabel(c.Request.Context(), boardType, taskID, req.Name, req.Color); err != nil {
		if errors.Is(err, board.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle label"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleAssignee assigns or unassigns the user, keyed by membership.
func (h *TaskHandler) ToggleAssignee(c *gin.Context) {
	boardType := c.Param("type")

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req assigneeToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	user, err := h.userRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := h.service.ToggleAssignee(c.Request.Context(), boardType, taskID, userID, user.Initials()); err != nil {
		if errors.Is(err, board.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle assignee"})
		return
	}

	c.Status(http.StatusNoContent)
}

// AddChecklistItem appends an item to the task checklist.
func (h *TaskHandler) AddChecklistItem(c *gin.Context) {
	boardType := c.Param("type")

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req checklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	item, err := h.service.AddChecklistItem(c.Request.Context(), boardType, taskID, req.Text)
	if err != nil {
		if errors.Is(err, board.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add checklist item"})
		return
	}

	c.JSON(http.StatusCreated, ChecklistResponse{
		ID:        item.ID.String(),
		Text:      item.Text,
		Completed: item.Completed,
	})
}

// ToggleChecklistItem flips an item's completed flag.
func (h *TaskHandler) ToggleChecklistItem(c *gin.Context) {
	boardType := c.Param("type")

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID format"})
		return
	}

	if err := h.service.ToggleChecklistItem(c.Request.Context(), boardType, taskID, itemID); err != nil {
		if errors.Is(err, board.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle checklist item"})
		return
	}

	c.Status(http.StatusNoContent)
}

// AddComment records a comment authored by the authenticated user.
func (h *TaskHandler) AddComment(c *gin.Context) {
	boardType := c.Param("type")

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	author := "Desconocido"
	if userID, exists := c.Get(middleware.UserIDKey); exists {
		if id, ok := userID.(uuid.UUID); ok {
			if user, err := h.userRepo.GetByID(c.Request.Context(), id); err == nil && user != nil {
				author = user.Name
			}
		}
	}

	comment, err := h.service.AddComment(c.Request.Context(), boardType, taskID, author, req.Content)
	if err != nil {
		if errors.Is(err, board.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	c.JSON(http.StatusCreated, CommentResponse{
		ID:        comment.ID.String(),
		Author:    comment.AuthorName,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt.Format(time.RFC3339),
	})
}

// UploadAttachment stores the binary and records its metadata.
func (h *TaskHandler) UploadAttachment(c *gin.Context) {
	boardType := c.Param("type")

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer f.Close()

	attachment, err := h.service.UploadAttachment(
		c.Request.Context(),
		boardType,
		taskID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		f,
	)
	if err != nil {
		if errors.Is(err, board.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload attachment"})
		return
	}

	c.JSON(http.StatusCreated, AttachmentResponse{
		ID:   attachment.ID.String(),
		Name: attachment.Name,
		URL:  attachment.URL,
		Type: attachment.Type,
		Size: attachment.Size,
	})
}
