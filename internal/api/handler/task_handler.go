package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// Create stores a new task owned by the caller.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task fields"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id, err := h.service.Create(c.Request().Context(), ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Claims:      claims,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "task created successfully", createTaskResponse{TaskID: id})
}

// List returns a page of the caller's tasks; admins may pass all=true to see
// every user's tasks.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        all     query     bool    false  "List all users' tasks (admin only)"
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Page number"     default(1)
// @Param        limit   query     int     false  "Items per page"  default(10)
// @Success      200     {object}  envelope
// @Failure      400     {object}  envelope
// @Failure      401     {object}  envelope
// @Router       /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	// Pagination inputs outside their bounds fall back to defaults rather
	// than failing the request.
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListTasksInput{
		All:    strings.EqualFold(c.QueryParam("all"), "true"),
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
		Claims: claims,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "tasks retrieved successfully", listTasksResponse{
		Tasks: toTaskResponses(result.Tasks),
		Pagination: paginationResponse{
			Total: result.Total,
			Page:  result.Page,
			Limit: result.Limit,
			Pages: result.Pages,
		},
	})
}

// Get returns a single task to its owner or to an admin.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  envelope
// @Failure      403  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.service.Get(c.Request().Context(), id, claims)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "task retrieved successfully", toTaskResponse(task))
}

// Update applies a partial update. Owner only.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Task ID"
// @Param        body  body      updateTaskRequest  true  "Fields to update"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      403   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.service.Update(c.Request().Context(), id, ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Claims:      claims,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "task updated successfully", toTaskResponse(task))
}

// Delete removes a task for its owner or for an admin.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  envelope
// @Failure      403  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	id, err := taskID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id, claims); err != nil {
		return err
	}

	return respond(c, http.StatusOK, "task deleted successfully", nil)
}

// AdminList returns tasks across all users with optional filters. Admin only.
//
// @Summary      List every user's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status   query     string  false  "Filter by status"
// @Param        user_id  query     int     false  "Filter by owner"
// @Success      200      {object}  envelope
// @Failure      403      {object}  envelope
// @Router       /tasks/admin/all [get]
func (h *TaskHandler) AdminList(c echo.Context) error {
	var userID int64
	if raw := c.QueryParam("user_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id filter")
		}
		userID = parsed
	}

	tasks, err := h.service.AdminList(c.Request().Context(), ports.AdminListInput{
		Status: c.QueryParam("status"),
		UserID: userID,
	})
	if err != nil {
		return err
	}

	out := toTaskResponses(tasks)
	return respond(c, http.StatusOK, "all tasks retrieved successfully",
		adminListTasksResponse{Tasks: out, Total: len(out)})
}

// AdminDelete removes any task regardless of owner. Admin only.
//
// @Summary      Delete any task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  envelope
// @Failure      403  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /tasks/admin/{id} [delete]
func (h *TaskHandler) AdminDelete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	id, err := taskID(c)
	if err != nil {
		return err
	}

	if err := h.service.AdminDelete(c.Request().Context(), id, claims.UserID); err != nil {
		return err
	}

	return respond(c, http.StatusOK, "task deleted successfully", nil)
}

func taskID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}
	return id, nil
}
