package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/taskmaster/internal/model"
	"github.com/existflow/taskmaster/internal/view"
)

// filtered applies the category, view and q query parameters.
// ok is false for an unknown view.
func (s *Server) filtered(c echo.Context) (tasks []model.Task, ok bool) {
	v, ok := view.ParseSmart(c.QueryParam("view"))
	if !ok {
		return nil, false
	}

	tasks = s.session.ListTasks()
	if id := c.QueryParam("category"); id != "" {
		tasks = view.FilterByCategory(tasks, &id)
	}
	tasks = view.Apply(tasks, v, s.now())
	return view.Search(tasks, c.QueryParam("q")), true
}

func (s *Server) handleListTasks(c echo.Context) error {
	tasks, ok := s.filtered(c)
	if !ok {
		return badRequest(c, "unknown view "+c.QueryParam("view"))
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleStats(c echo.Context) error {
	tasks, ok := s.filtered(c)
	if !ok {
		return badRequest(c, "unknown view "+c.QueryParam("view"))
	}
	return c.JSON(http.StatusOK, view.ComputeStats(tasks))
}

func (s *Server) handleCreateTask(c echo.Context) error {
	var in model.TaskInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request")
	}

	task, err := s.session.AddTask(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

func (s *Server) handleGetTask(c echo.Context) error {
	id := c.Param("id")
	task, err := s.session.GetTask(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	id := c.Param("id")

	var patch model.TaskPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "invalid request")
	}

	task, err := s.session.UpdateTask(id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleToggleTask(c echo.Context) error {
	id := c.Param("id")

	task, err := s.session.ToggleTaskComplete(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	id := c.Param("id")

	if err := s.session.DeleteTask(id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
