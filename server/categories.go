package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/taskmaster/internal/model"
)

func (s *Server) handleListCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, s.session.ListCategories())
}

func (s *Server) handleCreateCategory(c echo.Context) error {
	var in model.CategoryInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request")
	}

	cat, err := s.session.AddCategory(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, cat)
}

func (s *Server) handleUpdateCategory(c echo.Context) error {
	id := c.Param("id")

	var patch model.CategoryPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "invalid request")
	}

	cat, err := s.session.UpdateCategory(id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (s *Server) handleDeleteCategory(c echo.Context) error {
	id := c.Param("id")

	if err := s.session.DeleteCategory(id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
