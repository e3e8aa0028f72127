package handlers

import (
	"github.com/gofiber/fiber/v2"

	"usersvc/internal/api"
	"usersvc/internal/domain"
	applog "usersvc/internal/log"
	"usersvc/internal/services"
	"usersvc/internal/validate"
)

type UserHandler struct {
	Users services.UserService
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in domain.CreateUserInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, api.NewError(fiber.StatusBadRequest, "malformed request body"))
	}
	if fields := validate.Struct(in); fields != nil {
		return respondError(c, api.ValidationError(fields))
	}

	view, err := h.Users.Create(c.Context(), in)
	if err != nil {
		return fail(c, "user.create", err)
	}
	applog.Info(c, "user.create", map[string]any{"id": view.ID})
	return c.JSON(api.OK(view))
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, ok := userID(c)
	if !ok {
		return respondError(c, api.NewError(fiber.StatusBadRequest, "id must be a positive integer"))
	}

	view, err := h.Users.Get(c.Context(), id)
	if err != nil {
		return fail(c, "user.get", err)
	}
	return c.JSON(api.OK(view))
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	views, err := h.Users.GetAll(c.Context())
	if err != nil {
		return fail(c, "user.list", err)
	}
	return c.JSON(api.OK(views))
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := userID(c)
	if !ok {
		return respondError(c, api.NewError(fiber.StatusBadRequest, "id must be a positive integer"))
	}

	var in domain.UpdateUserInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, api.NewError(fiber.StatusBadRequest, "malformed request body"))
	}
	if fields := validate.Struct(in); fields != nil {
		return respondError(c, api.ValidationError(fields))
	}

	view, err := h.Users.Update(c.Context(), id, in)
	if err != nil {
		return fail(c, "user.update", err)
	}
	applog.Info(c, "user.update", map[string]any{"id": view.ID})
	return c.JSON(api.OK(view))
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := userID(c)
	if !ok {
		return respondError(c, api.NewError(fiber.StatusBadRequest, "id must be a positive integer"))
	}

	deleted, err := h.Users.Delete(c.Context(), id)
	if err != nil {
		return fail(c, "user.delete", err)
	}
	applog.Info(c, "user.delete", map[string]any{"id": id})
	return c.JSON(api.OK(deleted))
}

func userID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}

// fail maps a service error to the envelope and logs server-side failures.
func fail(c *fiber.Ctx, action string, err error) error {
	e := api.FromDomain(err)
	if e.Status >= fiber.StatusInternalServerError {
		applog.Error(c, action, err, nil)
	}
	return respondError(c, e)
}

func respondError(c *fiber.Ctx, e *api.Error) error {
	return c.Status(e.Status).JSON(e)
}
