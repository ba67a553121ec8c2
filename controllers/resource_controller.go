package controller

import (
	"context"
	"errors"

	"octofit/serializers"
	"octofit/store"
	"octofit/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ResourceController serves the collection and item endpoints of one record type.
// M is the stored model, I the request payload and O the wire representation.
type ResourceController[M any, I serializers.Input[M], O any] struct {
	Name      string // path segment and API root key
	Label     string // human name used in messages
	Ordering  string // default ORDER BY for list
	Repo      *store.Repository[M]
	Serialize func(M) O
	// Conflicts rejects a record that would violate a uniqueness rule. Optional.
	Conflicts func(ctx context.Context, repo *store.Repository[M], record *M) error
	Logger    *logrus.Entry
}

func (rc *ResourceController[M, I, O]) ResourceName() string { return rc.Name }

// Register mounts the CRUD routes under router. Trailing slashes are optional
// because the app runs with non-strict routing.
func (rc *ResourceController[M, I, O]) Register(router fiber.Router) {
	group := router.Group("/" + rc.Name)
	group.Get("/", rc.List)
	group.Post("/", rc.Create)
	group.Get("/:id", rc.Retrieve)
	group.Put("/:id", rc.Replace)
	group.Patch("/:id", rc.PartialUpdate)
	group.Delete("/:id", rc.Destroy)
}

// List returns every record in the default ordering.
func (rc *ResourceController[M, I, O]) List(c *fiber.Ctx) error {
	records, err := rc.Repo.List(c.UserContext(), rc.Ordering)
	if err != nil {
		return rc.writeError(c, "list", err)
	}

	out := make([]O, 0, len(records))
	for _, record := range records {
		out = append(out, rc.Serialize(record))
	}
	rc.Logger.WithField("count", len(out)).Debug("Listed records")
	return c.JSON(out)
}

func (rc *ResourceController[M, I, O]) Retrieve(c *fiber.Ctx) error {
	record, err := rc.load(c)
	if err != nil {
		return rc.writeError(c, "fetch", err)
	}
	return c.JSON(rc.Serialize(*record))
}

// Create validates the full payload and stores a new record.
func (rc *ResourceController[M, I, O]) Create(c *fiber.Ctx) error {
	var input I
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := serializers.Validate[M](input, false); err != nil {
		return rc.writeError(c, "create", err)
	}

	record, err := input.Build()
	if err != nil {
		return rc.writeError(c, "create", err)
	}

	ctx := c.UserContext()
	if rc.Conflicts != nil {
		if err := rc.Conflicts(ctx, rc.Repo, &record); err != nil {
			return rc.writeError(c, "create", err)
		}
	}

	if err := rc.Repo.Create(ctx, &record); err != nil {
		return rc.writeError(c, "create", err)
	}

	out := rc.Serialize(record)
	rc.event("record_created", c)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Replace handles PUT: every required field must be present.
func (rc *ResourceController[M, I, O]) Replace(c *fiber.Ctx) error {
	return rc.update(c, false)
}

// PartialUpdate handles PATCH: only supplied fields are validated and written.
func (rc *ResourceController[M, I, O]) PartialUpdate(c *fiber.Ctx) error {
	return rc.update(c, true)
}

func (rc *ResourceController[M, I, O]) update(c *fiber.Ctx, partial bool) error {
	record, err := rc.load(c)
	if err != nil {
		return rc.writeError(c, "update", err)
	}

	var input I
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := serializers.Validate[M](input, partial); err != nil {
		return rc.writeError(c, "update", err)
	}

	if err := input.Apply(record); err != nil {
		return rc.writeError(c, "update", err)
	}

	ctx := c.UserContext()
	if rc.Conflicts != nil {
		if err := rc.Conflicts(ctx, rc.Repo, record); err != nil {
			return rc.writeError(c, "update", err)
		}
	}

	if err := rc.Repo.Update(ctx, record); err != nil {
		return rc.writeError(c, "update", err)
	}

	rc.event("record_updated", c)
	return c.JSON(rc.Serialize(*record))
}

func (rc *ResourceController[M, I, O]) Destroy(c *fiber.Ctx) error {
	id, err := store.ParseID(c.Params("id"))
	if err != nil {
		return rc.writeError(c, "delete", err)
	}

	if err := rc.Repo.Delete(c.UserContext(), id); err != nil {
		return rc.writeError(c, "delete", err)
	}

	rc.event("record_deleted", c)
	return c.SendStatus(fiber.StatusNoContent)
}

func (rc *ResourceController[M, I, O]) load(c *fiber.Ctx) (*M, error) {
	id, err := store.ParseID(c.Params("id"))
	if err != nil {
		return nil, err
	}
	return rc.Repo.Get(c.UserContext(), id)
}

func (rc *ResourceController[M, I, O]) event(eventType string, c *fiber.Ctx) {
	data := map[string]interface{}{
		"resource": rc.Name,
		"method":   c.Method(),
		"path":     c.Path(),
	}
	if id := c.Params("id"); id != "" {
		data["id"] = id
	}
	utils.LogEvent(eventType, data)
}

func (rc *ResourceController[M, I, O]) writeError(c *fiber.Ctx, op string, err error) error {
	var verr *serializers.ValidationError
	switch {
	case errors.As(err, &verr):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", verr)
	case errors.Is(err, store.ErrNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, rc.Label+" not found", nil)
	case errors.Is(err, store.ErrConflict):
		return utils.ErrorResponse(c, fiber.StatusConflict, rc.Label+" already exists", err)
	}

	utils.LogError("store_error", err, map[string]interface{}{
		"resource": rc.Name,
		"op":       op,
		"path":     c.Path(),
	})
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to "+op+" "+rc.Label, nil)
}
