package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"crmlite/internal/domain"
	applog "crmlite/internal/log"
	"crmlite/internal/repos"
	"crmlite/internal/validate"
)

// crud drives the list / display / save cycle of one maintenance page.
type crud struct {
	repo  *repos.EntityRepo
	tmpl  string // template, also the log action prefix
	param string // field carrying the selected id
	flags []string
	lists func(ctx context.Context) (fiber.Map, error)
}

// page renders the maintenance template with freshly loaded selection lists.
func (h *crud) page(c *fiber.Ctx, status int, rec domain.Record, out *domain.Outcome) error {
	data, err := h.lists(c.UserContext())
	if err != nil {
		applog.Error(c, h.tmpl+".list.fail", err, nil)
		return failPage(c, fiber.StatusInternalServerError, "Could not load "+h.tmpl)
	}
	data["Selected"] = rec.Fields
	if out != nil {
		data["Message"] = out.Message
		data["Failed"] = !out.OK()
	}
	return render(c.Status(status), h.tmpl, data)
}

// List shows the page with a blank record.
func (h *crud) List(c *fiber.Ctx) error {
	return h.page(c, fiber.StatusOK, h.repo.Empty(), nil)
}

// Display shows the page filled with the selected record. An unknown or
// blank selection shows a blank record.
func (h *crud) Display(c *fiber.Ctx) error {
	rec, _, err := h.repo.Fetch(c.UserContext(), param(c, h.param))
	if err != nil {
		applog.Error(c, h.tmpl+".display.fail", err, map[string]any{"id": param(c, h.param)})
		return failPage(c, fiber.StatusInternalServerError, "Could not load "+h.tmpl)
	}
	return h.page(c, fiber.StatusOK, rec, nil)
}

// Save applies the submitted action. A failure keeps the submitted record on
// screen; a success clears it.
func (h *crud) Save(c *fiber.Ctx) error {
	rec := h.repo.Empty()
	for _, col := range rec.Columns {
		rec.Set(col, c.FormValue(col))
	}
	for _, f := range h.flags {
		rec.Set(f, validate.Flag(rec.Get(f)))
	}

	op, ok := validate.Action(c.FormValue("action"))
	if !ok {
		out := domain.Invalid("", "Please, choose update, new or delete")
		return h.page(c, fiber.StatusBadRequest, rec, &out)
	}

	out := h.repo.Apply(c.UserContext(), op, rec)
	fields := map[string]any{"id": out.ID, "op": string(op), "outcome": out.Kind.String()}
	switch out.Kind {
	case domain.OutcomeSuccess:
		fields["count"] = out.Count
		applog.Audit(c, h.tmpl+".save", fields)
		return h.page(c, fiber.StatusOK, h.repo.Empty(), &out)
	case domain.OutcomeStoreError:
		applog.Error(c, h.tmpl+".save.fail", out.Err, fields)
		return h.page(c, fiber.StatusInternalServerError, rec, &out)
	case domain.OutcomeNotFound:
		applog.Info(c, h.tmpl+".save.reject", fields)
		return h.page(c, fiber.StatusNotFound, rec, &out)
	case domain.OutcomeDuplicateKey:
		applog.Info(c, h.tmpl+".save.reject", fields)
		return h.page(c, fiber.StatusConflict, rec, &out)
	default:
		applog.Info(c, h.tmpl+".save.reject", fields)
		return h.page(c, fiber.StatusBadRequest, rec, &out)
	}
}
