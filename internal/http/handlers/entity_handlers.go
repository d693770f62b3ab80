package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"crmlite/internal/repos"
)

// UserHandler serves /users.
type UserHandler struct{ crud }

func NewUserHandler(users *repos.UserRepo) *UserHandler {
	return &UserHandler{crud{
		repo:  users.EntityRepo,
		tmpl:  "users",
		param: "userId",
		flags: []string{"customer", "supplier", "admin"},
		lists: func(ctx context.Context) (fiber.Map, error) {
			ids, err := users.ListIDs(ctx)
			return fiber.Map{"Users": ids}, err
		},
	}}
}

// ProductHandler serves /products.
type ProductHandler struct{ crud }

func NewProductHandler(products *repos.ProductRepo) *ProductHandler {
	return &ProductHandler{crud{
		repo:  products.EntityRepo,
		tmpl:  "products",
		param: "productId",
		lists: func(ctx context.Context) (fiber.Map, error) {
			ids, err := products.ListIDs(ctx)
			return fiber.Map{"Products": ids}, err
		},
	}}
}

// ActivityHandler serves /activity. Its page also offers the product and
// user identifiers to pick from.
type ActivityHandler struct{ crud }

func NewActivityHandler(activity *repos.ActivityRepo, products *repos.ProductRepo, users *repos.UserRepo) *ActivityHandler {
	return &ActivityHandler{crud{
		repo:  activity.EntityRepo,
		tmpl:  "activity",
		param: "activityId",
		lists: func(ctx context.Context) (fiber.Map, error) {
			refs, err := activity.ListRefs(ctx)
			if err != nil {
				return nil, err
			}
			pids, err := products.ListIDs(ctx)
			if err != nil {
				return nil, err
			}
			uids, err := users.ListIDs(ctx)
			if err != nil {
				return nil, err
			}
			return fiber.Map{"Activities": refs, "Products": pids, "Users": uids}, nil
		},
	}}
}
