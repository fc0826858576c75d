// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/poscat-go/internal/middleware"
	"github.com/olegiv/poscat-go/internal/model"
)

// Routes builds the API router. Catalog reads are public, writes require
// a manager token and deletes require an admin token.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Language(h.registry))

	r.Get("/status", h.Status)
	r.Get("/languages", h.ListLanguages)
	r.Get("/languages/resolve", h.ResolveLanguage)

	r.With(middleware.LoginRateLimit(1, 5)).Post("/auth/login", h.Login)

	r.Get("/categories", h.ListCategories)
	r.Get("/categories/{id}", h.GetCategory)
	r.Get("/products", h.ListProducts)
	r.Get("/products/{id}", h.GetProduct)
	r.Get("/modifiers", h.ListModifiers)
	r.Get("/modifiers/{id}", h.GetModifier)
	r.Get("/combos", h.ListCombos)
	r.Get("/combos/{id}", h.GetCombo)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.tokens))

		r.Get("/auth/me", h.Me)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(model.RoleManager))

			r.Post("/categories", h.CreateCategory)
			r.Put("/categories/{id}", h.UpdateCategory)
			r.Post("/products", h.CreateProduct)
			r.Put("/products/{id}", h.UpdateProduct)
			r.Post("/modifiers", h.CreateModifier)
			r.Put("/modifiers/{id}", h.UpdateModifier)
			r.Post("/modifiers/{id}/options", h.CreateModifierOption)
			r.Put("/modifiers/{id}/options/{optionID}", h.UpdateModifierOption)
			r.Post("/combos", h.CreateCombo)
			r.Put("/combos/{id}", h.UpdateCombo)
			r.Post("/combos/{id}/items", h.CreateComboItem)

			r.Get("/media", h.ListMedia)
			r.Get("/media/{id}", h.GetMedia)
			r.Post("/media", h.UploadMedia)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin())

			r.Delete("/categories/{id}", h.DeleteCategory)
			r.Delete("/products/{id}", h.DeleteProduct)
			r.Delete("/modifiers/{id}", h.DeleteModifier)
			r.Delete("/modifiers/{id}/options/{optionID}", h.DeleteModifierOption)
			r.Delete("/combos/{id}", h.DeleteCombo)
			r.Delete("/combos/{id}/items/{itemID}", h.DeleteComboItem)
			r.Delete("/media/{id}", h.DeleteMedia)
		})
	})

	return r
}
