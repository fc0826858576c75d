// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/olegiv/poscat-go/internal/auth"
	"github.com/olegiv/poscat-go/internal/model"
)

// Default admin credentials
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"
)

// seedLanguageCodes is the language set installed on first run. English is
// the base language; changing the set is a deploy-time operation.
var seedLanguageCodes = []string{"en", "es", "fr", "ar"}

// Seed creates initial data: the admin user and the language set.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	if err := seedLanguages(ctx, queries); err != nil {
		return err
	}

	// Check if admin user already exists
	_, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		Name:         DefaultAdminName,
		Role:         model.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"email", user.Email,
		"password", DefaultAdminPassword,
	)

	return nil
}

// seedLanguages installs the default language set if no languages exist.
func seedLanguages(ctx context.Context, queries *Queries) error {
	count, err := queries.CountLanguages(ctx)
	if err != nil {
		return fmt.Errorf("counting languages: %w", err)
	}
	if count > 0 {
		return nil
	}

	known := make(map[string]struct {
		Name       string
		NativeName string
		Direction  string
	}, len(model.CommonLanguages))
	for _, l := range model.CommonLanguages {
		known[l.Code] = struct {
			Name       string
			NativeName string
			Direction  string
		}{l.Name, l.NativeName, l.Direction}
	}

	for i, code := range seedLanguageCodes {
		info, ok := known[code]
		if !ok {
			return fmt.Errorf("unknown seed language code %q", code)
		}
		_, err := queries.CreateLanguage(ctx, CreateLanguageParams{
			Code:       code,
			Name:       info.Name,
			NativeName: info.NativeName,
			IsDefault:  i == 0,
			IsActive:   true,
			Direction:  info.Direction,
			Position:   int64(i),
		})
		if err != nil {
			return fmt.Errorf("creating language %q: %w", code, err)
		}
	}

	slog.Info("seeded languages", "count", len(seedLanguageCodes), "default", seedLanguageCodes[0])
	return nil
}

// SeedDemo installs a small demo menu: one category with two products and
// Spanish translations, a size modifier and a combo. Used by POSCAT_DO_SEED.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	count, err := queries.CountCategories(ctx, false)
	if err != nil {
		return fmt.Errorf("counting categories: %w", err)
	}
	if count > 0 {
		slog.Info("catalog not empty, skipping demo seed")
		return nil
	}

	category, err := queries.CreateCategory(ctx, CreateCategoryParams{
		Name:        "Burgers",
		Slug:        "burgers",
		Description: "House-ground patties on brioche buns",
		IsActive:    true,
	})
	if err != nil {
		return fmt.Errorf("creating demo category: %w", err)
	}

	burger, err := queries.CreateProduct(ctx, CreateProductParams{
		CategoryID:  category.ID,
		Name:        "Classic Burger",
		Slug:        "classic-burger",
		Description: "Beef patty, lettuce, tomato, house sauce",
		SKU:         "BRG-001",
		PriceCents:  1095,
		IsAvailable: true,
	})
	if err != nil {
		return fmt.Errorf("creating demo product: %w", err)
	}

	fries, err := queries.CreateProduct(ctx, CreateProductParams{
		CategoryID:  category.ID,
		Name:        "French Fries",
		Slug:        "french-fries",
		Description: "Twice-cooked, sea salt",
		SKU:         "SID-001",
		PriceCents:  395,
		IsAvailable: true,
		Position:    1,
	})
	if err != nil {
		return fmt.Errorf("creating demo product: %w", err)
	}

	demoTranslations := []UpsertTranslationParams{
		{model.EntityTypeCategory, category.ID, "name", "es", "Hamburguesas"},
		{model.EntityTypeProduct, burger.ID, "name", "es", "Hamburguesa Clásica"},
		{model.EntityTypeProduct, burger.ID, "description", "es", "Carne de res, lechuga, tomate, salsa de la casa"},
		{model.EntityTypeProduct, fries.ID, "name", "es", "Papas Fritas"},
	}
	for _, tr := range demoTranslations {
		if err := queries.UpsertTranslation(ctx, tr); err != nil {
			return fmt.Errorf("creating demo translation: %w", err)
		}
	}

	size, err := queries.CreateModifier(ctx, CreateModifierParams{
		Name:       "Size",
		MinSelect:  1,
		MaxSelect:  1,
		IsRequired: true,
	})
	if err != nil {
		return fmt.Errorf("creating demo modifier: %w", err)
	}
	for i, opt := range []struct {
		Name  string
		Delta int64
	}{{"Regular", 0}, {"Large", 200}} {
		if _, err := queries.CreateModifierOption(ctx, CreateModifierOptionParams{
			ModifierID:      size.ID,
			Name:            opt.Name,
			PriceDeltaCents: opt.Delta,
			IsDefault:       i == 0,
			Position:        int64(i),
		}); err != nil {
			return fmt.Errorf("creating demo modifier option: %w", err)
		}
	}
	if err := queries.SetProductModifiers(ctx, fries.ID, []int64{size.ID}); err != nil {
		return fmt.Errorf("assigning demo modifier: %w", err)
	}

	combo, err := queries.CreateCombo(ctx, CreateComboParams{
		Name:        "Burger Meal",
		Slug:        "burger-meal",
		Description: "Classic burger with fries",
		PriceCents:  1295,
		IsAvailable: true,
	})
	if err != nil {
		return fmt.Errorf("creating demo combo: %w", err)
	}
	for i, p := range []Product{burger, fries} {
		if _, err := queries.CreateComboItem(ctx, CreateComboItemParams{
			ComboID:   combo.ID,
			ProductID: p.ID,
			Quantity:  1,
			Position:  int64(i),
		}); err != nil {
			return fmt.Errorf("creating demo combo item: %w", err)
		}
	}

	slog.Info("seeded demo catalog")
	return nil
}
