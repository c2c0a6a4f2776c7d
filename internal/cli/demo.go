package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
	"gorm.io/gorm"

	"github.com/gabbyferm/savory/backend/config"
	"github.com/gabbyferm/savory/backend/internal/apperr"
	"github.com/gabbyferm/savory/backend/internal/database"
	"github.com/gabbyferm/savory/backend/internal/model"
	"github.com/gabbyferm/savory/backend/internal/service"
	"github.com/gabbyferm/savory/backend/internal/storage"
	"github.com/gabbyferm/savory/backend/internal/types"
	"github.com/gabbyferm/savory/backend/internal/validation"
)

type demoUser struct {
	userName string
	email    string
	color    string
}

var demoUsers = []demoUser{
	{userName: "johndoe", email: "john.doe@example.com", color: "#FF6B6B"},
	{userName: "janesmith", email: "jane.smith@example.com", color: "#4ECDC4"},
}

type demoLine struct {
	ingredient string
	quantity   float64
}

type demoRecipe struct {
	title        string
	description  string
	instructions string
	category     string
	prepTime     int
	cookTime     int
	servings     int
	lines        []demoLine
}

var demoRecipes = []demoRecipe{
	{
		title:        "Garlic Butter Pasta",
		description:  "Weeknight pasta with browned garlic butter",
		instructions: "Boil the pasta. Melt the butter with sliced garlic, toss with the pasta and parmesan.",
		category:     "Dinner",
		prepTime:     5,
		cookTime:     15,
		servings:     2,
		lines: []demoLine{
			{"Pasta", 200}, {"Butter", 40}, {"Garlic", 3}, {"Parmesan", 30}, {"Salt", 5},
		},
	},
	{
		title:        "Tomato Omelette",
		description:  "Fluffy eggs with fresh tomato",
		instructions: "Whisk the eggs with milk, pour into a hot pan, add chopped tomato and fold.",
		category:     "Breakfast",
		prepTime:     5,
		cookTime:     5,
		servings:     1,
		lines: []demoLine{
			{"Eggs", 3}, {"Milk", 30}, {"Tomato", 1}, {"Black Pepper", 1},
		},
	},
}

func demoUsersCmd() *cli.Command {
	return &cli.Command{
		Name:  "demo-users",
		Usage: "Create demo accounts, optionally with sample recipes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "password",
				Usage:   "password of every demo account",
				Sources: cli.EnvVars("DEMO_PASSWORD"),
				Value:   "Password1",
			},
			&cli.BoolFlag{
				Name:  "with-recipes",
				Usage: "give each new account the sample recipes",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withDB(ctx, cmd, func(cfg *config.Config, db *gorm.DB) error {
				if _, err := database.SeedReferenceData(ctx, db); err != nil {
					return err
				}
				return createDemoUsers(ctx, cmd, cfg, db)
			})
		},
	}
}

func createDemoUsers(ctx context.Context, cmd *cli.Command, cfg *config.Config, db *gorm.DB) error {
	v := validation.New()
	auth := service.NewAuthService(db, service.AuthConfig{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		Audience:   cfg.JWTAudience,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	}, v)

	var recipes *service.RecipeService
	if cmd.Bool("with-recipes") {
		images, err := storage.New(ctx, cfg.Storage)
		if err != nil {
			return err
		}
		recipes = service.NewRecipeService(db, images, v)
	}

	out := cmd.Root().Writer
	for _, u := range demoUsers {
		resp, err := auth.Register(ctx, &types.RegisterRequest{
			UserName:    u.userName,
			Email:       u.email,
			Password:    cmd.String("password"),
			AvatarColor: u.color,
		})
		if apperr.KindOf(err) == apperr.KindConflict {
			fmt.Fprintf(out, "%s already exists\n", u.email)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", u.email, err)
		}
		fmt.Fprintf(out, "created %s\n", u.email)

		if recipes == nil {
			continue
		}
		for _, r := range demoRecipes {
			req, err := r.request(ctx, db)
			if err != nil {
				return err
			}
			if _, err := recipes.CreateRecipe(ctx, resp.User.ID, req); err != nil {
				return fmt.Errorf("failed to create recipe %q for %s: %w", r.title, u.email, err)
			}
		}
		fmt.Fprintf(out, "  added %d recipes\n", len(demoRecipes))
	}
	return nil
}

// request resolves the category and ingredient names of r against the
// seeded reference data
func (r demoRecipe) request(ctx context.Context, db *gorm.DB) (*types.RecipeRequest, error) {
	var category model.Category
	if err := db.WithContext(ctx).Where("name = ?", r.category).First(&category).Error; err != nil {
		return nil, fmt.Errorf("category %s: %w", r.category, err)
	}

	req := &types.RecipeRequest{
		Title:        r.title,
		Description:  r.description,
		Instructions: r.instructions,
		PrepTime:     r.prepTime,
		CookTime:     r.cookTime,
		Servings:     r.servings,
		CategoryID:   category.ID,
	}
	for _, l := range r.lines {
		var ing model.Ingredient
		err := db.WithContext(ctx).Where("normalized_name = ?", strings.ToLower(l.ingredient)).First(&ing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ingredient %s is not seeded", l.ingredient)
		}
		if err != nil {
			return nil, err
		}
		req.Ingredients = append(req.Ingredients, types.RecipeIngredientRequest{
			IngredientID: ing.ID,
			Quantity:     l.quantity,
		})
	}
	return req, nil
}
