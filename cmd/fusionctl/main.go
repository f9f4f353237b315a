// Command fusionctl is a terminal client for the Flavour Fusion API.
//
// Subcommands mirror the pages of the web app: register, login, logout,
// recipes (browse with search/filter/sort/page flags), recipe <id>,
// like <id>, dashboard, create, update <id>, delete <id>.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"flavourfusion/internal/client"
	"flavourfusion/internal/client/notify"
	"flavourfusion/internal/client/session"
	"flavourfusion/internal/client/view"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	baseURL := os.Getenv("FUSION_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000/api"
	}

	sessionPath, err := session.DefaultPath()
	if err != nil {
		fatal(err)
	}

	logger := zap.NewNop()
	if os.Getenv("FUSION_DEBUG") != "" {
		logger, _ = zap.NewDevelopment()
	}

	c := client.New(baseURL,
		client.WithLogger(logger),
		client.WithNotifier(notify.NewZapNotifier(logger)),
		client.WithSessionStore(session.NewStore(sessionPath)),
	)
	if _, _, err := c.LoadSession(); err != nil {
		fatal(err)
	}

	ctx := context.Background()
	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "register":
		err = runRegister(ctx, c, args)
	case "login":
		err = runLogin(ctx, c, args)
	case "logout":
		err = c.Logout()
	case "recipes":
		err = runRecipes(ctx, c, args)
	case "recipe":
		err = runRecipe(ctx, c, args)
	case "like":
		err = runLike(ctx, c, args)
	case "dashboard":
		err = runDashboard(ctx, c)
	case "create":
		err = runCreate(ctx, c, args)
	case "update":
		err = runUpdate(ctx, c, args)
	case "delete":
		err = runDelete(ctx, c, args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: fusionctl <command> [flags]

commands:
  register -username u -email e -password p
  login -email e -password p
  logout
  recipes [-search s] [-cuisine c] [-max-time m] [-sort newest|likes|title] [-page n]
  recipe <id>
  like <id>
  dashboard
  create -title t [-cuisine c] [-time m] [-ingredients i] [-instructions i]
  update <id> [-title t] [-cuisine c] [-time m] [-ingredients i] [-instructions i]
  delete <id> [-yes]`)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fusionctl:", err)
	os.Exit(1)
}

func runRegister(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "username")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	sess, err := c.Register(ctx, *username, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("welcome to Flavour Fusion, %s\n", sess.Username)
	return nil
}

func runLogin(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	sess, err := c.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("welcome back, %s\n", sess.Username)
	return nil
}

func runRecipes(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("recipes", flag.ExitOnError)
	search := fs.String("search", "", "title substring")
	cuisine := fs.String("cuisine", view.CuisineAll, "cuisine filter")
	maxTime := fs.Int("max-time", view.CookingTimeAll, "max cooking time in minutes")
	sortBy := fs.String("sort", string(view.SortNewest), "sort key: newest, likes or title")
	page := fs.Int("page", 1, "page number")
	fs.Parse(args)

	recipes, err := c.Recipes(ctx)
	if err != nil {
		return err
	}

	criteria := view.Criteria{
		Search:         *search,
		Cuisine:        *cuisine,
		MaxCookingTime: *maxTime,
		Sort:           view.SortKey(*sortBy),
		Page:           *page,
	}
	visible, totalPages := view.Derive(recipes, criteria)
	printRecipePage(visible, *page, totalPages)
	return nil
}

func runDashboard(ctx context.Context, c *client.Client) error {
	sess, ok := c.Session()
	if !ok {
		return client.ErrNoSession
	}

	recipes, err := c.Dashboard(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("welcome, %s! your recipes:\n\n", sess.Username)
	visible, totalPages := view.Derive(recipes, view.Criteria{
		Cuisine: view.CuisineAll,
		Sort:    view.SortNewest,
		Page:    1,
	})
	printRecipePage(visible, 1, totalPages)
	return nil
}

func runRecipe(ctx context.Context, c *client.Client, args []string) error {
	id, err := parseIDArg(args)
	if err != nil {
		return err
	}

	recipe, err := c.Recipe(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", recipe.Title)
	fmt.Printf("  cuisine:      %s\n", orDash(recipe.CuisineType))
	fmt.Printf("  cooking time: %d mins\n", recipe.CookingTime)
	fmt.Printf("  likes:        %d%s\n", recipe.Likes, likedMark(recipe.UserHasLiked))
	fmt.Printf("  ingredients:  %s\n", orDash(recipe.Ingredients))
	fmt.Printf("  instructions: %s\n", orDash(recipe.Instructions))
	return nil
}

func runLike(ctx context.Context, c *client.Client, args []string) error {
	id, err := parseIDArg(args)
	if err != nil {
		return err
	}

	if err := c.ToggleLike(ctx, id); err != nil {
		return err
	}

	recipe, err := c.Recipe(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d likes%s\n", recipe.Title, recipe.Likes, likedMark(recipe.UserHasLiked))
	return nil
}

func runCreate(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	draft := draftFlags(fs, client.RecipeDraft{})
	fs.Parse(args)

	recipe, err := c.CreateRecipe(ctx, *draft)
	if err != nil {
		return err
	}
	fmt.Printf("created %q (%s)\n", recipe.Title, recipe.ID)
	return nil
}

func runUpdate(ctx context.Context, c *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("update: recipe id required")
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid recipe id %q", args[0])
	}

	// Pre-edit snapshot: unchanged fields are round-tripped as they are.
	current, err := c.Recipe(ctx, id)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("update", flag.ExitOnError)
	draft := draftFlags(fs, client.RecipeDraft{
		Title:        current.Title,
		CuisineType:  current.CuisineType,
		CookingTime:  current.CookingTime,
		Ingredients:  current.Ingredients,
		Instructions: current.Instructions,
	})
	fs.Parse(args[1:])

	current.Title = draft.Title
	current.CuisineType = draft.CuisineType
	current.CookingTime = draft.CookingTime
	current.Ingredients = draft.Ingredients
	current.Instructions = draft.Instructions

	if err := c.UpdateRecipe(ctx, current); err != nil {
		return err
	}
	fmt.Printf("updated %q\n", current.Title)
	return nil
}

func runDelete(ctx context.Context, c *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("delete: recipe id required")
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid recipe id %q", args[0])
	}

	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	fs.Parse(args[1:])

	// Deletion is two-phase: the request only goes out after an explicit
	// confirmation.
	if !*yes && !confirm(fmt.Sprintf("delete recipe %s?", id)) {
		fmt.Println("aborted")
		return nil
	}

	if err := c.DeleteRecipe(ctx, id); err != nil {
		return err
	}
	fmt.Println("deleted")
	return nil
}

func draftFlags(fs *flag.FlagSet, defaults client.RecipeDraft) *client.RecipeDraft {
	draft := &client.RecipeDraft{}
	fs.StringVar(&draft.Title, "title", defaults.Title, "recipe title")
	fs.StringVar(&draft.CuisineType, "cuisine", defaults.CuisineType, "cuisine type")
	fs.IntVar(&draft.CookingTime, "time", defaults.CookingTime, "cooking time in minutes")
	fs.StringVar(&draft.Ingredients, "ingredients", defaults.Ingredients, "ingredients")
	fs.StringVar(&draft.Instructions, "instructions", defaults.Instructions, "instructions")
	return draft
}

func parseIDArg(args []string) (uuid.UUID, error) {
	if len(args) < 1 {
		return uuid.Nil, fmt.Errorf("recipe id required")
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid recipe id %q", args[0])
	}
	return id, nil
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func printRecipePage(recipes []client.Recipe, page, totalPages int) {
	if len(recipes) == 0 {
		fmt.Println("no recipes found")
		return
	}
	for _, r := range recipes {
		fmt.Printf("%-36s  %-30s %-10s %3d mins  %d likes%s\n",
			r.ID, truncate(r.Title, 30), orDash(r.CuisineType), r.CookingTime, r.Likes, likedMark(r.UserHasLiked))
	}
	fmt.Printf("\npage %d of %d\n", page, totalPages)
}

func likedMark(liked bool) string {
	if liked {
		return " ♥"
	}
	return ""
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
