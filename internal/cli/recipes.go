package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/recipebox/recipe-api/pkg/client"
)

func (a *app) recipesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recipes",
		Aliases: []string{"recipe"},
		Short:   "Manage your recipes",
		Long: `Recipe commands. Every command acts on the logged-in user's recipes only.

Examples:
  recipectl recipes list
  recipectl recipes get 665f1c...
  recipectl recipes create --title Soup --ingredient water --ingredient salt --instructions "Boil." --time 10
  recipectl recipes update 665f1c... --title "Better Soup"
  recipectl recipes delete 665f1c...`,
	}
	cmd.AddCommand(
		a.recipesListCmd(),
		a.recipesGetCmd(),
		a.recipesCreateCmd(),
		a.recipesUpdateCmd(),
		a.recipesDeleteCmd(),
	)
	return cmd
}

func (a *app) recipesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			search, _ := cmd.Flags().GetString("search")
			recipes, err := a.client.ListRecipes(cmd.Context(), search)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.jsonOut() {
				return printJSON(out, map[string]any{"recipes": recipes, "count": len(recipes)})
			}
			if len(recipes) == 0 {
				fmt.Fprintln(out, "No recipes found")
				return nil
			}

			w := newTable(out)
			printTableHeader(w, "ID", "TITLE", "CUISINE", "MINUTES", "UPDATED")
			for _, r := range recipes {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					r.ID,
					truncate(r.Title, 40),
					r.CuisineType,
					r.CookingTime,
					r.UpdatedAt.Format("2006-01-02 15:04"),
				)
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("search", "", "filter by title or cuisine type")
	return cmd
}

func (a *app) recipesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.client.GetRecipe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.jsonOut() {
				return printJSON(cmd.OutOrStdout(), r)
			}
			printRecipe(cmd, r)
			return nil
		},
	}
}

func (a *app) recipesCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a recipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in client.RecipeInput
			applyRecipeFlags(cmd.Flags(), &in)

			r, err := a.client.CreateRecipe(cmd.Context(), in)
			if err != nil {
				return err
			}
			if a.jsonOut() {
				return printJSON(cmd.OutOrStdout(), r)
			}
			printSuccess(cmd.OutOrStdout(), "Recipe created: %s (%s)", r.Title, r.ID)
			return nil
		},
	}
	addRecipeFlags(cmd.Flags())
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func (a *app) recipesUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a recipe",
		Long: `Change a recipe. Only the flags you pass are changed; the
rest keep their current values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := a.client.GetRecipe(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			in := client.RecipeInput{
				Title:        current.Title,
				Ingredients:  current.Ingredients,
				Instructions: current.Instructions,
				CuisineType:  current.CuisineType,
				CookingTime:  current.CookingTime,
			}
			applyRecipeFlags(cmd.Flags(), &in)

			r, err := a.client.UpdateRecipe(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			if a.jsonOut() {
				return printJSON(cmd.OutOrStdout(), r)
			}
			printSuccess(cmd.OutOrStdout(), "Recipe updated: %s", r.ID)
			return nil
		},
	}
	addRecipeFlags(cmd.Flags())
	return cmd
}

func (a *app) recipesDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s Delete recipe %s? [y/N]: ", colorYellow("⚠"), args[0])
				var response string
				_, _ = fmt.Fscanln(cmd.InOrStdin(), &response)
				if response != "y" && response != "Y" {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
					return nil
				}
			}

			if err := a.client.DeleteRecipe(cmd.Context(), args[0]); err != nil {
				return err
			}
			if a.jsonOut() {
				return printJSON(cmd.OutOrStdout(), map[string]string{"status": "deleted", "id": args[0]})
			}
			printSuccess(cmd.OutOrStdout(), "Recipe deleted: %s", args[0])
			return nil
		},
	}
	cmd.Flags().BoolP("force", "f", false, "skip confirmation prompt")
	return cmd
}

func addRecipeFlags(fs *pflag.FlagSet) {
	fs.String("title", "", "recipe title")
	fs.StringArray("ingredient", nil, "ingredient, repeat in order")
	fs.String("instructions", "", "preparation steps")
	fs.String("cuisine", "", "cuisine type")
	fs.Int("time", 0, "cooking time in minutes")
}

// applyRecipeFlags overwrites the fields whose flags were set.
func applyRecipeFlags(fs *pflag.FlagSet, in *client.RecipeInput) {
	if fs.Changed("title") {
		in.Title, _ = fs.GetString("title")
	}
	if fs.Changed("ingredient") {
		in.Ingredients, _ = fs.GetStringArray("ingredient")
	}
	if fs.Changed("instructions") {
		in.Instructions, _ = fs.GetString("instructions")
	}
	if fs.Changed("cuisine") {
		in.CuisineType, _ = fs.GetString("cuisine")
	}
	if fs.Changed("time") {
		in.CookingTime, _ = fs.GetInt("time")
	}
	if in.Ingredients == nil {
		in.Ingredients = []string{}
	}
}

func printRecipe(cmd *cobra.Command, r *client.Recipe) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:           %s\n", r.ID)
	fmt.Fprintf(out, "Title:        %s\n", r.Title)
	fmt.Fprintf(out, "Cuisine:      %s\n", r.CuisineType)
	fmt.Fprintf(out, "Cooking time: %d min\n", r.CookingTime)
	fmt.Fprintln(out, "Ingredients:")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(out, "  - %s\n", ing)
	}
	fmt.Fprintln(out, "Instructions:")
	for _, line := range strings.Split(r.Instructions, "\n") {
		fmt.Fprintf(out, "  %s\n", line)
	}
	fmt.Fprintf(out, "Created:      %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Updated:      %s\n", r.UpdatedAt.Format("2006-01-02 15:04:05"))
}
