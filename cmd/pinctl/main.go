// pinctl is a small terminal frontend for the BrainPin API. It drives the
// same client and store the web frontend uses, so everything it sends has
// been through the usual validation and sanitization.
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"brainpin/client"
	"brainpin/domain/links"
	"brainpin/store"
)

func main() {
	cmd := &cli.Command{
		Name:  "pinctl",
		Usage: "Manage BrainPin links and categories from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api",
				Usage:   "Base URL of the BrainPin API",
				Value:   client.DefaultBaseURL,
				Sources: cli.EnvVars("BRAINPIN_API"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "links",
				Usage: "Work with links",
				Commands: []*cli.Command{
					{
						Name:  "list",
						Usage: "List links, optionally filtered by category",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "category", Usage: "Only show links in this category"},
						},
						Action: listLinks,
					},
					{
						Name:  "add",
						Usage: "Create a link",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "name", Required: true},
							&cli.StringFlag{Name: "url", Required: true},
							&cli.StringSliceFlag{Name: "category", Required: true, Usage: "Category id (repeatable)"},
							&cli.StringFlag{Name: "description"},
						},
						Action: addLink,
					},
					{
						Name:      "rm",
						Usage:     "Delete a link",
						ArgsUsage: "<link-id>",
						Action:    removeLink,
					},
				},
			},
			{
				Name:  "categories",
				Usage: "Work with categories",
				Commands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List categories",
						Action: listCategories,
					},
					{
						Name:  "add",
						Usage: "Create a category",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "name", Required: true},
						},
						Action: addCategory,
					},
					{
						Name:      "rm",
						Usage:     "Delete a category",
						ArgsUsage: "<category-id>",
						Action:    removeCategory,
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "pinctl:", err)
		os.Exit(1)
	}
}

func newStore(cmd *cli.Command) *store.Store {
	api := client.New(cmd.String("api"), client.WithLogger(zap.NewNop()))
	return store.New(api)
}

func listLinks(ctx context.Context, cmd *cli.Command) error {
	s := newStore(cmd)
	s.Load(ctx, false)

	state := s.Snapshot()
	if state.Err != "" {
		return fmt.Errorf("%s", state.Err)
	}

	s.SetFilter(links.ByCategory(cmd.String("category")))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tURL\tCATEGORIES")
	for _, link := range s.FilteredLinks() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", link.ID, link.Name, link.URL, link.CategoryIDs)
	}
	return w.Flush()
}

func addLink(ctx context.Context, cmd *cli.Command) error {
	s := newStore(cmd)

	payload := links.LinkPayload{
		Name:        cmd.String("name"),
		URL:         cmd.String("url"),
		CategoryIDs: cmd.StringSlice("category"),
	}
	if description := cmd.String("description"); description != "" {
		payload.Description = &description
	}

	link, err := s.AddLink(ctx, payload)
	if err != nil {
		return err
	}
	fmt.Println(link.ID)
	return nil
}

func removeLink(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return fmt.Errorf("link id is required")
	}
	return newStore(cmd).DeleteLink(ctx, id)
}

func listCategories(ctx context.Context, cmd *cli.Command) error {
	s := newStore(cmd)
	s.Load(ctx, false)

	state := s.Snapshot()
	if state.Err != "" {
		return fmt.Errorf("%s", state.Err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, category := range state.Categories {
		fmt.Fprintf(w, "%s\t%s\n", category.ID, category.Name)
	}
	return w.Flush()
}

func addCategory(ctx context.Context, cmd *cli.Command) error {
	category, err := newStore(cmd).AddCategory(ctx, cmd.String("name"))
	if err != nil {
		return err
	}
	fmt.Println(category.ID)
	return nil
}

func removeCategory(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return fmt.Errorf("category id is required")
	}
	return newStore(cmd).DeleteCategory(ctx, id)
}
