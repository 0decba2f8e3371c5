// Command portionctl runs portioning calculations against an
// in-memory fixture catalogue, for exploring and demoing the engine
// without a running service.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/caterstack/portioning/internal/portioning/application"
	"github.com/caterstack/portioning/internal/portioning/domain"
	"github.com/caterstack/portioning/internal/portioning/infrastructure/repository"
	"github.com/caterstack/portioning/pkg/logger"
)

var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:     "portionctl",
		Short:   "Explore the catering portioning engine against fixture data",
		Version: version,
	}

	root.AddCommand(newCalculateCommand())
	root.AddCommand(newPreviewCommand())
	root.AddCommand(newMenuCommand())
	return root
}

func newService() *application.Service {
	catalogue := repository.NewMemoryCatalogue()
	menus := repository.NewMemoryMenuStore(catalogue)
	config := repository.NewFixedConfigStore()
	return application.NewService(catalogue, config, menus, nil, logger.NewNamed("portionctl"))
}

// menuFile is the shape portionctl reads from --file. It is
// YAML/JSON-interchangeable since YAML is a JSON superset, so the same
// flat dish_ids/gents/ladies/big_eaters keys can be written in either
// format.
type menuFile struct {
	DishIDs   []int64 `yaml:"dish_ids"`
	Gents     int     `yaml:"gents"`
	Ladies    int     `yaml:"ladies"`
	BigEaters bool    `yaml:"big_eaters"`
}

func loadMenuFile(path string) (menuFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return menuFile{}, fmt.Errorf("reading menu file: %w", err)
	}
	var mf menuFile
	if err := yaml.Unmarshal(raw, &mf); err != nil {
		return menuFile{}, fmt.Errorf("parsing menu file: %w", err)
	}
	return mf, nil
}

func newCalculateCommand() *cobra.Command {
	var dishIDs string
	var gents, ladies int
	var bigEaters bool
	var file string

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Run a calculation over a comma-separated list of dish ids, or a --file menu sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := application.CalculateRequest{
				Guests:    application.GuestMixRequest{Gents: gents, Ladies: ladies},
				BigEaters: bigEaters,
			}

			if file != "" {
				mf, err := loadMenuFile(file)
				if err != nil {
					return err
				}
				req.DishIDs = mf.DishIDs
				req.Guests = application.GuestMixRequest{Gents: mf.Gents, Ladies: mf.Ladies}
				req.BigEaters = mf.BigEaters
			} else {
				ids, err := parseIDList(dishIDs)
				if err != nil {
					return err
				}
				req.DishIDs = ids
			}

			svc := newService()
			resp, err := svc.Calculate(context.Background(), req)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().StringVar(&dishIDs, "dishes", "", "comma-separated dish ids, e.g. 1,3,5")
	cmd.Flags().IntVar(&gents, "gents", 0, "number of gents")
	cmd.Flags().IntVar(&ladies, "ladies", 0, "number of ladies")
	cmd.Flags().BoolVar(&bigEaters, "big-eaters", false, "scale portions up for a big-eater crowd")
	cmd.Flags().StringVar(&file, "file", "", "YAML or JSON menu sheet, used instead of --dishes/--gents/--ladies")

	return cmd
}

func newPreviewCommand() *cobra.Command {
	var templateID int64

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the stored portion snapshot for a menu template",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newService()
			resp, err := svc.Preview(context.Background(), templateID)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().Int64Var(&templateID, "template", 1, "menu template id")
	return cmd
}

func newMenuCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "List the fixture catalogue's categories by pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogue := repository.NewMemoryCatalogue()
			for _, pool := range []string{"protein", "accompaniment", "dessert", "service"} {
				fmt.Printf("%s:\n", pool)
				for _, id := range catalogue.CategoryIDsInPool(poolOf(pool)) {
					fmt.Printf("  category %d\n", id)
				}
			}
			return nil
		},
	}
	return cmd
}

func poolOf(name string) domain.Pool {
	return domain.Pool(name)
}

func parseIDList(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("no dish ids provided")
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid dish id %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
