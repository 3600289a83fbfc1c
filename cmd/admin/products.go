package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-catalog-admin/internal/category"
	productDialog "github.com/fekuna/omnipos-catalog-admin/internal/product/dialog"
	"github.com/fekuna/omnipos-catalog-admin/internal/table"
)

// sortFlags collects repeated -sort values; each one is a click on that
// column's sort control.
type sortFlags []string

func (s *sortFlags) String() string { return strings.Join(*s, ",") }

func (s *sortFlags) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func runList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	column := fs.String("column", "name", "Filter column: _id, name or category")
	filter := fs.String("filter", "", "Filter text (case-insensitive substring)")
	var sorts sortFlags
	fs.Var(&sorts, "sort", "Toggle sort on a column (name, price, category); repeat to cycle asc, desc, none")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withApp(ctx, func(a *app) error {
		if err := a.view.SelectFilterColumn(*column); err != nil {
			return err
		}
		a.view.SetFilterText(*filter)
		for _, col := range sorts {
			if err := a.view.ToggleSort(col); err != nil {
				return err
			}
		}
		if err := a.loadProducts(ctx); err != nil {
			return err
		}
		return table.Render(stdout, a.view.Rows())
	})
}

func runCategories(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("categories", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withApp(ctx, func(a *app) error {
		if err := a.loadProducts(ctx); err != nil {
			return err
		}
		for _, c := range a.products.Categories() {
			fmt.Fprintln(stdout, c)
		}
		return nil
	})
}

type productFlags struct {
	name        *string
	description *string
	price       *string
	category    *string
	existing    *string
	imageURL    *string
}

func bindProductFlags(fs *flag.FlagSet) productFlags {
	return productFlags{
		name:        fs.String("name", "", "Product name"),
		description: fs.String("description", "", "Product description"),
		price:       fs.String("price", "", "Price, e.g. 12.50 or 12,50"),
		category:    fs.String("category", "", "Category (free text; may be new)"),
		existing:    fs.String("existing-category", "", "Category picked from those already in use"),
		imageURL:    fs.String("image-url", "", "Absolute image URL"),
	}
}

// productEditor is the field surface shared by the create and update dialogs.
type productEditor interface {
	SetName(string) error
	SetDescription(string) error
	SetPrice(any) error
	SetImageURL(string) error
	SetCategoryMode(category.Mode) error
	SetCategoryText(string) error
	SelectCategory(string) error
}

// apply copies the given flags into the dialog. Only flags in set are
// applied, so update sends just what was asked for.
func (f productFlags) apply(d productEditor, set map[string]bool) error {
	if set["category"] && set["existing-category"] {
		return fmt.Errorf("use either -category or -existing-category, not both")
	}
	steps := []struct {
		flag string
		fn   func() error
	}{
		{"name", func() error { return d.SetName(*f.name) }},
		{"description", func() error { return d.SetDescription(*f.description) }},
		{"price", func() error { return d.SetPrice(*f.price) }},
		{"image-url", func() error { return d.SetImageURL(*f.imageURL) }},
		{"category", func() error {
			if err := d.SetCategoryMode(category.ModeNew); err != nil {
				return err
			}
			return d.SetCategoryText(*f.category)
		}},
		{"existing-category", func() error {
			if err := d.SetCategoryMode(category.ModeExisting); err != nil {
				return err
			}
			return d.SelectCategory(*f.existing)
		}},
	}
	for _, s := range steps {
		if !set[s.flag] {
			continue
		}
		if err := s.fn(); err != nil {
			return fmt.Errorf("-%s: %w", s.flag, err)
		}
	}
	return nil
}

func runCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	pf := bindProductFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	set := visited(fs)

	return withApp(ctx, func(a *app) error {
		if err := a.loadProducts(ctx); err != nil {
			return err
		}
		d := productDialog.NewCreateDialog(a.products, a.logger)
		if err := d.Open(); err != nil {
			return err
		}
		if err := pf.apply(d, set); err != nil {
			return err
		}
		p, err := d.Submit(ctx)
		if err != nil {
			return surfaced(d.Message(), err)
		}
		fmt.Fprintf(stdout, "Created %s (%s)\n", p.Name, p.ID)
		return nil
	})
}

func runUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	id := fs.String("id", "", "Product id (see 'admin list')")
	pf := bindProductFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	set := visited(fs)

	return withApp(ctx, func(a *app) error {
		if err := a.loadProducts(ctx); err != nil {
			return err
		}
		d := productDialog.NewUpdateDialog(a.products, a.logger)
		if err := d.Open(*id); err != nil {
			return fmt.Errorf("%s: %w", *id, err)
		}
		if err := pf.apply(d, set); err != nil {
			return err
		}
		p, err := d.Submit(ctx)
		if err != nil {
			return surfaced(d.Message(), err)
		}
		fmt.Fprintf(stdout, "Updated %s (%s)\n", p.Name, p.ID)
		return nil
	})
}

func runDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	id := fs.String("id", "", "Product id (see 'admin list')")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withApp(ctx, func(a *app) error {
		if err := a.loadProducts(ctx); err != nil {
			return err
		}
		d := productDialog.NewDeleteDialog(a.products, a.logger)
		if err := d.Open(*id); err != nil {
			return fmt.Errorf("%s: %w", *id, err)
		}
		name := d.Target().Name
		if err := d.Confirm(ctx); err != nil {
			return surfaced(d.Message(), err)
		}
		fmt.Fprintf(stdout, "Deleted %s (%s)\n", name, *id)
		return nil
	})
}
