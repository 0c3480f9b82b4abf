package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/schooladmin/internal/client/client"
	"github.com/dmitrijs2005/schooladmin/internal/client/models"
	"github.com/dmitrijs2005/schooladmin/internal/client/paging"
	"github.com/dmitrijs2005/schooladmin/internal/client/services"
	"github.com/dmitrijs2005/schooladmin/internal/common"
)

// recordCommands is the non-generic face of commands[T] so every collection
// can sit in one map.
type recordCommands interface {
	list(ctx context.Context, q paging.Query) error
	show(ctx context.Context, id string) error
	add(ctx context.Context) error
	edit(ctx context.Context, id string) error
	remove(ctx context.Context, id string) error
}

type commands[T models.Record] struct {
	app *App
	svc services.RecordService[T]
}

func register[T models.Record](m map[models.Kind]recordCommands, a *App, c client.Client, v *models.Validator) {
	svc := services.NewRecordService[T](c, v)
	m[svc.Kind()] = &commands[T]{app: a, svc: svc}
}

func newRecordRegistry(a *App, c client.Client, v *models.Validator) map[models.Kind]recordCommands {
	m := make(map[models.Kind]recordCommands, len(models.Kinds()))
	register[models.Employee](m, a, c, v)
	register[models.Student](m, a, c, v)
	register[models.Class](m, a, c, v)
	register[models.Section](m, a, c, v)
	register[models.Holiday](m, a, c, v)
	register[models.FeeStructure](m, a, c, v)
	return m
}

func (c *commands[T]) list(ctx context.Context, q paging.Query) error {
	page, err := c.svc.List(ctx, q)
	if err != nil {
		return err
	}
	if page.Total == 0 {
		c.app.println("No records found.")
		return nil
	}

	var zero T
	tw := tabwriter.NewWriter(c.app.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(zero.Columns(), "\t"))
	for _, item := range page.Items {
		fmt.Fprintln(tw, strings.Join(item.Row(), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	c.app.printf("Page %d of %d (%d records)\n", page.Page, page.TotalPages, page.Total)
	if page.HasNext() {
		next := fmt.Sprintf("list %s -p %d %s", c.svc.Kind(), page.Page+1, q.Search)
		c.app.printf("Next: %s\n", strings.TrimSpace(next))
	}
	return nil
}

func (c *commands[T]) show(ctx context.Context, id string) error {
	rec, err := c.svc.Get(ctx, id)
	if err != nil {
		return err
	}
	c.app.printRecord(rec)
	return nil
}

func (c *commands[T]) add(ctx context.Context) error {
	var rec T
	if err := promptRecord(c.app, &rec, false); err != nil {
		return err
	}
	created, err := c.svc.Create(ctx, rec)
	if err != nil {
		return err
	}
	c.app.printf("Created %s %s.\n", c.svc.Kind(), created.GetID())
	return nil
}

func (c *commands[T]) edit(ctx context.Context, id string) error {
	rec, err := c.svc.Get(ctx, id)
	if err != nil {
		return err
	}
	c.app.println("Press Enter to keep the current value.")
	if err := promptRecord(c.app, &rec, true); err != nil {
		return err
	}
	if _, err := c.svc.Update(ctx, id, rec); err != nil {
		return err
	}
	c.app.printf("Updated %s %s.\n", c.svc.Kind(), id)
	return nil
}

func (c *commands[T]) remove(ctx context.Context, id string) error {
	ok, err := Confirm(c.app.reader, fmt.Sprintf("Delete %s %s?", c.svc.Kind(), id), c.app.out)
	if err != nil {
		return err
	}
	if !ok {
		c.app.println("Cancelled.")
		return nil
	}
	if err := c.svc.Delete(ctx, id); err != nil {
		return err
	}
	c.app.printf("Deleted %s %s.\n", c.svc.Kind(), id)
	return nil
}

// lookup resolves the collection named in args[0] for a logged-in user.
func (a *App) lookup(args []string, usage string, need int) (recordCommands, []string, error) {
	if !a.isLoggedIn() {
		return nil, nil, common.ErrNotLoggedIn
	}
	if len(args) < need {
		return nil, nil, usageError(usage)
	}
	kind, err := models.ParseKind(args[0])
	if err != nil {
		return nil, nil, err
	}
	return a.records[kind], args[1:], nil
}

// parseListArgs reads "[-p N] [search words]".
func parseListArgs(args []string, pageSize int) (paging.Query, error) {
	q := paging.Query{Page: 1, PageSize: pageSize}
	var words []string
	for i := 0; i < len(args); i++ {
		if args[i] == "-p" || args[i] == "--page" {
			if i+1 >= len(args) {
				return q, usageError("list <kind> [-p N] [search]")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 1 {
				return q, usageError("list <kind> [-p N] [search]")
			}
			q.Page = n
			i++
			continue
		}
		words = append(words, args[i])
	}
	q.Search = strings.Join(words, " ")
	return q, nil
}

func (a *App) List(ctx context.Context, args []string) error {
	rc, rest, err := a.lookup(args, "list <kind> [-p N] [search]", 1)
	if err != nil {
		return err
	}
	q, err := parseListArgs(rest, a.config.PageSize)
	if err != nil {
		return err
	}
	return rc.list(ctx, q)
}

func (a *App) Show(ctx context.Context, args []string) error {
	rc, rest, err := a.lookup(args, "show <kind> <id>", 2)
	if err != nil {
		return err
	}
	return rc.show(ctx, rest[0])
}

func (a *App) Add(ctx context.Context, args []string) error {
	rc, _, err := a.lookup(args, "add <kind>", 1)
	if err != nil {
		return err
	}
	return rc.add(ctx)
}

func (a *App) Edit(ctx context.Context, args []string) error {
	rc, rest, err := a.lookup(args, "edit <kind> <id>", 2)
	if err != nil {
		return err
	}
	return rc.edit(ctx, rest[0])
}

func (a *App) Delete(ctx context.Context, args []string) error {
	rc, rest, err := a.lookup(args, "delete <kind> <id>", 2)
	if err != nil {
		return err
	}
	return rc.remove(ctx, rest[0])
}
