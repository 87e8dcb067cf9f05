package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/notehub/internal/client/models"
)

// Search sets the free-text part of the query and shows page 1.
func (a *App) Search(ctx context.Context, args []string) error {
	return a.update(ctx, func(q *models.SearchQuery) {
		q.Text = strings.Join(args, " ")
	})
}

// Tag adds a tag to the filter. A tag that is already selected is left
// alone and nothing is fetched.
func (a *App) Tag(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("tag <name>")
	}
	page, changed, err := a.Browser.SelectTag(ctx, args[0])
	if err != nil {
		return err
	}
	if !changed {
		a.printf("Tag %q is already selected\n", args[0])
		return nil
	}
	a.renderPage(page)
	return nil
}

func (a *App) Untag(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("untag <name>")
	}
	page, changed, err := a.Browser.DeselectTag(ctx, args[0])
	if err != nil {
		return err
	}
	if !changed {
		a.printf("Tag %q is not selected\n", args[0])
		return nil
	}
	a.renderPage(page)
	return nil
}

// Course filters by course code; "-" removes the filter.
func (a *App) Course(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("course <code|->")
	}
	return a.update(ctx, func(q *models.SearchQuery) { q.Course = clearable(args[0]) })
}

// Owner filters by username; "-" removes the filter.
func (a *App) Owner(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("owner <username|->")
	}
	return a.update(ctx, func(q *models.SearchQuery) { q.Owner = clearable(args[0]) })
}

func (a *App) Visibility(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("visibility all|public|private")
	}
	return a.update(ctx, func(q *models.SearchQuery) { q.Visibility = models.Visibility(args[0]) })
}

func (a *App) Sort(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("sort newest|oldest|title")
	}
	return a.update(ctx, func(q *models.SearchQuery) { q.Sort = models.SortKey(args[0]) })
}

// Clear drops every filter but keeps the page size.
func (a *App) Clear(ctx context.Context, _ []string) error {
	perPage := a.Browser.Query().PerPage
	return a.update(ctx, func(q *models.SearchQuery) { *q = models.NewSearchQuery(perPage) })
}

func (a *App) Page(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("page <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return usage("page <n>")
	}
	page, err := a.Browser.GoTo(ctx, n)
	if err != nil {
		return err
	}
	a.renderPage(page)
	return nil
}

func (a *App) Next(ctx context.Context, _ []string) error {
	page, err := a.Browser.Next(ctx)
	if err != nil {
		return err
	}
	a.renderPage(page)
	return nil
}

func (a *App) Prev(ctx context.Context, _ []string) error {
	page, err := a.Browser.Prev(ctx)
	if err != nil {
		return err
	}
	a.renderPage(page)
	return nil
}

// update applies change to a copy of the current query, resets it to page 1
// and shows the result.
func (a *App) update(ctx context.Context, change func(q *models.SearchQuery)) error {
	q := a.Browser.Query()
	change(&q)
	q.Page = 1
	page, err := a.Browser.Apply(ctx, q)
	if err != nil {
		return err
	}
	a.renderPage(page)
	return nil
}

func clearable(v string) string {
	if v == "-" {
		return ""
	}
	return v
}

func (a *App) renderPage(page models.Page[models.Note]) {
	if f := describeQuery(a.Browser.Query()); f != "" {
		a.printf("Filters: %s\n", f)
	}
	if len(page.Items) == 0 {
		a.printf("No notes found\n")
		return
	}

	first := (page.Page-1)*page.PerPage + 1
	for i := range page.Items {
		n := &page.Items[i]
		a.printf("%3d. %-12s %s", first+i, n.PublicID, n.Title)
		if len(n.Tags) > 0 {
			a.printf(" [%s]", strings.Join(n.TagNames(), ", "))
		}
		if n.Owner.Username != "" {
			a.printf(" @%s", n.Owner.Username)
		}
		if !n.CreatedAt.IsZero() {
			a.printf(" %s", n.CreatedAt.Format("2006-01-02"))
		}
		a.printf("\n")
	}

	a.printf("Page %d of %d (%d notes)", page.Page, page.TotalPages, page.TotalItems)
	var nav []string
	if page.HasPrev {
		nav = append(nav, "prev")
	}
	if page.HasNext {
		nav = append(nav, "next")
	}
	if len(nav) > 0 {
		a.printf("  [%s]", strings.Join(nav, " | "))
	}
	a.printf("\n")
}

// describeQuery lists the non-default parts of q.
func describeQuery(q models.SearchQuery) string {
	q = q.Normalized()
	var parts []string
	if q.Text != "" {
		parts = append(parts, fmt.Sprintf("text=%q", q.Text))
	}
	if len(q.Tags) > 0 {
		parts = append(parts, "tags="+strings.Join(q.Tags, ","))
	}
	if q.Course != "" {
		parts = append(parts, "course="+q.Course)
	}
	if q.Owner != "" {
		parts = append(parts, "owner="+q.Owner)
	}
	if q.Visibility != models.VisibilityAll {
		parts = append(parts, "visibility="+string(q.Visibility))
	}
	if q.Sort != models.SortNewest {
		parts = append(parts, "sort="+string(q.Sort))
	}
	return strings.Join(parts, " ")
}
