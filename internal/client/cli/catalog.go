package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/notehub/internal/client/models"
)

const defaultTagLimit = 20

func (a *App) Tags(ctx context.Context, args []string) error {
	limit := defaultTagLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return usage("tags [limit]")
		}
		limit = n
	}
	tags, err := a.API.PopularTags(ctx, limit)
	if err != nil {
		return err
	}
	for _, t := range tags {
		a.printf("  %-24s %d\n", t.Name, t.NotesCount)
	}
	return nil
}

func (a *App) Courses(ctx context.Context, _ []string) error {
	cs, err := a.API.Courses(ctx)
	if err != nil {
		return err
	}
	a.printCourses(cs)
	return nil
}

func (a *App) MyCourses(ctx context.Context, _ []string) error {
	cs, err := a.API.MyCourses(ctx)
	if err != nil {
		return err
	}
	a.printCourses(cs)
	return nil
}

func (a *App) Enroll(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("enroll <code>")
	}
	if err := a.API.Enroll(ctx, args[0]); err != nil {
		return err
	}
	a.printf("Enrolled in %s\n", args[0])
	return nil
}

func (a *App) Stats(ctx context.Context, _ []string) error {
	s, err := a.API.Stats(ctx)
	if err != nil {
		return err
	}
	a.printf("Notes:     %d (%d public)\n", s.NotesCount, s.PublicNotes)
	a.printf("Bookmarks: %d\n", s.BookmarksCount)
	a.printf("Followers: %d, following %d\n", s.FollowersCount, s.FollowingCount)
	return nil
}

// Sync downloads the full catalog and switches searches to it.
func (a *App) Sync(ctx context.Context, _ []string) error {
	res, err := a.Catalog.Sync(ctx)
	if err != nil {
		return err
	}
	okColor.Fprintf(a.out, "Synced %d notes (%d pages)\n", res.Notes, res.Pages)
	a.setMode(ModeOffline)
	return nil
}

func (a *App) Offline(ctx context.Context, _ []string) error {
	n, at, ok, err := a.Catalog.LoadOffline(ctx)
	if err != nil {
		return err
	}
	if !ok {
		warnColor.Fprintln(a.out, "No local catalog yet; run 'sync' first")
		return nil
	}
	a.printf("Loaded %d notes synced %s\n", n, at.Local().Format("2006-01-02 15:04"))
	a.setMode(ModeOffline)
	return nil
}

func (a *App) Online(_ context.Context, _ []string) error {
	a.Catalog.GoOnline()
	a.setMode(ModeOnline)
	return nil
}

// Metrics prints the request counters gathered so far.
func (a *App) Metrics(_ context.Context, _ []string) error {
	if a.Gatherer == nil {
		return errors.New("metrics are disabled")
	}
	mfs, err := a.Gatherer.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			if len(m.GetLabel()) > 0 {
				labels := make([]string, 0, len(m.GetLabel()))
				for _, l := range m.GetLabel() {
					labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
				}
				name += "{" + strings.Join(labels, ",") + "}"
			}

			switch {
			case m.GetCounter() != nil:
				a.printf("%s %g\n", name, m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				a.printf("%s %g\n", name, m.GetGauge().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				a.printf("%s count=%d sum=%.3fs\n", name, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
	return nil
}

func (a *App) printCourses(cs []models.Course) {
	if len(cs) == 0 {
		a.printf("No courses\n")
	}
	for _, c := range cs {
		a.printf("  %-10s %s\n", c.Code, c.Name)
	}
}
