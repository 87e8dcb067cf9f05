package cli

import (
	"context"

	"github.com/dmitrijs2005/notehub/internal/client/models"
)

func (a *App) Profile(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("profile <username>")
	}
	p, err := a.Social.Profile(ctx, args[0])
	if err != nil {
		return err
	}
	a.printProfile(p)
	return nil
}

// Follow shows the optimistic counters straight away; they are rolled
// back by the service if the server refuses.
func (a *App) Follow(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("follow <username>")
	}
	p, err := a.Social.Follow(ctx, args[0])
	if err != nil {
		return err
	}
	a.printProfile(p)
	return nil
}

func (a *App) Unfollow(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("unfollow <username>")
	}
	p, err := a.Social.Unfollow(ctx, args[0])
	if err != nil {
		return err
	}
	a.printProfile(p)
	return nil
}

func (a *App) Recommend(ctx context.Context, _ []string) error {
	ps, err := a.Social.Recommendations(ctx)
	if err != nil {
		return err
	}
	if len(ps) == 0 {
		a.printf("No recommendations yet\n")
	}
	for _, p := range ps {
		a.printf("  @%-20s %d followers, %d notes\n", p.Username, p.FollowersCount, p.NotesCount)
	}
	return nil
}

func (a *App) printProfile(p *models.Profile) {
	a.printf("@%s", p.Username)
	if p.FullName != "" {
		a.printf(" (%s)", p.FullName)
	}
	if p.IsFollowing {
		a.printf(" - following")
	}
	a.printf("\n  %d followers, %d following, %d notes\n", p.FollowersCount, p.FollowingCount, p.NotesCount)
	if p.Bio != "" {
		a.printf("  %s\n", p.Bio)
	}
}
