package cli

import (
	"errors"
	"fmt"
)

var errUsage = errors.New("usage")

func usage(u string) error {
	return fmt.Errorf("%w: %s", errUsage, u)
}

func (a *App) commands() []command {
	return []command{
		{name: "register", usage: "register", help: "create an account", run: a.Register},
		{name: "login", usage: "login [username]", help: "log in", run: a.Login},
		{name: "logout", usage: "logout", help: "end the session", auth: true, run: a.Logout},
		{name: "whoami", usage: "whoami", help: "show the current user", auth: true, run: a.WhoAmI},

		{name: "search", usage: "search [text]", help: "full-text search (no text clears it)", run: a.Search},
		{name: "tag", usage: "tag <name>", help: "add a tag to the filter", run: a.Tag},
		{name: "untag", usage: "untag <name>", help: "remove a tag from the filter", run: a.Untag},
		{name: "course", usage: "course <code|->", help: "filter by course", run: a.Course},
		{name: "owner", usage: "owner <username|->", help: "filter by owner", run: a.Owner},
		{name: "visibility", usage: "visibility all|public|private", help: "filter by visibility", run: a.Visibility},
		{name: "sort", usage: "sort newest|oldest|title", help: "change ordering", run: a.Sort},
		{name: "clear", usage: "clear", help: "reset all filters", run: a.Clear},
		{name: "page", usage: "page <n>", help: "jump to a page", run: a.Page},
		{name: "next", usage: "next", help: "next page", run: a.Next},
		{name: "prev", usage: "prev", help: "previous page", run: a.Prev},

		{name: "show", usage: "show <id>", help: "note details", run: a.Show},
		{name: "download", usage: "download <id> [markdown]", help: "save the original file or its markdown", run: a.Download},
		{name: "upload", usage: "upload <path>", help: "upload a pdf or image", auth: true, run: a.Upload},
		{name: "delete", usage: "delete <id>", help: "delete one of your notes", auth: true, run: a.Delete},
		{name: "bookmark", usage: "bookmark <id>", help: "toggle a bookmark", auth: true, run: a.Bookmark},
		{name: "comment", usage: "comment <id>", help: "comment on a note", auth: true, run: a.Comment},
		{name: "react", usage: "react <id> <kind>", help: "react to a note", auth: true, run: a.React},

		{name: "profile", usage: "profile <username>", help: "show a user", run: a.Profile},
		{name: "follow", usage: "follow <username>", help: "follow a user", auth: true, run: a.Follow},
		{name: "unfollow", usage: "unfollow <username>", help: "unfollow a user", auth: true, run: a.Unfollow},
		{name: "recommend", usage: "recommend", help: "users you may want to follow", auth: true, run: a.Recommend},

		{name: "tags", usage: "tags [limit]", help: "popular tags", run: a.Tags},
		{name: "courses", usage: "courses", help: "all courses", run: a.Courses},
		{name: "mycourses", usage: "mycourses", help: "courses you are enrolled in", auth: true, run: a.MyCourses},
		{name: "enroll", usage: "enroll <code>", help: "enroll in a course", auth: true, run: a.Enroll},
		{name: "stats", usage: "stats", help: "your dashboard numbers", auth: true, run: a.Stats},

		{name: "sync", usage: "sync", help: "download the catalog and search it locally", run: a.Sync},
		{name: "offline", usage: "offline", help: "search the last synced catalog", run: a.Offline},
		{name: "online", usage: "online", help: "send searches to the server again", run: a.Online},
		{name: "metrics", usage: "metrics", help: "request counters", run: a.Metrics},
	}
}
