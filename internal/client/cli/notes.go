package cli

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/dmitrijs2005/notehub/internal/client/models"
)

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("show <id>")
	}
	d, err := a.Notes.Detail(ctx, args[0])
	if err != nil {
		return err
	}

	n := d.Note
	visibility := "private"
	if n.IsPublic {
		visibility = "public"
	}
	a.printf("%s\n", n.Title)
	a.printf("  id:      %s (%s)\n", n.PublicID, visibility)
	a.printf("  owner:   @%s\n", n.Owner.Username)
	if n.CourseCode != "" {
		a.printf("  course:  %s\n", n.CourseCode)
	}
	if len(n.Tags) > 0 {
		a.printf("  tags:    %s\n", strings.Join(n.TagNames(), ", "))
	}
	a.printf("  ocr:     %s\n", n.OCRStatus)
	if n.Description != "" {
		a.printf("\n%s\n", n.Description)
	}

	if len(d.Reactions) > 0 {
		kinds := make([]string, 0, len(d.Reactions))
		for k := range d.Reactions {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		a.printf("\nReactions:")
		for _, k := range kinds {
			a.printf(" %s=%d", k, d.Reactions[k])
		}
		a.printf("\n")
	}
	if len(d.Collaborators) > 0 {
		a.printf("\nCollaborators:\n")
		for _, c := range d.Collaborators {
			a.printf("  @%s %s\n", c.Username, c.Role)
		}
	}
	a.printf("\nComments (%d):\n", len(d.Comments))
	for _, c := range d.Comments {
		a.printf("  @%s %s: %s\n", c.Author.Username, c.CreatedAt.Format("2006-01-02 15:04"), c.Content)
	}
	return nil
}

// Upload asks for the note metadata, uploads the file and follows OCR
// until it finishes or the wait runs out.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("upload <path>")
	}

	var meta models.NoteUpload
	var err error
	if meta.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if meta.Description, err = GetMultiline(a.reader, "Description (optional)", a.out); err != nil {
		return err
	}
	if meta.IsPublic, err = GetYesNo(a.reader, "Make it public?", a.out); err != nil {
		return err
	}

	n, err := a.Notes.Upload(ctx, meta, args[0])
	if err != nil {
		return err
	}
	id := n.PublicID
	okColor.Fprintf(a.out, "Uploaded %s\n", id)

	wctx, cancel := context.WithTimeout(ctx, a.ocrWait)
	defer cancel()
	n, err = a.Notes.WaitForOCR(wctx, id, func(s models.OCRStatus) {
		a.printf("  ocr: %s\n", s)
	})
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		a.printf("OCR is still running; check later with 'show %s'\n", id)
		return nil
	case err != nil:
		return err
	case n.OCRStatus == models.OCRFailed:
		warnColor.Fprintln(a.out, "OCR failed; the original file is still available")
	}
	return nil
}

func (a *App) Download(ctx context.Context, args []string) error {
	kind := models.DownloadOriginal
	switch {
	case len(args) == 2 && args[1] == "markdown":
		kind = models.DownloadMarkdown
	case len(args) != 1:
		return usage("download <id> [markdown]")
	}
	loc, err := a.Export.Export(ctx, args[0], kind)
	if err != nil {
		return err
	}
	okColor.Fprintf(a.out, "Saved to %s\n", loc)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("delete <id>")
	}
	sure, err := GetYesNo(a.reader, "Delete note "+args[0]+"?", a.out)
	if err != nil || !sure {
		return err
	}
	if err := a.API.DeleteNote(ctx, args[0]); err != nil {
		return err
	}
	a.printf("Deleted\n")
	return nil
}

func (a *App) Bookmark(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("bookmark <id>")
	}
	on, err := a.Bookmarks.Toggle(ctx, args[0])
	if err != nil {
		return err
	}
	if on {
		a.printf("Bookmarked\n")
	} else {
		a.printf("Bookmark removed\n")
	}
	return nil
}

func (a *App) Comment(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("comment <id>")
	}
	text, err := GetMultiline(a.reader, "Comment", a.out)
	if err != nil {
		return err
	}
	if _, err := a.API.AddComment(ctx, args[0], models.NewComment{Content: text}); err != nil {
		return err
	}
	a.printf("Comment added\n")
	return nil
}

func (a *App) React(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("react <id> <kind>")
	}
	if err := a.API.React(ctx, args[0], args[1]); err != nil {
		return err
	}
	a.printf("Reacted with %s\n", args[1])
	return nil
}
