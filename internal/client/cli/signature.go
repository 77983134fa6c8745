package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/signkeeper/internal/filex"
)

const signatureUsage = "usage: signature add <png file>|list|delete <id>"

// Signature manages the stored handwritten signatures.
//
//	signature add <png file>
//	signature list
//	signature delete <id>
func (a *App) Signature(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New(signatureUsage)
	}
	if err := a.requireLogin(ctx); err != nil {
		return err
	}

	switch args[0] {
	case "add":
		if len(args) != 2 {
			return errors.New("usage: signature add <png file>")
		}
		dataURL, err := filex.DataURL(args[1])
		if err != nil {
			return err
		}
		if _, err := a.api.SaveSignature(ctx, dataURL); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Signature saved.")
		return nil

	case "list":
		sigs, err := a.api.GetSignatures(ctx)
		if err != nil {
			return err
		}
		if len(sigs) == 0 {
			fmt.Fprintln(a.out, "No signatures.")
			return nil
		}
		w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tSIZE")
		for _, s := range sigs {
			fmt.Fprintf(w, "%s\t%s\t%d\n", s.ID, s.CreatedAt.Format(time.DateTime), len(s.Data))
		}
		return w.Flush()

	case "delete":
		if len(args) != 2 {
			return errors.New("usage: signature delete <id>")
		}
		if err := a.api.DeleteSignature(ctx, args[1]); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Signature deleted.")
		return nil
	}

	return errors.New(signatureUsage)
}
