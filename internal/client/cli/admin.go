package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/signkeeper/internal/common"
)

// Admin runs admin-only operations authenticated by the admin key. No
// session is needed.
//
//	admin delete-user <id>
func (a *App) Admin(ctx context.Context, args []string) error {
	if len(args) != 2 || args[0] != "delete-user" {
		return errors.New("usage: admin delete-user <id>")
	}

	key, err := getPassword("Admin key", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(key)

	if err := a.api.AdminDeleteUser(ctx, args[1], string(key)); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "User %s deleted.\n", args[1])
	return nil
}
