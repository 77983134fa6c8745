package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App implements
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Users(ctx context.Context) error
	Sign(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
	JWT(ctx context.Context, args []string) error
	Signature(ctx context.Context, args []string) error
	Edsquare(ctx context.Context, args []string) error
	Admin(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, admin, help, exit"
	helpLoggedIn  = "Available commands: whoami, users, sign, profile, jwt, signature, edsquare, logout, delete-account, admin, help, exit"
)

// runREPL reads commands line by line from in and dispatches them to a until
// EOF, "exit"/"quit" or cancellation of ctx. Command errors are printed and
// the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for ctx.Err() == nil {
		printlnFn(fmt.Sprintf("signkeeper%s> ", statusFn()))

		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "delete-account":
			cmdErr = a.DeleteAccount(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "users":
			cmdErr = a.Users(ctx)
		case "sign":
			cmdErr = a.Sign(ctx, args)
		case "profile":
			cmdErr = a.Profile(ctx, args)
		case "jwt":
			cmdErr = a.JWT(ctx, args)
		case "signature":
			cmdErr = a.Signature(ctx, args)
		case "edsquare":
			cmdErr = a.Edsquare(ctx, args)
		case "admin":
			cmdErr = a.Admin(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}
