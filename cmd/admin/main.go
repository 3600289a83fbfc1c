package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

var version = "dev"

// stdout is where command results go; logs go to the configured log file.
var stdout io.Writer = os.Stdout

var commands = map[string]func(context.Context, []string) error{
	"signin":      runSignIn,
	"signup":      runSignUp,
	"logout":      runLogout,
	"whoami":      runWhoAmI,
	"list":        runList,
	"categories":  runCategories,
	"create":      runCreate,
	"update":      runUpdate,
	"delete":      runDelete,
	"update-user": runUpdateUser,
}

func usage() {
	fmt.Fprintf(os.Stderr, `admin - product catalog administration (version %s)

Usage:
  admin <command> [options]

Commands:
  signin       Sign in and store the session
  signup       Create an account and sign in
  logout       Clear the stored session
  whoami       Show the signed-in user
  list         List products (-column, -filter, -sort)
  categories   List the categories in use
  create       Create a product
  update       Update a product by id
  delete       Delete a product by id
  update-user  Update your name, email or password

Run 'admin <command> -h' for command-specific help.
`, version)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	if cmd == "-h" || cmd == "--help" || cmd == "help" {
		usage()
		os.Exit(0)
	}
	if cmd == "-v" || cmd == "--version" || cmd == "version" {
		fmt.Println(version)
		os.Exit(0)
	}

	fn, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := fn(ctx, os.Args[2:])
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
