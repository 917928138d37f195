package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/spec-kit/family-service/pkg/client"
)

const usage = `usage: familyctl [-server URL] <command>

commands:
  register <username> <email>   create an account (prompts for password)
  login <email>                 sign in (prompts for password)
  whoami                        show the current session
  logout                        clear the stored token
  family list [page [limit]]    list family members
  family get <id>               show one family member
  family add <username> <father> <mother> <family> <date>
                                create a family member (date: YYYY-MM-DD)
  family rm <id>                delete a family member
`

func main() {
	server := flag.String("server", "http://localhost:8000", "service base URL")
	flag.Parse()

	if err := run(*server, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "familyctl:", err)
		os.Exit(1)
	}
}

func run(server string, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("missing command")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	store := client.NewTokenStore(filepath.Join(home, ".familyctl", "token"))
	api := client.New(server, store)
	ctx := context.Background()

	switch args[0] {
	case "register":
		if len(args) != 3 {
			return errors.New("register needs <username> <email>")
		}
		password, err := promptPassword()
		if err != nil {
			return err
		}
		user, err := api.Register(ctx, args[1], args[2], password)
		if err != nil {
			return err
		}
		fmt.Printf("registered as %s (%s)\n", user.Name, user.ID)
		return nil

	case "login":
		if len(args) != 2 {
			return errors.New("login needs <email>")
		}
		password, err := promptPassword()
		if err != nil {
			return err
		}
		user, err := api.Login(ctx, args[1], password)
		if err != nil {
			return err
		}
		fmt.Printf("logged in as %s\n", user.Name)
		return nil

	case "whoami":
		if err := api.Bootstrap(ctx); err != nil {
			return err
		}
		user, ok := api.CurrentUser()
		if !ok {
			fmt.Println("not logged in")
			return nil
		}
		message, secret, err := api.Dashboard(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n%s\n%s\n", user.Name, user.ID, message, secret)
		return nil

	case "logout":
		api.Logout()
		fmt.Println("logged out")
		return nil

	case "family":
		return runFamily(ctx, api, args[1:])
	}

	fmt.Fprint(os.Stderr, usage)
	return fmt.Errorf("unknown command %q", args[0])
}

func runFamily(ctx context.Context, api *client.Client, args []string) error {
	if len(args) == 0 {
		return errors.New("family needs a subcommand")
	}

	switch args[0] {
	case "list":
		page, limit := 1, 10
		if len(args) > 1 {
			fmt.Sscanf(args[1], "%d", &page)
		}
		if len(args) > 2 {
			fmt.Sscanf(args[2], "%d", &limit)
		}
		result, err := api.FamilyList(ctx, page, limit)
		if err != nil {
			return err
		}
		for _, m := range result.Data {
			fmt.Printf("%s  %s %s (father %s, mother %s) %s\n",
				m.ID, m.Username, m.FamilyName, m.FatherName, m.MotherName,
				m.Date.Format("2006-01-02"))
		}
		fmt.Printf("page %d of %d (%d total)\n",
			result.Pagination.Page, result.Pagination.Pages, result.Pagination.Total)
		return nil

	case "get":
		if len(args) != 2 {
			return errors.New("family get needs <id>")
		}
		m, err := api.FamilyGet(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\nfather: %s\nmother: %s\ndate: %s\n",
			m.Username, m.FamilyName, m.FatherName, m.MotherName,
			m.Date.Format("2006-01-02"))
		return nil

	case "add":
		if len(args) != 6 {
			return errors.New("family add needs <username> <father> <mother> <family> <date>")
		}
		m, err := api.FamilyCreate(ctx, client.FamilyMemberInput{
			Username:   args[1],
			FatherName: args[2],
			MotherName: args[3],
			FamilyName: args[4],
			Date:       args[5],
		})
		if err != nil {
			return err
		}
		fmt.Printf("created %s\n", m.ID)
		return nil

	case "rm":
		if len(args) != 2 {
			return errors.New("family rm needs <id>")
		}
		if err := api.FamilyDelete(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil
	}

	return fmt.Errorf("unknown family subcommand %q", args[0])
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
