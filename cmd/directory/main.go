// File: cmd/directory/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log" // Standard log for critical startup messages before zap is active
	"os"

	"student_directory/internal/app"
	"student_directory/internal/common"
	"student_directory/internal/config"
	"student_directory/internal/form"
	"student_directory/internal/profile"
)

const usage = `student directory

Usage:
  directory <command> [flags]

Commands:
  login         sign in and show the dashboard
  register      create an account and its profile
  home          show the dashboard for a signed-in user
  edit-profile  edit the signed-in user's profile
  add-user      create a user on someone's behalf (temp password shown once)
  edit-user     edit an arbitrary user record
  users         list all user records
  delete-user   delete an account and its record
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	application, cleanup, err := initializeApp(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize application: %v", err)
	}
	defer cleanup()

	ctx := context.Background()
	application.Start()

	if err := run(ctx, application, os.Args[1], os.Args[2:]); err != nil {
		if appErr, ok := common.IsError(err); ok {
			fmt.Fprintf(os.Stderr, "Error: %s\n", appErr.Message)
			if appErr.Details != nil {
				fmt.Fprintf(os.Stderr, "  %v\n", appErr.Details)
			}
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, application *app.App, command string, args []string) error {
	switch command {
	case "login":
		return runLogin(ctx, application, args)
	case "register":
		return runRegister(ctx, application, args)
	case "home":
		return runHome(ctx, application, args)
	case "edit-profile":
		return runEditProfile(ctx, application, args)
	case "add-user":
		return runAddUser(ctx, application, args)
	case "edit-user":
		return runEditUser(ctx, application, args)
	case "users":
		return runUsers(ctx, application)
	case "delete-user":
		return runDeleteUser(ctx, application, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func runLogin(ctx context.Context, application *app.App, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if _, err := application.SignIn(ctx, *email, *password); err != nil {
		return err
	}
	if _, err := application.WaitReady(ctx); err != nil {
		return err
	}
	return printDashboard(ctx, application)
}

func runRegister(ctx context.Context, application *app.App, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	in := profile.RegisterInput{}
	fs.StringVar(&in.Name, "name", "", "full name")
	fs.StringVar(&in.Email, "email", "", "account email")
	fs.StringVar(&in.Password, "password", "", "account password (min 6 chars)")
	fs.StringVar(&in.UniversityDegree, "degree", "", "university degree")
	fs.StringVar(&in.GraduationYear, "year", "", "graduation year")
	fs.Parse(args)

	p, err := application.Register(ctx, in)
	if err != nil {
		return err
	}
	fmt.Printf("Registered %s <%s>\n", p.Name, p.Email)
	return nil
}

func runHome(ctx context.Context, application *app.App, args []string) error {
	if err := signInFromFlags(ctx, application, args); err != nil {
		return err
	}
	return printDashboard(ctx, application)
}

// editFlagFields maps edit-flow flag names onto form field names. Flags not
// passed keep the value loaded from the record.
var editFlagFields = map[string]string{
	"name":   form.FieldName,
	"degree": form.FieldUniversityDegree,
	"year":   form.FieldGraduationYear,
}

// applyEditFlags overlays explicitly-passed flags onto the mounted form.
func applyEditFlags(fs *flag.FlagSet, st *form.State) {
	fs.Visit(func(f *flag.Flag) {
		if field, ok := editFlagFields[f.Name]; ok {
			st.SetField(field, f.Value.String())
		}
	})
}

func runEditProfile(ctx context.Context, application *app.App, args []string) error {
	fs := flag.NewFlagSet("edit-profile", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.String("name", "", "full name (defaults to current value)")
	fs.String("degree", "", "university degree (defaults to current value)")
	fs.String("year", "", "graduation year (defaults to current value)")
	fs.Parse(args)

	if _, err := application.SignIn(ctx, *email, *password); err != nil {
		return err
	}

	st, err := application.ProfileForm(ctx)
	if err != nil {
		return err
	}
	prev := st.Snapshot()
	applyEditFlags(fs, st)

	if err := application.EditProfile(ctx, prev, st); err != nil {
		if errors.Is(err, common.ErrNoChanges) {
			fmt.Println("No changes to save.")
			return nil
		}
		return err
	}
	fmt.Println("Profile updated.")
	return nil
}

func runAddUser(ctx context.Context, application *app.App, args []string) error {
	fs := flag.NewFlagSet("add-user", flag.ExitOnError)
	in := profile.AdminCreateInput{}
	fs.StringVar(&in.Name, "name", "", "full name")
	fs.StringVar(&in.Email, "email", "", "account email")
	fs.StringVar(&in.UniversityDegree, "degree", "", "university degree")
	fs.StringVar(&in.GraduationYear, "year", "", "graduation year")
	fs.Parse(args)

	result, err := application.AddUser(ctx, in)
	if err != nil {
		return err
	}
	fmt.Printf("User created: %s <%s>\n", result.Profile.Name, result.Profile.Email)
	fmt.Printf("Temporary password (shown once, share it securely): %s\n", result.TempPassword)
	return nil
}

func runEditUser(ctx context.Context, application *app.App, args []string) error {
	fs := flag.NewFlagSet("edit-user", flag.ExitOnError)
	id := fs.String("id", "", "user id")
	fs.String("name", "", "full name (defaults to current value)")
	fs.String("degree", "", "university degree (defaults to current value)")
	fs.String("year", "", "graduation year (defaults to current value)")
	fs.Parse(args)

	st, err := application.UserForm(ctx, *id)
	if err != nil {
		return err
	}
	prev := st.Snapshot()
	applyEditFlags(fs, st)

	if err := application.EditUser(ctx, *id, prev, st); err != nil {
		if errors.Is(err, common.ErrNoChanges) {
			fmt.Println("No changes to save.")
			return nil
		}
		return err
	}
	fmt.Println("User updated.")
	return nil
}

func runUsers(ctx context.Context, application *app.App) error {
	directory, err := application.Users(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%d users (%d active)\n", directory.Stats.Total, directory.Stats.Active)
	for _, p := range directory.Profiles {
		edited := ""
		if p.HasBeenEdited() {
			edited = " (edited " + p.UpdatedAt + ")"
		}
		fmt.Printf("  %s  %s <%s>%s\n", p.ID, p.Name, p.Email, edited)
	}
	return nil
}

func runDeleteUser(ctx context.Context, application *app.App, args []string) error {
	fs := flag.NewFlagSet("delete-user", flag.ExitOnError)
	id := fs.String("id", "", "user id")
	fs.Parse(args)

	if err := application.DeleteUser(ctx, *id); err != nil {
		return err
	}
	fmt.Println("User deleted.")
	return nil
}

func signInFromFlags(ctx context.Context, application *app.App, args []string) error {
	fs := flag.NewFlagSet("home", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	_, err := application.SignIn(ctx, *email, *password)
	return err
}

func printDashboard(ctx context.Context, application *app.App) error {
	dashboard, err := application.Dashboard(ctx)
	if err != nil {
		return err
	}
	p := dashboard.Profile
	fmt.Printf("Welcome, %s <%s>\n", p.Name, p.Email)
	if dashboard.Fallback {
		fmt.Println("(no profile record yet — showing account info)")
		return nil
	}
	if p.UniversityDegree != "" {
		fmt.Printf("  %s, class of %d\n", p.UniversityDegree, p.GraduationYear)
	}
	return nil
}
