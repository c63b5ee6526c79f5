package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-console/core"
	"github.com/trezcool/masomo-console/core/dashboard"
	"github.com/trezcool/masomo-console/core/feature"
	"github.com/trezcool/masomo-console/core/navigation"
	"github.com/trezcool/masomo-console/core/session"
)

var (
	errHelp          = errors.New("help provided")
	errNoDatabase    = errors.New("this command needs the database catalog source")
	errReadOnlySrc   = errors.New("the configured catalog source does not persist assignments")
	errUnknownRole   = errors.New("unknown role")
	errUnknownFormat = errors.New("unknown format")
)

type commandLine struct {
	out        io.Writer
	db         *sql.DB
	validate   *validator.Validate
	assigner   feature.Assigner
	features   feature.Fetcher
	builder    navigation.Builder
	resolver   dashboard.Resolver
	invalidate func(ctx context.Context, tenant session.Tenant) error // drops cached features; optional
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a goose migration command (up, down, status, ...)")
	fmt.Fprintln(cli.out, "  assign -school ID -features KEY[,KEY...] - set the features enabled for a school (database source only)")
	fmt.Fprintln(cli.out, "  preview -school ID [-role ROLE] [-search QUERY] [-format json|yaml] - print a school's navigation and quick actions")
}

// persistentAssigner returns a only when the catalog source keeps assignments after the command exits.
func persistentAssigner(source string, a feature.Assigner) feature.Assigner {
	if source != core.CatalogSourceDatabase {
		return nil
	}
	return a
}

func splitList(s string) []string {
	var res []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			res = append(res, item)
		}
	}
	return res
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	assignCmd := flag.NewFlagSet("assign", flag.ContinueOnError)
	assignCmd.SetOutput(cli.out)
	assignSchool := assignCmd.String("school", "", "The school's id.")
	assignFeatures := assignCmd.String("features", "", "Comma separated feature keys, in menu order.")

	previewCmd := flag.NewFlagSet("preview", flag.ContinueOnError)
	previewCmd.SetOutput(cli.out)
	previewSchool := previewCmd.String("school", "", "The school's id.")
	previewRole := previewCmd.String("role", session.RoleSchoolAdmin, "The role to preview as: "+strings.Join(session.AllRoles, ", ")+".")
	previewSearch := previewCmd.String("search", "", "Filter the navigation tree.")
	previewFormat := previewCmd.String("format", formatYAML, "Output format: json or yaml.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "assign":
		if err := assignCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *assignSchool == "" {
			assignCmd.Usage()
			return errHelp
		}
		return cli.assign(*assignSchool, splitList(*assignFeatures))
	case "preview":
		if err := previewCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *previewSchool == "" {
			previewCmd.Usage()
			return errHelp
		}
		return cli.preview(*previewSchool, *previewRole, *previewSearch, *previewFormat)
	default:
		cli.printUsage()
		return errHelp
	}
}
