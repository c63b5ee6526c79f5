package main

import (
	"context"
	"encoding/json"
	"os"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/masomo-console/core"
	"github.com/trezcool/masomo-console/core/dashboard"
	"github.com/trezcool/masomo-console/core/navigation"
	"github.com/trezcool/masomo-console/core/session"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

var isTerminalFunc = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) } // mockable

type preview struct {
	School       string                  `json:"school" yaml:"school"`
	Role         string                  `json:"role" yaml:"role"`
	Navigation   []navigation.Node       `json:"navigation" yaml:"navigation"`
	QuickActions []dashboard.QuickAction `json:"quick_actions" yaml:"quick_actions"`
}

// preview prints what a role of a school sees in the console.
func (cli *commandLine) preview(schoolID, role, search, format string) error {
	role = core.CleanString(role, true /* lower */)
	if !session.IsKnownRole(role) {
		return errUnknownRole
	}
	if format != formatJSON && format != formatYAML {
		return errUnknownFormat
	}

	sess := session.Session{
		UserID: "admin-cli",
		Role:   role,
		Tenant: session.Tenant{SchoolID: core.CleanString(schoolID)},
	}
	features := cli.features.FetchEnabled(context.Background(), sess)
	p := preview{
		School:       sess.Tenant.SchoolID,
		Role:         role,
		Navigation:   cli.builder.Build(features, search),
		QuickActions: cli.resolver.Resolve(features, role),
	}

	if format == formatYAML {
		enc := yaml.NewEncoder(cli.out)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(cli.out)
	if isTerminalFunc() {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(p)
}
