package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/collection"
	"github.com/trezcool/schooladmin/core/school"
	"github.com/trezcool/schooladmin/core/user"
	apisvc "github.com/trezcool/schooladmin/services/api"
	"github.com/trezcool/schooladmin/services/prompt"
)

var (
	readPasswordFunc = prompt.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf    *core.Config
	api     *apisvc.API
	val     *school.Validator
	users   *user.Directory
	confirm collection.ConfirmFunc
	logger  core.Logger
	out     io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  list RESOURCE [-search TEXT] [-filter FIELD=VALUE]...  - list the records of a resource")
	fmt.Fprintln(cli.out, "  create RESOURCE -set FIELD=VALUE...                     - create a record")
	fmt.Fprintln(cli.out, "  edit RESOURCE -id ID -set FIELD=VALUE...                - update a record")
	fmt.Fprintln(cli.out, "  delete RESOURCE -id ID [-yes]                           - delete a record, after confirmation")
	fmt.Fprintln(cli.out, "  stats                                                   - show the dashboard counters")
	fmt.Fprintln(cli.out, "  login -email EMAIL                                      - check a login; the password will be prompted next")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]                                  - run a goose migration command (up, down, status, ...)")
	fmt.Fprintf(cli.out, "Resources: %s\n", strings.Join(school.ResourceNames, ", "))
}

// pair is a FIELD=VALUE argument.
type pair struct {
	key, value string
}

// pairs collects repeated FIELD=VALUE flags, in order.
type pairs []pair

func (p *pairs) String() string {
	if p == nil {
		return ""
	}
	strs := make([]string, 0, len(*p))
	for _, kv := range *p {
		strs = append(strs, kv.key+"="+kv.value)
	}
	return strings.Join(strs, ",")
}

func (p *pairs) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return errors.Errorf("%q is not of the form FIELD=VALUE", s)
	}
	*p = append(*p, pair{key: strings.TrimSpace(key), value: value})
	return nil
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelp
		}
		return err
	}
	return nil
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "list", "create", "edit", "delete":
		return cli.runRecordCmd(ctx, args[1], args[2:])
	case "stats":
		return cli.stats(ctx)
	case "login":
		loginCmd := cli.newFlagSet("login")
		loginEmail := loginCmd.String("email", "", "The user's email. The password will be prompted next.")
		if err := parseFlags(loginCmd, args[2:]); err != nil {
			return err
		}
		if *loginEmail == "" {
			loginCmd.Usage()
			return errHelp
		}
		pwd, err := readPasswordFunc(cli.out, "Enter password:")
		if err != nil {
			return err
		}
		if pwd == "" {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(*loginEmail, pwd)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(ctx, args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) runRecordCmd(ctx context.Context, cmd string, args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		cli.printUsage()
		return errHelp
	}
	name, args := args[0], args[1:]
	fs := cli.newFlagSet(cmd + " " + name)

	switch cmd {
	case "list":
		search := fs.String("search", "", "Only list the records containing TEXT in any field (case insensitive).")
		var filters pairs
		fs.Var(&filters, "filter", "Only list the records whose FIELD equals VALUE. Repeatable.")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		recs, err := cli.records(name, nil)
		if err != nil {
			return err
		}
		return recs.list(ctx, *search, filters)

	case "create":
		var sets pairs
		fs.Var(&sets, "set", "Set FIELD to VALUE. Repeatable.")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		if len(sets) == 0 {
			fs.Usage()
			return errHelp
		}
		recs, err := cli.records(name, nil)
		if err != nil {
			return err
		}
		return recs.create(ctx, sets)

	case "edit":
		id := fs.String("id", "", "The record id.")
		var sets pairs
		fs.Var(&sets, "set", "Set FIELD to VALUE. Repeatable.")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		if *id == "" || len(sets) == 0 {
			fs.Usage()
			return errHelp
		}
		recs, err := cli.records(name, nil)
		if err != nil {
			return err
		}
		return recs.edit(ctx, *id, sets)

	default: // delete
		id := fs.String("id", "", "The record id.")
		yes := fs.Bool("yes", false, "Do not ask for confirmation.")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		if *id == "" {
			fs.Usage()
			return errHelp
		}
		confirm := cli.confirm
		if *yes {
			confirm = func(context.Context, string) (bool, error) { return true, nil }
		}
		recs, err := cli.records(name, confirm)
		if err != nil {
			return err
		}
		return recs.remove(ctx, *id)
	}
}
