// Package cli routes subcommands to the dispatcher and prints the results.
package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Makepad-fr/wishlist/internal/app"
	"github.com/Makepad-fr/wishlist/internal/auth"
	"github.com/Makepad-fr/wishlist/internal/chart"
	"github.com/Makepad-fr/wishlist/internal/config"
	"github.com/Makepad-fr/wishlist/internal/model"
	"github.com/Makepad-fr/wishlist/internal/money"
	"github.com/Makepad-fr/wishlist/internal/prefs"
	"github.com/Makepad-fr/wishlist/internal/summary"
	"github.com/Makepad-fr/wishlist/internal/tui"
	"github.com/Makepad-fr/wishlist/internal/ui"
	"github.com/Makepad-fr/wishlist/internal/view"
)

// Options carry what the root command resolved.
type Options struct {
	Config *config.Config
	Log    *zap.Logger
	API    app.API
	Auth   *auth.Store
	Prefs  *prefs.Store
	In     io.Reader // answers to prompts; os.Stdin when nil
}

type runner struct {
	opt Options
	d   *app.Dispatcher
	in  *bufio.Reader
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	if opt.Log == nil {
		opt.Log = zap.NewNop()
	}
	if opt.In == nil {
		opt.In = os.Stdin
	}
	r := &runner{
		opt: opt,
		d:   app.NewDispatcher(opt.API, opt.Log, opt.Config.DateLayout),
		in:  bufio.NewReader(opt.In),
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ui":
		return r.doUI(ctx)

	case "ls":
		return r.doList(ctx, a)

	case "summary":
		return r.doSummary(ctx)

	case "add":
		return r.doAdd(ctx, a)

	case "rm":
		id, yes, code := parseIDArgs("rm", a, true)
		if code != 0 {
			return code
		}
		return r.doRemove(ctx, id, yes)

	case "check":
		id, _, code := parseIDArgs("check", a, false)
		if code != 0 {
			return code
		}
		return r.doCheck(ctx, id)

	case "check-all":
		return r.doCheckAll(ctx)

	case "history":
		id, _, code := parseIDArgs("history", a, false)
		if code != 0 {
			return code
		}
		return r.doHistory(ctx, id)

	case "export":
		if len(a) > 1 {
			ui.Fail("usage: wishlist export [dir]")
			return 2
		}
		dir := opt.Config.ExportDir
		if len(a) == 1 {
			dir = a[0]
		}
		return r.doExport(ctx, dir)

	case "view":
		return r.doView(a)

	case "auth":
		if len(a) == 0 {
			ui.Fail("usage: wishlist auth <login|logout|status|whoami>")
			return 2
		}
		switch a[0] {
		case "login":
			return r.doAuthLogin(a[1:])
		case "logout":
			return r.doAuthLogout()
		case "status":
			return r.doAuthStatus()
		case "whoami":
			return r.doAuthWhoAmI()
		}
		ui.Fail("unknown auth subcommand: " + a[0])
		return 2
	}

	ui.Fail("unknown subcommand: " + cmd)
	ui.Println()
	PrintHelp()
	return 2
}

func PrintHelp() {
	ui.Printf(`wishlist - track prices of things you want

Usage:
  wishlist [-api URL] [-config FILE] [-theme classic|neon|mono] [-no-color] <subcommand> [args]

Subcommands:
  ui                      Interactive client (mouse and keyboard)
  ls [-view grid|list]    Print all items and the summary
  summary                 Item counts and totals per currency
  add -type T -name N     Add an item [-url U -price P -currency C -image FILE -auto-image=false]
  rm <id> [-y]            Delete an item after confirmation
  check <id>              Fetch the current price of one item
  check-all               Fetch prices of every item with a URL
  history <id>            Price history chart
  export [dir]            Save the CSV export into dir
  view [grid|list]        Show or set the saved layout
  auth <login|logout|status|whoami>   Bearer token for the API

Examples:
  wishlist add -type Book -name "Dune" -url https://shop.example/dune
  wishlist check-all
  wishlist rm 3 -y
`)
}

// parseIDArgs reads "<id>" and, where allowed, a -y flag on either side.
func parseIDArgs(cmd string, a []string, allowYes bool) (id int, yes bool, code int) {
	usage := "usage: wishlist " + cmd + " <id>"
	if allowYes {
		usage += " [-y]"
	}
	var pos []string
	for _, s := range a {
		if allowYes && (s == "-y" || s == "--yes") {
			yes = true
			continue
		}
		pos = append(pos, s)
	}
	if len(pos) != 1 {
		ui.Fail(usage)
		return 0, false, 2
	}
	n, err := strconv.Atoi(pos[0])
	if err != nil || n <= 0 {
		ui.Fail(cmd + ": not an item id: " + pos[0])
		return 0, false, 2
	}
	return n, yes, 0
}

// -------------- subcommand impls ----------------

func (r *runner) doUI(ctx context.Context) int {
	err := tui.Run(ctx, r.d, r.opt.Prefs, tui.Options{
		DateLayout: r.opt.Config.DateLayout,
		ExportDir:  r.opt.Config.ExportDir,
		Log:        r.opt.Log,
	})
	if err != nil {
		ui.Fail("ui: " + err.Error())
		return 1
	}
	return 0
}

// load fetches the snapshot; every read-side subcommand starts here.
func (r *runner) load(ctx context.Context) ([]model.Item, bool) {
	items, err := r.d.Load(ctx)
	if err != nil {
		ui.Fail("load items: " + err.Error())
		return nil, false
	}
	return items, true
}

func (r *runner) find(ctx context.Context, id int) (model.Item, int) {
	if _, ok := r.load(ctx); !ok {
		return model.Item{}, 1
	}
	it, ok := r.d.Store().Find(id)
	if !ok {
		ui.Fail(fmt.Sprintf("no item with id %d", id))
		ui.Hint("Hint: run `wishlist ls` to see ids")
		return model.Item{}, 1
	}
	return it, 0
}

func (r *runner) doList(ctx context.Context, a []string) int {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	viewFlag := fs.String("view", "", "grid or list (default: saved preference)")
	width := fs.Int("width", 100, "render width in columns")
	if err := fs.Parse(a); err != nil {
		return 2
	}
	mode, err := r.opt.Prefs.ViewMode()
	if err != nil {
		r.opt.Log.Warn("read view preference", zap.Error(err))
	}
	if *viewFlag != "" {
		if mode, err = model.ParseViewMode(*viewFlag); err != nil {
			ui.Fail("ls: " + err.Error())
			return 2
		}
	}

	items, ok := r.load(ctx)
	if !ok {
		return 1
	}
	if s := view.RenderSummary(summary.Summarize(items)); s != "" {
		ui.Println(s)
	}
	ui.Println(view.Render(items, mode, view.Options{
		Width:      *width,
		DateLayout: r.opt.Config.DateLayout,
		Selected:   -1,
	}))
	return 0
}

func (r *runner) doSummary(ctx context.Context) int {
	items, ok := r.load(ctx)
	if !ok {
		return 1
	}
	t := ui.Current()
	s := summary.Summarize(items)
	lines := []string{
		ui.C(t.Title, "Summary"),
		fmt.Sprintf("%s %d", ui.C(t.Muted, "Items       "), s.TotalItems),
		fmt.Sprintf("%s %d", ui.C(t.Muted, "With price  "), s.ItemsWithPrice),
		"",
	}
	if !s.HasTotals() {
		lines = append(lines, ui.C(t.Muted, "No prices tracked yet"))
	}
	for _, code := range s.Currencies {
		lines = append(lines, fmt.Sprintf("%s %s %s", t.Bullet, code, ui.C(t.Price, money.Format(code, s.Totals[code]))))
	}
	ui.Panel(lines)
	return 0
}

func (r *runner) doAdd(ctx context.Context, a []string) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var in model.NewItem
	fs.StringVar(&in.Type, "type", "", "category (required)")
	fs.StringVar(&in.Name, "name", "", "item name (required)")
	fs.StringVar(&in.URL, "url", "", "product page")
	fs.StringVar(&in.Price, "price", "", "current price")
	fs.StringVar(&in.Currency, "currency", money.DefaultCurrency, "currency code")
	fs.BoolVar(&in.AutoFetchImage, "auto-image", true, "let the server fetch an image from -url")
	fs.StringVar(&in.ImageFile, "image", "", "image file to upload")
	if err := fs.Parse(a); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		ui.Fail("add: unexpected arguments: " + strings.Join(fs.Args(), " "))
		return 2
	}
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		ui.Fail("add: " + err.Error())
		return 2
	}
	if o := r.d.Add(ctx, in); o.Alert != "" {
		ui.Fail(o.Alert)
		return 1
	}
	ui.OK("added " + in.Name)
	return 0
}

func (r *runner) doRemove(ctx context.Context, id int, yes bool) int {
	it, code := r.find(ctx, id)
	if code != 0 {
		return code
	}
	if !yes && !r.confirm(app.DeleteConfirmPrompt+" ("+it.Name+")") {
		ui.Info("cancelled")
		return 0
	}
	if o := r.d.Delete(ctx, id); o.Alert != "" {
		ui.Fail(o.Alert)
		return 1
	}
	ui.OK("removed " + it.Name)
	return 0
}

// confirm asks a yes/no question on stdin. Anything but y/yes is a no.
func (r *runner) confirm(prompt string) bool {
	ui.Printf("%s [y/N]: ", prompt)
	line, err := r.in.ReadString('\n')
	if err != nil && line == "" {
		ui.Println()
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (r *runner) doCheck(ctx context.Context, id int) int {
	it, code := r.find(ctx, id)
	if code != 0 {
		return code
	}
	if !it.HasURL() {
		ui.Fail(it.Name + " has no URL to check")
		return 2
	}
	o := r.d.CheckPrice(ctx, it)
	if !o.Reload {
		ui.Fail(o.Alert)
		return 1
	}
	ui.OK(o.Alert)
	return 0
}

func (r *runner) doCheckAll(ctx context.Context) int {
	items, ok := r.load(ctx)
	if !ok {
		return 1
	}
	o := r.d.CheckAll(ctx, items, func(done, total int) {
		ui.Progress("Checking", done, total)
	})
	if o.Alert == app.AlertCheckAllFailed {
		ui.Fail(o.Alert)
		return 1
	}
	ui.OK(o.Alert)
	return 0
}

func (r *runner) doHistory(ctx context.Context, id int) int {
	it, code := r.find(ctx, id)
	if code != 0 {
		return code
	}
	s, err := r.d.History(ctx, it)
	if err != nil {
		ui.Fail(app.HistoryAlert(err))
		return 1
	}
	t := ui.Current()
	ui.Println(ui.C(t.Title, "Price History") + "  " + it.Name + "  " + ui.C(t.Muted, s.Legend))
	ui.Println(chart.New(s).Render(72, 12))
	for _, p := range s.Points {
		ui.Println(fmt.Sprintf("  %s %-14s %s", t.Bullet, p.Label, ui.C(t.Price, s.Tick(p.Price))))
	}
	return 0
}

func (r *runner) doExport(ctx context.Context, dir string) int {
	path, o := r.d.Export(ctx, dir)
	if path == "" {
		ui.Fail(o.Alert)
		return 1
	}
	ui.OK("exported to " + path)
	return 0
}

func (r *runner) doView(a []string) int {
	switch len(a) {
	case 0:
		mode, err := r.opt.Prefs.ViewMode()
		if err != nil {
			ui.Fail("view: " + err.Error())
		}
		ui.Println(string(mode))
		return 0
	case 1:
		mode, err := model.ParseViewMode(a[0])
		if err != nil {
			ui.Fail("view: " + err.Error())
			return 2
		}
		if err := r.opt.Prefs.SetViewMode(mode); err != nil {
			ui.Fail("view: " + err.Error())
			return 1
		}
		ui.OK("view set to " + string(mode))
		return 0
	}
	ui.Fail("usage: wishlist view [grid|list]")
	return 2
}

// -------------- auth subcommands ----------------

func (r *runner) doAuthLogin(a []string) int {
	var token string
	if len(a) > 0 {
		token = a[0]
	} else {
		ui.Printf("Paste your token: ")
		line, err := r.in.ReadString('\n')
		if err != nil && line == "" {
			ui.Fail("read token: " + err.Error())
			return 1
		}
		token = line
	}
	if err := r.opt.Auth.Set(token); err != nil {
		ui.Fail("save token: " + err.Error())
		return 1
	}
	ui.OK("logged in")
	return 0
}

func (r *runner) doAuthLogout() int {
	ti, _ := r.opt.Auth.Get()
	if ti != nil && ti.Source == "env" {
		ui.OK("token is provided by " + auth.EnvToken + " env var (nothing to delete)")
		return 0
	}
	if err := r.opt.Auth.Delete(); err != nil {
		ui.Fail("logout: " + err.Error())
		return 1
	}
	ui.OK("logged out")
	return 0
}

func (r *runner) doAuthStatus() int {
	ti, err := r.opt.Auth.Get()
	if err != nil {
		ui.Fail("auth: " + err.Error())
		return 1
	}
	if ti == nil {
		ui.Info("not logged in")
		ui.Println("Run: wishlist auth login")
		return 0
	}
	ui.Printf("source: %s\n", ti.Source)
	if c, err := auth.Claims(ti.Token); err == nil && c.ExpiresAt != nil {
		ui.Printf("expires: %s\n", c.ExpiresAt.UTC().Format(time.RFC3339))
	} else {
		ui.Println("expires: (unknown)")
	}
	ui.Println("env override: " + auth.EnvToken)
	return 0
}

// whoami decodes a JWT locally (unverified); opaque tokens print basic info.
func (r *runner) doAuthWhoAmI() int {
	ti, _ := r.opt.Auth.Get()
	if ti == nil {
		ui.Fail("not logged in. Run: wishlist auth login")
		return 2
	}
	c, err := auth.Claims(ti.Token)
	if err != nil {
		ui.Println("Opaque token (cannot introspect locally).")
		ui.Println("source:", ti.Source)
		return 0
	}
	ui.Println("subject:", orNone(c.Subject))
	ui.Println("issuer: ", orNone(c.Issuer))
	if c.ExpiresAt != nil {
		ui.Println("expires:", c.ExpiresAt.UTC().Format(time.RFC3339))
	}
	return 0
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
