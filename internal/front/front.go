package front

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fatih/color"

	"orderfront/internal/backend/rest"
	"orderfront/internal/models"
	serviceerrors "orderfront/internal/service"
	cartservice "orderfront/internal/service/cart"
	checkoutservice "orderfront/internal/service/checkout"
	"orderfront/internal/session"
	"orderfront/pkg/lib/logger/sl"
)

// Front is the terminal screen layer. It owns no state of its own:
// the cart manager and the session store are the source of truth, the
// front only renders them and translates failures into reactions.
type Front struct {
	log      *slog.Logger
	client   *rest.Client
	session  *session.Store
	cart     *cartservice.Manager
	checkout *checkoutservice.Orchestrator

	in  io.Reader
	out io.Writer

	// one command in flight at a time, extra submissions are dropped
	// instead of queued
	busy atomic.Bool
	wg   sync.WaitGroup
}

func New(log *slog.Logger, client *rest.Client, sess *session.Store, cart *cartservice.Manager, checkout *checkoutservice.Orchestrator, in io.Reader, out io.Writer) *Front {
	return &Front{
		log:      log,
		client:   client,
		session:  sess,
		cart:     cart,
		checkout: checkout,
		in:       in,
		out:      out,
	}
}

func (f *Front) Run(ctx context.Context) error {
	fmt.Fprintln(f.out, "orderfront, type 'help' for commands")

	scanner := bufio.NewScanner(f.in)
	for {
		fmt.Fprint(f.out, "> ")
		if !scanner.Scan() {
			f.wg.Wait()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			f.wg.Wait()
			return nil
		}

		if !f.busy.CompareAndSwap(false, true) {
			f.warn("previous command is still running")
			continue
		}
		f.wg.Add(1)
		go func(line string) {
			defer f.wg.Done()
			defer f.busy.Store(false)
			f.dispatch(ctx, line)
		}(line)
	}
}

func (f *Front) dispatch(ctx context.Context, line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		f.help()
	case "login":
		f.login(ctx, args)
	case "logout":
		f.session.Clear()
		f.notice("signed out")
	case "menu":
		f.menu(ctx)
	case "item":
		f.item(ctx, args)
	case "admin":
		f.admin(ctx, args)
	case "cart":
		f.showCart(ctx)
	case "add":
		f.add(ctx, args)
	case "qty":
		f.setQuantity(ctx, args)
	case "rm":
		f.remove(ctx, args)
	case "note":
		f.noteAll(ctx, args)
	case "clear":
		f.clear(ctx)
	case "checkout":
		f.runCheckout(ctx, args)
	default:
		f.warn("unknown command, type 'help'")
	}
}

func (f *Front) help() {
	fmt.Fprintln(f.out, `  login <email> <password>
  menu
  item <menuId>
  cart
  add <menuId> <qty> [note...]
  qty <itemId> <quantity>       0 removes the line
  rm <itemId>
  note <text...>                applies the note to every line
  clear
  checkout <cash|card|bank_transfer> [note...]
  admin menu add <name> <price> [categoryId] | set <menuId> <name> <price> [categoryId] | rm <menuId>
  admin cat add <name...> | set <id> <name...> | rm <id>
  admin poster add <image> [title...] | rm <id>
  admin user list | add <email> <role> <password> [name...] | set <id> <email> <role> [name...] | rm <id>
  logout | quit`)
}

func (f *Front) login(ctx context.Context, args []string) {
	if len(args) != 2 {
		f.warn("usage: login <email> <password>")
		return
	}

	resp, err := f.client.Login(ctx, rest.LoginRequest{Email: args[0], Password: args[1]})
	if err != nil {
		f.react(err, "could not sign in")
		return
	}
	f.session.Set(resp.Token, resp.User)
	f.notice(fmt.Sprintf("signed in as %s (%s)", resp.User.Email, resp.User.Role))
}

func (f *Front) menu(ctx context.Context) {
	items, err := f.client.ListMenu(ctx)
	if err != nil {
		f.react(err, "could not load menu")
		return
	}
	for _, it := range items {
		if !it.Available {
			continue
		}
		fmt.Fprintf(f.out, "  %-36s  %-24s  %d\n", it.Id, it.Name, it.Price)
	}
}

func (f *Front) item(ctx context.Context, args []string) {
	if len(args) != 1 {
		f.warn("usage: item <menuId>")
		return
	}

	it, err := f.client.GetMenuItem(ctx, args[0])
	if err != nil {
		f.react(err, "could not load menu item")
		return
	}
	avail := "available"
	if !it.Available {
		avail = "unavailable"
	}
	fmt.Fprintf(f.out, "  %s\n  %s, %d (%s)\n", it.Id, it.Name, it.Price, avail)
}

// admin is the back-office command family. The server enforces roles
// on every call, the check here only saves a doomed round trip.
func (f *Front) admin(ctx context.Context, args []string) {
	user, err := f.session.User()
	if err != nil {
		f.warn("please sign in first")
		return
	}
	if user.Role != models.RoleManager && user.Role != models.RoleAdmin {
		f.warn("admin commands need a manager or admin account")
		return
	}
	if len(args) < 2 {
		f.warn("usage: admin <menu|cat|poster|user> <add|set|rm|list> ...")
		return
	}

	switch args[0] {
	case "menu":
		f.adminMenu(ctx, args[1:])
	case "cat":
		f.adminCategory(ctx, args[1:])
	case "poster":
		f.adminPoster(ctx, args[1:])
	case "user":
		if user.Role != models.RoleAdmin {
			f.warn("user management needs an admin account")
			return
		}
		f.adminUser(ctx, args[1:])
	default:
		f.warn("usage: admin <menu|cat|poster|user> <add|set|rm|list> ...")
	}
}

func (f *Front) adminMenu(ctx context.Context, args []string) {
	switch {
	case args[0] == "add" && len(args) >= 3:
		price, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			f.warn("price must be a whole number of minor units")
			return
		}
		in := rest.MenuItemInput{Name: args[1], Price: price, Available: true}
		if len(args) > 3 {
			in.CategoryId = args[3]
		}
		item, err := f.client.CreateMenuItem(ctx, in)
		if err != nil {
			f.react(err, "could not create menu item")
			return
		}
		f.notice("created menu item " + item.Id)
	case args[0] == "set" && len(args) >= 4:
		price, err := strconv.ParseInt(args[3], 10, 64)
		if err != nil {
			f.warn("price must be a whole number of minor units")
			return
		}
		in := rest.MenuItemInput{Name: args[2], Price: price, Available: true}
		if len(args) > 4 {
			in.CategoryId = args[4]
		}
		if _, err := f.client.UpdateMenuItem(ctx, args[1], in); err != nil {
			f.react(err, "could not update menu item")
			return
		}
		f.notice("updated menu item")
	case args[0] == "rm" && len(args) == 2:
		if err := f.client.DeleteMenuItem(ctx, args[1]); err != nil {
			f.react(err, "could not delete menu item")
			return
		}
		f.notice("deleted menu item")
	default:
		f.warn("usage: admin menu add <name> <price> [categoryId] | set <menuId> <name> <price> [categoryId] | rm <menuId>")
	}
}

func (f *Front) adminCategory(ctx context.Context, args []string) {
	switch {
	case args[0] == "add" && len(args) >= 2:
		cat, err := f.client.CreateCategory(ctx, rest.CategoryInput{Name: strings.Join(args[1:], " ")})
		if err != nil {
			f.react(err, "could not create category")
			return
		}
		f.notice("created category " + cat.Id)
	case args[0] == "set" && len(args) >= 3:
		if _, err := f.client.UpdateCategory(ctx, args[1], rest.CategoryInput{Name: strings.Join(args[2:], " ")}); err != nil {
			f.react(err, "could not update category")
			return
		}
		f.notice("updated category")
	case args[0] == "rm" && len(args) == 2:
		if err := f.client.DeleteCategory(ctx, args[1]); err != nil {
			f.react(err, "could not delete category")
			return
		}
		f.notice("deleted category")
	default:
		f.warn("usage: admin cat add <name...> | set <id> <name...> | rm <id>")
	}
}

func (f *Front) adminPoster(ctx context.Context, args []string) {
	switch {
	case args[0] == "add" && len(args) >= 2:
		poster, err := f.client.CreatePoster(ctx, rest.PosterInput{Image: args[1], Title: strings.Join(args[2:], " ")})
		if err != nil {
			f.react(err, "could not create poster")
			return
		}
		f.notice("created poster " + poster.Id)
	case args[0] == "rm" && len(args) == 2:
		if err := f.client.DeletePoster(ctx, args[1]); err != nil {
			f.react(err, "could not delete poster")
			return
		}
		f.notice("deleted poster")
	default:
		f.warn("usage: admin poster add <image> [title...] | rm <id>")
	}
}

func (f *Front) adminUser(ctx context.Context, args []string) {
	switch {
	case args[0] == "list" && len(args) == 1:
		users, err := f.client.ListUsers(ctx)
		if err != nil {
			f.react(err, "could not list users")
			return
		}
		for _, u := range users {
			fmt.Fprintf(f.out, "  %-36s  %-24s  %s\n", u.Id, u.Email, u.Role)
		}
	case args[0] == "add" && len(args) >= 4:
		user, err := f.client.CreateUser(ctx, rest.UserInput{
			Email:    args[1],
			Role:     models.Role(args[2]),
			Password: args[3],
			Name:     strings.Join(args[4:], " "),
		})
		if err != nil {
			f.react(err, "could not create user")
			return
		}
		f.notice("created user " + user.Id)
	case args[0] == "set" && len(args) >= 4:
		_, err := f.client.UpdateUser(ctx, args[1], rest.UserInput{
			Email: args[2],
			Role:  models.Role(args[3]),
			Name:  strings.Join(args[4:], " "),
		})
		if err != nil {
			f.react(err, "could not update user")
			return
		}
		f.notice("updated user")
	case args[0] == "rm" && len(args) == 2:
		if err := f.client.DeleteUser(ctx, args[1]); err != nil {
			f.react(err, "could not delete user")
			return
		}
		f.notice("deleted user")
	default:
		f.warn("usage: admin user list | add <email> <role> <password> [name...] | set <id> <email> <role> [name...] | rm <id>")
	}
}

func (f *Front) showCart(ctx context.Context) {
	if err := f.cart.Load(ctx); err != nil {
		f.react(err, "could not load cart")
		return
	}
	items := f.cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(f.out, "  cart is empty")
		return
	}
	for _, it := range items {
		note := ""
		if it.Note != "" {
			note = ", " + it.Note
		}
		fmt.Fprintf(f.out, "  %-36s  %dx %-20s %d%s\n", it.Id, it.Quantity, it.Menu.Name, it.LineTotal(), note)
	}
	fmt.Fprintf(f.out, "  total: %d (%d items)\n", f.cart.Total(), f.cart.Count())
}

func (f *Front) add(ctx context.Context, args []string) {
	if len(args) < 2 {
		f.warn("usage: add <menuId> <qty> [note...]")
		return
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		f.warn("quantity must be a number")
		return
	}

	if _, err := f.cart.Add(ctx, args[0], qty, strings.Join(args[2:], " ")); err != nil {
		f.react(err, "could not add to cart")
		return
	}
	f.notice("added")
}

func (f *Front) setQuantity(ctx context.Context, args []string) {
	if len(args) != 2 {
		f.warn("usage: qty <itemId> <quantity>")
		return
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		f.warn("quantity must be a number")
		return
	}

	if err := f.cart.SetQuantity(ctx, args[0], qty); err != nil {
		f.react(err, "could not change quantity")
		return
	}
	f.notice("updated")
}

func (f *Front) remove(ctx context.Context, args []string) {
	if len(args) != 1 {
		f.warn("usage: rm <itemId>")
		return
	}
	if err := f.cart.Remove(ctx, args[0]); err != nil {
		f.react(err, "could not remove item")
		return
	}
	f.notice("removed")
}

func (f *Front) noteAll(ctx context.Context, args []string) {
	if err := f.cart.ApplyNoteToAll(ctx, strings.Join(args, " ")); err != nil {
		f.react(err, "could not apply note to every item")
		return
	}
	f.notice("note applied to all items")
}

func (f *Front) clear(ctx context.Context) {
	if err := f.cart.Clear(ctx); err != nil {
		f.react(err, "could not clear cart")
		return
	}
	f.notice("cart cleared")
}

func (f *Front) runCheckout(ctx context.Context, args []string) {
	if len(args) < 1 {
		f.warn("usage: checkout <cash|card|bank_transfer> [note...]")
		return
	}
	method := models.PaymentMethod(args[0])

	result, err := f.checkout.Submit(ctx, method, strings.Join(args[1:], " "))
	if err != nil {
		var pe *checkoutservice.PaymentError
		switch {
		case errors.Is(err, serviceerrors.ErrEmptyCart):
			// back to the cart screen, nothing was sent
			f.warn("cart is empty")
			f.showCart(ctx)
		case errors.Is(err, serviceerrors.ErrNotAuthenticated):
			f.warn("please sign in first")
		case errors.Is(err, serviceerrors.ErrInvalidPaymentMethod):
			f.warn("payment method must be cash, card or bank_transfer")
		case errors.Is(err, serviceerrors.ErrOrderNotCreated):
			f.alert("could not create order, nothing was charged, you can retry")
		case errors.As(err, &pe):
			f.alert(fmt.Sprintf("payment failed for order %s, your cart is unchanged", pe.OrderId))
		default:
			f.react(err, "checkout failed")
		}
		return
	}

	f.notice(fmt.Sprintf("order %s paid (%s), thank you!", result.Order.Id, result.Payment.Status))
}

// react maps the shared error taxonomy onto screen behavior: a missing
// session sends the user to sign-in, anything else is a dismissible
// notice and the previous state is already restored by the services.
func (f *Front) react(err error, msg string) {
	f.log.Debug("Action failed", sl.Err(err))

	switch {
	case errors.Is(err, serviceerrors.ErrNotAuthenticated), errors.Is(err, session.ErrNoSession):
		f.session.Clear()
		f.warn("session expired or missing, please 'login' again")
	case errors.Is(err, serviceerrors.ErrInvalidQuantity):
		f.warn("quantity cannot be negative")
	case errors.Is(err, serviceerrors.ErrNotFound):
		f.warn("that item no longer exists")
	case errors.Is(err, serviceerrors.ErrMalformedResponse):
		f.alert(msg + " (the server answered with unusable data)")
	default:
		f.alert(msg)
	}
}

func (f *Front) notice(msg string) {
	fmt.Fprintln(f.out, color.GreenString("✔ "+msg))
}

func (f *Front) warn(msg string) {
	fmt.Fprintln(f.out, color.YellowString("! "+msg))
}

func (f *Front) alert(msg string) {
	fmt.Fprintln(f.out, color.RedString("✘ "+msg))
}
