// cmd/cli/commands.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/darkcod/eatadmin/internal/api"
	"github.com/darkcod/eatadmin/internal/model"
	"github.com/darkcod/eatadmin/internal/session"
)

// app bundles the wired gateway and session controller for command handlers.
// Every authenticated call hands ctrl.Invalidate to the gateway so the
// in-memory session follows a 401/403 immediately.
type app struct {
	ctx    context.Context
	client *api.Client
	ctrl   *session.Controller
}

// ------- session commands -------

func (a *app) login(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	u := fs.String("u", "", "email")
	p := fs.String("p", "", "password")
	_ = fs.Parse(args)
	if strings.TrimSpace(*u) == "" || *p == "" {
		fmt.Fprintln(os.Stderr, "need -u and -p")
		os.Exit(1)
	}

	st, err := a.ctrl.Login(a.ctx, strings.TrimSpace(*u), *p)
	if err != nil {
		fail(err)
	}
	fmt.Printf("logged in as %s\n", st.Subject)
}

func (a *app) logout() {
	a.ctrl.Logout(a.ctx)
	fmt.Println("logged out")
}

func (a *app) whoami() {
	st := a.ctrl.State()
	if !st.LoggedIn() {
		fmt.Println("not logged in")
		os.Exit(1)
	}
	printJSON(map[string]string{"subject": st.Subject, "role": st.Role})
}

// ------- dashboard -------

func (a *app) dashboard() {
	data, err := a.client.Dashboard(a.ctx, a.ctrl.Invalidate)
	if err != nil {
		fail(err)
	}
	fmt.Printf("orders today:  %d\n", data.OrdersToday)
	fmt.Printf("active orders: %d\n", data.ActiveOrders)
}

// ------- orders -------

func (a *app) orders() {
	orders, err := a.client.Orders(a.ctx, a.ctrl.Invalidate)
	if err != nil {
		fail(err)
	}
	type row struct {
		ID       int64  `json:"id"`
		Status   string `json:"status"`
		Customer string `json:"customer,omitempty"`
		Total    string `json:"total,omitempty"`
		Created  string `json:"created,omitempty"`
	}
	rows := []row{}
	for _, o := range orders {
		rows = append(rows, row{
			ID:       o.ID,
			Status:   string(o.Status),
			Customer: o.CustomerName,
			Total:    fmt.Sprintf("%.2f", o.Total),
			Created:  o.CreatedAt,
		})
	}
	printJSON(rows)
}

func (a *app) order(args []string) {
	fs := flag.NewFlagSet("order", flag.ExitOnError)
	id := fs.Int64("id", 0, "order id")
	_ = fs.Parse(args)
	if *id == 0 {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}

	o, err := a.client.Order(a.ctx, *id, a.ctrl.Invalidate)
	if err != nil {
		fail(err)
	}
	printJSON(o)
	if next := model.Transitions(o.Status); len(next) > 0 {
		fmt.Printf("next: %s\n", joinStatuses(next))
	}
}

func (a *app) orderStatus(args []string) {
	fs := flag.NewFlagSet("order-status", flag.ExitOnError)
	id := fs.Int64("id", 0, "order id")
	to := fs.String("to", "", "target status")
	_ = fs.Parse(args)
	if *id == 0 || *to == "" {
		fmt.Fprintln(os.Stderr, "need -id and -to")
		os.Exit(1)
	}

	target := model.OrderStatus(*to)
	o, err := a.client.Order(a.ctx, *id, a.ctrl.Invalidate)
	if err != nil {
		fail(err)
	}
	// same gate the order screen applies when deriving its buttons; the
	// backend still has the final word
	if !model.CanTransition(o.Status, target) {
		if model.Terminal(o.Status) {
			fail(fmt.Errorf("order %d is %s and cannot change status", o.ID, o.Status))
		}
		fail(fmt.Errorf("cannot move order %d from %s to %s (allowed: %s)", o.ID, o.Status, target, joinStatuses(model.Transitions(o.Status))))
	}

	updated, err := a.client.UpdateOrderStatus(a.ctx, *id, target, a.ctrl.Invalidate)
	if err != nil {
		fail(err)
	}
	printJSON(updated)
}

func joinStatuses(ss []model.OrderStatus) string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

// ------- products -------

func (a *app) products() {
	products, err := a.client.Products(a.ctx, a.ctrl.Invalidate)
	if err != nil {
		fail(err)
	}
	printJSON(products)
}

func (a *app) productAdd(args []string) {
	fs := flag.NewFlagSet("product-add", flag.ExitOnError)
	name := fs.String("name", "", "product name")
	desc := fs.String("desc", "", "description")
	price := fs.Float64("price", 0, "price")
	category := fs.Int64("category", 0, "category id")
	inactive := fs.Bool("inactive", false, "create as inactive")
	_ = fs.Parse(args)

	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		fmt.Fprintln(os.Stderr, "need -name")
		os.Exit(1)
	}

	active := !*inactive
	in := model.ProductInput{
		Name:        trimmed,
		Description: strings.TrimSpace(*desc),
		Price:       *price,
		CategoryID:  *category,
		IsActive:    &active,
	}
	p, err := a.client.CreateProduct(a.ctx, in, a.ctrl.Invalidate)
	if err != nil {
		fail(err)
	}
	printJSON(p)
}

func (a *app) productEdit(args []string) {
	fs := flag.NewFlagSet("product-edit", flag.ExitOnError)
	id := fs.Int64("id", 0, "product id")
	name := fs.String("name", "", "product name")
	desc := fs.String("desc", "", "description")
	price := fs.Float64("price", 0, "price")
	category := fs.Int64("category", 0, "category id")
	active := fs.Bool("active", true, "active flag")
	_ = fs.Parse(args)
	if *id == 0 {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}

	// only flags actually provided become part of the patch
	var patch model.ProductPatch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			v := strings.TrimSpace(*name)
			if v == "" {
				fmt.Fprintln(os.Stderr, "product name cannot be empty")
				os.Exit(1)
			}
			patch.Name = &v
		case "desc":
			v := strings.TrimSpace(*desc)
			patch.Description = &v
		case "price":
			patch.Price = price
		case "category":
			patch.CategoryID = category
		case "active":
			patch.IsActive = active
		}
	})
	if patch == (model.ProductPatch{}) {
		fmt.Fprintln(os.Stderr, "nothing to update")
		os.Exit(1)
	}

	p, err := a.client.UpdateProduct(a.ctx, *id, patch, a.ctrl.Invalidate)
	if err != nil {
		fail(err)
	}
	printJSON(p)
}

func (a *app) productRemove(args []string) {
	fs := flag.NewFlagSet("product-rm", flag.ExitOnError)
	id := fs.Int64("id", 0, "product id")
	_ = fs.Parse(args)
	if *id == 0 {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}

	if err := a.client.DeleteProduct(a.ctx, *id, a.ctrl.Invalidate); err != nil {
		fail(err)
	}
	fmt.Println("ok")
}

// ------- categories -------

func (a *app) categories() {
	categories, err := a.client.Categories(a.ctx, a.ctrl.Invalidate)
	if err != nil {
		fail(err)
	}
	printJSON(categories)
}

func (a *app) categoryAdd(args []string) {
	fs := flag.NewFlagSet("category-add", flag.ExitOnError)
	name := fs.String("name", "", "category name")
	desc := fs.String("desc", "", "description")
	_ = fs.Parse(args)

	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		fmt.Fprintln(os.Stderr, "need -name")
		os.Exit(1)
	}

	cat, err := a.client.CreateCategory(a.ctx, model.CategoryInput{Name: trimmed, Description: strings.TrimSpace(*desc)}, a.ctrl.Invalidate)
	if err != nil {
		fail(err)
	}
	printJSON(cat)
}

func (a *app) categoryEdit(args []string) {
	fs := flag.NewFlagSet("category-edit", flag.ExitOnError)
	id := fs.Int64("id", 0, "category id")
	name := fs.String("name", "", "category name")
	desc := fs.String("desc", "", "description")
	_ = fs.Parse(args)
	if *id == 0 {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}

	var patch model.CategoryPatch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			v := strings.TrimSpace(*name)
			if v == "" {
				fmt.Fprintln(os.Stderr, "category name cannot be empty")
				os.Exit(1)
			}
			patch.Name = &v
		case "desc":
			v := strings.TrimSpace(*desc)
			patch.Description = &v
		}
	})
	if patch == (model.CategoryPatch{}) {
		fmt.Fprintln(os.Stderr, "nothing to update")
		os.Exit(1)
	}

	cat, err := a.client.UpdateCategory(a.ctx, *id, patch, a.ctrl.Invalidate)
	if err != nil {
		fail(err)
	}
	printJSON(cat)
}

func (a *app) categoryRemove(args []string) {
	fs := flag.NewFlagSet("category-rm", flag.ExitOnError)
	id := fs.Int64("id", 0, "category id")
	_ = fs.Parse(args)
	if *id == 0 {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}

	if err := a.client.DeleteCategory(a.ctx, *id, a.ctrl.Invalidate); err != nil {
		fail(err)
	}
	fmt.Println("ok")
}
