package view

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yndnr/shurlty-go/internal/core/domain"
	"github.com/yndnr/shurlty-go/internal/storage"
)

// Brand is the product name shown in the navbar.
const Brand = "Shurlty"

// NavItem is one navbar entry. Command is what the user types in the REPL.
type NavItem struct {
	Label   string
	Route   domain.Route
	Command string
}

// NavItems computes the navbar from the current session.
func NavItems(ctx context.Context, store storage.TokenStore) []NavItem {
	items := []NavItem{{Label: "Home", Route: domain.RouteHome, Command: "home"}}
	if storage.Authenticated(ctx, store) {
		return append(items,
			NavItem{Label: "My Links", Route: domain.RouteLinks, Command: "links"},
			NavItem{Label: "Logout", Command: "logout"},
		)
	}
	return append(items,
		NavItem{Label: "Login", Route: domain.RouteLogin, Command: "login"},
		NavItem{Label: "Register", Route: domain.RouteRegister, Command: "register"},
	)
}

// RenderNavbar writes a one-line navbar marking the active route.
func RenderNavbar(w io.Writer, items []NavItem, current domain.Route) error {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		label := it.Label
		if it.Route != "" && it.Route == current {
			label = "[" + label + "]"
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", label, it.Command))
	}
	_, err := fmt.Fprintf(w, "%s | %s\n", Brand, strings.Join(parts, "  "))
	return err
}

// Logout clears the credential and moves to /login without history.
func Logout(ctx context.Context, store storage.TokenStore, nav Replacer) error {
	if err := store.Clear(ctx); err != nil {
		return err
	}
	nav.Replace(domain.RouteLogin)
	return nil
}
