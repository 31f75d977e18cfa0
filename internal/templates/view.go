package templates

import (
	"fmt"
	"net/url"

	"github.com/jjenkins/mateng/internal/admitcard"
)

// Toast is a notification shown above the lookup result.
type Toast struct {
	Title   string
	Message string
	Variant string
}

// Destructive reports whether the toast is an error alert.
func (t Toast) Destructive() bool {
	return t.Variant == string(admitcard.SeverityDestructive)
}

// AdmitCardView is what the admit card page renders.
type AdmitCardView struct {
	FormNumber string
	State      admitcard.State
	Toasts     []Toast
}

type navLink struct {
	Href  string
	Label string
}

var navLinks = []navLink{
	{"/", "Home"},
	{"/delivery", "Delivery"},
	{"/education", "Education"},
	{"/marketplace", "Marketplace"},
	{"/admit-card", "Admit Card"},
}

func achievementURL(id int) string {
	return fmt.Sprintf("/achievements/%d", id)
}

func printURL(formNumber string) string {
	return "/admit-card/print?form_no=" + url.QueryEscape(formNumber)
}
