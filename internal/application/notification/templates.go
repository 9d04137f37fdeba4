package notification

import (
	"fmt"
	"strings"

	"github.com/renztrending/backend/internal/domain/order"
)

// SubscriptionConfirmation is sent when an address joins the newsletter
func SubscriptionConfirmation(email, siteURL string) Message {
	site := strings.TrimRight(siteURL, "/")
	return Message{
		To:      []string{email},
		Subject: "Welcome to RenzTrending",
		Text: fmt.Sprintf("Thanks for subscribing to the RenzTrending newsletter.\n\n"+
			"You'll be the first to hear about new drops and offers.\n\n"+
			"Shop now: %s\nUnsubscribe any time: %s/newsletter/unsubscribe\n", site, site),
		HTML: fmt.Sprintf(`<p>Thanks for subscribing to the <strong>RenzTrending</strong> newsletter.</p>`+
			`<p>You'll be the first to hear about new drops and offers.</p>`+
			`<p><a href="%s">Shop now</a> &middot; <a href="%s/newsletter/unsubscribe">Unsubscribe</a></p>`, site, site),
	}
}

// OrderUpdate tells a customer their order moved to a new status
func OrderUpdate(email, name string, e *order.OrderStatusChangedEvent, siteURL string) Message {
	link := fmt.Sprintf("%s/orders/%s", strings.TrimRight(siteURL, "/"), e.OrderID)
	status := e.To.Label()

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nYour order %s is now: %s.\n", name, e.OrderNumber, status)
	if e.TrackingNumber != "" && e.To.HasShipped() {
		fmt.Fprintf(&b, "Tracking number: %s\n", e.TrackingNumber)
	}
	fmt.Fprintf(&b, "\nView your order: %s\n\nTeam RenzTrending\n", link)

	return Message{
		To:      []string{email},
		Subject: fmt.Sprintf("Order %s: %s", e.OrderNumber, status),
		Text:    b.String(),
	}
}
