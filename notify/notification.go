package notify

import (
	"math"
	"strings"

	"github.com/dcode-github/property_chatbot/backend/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Notification is an email addressed to a property owner.
type Notification struct {
	To      string
	Subject string
	Body    string
}

var printer = message.NewPrinter(language.English)

// FormatPrice renders a price with thousands separators, dropping the
// fraction for whole amounts: 1500000 -> "1,500,000", 999.5 -> "999.50".
func FormatPrice(price float64) string {
	if price == math.Trunc(price) && math.Abs(price) < 1e15 {
		return printer.Sprintf("%d", int64(price))
	}
	return printer.Sprintf("%.2f", price)
}

// InterestNotification tells the owner that a buyer is interested.
func InterestNotification(p models.Property, c models.Contact) Notification {
	var b strings.Builder
	b.WriteString("A potential buyer has shown interest in your property:\n\n")
	writeProperty(&b, p)
	b.WriteString("\nBuyer Details:\n")
	writeContact(&b, c)

	return Notification{
		To:      p.OwnerEmail,
		Subject: "New Interest in Property: " + p.Name,
		Body:    b.String(),
	}
}

// VisitNotification tells the owner that a visit has been booked.
func VisitNotification(p models.Property, v models.Visit) Notification {
	var b strings.Builder
	b.WriteString("A visit has been booked for your property:\n\n")
	writeProperty(&b, p)
	b.WriteString("\nVisitor Details:\n")
	writeContact(&b, v.Contact)
	b.WriteString("\nVisit Scheduled for:\n")
	b.WriteString("Date: " + v.Date + "\n")
	b.WriteString("Time: " + v.Time + "\n")

	return Notification{
		To:      p.OwnerEmail,
		Subject: "Visit Booked for Property: " + p.Name,
		Body:    b.String(),
	}
}

func writeProperty(b *strings.Builder, p models.Property) {
	b.WriteString("Property: " + p.Name + "\n")
	b.WriteString("Price: $" + FormatPrice(p.Price) + "\n")
	b.WriteString("Location: " + p.Location + "\n")
}

func writeContact(b *strings.Builder, c models.Contact) {
	b.WriteString("Name: " + c.Name + "\n")
	b.WriteString("Email: " + c.Email + "\n")
	b.WriteString("Phone: " + c.Phone + "\n")
}
