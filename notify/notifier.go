package notify

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"time"

	"go_trial/foodhub/models"
)

//go:embed templates/*.html
var templateFiles embed.FS

var templates = template.Must(template.New("mail").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}).ParseFS(templateFiles, "templates/*.html"))

const timeLayout = "02/01/2006 15:04 MST"

var errNoRecipient = errors.New("recipient has no email address")

// Notifier turns workflow outcomes into rendered emails.
type Notifier struct {
	mailer Mailer
	now    func() time.Time
}

func NewNotifier(mailer Mailer) *Notifier {
	return &Notifier{mailer: mailer, now: time.Now}
}

type orderView struct {
	Name       string
	Restaurant string
	Order      *models.Order
	Reason     string
	When       string
	Year       int
}

func (n *Notifier) render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func (n *Notifier) send(ctx context.Context, to, subject, tmpl string, data interface{}) error {
	if to == "" {
		return errNoRecipient
	}
	body, err := n.render(tmpl, data)
	if err != nil {
		return err
	}
	return n.mailer.Send(ctx, Message{To: to, Subject: subject, HTML: body})
}

func (n *Notifier) orderView(order *models.Order, customer *models.User, restaurant *models.Restaurant) orderView {
	return orderView{
		Name:       customer.DisplayName(),
		Restaurant: restaurant.Name,
		Order:      order,
		When:       order.CreatedAt.UTC().Format(timeLayout),
		Year:       n.now().Year(),
	}
}

func (n *Notifier) OrderConfirmation(ctx context.Context, order *models.Order, customer *models.User, restaurant *models.Restaurant) error {
	subject := fmt.Sprintf("Order %s received", order.OrderNumber)
	return n.send(ctx, customer.Email, subject, "order_confirmation.html", n.orderView(order, customer, restaurant))
}

func (n *Notifier) OrderStatusUpdate(ctx context.Context, order *models.Order, customer *models.User, restaurant *models.Restaurant) error {
	subject := fmt.Sprintf("Order %s: %s", order.OrderNumber, order.Status.Label())
	return n.send(ctx, customer.Email, subject, "order_status.html", n.orderView(order, customer, restaurant))
}

func (n *Notifier) OrderCancellation(ctx context.Context, order *models.Order, customer *models.User, restaurant *models.Restaurant, reason string) error {
	view := n.orderView(order, customer, restaurant)
	view.Reason = reason
	subject := fmt.Sprintf("Order %s cancelled", order.OrderNumber)
	return n.send(ctx, customer.Email, subject, "order_cancelled.html", view)
}

func (n *Notifier) PasswordReset(ctx context.Context, user *models.User, resetURL string) error {
	expires := "soon"
	if user.ResetTokenExpiry != nil {
		expires = user.ResetTokenExpiry.UTC().Format(timeLayout)
	}
	return n.send(ctx, user.Email, "Password reset request", "password_reset.html", map[string]interface{}{
		"Name":    user.DisplayName(),
		"URL":     resetURL,
		"Expires": expires,
		"Year":    n.now().Year(),
	})
}

func (n *Notifier) PasswordChanged(ctx context.Context, user *models.User) error {
	at := n.now()
	return n.send(ctx, user.Email, "Your password was changed", "password_changed.html", map[string]interface{}{
		"Name":  user.DisplayName(),
		"Email": user.Email,
		"When":  at.UTC().Format(timeLayout),
		"Year":  at.Year(),
	})
}
