package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/wneessen/go-mail"

	"veloura_back_end/internal/models"
)

// NotifyNewOrder prévient la marchande par e-mail qu'une commande vient
// d'arriver. Best-effort : un échec SMTP est loggé, jamais remonté au client.
func NotifyNewOrder(order models.Order, productTitle string) {
	to := os.Getenv("SHOP_OWNER_EMAIL")
	if to == "" || os.Getenv("SMTP_HOST") == "" {
		return
	}

	subject := fmt.Sprintf("🛍️ Nouvelle commande — %s (%s)", productTitle, order.Color)
	if err := sendMail(to, subject, newOrderHTML(order, productTitle)); err != nil {
		log.Println("⚠️ Échec envoi e-mail nouvelle commande:", err)
	}
}

func sendMail(to, subject, htmlBody string) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@veloura.shop"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

func newOrderHTML(order models.Order, productTitle string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>Nouvelle commande</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Nouvelle commande reçue</h2>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<tr><td style="padding: 8px; border: 1px solid #ddd;"><strong>Produit</strong></td><td style="padding: 8px; border: 1px solid #ddd;">%s</td></tr>
			<tr><td style="padding: 8px; border: 1px solid #ddd;"><strong>Couleur</strong></td><td style="padding: 8px; border: 1px solid #ddd;">%s</td></tr>
			<tr><td style="padding: 8px; border: 1px solid #ddd;"><strong>Client</strong></td><td style="padding: 8px; border: 1px solid #ddd;">%s</td></tr>
			<tr><td style="padding: 8px; border: 1px solid #ddd;"><strong>Téléphone</strong></td><td style="padding: 8px; border: 1px solid #ddd;">%s</td></tr>
			<tr><td style="padding: 8px; border: 1px solid #ddd;"><strong>Adresse</strong></td><td style="padding: 8px; border: 1px solid #ddd;">%s</td></tr>
			<tr><td style="padding: 8px; border: 1px solid #ddd;"><strong>Total</strong></td><td style="padding: 8px; border: 1px solid #ddd;">%.2f€</td></tr>
		</table>
		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>Veloura</strong>
		</p>
	</div>
</body>
</html>`, productTitle, order.Color, order.Name, order.Phone, order.Address, order.TotalPrice)
}
