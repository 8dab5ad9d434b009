package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/wneessen/go-mail"

	"tienda_back_end/internal/models"
)

// SendOrderConfirmationEmail envoie l'e-mail de confirmation de commande,
// avec le reçu PDF en pièce jointe si disponible
func SendOrderConfirmationEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@tienda.example"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("recibo_tienda.pdf", bytes.NewReader(pdfAttachment))
	}

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

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande
func GenerateOrderConfirmationHTML(order models.Order, qrDataURI string) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>$%.2f</td>
				<td>$%.2f</td>
			</tr>`, item.Name, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	shippingHTML := fmt.Sprintf("$%.2f", order.Shipping)
	if order.Shipping == 0 {
		shippingHTML = "Gratis"
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h1>¡Pago completado con éxito!</h1>
	<p>Gracias por tu compra. Hemos recibido tu pedido y lo procesaremos a la brevedad.</p>
	<table border="0" cellpadding="6" cellspacing="0" width="100%%">
		<tr><th align="left">Producto</th><th>Cantidad</th><th>Precio</th><th>Total</th></tr>
		%s
	</table>
	<p>Subtotal: $%.2f<br/>
	Envío: %s<br/>
	<strong>Total: $%.2f</strong></p>
	<p>Escanea este código para seguir tu pedido:</p>
	<img src="%s" alt="QR seguimiento" width="160" height="160"/>
	<p style="color:#888;font-size:12px;">Pedido %s</p>
</body>
</html>`, itemsHTML, order.Subtotal, shippingHTML, order.Total, qrDataURI, order.ID.String())
}
