package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"veloura_back_end/internal/models"
)

// RenderReceiptPDF imprime le reçu d'une commande en PDF via Chrome headless.
// Le HTML est passé en data URL, pas besoin de front pour le rendu.
func RenderReceiptPDF(order models.Order, productTitle string) ([]byte, error) {
	html := receiptHTML(order, productTitle)
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// timeout pour éviter de bloquer
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte

	err := chromedp.Run(ctx,
		chromedp.Navigate(dataURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}

func receiptHTML(order models.Order, productTitle string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>Reçu de commande</title></head>
<body style="font-family: Arial, sans-serif; padding: 40px;">
	<h1 style="color: #333;">Veloura — Reçu de commande</h1>
	<p>Commande n° %s — %s</p>
	<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
		<thead>
			<tr style="background-color: #f0f0f0;">
				<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Produit</th>
				<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Couleur</th>
				<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Statut</th>
				<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
			</tr>
		</thead>
		<tbody>
			<tr>
				<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%.2f€</td>
			</tr>
		</tbody>
	</table>
	<h3>Livraison</h3>
	<p>%s<br>%s<br>%s</p>
</body>
</html>`,
		order.ID.String(),
		order.CreatedAt.Format("02/01/2006"),
		productTitle,
		order.Color,
		order.Status,
		order.TotalPrice,
		order.Name,
		order.Phone,
		order.Address,
	)
}
