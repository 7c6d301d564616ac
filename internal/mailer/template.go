package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/storefront-labs/draft-checkout/internal/models"
)

// summaryData is the plain view model for the summary email. The workflow
// hands it to the template and nothing else, so the template can be swapped
// without touching order creation.
type summaryData struct {
	Greeting string
	Shop     string
	Split    bool
	Orders   []models.CreatedDraftOrder
}

func renderSummaryEmail(data summaryData) (string, error) {
	tmpl, err := template.New("summaryEmail").Parse(summaryEmailTemplate)
	if err != nil {
		return "", fmt.Errorf("parse summary email template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute summary email template: %w", err)
	}

	return buf.String(), nil
}

const summaryEmailTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Order summary</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #111827; color: white; padding: 20px; text-align: center; }
        .content { padding: 30px; background-color: #f9f9f9; }
        .stage { border: 1px solid #e5e7eb; border-radius: 5px; padding: 15px; margin: 15px 0; }
        .stage h3 { margin-top: 0; }
        .button { display: inline-block; padding: 12px 30px; background-color: #111827; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
        .items { width: 100%; border-collapse: collapse; }
        .items td { padding: 6px 0; border-bottom: 1px solid #e5e7eb; }
        .footer { padding: 20px; text-align: center; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Thanks for your order</h1>
        </div>

        <div class="content">
            <p>Hi {{.Greeting}},</p>

            {{if .Split}}
            <p>Your order has been split into a payment plan. We created the
            following draft orders for you; you will be invoiced for each
            stage in turn.</p>

            {{range .Orders}}
            <div class="stage">
                <h3>{{if .PlanStage}}{{.PlanStage}}{{else}}Order {{.Name}}{{end}}</h3>
                <p>Order {{.Name}} &mdash; {{.Total}} {{.Currency}}</p>
            </div>
            {{end}}
            {{else}}
            {{range .Orders}}
            <p>We created order {{.Name}} for you.</p>

            <table class="items">
                {{range .LineItems}}
                <tr>
                    <td>{{.Title}}</td>
                    <td>&times;{{.Quantity}}</td>
                    <td>{{.UnitPrice}}</td>
                </tr>
                {{end}}
            </table>

            <p><strong>Total: {{.Total}} {{.Currency}}</strong></p>

            {{if .InvoiceURL}}
            <div style="text-align: center;">
                <a href="{{.InvoiceURL}}" class="button">Complete your payment</a>
            </div>
            {{end}}
            {{end}}
            {{end}}
        </div>

        <div class="footer">
            <p>This email was sent automatically by {{.Shop}}. Please do not reply.</p>
        </div>
    </div>
</body>
</html>
`
