package export

import (
	"net/url"
	"strings"

	"github.com/GTDGit/todopro_api/internal/config"
	"github.com/GTDGit/todopro_api/internal/models"
	"github.com/GTDGit/todopro_api/pkg/whatsapp"
)

const rule = "----------------------------------------"

// ShareMessage is a ready-to-send WhatsApp text for a quote.
type ShareMessage struct {
	Text  string `json:"text"`
	Phone string `json:"phone"`
	URL   string `json:"url"`
}

// BuildShareMessage renders the customer-facing quote summary.
func BuildShareMessage(company config.CompanyConfig, q models.Quote) ShareMessage {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	line("*" + company.Name + " - OFFICIAL QUOTATION*")
	line(rule)
	line("")

	line("📍 *Company Details*")
	line(company.Address + ", " + company.Area)
	line(company.City + ", " + company.Province + ", " + company.PostalCode)
	line("📞 Tel: " + company.Phone)
	line("📧 Email: " + company.Email)
	line("🏢 Company S.L: " + company.SLNumber)
	line("")

	line("*QUOTE DETAILS*")
	line(rule)
	line("Reference: #" + ShortReference(q.ID))
	line("Date: " + FormatDate(q.CreatedAt))
	line("")

	line("*CLIENT INFORMATION*")
	line(rule)
	line("Name: " + q.ClientInfo.Name)
	if q.ClientInfo.Phone != "" {
		line("Phone: " + q.ClientInfo.Phone)
	}
	if q.ClientInfo.Email != "" {
		line("Email: " + q.ClientInfo.Email)
	}
	line("Estimated Work Duration: " + DaysLabel(q.Days))
	line("")

	line("*EQUIPMENT DETAILS*")
	equipment := make([]string, 0, len(q.SelectedProducts))
	for _, p := range q.SelectedProducts {
		equipment = append(equipment, p.Name+": "+FormatNumber(p.Quantity)+" units at "+Euro(p.Price)+"/day")
	}
	line(strings.Join(equipment, "\n"))
	line("")

	line("*SUMMARY*")
	line("Estimated Work Duration: " + DaysLabel(q.Days))
	line("Total: " + Euro(q.FinalTotal))
	line("")

	if q.Notes != "" {
		line("*NOTES*")
		line(rule)
		line(q.Notes)
		line("")
	}

	line(rule)
	line("Thank you for choosing " + company.Name)
	line("For any questions, please contact us at:")
	line("Tel: " + company.Phone + " | Email: " + company.Email)
	b.WriteString(rule)

	text := b.String()
	phone := whatsapp.DigitsOnly(q.ClientInfo.Phone)
	return ShareMessage{Text: text, Phone: phone, URL: ShareURL(phone, text)}
}

// ShareURL builds a wa.me click-to-chat link. An empty phone opens the
// contact picker.
func ShareURL(phone, text string) string {
	return "https://wa.me/" + phone + "?text=" + encodeURIComponent(text)
}

// encodeURIComponent escapes spaces as %20 rather than '+', which wa.me
// would otherwise show literally.
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
