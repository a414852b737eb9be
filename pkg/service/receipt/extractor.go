// Package receipt turns semi-structured e-wallet payment emails into
// structured receipt values. Extraction is a pure function over the message
// bytes; messages without an HTML body are skipped, never errored.
package receipt

import (
	"encoding/base64"
	netmail "net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fitracker/fitracker/pkg/domain"
	"github.com/fitracker/fitracker/pkg/provider/mail"
)

// DefaultMerchant labels receipts whose counterparty could not be extracted.
const DefaultMerchant = "GoPay Transaction"

// DefaultCategory labels receipts matching none of the category keywords.
const DefaultCategory = "Expense"

var (
	amountPattern   = regexp.MustCompile(`(?i)Total Bayar[\s\S]*?Rp\s*([\d.]+)`)
	merchantPattern = regexp.MustCompile(`(?i)Pembayaran kepada[\s\S]*?>([^<]+)<`)
)

// categoryRules is scanned in order against the lower-cased body; the first
// matching keyword wins.
var categoryRules = []struct {
	keywords []string
	category string
}{
	{[]string{"gofood", "food"}, "Food"},
	{[]string{"goride", "gocar"}, "Transport"},
	{[]string{"top up", "topup"}, "Transfer"},
}

var timeNow = time.Now

// Extract parses a payment receipt out of msg. It returns nil when the
// message carries no decodable HTML body; otherwise every field is populated,
// falling back to zero amount, DefaultMerchant, DefaultCategory and the
// ingestion date when a pattern does not match.
func Extract(msg *mail.Message) *domain.ParsedReceipt {
	data := htmlBodyData(msg)
	if data == "" {
		return nil
	}
	html, err := decodeBody(data)
	if err != nil {
		return nil
	}

	return &domain.ParsedReceipt{
		Amount:   extractAmount(html),
		Merchant: extractMerchant(html),
		Category: inferCategory(html),
		Date:     extractDate(msg),
	}
}

// htmlBodyData locates the base64url body: a single-part body wins, otherwise
// the first text/html part of the MIME tree.
func htmlBodyData(msg *mail.Message) string {
	if msg.Payload.Body.Data != "" {
		return msg.Payload.Body.Data
	}
	return findHTMLPart(msg.Payload.Parts)
}

func findHTMLPart(parts []mail.Part) string {
	for _, p := range parts {
		if p.MimeType == "text/html" && p.Body.Data != "" {
			return p.Body.Data
		}
		if data := findHTMLPart(p.Parts); data != "" {
			return data
		}
	}
	return ""
}

func decodeBody(data string) (string, error) {
	normalized := strings.NewReplacer("+", "-", "/", "_").Replace(strings.TrimRight(data, "="))
	b, err := base64.RawURLEncoding.DecodeString(normalized)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// extractAmount matches the "Total Bayar … Rp 15.000" label and strips the
// thousands separators. An unmatched pattern yields 0, which callers treat as
// low confidence rather than an error.
func extractAmount(html string) float64 {
	m := amountPattern.FindStringSubmatch(html)
	if m == nil {
		return 0
	}
	raw := strings.ReplaceAll(m[1], ".", "")
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || amount < 0 {
		return 0
	}
	return amount
}

// extractMerchant walks the document for the text run following the
// "Pembayaran kepada" label, falling back to a raw pattern match when the
// markup does not parse into a usable tree.
func extractMerchant(html string) string {
	if merchant := merchantFromDoc(html); merchant != "" {
		return merchant
	}
	if m := merchantPattern.FindStringSubmatch(html); m != nil {
		if merchant := strings.TrimSpace(m[1]); merchant != "" {
			return merchant
		}
	}
	return DefaultMerchant
}

const merchantLabel = "pembayaran kepada"

// merchantFromDoc scans matched elements in document order and returns the
// first non-empty text run after the standalone label element. A value cell
// with nested markup yields its full concatenated text, not just the first
// inline fragment.
func merchantFromDoc(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	var merchant string
	labelSeen := false
	doc.Find("td,th,div,span,p,b,strong").Each(func(_ int, s *goquery.Selection) {
		if merchant != "" {
			return
		}
		text := strings.TrimSpace(s.Text())
		if labelSeen {
			if text != "" && !strings.EqualFold(text, merchantLabel) {
				merchant = text
			}
			return
		}
		if strings.EqualFold(text, merchantLabel) {
			labelSeen = true
		}
	})
	return merchant
}

func inferCategory(html string) string {
	lower := strings.ToLower(html)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return DefaultCategory
}

// extractDate reads the transport Date header, truncated to a calendar date
// in UTC. A missing or unparseable header defaults to the ingestion date.
func extractDate(msg *mail.Message) time.Time {
	if value := msg.Header("Date"); value != "" {
		if t, err := netmail.ParseDate(value); err == nil {
			return domain.DateOnly(t)
		}
	}
	return domain.DateOnly(timeNow())
}
