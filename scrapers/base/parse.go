package base

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Price text on RU marketplaces: optional space-grouped thousands,
// comma or dot decimals, e.g. "1 234,56 ₽".
var priceNumberRe = regexp.MustCompile(`\d{1,3}(?:\s?\d{3})*(?:[.,]\d{2})?`)

// Currency-anchored variant for free-text fallback over the whole body.
var priceWithCurrencyRe = regexp.MustCompile(`(?i)(\d{1,3}(?:\s?\d{3})*(?:[.,]\d{2})?)\s*(?:₽|руб|RUB)`)

// ParsePriceText extracts the first plausible price from a text fragment.
func ParsePriceText(text string) (float64, bool) {
	// Marketplaces group thousands with non-breaking spaces.
	text = strings.ReplaceAll(text, " ", " ")
	match := priceNumberRe.FindString(text)
	if match == "" {
		return 0, false
	}
	normalized := strings.ReplaceAll(match, " ", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	price, err := strconv.ParseFloat(normalized, 64)
	if err != nil || price <= 0 {
		return 0, false
	}
	return price, true
}

// FindPrice walks the selector list in order and returns the first
// element whose text parses as a price.
func FindPrice(doc *goquery.Document, selectors []string) (float64, bool) {
	for _, sel := range selectors {
		var price float64
		found := false
		doc.Find(sel).EachWithBreak(func(i int, s *goquery.Selection) bool {
			if p, ok := ParsePriceText(s.Text()); ok {
				price, found = p, true
				return false
			}
			return true
		})
		if found {
			return price, true
		}
	}
	return 0, false
}

// FindPriceInBody scans the page's visible text for a currency-anchored
// price. Fallback when every selector missed.
func FindPriceInBody(doc *goquery.Document) (float64, bool) {
	bodyText := doc.Find("body").Text()
	match := priceWithCurrencyRe.FindStringSubmatch(bodyText)
	if len(match) < 2 {
		return 0, false
	}
	return ParsePriceText(match[1])
}

// FindImage returns the first image URL matched by the selector list,
// falling back to the og:image meta tag. Query strings are stripped and
// data: URIs rejected.
func FindImage(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if src := cleanImageURL(doc.Find(sel).First().AttrOr("src", "")); src != "" {
			return src
		}
	}
	return cleanImageURL(doc.Find(`meta[property="og:image"]`).AttrOr("content", ""))
}

func cleanImageURL(src string) string {
	if src == "" || strings.HasPrefix(src, "data:image") {
		return ""
	}
	if i := strings.IndexByte(src, '?'); i >= 0 {
		src = src[:i]
	}
	return src
}

// FindTitle returns the first non-empty text matched by the selector
// list, then og:title, then h1, then the document title.
func FindTitle(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	if content := strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", "")); content != "" {
		return content
	}
	if text := strings.TrimSpace(doc.Find("h1").First().Text()); text != "" {
		return text
	}
	return strings.TrimSpace(doc.Find("title").Text())
}
