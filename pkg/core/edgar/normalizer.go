package edgar

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StructuredText converts raw filing HTML into plain text that keeps the
// structural hints an LLM needs: paragraph breaks, "- " bullet prefixes, and
// " | "-joined table rows. SEC filings span three decades of legal-HTML
// conventions (uppercase tags, nested layout tables, truncated markup), so
// the conversion is strictly best-effort: it is pure, deterministic, and
// never fails. If the DOM parser rejects the input a regex pass takes over.
func StructuredText(raw string) string {
	if raw == "" {
		return ""
	}

	s := html.UnescapeString(raw)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return postProcess(normalizeWithRegex(s))
	}

	doc.Find("script, style").Remove()

	doc.Find("br").Each(func(_ int, sel *goquery.Selection) {
		sel.ReplaceWithHtml("\n")
	})

	// Bullets: flatten each item's inline content, collapse its whitespace.
	doc.Find("li").Each(func(_ int, sel *goquery.Selection) {
		text := collapseSpace(sel.Text())
		sel.ReplaceWithHtml("\n- " + html.EscapeString(text))
	})

	// Tables become blocks of " | "-joined rows.
	doc.Find("table").Each(func(_ int, sel *goquery.Selection) {
		var rows []string
		sel.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var cells []string
			tr.Find("td, th").Each(func(_ int, td *goquery.Selection) {
				cells = append(cells, collapseSpace(td.Text()))
			})
			if len(cells) > 0 {
				rows = append(rows, strings.Join(cells, " | "))
			}
		})
		sel.ReplaceWithHtml("\n" + html.EscapeString(strings.Join(rows, "\n")) + "\n")
	})

	// Paragraphs, headings and section-like blocks get breaks on both sides.
	doc.Find("p, h1, h2, h3, h4, h5, h6, section, article").Each(func(_ int, sel *goquery.Selection) {
		sel.BeforeHtml("\n")
		sel.AfterHtml("\n")
	})

	// Divs are layout wrappers. Ones holding no block children collapse to
	// their inner text plus a space, so flow text is not broken mid-sentence.
	doc.Find("div").Each(func(_ int, sel *goquery.Selection) {
		if sel.Find("p, h1, h2, h3, h4, h5, h6, section, article, table, ul, ol").Length() == 0 {
			sel.AfterHtml(" ")
		}
	})

	return postProcess(doc.Text())
}

var (
	reScript    = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	reStyle     = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	reBr        = regexp.MustCompile(`(?is)<br\s*/?>`)
	reLiClose   = regexp.MustCompile(`(?is)</li\s*>`)
	reLiOpen    = regexp.MustCompile(`(?is)<li\b[^>]*>`)
	reListWrap  = regexp.MustCompile(`(?is)</?(?:ul|ol)\b[^>]*>`)
	reCellClose = regexp.MustCompile(`(?is)</t[dh]\s*>`)
	reRowClose  = regexp.MustCompile(`(?is)</tr\s*>`)
	reTableTag  = regexp.MustCompile(`(?is)</?t(?:able|head|body|r|d|h)\b[^>]*>`)
	reBlockOpen = regexp.MustCompile(`(?is)<(?:p|h[1-6])\b[^>]*>`)
	reBlockEnd  = regexp.MustCompile(`(?is)</(?:p|h[1-6])\s*>`)
	reDiv       = regexp.MustCompile(`(?is)</?div\b[^>]*>`)
	reAnyTag    = regexp.MustCompile(`(?is)<[^>]+>`)
)

// normalizeWithRegex is the fallback conversion for markup the DOM parser
// cannot handle at all.
func normalizeWithRegex(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = reScript.ReplaceAllString(s, " ")
	s = reStyle.ReplaceAllString(s, " ")
	s = reBr.ReplaceAllString(s, "\n")
	s = reLiClose.ReplaceAllString(s, "\n")
	s = reLiOpen.ReplaceAllString(s, "\n- ")
	s = reListWrap.ReplaceAllString(s, "\n")
	s = reCellClose.ReplaceAllString(s, " | ")
	s = reRowClose.ReplaceAllString(s, "\n")
	s = reTableTag.ReplaceAllString(s, " ")
	s = reBlockOpen.ReplaceAllString(s, "\n")
	s = reBlockEnd.ReplaceAllString(s, "\n\n")
	s = reDiv.ReplaceAllString(s, " ")
	s = reAnyTag.ReplaceAllString(s, " ")
	return s
}

var (
	reDanglingPipe = regexp.MustCompile(`(?m)[ \t]*\|[ \t]*$`)
	reNewlineTrim  = regexp.MustCompile(`[ \t]*\n[ \t]*`)
	reManyNewlines = regexp.MustCompile(`\n{3,}`)
	reManySpaces   = regexp.MustCompile(`[ \t]{2,}`)
	reItemHeader   = regexp.MustCompile(`(?i)\s*(Item\s+\d+(?:\.\d+)*\s*[:\x{2013}\x{2014}-]?)\s*`)
)

// postProcess applies the text-level cleanup shared by both conversion paths.
func postProcess(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.ReplaceAll(s, "\u2013", "-")
	s = strings.ReplaceAll(s, "\u2014", "-")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	s = reDanglingPipe.ReplaceAllString(s, "")
	s = reNewlineTrim.ReplaceAllString(s, "\n")
	s = reManyNewlines.ReplaceAllString(s, "\n\n")
	s = reManySpaces.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "\n\n- ", "\n- ")

	// SEC section headers ("Item 7.01:") get their own line.
	s = reItemHeader.ReplaceAllString(s, "\n$1\n")
	s = reNewlineTrim.ReplaceAllString(s, "\n")
	s = reManyNewlines.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
