package htmlutil

import (
	"bytes"
	"context"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("skillsync.lib.htmlutil")

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// Anchor is a hyperlink node reduced to the parts link
// classification cares about: where it points, what it says, and
// what its immediate textual container says around it.
type Anchor struct {
	Href string
	Text string
	// text of the anchor's parent node, which usually carries
	// list numbering that never makes it into the anchor itself
	ContainerText string
}

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText normalizes rendered text the same way for every
// extraction rule: runs of whitespace collapsed to a single space,
// trimmed, printable runes only.
func CleanText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return removeNonPrintable(s)
}

func GetAnchors(ctx context.Context, sel *goquery.Selection) []Anchor {
	_, span := tracer.Start(ctx, "GetAnchors")
	defer span.End()

	anchors := []Anchor{}
	for _, n := range sel.Nodes {
		href := ""
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
				break
			}
		}

		text := CleanText(GetText(n))
		containerText := text
		if n.Parent != nil {
			containerText = CleanText(GetText(n.Parent))
		}

		anchors = append(anchors, Anchor{
			Href:          strings.TrimSpace(href),
			Text:          text,
			ContainerText: containerText,
		})
	}
	span.SetAttributes(attribute.Int("count", len(anchors)))

	return anchors
}

// FlattenText renders the document the way a text-mode dump would:
// every text node on its own line, tags gone.
func FlattenText(ctx context.Context, doc *goquery.Document) string {
	_, span := tracer.Start(ctx, "FlattenText")
	defer span.End()

	var lines []string
	for _, root := range doc.Selection.Nodes {
		flattenRecursive(root, &lines)
	}
	return strings.Join(lines, "\n")
}

func flattenRecursive(node *html.Node, lines *[]string) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		text := strings.TrimSpace(node.Data)
		if text != "" {
			*lines = append(*lines, text)
		}
		return
	}
	if node.Type == html.ElementNode && (node.Data == "script" || node.Data == "style") {
		return
	}
	child := node.FirstChild
	for child != nil {
		flattenRecursive(child, lines)
		child = child.NextSibling
	}
}
