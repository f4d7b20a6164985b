package rxn4chemistry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

// ParagraphActions is the outcome of extracting synthesis actions from a
// recipe paragraph.
type ParagraphActions struct {
	// Actions are the individual extracted actions, e.g.
	// "ADD sodium borohydride (24 mg, 0.62 mmol)".
	Actions []string

	Raw json.RawMessage
}

// ParagraphToActions extracts the synthesis actions from a paragraph
// describing a recipe. The platform returns the action sequence as an HTML
// list; the items are parsed out and split on ";".
func (c *Client) ParagraphToActions(ctx context.Context, paragraph string) (*ParagraphActions, error) {
	body := map[string]string{"paragraph": paragraph}
	payload, err := c.do(ctx, http.MethodPost, c.routes().paragraphActions(), nil, body, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var probe struct {
		ActionSequence string `json:"actionSequence"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("decode action sequence payload: %w", err)
	}

	actions, err := actionsFromHTML(probe.ActionSequence)
	if err != nil {
		return nil, fmt.Errorf("parse action sequence: %w", err)
	}
	return &ParagraphActions{Actions: actions, Raw: payload}, nil
}

// actionsFromHTML pulls the text of every <li> out of an action sequence
// fragment and splits compound items on ";". Items are trimmed of the " ."
// padding the platform adds.
func actionsFromHTML(fragment string) ([]string, error) {
	root, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil, err
	}

	var actions []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "li" {
			for _, action := range strings.Split(nodeText(n), ";") {
				if trimmed := strings.Trim(action, " ."); trimmed != "" {
					actions = append(actions, trimmed)
				}
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return actions, nil
}

// nodeText concatenates the text content below an HTML node.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(nodeText(child))
	}
	return sb.String()
}
