// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package inject

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Rewrite splices tags into an HTML document without re-serializing it:
// head fragments go right before the first </head>, pre-body fragments right
// after the first <body> start tag. Bytes outside the insertion points are
// copied verbatim.
//
// A document without </head> gets its head fragments before <body>, or after
// the leading doctype and comments when there is no body either. A document
// without <body> gets its pre-body fragments appended at the end.
func Rewrite(doc []byte, tags Tags) ([]byte, error) {
	if tags.Empty() {
		return doc, nil
	}

	head := strings.Join(tags.Head, "\n")
	preBody := strings.Join(tags.PreBody, "\n")

	var out bytes.Buffer
	out.Grow(len(doc) + len(head) + len(preBody) + 2)

	headDone := len(tags.Head) == 0
	bodyDone := len(tags.PreBody) == 0

	// prolog is the end of the leading doctype, comments and whitespace.
	prolog, inProlog := 0, true

	z := html.NewTokenizer(bytes.NewReader(doc))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("tokenize html: %w", err)
			}
			break
		}

		raw := z.Raw()
		if inProlog {
			switch {
			case tt == html.DoctypeToken, tt == html.CommentToken:
			case tt == html.TextToken && len(bytes.TrimSpace(raw)) == 0:
			default:
				inProlog = false
			}
		}
		if tt == html.StartTagToken || tt == html.EndTagToken {
			// TagName lower-cases the name inside the tokenizer buffer.
			raw = bytes.Clone(raw)
		}
		switch tt {
		case html.EndTagToken:
			if !headDone && tagName(z) == "head" {
				out.WriteString(head)
				out.WriteByte('\n')
				headDone = true
			}
			out.Write(raw)
		case html.StartTagToken:
			if tagName(z) != "body" || (bodyDone && headDone) {
				out.Write(raw)
				continue
			}
			if !headDone {
				out.WriteString(head)
				out.WriteByte('\n')
				headDone = true
			}
			out.Write(raw)
			if !bodyDone {
				out.WriteByte('\n')
				out.WriteString(preBody)
				bodyDone = true
			}
		default:
			out.Write(raw)
		}
		if inProlog {
			prolog = out.Len()
		}
	}

	doc = out.Bytes()
	if !headDone {
		withHead := make([]byte, 0, len(doc)+len(head)+1)
		withHead = append(withHead, doc[:prolog]...)
		withHead = append(withHead, head...)
		withHead = append(withHead, '\n')
		doc = append(withHead, doc[prolog:]...)
	}
	return appendPreBody(doc, preBody, bodyDone), nil
}

func appendPreBody(doc []byte, preBody string, done bool) []byte {
	if done {
		return doc
	}
	return append(doc, []byte("\n"+preBody)...)
}

func tagName(z *html.Tokenizer) string {
	name, _ := z.TagName()
	return string(name)
}
