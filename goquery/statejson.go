package goquery

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rmehra/pricekart"
)

// Candidate is a product-shaped node found in a structured-data blob: an
// object exposing a name-like field alongside a price-like field.
type Candidate struct {
	Name  string
	Price *float64
	MRP   *float64
}

// Key-name sets for recognizing product-shaped objects. Keys are compared
// after lowercasing and stripping underscores, so "selling_price" and
// "sellingPrice" are the same key.
var (
	nameKeys  = []string{"name", "title", "productname", "displayname", "itemname"}
	priceKeys = []string{"price", "sellingprice", "offerprice", "saleprice", "discountedprice", "finalprice"}
	mrpKeys   = []string{"mrp", "maxretailprice", "originalprice", "listprice", "strikeoffprice", "markedprice"}
)

// FindStateJSON locates an embedded JSON payload in the document's script
// elements. A marker either names a script by content (e.g. a
// window.__INITIAL_STATE__ assignment) or matches a pure-JSON script body
// (e.g. a __NEXT_DATA__ element). Returns the decoded value and whether a
// payload was found; malformed blobs are treated as absent.
func FindStateJSON(doc *goquery.Document, markers []string) (any, bool) {
	var state any
	found := false

	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		content := sel.Text()
		if content == "" {
			return true
		}

		matched := false
		if id, ok := sel.Attr("id"); ok {
			for _, marker := range markers {
				if strings.Contains(id, marker) {
					matched = true
					break
				}
			}
		}
		if !matched {
			for _, marker := range markers {
				if strings.Contains(content, marker) {
					matched = true
					break
				}
			}
		}
		if !matched {
			return true
		}

		raw := jsonPayload(content)
		if raw == "" {
			return true
		}
		if err := json.Unmarshal([]byte(raw), &state); err != nil {
			// Malformed blob: keep scanning, the page may carry
			// more than one state script.
			return true
		}
		found = true
		return false
	})

	return state, found
}

// jsonPayload extracts the JSON object from a script body: either the whole
// body when it is pure JSON, or the first balanced {...} group after an
// assignment.
func jsonPayload(content string) string {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "{") {
		return trimmed
	}

	start := strings.Index(content, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(content); i++ {
		ch := content[i]
		switch {
		case escaped:
			escaped = false
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return content[start : i+1]
			}
		}
	}
	return ""
}

// broadPassVisits caps the number of nodes the broad pass visits. Hydration
// blobs can hold tens of thousands of nodes; past this budget the walk
// restarts restricted to product-hinted subtrees instead.
const broadPassVisits = 10000

// WalkState recursively searches a decoded JSON value for product-shaped
// objects. The walk is bounded by maxDepth to avoid runaway traversal on
// large payloads. It first makes a broad pass over all keys under a node
// budget; if that yields nothing, a second unbudgeted pass descends only
// into keys whose name contains one of keyHints, which keeps the walk out
// of irrelevant subtrees.
func WalkState(v any, maxDepth int, keyHints []string) []Candidate {
	var out []Candidate
	seen := make(map[string]bool)

	visits := broadPassVisits
	walkState(v, maxDepth, nil, &visits, seen, &out)
	if len(out) == 0 {
		visits = -1
		walkState(v, maxDepth, keyHints, &visits, seen, &out)
	}
	return out
}

func walkState(v any, depth int, keyHints []string, visits *int, seen map[string]bool, out *[]Candidate) {
	if depth <= 0 || *visits == 0 {
		return
	}
	if *visits > 0 {
		*visits--
	}

	switch node := v.(type) {
	case map[string]any:
		if c, ok := candidateFromObject(node); ok {
			key := pricekart.NameKey(c.Name)
			if !seen[key] {
				seen[key] = true
				*out = append(*out, c)
			}
			return
		}
		// Keys are visited in sorted order so repeated extractions of
		// the same document discover products in the same order.
		for _, key := range sortedKeys(node) {
			if keyHints != nil && !keyMatchesHint(key, keyHints) {
				continue
			}
			walkState(node[key], depth-1, keyHints, visits, seen, out)
		}
	case []any:
		for _, child := range node {
			walkState(child, depth-1, keyHints, visits, seen, out)
		}
	}
}

// candidateFromObject recognizes an object as a product when it has a
// non-trivial name field co-occurring with a price-like field.
func candidateFromObject(obj map[string]any) (Candidate, bool) {
	var c Candidate

	for _, key := range sortedKeys(obj) {
		val := obj[key]
		norm := normalizeKey(key)
		switch {
		case c.Name == "" && keyIn(norm, nameKeys):
			if s, ok := val.(string); ok {
				if s = strings.TrimSpace(s); len(s) > 3 {
					c.Name = s
				}
			}
		case c.Price == nil && keyIn(norm, priceKeys):
			c.Price = numericValue(val)
		case c.MRP == nil && keyIn(norm, mrpKeys):
			c.MRP = numericValue(val)
		}
	}

	if c.Name == "" || (c.Price == nil && c.MRP == nil) {
		return Candidate{}, false
	}
	return c, true
}

// WalkStateString searches a decoded JSON value for the first string field
// whose key contains one of the hints. Used to read the delivery location
// out of a state blob.
func WalkStateString(v any, maxDepth int, hints []string) string {
	if maxDepth <= 0 {
		return ""
	}

	switch node := v.(type) {
	case map[string]any:
		keys := sortedKeys(node)
		for _, key := range keys {
			if !keyMatchesHint(key, hints) {
				continue
			}
			if s, ok := node[key].(string); ok {
				s = strings.TrimSpace(s)
				if s != "" && len(s) < pricekart.MaxLocationLen {
					return s
				}
			}
		}
		for _, key := range keys {
			if s := WalkStateString(node[key], maxDepth-1, hints); s != "" {
				return s
			}
		}
	case []any:
		for _, child := range node {
			if s := WalkStateString(child, maxDepth-1, hints); s != "" {
				return s
			}
		}
	}
	return ""
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "")
}

func keyIn(norm string, set []string) bool {
	for _, k := range set {
		if norm == k {
			return true
		}
	}
	return false
}

func keyMatchesHint(key string, hints []string) bool {
	lower := strings.ToLower(key)
	for _, hint := range hints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// numericValue normalizes a price-like JSON value: numbers pass through,
// currency-bearing strings are parsed, everything else is nil.
func numericValue(v any) *float64 {
	switch val := v.(type) {
	case float64:
		if val < 0 {
			return nil
		}
		return pricekart.Amount(val)
	case string:
		if parsed, ok := pricekart.ParsePrice(val); ok {
			return pricekart.Amount(parsed)
		}
	}
	return nil
}
