package ref

import "strings"

// parseTableRef parses a structured (table) reference "TableName[spec]"
// (§6.2). As documented in §9's open questions, any string containing '['
// is routed here even if the '[' is inside a quoted sheet name — the
// original implementation does not strip sheet-quoting first, and this
// port preserves that behavior rather than guessing at the intended fix.
func parseTableRef(text string) (Reference, error) {
	open := strings.IndexByte(text, '[')
	name := text[:open]
	content, ok := extractBalancedBracket(text, open)
	if !ok {
		return Reference{Kind: NamedKind, Name: text, Original: text}, nil
	}
	spec := parseTableSpecifier(content)
	return Reference{
		Kind: TableKind, TableName: name, TableSpec: &spec, Original: text,
	}, nil
}

// extractBalancedBracket returns the content between the outermost
// balanced '[' at openIdx and its matching ']'.
func extractBalancedBracket(text string, openIdx int) (string, bool) {
	depth := 0
	for i := openIdx; i < len(text); i++ {
		switch text[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return text[openIdx+1 : i], true
			}
		}
	}
	return "", false
}

// parseTableSpecifier classifies bracket content per §6.2: a bare word is a
// Column; "word:word" is a ColumnRange; a leading '#' is a SpecialItem;
// nested brackets are a Combination of parsed parts.
//
// PARSE_COMPLEX_TABLE_SPECIFIER does not fully parse arbitrary
// "[[spec1],[spec2],...]" grammars (§9 open question): it only recognizes
// the known #Headers/#Data/#Totals/#All tokens inside a combination and
// otherwise falls back to storing the raw content as a column name. That
// limitation is preserved here rather than generalized.
func parseTableSpecifier(content string) TableSpecifier {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "[") {
		return parseCombination(trimmed)
	}
	if strings.HasPrefix(trimmed, "#") || trimmed == "@" {
		return TableSpecifier{Kind: SpecSpecialItem, Special: trimmed}
	}
	if idx := strings.IndexByte(trimmed, ':'); idx >= 0 {
		return TableSpecifier{
			Kind:      SpecColumnRange,
			Column:    strings.TrimSpace(trimmed[:idx]),
			ColumnEnd: strings.TrimSpace(trimmed[idx+1:]),
		}
	}
	return TableSpecifier{Kind: SpecColumn, Column: trimmed}
}

func parseCombination(content string) TableSpecifier {
	var parts []TableSpecifier
	depth := 0
	start := -1
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '[':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case ']':
			depth--
			if depth == 0 && start >= 0 {
				inner := content[start:i]
				if isKnownSpecialToken(strings.TrimSpace(inner)) {
					parts = append(parts, TableSpecifier{Kind: SpecSpecialItem, Special: strings.TrimSpace(inner)})
				} else {
					parts = append(parts, parseTableSpecifier(inner))
				}
				start = -1
			}
		}
	}
	if len(parts) == 0 {
		return TableSpecifier{Kind: SpecCombination, Raw: content}
	}
	return TableSpecifier{Kind: SpecCombination, Parts: parts}
}

func isKnownSpecialToken(s string) bool {
	switch s {
	case "#All", "#Headers", "#Data", "#Totals", "@":
		return true
	default:
		return false
	}
}
