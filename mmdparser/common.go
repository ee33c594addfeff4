package mmdparser

import (
	"strings"

	"oss.terrastruct.com/mmd/mmdmodel"
)

// splitStatements splits a line on semicolons that sit outside quotes and
// brackets.
func splitStatements(s string) []string {
	var out []string
	depth := 0
	quoted := false
	start := 0
	for i, r := range s {
		switch r {
		case '"':
			quoted = !quoted
		case '[', '(', '{':
			if !quoted {
				depth++
			}
		case ']', ')', '}':
			if !quoted && depth > 0 {
				depth--
			}
		case ';':
			if !quoted && depth == 0 {
				if stmt := strings.TrimSpace(s[start:i]); stmt != "" {
					out = append(out, stmt)
				}
				start = i + 1
			}
		}
	}
	if stmt := strings.TrimSpace(s[start:]); stmt != "" {
		out = append(out, stmt)
	}
	return out
}

// parseClassDef reads "classDef a,b fill:#fff,stroke:#000" into g.
func parseClassDef(g *mmdmodel.Graph, rest string) bool {
	names, styles, ok := splitOnce(rest, " ")
	if !ok || names == "" || styles == "" {
		return false
	}
	props := make(map[string]string)
	for _, kv := range strings.Split(styles, ",") {
		k, v, ok := splitOnce(kv, ":")
		if !ok || k == "" {
			continue
		}
		props[k] = v
	}
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if g.ClassDefs[name] == nil {
			g.ClassDefs[name] = make(map[string]string)
		}
		for k, v := range props {
			g.ClassDefs[name][k] = v
		}
	}
	return true
}

// parseClassAssignment reads "class a,b name".
func parseClassAssignment(g *mmdmodel.Graph, rest string) bool {
	ids, name, ok := splitOnce(rest, " ")
	if !ok || ids == "" || name == "" {
		return false
	}
	for _, id := range strings.Split(ids, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		addClass(g.AddNode(id, "", ""), name)
	}
	return true
}

func addClass(n *mmdmodel.Node, name string) {
	for _, c := range n.Classes {
		if c == name {
			return
		}
	}
	n.Classes = append(n.Classes, name)
}

// cutClassSuffix splits "id:::name" into its parts.
func cutClassSuffix(s string) (string, string) {
	before, after, ok := strings.Cut(s, ":::")
	if !ok {
		return s, ""
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}

func keyword(s string) (string, string) {
	fields := strings.SplitN(s, " ", 2)
	if len(fields) == 1 {
		return fields[0], ""
	}
	return fields[0], strings.TrimSpace(fields[1])
}
