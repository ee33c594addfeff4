package mmdthemescatalog

import (
	"fmt"
	"strings"

	"oss.terrastruct.com/mmd/mmdthemes"
)

var Catalog = []mmdthemes.Theme{
	NeutralDefault,
	Terminal,
	DarkMauve,
}

func Find(id int64) mmdthemes.Theme {
	for _, theme := range Catalog {
		if theme.ID == id {
			return theme
		}
	}

	return mmdthemes.Theme{}
}

// FindName looks a theme up by name, ignoring case and surrounding space.
func FindName(name string) (mmdthemes.Theme, bool) {
	name = strings.TrimSpace(name)
	for _, theme := range Catalog {
		if strings.EqualFold(theme.Name, name) {
			return theme, true
		}
	}
	return mmdthemes.Theme{}, false
}

func CLIString() string {
	var s strings.Builder
	for _, t := range Catalog {
		s.WriteString(fmt.Sprintf("- %s: %d\n", t.Name, t.ID))
	}
	return s.String()
}
