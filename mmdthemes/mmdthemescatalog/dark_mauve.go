package mmdthemescatalog

import "oss.terrastruct.com/mmd/mmdthemes"

var DarkMauve = mmdthemes.Theme{
	ID:   200,
	Name: "Dark Mauve",
	Colors: mmdthemes.ColorPalette{
		Neutrals: mmdthemes.DarkNeutral,

		B1: "#CBA6f7",
		B2: "#CBA6f7",
		B3: "#6C7086",
		B4: "#585B70",
		B5: "#45475A",
		B6: "#313244",

		AA2: "#f38BA8",
		AA4: "#45475A",
		AA5: "#313244",

		AB4: "#45475A",
		AB5: "#313244",
	},
}
