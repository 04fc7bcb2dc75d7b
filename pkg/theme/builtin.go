package theme

// thLightTheme is the daylight palette.
func thLightTheme() Theme {
	return Theme{
		Name:       "light",
		Background: "#f5f5f4",
		Foreground: "#1c1917",
		Dim:        "#78716c",
		Accent:     "#7C3AED",

		DisplayBG:    "#e7e5e4",
		DisplayFG:    "#1c1917",
		DisplayError: "#dc2626",

		DigitKey:    "#ffffff",
		OperatorKey: "#ddd6fe",
		ActionKey:   "#fed7aa",
		ToggleKey:   "#e7e5e4",
		KeyText:     "#1c1917",
		KeyBorder:   "#a8a29e",

		HelpKey:  "#7C3AED",
		HelpDesc: "#78716c",
	}
}

// thDarkTheme is the night palette with the purple accent.
func thDarkTheme() Theme {
	return Theme{
		Name:       "dark",
		Background: "#1e1e1e",
		Foreground: "#d4d4d4",
		Dim:        "#6b6b6b",
		Accent:     "#7C3AED",

		DisplayBG:    "#2a2a2a",
		DisplayFG:    "#f5f5f5",
		DisplayError: "#e06c75",

		DigitKey:    "#3e3e3e",
		OperatorKey: "#5b21b6",
		ActionKey:   "#9a3412",
		ToggleKey:   "#2a2a2a",
		KeyText:     "#f5f5f5",
		KeyBorder:   "#3e3e3e",

		HelpKey:  "#7C3AED",
		HelpDesc: "#6b6b6b",
	}
}
