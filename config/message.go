package config

import "image/color"

// MessageConfig contains mission log display configuration
type MessageConfig struct {
	DisplayDuration int        // Frames to display a log after triggering
	FadeFrames      int        // Frames spent fading in
	BoxPadding      float64    // Padding inside message box
	BoxColor        color.RGBA // Semi-transparent background color
	TextColor       color.RGBA // Text color
	BottomMargin    float64    // Distance from bottom of screen

	// Input labels substituted for {placeholders} in log text
	KeyboardLabels map[string]string
	GamepadLabels  map[string]string
}

var Message = MessageConfig{
	DisplayDuration: 240, // 4 seconds at 60fps
	FadeFrames:      20,
	BoxPadding:      4.0,
	BoxColor:        color.RGBA{R: 0, G: 0, B: 0, A: 200},
	TextColor:       color.RGBA{R: 255, G: 255, B: 255, A: 255},
	BottomMargin:    8.0,

	KeyboardLabels: map[string]string{
		"jump": "X", "dash": "Z", "move": "Arrow Keys",
	},
	GamepadLabels: map[string]string{
		"jump": "A", "dash": "X", "move": "Left Stick",
	},
}
