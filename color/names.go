package color

// named holds the 149 CSS color names, values already normalized to
// sRGB components.
var named = map[string]RGBA{
	"transparent": {},
	"black":                 rgb(0x00, 0x00, 0x00),
	"silver":                rgb(0xc0, 0xc0, 0xc0),
	"gray":                  rgb(0x80, 0x80, 0x80),
	"white":                 rgb(0xff, 0xff, 0xff),
	"maroon":                rgb(0x80, 0x00, 0x00),
	"red":                   rgb(0xff, 0x00, 0x00),
	"purple":                rgb(0x80, 0x00, 0x80),
	"fuchsia":               rgb(0xff, 0x00, 0xff),
	"green":                 rgb(0x00, 0x80, 0x00),
	"lime":                  rgb(0x00, 0xff, 0x00),
	"olive":                 rgb(0x80, 0x80, 0x00),
	"yellow":                rgb(0xff, 0xff, 0x00),
	"navy":                  rgb(0x00, 0x00, 0x80),
	"blue":                  rgb(0x00, 0x00, 0xff),
	"teal":                  rgb(0x00, 0x80, 0x80),
	"aqua":                  rgb(0x00, 0xff, 0xff),
	"aliceblue":             rgb(0xf0, 0xf8, 0xff),
	"antiquewhite":          rgb(0xfa, 0xeb, 0xd7),
	"aquamarine":            rgb(0x7f, 0xff, 0xd4),
	"azure":                 rgb(0xf0, 0xff, 0xff),
	"beige":                 rgb(0xf5, 0xf5, 0xdc),
	"bisque":                rgb(0xff, 0xe4, 0xc4),
	"blanchedalmond":        rgb(0xff, 0xeb, 0xcd),
	"blueviolet":            rgb(0x8a, 0x2b, 0xe2),
	"brown":                 rgb(0xa5, 0x2a, 0x2a),
	"burlywood":             rgb(0xde, 0xb8, 0x87),
	"cadetblue":             rgb(0x5f, 0x9e, 0xa0),
	"chartreuse":            rgb(0x7f, 0xff, 0x00),
	"chocolate":             rgb(0xd2, 0x69, 0x1e),
	"coral":                 rgb(0xff, 0x7f, 0x50),
	"cornflowerblue":        rgb(0x64, 0x95, 0xed),
	"cornsilk":              rgb(0xff, 0xf8, 0xdc),
	"crimson":               rgb(0xdc, 0x14, 0x3c),
	"cyan":                  rgb(0x00, 0xff, 0xff),
	"darkblue":              rgb(0x00, 0x00, 0x8b),
	"darkcyan":              rgb(0x00, 0x8b, 0x8b),
	"darkgoldenrod":         rgb(0xb8, 0x86, 0x0b),
	"darkgray":              rgb(0xa9, 0xa9, 0xa9),
	"darkgreen":             rgb(0x00, 0x64, 0x00),
	"darkgrey":              rgb(0xa9, 0xa9, 0xa9),
	"darkkhaki":             rgb(0xbd, 0xb7, 0x6b),
	"darkmagenta":           rgb(0x8b, 0x00, 0x8b),
	"darkolivegreen":        rgb(0x55, 0x6b, 0x2f),
	"darkorange":            rgb(0xff, 0x8c, 0x00),
	"darkorchid":            rgb(0x99, 0x32, 0xcc),
	"darkred":               rgb(0x8b, 0x00, 0x00),
	"darksalmon":            rgb(0xe9, 0x96, 0x7a),
	"darkseagreen":          rgb(0x8f, 0xbc, 0x8f),
	"darkslateblue":         rgb(0x48, 0x3d, 0x8b),
	"darkslategray":         rgb(0x2f, 0x4f, 0x4f),
	"darkslategrey":         rgb(0x2f, 0x4f, 0x4f),
	"darkturquoise":         rgb(0x00, 0xce, 0xd1),
	"darkviolet":            rgb(0x94, 0x00, 0xd3),
	"deeppink":              rgb(0xff, 0x14, 0x93),
	"deepskyblue":           rgb(0x00, 0xbf, 0xff),
	"dimgray":               rgb(0x69, 0x69, 0x69),
	"dimgrey":               rgb(0x69, 0x69, 0x69),
	"dodgerblue":            rgb(0x1e, 0x90, 0xff),
	"firebrick":             rgb(0xb2, 0x22, 0x22),
	"floralwhite":           rgb(0xff, 0xfa, 0xf0),
	"forestgreen":           rgb(0x22, 0x8b, 0x22),
	"gainsboro":             rgb(0xdc, 0xdc, 0xdc),
	"ghostwhite":            rgb(0xf8, 0xf8, 0xff),
	"gold":                  rgb(0xff, 0xd7, 0x00),
	"goldenrod":             rgb(0xda, 0xa5, 0x20),
	"greenyellow":           rgb(0xad, 0xff, 0x2f),
	"grey":                  rgb(0x80, 0x80, 0x80),
	"honeydew":              rgb(0xf0, 0xff, 0xf0),
	"hotpink":               rgb(0xff, 0x69, 0xb4),
	"indianred":             rgb(0xcd, 0x5c, 0x5c),
	"indigo":                rgb(0x4b, 0x00, 0x82),
	"ivory":                 rgb(0xff, 0xff, 0xf0),
	"khaki":                 rgb(0xf0, 0xe6, 0x8c),
	"lavender":              rgb(0xe6, 0xe6, 0xfa),
	"lavenderblush":         rgb(0xff, 0xf0, 0xf5),
	"lawngreen":             rgb(0x7c, 0xfc, 0x00),
	"lemonchiffon":          rgb(0xff, 0xfa, 0xcd),
	"lightblue":             rgb(0xad, 0xd8, 0xe6),
	"lightcoral":            rgb(0xf0, 0x80, 0x80),
	"lightcyan":             rgb(0xe0, 0xff, 0xff),
	"lightgoldenrodyellow":  rgb(0xfa, 0xfa, 0xd2),
	"lightgray":             rgb(0xd3, 0xd3, 0xd3),
	"lightgreen":            rgb(0x90, 0xee, 0x90),
	"lightgrey":             rgb(0xd3, 0xd3, 0xd3),
	"lightpink":             rgb(0xff, 0xb6, 0xc1),
	"lightsalmon":           rgb(0xff, 0xa0, 0x7a),
	"lightseagreen":         rgb(0x20, 0xb2, 0xaa),
	"lightskyblue":          rgb(0x87, 0xce, 0xfa),
	"lightslategray":        rgb(0x77, 0x88, 0x99),
	"lightslategrey":        rgb(0x77, 0x88, 0x99),
	"lightsteelblue":        rgb(0xb0, 0xc4, 0xde),
	"lightyellow":           rgb(0xff, 0xff, 0xe0),
	"limegreen":             rgb(0x32, 0xcd, 0x32),
	"linen":                 rgb(0xfa, 0xf0, 0xe6),
	"magenta":               rgb(0xff, 0x00, 0xff),
	"mediumaquamarine":      rgb(0x66, 0xcd, 0xaa),
	"mediumblue":            rgb(0x00, 0x00, 0xcd),
	"mediumorchid":          rgb(0xba, 0x55, 0xd3),
	"mediumpurple":          rgb(0x93, 0x70, 0xdb),
	"mediumseagreen":        rgb(0x3c, 0xb3, 0x71),
	"mediumslateblue":       rgb(0x7b, 0x68, 0xee),
	"mediumspringgreen":     rgb(0x00, 0xfa, 0x9a),
	"mediumturquoise":       rgb(0x48, 0xd1, 0xcc),
	"mediumvioletred":       rgb(0xc7, 0x15, 0x85),
	"midnightblue":          rgb(0x19, 0x19, 0x70),
	"mintcream":             rgb(0xf5, 0xff, 0xfa),
	"mistyrose":             rgb(0xff, 0xe4, 0xe1),
	"moccasin":              rgb(0xff, 0xe4, 0xb5),
	"navajowhite":           rgb(0xff, 0xde, 0xad),
	"oldlace":               rgb(0xfd, 0xf5, 0xe6),
	"olivedrab":             rgb(0x6b, 0x8e, 0x23),
	"orange":                rgb(0xff, 0xa5, 0x00),
	"orangered":             rgb(0xff, 0x45, 0x00),
	"orchid":                rgb(0xda, 0x70, 0xd6),
	"palegoldenrod":         rgb(0xee, 0xe8, 0xaa),
	"palegreen":             rgb(0x98, 0xfb, 0x98),
	"paleturquoise":         rgb(0xaf, 0xee, 0xee),
	"palevioletred":         rgb(0xdb, 0x70, 0x93),
	"papayawhip":            rgb(0xff, 0xef, 0xd5),
	"peachpuff":             rgb(0xff, 0xda, 0xb9),
	"peru":                  rgb(0xcd, 0x85, 0x3f),
	"pink":                  rgb(0xff, 0xc0, 0xcb),
	"plum":                  rgb(0xdd, 0xa0, 0xdd),
	"powderblue":            rgb(0xb0, 0xe0, 0xe6),
	"rebeccapurple":         rgb(0x66, 0x33, 0x99),
	"rosybrown":             rgb(0xbc, 0x8f, 0x8f),
	"royalblue":             rgb(0x41, 0x69, 0xe1),
	"saddlebrown":           rgb(0x8b, 0x45, 0x13),
	"salmon":                rgb(0xfa, 0x80, 0x72),
	"sandybrown":            rgb(0xf4, 0xa4, 0x60),
	"seagreen":              rgb(0x2e, 0x8b, 0x57),
	"seashell":              rgb(0xff, 0xf5, 0xee),
	"sienna":                rgb(0xa0, 0x52, 0x2d),
	"skyblue":               rgb(0x87, 0xce, 0xeb),
	"slateblue":             rgb(0x6a, 0x5a, 0xcd),
	"slategray":             rgb(0x70, 0x80, 0x90),
	"slategrey":             rgb(0x70, 0x80, 0x90),
	"snow":                  rgb(0xff, 0xfa, 0xfa),
	"springgreen":           rgb(0x00, 0xff, 0x7f),
	"steelblue":             rgb(0x46, 0x82, 0xb4),
	"tan":                   rgb(0xd2, 0xb4, 0x8c),
	"thistle":               rgb(0xd8, 0xbf, 0xd8),
	"tomato":                rgb(0xff, 0x63, 0x47),
	"turquoise":             rgb(0x40, 0xe0, 0xd0),
	"violet":                rgb(0xee, 0x82, 0xee),
	"wheat":                 rgb(0xf5, 0xde, 0xb3),
	"whitesmoke":            rgb(0xf5, 0xf5, 0xf5),
	"yellowgreen":           rgb(0x9a, 0xcd, 0x32),
}

func rgb(r, g, b uint8) RGBA {
	return RGBA{
		R: float64(r) / 0xff,
		G: float64(g) / 0xff,
		B: float64(b) / 0xff,
		A: 1,
	}
}
