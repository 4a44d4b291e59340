package main

import "github.com/veandco/go-sdl2/sdl"

// keyBits maps an SDL keysym to the Oric's physical key matrix position
// (row<<3 | column), following the host-key layout the original firmware
// wired up.
var keyBits = map[sdl.Keycode]uint8{
	sdl.K_7:         0,
	'n':             1,
	sdl.K_5:         2,
	'v':             3,
	sdl.K_1:         5,
	'x':             6,
	sdl.K_3:         7,
	'j':             8,
	't':             9,
	'r':             10,
	'f':             11,
	sdl.K_ESCAPE:    13,
	'q':             14,
	'd':             15,
	'm':             16,
	sdl.K_6:         17,
	'b':             18,
	sdl.K_4:         19,
	sdl.K_LCTRL:     20,
	'z':             21,
	sdl.K_2:         22,
	'c':             23,
	'k':             24,
	sdl.K_9:         25,
	';':             26,
	'-':             27,
	'\\':            30,
	'\'':            31,
	sdl.K_SPACE:     32,
	',':             33,
	'.':             34,
	sdl.K_UP:        35,
	sdl.K_LSHIFT:    36,
	sdl.K_LEFT:      37,
	sdl.K_DOWN:      38,
	sdl.K_RIGHT:     39,
	'u':             40,
	'i':             41,
	'o':             42,
	'p':             43,
	sdl.K_LALT:      44,
	sdl.K_BACKSPACE: 45,
	']':             46,
	'[':             47,
	'y':             48,
	'h':             49,
	'g':             50,
	'e':             51,
	'a':             53,
	's':             54,
	'w':             55,
	sdl.K_8:         56,
	'l':             57,
	sdl.K_0:         58,
	'/':             59,
	sdl.K_RSHIFT:    60,
	sdl.K_RETURN:    61,
	sdl.K_EQUALS:    63,
}
