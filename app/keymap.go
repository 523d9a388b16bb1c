package app

const escapeRawcode = 27

// keyMap maps host rawcodes onto the hex keypad in the usual layout:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var keyMap = map[uint16]uint8{
	'1': 0x1,
	'2': 0x2,
	'3': 0x3,
	'4': 0xC,
	81:  0x4, // q
	87:  0x5, // w
	69:  0x6, // e
	82:  0xD, // r
	65:  0x7, // a
	83:  0x8, // s
	68:  0x9, // d
	70:  0xE, // f
	90:  0xA, // z
	88:  0x0, // x
	67:  0xB, // c
	86:  0xF, // v
}

func keypadKey(rawcode uint16) (uint8, bool) {
	key, ok := keyMap[rawcode]
	return key, ok
}
