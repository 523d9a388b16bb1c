package vm

// KeyCount is the number of keys on the hex keypad.
const KeyCount = 16

type keyboard struct {
	keys [KeyCount]bool
}

func newKeyboard() *keyboard {
	return &keyboard{}
}

func (k *keyboard) Reset() {
	k.keys = [KeyCount]bool{}
}

func (k *keyboard) Set(key uint8, pressed bool) {
	k.keys[key&0x0F] = pressed
}

func (k *keyboard) Pressed(key uint8) bool {
	return k.keys[key&0x0F]
}

// FirstPressed returns the lowest pressed key.
func (k *keyboard) FirstPressed() (uint8, bool) {
	for i, pressed := range k.keys {
		if pressed {
			return uint8(i), true
		}
	}
	return 0, false
}
