package vm

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Frame is a copy of the display, row-major, index = x + y*DisplayWidth.
type Frame [DisplayWidth * DisplayHeight]bool

// Pixel reports whether the pixel at x, y is on. Coordinates outside the
// display are off.
func (f *Frame) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return f[x+y*DisplayWidth]
}

type screen struct {
	pixels  Frame
	version uint64
}

func newScreen() *screen {
	return &screen{}
}

func (s *screen) Reset() {
	s.pixels = Frame{}
	s.version++
}

// DrawSprite XORs the sprite rows onto the display with the top left corner
// at x, y. Pixels falling off the right or bottom edge are clipped.
// It reports whether any lit pixel was turned off.
func (s *screen) DrawSprite(x, y uint8, rows []uint8) (collision bool) {
	startX, startY := int(x)%DisplayWidth, int(y)%DisplayHeight
	for j, row := range rows {
		py := startY + j
		if py >= DisplayHeight {
			break
		}
		for i := range 8 {
			px := startX + i
			if px >= DisplayWidth {
				break
			}
			if row>>(7-i)&0x01 == 0 {
				continue
			}
			pixel := &s.pixels[px+py*DisplayWidth]
			collision = collision || *pixel
			*pixel = !*pixel
		}
	}
	s.version++
	return collision
}
