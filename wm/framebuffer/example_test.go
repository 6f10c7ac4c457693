package framebuffer_test

import (
	"log"

	"github.com/srlehn/fbsplash/wm/framebuffer"
)

func Example() {
	fb, err := framebuffer.Open(`/dev/fb0`, `/dev/tty`)
	if err != nil {
		log.Fatalln(err)
	}
	defer fb.Close()
	if err := fb.SetMode(framebuffer.ModeGraphics); err != nil {
		log.Fatalln(err)
	}
	frame := make([]byte, fb.Geometry().Size())
	for i := 2; i < len(frame); i += fb.Geometry().BytesPerPixel {
		frame[i] = 0xff // red
	}
	if err := fb.Present(frame); err != nil {
		log.Println(err)
	}
}
