// main.go - command-line harness for numero: loads a flash image,
// runs the Z80 core for a fixed instruction budget, and optionally
// dumps the LCD frame as a PNG or an ASCII preview sized to the
// terminal.

package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/term"

	"github.com/gouchi/numero"
)

func main() {
	var (
		romPath = flag.String("rom", "", "path to a flash image to map at page 0")
		steps   = flag.Uint64("steps", 1_000_000, "number of instructions to execute")
		pngOut  = flag.String("png", "", "write the final LCD frame to this PNG path, upscaled 4x")
		ascii   = flag.Bool("ascii", false, "print an ASCII preview of the final LCD frame, sized to the terminal")
		model   = flag.String("model", "83+", "calculator model: 82, 83+, 84+, or generic")
	)
	flag.Parse()

	bus := numero.NewSystemBus()
	flash := make([]byte, numero.PageSize)
	if *romPath != "" {
		data, err := os.ReadFile(*romPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "numerorun: %v\n", err)
			os.Exit(1)
		}
		n := copy(flash, data)
		_ = n
	}
	bus.MapPage(0, numero.PageFlash, flash)
	ram := make([]byte, numero.PageSize)
	bus.MapPage(1, numero.PageRAM, ram)

	ports := numero.NewDeviceTable()
	lcd := numero.NewLCD(parseModel(*model))

	cpu := numero.NewCPU(bus, ports)
	cmdPort, dataPort := lcd.Devices(cpu)
	ports.Register(0x10, cmdPort)
	ports.Register(0x11, dataPort)

	for i := uint64(0); i < *steps; i++ {
		cpu.Step()
	}

	if *pngOut != "" {
		if err := writePNG(*pngOut, lcd.Image()); err != nil {
			fmt.Fprintf(os.Stderr, "numerorun: %v\n", err)
			os.Exit(1)
		}
	}
	if *ascii {
		printASCII(lcd.Image())
	}
}

func parseModel(name string) numero.Model {
	switch name {
	case "82":
		return numero.Model82
	case "83+":
		return numero.Model83Plus
	case "84+":
		return numero.Model84Plus
	default:
		return numero.ModelGeneric
	}
}

// writePNG upscales the LCD's 128x64 intensity frame 4x with a
// nearest-neighbor draw and writes it as a grayscale PNG.
func writePNG(path string, frame []byte) error {
	src := image.NewGray(image.Rect(0, 0, numero.LCDWidth, numero.LCDHeight))
	for row := 0; row < numero.LCDHeight; row++ {
		for col := 0; col < numero.LCDWidth; col++ {
			src.SetGray(col, row, color.Gray{Y: frame[row*numero.LCDWidth+col]})
		}
	}

	const scale = 4
	dst := image.NewGray(image.Rect(0, 0, numero.LCDWidth*scale, numero.LCDHeight*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, dst)
}

// printASCII renders the frame as a ramp of shading characters, fit
// to the terminal's current width when one is detected.
func printASCII(frame []byte) {
	width := numero.LCDWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < width {
		width = w
	}
	ramp := " .:-=+*#%@"
	for row := 0; row < numero.LCDHeight; row++ {
		line := make([]byte, 0, width)
		for col := 0; col < width; col++ {
			srcCol := col * numero.LCDWidth / width
			v := frame[row*numero.LCDWidth+srcCol]
			idx := int(v) * (len(ramp) - 1) / 255
			line = append(line, ramp[idx])
		}
		fmt.Println(string(line))
	}
}
