package export

import (
	"path/filepath"
	"strings"
)

const (
	PaletteFileName = "palette.png"
	GIFFileName     = "output.gif"

	PassPalette = "palette"
	PassEncode  = "encode"
)

// Pass tek bir FFmpeg çağrısıdır.
type Pass struct {
	Name   string
	Args   []string
	Output string
}

// CommandLine geçişi log ve önizleme için kabuk biçiminde gösterir.
func (p Pass) CommandLine(binary string) string {
	if binary == "" {
		binary = "ffmpeg"
	}
	var b strings.Builder
	b.WriteString(filepath.Base(binary))
	for _, arg := range p.Args {
		b.WriteString(" ")
		if strings.HasPrefix(arg, "-") && !strings.ContainsAny(arg, " ") {
			b.WriteString(arg)
			continue
		}
		if isPlainNumber(arg) {
			b.WriteString(arg)
			continue
		}
		b.WriteString(`"` + arg + `"`)
	}
	return b.String()
}

// Plan iki geçişli palet iş akışını tutar.
type Plan struct {
	Input        string
	OutputFolder string
	Params       Parameters
	Palette      Pass
	Encode       Pass
}

// PalettePath ara palet dosyasının yoludur.
func (p Plan) PalettePath() string { return p.Palette.Output }

// GIFPath nihai GIF dosyasının yoludur.
func (p Plan) GIFPath() string { return p.Encode.Output }

// Passes geçişleri çalıştırma sırasıyla döner.
func (p Plan) Passes() []Pass { return []Pass{p.Palette, p.Encode} }

// NewPlan palet üretimi ve palet kullanımı komutlarını oluşturur.
// Her iki geçiş de hedef dosyanın üzerine sormadan yazar (-y).
func NewPlan(params Parameters, input, outputFolder string) Plan {
	palettePath := filepath.Join(outputFolder, PaletteFileName)
	gifPath := filepath.Join(outputFolder, GIFFileName)
	filter := params.Filter()

	trimArgs := []string{"-y", "-ss", params.StartArg(), "-t", params.DurationArg(), "-i", input}

	paletteArgs := append(append([]string{}, trimArgs...),
		"-vf", filter+",palettegen",
		palettePath,
	)
	encodeArgs := append(append([]string{}, trimArgs...),
		"-i", palettePath,
		"-lavfi", filter+" [x]; [x][1:v] paletteuse",
		gifPath,
	)

	return Plan{
		Input:        input,
		OutputFolder: outputFolder,
		Params:       params,
		Palette:      Pass{Name: PassPalette, Args: paletteArgs, Output: palettePath},
		Encode:       Pass{Name: PassEncode, Args: encodeArgs, Output: gifPath},
	}
}

func isPlainNumber(s string) bool {
	if s == "" {
		return false
	}
	dot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return true
}
