package export

import (
	"fmt"
	"strconv"
)

// Window export edilecek aralığı milisaniye olarak sağlar.
type Window interface {
	Start() int64
	End() int64
}

// Parameters tek bir export için türetilmiş FFmpeg parametreleridir.
type Parameters struct {
	StartSeconds       float64
	DurationSeconds    float64
	FPS                int
	VerticalResolution int
}

type resolutionOption struct {
	Label  string
	Height int
}

var resolutionCatalog = []resolutionOption{
	{Label: "360p", Height: 360},
	{Label: "SD (480p)", Height: 480},
	{Label: "HD (720p)", Height: 720},
	{Label: "Full HD (1080p)", Height: 1080},
}

const (
	MinFPS     = 1
	MaxFPS     = 30
	DefaultFPS = 10
)

// ResolutionLabels seçicide gösterilecek etiketleri sırasıyla döner.
func ResolutionLabels() []string {
	labels := make([]string, len(resolutionCatalog))
	for i, opt := range resolutionCatalog {
		labels[i] = opt.Label
	}
	return labels
}

// ResolveResolution etiketi dikey çözünürlüğe çevirir.
func ResolveResolution(label string) (int, error) {
	for _, opt := range resolutionCatalog {
		if opt.Label == label {
			return opt.Height, nil
		}
	}
	return 0, &UnknownResolutionError{Label: label}
}

// Build trim penceresi ve seçeneklerden export parametrelerini türetir.
// Aralık kontrolü her şeyden önce yapılır; fps burada tekrar doğrulanmaz.
func Build(w Window, resolutionLabel string, fps int) (Parameters, error) {
	start, end := w.Start(), w.End()
	if end <= start {
		return Parameters{}, &InvalidRangeError{StartMs: start, EndMs: end}
	}

	height, err := ResolveResolution(resolutionLabel)
	if err != nil {
		return Parameters{}, err
	}

	return Parameters{
		StartSeconds:       float64(start) / 1000.0,
		DurationSeconds:    float64(end-start) / 1000.0,
		FPS:                fps,
		VerticalResolution: height,
	}, nil
}

// Filter fps örnekleme ve Lanczos ölçekleme zincirini döner.
func (p Parameters) Filter() string {
	return fmt.Sprintf("fps=%d,scale=-1:%d:flags=lanczos", p.FPS, p.VerticalResolution)
}

// StartArg başlangıcı iki ondalık basamakla biçimlendirir.
func (p Parameters) StartArg() string {
	return strconv.FormatFloat(p.StartSeconds, 'f', 2, 64)
}

// DurationArg süreyi iki ondalık basamakla biçimlendirir.
func (p Parameters) DurationArg() string {
	return strconv.FormatFloat(p.DurationSeconds, 'f', 2, 64)
}
