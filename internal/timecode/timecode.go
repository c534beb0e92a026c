package timecode

import (
	"fmt"
	"strconv"
	"strings"
)

// DayMs zaman alanının üst sınırıdır (24 saat, hariç).
const DayMs int64 = 24 * 60 * 60 * 1000

// TimeCode saat/dakika/saniye/milisaniye gösterimini tutar.
type TimeCode struct {
	Hours        int
	Minutes      int
	Seconds      int
	Milliseconds int
}

// FromMilliseconds milisaniye ofsetini saat/dakika/saniye/ms parçalarına ayırır.
func FromMilliseconds(ms int64) TimeCode {
	s := ms / 1000
	rem := ms % 1000
	m := s / 60
	s = s % 60
	h := m / 60
	m = m % 60
	return TimeCode{
		Hours:        int(h),
		Minutes:      int(m),
		Seconds:      int(s),
		Milliseconds: int(rem),
	}
}

// ToMilliseconds parçalardan toplam milisaniyeyi hesaplar.
func ToMilliseconds(h, m, s, ms int) int64 {
	return (int64(h)*3600+int64(m)*60+int64(s))*1000 + int64(ms)
}

// Total toplam milisaniyeyi döner.
func (tc TimeCode) Total() int64 {
	return ToMilliseconds(tc.Hours, tc.Minutes, tc.Seconds, tc.Milliseconds)
}

// TotalSeconds toplam süreyi saniye olarak döner.
func (tc TimeCode) TotalSeconds() float64 {
	return float64(tc.Total()) / 1000.0
}

// String zaman alanı formatını (HH:mm:ss.zzz) üretir.
func (tc TimeCode) String() string {
	return fmt.Sprintf("%02d:%02d:%02d.%03d", tc.Hours, tc.Minutes, tc.Seconds, tc.Milliseconds)
}

// Parse HH:mm:ss.zzz, HH:mm:ss, mm:ss(.zzz) veya düz saniye değerini okur.
// Ondalık ayırıcı olarak virgül de kabul edilir.
func Parse(raw string) (TimeCode, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if normalized == "" {
		return TimeCode{}, fmt.Errorf("boş zaman değeri")
	}

	whole, frac, hasFrac := strings.Cut(normalized, ".")
	ms := 0
	if hasFrac {
		if frac == "" || len(frac) > 3 || !isDigits(frac) {
			return TimeCode{}, fmt.Errorf("milisaniye kısmı hatalı: %q", raw)
		}
		for len(frac) < 3 {
			frac += "0"
		}
		ms, _ = strconv.Atoi(frac)
	}

	parts := strings.Split(whole, ":")
	if len(parts) > 3 {
		return TimeCode{}, fmt.Errorf("zaman formatı hatalı: %q", raw)
	}
	values := make([]int, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || !isDigits(p) {
			return TimeCode{}, fmt.Errorf("zaman formatı hatalı: %q", raw)
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return TimeCode{}, fmt.Errorf("zaman formatı hatalı: %q", raw)
		}
		values[i] = v
	}

	var h, m, s int
	switch len(values) {
	case 1:
		total := ToMilliseconds(0, 0, values[0], ms)
		if total >= DayMs {
			return TimeCode{}, fmt.Errorf("zaman 24 saatten küçük olmalı")
		}
		return FromMilliseconds(total), nil
	case 2:
		m, s = values[0], values[1]
		if s >= 60 {
			return TimeCode{}, fmt.Errorf("saniye 60'tan küçük olmalı")
		}
		if m >= 60 {
			h, m = m/60, m%60
		}
	case 3:
		h, m, s = values[0], values[1], values[2]
		if m >= 60 || s >= 60 {
			return TimeCode{}, fmt.Errorf("dakika/saniye 60'tan küçük olmalı")
		}
	}

	tc := TimeCode{Hours: h, Minutes: m, Seconds: s, Milliseconds: ms}
	if tc.Total() >= DayMs {
		return TimeCode{}, fmt.Errorf("zaman 24 saatten küçük olmalı")
	}
	return tc, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
