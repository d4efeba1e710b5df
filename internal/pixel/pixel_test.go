package pixel

import "testing"

func TestRGB_Grey(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		want uint8
	}{
		{"black", RGB{0, 0, 0}, 0},
		{"pure red", RGB{255, 0, 0}, 54},
		{"pure green", RGB{0, 255, 0}, 182},
		{"pure blue", RGB{0, 0, 255}, 18},
		{"orange", RGB{255, 128, 64}, 150},
		{"sky", RGB{100, 150, 200}, 142},
		{"dark", RGB{10, 20, 30}, 18},
		{"mid grey", RGB{128, 128, 128}, 128},
		{"paper grey", RGB{200, 200, 200}, 200},
		{"light grey 230 truncates", RGB{230, 230, 230}, 229},
		{"white truncates", RGB{255, 255, 255}, 254},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.c.Grey()
			if got.Y != tt.want {
				t.Errorf("%v.Grey() = %d, want %d", tt.c, got.Y, tt.want)
			}
		})
	}
}

func TestRGB_Equality(t *testing.T) {
	a := RGB{R: 1, G: 2, B: 3}
	b := RGB{R: 1, G: 2, B: 3}
	c := RGB{R: 1, G: 2, B: 4}

	if a != b {
		t.Error("identical colours should be equal")
	}
	if a == c {
		t.Error("colours differing in blue should not be equal")
	}
}

func TestRGB_String(t *testing.T) {
	if got := (RGB{255, 128, 64}).String(); got != "#FF8040" {
		t.Errorf("String: got %s, want #FF8040", got)
	}
}

func TestGrey_Ink(t *testing.T) {
	tests := []struct {
		g    Grey
		want uint8
	}{
		{White, 0},
		{Black, 255},
		{Grey{Y: 200}, 55},
	}

	for _, tt := range tests {
		if got := tt.g.Ink(); got != tt.want {
			t.Errorf("Grey{%d}.Ink() = %d, want %d", tt.g.Y, got, tt.want)
		}
	}
}

func TestGrey_IsWhite(t *testing.T) {
	if !White.IsWhite() {
		t.Error("White should be white")
	}
	if (Grey{Y: 254}).IsWhite() {
		t.Error("254 should not be white")
	}
}

func TestGrey_RGB(t *testing.T) {
	got := Grey{Y: 77}.RGB()
	if got != (RGB{77, 77, 77}) {
		t.Errorf("RGB: got %v, want neutral 77", got)
	}
}
