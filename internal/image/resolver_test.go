package image

import "testing"

type stubCDN struct {
	ready bool
	urls  map[string]string
	calls int
}

func (s *stubCDN) Ready() bool { return s.ready }

func (s *stubCDN) ItemURL(name string) (string, bool) {
	s.calls++
	u, ok := s.urls[name]
	return u, ok
}

const listingHTML = `<div class="market_listing_row">
	<img id="listing_1_image" src="https://community.cloudflare.steamstatic.com/economy/image/abc/62fx62f/image.jpg" class="market_listing_item_img" alt="">
</div>`

func TestCanUseFastPath(t *testing.T) {
	ready := &stubCDN{ready: true}
	notReady := &stubCDN{ready: false}

	tests := []struct {
		name  string
		cdn   CDN
		appID int
		want  bool
	}{
		{"ready cdn for cs", ready, 730, true},
		{"ready cdn for other app", ready, 570, false},
		{"cdn not ready", notReady, 730, false},
		{"no cdn", nil, 730, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanUseFastPath(tt.cdn, tt.appID); got != tt.want {
				t.Errorf("CanUseFastPath() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolve_CDNSkipsParser(t *testing.T) {
	cdn := &stubCDN{ready: true, urls: map[string]string{
		"AK-47 | Redline (Field-Tested)": "https://cdn.example/ak47.png",
	}}

	parsed := 0
	r := NewResolver(WithParser(func(html string) (string, bool) {
		parsed++
		return ParseListingImage(html)
	}))

	got := r.Resolve(cdn, "AK-47 | Redline (Field-Tested)", 730, listingHTML, 128)
	if got != "https://cdn.example/ak47.png" {
		t.Errorf("Resolve() = %q, want %q", got, "https://cdn.example/ak47.png")
	}
	if parsed != 0 {
		t.Errorf("HTML parser invoked %d times, want 0", parsed)
	}
}

func TestResolve_ScrapeAndResize(t *testing.T) {
	r := NewResolver()

	got := r.Resolve(nil, "Mann Co. Supply Crate Key", 440, listingHTML, 128)
	want := "https://community.cloudflare.steamstatic.com/economy/image/abc/128fx128f/image.jpg"
	if got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolve_NonCDNAppIgnoresReadyCDN(t *testing.T) {
	cdn := &stubCDN{ready: true, urls: map[string]string{"Fractal Horns of Inner Abysm": "https://cdn.example/dota.png"}}
	r := NewResolver()

	got := r.Resolve(cdn, "Fractal Horns of Inner Abysm", 570, listingHTML, 360)
	if got == "https://cdn.example/dota.png" {
		t.Error("Resolve() used the CDN for a non-CDN app")
	}
	if cdn.calls != 0 {
		t.Errorf("CDN consulted %d times, want 0", cdn.calls)
	}
}

func TestResolve_CDNMissFallsBack(t *testing.T) {
	cdn := &stubCDN{ready: true, urls: map[string]string{}}
	r := NewResolver()

	got := r.Resolve(cdn, "Unknown Item", 730, listingHTML, 256)
	want := "https://community.cloudflare.steamstatic.com/economy/image/abc/256fx256f/image.jpg"
	if got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolve_NoImage(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		name string
		html string
	}{
		{"empty", ""},
		{"no listing image", `<div><img class="other" src="https://x/62fx62f/a.jpg"></div>`},
		{"image without src", `<img class="market_listing_item_img">`},
		{"image with empty src", `<img class="market_listing_item_img" src="">`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(nil, "x", 440, tt.html, 128); got != NoImage {
				t.Errorf("Resolve() = %q, want %q", got, NoImage)
			}
		})
	}
}

func TestResize(t *testing.T) {
	tests := []struct {
		name string
		url  string
		size int
		want string
	}{
		{"thumbnail", "https://x/62fx62f/image.jpg", 128, "https://x/128fx128f/image.jpg"},
		{"not resizable", "https://x/image.jpg", 128, "https://x/image.jpg"},
		{"first token only", "https://x/62fx62f/62fx62f", 64, "https://x/64fx64f/62fx62f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resize(tt.url, tt.size); got != tt.want {
				t.Errorf("Resize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseListingImage_FirstMatch(t *testing.T) {
	html := `<img class="market_listing_item_img" src="https://x/first.png">
<img class="market_listing_item_img" src="https://x/second.png">`

	src, ok := ParseListingImage(html)
	if !ok || src != "https://x/first.png" {
		t.Errorf("ParseListingImage() = (%q, %v), want (%q, true)", src, ok, "https://x/first.png")
	}
}
