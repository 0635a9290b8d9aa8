package version

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want DatasetVersion
		ok   bool
	}{
		{"2024.1", DatasetVersion{2024, 1}, true},
		{"2023.12", DatasetVersion{2023, 12}, true},
		{"2024", DatasetVersion{}, false},
		{"2024.", DatasetVersion{}, false},
		{".1", DatasetVersion{}, false},
		{"2024.1.0", DatasetVersion{}, false},
		{"v2024.1", DatasetVersion{}, false},
		{"", DatasetVersion{}, false},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.ok != (err == nil) {
			t.Fatalf("Parse(%q) err = %v", tt.in, err)
		}
		if tt.ok && got != tt.want {
			t.Fatalf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2024.1", "2024.1", 0},
		{"2023.2", "2024.1", -1},
		{"2024.2", "2024.1", 1},
		{"2024.1", "2024.10", -1},
	}
	for _, tt := range tests {
		a, _ := Parse(tt.a)
		b, _ := Parse(tt.b)
		if got := a.Compare(b); got != tt.want {
			t.Fatalf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSupported(t *testing.T) {
	if !Supported(Current) {
		t.Fatal("current version not supported")
	}
	if Supported("2019.5") {
		t.Fatal("pre-minimum version reported supported")
	}
	if Supported("garbage") {
		t.Fatal("unparseable version reported supported")
	}
}

func TestRoundTrip(t *testing.T) {
	v, err := Parse("2024.1")
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "2024.1" {
		t.Fatalf("String() = %q", v.String())
	}
}
