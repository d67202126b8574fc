package parse

import (
	"reflect"
	"testing"
)

func TestParseExtractsParenthesizedYear(t *testing.T) {
	got := Parse("The Matrix (1999)")
	want := ParsedName{Title: "The Matrix", Year: 1999}
	if got != want {
		t.Fatalf("Parse(%q) = %+v, want %+v", "The Matrix (1999)", got, want)
	}
}

func TestParseStripsReleaseNoise(t *testing.T) {
	got := Parse("Inception.2010.1080p.BluRay.x264-GROUP.mkv")
	want := ParsedName{Title: "Inception", Year: 2010}
	if got != want {
		t.Fatalf("Parse = %+v, want %+v", got, want)
	}
}

func TestParseTable(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want ParsedName
	}{
		{"full width year parens", "霸王别姬 （1993）", ParsedName{Title: "霸王别姬", Year: 1993}},
		{"leading bracket tag", "[CMCT] 让子弹飞 2010 WEB-DL.mkv", ParsedName{Title: "让子弹飞", Year: 2010}},
		{"chinese bracket tag", "【高清影视】流浪地球2.2023.2160p.HEVC.mp4", ParsedName{Title: "流浪地球2", Year: 2023}},
		{"at user prefix", "@uploader Parasite.2019.1080p.mkv", ParsedName{Title: "Parasite", Year: 2019}},
		{"file size token", "Dune.2021.2160p.16.55GB.mkv", ParsedName{Title: "Dune", Year: 2021}},
		{"chinese suffix tags", "寄生虫.2019.中字.内封字幕.mkv", ParsedName{Title: "寄生虫", Year: 2019}},
		{"no year", "Some Random Movie", ParsedName{Title: "Some Random Movie"}},
		{"hyphenated title survives", "Spider-Man.mkv", ParsedName{Title: "Spider Man"}},
		{"bracketed group removed", "Arrival [IMAX Edition] (2016).mkv", ParsedName{Title: "Arrival", Year: 2016}},
		{"dolby vision marker", "Blade.Runner.2049.2017.DV.HDR10.WEB-DL.mkv", ParsedName{Title: "Blade Runner 2049", Year: 2017}},
		{"short title not eaten as source tag", "Max.2015.mkv", ParsedName{Title: "Max", Year: 2015}},
		{"short title without year survives", "Web.mkv", ParsedName{Title: "Web"}},
		{"bare web stripped in noisy context", "Venom.2018.1080p.WEB.H264-GROUP.mkv", ParsedName{Title: "Venom", Year: 2018}},
		{"bare cam stripped in noisy context", "Oppenheimer.2023.720p.CAM.mkv", ParsedName{Title: "Oppenheimer", Year: 2023}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.in)
			if got != tc.want {
				t.Fatalf("Parse(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseIsDeterministic(t *testing.T) {
	inputs := []string{
		"Inception.2010.1080p.BluRay.x264-GROUP.mkv",
		"寄生虫 Parasite (2019)",
		"...",
		"1080p.mkv",
	}
	for _, in := range inputs {
		if first, second := Parse(in), Parse(in); first != second {
			t.Fatalf("Parse(%q) not deterministic: %+v vs %+v", in, first, second)
		}
	}
}

func TestParseNeverReturnsEmptyTitle(t *testing.T) {
	inputs := []string{
		"1080p.mkv",
		"x264",
		"....",
		"[]",
		"国语中字",
		"a",
	}
	for _, in := range inputs {
		if got := Parse(in); got.Title == "" {
			t.Fatalf("Parse(%q) returned empty title", in)
		}
	}
}

func TestSplitMixedTitle(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"寄生虫 Parasite", []string{"寄生虫 Parasite", "寄生虫", "Parasite"}},
		{"Parasite 寄生虫", []string{"Parasite 寄生虫", "寄生虫", "Parasite"}},
		{"Inception", []string{"Inception"}},
		{"霸王别姬", []string{"霸王别姬"}},
		{"", []string{""}},
	}
	for _, tc := range cases {
		got := SplitMixedTitle(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("SplitMixedTitle(%q) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
}

func TestIsNoiseTitle(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"1080p", true},
		{"2012", true},
		{"a", true},
		{"...", true},
		{"deadbeef00", true},
		{"CD1", true},
		{"Inception", false},
		{"霸王别姬", false},
		{"Up", false},
	}
	for _, tc := range cases {
		if got := IsNoiseTitle(tc.in); got != tc.want {
			t.Fatalf("IsNoiseTitle(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
