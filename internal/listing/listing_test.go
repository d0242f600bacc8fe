package listing

import (
	"net/url"
	"strings"
	"testing"

	"github.com/handiism/rom-archiver/internal/model"
)

const apacheListing = `<html><head><title>Index of /roms</title></head><body>
<h1>Index of /roms</h1>
<pre>
<a href="?C=N;O=D">Name</a>
<a href="../">Parent Directory</a>
<a href="subdir/">subdir/</a>
<a href="Super%20Game%20%28USA%29.zip">Super Game (USA).zip</a>
<a href="Super%20Game%20%28Europe%29.zip">Super Game (Europe).zip</a>
<a href="Other%20Game%20%28Japan%29.zip">Other Game (Japan).zip</a>
<a href="Readme.txt">Readme.txt</a>
<a href="/mirror/Puzzle%20%28World%29.zip">Puzzle (World).zip</a>
<a href="https://cdn.example.net/files/Racer%20%28JAPAN%2C%20USA%29.zip">Racer</a>
<a href="Super%20Game%20%28USA%29.zip">duplicate</a>
</pre></body></html>`

const baseURL = "https://example.org/roms/"

func names(tasks []model.DownloadTask) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.FileName
	}
	return out
}

func TestExtract_AllRegions(t *testing.T) {
	tasks, err := Extract([]byte(apacheListing), baseURL, model.RegionAll)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	want := []string{
		"Super Game (USA).zip",
		"Super Game (Europe).zip",
		"Other Game (Japan).zip",
		"Puzzle (World).zip",
		"Racer (JAPAN, USA).zip",
	}
	got := names(tasks)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("names = %v, want %v", got, want)
	}

	for _, task := range tasks {
		u, err := url.Parse(task.URL)
		if err != nil || !u.IsAbs() {
			t.Errorf("URL %q is not absolute", task.URL)
		}
		if !strings.HasSuffix(task.URL, ".zip") {
			t.Errorf("URL %q does not end in .zip", task.URL)
		}
	}
}

func TestExtract_ResolvesRelativeReferences(t *testing.T) {
	tasks, err := Extract([]byte(apacheListing), baseURL, model.RegionAll)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]string{
		"Super Game (USA).zip":   "https://example.org/roms/Super%20Game%20%28USA%29.zip",
		"Puzzle (World).zip":     "https://example.org/mirror/Puzzle%20%28World%29.zip",
		"Racer (JAPAN, USA).zip": "https://cdn.example.net/files/Racer%20%28JAPAN%2C%20USA%29.zip",
	}
	for _, task := range tasks {
		if w, ok := want[task.FileName]; ok && task.URL != w {
			t.Errorf("%s URL = %q, want %q", task.FileName, task.URL, w)
		}
	}
}

func TestExtract_RegionFilter(t *testing.T) {
	tests := []struct {
		region model.Region
		want   []string
	}{
		{model.RegionUSA, []string{"Super Game (USA).zip", "Racer (JAPAN, USA).zip"}},
		{model.RegionEurope, []string{"Super Game (Europe).zip"}},
		{model.RegionJapan, []string{"Other Game (Japan).zip", "Racer (JAPAN, USA).zip"}},
		{model.RegionWorld, []string{"Puzzle (World).zip"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.region), func(t *testing.T) {
			tasks, err := Extract([]byte(apacheListing), baseURL, tt.region)
			if err != nil {
				t.Fatal(err)
			}
			got := names(tasks)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("names = %v, want %v", got, tt.want)
			}
			for _, name := range got {
				if !strings.Contains(strings.ToLower(name), strings.ToLower(string(tt.region))) {
					t.Errorf("%q does not contain region %q", name, tt.region)
				}
			}
		})
	}
}

func TestExtract_EmptyRegionEqualsAll(t *testing.T) {
	all, _ := Extract([]byte(apacheListing), baseURL, model.RegionAll)
	none, _ := Extract([]byte(apacheListing), baseURL, "")
	if strings.Join(names(all), "|") != strings.Join(names(none), "|") {
		t.Errorf("empty region %v differs from All %v", names(none), names(all))
	}
}

func TestExtract_SpecExample(t *testing.T) {
	page := []byte(`<a href="Super%20Game%20%28USA%29.zip">x</a>`)

	tasks, err := Extract(page, baseURL, model.RegionUSA)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].FileName != "Super Game (USA).zip" {
		t.Fatalf("USA tasks = %+v", tasks)
	}

	tasks, err = Extract(page, baseURL, model.RegionEurope)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 0 {
		t.Errorf("Europe tasks = %+v, want none", tasks)
	}
}

func TestExtract_NoArchives(t *testing.T) {
	tasks, err := Extract([]byte(`<html><body><a href="../">up</a><p>empty</p></body></html>`), baseURL, model.RegionAll)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 0 {
		t.Errorf("tasks = %+v, want none", tasks)
	}
}

func TestDecodeFileName(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"Super%20Game%20%28USA%29.zip", "Super Game (USA).zip"},
		{"/roms/nested/Plain.zip", "Plain.zip"},
		{"Bad%zzEscape.zip", "Bad%zzEscape.zip"},
		{"Sneaky%2F..%2Fescape.zip", "Sneaky_.._escape.zip"},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			if got := DecodeFileName(tt.href); got != tt.want {
				t.Errorf("DecodeFileName(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}
