package reports

import "testing"

func TestRenderCSVQuoting(t *testing.T) {
	out, err := RenderCSV([]string{"Name", "Notes"}, []Row{
		{"Name": "Depot, North", "Notes": `said "hello"`},
		{"Name": "plain"},
	})
	if err != nil {
		t.Fatalf("RenderCSV: %v", err)
	}
	want := "Name,Notes\n\"Depot, North\",\"said \"\"hello\"\"\"\nplain,\n"
	if string(out) != want {
		t.Fatalf("unexpected csv:\n%q\nwant\n%q", out, want)
	}
}

func TestRenderCSVFollowsHeaderOrder(t *testing.T) {
	out, err := RenderCSV([]string{"b", "a"}, []Row{{"a": "1", "b": "2", "c": "ignored"}})
	if err != nil {
		t.Fatalf("RenderCSV: %v", err)
	}
	if string(out) != "b,a\n2,1\n" {
		t.Fatalf("unexpected csv %q", out)
	}
}

func TestRenderCSVHeadersOnly(t *testing.T) {
	out, err := RenderCSV([]string{"x"}, nil)
	if err != nil {
		t.Fatalf("RenderCSV: %v", err)
	}
	if string(out) != "x\n" {
		t.Fatalf("unexpected csv %q", out)
	}
}
