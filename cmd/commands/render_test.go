package commands

import (
	"image/png"
	"os"
	"testing"
)

const sampleCSV = "timestamp,count\n1700000000,3\n1700003600,5\n1700007200,2\n"

func writeInput(t *testing.T, name, content string) {
	t.Helper()
	chdir(t, t.TempDir())
	if err := os.WriteFile(name, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}
}

func decodeOutput(t *testing.T, name string) (width, height int) {
	t.Helper()
	f, err := os.Open(name)
	if err != nil {
		t.Fatalf("output %s not written: %v", name, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output %s is not a valid PNG: %v", name, err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestRenderCommand(t *testing.T) {
	writeInput(t, "jobs.csv", sampleCSV)
	renderAspect = ""
	renderTelegramChat = ""

	if err := runRender(renderCmd, []string{"jobs.csv"}); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	w, h := decodeOutput(t, "jobs.png")
	if w != 1200 || h != 800 {
		t.Fatalf("expected default 1200x800 canvas, got %dx%d", w, h)
	}
}

func TestRenderCommandAspect(t *testing.T) {
	writeInput(t, "jobs.csv", sampleCSV)
	renderAspect = "3:1"
	renderTelegramChat = ""
	defer func() { renderAspect = "" }()

	if err := runRender(renderCmd, []string{"jobs.csv"}); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	w, h := decodeOutput(t, "jobs.png")
	if w != 3*h {
		t.Fatalf("expected 3:1 aspect, got %dx%d", w, h)
	}
}

func TestRenderCommandMissingArgument(t *testing.T) {
	if err := renderCmd.Args(renderCmd, nil); err == nil {
		t.Fatalf("expected usage error without an input path")
	}
}

func TestRenderCommandBadTimestamp(t *testing.T) {
	writeInput(t, "bad.csv", "timestamp,count\nnot-a-number,3\n")
	renderAspect = ""
	renderTelegramChat = ""

	if err := runRender(renderCmd, []string{"bad.csv"}); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := os.Stat("bad.png"); !os.IsNotExist(err) {
		t.Fatalf("no output file may exist after a failed render")
	}
}

func TestRenderCommandMissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	renderAspect = ""
	renderTelegramChat = ""

	if err := runRender(renderCmd, []string{"nope.csv"}); err == nil {
		t.Fatalf("expected error for missing input file")
	}
	if _, err := os.Stat("nope.png"); !os.IsNotExist(err) {
		t.Fatalf("no output file may exist after a failed render")
	}
}
