package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/bodygraph/internal/apperr"
)

func runCLI(t *testing.T, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.Writer = &out
	cmd.ErrWriter = &out
	noConfig := filepath.Join(t.TempDir(), "absent.yaml")
	err := cmd.Run(context.Background(), append([]string{"bodygraph", "--config", noConfig}, args...))
	return &out, err
}

func TestChartCommand(t *testing.T) {
	out, err := runCLI(t, "chart", "--date", "1990-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		IncarnationCross string `json:"incarnationCross"`
	}
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v (output %s)", err, out.String())
	}
	if resp.IncarnationCross != "38/39 | 48/21" {
		t.Errorf("incarnationCross = %q, want %q", resp.IncarnationCross, "38/39 | 48/21")
	}
}

func TestChartCommand_BirthFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "birth.yaml")
	data := "birthDate: \"1990-01-01\"\nbirthTime: \"12:00\"\nlatitude: 40.7\nlongitude: -74.0\nutcOffset: 0\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "chart", "--file", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Houses *struct {
			Cusps []float64 `json:"cusps"`
		} `json:"houses"`
	}
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Houses == nil || len(resp.Houses.Cusps) != 12 {
		t.Errorf("houses = %+v, want 12 cusps", resp.Houses)
	}
}

func TestChartCommand_InvalidDate(t *testing.T) {
	_, err := runCLI(t, "chart", "--date", "1990-02-30")
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestHousesCommand(t *testing.T) {
	out, err := runCLI(t, "houses", "--jde", "2451545", "--lat", "51.5", "--lon", "0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Asc   float64   `json:"asc"`
		Cusps []float64 `json:"cusps"`
	}
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Cusps) != 12 || resp.Cusps[0] != resp.Asc {
		t.Errorf("cusps = %v, asc = %v", resp.Cusps, resp.Asc)
	}
}
