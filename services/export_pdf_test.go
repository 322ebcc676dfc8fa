package services

import (
	"bytes"
	"testing"
)

func TestGenerateAnalyticsPDF(t *testing.T) {
	clients := []ClientAnalytics{sampleClient()}

	out, err := GenerateAnalyticsPDF(clients, "01 Jun 2024")
	if err != nil {
		t.Fatalf("GenerateAnalyticsPDF() error: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("GenerateAnalyticsPDF() returned empty bytes")
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestGenerateAnalyticsPDF_Empty(t *testing.T) {
	out, err := GenerateAnalyticsPDF(nil, "01 Jun 2024")
	if err != nil {
		t.Fatalf("GenerateAnalyticsPDF() error: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected a PDF even with no clients")
	}
}

func TestGenerateAnalyticsPDF_ManyClients(t *testing.T) {
	// More clients than the table cap; generation must still succeed.
	var clients []ClientAnalytics
	for i := 0; i < pdfTopClients+10; i++ {
		c := sampleClient()
		c.CLV = float64(i * 1000)
		clients = append(clients, c)
	}
	out, err := GenerateAnalyticsPDF(clients, "01 Jun 2024")
	if err != nil {
		t.Fatalf("GenerateAnalyticsPDF() error: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected PDF bytes")
	}
}
