package proposal

import (
	"bytes"
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

var encodeQR = qrcode.Encode

const (
	pageMargin = 15.0
	lineH      = 6.0
)

// RenderPDF writes p as an A4 PDF. The quote reference is printed as a QR
// code in the header.
func RenderPDF(w io.Writer, p Proposal) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(p.Title, true)
	pdf.SetAuthor(p.Agency.Name, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	if p.Reference != "" {
		png, err := encodeQR(p.Reference, qrcode.Medium, 256)
		if err != nil {
			return fmt.Errorf("failed to encode reference: %w", err)
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("ref", opts, bytes.NewReader(png))
		pdf.ImageOptions("ref", 170, pageMargin, 25, 25, false, opts, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 8, tr(p.Agency.Name))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 5, tr(p.Agency.Address+" | "+p.Agency.Phone))
	pdf.Ln(5)
	if p.Consultant != "" {
		pdf.Cell(0, 5, tr("Consultant: "+p.Consultant))
		pdf.Ln(5)
	}
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(2, 132, 199)
	pdf.Cell(0, 5, "EXCLUSIVE TRAVEL PROPOSAL")
	pdf.Ln(6)
	pdf.SetTextColor(15, 23, 42)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.MultiCell(0, 9, tr(p.Title), "", "L", false)
	pdf.Ln(4)

	heading := func(s string) {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, lineH, tr(s))
		pdf.Ln(lineH + 1)
		pdf.SetFont("Helvetica", "", 10)
	}
	text := func(s string) {
		pdf.MultiCell(0, lineH-1, tr(s), "", "L", false)
	}

	heading("Prepared For")
	text(p.ClientName)
	if p.ClientEmail != "" {
		text(p.ClientEmail)
	}

	heading("Trip Overview")
	text("Destination: " + p.Destination)
	if p.StartDate != "" {
		text("Period: " + p.StartDate + " onwards")
	}
	text("Guest(s): " + p.Travelers)

	heading("Price Summary")
	for _, l := range p.Prices.Lines {
		pdf.CellFormat(60, lineH, tr(l.Label), "", 0, "L", false, 0, "")
		pdf.CellFormat(30, lineH, fmt.Sprintf("%d %s", l.Count, l.Unit), "", 0, "L", false, 0, "")
		pdf.CellFormat(40, lineH, tr("@ "+Amount(l.Rate)), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, lineH, tr(p.Currency+" "+Amount(l.Total)), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, lineH+2, tr("Total "+p.Currency+" "+Amount(p.Prices.Total)), "T", 1, "R", false, 0, "")

	heading("Planned Itinerary")
	for _, d := range p.Days {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(120, lineH, tr(d.Label()), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, lineH, tr(d.MealPlan), "", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, h := range d.Hotels {
			text("Stay: " + h.Title)
		}
		for _, it := range d.Items {
			head := it.Title
			if it.Time != "" {
				head = it.Time + " " + head
			}
			pdf.SetFont("Helvetica", "B", 10)
			text(head)
			if it.Description != "" {
				pdf.SetFont("Helvetica", "", 9)
				text(it.Description)
			}
		}
		pdf.Ln(2)
	}

	if p.Baggage != "" {
		heading("Baggage Info")
		text(p.Baggage)
	}

	heading("Inclusions")
	for _, s := range p.Inclusions {
		text("+ " + s)
	}
	heading("Exclusions")
	for _, s := range p.Exclusions {
		text("- " + s)
	}
	if len(p.Cancellation) > 0 {
		heading("Cancellation Terms")
		for _, c := range p.Cancellation {
			text(c)
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(220, 38, 38)
	pdf.Cell(0, 5, "VALIDITY: STRICTLY 24 HOURS")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}
