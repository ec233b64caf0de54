package infra

// pdf.go — settlement document generation using go-pdf/fpdf.
// Generates an A5 settlement sheet with:
//   - Plant name header
//   - Producer identification (rut, razon social)
//   - Weighing summary (bruto, tara, neto)
//   - Per-field analysis table (measured, tolerance, percent, kg)
//   - Dry-off and bonus lines
//   - Bold paddy neto and settlement amount
//
// The output file is saved to storagePath/liquidacion_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fchandiac/paddy-backend-sub000/internal/model"
	"github.com/fchandiac/paddy-backend-sub000/internal/service"

	"github.com/go-pdf/fpdf"
)

// GenerateLiquidacionPDF writes the settlement sheet for a settled reception.
// storagePath is the directory where the PDF will be written (created if needed).
// Returns the absolute path to the generated file.
func GenerateLiquidacionPDF(rec *model.Recepcion, resultado *service.ResultadoLiquidacion, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("liquidacion_%s.pdf", rec.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Liquidacion de Paddy", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, rec.CreatedAt.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Producer ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	if rec.Productor != nil {
		pdf.CellFormat(contentW, 6, rec.Productor.RazonSocial, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(contentW, 5, "RUT: "+rec.Productor.Rut, "", 1, "L", false, 0, "")
	}
	if rec.TipoArroz != nil {
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(contentW, 5, "Variedad: "+rec.TipoArroz.Nombre, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	// ── Weighing ─────────────────────────────────────────────────────────────
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)
	half := contentW / 2
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(half, 5, "Peso bruto:", "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 5, rec.PesoBruto.StringFixed(2)+" kg", "", 1, "R", false, 0, "")
	pdf.CellFormat(half, 5, "Tara:", "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 5, rec.Tara.StringFixed(2)+" kg", "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(half, 5, "Peso neto:", "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 5, rec.PesoNeto.StringFixed(2)+" kg", "", 1, "R", false, 0, "")
	pdf.Ln(2)

	// ── Analysis table ───────────────────────────────────────────────────────
	col1 := contentW * 0.34 // field
	col2 := contentW * 0.16 // measured
	col3 := contentW * 0.16 // tolerance
	col4 := contentW * 0.14 // percent
	col5 := contentW * 0.20 // kg

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Analisis", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Medido %", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Toler. %", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col4, 5, "Dcto %", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col5, 5, "Kilos", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, campo := range resultado.Detalle {
		pdf.CellFormat(col1, 5, string(campo.Campo), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, campo.Medido.StringFixed(2), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, campo.Tolerancia.StringFixed(2), "", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 5, campo.Porcentaje.StringFixed(2), "", 0, "C", false, 0, "")
		pdf.CellFormat(col5, 5, campo.DescuentoKg.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	if !resultado.SecadoKg.IsZero() {
		pdf.CellFormat(half, 5, "Secado:", "", 0, "L", false, 0, "")
		pdf.CellFormat(half, 5, "-"+resultado.SecadoKg.StringFixed(2)+" kg", "", 1, "R", false, 0, "")
	}
	pdf.CellFormat(half, 5, "Descuento total:", "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 5, "-"+resultado.DescuentoTotal.StringFixed(2)+" kg", "", 1, "R", false, 0, "")
	if !resultado.Bonificacion.IsZero() {
		pdf.CellFormat(half, 5, "Bonificacion:", "", 0, "L", false, 0, "")
		pdf.CellFormat(half, 5, "+"+resultado.Bonificacion.StringFixed(2)+" kg", "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(half, 7, "PADDY NETO:", "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 7, resultado.PaddyNeto.StringFixed(2)+" kg", "", 1, "R", false, 0, "")

	monto := resultado.PaddyNeto.Mul(rec.Precio)
	pdf.CellFormat(half, 7, "MONTO:", "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 7, "$"+monto.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
